package application

import (
	"errors"
	"strings"

	"github.com/JonMunkholm/roster/internal/core"
	tea "github.com/charmbracelet/bubbletea"
)

// studentFields is the entry order of a student form, matching StudentInput.
var studentFields = []formField{
	{Label: core.FieldLabelStudentID},
	{Label: core.FieldLabelName},
	{Label: core.FieldLabelGender, Hint: core.GenderMale + "/" + core.GenderFemale},
	{Label: core.FieldLabelAge, Hint: "15-50"},
	{Label: core.FieldLabelNativePlace, Hint: "可留空"},
	{Label: core.FieldLabelDepartment},
	{Label: core.FieldLabelMajor},
	{Label: core.FieldLabelClassName},
	{Label: core.FieldLabelStatus, Hint: strings.Join(core.StatusLabels(), "  ") + "（留空为入学）"},
}

func inputFromValues(v []string) core.StudentInput {
	return core.StudentInput{
		StudentID:   v[0],
		Name:        v[1],
		Gender:      v[2],
		Age:         v[3],
		NativePlace: v[4],
		Department:  v[5],
		Major:       v[6],
		ClassName:   v[7],
		Status:      v[8],
	}
}

func valuesFromInput(in core.StudentInput) []string {
	return []string{
		in.StudentID, in.Name, in.Gender, in.Age, in.NativePlace,
		in.Department, in.Major, in.ClassName, in.Status,
	}
}

// newStudentForm builds a form over every student field. idCheck, if set,
// runs on the id once it passes the field rules. submit gets the built Student.
func newStudentForm(title string, initial *core.StudentInput, idCheck func(id string) error, submit func(core.Student) tea.Cmd) *Form {
	fields := make([]formField, len(studentFields))
	copy(fields, studentFields)
	if initial != nil {
		for i, v := range valuesFromInput(*initial) {
			fields[i].Value = v
		}
	}

	return &Form{
		Title:  title,
		Fields: fields,
		Check: func(f *Form, i int) error {
			if err := fieldError(f.Values(), i); err != nil {
				return err
			}
			if i == 0 && idCheck != nil {
				return idCheck(strings.TrimSpace(f.Fields[0].Value))
			}
			return nil
		},
		Submit: func(values []string) tea.Cmd {
			st, err := core.NewStudent(inputFromValues(values))
			if err != nil {
				return errCmd(err)
			}
			return submit(st)
		},
	}
}

// fieldError validates values as a whole and returns the failure for field
// i only, so later blank fields do not block earlier ones.
func fieldError(values []string, i int) error {
	_, err := core.NewStudent(inputFromValues(values))
	if err == nil {
		return nil
	}

	var verrs core.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	label := studentFields[i].Label
	for _, ve := range verrs {
		if ve.Field == label {
			return ve
		}
	}
	return nil
}
