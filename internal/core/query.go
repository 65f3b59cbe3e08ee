package core

import (
	"fmt"
	"strings"
)

// QueryField selects which student field a query matches against.
// The zero value is not a valid field.
type QueryField int

const (
	QueryByStudentID QueryField = iota + 1
	QueryByName
	QueryByStatus
	QueryByDepartment
	QueryByClass
)

type queryFieldInfo struct {
	field QueryField
	label string
	title string
	value func(Student) string
}

// queryFields is in menu order.
var queryFields = []queryFieldInfo{
	{QueryByStudentID, FieldLabelStudentID, "按学号查询", Student.ID},
	{QueryByName, FieldLabelName, "按姓名查询", Student.Name},
	{QueryByStatus, FieldLabelStatus, "按学籍状态查询", func(s Student) string { return s.Status().Label() }},
	{QueryByDepartment, FieldLabelDepartment, "按系别查询", Student.Department},
	{QueryByClass, FieldLabelClassName, "按班级查询", Student.ClassName},
}

func (f QueryField) info() (queryFieldInfo, bool) {
	for _, qi := range queryFields {
		if qi.field == f {
			return qi, true
		}
	}
	return queryFieldInfo{}, false
}

// Label returns the field's display label.
func (f QueryField) Label() string {
	qi, _ := f.info()
	return qi.label
}

// Title returns the menu text, e.g. "按姓名查询".
func (f QueryField) Title() string {
	qi, _ := f.info()
	return qi.title
}

func (f QueryField) Valid() bool {
	_, ok := f.info()
	return ok
}

func (f QueryField) String() string {
	if label := f.Label(); label != "" {
		return label
	}
	return fmt.Sprintf("QueryField(%d)", int(f))
}

// Value returns the string form of the selected field of s.
func (f QueryField) Value(s Student) string {
	qi, ok := f.info()
	if !ok {
		return ""
	}
	return qi.value(s)
}

// Matches reports whether the selected field contains keyword.
// Matching is case-sensitive with no normalization.
func (f QueryField) Matches(s Student, keyword string) bool {
	return strings.Contains(f.Value(s), keyword)
}

// QueryFields returns every field in menu order.
func QueryFields() []QueryField {
	out := make([]QueryField, len(queryFields))
	for i, qi := range queryFields {
		out[i] = qi.field
	}
	return out
}

// QueryFieldFromChoice maps a 1-based menu choice to a field.
func QueryFieldFromChoice(choice int) (QueryField, error) {
	if choice < 1 || choice > len(queryFields) {
		return 0, &ValidationError{
			Field:   "查询类型",
			Value:   fmt.Sprint(choice),
			Message: fmt.Sprintf("无效的查询类型选择：%d。请选择 1-%d 之间的数字", choice, len(queryFields)),
		}
	}
	return queryFields[choice-1].field, nil
}
