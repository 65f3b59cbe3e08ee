package application

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

/* ----------------------------------------
	FORM
---------------------------------------- */

type formAction int

const (
	formContinue formAction = iota
	formCancel
	formSubmit
)

type formField struct {
	Label string
	Hint  string
	Value string
}

// Form collects one or more text values. Check runs when focus leaves a
// field forward; a non-nil error keeps focus on that field. Submit runs
// after the last field passes its check.
type Form struct {
	Title  string
	Fields []formField
	Focus  int
	Err    string

	Check  func(f *Form, i int) error
	Submit func(values []string) tea.Cmd
}

// Values returns the trimmed field values in order.
func (f *Form) Values() []string {
	out := make([]string, len(f.Fields))
	for i, fld := range f.Fields {
		out[i] = strings.TrimSpace(fld.Value)
	}
	return out
}

// Update applies a key to the form.
func (f *Form) Update(msg tea.KeyMsg) formAction {
	field := &f.Fields[f.Focus]

	switch msg.Type {
	case tea.KeyEsc:
		return formCancel

	case tea.KeyRunes:
		field.Value += string(msg.Runes)
		f.Err = ""

	case tea.KeySpace:
		field.Value += " "

	case tea.KeyBackspace:
		if r := []rune(field.Value); len(r) > 0 {
			field.Value = string(r[:len(r)-1])
		}
		f.Err = ""

	case tea.KeyCtrlU:
		field.Value = ""
		f.Err = ""

	case tea.KeyShiftTab, tea.KeyUp:
		if f.Focus > 0 {
			f.Focus--
			f.Err = ""
		}

	case tea.KeyEnter, tea.KeyTab, tea.KeyDown:
		if f.Check != nil {
			if err := f.Check(f, f.Focus); err != nil {
				f.Err = err.Error()
				return formContinue
			}
		}
		f.Err = ""
		if f.Focus == len(f.Fields)-1 {
			return formSubmit
		}
		f.Focus++
	}

	return formContinue
}

// requireValue is a Check that rejects a blank field.
func requireValue(f *Form, i int) error {
	if strings.TrimSpace(f.Fields[i].Value) == "" {
		return errInvalidInput
	}
	return nil
}
