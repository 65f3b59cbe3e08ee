package core

// validation.go turns raw field input into a validated Student.
//
// Field rules are declared as struct tags on studentRules and checked with
// go-playground/validator. Every rule runs; failures come back together as
// ValidationErrors so the caller can show them all at once. Messages are the
// ones shown to the operator, so they name the field by its display label.

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Display labels for student fields, also used as ValidationError.Field.
const (
	FieldLabelStudentID   = "学号"
	FieldLabelName        = "姓名"
	FieldLabelGender      = "性别"
	FieldLabelAge         = "年龄"
	FieldLabelNativePlace = "籍贯"
	FieldLabelDepartment  = "系别"
	FieldLabelMajor       = "专业"
	FieldLabelClassName   = "班级"
	FieldLabelStatus      = "学籍状态"
)

// Age bounds, inclusive.
const (
	MinAge = 15
	MaxAge = 50
)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Display label of the field
	Value   string // The invalid value (trimmed)
	Message string // Human-readable error message
	Kind    error  // Refinement of ErrValidation; nil means ErrValidation
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	if e.Kind != nil {
		return e.Kind
	}
	return ErrValidation
}

// ValidationErrors is every field failure found while building one Student.
type ValidationErrors []*ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "；")
}

// Unwrap exposes each field error so errors.Is matches any of their kinds.
func (errs ValidationErrors) Unwrap() []error {
	out := make([]error, len(errs))
	for i, e := range errs {
		out[i] = e
	}
	return out
}

// Fields returns the labels of the failing fields in declaration order.
func (errs ValidationErrors) Fields() []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Field
	}
	return out
}

// studentRules mirrors Student with the raw, trimmed values. Age is checked for
// range here only after it parsed; a format failure is reported separately.
type studentRules struct {
	StudentID   string `validate:"required,nosep"`
	Name        string `validate:"required,nosep"`
	Gender      string `validate:"required,oneof=男 女"`
	Age         int    `validate:"gte=15,lte=50"`
	NativePlace string `validate:"nosep"`
	Department  string `validate:"required,nosep"`
	Major       string `validate:"required,nosep"`
	ClassName   string `validate:"required,nosep"`
}

var ruleLabels = map[string]string{
	"StudentID":   FieldLabelStudentID,
	"Name":        FieldLabelName,
	"Gender":      FieldLabelGender,
	"Age":         FieldLabelAge,
	"NativePlace": FieldLabelNativePlace,
	"Department":  FieldLabelDepartment,
	"Major":       FieldLabelMajor,
	"ClassName":   FieldLabelClassName,
}

// lineBreakers are the characters a data-file line cannot carry in a value.
const lineBreakers = fieldSeparator + "\n\r"

// noSeparator is the "nosep" rule: the value must fit in one data-file field.
func noSeparator(fl validator.FieldLevel) bool {
	return !strings.ContainsAny(fl.Field().String(), lineBreakers)
}

// fieldOrder is the on-disk column order, used to sort errors.
var fieldOrder = map[string]int{
	FieldLabelStudentID:   0,
	FieldLabelName:        1,
	FieldLabelGender:      2,
	FieldLabelAge:         3,
	FieldLabelNativePlace: 4,
	FieldLabelDepartment:  5,
	FieldLabelMajor:       6,
	FieldLabelClassName:   7,
	FieldLabelStatus:      8,
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func rulesValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		if err := validate.RegisterValidation("nosep", noSeparator); err != nil {
			panic(err)
		}
	})
	return validate
}

// checkRules runs the tag rules and translates failures into field errors.
// Age failures are dropped when skipAge is set (age did not parse).
func checkRules(r studentRules, skipAge bool) (ValidationErrors, error) {
	err := rulesValidator().Struct(r)
	if err == nil {
		return nil, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, fmt.Errorf("check student rules: %w", err)
	}

	var out ValidationErrors
	for _, fe := range fieldErrs {
		if fe.Field() == "Age" && skipAge {
			continue
		}
		out = append(out, translateFieldError(fe))
	}
	return out, nil
}

func translateFieldError(fe validator.FieldError) *ValidationError {
	label := ruleLabels[fe.Field()]
	value := fmt.Sprint(fe.Value())

	switch {
	case fe.Tag() == "required":
		return &ValidationError{Field: label, Value: value, Message: label + "不能为空"}
	case fe.Tag() == "nosep":
		return &ValidationError{Field: label, Value: value, Message: label + "不能包含逗号或换行"}
	case fe.Field() == "Gender":
		return &ValidationError{Field: label, Value: value, Message: "性别必须是'男'或'女'"}
	case fe.Field() == "Age":
		return &ValidationError{
			Field:   label,
			Value:   value,
			Kind:    ErrAgeRange,
			Message: fmt.Sprintf("年龄必须在%d到%d岁之间", MinAge, MaxAge),
		}
	default:
		return &ValidationError{Field: label, Value: value, Message: fmt.Sprintf("%s不合法（%s）", label, fe.Tag())}
	}
}

func sortByField(errs ValidationErrors) {
	sort.SliceStable(errs, func(i, j int) bool {
		return fieldOrder[errs[i].Field] < fieldOrder[errs[j].Field]
	})
}
