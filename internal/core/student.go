package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Accepted gender values.
const (
	GenderMale   = "男"
	GenderFemale = "女"
)

// Student is an enrollment record. Fields are only set by NewStudent, so any
// non-zero Student is valid. Updates build a new Student and replace the old one.
type Student struct {
	id          string
	name        string
	gender      string
	age         int
	nativePlace string
	department  string
	major       string
	className   string
	status      Status
}

// StudentInput carries raw field values as typed by an operator or read from
// a file. Age is parsed; a blank Status means StatusEnrolled.
type StudentInput struct {
	StudentID   string
	Name        string
	Gender      string
	Age         string
	NativePlace string
	Department  string
	Major       string
	ClassName   string
	Status      string
}

// NewStudent validates in and returns the Student. All strings are trimmed.
// On failure the error is a ValidationErrors listing every bad field.
func NewStudent(in StudentInput) (Student, error) {
	rules := studentRules{
		StudentID:   strings.TrimSpace(in.StudentID),
		Name:        strings.TrimSpace(in.Name),
		Gender:      strings.TrimSpace(in.Gender),
		NativePlace: strings.TrimSpace(in.NativePlace),
		Department:  strings.TrimSpace(in.Department),
		Major:       strings.TrimSpace(in.Major),
		ClassName:   strings.TrimSpace(in.ClassName),
	}

	var errs ValidationErrors

	rawAge := strings.TrimSpace(in.Age)
	age, err := strconv.Atoi(rawAge)
	ageParsed := err == nil
	if ageParsed {
		rules.Age = age
	} else {
		errs = append(errs, &ValidationError{
			Field:   FieldLabelAge,
			Value:   rawAge,
			Kind:    ErrAgeFormat,
			Message: fmt.Sprintf("年龄格式不正确：'%s'", rawAge),
		})
	}

	ruleErrs, err := checkRules(rules, !ageParsed)
	if err != nil {
		return Student{}, err
	}
	errs = append(errs, ruleErrs...)

	status := StatusEnrolled
	if raw := strings.TrimSpace(in.Status); raw != "" {
		parsed, err := ParseStatus(raw)
		if err != nil {
			errs = append(errs, err.(*ValidationError))
		} else {
			status = parsed
		}
	}

	if len(errs) > 0 {
		sortByField(errs)
		return Student{}, errs
	}

	return Student{
		id:          rules.StudentID,
		name:        rules.Name,
		gender:      rules.Gender,
		age:         rules.Age,
		nativePlace: rules.NativePlace,
		department:  rules.Department,
		major:       rules.Major,
		className:   rules.ClassName,
		status:      status,
	}, nil
}

func (s Student) ID() string          { return s.id }
func (s Student) Name() string        { return s.name }
func (s Student) Gender() string      { return s.gender }
func (s Student) Age() int            { return s.age }
func (s Student) NativePlace() string { return s.nativePlace }
func (s Student) Department() string  { return s.department }
func (s Student) Major() string       { return s.major }
func (s Student) ClassName() string   { return s.className }
func (s Student) Status() Status      { return s.status }

// IsZero reports whether s was not produced by NewStudent.
func (s Student) IsZero() bool {
	return s.id == ""
}

// Input returns the raw field values that rebuild s through NewStudent.
func (s Student) Input() StudentInput {
	return StudentInput{
		StudentID:   s.id,
		Name:        s.name,
		Gender:      s.gender,
		Age:         strconv.Itoa(s.age),
		NativePlace: s.nativePlace,
		Department:  s.department,
		Major:       s.major,
		ClassName:   s.className,
		Status:      s.status.Label(),
	}
}

func (s Student) String() string {
	return fmt.Sprintf("学号：'%s', 姓名：'%s', 性别：'%s', 年龄：%d, 籍贯：'%s', 系别：'%s', 专业：'%s', 班级：'%s', 学籍状态：'%s (%s)'",
		s.id, s.name, s.gender, s.age, s.nativePlace, s.department, s.major, s.className,
		s.status.Label(), s.status.Description())
}
