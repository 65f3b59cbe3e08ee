package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JonMunkholm/roster/internal/schema"
)

// fieldSeparator joins fields in a data-file line. Values are not escaped;
// NewStudent rejects values that contain it.
const fieldSeparator = ","

// EncodeLine renders s as one data-file line without a terminator.
func EncodeLine(s Student) string {
	return strings.Join([]string{
		s.id,
		s.name,
		s.gender,
		strconv.Itoa(s.age),
		s.nativePlace,
		s.department,
		s.major,
		s.className,
		s.status.Label(),
	}, fieldSeparator)
}

// DecodeLine parses one data-file line. A wrong field count fails with
// ErrFieldCount; field problems fail with ValidationErrors from NewStudent.
// Trailing empty fields do not count, so a line with a blank status is short.
func DecodeLine(line string) (Student, error) {
	line = strings.TrimSuffix(line, "\r")
	fields := strings.Split(line, fieldSeparator)
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	if len(fields) != schema.FieldCount {
		return Student{}, &ValidationError{
			Kind:    ErrFieldCount,
			Value:   line,
			Message: fmt.Sprintf("数据格式不正确：需要%d个字段，实际%d个", schema.FieldCount, len(fields)),
		}
	}

	return NewStudent(StudentInput{
		StudentID:   fields[0],
		Name:        fields[1],
		Gender:      fields[2],
		Age:         fields[3],
		NativePlace: fields[4],
		Department:  fields[5],
		Major:       fields[6],
		ClassName:   fields[7],
		Status:      fields[8],
	})
}
