// Package schema defines the column layout shared by the data file and
// spreadsheet transfers.
package schema

import (
	"fmt"
	"strings"
)

// Column names in file order. The data file has no header row; spreadsheets do.
const (
	ColStudentID   = "学号"
	ColName        = "姓名"
	ColGender      = "性别"
	ColAge         = "年龄"
	ColNativePlace = "籍贯"
	ColDepartment  = "系别"
	ColMajor       = "专业"
	ColClassName   = "班级"
	ColStatus      = "学籍状态"
)

// ColumnSpec describes one column.
type ColumnSpec struct {
	Name     string
	Required bool // must be present in a spreadsheet header
}

// StudentColumns is the fixed column order of a student record.
var StudentColumns = []ColumnSpec{
	{Name: ColStudentID, Required: true},
	{Name: ColName, Required: true},
	{Name: ColGender, Required: true},
	{Name: ColAge, Required: true},
	{Name: ColNativePlace},
	{Name: ColDepartment, Required: true},
	{Name: ColMajor, Required: true},
	{Name: ColClassName, Required: true},
	{Name: ColStatus},
}

// FieldCount is the number of fields in one data-file line.
var FieldCount = len(StudentColumns)

// Headers returns the column names in order.
func Headers() []string {
	out := make([]string, len(StudentColumns))
	for i, c := range StudentColumns {
		out[i] = c.Name
	}
	return out
}

// HeaderIndex maps a trimmed column name to its position in a header row.
type HeaderIndex map[string]int

// MakeHeaderIndex indexes a header row. The first occurrence of a name wins.
func MakeHeaderIndex(headers []string) HeaderIndex {
	idx := make(HeaderIndex, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))
		if _, seen := idx[h]; !seen {
			idx[h] = i
		}
	}
	return idx
}

// ValidateHeaders checks that every required column is present and returns
// the index, or an error listing the missing columns.
func ValidateHeaders(headers []string) (HeaderIndex, error) {
	idx := MakeHeaderIndex(headers)
	var missing []string

	for _, c := range StudentColumns {
		if _, ok := idx[c.Name]; !ok && c.Required {
			missing = append(missing, c.Name)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

// Cell returns the value of column name in row, or "" when the column is
// absent or the row is short.
func (idx HeaderIndex) Cell(row []string, name string) string {
	pos, ok := idx[name]
	if !ok || pos >= len(row) {
		return ""
	}
	return row[pos]
}
