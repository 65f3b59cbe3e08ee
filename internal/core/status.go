package core

import (
	"fmt"
	"strings"
)

// Status is a student's enrollment state. The zero value is not a valid status.
type Status int

const (
	StatusEnrolled Status = iota + 1
	StatusSuspended
	StatusWithdrawn
	StatusRepeated
)

// statusInfo holds the label (display and on-disk encoding) and a longer
// description that is only ever displayed.
type statusInfo struct {
	status      Status
	label       string
	description string
}

// statusTable is in menu order.
var statusTable = []statusInfo{
	{StatusEnrolled, "入学", "正常入学就读"},
	{StatusSuspended, "休学", "暂时休学"},
	{StatusWithdrawn, "退学", "已办理退学"},
	{StatusRepeated, "留级", "需要重修学年"},
}

// statusLabelSeparator joins labels in error messages.
const statusLabelSeparator = "、"

func (s Status) info() (statusInfo, bool) {
	for _, si := range statusTable {
		if si.status == s {
			return si, true
		}
	}
	return statusInfo{}, false
}

// Label returns the persisted label, or "" for an invalid status.
func (s Status) Label() string {
	si, _ := s.info()
	return si.label
}

// Description returns the display-only description.
func (s Status) Description() string {
	si, _ := s.info()
	return si.description
}

// Valid reports whether s is one of the four defined statuses.
func (s Status) Valid() bool {
	_, ok := s.info()
	return ok
}

func (s Status) String() string {
	if label := s.Label(); label != "" {
		return label
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ParseStatus looks up a status by exact label match.
func ParseStatus(label string) (Status, error) {
	for _, si := range statusTable {
		if si.label == label {
			return si.status, nil
		}
	}
	return 0, &ValidationError{
		Field: FieldLabelStatus,
		Value: label,
		Kind:  ErrUnknownStatus,
		Message: fmt.Sprintf("无效的学籍状态：'%s'。有效状态为：%s",
			label, strings.Join(StatusLabels(), statusLabelSeparator)),
	}
}

// StatusLabels returns every label in menu order.
func StatusLabels() []string {
	labels := make([]string, len(statusTable))
	for i, si := range statusTable {
		labels[i] = si.label
	}
	return labels
}

// Statuses returns every status in menu order.
func Statuses() []Status {
	out := make([]Status, len(statusTable))
	for i, si := range statusTable {
		out[i] = si.status
	}
	return out
}
