package core

import (
	"errors"
	"fmt"
)

// Error kinds. Check with errors.Is.
//
// ErrValidation, ErrDuplicate and ErrNotFound are caller-correctable: the shell
// reports them and asks again. ErrStorage means the file system let us down and
// the operation did not take effect on disk.
var (
	ErrValidation = errors.New("validation failed")
	ErrDuplicate  = errors.New("student already exists")
	ErrNotFound   = errors.New("student not found")
	ErrStorage    = errors.New("storage failure")

	ErrAgeFormat     = fmt.Errorf("%w: age is not an integer", ErrValidation)
	ErrAgeRange      = fmt.Errorf("%w: age out of range", ErrValidation)
	ErrUnknownStatus = fmt.Errorf("%w: unknown enrollment status", ErrValidation)
	ErrFieldCount    = fmt.Errorf("%w: wrong field count", ErrValidation)
)

// RecordError describes a store operation rejected for business reasons
// (blank id, duplicate id, unknown id).
type RecordError struct {
	Op        string // "add", "update", "delete", "query"
	StudentID string
	Kind      error // ErrValidation, ErrDuplicate or ErrNotFound
	Message   string
}

func (e *RecordError) Error() string {
	return e.Message
}

func (e *RecordError) Unwrap() error {
	return e.Kind
}

func newRecordError(op, id string, kind error, format string, args ...any) *RecordError {
	return &RecordError{
		Op:        op,
		StudentID: id,
		Kind:      kind,
		Message:   fmt.Sprintf(format, args...),
	}
}

// StorageError wraps an I/O failure while reading or writing the data file.
type StorageError struct {
	Op   string // "mkdir", "create temp", "write", "rename", "open", "read"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is reports ErrStorage for every StorageError, independent of the cause.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// IsValidation reports whether err should be fixed by the caller re-entering input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsStorage reports whether err is an I/O failure.
func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}
