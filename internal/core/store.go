package core

import (
	"context"
	"os"
	"path/filepath"
)

// Store is the in-memory list of students backed by one data file.
//
// Every mutating call saves the whole list before returning. Store is not
// safe for concurrent use; the application drives it from one goroutine at
// a time and assumes it is the only writer of the data file.
type Store struct {
	path     string
	students []Student
}

// NewStore returns an empty store for the data file at path. Nothing is read
// or created until Load or Save is called.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// OpenStore creates the data directory and loads the data file. A missing
// file yields an empty store; any other I/O failure is returned.
func OpenStore(ctx context.Context, path string) (*Store, LoadReport, error) {
	s := NewStore(path)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, LoadReport{}, &StorageError{Op: "mkdir", Path: dir, Err: err}
	}

	report, err := s.Load(ctx)
	if err != nil {
		return nil, LoadReport{}, err
	}
	return s, report, nil
}

// Path returns the data file path.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.students)
}

// ListAll returns a copy of every record in insertion order.
func (s *Store) ListAll() []Student {
	out := make([]Student, len(s.students))
	copy(out, s.students)
	return out
}

// indexOf returns the position of the first record with id, or -1.
func (s *Store) indexOf(id string) int {
	for i, st := range s.students {
		if st.id == id {
			return i
		}
	}
	return -1
}

// Exists reports whether a record with id is present.
func (s *Store) Exists(id string) bool {
	return s.indexOf(id) >= 0
}

// Get returns the first record with id.
func (s *Store) Get(id string) (Student, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.students[i], true
	}
	return Student{}, false
}
