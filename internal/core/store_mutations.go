package core

import (
	"context"
	"strings"

	"github.com/JonMunkholm/roster/internal/logging"
)

// Add appends st and saves. A duplicate id is rejected. If the save fails the
// record is removed again, so a failed Add leaves the store unchanged.
func (s *Store) Add(ctx context.Context, st Student) error {
	if st.IsZero() {
		return newRecordError("add", "", ErrValidation, "学生记录无效：学号不能为空")
	}
	if s.Exists(st.id) {
		return newRecordError("add", st.id, ErrDuplicate, "学号 [%s] 已存在", st.id)
	}

	s.students = append(s.students, st)
	if err := s.Save(ctx); err != nil {
		s.students = s.students[:len(s.students)-1]
		logging.FromContext(ctx).Error("add rolled back after save failure",
			"student_id", st.id,
			"error", err,
		)
		return err
	}

	LogAudit(ctx, AuditLogParams{
		Action:       ActionStudentAdd,
		StudentID:    st.id,
		NewValue:     EncodeLine(st),
		RowsAffected: 1,
	})
	return nil
}

// Update replaces the first record with id by st and saves. st may carry a
// new id as long as no other record uses it.
//
// If the save fails the in-memory replacement stays in place and the error is
// returned; memory and file disagree until the next successful save.
func (s *Store) Update(ctx context.Context, id string, st Student) error {
	if strings.TrimSpace(id) == "" {
		return newRecordError("update", id, ErrValidation, "学号不能为空")
	}
	if st.IsZero() {
		return newRecordError("update", id, ErrValidation, "学生记录无效：学号不能为空")
	}
	if st.id != id && s.Exists(st.id) {
		return newRecordError("update", st.id, ErrDuplicate, "新学号 [%s] 已存在", st.id)
	}

	i := s.indexOf(id)
	if i < 0 {
		return newRecordError("update", id, ErrNotFound, "未找到学号为 [%s] 的学生", id)
	}

	old := s.students[i]
	s.students[i] = st

	if err := s.Save(ctx); err != nil {
		return err
	}

	LogAudit(ctx, AuditLogParams{
		Action:       ActionStudentUpdate,
		StudentID:    id,
		OldValue:     EncodeLine(old),
		NewValue:     EncodeLine(st),
		RowsAffected: 1,
	})
	return nil
}

// Delete removes every record with id and saves.
//
// Like Update, a failed save does not restore the removed records.
func (s *Store) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return newRecordError("delete", id, ErrValidation, "学号不能为空")
	}

	kept := make([]Student, 0, len(s.students))
	var removed []Student
	for _, st := range s.students {
		if st.id == id {
			removed = append(removed, st)
			continue
		}
		kept = append(kept, st)
	}

	if len(removed) == 0 {
		return newRecordError("delete", id, ErrNotFound, "未找到学号为 [%s] 的学生", id)
	}

	s.students = kept
	if err := s.Save(ctx); err != nil {
		return err
	}

	LogAudit(ctx, AuditLogParams{
		Action:       ActionStudentDelete,
		StudentID:    id,
		OldValue:     EncodeLine(removed[0]),
		RowsAffected: len(removed),
	})
	return nil
}

// AddMany appends every record in batch and saves once. The whole batch is
// rejected if any id is already present or repeats within batch, and a failed
// save removes the batch again.
func (s *Store) AddMany(ctx context.Context, batch []Student) error {
	if len(batch) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(batch))
	for _, st := range batch {
		if st.IsZero() {
			return newRecordError("add", "", ErrValidation, "学生记录无效：学号不能为空")
		}
		if seen[st.id] || s.Exists(st.id) {
			return newRecordError("add", st.id, ErrDuplicate, "学号 [%s] 已存在", st.id)
		}
		seen[st.id] = true
	}

	n := len(s.students)
	s.students = append(s.students, batch...)
	if err := s.Save(ctx); err != nil {
		s.students = s.students[:n]
		logging.FromContext(ctx).Error("batch add rolled back after save failure",
			"records", len(batch),
			"error", err,
		)
		return err
	}

	for _, st := range batch {
		LogAudit(ctx, AuditLogParams{
			Action:       ActionStudentAdd,
			StudentID:    st.id,
			NewValue:     EncodeLine(st),
			RowsAffected: 1,
		})
	}
	return nil
}
