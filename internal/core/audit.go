package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/JonMunkholm/roster/internal/logging"
	"github.com/google/uuid"
)

// AuditAction represents the type of action being audited.
type AuditAction string

const (
	ActionStudentAdd    AuditAction = "student_add"
	ActionStudentUpdate AuditAction = "student_update"
	ActionStudentDelete AuditAction = "student_delete"
	ActionFileLoad      AuditAction = "file_load"
	ActionFileSave      AuditAction = "file_save"
	ActionSheetImport   AuditAction = "sheet_import"
	ActionSheetExport   AuditAction = "sheet_export"
)

// AuditSeverity represents the severity level of an audit entry.
type AuditSeverity string

const (
	SeverityLow    AuditSeverity = "low"
	SeverityMedium AuditSeverity = "medium"
	SeverityHigh   AuditSeverity = "high"
)

// AuditEntry is one record of a data change. Entries are written to the
// structured log; there is no separate audit store.
type AuditEntry struct {
	ID           string
	Action       AuditAction
	Severity     AuditSeverity
	StudentID    string
	OldValue     string
	NewValue     string
	RowsAffected int
	Reason       string
	CreatedAt    time.Time
}

// AuditLogParams contains parameters for creating an audit log entry.
type AuditLogParams struct {
	Action       AuditAction
	StudentID    string
	OldValue     string
	NewValue     string
	RowsAffected int
	Reason       string
}

// determineSeverity returns the appropriate severity for an action.
func determineSeverity(action AuditAction) AuditSeverity {
	switch action {
	case ActionStudentDelete, ActionSheetImport:
		return SeverityHigh
	case ActionFileLoad, ActionFileSave, ActionSheetExport:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// LogAudit builds an audit entry and writes it to the context logger.
func LogAudit(ctx context.Context, params AuditLogParams) AuditEntry {
	entry := AuditEntry{
		ID:           uuid.NewString(),
		Action:       params.Action,
		Severity:     determineSeverity(params.Action),
		StudentID:    params.StudentID,
		OldValue:     params.OldValue,
		NewValue:     params.NewValue,
		RowsAffected: params.RowsAffected,
		Reason:       params.Reason,
		CreatedAt:    time.Now().UTC(),
	}

	attrs := []any{
		"audit_id", entry.ID,
		"action", string(entry.Action),
		"severity", string(entry.Severity),
		"rows_affected", entry.RowsAffected,
	}
	if entry.StudentID != "" {
		attrs = append(attrs, "student_id", entry.StudentID)
	}
	if entry.OldValue != "" {
		attrs = append(attrs, "old_value", entry.OldValue)
	}
	if entry.NewValue != "" {
		attrs = append(attrs, "new_value", entry.NewValue)
	}
	if entry.Reason != "" {
		attrs = append(attrs, "reason", entry.Reason)
	}

	level := slog.LevelInfo
	if entry.Severity == SeverityLow {
		level = slog.LevelDebug
	}
	logging.FromContext(ctx).Log(ctx, level, "audit", attrs...)

	return entry
}
