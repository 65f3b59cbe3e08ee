package handler

import (
	"github.com/JonMunkholm/roster/internal/core"
	"github.com/JonMunkholm/roster/internal/transfer"
)

// WdMsg is an informational line for the status bar.
type WdMsg string

// DoneMsg reports a finished operation.
type DoneMsg string

// ErrMsg reports a failed operation.
type ErrMsg struct{ Err error }

// ListMsg carries records to display.
type ListMsg struct {
	Title    string
	Students []core.Student
	Query    bool // result of a keyword query rather than a full listing
}

// ImportMsg carries the outcome of a spreadsheet import.
type ImportMsg struct {
	Result *transfer.ImportResult
}

// ExitMsg is sent after the exit save. Err is nil when the save succeeded.
type ExitMsg struct{ Err error }
