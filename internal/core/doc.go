// Package core holds the student enrollment records and everything that
// touches them, independent of the terminal UI.
//
// # Records
//
// A [Student] can only be built through [NewStudent], which trims and
// validates every field and reports all failures at once as
// [ValidationErrors]. Enrollment state is the closed [Status] enum.
//
// # Store
//
// [Store] keeps records in insertion order and saves the whole list to the
// data file after every mutation. Save writes a temp file beside the data
// file and renames it into place. Load skips malformed lines and reports them
// in a [LoadReport].
//
// # Errors
//
// Failures carry a kind checked with errors.Is: [ErrValidation],
// [ErrDuplicate], [ErrNotFound] or [ErrStorage]. [MapError] turns any of them
// into a coded message for display.
//
// # Audit
//
// Each change to the data is written to the structured log as an audit entry
// via [LogAudit].
package core
