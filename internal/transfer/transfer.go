// Package transfer moves student records between the store and xlsx
// workbooks. The sheet layout is the data-file column order with a header row.
package transfer

import (
	"time"
)

// MaxHeaderSearchRows is how many leading rows Import scans for the header.
var MaxHeaderSearchRows = 20

// ContextCheckInterval is how often Import checks for cancellation.
var ContextCheckInterval = 100

// FailedRow is a sheet row Import could not take.
type FailedRow struct {
	Row    int // 1-based sheet row
	Reason string
	Data   []string
}

// ImportResult summarizes an Import.
type ImportResult struct {
	FileName   string
	Sheet      string
	Total      int // data rows after the header, blank rows excluded
	Inserted   int
	Skipped    int
	FailedRows []FailedRow
	Duration   time.Duration
}

// ExportResult summarizes an Export.
type ExportResult struct {
	Path  string
	Sheet string
	Rows  int
}
