package transfer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/roster/internal/core"
	"github.com/JonMunkholm/roster/internal/logging"
	"github.com/JonMunkholm/roster/internal/schema"
	"github.com/xuri/excelize/v2"
)

// defaultSheet is the sheet excelize.NewFile creates.
const defaultSheet = "Sheet1"

// Export writes students to a new workbook at path, replacing any file there.
func Export(ctx context.Context, path, sheet string, students []core.Student) (ExportResult, error) {
	logger := logging.FromContext(ctx)
	if sheet == "" {
		sheet = defaultSheet
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ExportResult{}, &core.StorageError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("close workbook", "path", path, "error", err)
		}
	}()

	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return ExportResult{}, fmt.Errorf("name sheet %q: %w", sheet, err)
		}
	}

	headers := schema.Headers()
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return ExportResult{}, fmt.Errorf("write header: %w", err)
	}
	if err := boldHeader(f, sheet, len(headers)); err != nil {
		logger.Debug("style header row", "error", err)
	}

	for i, st := range students {
		if i%ContextCheckInterval == 0 && ctx.Err() != nil {
			return ExportResult{}, ctx.Err()
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return ExportResult{}, err
		}
		row := rowValues(st)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return ExportResult{}, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		logger.Debug("freeze header row", "error", err)
	}

	if err := f.SaveAs(path); err != nil {
		return ExportResult{}, &core.StorageError{Op: "write", Path: path, Err: err}
	}

	logger.Info("students exported", "path", path, "sheet", sheet, "rows", len(students))
	core.LogAudit(ctx, core.AuditLogParams{
		Action:       core.ActionSheetExport,
		RowsAffected: len(students),
		Reason:       path,
	})

	return ExportResult{Path: path, Sheet: sheet, Rows: len(students)}, nil
}

// boldHeader sets a bold font on the first cols cells of row 1.
func boldHeader(f *excelize.File, sheet string, cols int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("new style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

// rowValues lays out st in column order. Age stays numeric in the sheet.
func rowValues(st core.Student) []any {
	return []any{
		st.ID(),
		st.Name(),
		st.Gender(),
		st.Age(),
		st.NativePlace(),
		st.Department(),
		st.Major(),
		st.ClassName(),
		st.Status().Label(),
	}
}
