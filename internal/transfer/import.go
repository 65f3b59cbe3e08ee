package transfer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/JonMunkholm/roster/internal/core"
	"github.com/JonMunkholm/roster/internal/logging"
	"github.com/JonMunkholm/roster/internal/schema"
	"github.com/xuri/excelize/v2"
)

// Target is where Import puts accepted rows. *core.Store satisfies it.
type Target interface {
	Exists(id string) bool
	AddMany(ctx context.Context, batch []core.Student) error
}

// Import reads sheet from the workbook at path and adds every valid row to
// target in one save. Bad rows are reported in the result and do not stop
// the import; a failure to read the workbook or save the store does. An empty
// sheet name means the first sheet.
func Import(ctx context.Context, path, sheet string, target Target) (*ImportResult, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("close workbook", "path", path, "error", err)
		}
	}()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	result := &ImportResult{
		FileName: filepath.Base(path),
		Sheet:    sheet,
	}

	headerRow, idx, err := findHeader(rows)
	if err != nil {
		return nil, err
	}

	var batch []core.Student
	seen := make(map[string]int)

	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		rowNum := i + 1

		if (i-headerRow)%ContextCheckInterval == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if isEmptyRow(row) {
			continue
		}
		result.Total++

		st, err := core.NewStudent(studentInput(row, idx))
		if err != nil {
			result.FailedRows = append(result.FailedRows, FailedRow{Row: rowNum, Reason: err.Error(), Data: row})
			continue
		}

		if first, dup := seen[st.ID()]; dup {
			result.FailedRows = append(result.FailedRows, FailedRow{
				Row:    rowNum,
				Reason: fmt.Sprintf("学号 [%s] 与第%d行重复", st.ID(), first),
				Data:   row,
			})
			continue
		}
		if target.Exists(st.ID()) {
			result.FailedRows = append(result.FailedRows, FailedRow{
				Row:    rowNum,
				Reason: fmt.Sprintf("学号 [%s] 已存在", st.ID()),
				Data:   row,
			})
			continue
		}

		seen[st.ID()] = rowNum
		batch = append(batch, st)
	}

	for _, fr := range result.FailedRows {
		logger.Warn("skipped sheet row", "sheet", sheet, "row", fr.Row, "reason", fr.Reason)
	}

	if err := target.AddMany(ctx, batch); err != nil {
		return nil, err
	}

	result.Inserted = len(batch)
	result.Skipped = len(result.FailedRows)
	result.Duration = time.Since(start)

	logger.Info("students imported",
		"file", result.FileName,
		"sheet", sheet,
		"total", result.Total,
		"inserted", result.Inserted,
		"skipped", result.Skipped,
		"duration", result.Duration,
	)
	core.LogAudit(ctx, core.AuditLogParams{
		Action:       core.ActionSheetImport,
		RowsAffected: result.Inserted,
		Reason:       path,
	})

	return result, nil
}

// findHeader returns the position of the first row within
// MaxHeaderSearchRows that carries every required column.
func findHeader(rows [][]string) (int, schema.HeaderIndex, error) {
	if len(rows) == 0 {
		return 0, nil, fmt.Errorf("empty sheet")
	}

	limit := min(MaxHeaderSearchRows, len(rows))
	var firstErr error
	for i := 0; i < limit; i++ {
		idx, err := schema.ValidateHeaders(rows[i])
		if err == nil {
			return i, idx, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return 0, nil, firstErr
}

func studentInput(row []string, idx schema.HeaderIndex) core.StudentInput {
	return core.StudentInput{
		StudentID:   idx.Cell(row, schema.ColStudentID),
		Name:        idx.Cell(row, schema.ColName),
		Gender:      idx.Cell(row, schema.ColGender),
		Age:         idx.Cell(row, schema.ColAge),
		NativePlace: idx.Cell(row, schema.ColNativePlace),
		Department:  idx.Cell(row, schema.ColDepartment),
		Major:       idx.Cell(row, schema.ColMajor),
		ClassName:   idx.Cell(row, schema.ColClassName),
		Status:      idx.Cell(row, schema.ColStatus),
	}
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
