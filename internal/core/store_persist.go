package core

// store_persist.go reads and writes the data file.
//
// Save writes the whole list to a temporary file in the target directory and
// renames it over the data file, so a reader of the data file sees either the
// old contents or the new ones, never a partial write.
//
// Load is tolerant: a malformed line is skipped with a warning and the rest of
// the file still loads. Only a failure to open or read the file aborts it.

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/roster/internal/logging"
)

// tempFilePattern names the temporary file used by Save.
const tempFilePattern = "student_*.tmp"

// WarningKind classifies a skipped line.
type WarningKind string

const (
	WarnFieldCount WarningKind = "field_count"
	WarnAgeFormat  WarningKind = "age_format"
	WarnInvalid    WarningKind = "invalid"
	WarnDuplicate  WarningKind = "duplicate"
)

// LineWarning describes one skipped line. Line is 1-based.
type LineWarning struct {
	Line    int
	Kind    WarningKind
	Message string
}

func (w LineWarning) String() string {
	switch w.Kind {
	case WarnFieldCount:
		return fmt.Sprintf("警告：第%d行数据格式不正确，已跳过", w.Line)
	case WarnAgeFormat:
		return fmt.Sprintf("警告：第%d行年龄格式不正确，已跳过", w.Line)
	case WarnDuplicate:
		return fmt.Sprintf("警告：第%d行学号重复：%s，已跳过", w.Line, w.Message)
	default:
		return fmt.Sprintf("警告：第%d行数据验证失败：%s", w.Line, w.Message)
	}
}

// LoadReport summarizes a Load.
type LoadReport struct {
	FileExists bool
	Loaded     int
	Warnings   []LineWarning
	BytesRead  int64 // raw file bytes, BOM included
}

// Save writes every record to the data file, replacing it atomically.
func (s *Store) Save(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &StorageError{Op: "mkdir", Path: dir, Err: err}
	}

	tmp, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return &StorageError{Op: "create temp", Path: dir, Err: err}
	}
	tmpPath := tmp.Name()

	renamed := false
	defer func() {
		if !renamed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, st := range s.students {
		if _, err := w.WriteString(EncodeLine(st)); err != nil {
			return &StorageError{Op: "write", Path: tmpPath, Err: err}
		}
		if err := w.WriteByte('\n'); err != nil {
			return &StorageError{Op: "write", Path: tmpPath, Err: err}
		}
	}
	if err := w.Flush(); err != nil {
		return &StorageError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &StorageError{Op: "sync", Path: tmpPath, Err: err}
	}
	if err := tmp.Chmod(0o644); err != nil {
		return &StorageError{Op: "chmod", Path: tmpPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &StorageError{Op: "close", Path: tmpPath, Err: err}
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return &StorageError{Op: "rename", Path: s.path, Err: err}
	}
	renamed = true

	logging.FromContext(ctx).Debug("student data saved", "path", s.path, "records", len(s.students))
	LogAudit(ctx, AuditLogParams{Action: ActionFileSave, RowsAffected: len(s.students)})
	return nil
}

// Load replaces the in-memory list with the contents of the data file.
// A missing file is the first-run state and yields an empty list. On an I/O
// failure the in-memory list is left as it was.
func (s *Store) Load(ctx context.Context) (LoadReport, error) {
	logger := logging.FromContext(ctx)

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.students = nil
		logger.Info("no data file yet, starting empty", "path", s.path)
		return LoadReport{}, nil
	}
	if err != nil {
		return LoadReport{}, &StorageError{Op: "open", Path: s.path, Err: err}
	}
	defer f.Close()

	report := LoadReport{FileExists: true}
	decoded, counter := loadReader(f)
	r := bufio.NewReader(decoded)

	var loaded []Student
	seen := make(map[string]int)
	lineNumber := 0

	for {
		line, readErr := r.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return LoadReport{}, &StorageError{Op: "read", Path: s.path, Err: readErr}
		}
		if readErr == io.EOF && line == "" {
			break
		}

		lineNumber++
		line = trimLineEnding(line)

		st, err := DecodeLine(line)
		if err != nil {
			w := classifyLineError(lineNumber, err)
			report.Warnings = append(report.Warnings, w)
			logger.Warn("skipped data line", "line", w.Line, "kind", string(w.Kind), "reason", w.Message)
		} else if first, dup := seen[st.id]; dup {
			w := LineWarning{
				Line:    lineNumber,
				Kind:    WarnDuplicate,
				Message: fmt.Sprintf("%s（首次出现于第%d行）", st.id, first),
			}
			report.Warnings = append(report.Warnings, w)
			logger.Warn("skipped data line", "line", w.Line, "kind", string(w.Kind), "reason", w.Message)
		} else {
			seen[st.id] = lineNumber
			loaded = append(loaded, st)
		}

		if readErr == io.EOF {
			break
		}
	}

	s.students = loaded
	report.Loaded = len(loaded)
	report.BytesRead = counter.n

	logger.Info("student data loaded",
		"path", s.path,
		"records", report.Loaded,
		"skipped", len(report.Warnings),
	)
	LogAudit(ctx, AuditLogParams{Action: ActionFileLoad, RowsAffected: report.Loaded})

	return report, nil
}

func trimLineEnding(line string) string {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line
}

// classifyLineError maps a DecodeLine failure to a warning.
func classifyLineError(line int, err error) LineWarning {
	switch {
	case errors.Is(err, ErrFieldCount):
		return LineWarning{Line: line, Kind: WarnFieldCount, Message: err.Error()}
	case errors.Is(err, ErrAgeFormat):
		return LineWarning{Line: line, Kind: WarnAgeFormat, Message: err.Error()}
	default:
		return LineWarning{Line: line, Kind: WarnInvalid, Message: err.Error()}
	}
}
