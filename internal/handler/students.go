// Package handler turns shell actions into tea.Cmds that operate on the
// student store. Each command runs off the UI goroutine; the shell sends at
// most one at a time, so the store is never used concurrently.
package handler

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/JonMunkholm/roster/internal/core"
	"github.com/JonMunkholm/roster/internal/logging"
	"github.com/JonMunkholm/roster/internal/transfer"
	tea "github.com/charmbracelet/bubbletea"
)

// exportTimeFormat stamps exported workbook names.
const exportTimeFormat = "20060102_150405"

// Students runs store operations for the shell.
type Students struct {
	ctx       context.Context
	store     *core.Store
	exportDir string
	sheetName string
	now       func() time.Time
}

// NewStudents returns a handler for store. ctx carries the session logger.
func NewStudents(ctx context.Context, store *core.Store, exportDir, sheetName string) *Students {
	return &Students{
		ctx:       ctx,
		store:     store,
		exportDir: exportDir,
		sheetName: sheetName,
		now:       time.Now,
	}
}

// Exists reports whether id is taken. It reads the store directly and must
// only be called while no command is in flight.
func (h *Students) Exists(id string) bool {
	return h.store.Exists(id)
}

// Get returns the record with id, under the same rule as Exists.
func (h *Students) Get(id string) (core.Student, bool) {
	return h.store.Get(id)
}

// Add registers st.
func (h *Students) Add(st core.Student) tea.Cmd {
	return run(h.ctx, func(ctx context.Context) (tea.Msg, error) {
		if err := h.store.Add(ctx, st); err != nil {
			return nil, err
		}
		return DoneMsg(fmt.Sprintf("学生[%s] 注册成功", st.ID())), nil
	})
}

// Update replaces the record with id by st.
func (h *Students) Update(id string, st core.Student) tea.Cmd {
	return run(h.ctx, func(ctx context.Context) (tea.Msg, error) {
		if err := h.store.Update(ctx, id, st); err != nil {
			return nil, err
		}
		return DoneMsg(fmt.Sprintf("学生[%s] 信息更新成功", id)), nil
	})
}

// Delete removes the record with id.
func (h *Students) Delete(id string) tea.Cmd {
	return run(h.ctx, func(ctx context.Context) (tea.Msg, error) {
		if err := h.store.Delete(ctx, id); err != nil {
			return nil, err
		}
		return DoneMsg(fmt.Sprintf("学生[%s] 信息删除成功", id)), nil
	})
}

// Query lists records whose field contains keyword.
func (h *Students) Query(keyword string, field core.QueryField) tea.Cmd {
	return run(h.ctx, func(ctx context.Context) (tea.Msg, error) {
		found, err := h.store.Query(ctx, keyword, field)
		if err != nil {
			return nil, err
		}
		return ListMsg{
			Title:    fmt.Sprintf("%s：%s", field.Title(), keyword),
			Students: found,
			Query:    true,
		}, nil
	})
}

// ListAll lists every record.
func (h *Students) ListAll() tea.Cmd {
	return run(h.ctx, func(ctx context.Context) (tea.Msg, error) {
		return ListMsg{Title: "所有学生信息", Students: h.store.ListAll()}, nil
	})
}

// Save writes the store to its data file.
func (h *Students) Save() tea.Cmd {
	return run(h.ctx, func(ctx context.Context) (tea.Msg, error) {
		if err := h.store.Save(ctx); err != nil {
			return nil, err
		}
		return DoneMsg("数据已保存"), nil
	})
}

// Export writes every record to a new timestamped workbook in the export directory.
func (h *Students) Export() tea.Cmd {
	return run(h.ctx, func(ctx context.Context) (tea.Msg, error) {
		name := fmt.Sprintf("students_%s.xlsx", h.now().Format(exportTimeFormat))
		res, err := transfer.Export(ctx, filepath.Join(h.exportDir, name), h.sheetName, h.store.ListAll())
		if err != nil {
			return nil, err
		}
		return DoneMsg(fmt.Sprintf("已导出 %d 条记录到 %s", res.Rows, res.Path)), nil
	})
}

// Import adds the rows of the workbook at path.
func (h *Students) Import(path string) tea.Cmd {
	return run(h.ctx, func(ctx context.Context) (tea.Msg, error) {
		res, err := transfer.Import(ctx, path, h.sheetName, h.store)
		if err != nil {
			return nil, err
		}
		return ImportMsg{Result: res}, nil
	})
}

// Exit saves before the shell quits. A failed save is reported in the
// ExitMsg rather than as an ErrMsg so the shell can still decide to quit.
func (h *Students) Exit() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(h.ctx, OperationTimeout)
		defer cancel()

		err := h.store.Save(ctx)
		if err != nil {
			logging.FromContext(ctx).Error("save on exit failed", "error", err)
		}
		return ExitMsg{Err: err}
	}
}
