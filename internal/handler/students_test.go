package handler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/roster/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T) (*Students, *core.Store) {
	t.Helper()
	dir := t.TempDir()
	store := core.NewStore(filepath.Join(dir, "student_data.txt"))
	h := NewStudents(context.Background(), store, filepath.Join(dir, "exports"), "学生学籍")
	h.now = func() time.Time { return time.Date(2024, 9, 1, 8, 30, 0, 0, time.UTC) }
	return h, store
}

func newStudent(t *testing.T, id, name string) core.Student {
	t.Helper()
	st, err := core.NewStudent(core.StudentInput{
		StudentID:  id,
		Name:       name,
		Gender:     "男",
		Age:        "21",
		Department: "化学系",
		Major:      "应用化学",
		ClassName:  "化学2班",
	})
	require.NoError(t, err)
	return st
}

func TestStudents_AddUpdateDelete(t *testing.T) {
	h, store := newHandler(t)

	msg := h.Add(newStudent(t, "S1", "周杰"))()
	assert.Equal(t, DoneMsg("学生[S1] 注册成功"), msg)
	assert.True(t, h.Exists("S1"))

	msg = h.Add(newStudent(t, "S1", "周杰"))()
	errMsg, ok := msg.(ErrMsg)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.Err, core.ErrDuplicate)

	msg = h.Update("S1", newStudent(t, "S1", "周伦"))()
	assert.Equal(t, DoneMsg("学生[S1] 信息更新成功"), msg)
	got, _ := h.Get("S1")
	assert.Equal(t, "周伦", got.Name())

	msg = h.Delete("S1")()
	assert.Equal(t, DoneMsg("学生[S1] 信息删除成功"), msg)
	assert.Equal(t, 0, store.Len())
}

func TestStudents_QueryAndList(t *testing.T) {
	h, _ := newHandler(t)
	h.Add(newStudent(t, "S1", "周杰"))()
	h.Add(newStudent(t, "S2", "吴磊"))()

	msg := h.Query("周", core.QueryByName)()
	list, ok := msg.(ListMsg)
	require.True(t, ok)
	assert.Equal(t, "按姓名查询：周", list.Title)
	require.Len(t, list.Students, 1)
	assert.Equal(t, "S1", list.Students[0].ID())

	msg = h.ListAll()()
	list, ok = msg.(ListMsg)
	require.True(t, ok)
	assert.Len(t, list.Students, 2)

	msg = h.Query("", core.QueryByName)()
	_, isErr := msg.(ErrMsg)
	assert.True(t, isErr)
}

func TestStudents_ExportImport(t *testing.T) {
	h, _ := newHandler(t)
	h.Add(newStudent(t, "S1", "周杰"))()

	msg := h.Export()()
	done, ok := msg.(DoneMsg)
	require.True(t, ok, "got %#v", msg)
	assert.True(t, strings.HasSuffix(string(done), "students_20240901_083000.xlsx"))

	path := filepath.Join(filepath.Dir(h.store.Path()), "exports", "students_20240901_083000.xlsx")
	_, err := os.Stat(path)
	require.NoError(t, err)

	other, _ := newHandler(t)
	msg = other.Import(path)()
	imp, ok := msg.(ImportMsg)
	require.True(t, ok, "got %#v", msg)
	assert.Equal(t, 1, imp.Result.Inserted)
	assert.True(t, other.Exists("S1"))
}

func TestStudents_ExitReportsSaveFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	store := core.NewStore(filepath.Join(blocker, "student_data.txt"))
	h := NewStudents(context.Background(), store, t.TempDir(), "学生学籍")

	msg := h.Exit()()
	exit, ok := msg.(ExitMsg)
	require.True(t, ok)
	assert.ErrorIs(t, exit.Err, core.ErrStorage)

	h2, _ := newHandler(t)
	assert.Equal(t, ExitMsg{}, h2.Exit()())
}
