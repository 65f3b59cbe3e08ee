package application

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/roster/internal/core"
	"github.com/JonMunkholm/roster/internal/handler"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T, confirmDelete bool) (*Model, *core.Store) {
	t.Helper()
	dir := t.TempDir()
	store := core.NewStore(filepath.Join(dir, "student_data.txt"))
	h := handler.NewStudents(context.Background(), store, filepath.Join(dir, "exports"), "学生学籍")
	return New(h, Options{DataPath: store.Path(), ConfirmDelete: confirmDelete}), store
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msg to the model and runs any returned command to completion,
// feeding its message back in. It returns the last command's message.
func send(t *testing.T, m *Model, msg tea.Msg) tea.Msg {
	t.Helper()
	var last tea.Msg
	for msg != nil {
		_, cmd := m.Update(msg)
		msg = nil
		if cmd != nil {
			msg = cmd()
			last = msg
			if _, quit := msg.(tea.QuitMsg); quit {
				return msg
			}
		}
	}
	return last
}

// typeField types value into the focused field and presses enter.
func typeField(t *testing.T, m *Model, value string) {
	t.Helper()
	if value != "" {
		send(t, m, key(value))
	}
	send(t, m, key("enter"))
}

func register(t *testing.T, m *Model, values ...string) {
	t.Helper()
	send(t, m, key("1"))
	if m.form == nil {
		t.Fatal("register did not open a form")
	}
	for _, v := range values {
		typeField(t, m, v)
	}
}

func TestRegisterStudent(t *testing.T) {
	m, store := newTestModel(t, true)

	register(t, m, "2023001", "张三", "男", "20", "北京", "计算机系", "软件工程", "软工1班", "")

	if m.form != nil {
		t.Fatalf("form still open: %q", m.form.Err)
	}
	if store.Len() != 1 {
		t.Fatalf("store.Len() = %d, want 1", store.Len())
	}
	if m.status != "学生[2023001] 注册成功" {
		t.Errorf("status = %q", m.status)
	}
	if m.busy {
		t.Error("model still busy after DoneMsg")
	}
}

func TestRegisterRejectsBadFieldInPlace(t *testing.T) {
	m, _ := newTestModel(t, true)

	register(t, m, "2023001", "张三", "X")
	if m.form == nil || m.form.Focus != 2 {
		t.Fatalf("expected focus to stay on gender")
	}
	if m.form.Err != "性别必须是'男'或'女'" {
		t.Errorf("form.Err = %q", m.form.Err)
	}

	send(t, m, key("backspace"))
	typeField(t, m, "女")
	typeField(t, m, "12")
	if m.form.Focus != 3 || !strings.Contains(m.form.Err, "15到50") {
		t.Errorf("focus = %d, err = %q", m.form.Focus, m.form.Err)
	}
}

func TestRegisterRejectsComma(t *testing.T) {
	m, store := newTestModel(t, true)

	register(t, m, "2023001", "张三", "男", "20", "北京,海淀")
	if m.form == nil || m.form.Focus != 4 {
		t.Fatal("expected focus to stay on native place")
	}
	if m.form.Err != "籍贯不能包含逗号或换行" {
		t.Errorf("form.Err = %q", m.form.Err)
	}
	if store.Len() != 0 {
		t.Errorf("store.Len() = %d, want 0", store.Len())
	}
}

func TestRegisterDuplicateID(t *testing.T) {
	m, _ := newTestModel(t, true)
	register(t, m, "2023001", "张三", "男", "20", "", "计算机系", "软件工程", "软工1班", "入学")

	register(t, m, "2023001")
	if m.form == nil || m.form.Focus != 0 {
		t.Fatal("duplicate id should keep focus on the id field")
	}
	if m.form.Err != "学号 [2023001] 已存在" {
		t.Errorf("form.Err = %q", m.form.Err)
	}

	send(t, m, key("esc"))
	if m.form != nil || m.status != cancelledText {
		t.Errorf("esc should cancel, status = %q", m.status)
	}
}

func TestDeleteWithConfirmation(t *testing.T) {
	m, store := newTestModel(t, true)
	register(t, m, "2023001", "张三", "男", "20", "", "计算机系", "软件工程", "软工1班", "")

	send(t, m, key("3"))
	typeField(t, m, "nobody")
	if m.form == nil || !strings.Contains(m.form.Err, "未找到") {
		t.Fatalf("unknown id should be rejected in the form")
	}
	send(t, m, key("ctrl+c"))

	m, store = reopen(t, store, true)
	send(t, m, key("3"))
	typeField(t, m, "2023001")
	if m.confirm == nil {
		t.Fatal("expected a confirmation prompt")
	}
	send(t, m, key("n"))
	if store.Len() != 1 || m.status != cancelledText {
		t.Fatalf("n should cancel: len=%d status=%q", store.Len(), m.status)
	}

	send(t, m, key("3"))
	typeField(t, m, "2023001")
	send(t, m, key("y"))
	if store.Len() != 0 {
		t.Errorf("store.Len() = %d after confirmed delete", store.Len())
	}
}

func TestDeleteWithoutConfirmation(t *testing.T) {
	m, store := newTestModel(t, false)
	register(t, m, "2023001", "张三", "男", "20", "", "计算机系", "软件工程", "软工1班", "")

	send(t, m, key("3"))
	typeField(t, m, "2023001")
	if m.confirm != nil {
		t.Fatal("no prompt expected when confirmation is off")
	}
	if store.Len() != 0 {
		t.Errorf("store.Len() = %d", store.Len())
	}
}

func TestUpdateStudent(t *testing.T) {
	m, store := newTestModel(t, true)
	register(t, m, "2023001", "张三", "男", "20", "", "计算机系", "软件工程", "软工1班", "")

	send(t, m, key("2"))
	typeField(t, m, "2023001")
	if m.form == nil || m.form.Fields[1].Value != "张三" {
		t.Fatal("update form should be prefilled")
	}
	for i := 0; i < 8; i++ {
		typeField(t, m, "")
	}
	send(t, m, key("ctrl+c"))
	m, store = reopen(t, store, true)

	send(t, m, key("2"))
	typeField(t, m, "2023001")
	for i := 0; i < 8; i++ {
		typeField(t, m, "")
	}
	// status field: clear "入学" and enter "休学"
	send(t, m, key("backspace"))
	send(t, m, key("backspace"))
	typeField(t, m, "休学")

	got, _ := store.Get("2023001")
	if got.Status() != core.StatusSuspended {
		t.Errorf("status = %v, want 休学", got.Status())
	}
}

func TestQueryShowsTable(t *testing.T) {
	m, _ := newTestModel(t, true)
	register(t, m, "2023001", "张三", "男", "20", "", "计算机系", "软件工程", "软工1班", "")

	send(t, m, key("4"))
	if m.menu.Title != "查询学籍" {
		t.Fatalf("menu = %q", m.menu.Title)
	}
	send(t, m, key("2"))
	typeField(t, m, "张")

	if m.list == nil || len(m.list.Students) != 1 {
		t.Fatal("expected one result")
	}
	view := m.View()
	for _, want := range []string{"找到 1 条记录：", "张三", "入学(正常入学就读)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	send(t, m, key("2"))
	typeField(t, m, "李")
	if m.status != noMatchText {
		t.Errorf("status = %q, want %q", m.status, noMatchText)
	}

	send(t, m, key("esc"))
	if m.menu.Title != appTitle || m.cursor != 3 {
		t.Errorf("esc should return to root at the query item, got %q cursor %d", m.menu.Title, m.cursor)
	}
}

func TestListAllEmpty(t *testing.T) {
	m, _ := newTestModel(t, true)
	send(t, m, key("6"))
	if m.status != emptyText {
		t.Errorf("status = %q, want %q", m.status, emptyText)
	}
}

func TestExitSavesAndQuits(t *testing.T) {
	m, store := newTestModel(t, true)

	msg := send(t, m, key("8"))
	if _, ok := msg.(tea.QuitMsg); !ok {
		t.Fatalf("expected quit, got %#v", msg)
	}
	if _, err := os.Stat(store.Path()); err != nil {
		t.Errorf("exit should write the data file: %v", err)
	}
}

func TestBusyIgnoresInput(t *testing.T) {
	m, _ := newTestModel(t, true)
	m.busy = true
	m.Update(key("1"))
	if m.form != nil {
		t.Error("input should be ignored while busy")
	}
	m.Update(handler.DoneMsg("ok"))
	if m.busy {
		t.Error("DoneMsg should clear busy")
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"abc", 3},
		{"张三", 4},
		{"软工1班", 7},
		{"", 0},
	}
	for _, tt := range tests {
		if got := displayWidth(tt.in); got != tt.want {
			t.Errorf("displayWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
	if got := padRight("张三", 6); got != "张三  " {
		t.Errorf("padRight = %q", got)
	}
}

// reopen builds a fresh model over a new store loaded from the same file.
func reopen(t *testing.T, store *core.Store, confirmDelete bool) (*Model, *core.Store) {
	t.Helper()
	s, _, err := core.OpenStore(context.Background(), store.Path())
	if err != nil {
		t.Fatal(err)
	}
	h := handler.NewStudents(context.Background(), s, t.TempDir(), "学生学籍")
	return New(h, Options{ConfirmDelete: confirmDelete}), s
}
