// Package application is the interactive shell: a bubbletea program with a
// menu tree, entry forms, and result tables over the student store.
package application

import (
	"fmt"
	"strings"
	"time"

	"github.com/JonMunkholm/roster/internal/core"
	"github.com/JonMunkholm/roster/internal/handler"
	tea "github.com/charmbracelet/bubbletea"
)

// maxFailedRowsShown caps the per-row lines printed after an import.
const maxFailedRowsShown = 10

// Options configures the shell.
type Options struct {
	DataPath      string
	ConfirmDelete bool
	Startup       []string // lines shown under the title until the first action
}

type confirmPrompt struct {
	Text  string
	OnYes func() tea.Cmd
}

// Model is the shell state. Only one command runs at a time: while busy,
// input other than ctrl+c is ignored.
type Model struct {
	students *handler.Students
	opts     Options

	menu   *Menu
	cursor int

	form    *Form
	confirm *confirmPrompt

	busy      bool
	status    string
	statusErr bool
	notices   []string
	list      *handler.ListMsg

	width    int
	quitting bool
}

// New returns the shell positioned at the root menu.
func New(students *handler.Students, opts Options) *Model {
	return &Model{
		students: students,
		opts:     opts,
		menu:     buildMenuTree(),
		notices:  opts.Startup,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		switch {
		case m.form != nil:
			return m, m.updateForm(msg)
		case m.confirm != nil:
			return m, m.updateConfirm(msg)
		default:
			return m, m.updateMenu(msg)
		}

	case handler.DoneMsg:
		m.busy = false
		m.setStatus(string(msg), false)
		return m, nil

	case handler.WdMsg:
		m.setStatus(string(msg), false)
		return m, nil

	case handler.ErrMsg:
		m.busy = false
		m.setStatus(core.DisplayError(msg.Err), true)
		return m, nil

	case handler.ListMsg:
		m.busy = false
		m.showList(msg)
		return m, nil

	case handler.ImportMsg:
		m.busy = false
		m.showImport(msg)
		return m, nil

	case handler.ExitMsg:
		m.busy = false
		if msg.Err != nil {
			m.setStatus("保存失败，未退出："+core.DisplayError(msg.Err), true)
			return m, nil
		}
		m.quitting = true
		m.setStatus("系统退出", false)
		return m, tea.Quit
	}

	return m, nil
}

// dispatch marks the shell busy and returns cmd. Previous results are cleared.
func (m *Model) dispatch(cmd tea.Cmd) tea.Cmd {
	m.busy = true
	m.list = nil
	m.notices = nil
	m.status = ""
	m.statusErr = false
	return cmd
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

/* ----------------------------------------
	MENU
---------------------------------------- */

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.menu.Items)-1 {
			m.cursor++
		}
	case "esc", "backspace":
		if m.menu.Parent != nil {
			m.enter(m.menu.Parent)
		}
	case "enter", " ":
		return m.selectItem(m.cursor)
	default:
		if r := msg.Runes; len(r) == 1 && r[0] >= '1' && r[0] <= '9' {
			i := int(r[0] - '1')
			if i < len(m.menu.Items) {
				m.cursor = i
				return m.selectItem(i)
			}
		}
	}
	return nil
}

func (m *Model) selectItem(i int) tea.Cmd {
	item := m.menu.Items[i]
	switch {
	case item.Submenu != nil:
		m.enter(item.Submenu)
		return nil
	case item.Action != nil:
		return item.Action(m)
	case item.Label == backLabel:
		if m.menu.Parent != nil {
			m.enter(m.menu.Parent)
		}
	}
	return nil
}

func (m *Model) enter(menu *Menu) {
	from := m.menu
	m.menu = menu
	m.cursor = 0
	for i, item := range menu.Items {
		if item.Submenu == from {
			m.cursor = i
			break
		}
	}
}

/* ----------------------------------------
	FORMS
---------------------------------------- */

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch m.form.Update(msg) {
	case formCancel:
		m.form = nil
		m.setStatus(cancelledText, false)
	case formSubmit:
		f := m.form
		m.form = nil
		return f.Submit(f.Values())
	}
	return nil
}

func (m *Model) openForm(f *Form) tea.Cmd {
	m.form = f
	m.list = nil
	m.notices = nil
	m.status = ""
	return nil
}

func (m *Model) openAddForm() tea.Cmd {
	return m.openForm(newStudentForm("注册学生", nil,
		func(id string) error {
			if m.students.Exists(id) {
				return fmt.Errorf("学号 [%s] 已存在", id)
			}
			return nil
		},
		func(st core.Student) tea.Cmd { return m.dispatch(m.students.Add(st)) },
	))
}

func (m *Model) openUpdatePrompt() tea.Cmd {
	return m.openForm(&Form{
		Title:  "修改学籍",
		Fields: []formField{{Label: "要修改的学号"}},
		Check:  m.checkExistingID,
		Submit: func(values []string) tea.Cmd {
			id := values[0]
			current, _ := m.students.Get(id)
			in := current.Input()
			return m.openForm(newStudentForm("修改学籍："+id, &in,
				func(newID string) error {
					if newID != id && m.students.Exists(newID) {
						return fmt.Errorf("新学号 [%s] 已存在", newID)
					}
					return nil
				},
				func(st core.Student) tea.Cmd { return m.dispatch(m.students.Update(id, st)) },
			))
		},
	})
}

func (m *Model) openDeletePrompt() tea.Cmd {
	return m.openForm(&Form{
		Title:  "删除学籍",
		Fields: []formField{{Label: "要删除的学号"}},
		Check:  m.checkExistingID,
		Submit: func(values []string) tea.Cmd {
			id := values[0]
			if !m.opts.ConfirmDelete {
				return m.dispatch(m.students.Delete(id))
			}
			st, _ := m.students.Get(id)
			m.confirm = &confirmPrompt{
				Text:  st.String() + "\n确认删除吗？(y/n)",
				OnYes: func() tea.Cmd { return m.dispatch(m.students.Delete(id)) },
			}
			return nil
		},
	})
}

func (m *Model) openQueryPrompt(field core.QueryField) tea.Cmd {
	return m.openForm(&Form{
		Title:  field.Title(),
		Fields: []formField{{Label: "关键词"}},
		Check:  requireValue,
		Submit: func(values []string) tea.Cmd {
			return m.dispatch(m.students.Query(values[0], field))
		},
	})
}

func (m *Model) openImportPrompt() tea.Cmd {
	return m.openForm(&Form{
		Title:  "从Excel导入",
		Fields: []formField{{Label: "文件路径", Hint: ".xlsx"}},
		Check:  requireValue,
		Submit: func(values []string) tea.Cmd {
			return m.dispatch(m.students.Import(values[0]))
		},
	})
}

func (m *Model) checkExistingID(f *Form, i int) error {
	id := strings.TrimSpace(f.Fields[i].Value)
	if id == "" {
		return fmt.Errorf("%s不能为空", core.FieldLabelStudentID)
	}
	if !m.students.Exists(id) {
		return fmt.Errorf("未找到学号为 [%s] 的学生", id)
	}
	return nil
}

/* ----------------------------------------
	CONFIRM
---------------------------------------- */

func (m *Model) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch strings.ToLower(msg.String()) {
	case "y":
		c := m.confirm
		m.confirm = nil
		return c.OnYes()
	case "n", "esc", "enter":
		m.confirm = nil
		m.setStatus(cancelledText, false)
	}
	return nil
}

/* ----------------------------------------
	RESULTS
---------------------------------------- */

func (m *Model) showList(msg handler.ListMsg) {
	m.list = &msg
	switch {
	case len(msg.Students) > 0:
		m.setStatus(fmt.Sprintf("找到 %d 条记录：", len(msg.Students)), false)
	case msg.Query:
		m.setStatus(noMatchText, false)
	default:
		m.setStatus(emptyText, false)
	}
}

func (m *Model) showImport(msg handler.ImportMsg) {
	res := msg.Result
	m.setStatus(fmt.Sprintf("导入完成：共 %d 行，成功 %d 行，跳过 %d 行（用时 %s）",
		res.Total, res.Inserted, res.Skipped, res.Duration.Round(time.Millisecond)), false)

	m.notices = nil
	for i, fr := range res.FailedRows {
		if i == maxFailedRowsShown {
			m.notices = append(m.notices, fmt.Sprintf("……另有 %d 行未显示", len(res.FailedRows)-i))
			break
		}
		m.notices = append(m.notices, fmt.Sprintf("第%d行：%s", fr.Row, fr.Reason))
	}
}

// errCmd reports err through the normal error path.
func errCmd(err error) tea.Cmd {
	return func() tea.Msg { return handler.ErrMsg{Err: err} }
}
