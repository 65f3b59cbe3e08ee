package application

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/roster/internal/core"
	"github.com/JonMunkholm/roster/internal/schema"
	"golang.org/x/text/width"
)

const (
	cursorMark  = "> "
	columnGap   = "  "
	helpMenu    = "↑/↓ 选择  Enter 确认  1-9 快捷选择  Esc 返回  Ctrl+C 退出"
	helpForm    = "Enter/Tab 下一项  Shift+Tab 上一项  Ctrl+U 清空  Esc 取消"
	helpConfirm = "y 确认  n 取消"
)

func (m *Model) View() string {
	if m.quitting {
		return m.status + "\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "=== %s ===\n", appTitle)
	if m.opts.DataPath != "" {
		fmt.Fprintf(&b, "数据文件：%s\n", m.opts.DataPath)
	}
	b.WriteString("\n")

	switch {
	case m.form != nil:
		m.viewForm(&b)
	case m.confirm != nil:
		b.WriteString(m.confirm.Text + "\n\n")
		b.WriteString(helpConfirm + "\n")
	default:
		m.viewMenu(&b)
	}

	if m.busy {
		b.WriteString("\n" + busyText + "\n")
	}
	if m.status != "" {
		prefix := ""
		if m.statusErr {
			prefix = "操作失败："
		}
		b.WriteString("\n" + prefix + m.status + "\n")
	}
	for _, line := range m.notices {
		b.WriteString(line + "\n")
	}
	if m.list != nil && len(m.list.Students) > 0 {
		b.WriteString("\n" + m.list.Title + "\n")
		b.WriteString(renderTable(m.list.Students))
	}

	return b.String()
}

func (m *Model) viewMenu(b *strings.Builder) {
	fmt.Fprintf(b, "%s\n\n", m.menu.Title)
	for i, item := range m.menu.Items {
		mark := strings.Repeat(" ", len(cursorMark))
		if i == m.cursor {
			mark = cursorMark
		}
		fmt.Fprintf(b, "%s%d. %s\n", mark, i+1, item.Label)
	}
	b.WriteString("\n" + helpMenu + "\n")
}

func (m *Model) viewForm(b *strings.Builder) {
	f := m.form
	fmt.Fprintf(b, "=== %s ===\n\n", f.Title)

	labelWidth := 0
	for _, fld := range f.Fields {
		labelWidth = max(labelWidth, displayWidth(fld.Label))
	}

	for i, fld := range f.Fields {
		mark := strings.Repeat(" ", len(cursorMark))
		value := fld.Value
		if i == f.Focus {
			mark = cursorMark
			value += "█"
		}
		line := fmt.Sprintf("%s%s：%s", mark, padRight(fld.Label, labelWidth), value)
		if fld.Hint != "" && (i == f.Focus || fld.Value == "") {
			line += "  (" + fld.Hint + ")"
		}
		b.WriteString(line + "\n")
	}

	if f.Err != "" {
		b.WriteString("\n" + f.Err + "\n")
	}
	b.WriteString("\n" + helpForm + "\n")
}

/* ----------------------------------------
	TABLE
---------------------------------------- */

func tableRow(st core.Student) []string {
	return []string{
		st.ID(),
		st.Name(),
		st.Gender(),
		fmt.Sprint(st.Age()),
		st.NativePlace(),
		st.Department(),
		st.Major(),
		st.ClassName(),
		fmt.Sprintf("%s(%s)", st.Status().Label(), st.Status().Description()),
	}
}

// renderTable lays students out in aligned columns, counting wide characters
// as two cells.
func renderTable(students []core.Student) string {
	headers := schema.Headers()
	rows := make([][]string, len(students))
	widths := make([]int, len(headers))

	for i, h := range headers {
		widths[i] = displayWidth(h)
	}
	for r, st := range students {
		rows[r] = tableRow(st)
		for i, cell := range rows[r] {
			widths[i] = max(widths[i], displayWidth(cell))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString(columnGap)
			}
			if i == len(cells)-1 {
				b.WriteString(cell)
			} else {
				b.WriteString(padRight(cell, widths[i]))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers)
	sep := make([]string, len(headers))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
	return b.String()
}

// displayWidth is the number of terminal cells s occupies.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func padRight(s string, w int) string {
	if gap := w - displayWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
