package application

import (
	"github.com/JonMunkholm/roster/internal/core"
	tea "github.com/charmbracelet/bubbletea"
)

/* ----------------------------------------
	MENU TREE
---------------------------------------- */

type MenuItem struct {
	Label   string
	Submenu *Menu
	Action  func(m *Model) tea.Cmd
}

type Menu struct {
	Title  string
	Items  []MenuItem
	Parent *Menu
}

/* ----------------------------------------
	MENU TREE DEFINITION
---------------------------------------- */

func linkParents(menu *Menu, parent *Menu) {
	menu.Parent = parent

	for i := range menu.Items {
		item := &menu.Items[i]

		if item.Label == backLabel {
			item.Submenu = parent
			continue
		}

		if item.Submenu != nil {
			linkParents(item.Submenu, menu)
		}
	}
}

func buildMenuTree() *Menu {
	root := &Menu{
		Title: appTitle,
		Items: []MenuItem{
			{Label: "注册学生", Action: (*Model).openAddForm},
			{Label: "修改学籍", Action: (*Model).openUpdatePrompt},
			{Label: "删除学籍", Action: (*Model).openDeletePrompt},
			{Label: "查询学籍 ->", Submenu: loadQueryMenu()},
			{Label: "保存到文件", Action: func(m *Model) tea.Cmd { return m.dispatch(m.students.Save()) }},
			{Label: "列出所有信息", Action: func(m *Model) tea.Cmd { return m.dispatch(m.students.ListAll()) }},
			{Label: "Excel导入/导出 ->", Submenu: loadTransferMenu()},
			{Label: "退出系统", Action: func(m *Model) tea.Cmd { return m.dispatch(m.students.Exit()) }},
		},
	}

	linkParents(root, nil)

	return root
}

/* ----------------------------------------
	LOAD MENUS
---------------------------------------- */

func loadQueryMenu() *Menu {
	menu := &Menu{Title: "查询学籍"}
	for _, field := range core.QueryFields() {
		menu.Items = append(menu.Items, MenuItem{
			Label:  field.Title(),
			Action: func(m *Model) tea.Cmd { return m.openQueryPrompt(field) },
		})
	}
	menu.Items = append(menu.Items, MenuItem{Label: backLabel})
	return menu
}

func loadTransferMenu() *Menu {
	return &Menu{
		Title: "Excel导入/导出",
		Items: []MenuItem{
			{Label: "导出到Excel", Action: func(m *Model) tea.Cmd { return m.dispatch(m.students.Export()) }},
			{Label: "从Excel导入", Action: (*Model).openImportPrompt},
			{Label: backLabel},
		},
	}
}
