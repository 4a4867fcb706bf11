package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#666666"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type focus int

const (
	focusSections focus = iota
	focusRows
)

type interactiveModel struct {
	sections []section
	selected int
	focus    focus
	rows     table.Model
	width    int
	height   int
}

func newInteractiveModel(sections []section) *interactiveModel {
	m := &interactiveModel{
		sections: sections,
		rows:     table.New(table.WithFocused(false)),
		width:    100,
		height:   30,
	}
	m.show()
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

// show loads the selected section into the row table.
func (m *interactiveModel) show() {
	// Rows go first: the table renders existing rows against new columns.
	m.rows.SetRows(nil)
	if len(m.sections) == 0 {
		m.rows.SetColumns(nil)
		return
	}
	s := m.sections[m.selected]
	m.rows.SetColumns(columns(s, m.tableWidth()))
	rows := make([]table.Row, len(s.rows))
	for i, r := range s.rows {
		rows[i] = table.Row(r)
	}
	m.rows.SetRows(rows)
	m.rows.SetCursor(0)
	m.rows.SetHeight(max(3, m.height-6))
}

func (m *interactiveModel) listWidth() int {
	w := 10
	for _, s := range m.sections {
		w = max(w, len(s.title)+2)
	}
	return w
}

func (m *interactiveModel) tableWidth() int {
	return max(20, m.width-m.listWidth()-6)
}

// columns sizes each column to its widest cell, shrinking the last one to
// fit width.
func columns(s section, width int) []table.Column {
	cols := make([]table.Column, len(s.headers))
	used := 0
	for i, h := range s.headers {
		w := len(h)
		for _, r := range s.rows {
			if i < len(r) {
				w = max(w, len(r[i]))
			}
		}
		cols[i] = table.Column{Title: h, Width: w}
		used += w + 2
	}
	if n := len(cols); n > 0 && used > width {
		cols[n-1].Width = max(4, cols[n-1].Width-(used-width))
	}
	return cols
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.show()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "tab", "enter", "right", "l":
			if m.focus == focusSections && len(m.sections) > 0 {
				m.focus = focusRows
				m.rows.Focus()
				return m, nil
			}

		case "esc", "left", "h":
			if m.focus == focusRows {
				m.focus = focusSections
				m.rows.Blur()
				return m, nil
			}

		case "up", "k":
			if m.focus == focusSections && m.selected > 0 {
				m.selected--
				m.show()
				return m, nil
			}

		case "down", "j":
			if m.focus == focusSections && m.selected < len(m.sections)-1 {
				m.selected++
				m.show()
				return m, nil
			}
		}
	}

	if m.focus == focusRows {
		var cmd tea.Cmd
		m.rows, cmd = m.rows.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) View() string {
	if len(m.sections) == 0 {
		return "Nothing to show.\n\nPress q to quit."
	}

	var list strings.Builder
	group := ""
	for i, s := range m.sections {
		if s.group != group {
			group = s.group
			list.WriteString(groupStyle.Render(group))
			list.WriteString("\n")
		}
		line := " " + s.title
		if i == m.selected {
			list.WriteString(selectedStyle.Render(line))
		} else {
			list.WriteString(line)
		}
		list.WriteString("\n")
	}

	s := m.sections[m.selected]
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Width(m.listWidth()).Render(list.String()),
		paneStyle.Render(m.rows.View()),
	)

	help := "↑/↓ section • tab rows • q quit"
	if m.focus == focusRows {
		help = "↑/↓ row • esc sections • q quit"
	}
	return fmt.Sprintf("%s %s\n%s\n%s",
		titleStyle.Render("Shim Inspector"),
		fmt.Sprintf("%s, %d rows", s.title, len(s.rows)),
		body,
		helpStyle.Render(help))
}

func runInteractive(sections []section) error {
	p := tea.NewProgram(newInteractiveModel(sections), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
