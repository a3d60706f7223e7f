package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles TUI messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit

		case "tab", "right", "l":
			m.activeTab = (m.activeTab + 1) % 3
			m.scroll = 0

		case "shift+tab", "left", "h":
			m.activeTab = (m.activeTab + 2) % 3
			m.scroll = 0

		case "down", "j":
			m.scroll++
			m.clampScroll()

		case "up", "k":
			m.scroll--
			m.clampScroll()

		case "pgdown":
			m.scroll += m.pageSize()
			m.clampScroll()

		case "pgup":
			m.scroll -= m.pageSize()
			m.clampScroll()

		case "home", "g":
			m.scroll = 0

		case "end", "G":
			m.scroll = len(m.Rows())
			m.clampScroll()
		}
	}

	return m, nil
}

// pageSize is the number of rows visible at once
func (m Model) pageSize() int {
	// header, tab bar, column header, status bar
	size := m.height - 5
	if size < 1 {
		size = 10
	}
	return size
}

func (m *Model) clampScroll() {
	max := len(m.Rows()) - m.pageSize()
	if max < 0 {
		max = 0
	}
	if m.scroll > max {
		m.scroll = max
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}
