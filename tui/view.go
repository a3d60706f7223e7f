package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Foreground(lipgloss.Color("255")).
		Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Foreground(lipgloss.Color("255"))

	tabActiveStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		Underline(true)

	tabInactiveStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	deleteStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	retainStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	dimmedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))
)

// View renders the decision browser
func (m Model) View() string {
	var b strings.Builder

	title := fmt.Sprintf("actions-janitor — %s", m.repo)
	if m.dryRun {
		title += " (dry run)"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-12s %-28s %-20s %-12s %5s  %s",
		"RUN", "WORKFLOW", "BRANCH", "CONCLUSION", "AGE", "REASON")))
	b.WriteString("\n")

	rows := m.Rows()
	if len(rows) == 0 {
		b.WriteString(dimmedStyle.Render("  nothing here"))
		b.WriteString("\n")
	}

	end := m.scroll + m.pageSize()
	if end > len(rows) {
		end = len(rows)
	}
	for _, row := range rows[m.scroll:end] {
		line := fmt.Sprintf("%-12d %-28s %-20s %-12s %5s  %s",
			row.RunID,
			truncate(row.Workflow, 28),
			truncate(row.Branch, 20),
			row.Conclusion,
			row.Age,
			row.Reason,
		)
		switch m.activeTab {
		case TabDelete:
			b.WriteString(deleteStyle.Render(line))
		case TabRetain:
			b.WriteString(retainStyle.Render(line))
		default:
			b.WriteString(dimmedStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString(statusBarStyle.Render(fmt.Sprintf(" %s · tab: switch · q: quit ", m.summary)))

	return b.String()
}

func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		label := fmt.Sprintf("%s (%d)", name, len(m.tabs[i]))
		if Tab(i) == m.activeTab {
			tabs = append(tabs, tabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, tabInactiveStyle.Render(label))
		}
	}
	return " " + strings.Join(tabs, "  ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
