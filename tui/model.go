package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hochfrequenz/actions-janitor/internal/domain"
	"github.com/hochfrequenz/actions-janitor/internal/janitor"
)

// Tab selects which decision class is displayed
type Tab int

const (
	TabDelete Tab = iota
	TabRetain
	TabSkipped
)

var tabNames = []string{"Delete", "Retain", "Skipped"}

// Row is one rendered decision line
type Row struct {
	RunID      int64
	Workflow   string
	Branch     string
	Conclusion string
	Age        string
	Reason     string
}

// Model is the decision browser model
type Model struct {
	repo    string
	dryRun  bool
	tabs    [3][]Row
	summary string

	// UI state
	width     int
	height    int
	activeTab Tab
	scroll    int
}

// NewModel builds a browser over a computed cleanup report
func NewModel(report *janitor.Report) Model {
	m := Model{
		repo:   report.Repo.String(),
		dryRun: report.DryRun,
	}

	now := report.StartedAt
	for _, orphan := range report.Orphans {
		m.tabs[TabDelete] = append(m.tabs[TabDelete], newRow(orphan, now, "workflow no longer exists"))
	}

	for _, wr := range report.Workflows {
		for _, d := range wr.Decisions {
			row := newRow(d.Run, now, d.Reason)
			if row.Workflow == "" {
				row.Workflow = wr.Workflow.Name
			}
			switch d.Action {
			case domain.ActionDelete:
				m.tabs[TabDelete] = append(m.tabs[TabDelete], row)
			case domain.ActionRetain:
				m.tabs[TabRetain] = append(m.tabs[TabRetain], row)
			default:
				m.tabs[TabSkipped] = append(m.tabs[TabSkipped], row)
			}
		}
	}

	m.summary = fmt.Sprintf("%d to delete · %d retained · %d skipped",
		len(m.tabs[TabDelete]), len(m.tabs[TabRetain]), len(m.tabs[TabSkipped]))

	return m
}

func newRow(run *domain.WorkflowRun, now time.Time, reason string) Row {
	return Row{
		RunID:      run.ID,
		Workflow:   run.WorkflowName,
		Branch:     run.HeadBranch,
		Conclusion: string(run.Conclusion),
		Age:        formatAge(run.Age(now)),
		Reason:     reason,
	}
}

func formatAge(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days >= 1 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

// Rows returns the rows of the active tab
func (m Model) Rows() []Row {
	return m.tabs[m.activeTab]
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}
