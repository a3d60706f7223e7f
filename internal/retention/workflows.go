package retention

import (
	"strings"

	"github.com/hochfrequenz/actions-janitor/internal/domain"
)

// FilterWorkflows narrows the workflow list to those the janitor should
// operate on. Name patterns are case-sensitive substrings matched
// against the display name or the base filename (OR across patterns and
// across the two fields); an empty pattern list matches everything.
// The state filter matches the workflow state as an enum value.
func FilterWorkflows(workflows []*domain.Workflow, namePatterns []string, states Filter) []*domain.Workflow {
	var out []*domain.Workflow
	for _, w := range workflows {
		if !matchesName(w, namePatterns) {
			continue
		}
		if !states.Matches(string(w.State)) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func matchesName(w *domain.Workflow, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	filename := w.Filename()
	for _, p := range patterns {
		if strings.Contains(w.Name, p) || strings.Contains(filename, p) {
			return true
		}
	}
	return false
}
