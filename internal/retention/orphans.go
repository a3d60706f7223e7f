package retention

import "github.com/hochfrequenz/actions-janitor/internal/domain"

// FindOrphans returns the runs whose owning workflow no longer appears
// in the current workflow list. Orphans arise when a workflow file is
// deleted from the repository while its historical runs remain; they
// can never be reached by per-workflow processing, so they bypass the
// retention policy entirely and are always deletion candidates
// (subject only to dry-run).
func FindOrphans(runs []*domain.WorkflowRun, known map[int64]struct{}) []*domain.WorkflowRun {
	var orphans []*domain.WorkflowRun
	for _, run := range runs {
		if _, ok := known[run.WorkflowID]; !ok {
			orphans = append(orphans, run)
		}
	}
	return orphans
}

// KnownWorkflowIDs collects the id set of the given workflows
func KnownWorkflowIDs(workflows []*domain.Workflow) map[int64]struct{} {
	ids := make(map[int64]struct{}, len(workflows))
	for _, w := range workflows {
		ids[w.ID] = struct{}{}
	}
	return ids
}
