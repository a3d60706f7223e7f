package retention

import (
	"fmt"
	"time"

	"github.com/hochfrequenz/actions-janitor/internal/domain"
)

// BranchSet is the set of branch names that currently exist in the
// repository, as seen by the branch-existence check.
type BranchSet map[string]struct{}

// NewBranchSet builds a BranchSet from the backend's branch listing.
// Exception names are dropped from the set: runs on those branches are
// treated as if the branch no longer existed, so they stay deletable.
func NewBranchSet(names, exceptions []string) BranchSet {
	set := make(BranchSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	for _, e := range exceptions {
		delete(set, e)
	}
	return set
}

// Contains reports whether the branch currently exists
func (b BranchSet) Contains(name string) bool {
	_, ok := b[name]
	return ok
}

// ShouldDelete decides whether a single run is a deletion candidate
// under cfg. Checks short-circuit; the first failing check determines
// the skip reason. The age check is deferred to the selector when
// daily retention is active.
func ShouldDelete(run *domain.WorkflowRun, cfg Config, branches BranchSet, now time.Time) (bool, string) {
	if !run.Finished() {
		return false, fmt.Sprintf("status %s is not finished", run.Status)
	}

	if cfg.CheckPullRequests && len(run.PullRequests) > 0 {
		return false, fmt.Sprintf("linked to %d pull request(s)", len(run.PullRequests))
	}

	if cfg.CheckBranchExists && branches.Contains(run.HeadBranch) {
		return false, fmt.Sprintf("branch %s still exists", run.HeadBranch)
	}

	if !cfg.Conclusions.Matches(string(run.Conclusion)) {
		return false, fmt.Sprintf("conclusion %s not selected", run.Conclusion)
	}

	if !cfg.DailyRetention {
		// A run created exactly at the cutoff has reached the
		// retention window and is deletable.
		if run.CreatedAt.After(cfg.RetainCutoff(now)) {
			return false, fmt.Sprintf("younger than %d day(s)", cfg.RetainDays)
		}
	}

	return true, ""
}
