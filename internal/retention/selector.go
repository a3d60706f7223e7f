package retention

import (
	"sort"
	"time"

	"github.com/hochfrequenz/actions-janitor/internal/domain"
)

// Partition is the retain/delete split of one workflow's candidates
type Partition struct {
	Retain []*domain.WorkflowRun
	Delete []*domain.WorkflowRun
}

// Select partitions the deletion candidates of a single workflow under
// the configured strategy. It never mutates its input and is
// deterministic: equal creation times keep their input order (stable
// sort), so repeated invocations over the same snapshot produce the
// same partition.
func Select(candidates []*domain.WorkflowRun, cfg Config, now time.Time) Partition {
	if len(candidates) == 0 {
		return Partition{}
	}
	if cfg.DailyRetention {
		return selectDaily(candidates, cfg, now)
	}
	return selectGlobal(candidates, cfg)
}

// selectGlobal keeps the KeepMinimumRuns most recent candidates and
// deletes the rest.
func selectGlobal(candidates []*domain.WorkflowRun, cfg Config) Partition {
	runs := make([]*domain.WorkflowRun, len(candidates))
	copy(runs, candidates)
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].CreatedAt.Before(runs[j].CreatedAt)
	})

	keep := cfg.KeepMinimumRuns
	if keep >= len(runs) {
		return Partition{Retain: runs}
	}

	cut := len(runs) - keep
	return Partition{
		Retain: runs[cut:],
		Delete: runs[:cut],
	}
}

// selectDaily buckets candidates by the UTC calendar date of their
// creation and keeps up to KeepMinimumRuns most recent runs per day.
// Runs that have already reached the global retention window go
// straight to the delete set; daily retention only protects
// recent-enough runs.
func selectDaily(candidates []*domain.WorkflowRun, cfg Config, now time.Time) Partition {
	cutoff := cfg.RetainCutoff(now)

	var part Partition
	buckets := make(map[string][]*domain.WorkflowRun)
	var order []string

	for _, run := range candidates {
		if !run.CreatedAt.After(cutoff) {
			part.Delete = append(part.Delete, run)
			continue
		}
		day := run.CreatedAt.UTC().Format("2006-01-02")
		if _, seen := buckets[day]; !seen {
			order = append(order, day)
		}
		buckets[day] = append(buckets[day], run)
	}
	sort.Strings(order)

	for _, day := range order {
		runs := buckets[day]
		sort.SliceStable(runs, func(i, j int) bool {
			return runs[i].CreatedAt.After(runs[j].CreatedAt)
		})

		keep := cfg.KeepMinimumRuns
		if keep > len(runs) {
			keep = len(runs)
		}
		part.Retain = append(part.Retain, runs[:keep]...)
		part.Delete = append(part.Delete, runs[keep:]...)
	}

	return part
}
