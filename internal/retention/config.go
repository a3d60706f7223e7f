package retention

import "time"

// Config controls the retention decision engine. It is constructed once
// per invocation and read-only thereafter; every component receives it
// explicitly rather than reading ambient state.
type Config struct {
	// RetainDays is the minimum age in days before a completed run
	// becomes delete-eligible. Zero means age never protects a run.
	RetainDays int

	// KeepMinimumRuns protects the N most recent candidates per
	// workflow (or per calendar day when DailyRetention is set).
	KeepMinimumRuns int

	// DailyRetention switches the selector to per-calendar-day buckets.
	DailyRetention bool

	// Conclusions restricts deletion to runs with matching conclusions.
	Conclusions Filter

	// CheckBranchExists protects runs whose head branch still exists.
	CheckBranchExists bool

	// BranchExceptions lists branch names treated as nonexistent for
	// the branch check, so their runs are not protected.
	BranchExceptions []string

	// CheckPullRequests protects runs with linked pull requests.
	CheckPullRequests bool
}

// RetainCutoff returns the creation-time threshold implied by
// RetainDays: runs created at or before the cutoff have reached the
// retention window.
func (c Config) RetainCutoff(now time.Time) time.Time {
	return now.Add(-time.Duration(c.RetainDays) * 24 * time.Hour)
}
