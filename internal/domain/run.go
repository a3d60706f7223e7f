package domain

import "time"

// PullRequestRef is a lightweight reference to a pull request linked to a run
type PullRequestRef struct {
	Number int
}

// WorkflowRun represents a single execution record of a workflow.
// Snapshots are immutable; the janitor never observes live mutation
// during one invocation.
type WorkflowRun struct {
	ID           int64
	WorkflowID   int64
	WorkflowName string
	Status       RunStatus
	Conclusion   RunConclusion
	HeadBranch   string
	CreatedAt    time.Time
	PullRequests []PullRequestRef
}

// Finished reports whether the run has reached a terminal state
func (r *WorkflowRun) Finished() bool {
	return r.Status == RunCompleted
}

// Age returns how long ago the run was created
func (r *WorkflowRun) Age(now time.Time) time.Duration {
	return now.Sub(r.CreatedAt)
}

// Decision records the retention outcome for a single run.
// Decisions are ephemeral; they are computed, acted upon and discarded.
type Decision struct {
	Run    *WorkflowRun
	Action Action
	Reason string
}
