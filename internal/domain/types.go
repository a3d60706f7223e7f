package domain

// WorkflowState represents the lifecycle state of a workflow definition
type WorkflowState string

const (
	WorkflowActive             WorkflowState = "active"
	WorkflowDeleted            WorkflowState = "deleted"
	WorkflowDisabledFork       WorkflowState = "disabled_fork"
	WorkflowDisabledInactivity WorkflowState = "disabled_inactivity"
	WorkflowDisabledManually   WorkflowState = "disabled_manually"
)

// RunStatus represents the execution state of a workflow run
type RunStatus string

const (
	RunQueued     RunStatus = "queued"
	RunInProgress RunStatus = "in_progress"
	RunCompleted  RunStatus = "completed"
	RunWaiting    RunStatus = "waiting"
	RunRequested  RunStatus = "requested"
	RunPending    RunStatus = "pending"
)

// RunConclusion represents the terminal outcome of a completed run
type RunConclusion string

const (
	ConclusionSuccess        RunConclusion = "success"
	ConclusionFailure        RunConclusion = "failure"
	ConclusionCancelled      RunConclusion = "cancelled"
	ConclusionSkipped        RunConclusion = "skipped"
	ConclusionActionRequired RunConclusion = "action_required"
	ConclusionTimedOut       RunConclusion = "timed_out"
	ConclusionNeutral        RunConclusion = "neutral"
	ConclusionStale          RunConclusion = "stale"
)

// Action represents the retention decision for a single run
type Action string

const (
	ActionRetain Action = "retain"
	ActionDelete Action = "delete"
	ActionSkip   Action = "skip"
)
