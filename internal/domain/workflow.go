package domain

import "path"

// Workflow represents a workflow definition as fetched from the backend.
// It is an immutable snapshot taken once per invocation.
type Workflow struct {
	ID    int64
	Name  string
	Path  string
	State WorkflowState
}

// Filename returns the workflow file name with any directory prefix stripped,
// e.g. ".github/workflows/ci.yml" -> "ci.yml".
func (w *Workflow) Filename() string {
	return path.Base(w.Path)
}
