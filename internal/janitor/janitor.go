// Package janitor wires one cleanup invocation together: narrow the
// workflow list, evaluate each run, select what the retention policy
// protects, then hand the delete set to the executor. All decisions are
// computed before any deletion call is issued, so cancellation before
// the execute stage is side-effect-free.
package janitor

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hochfrequenz/actions-janitor/internal/domain"
	"github.com/hochfrequenz/actions-janitor/internal/executor"
	"github.com/hochfrequenz/actions-janitor/internal/retention"
)

// Backend is the remote capability contract the janitor depends on.
// Implementations return fully paginated snapshots.
type Backend interface {
	ListWorkflows(ctx context.Context, repo domain.RepoRef) ([]*domain.Workflow, error)
	ListBranches(ctx context.Context, repo domain.RepoRef) ([]string, error)
	ListAllRuns(ctx context.Context, repo domain.RepoRef) ([]*domain.WorkflowRun, error)
	ListRunsForWorkflow(ctx context.Context, repo domain.RepoRef, workflowID int64) ([]*domain.WorkflowRun, error)
	DeleteRun(ctx context.Context, repo domain.RepoRef, runID int64) error
}

// Config holds everything one invocation needs. It is built once and
// never mutated afterwards.
type Config struct {
	Repo             domain.RepoRef
	Retention        retention.Config
	WorkflowPatterns []string         // name/filename substrings
	WorkflowStates   retention.Filter // workflow state filter
	DryRun           bool
	Concurrency      int
}

// WorkflowReport is the decision pass result for one workflow
type WorkflowReport struct {
	Workflow  *domain.Workflow
	TotalRuns int
	Partition retention.Partition
	Decisions []domain.Decision
}

// Report is the full outcome of one invocation
type Report struct {
	Repo       domain.RepoRef
	StartedAt  time.Time
	FinishedAt time.Time
	DryRun     bool
	Workflows  []*WorkflowReport
	Orphans    []*domain.WorkflowRun
	Summary    executor.Summary
	Outcomes   []executor.Outcome
}

// DeleteSet returns every run slated for deletion: orphans first, then
// each workflow's delete partition in workflow order.
func (r *Report) DeleteSet() []*domain.WorkflowRun {
	var runs []*domain.WorkflowRun
	runs = append(runs, r.Orphans...)
	for _, wr := range r.Workflows {
		runs = append(runs, wr.Partition.Delete...)
	}
	return runs
}

// Janitor runs cleanup invocations against a backend
type Janitor struct {
	backend Backend
	cfg     Config
	now     func() time.Time // swappable in tests
}

// New creates a Janitor
func New(backend Backend, cfg Config) *Janitor {
	return &Janitor{
		backend: backend,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Plan computes the full decision report without deleting anything.
// Listing failures are fatal: without a complete snapshot the engine
// has no valid input.
func (j *Janitor) Plan(ctx context.Context) (*Report, error) {
	now := j.now()
	report := &Report{
		Repo:      j.cfg.Repo,
		StartedAt: now,
		DryRun:    j.cfg.DryRun,
	}

	workflows, err := j.backend.ListWorkflows(ctx, j.cfg.Repo)
	if err != nil {
		return nil, fmt.Errorf("fetching workflows: %w", err)
	}

	// Orphans are detected against the complete, unfiltered workflow
	// list; per-workflow processing can never reach them.
	allRuns, err := j.backend.ListAllRuns(ctx, j.cfg.Repo)
	if err != nil {
		return nil, fmt.Errorf("fetching run history: %w", err)
	}
	report.Orphans = retention.FindOrphans(allRuns, retention.KnownWorkflowIDs(workflows))

	var branches retention.BranchSet
	if j.cfg.Retention.CheckBranchExists {
		names, err := j.backend.ListBranches(ctx, j.cfg.Repo)
		if err != nil {
			return nil, fmt.Errorf("fetching branches: %w", err)
		}
		branches = retention.NewBranchSet(names, j.cfg.Retention.BranchExceptions)
	}

	selected := retention.FilterWorkflows(workflows, j.cfg.WorkflowPatterns, j.cfg.WorkflowStates)
	report.Workflows = make([]*WorkflowReport, len(selected))

	// Workflows are independent: each reads only the shared read-only
	// snapshots and writes its own report slot.
	concurrency := j.cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, wf := range selected {
		i, wf := i, wf
		g.Go(func() error {
			wr, err := j.planWorkflow(gctx, wf, branches, now)
			if err != nil {
				return err
			}
			report.Workflows[i] = wr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.FinishedAt = j.now()
	return report, nil
}

func (j *Janitor) planWorkflow(ctx context.Context, wf *domain.Workflow, branches retention.BranchSet, now time.Time) (*WorkflowReport, error) {
	runs, err := j.backend.ListRunsForWorkflow(ctx, j.cfg.Repo, wf.ID)
	if err != nil {
		return nil, fmt.Errorf("fetching runs for %s: %w", wf.Name, err)
	}

	wr := &WorkflowReport{Workflow: wf, TotalRuns: len(runs)}

	var candidates []*domain.WorkflowRun
	for _, run := range runs {
		ok, reason := retention.ShouldDelete(run, j.cfg.Retention, branches, now)
		if !ok {
			wr.Decisions = append(wr.Decisions, domain.Decision{
				Run: run, Action: domain.ActionSkip, Reason: reason,
			})
			continue
		}
		candidates = append(candidates, run)
	}

	wr.Partition = retention.Select(candidates, j.cfg.Retention, now)

	for _, run := range wr.Partition.Retain {
		wr.Decisions = append(wr.Decisions, domain.Decision{
			Run: run, Action: domain.ActionRetain, Reason: "protected by minimum-runs policy",
		})
	}
	for _, run := range wr.Partition.Delete {
		wr.Decisions = append(wr.Decisions, domain.Decision{
			Run: run, Action: domain.ActionDelete, Reason: "passed all retention filters",
		})
	}

	return wr, nil
}

// Clean computes the decision report and executes its delete set
func (j *Janitor) Clean(ctx context.Context) (*Report, error) {
	report, err := j.Plan(ctx)
	if err != nil {
		return nil, err
	}

	deletes := report.DeleteSet()
	log.Printf("[janitor] %s: %d workflow(s) processed, %d orphan(s), %d run(s) to delete",
		j.cfg.Repo, len(report.Workflows), len(report.Orphans), len(deletes))

	summary, outcomes := executor.Execute(ctx, deletes, j.backend, executor.Options{
		Repo:        j.cfg.Repo,
		DryRun:      j.cfg.DryRun,
		Concurrency: j.cfg.Concurrency,
	})
	report.Summary = summary
	report.Outcomes = outcomes
	report.FinishedAt = j.now()

	return report, nil
}
