// Package executor performs the deletion side of a cleanup invocation.
// It fans out delete calls with bounded concurrency and records each
// outcome independently: one run's failure never aborts its siblings.
package executor

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hochfrequenz/actions-janitor/internal/domain"
	"github.com/hochfrequenz/actions-janitor/internal/github"
)

// Deleter is the single backend capability the executor needs
type Deleter interface {
	DeleteRun(ctx context.Context, repo domain.RepoRef, runID int64) error
}

// Options configures an execution pass
type Options struct {
	Repo        domain.RepoRef
	DryRun      bool
	Concurrency int
}

// Outcome records the result of one delete attempt
type Outcome struct {
	Run   *domain.WorkflowRun
	Err   error // nil on success or dry-run
	Dry   bool
	Tried time.Time
}

// Summary tallies an execution pass
type Summary struct {
	Deleted int
	Skipped int
	Failed  int
}

// Execute deletes the given runs. In dry-run mode every run is logged
// and counted as skipped with zero backend calls. Outcomes are in no
// particular order.
func Execute(ctx context.Context, runs []*domain.WorkflowRun, del Deleter, opts Options) (Summary, []Outcome) {
	if opts.DryRun {
		outcomes := make([]Outcome, 0, len(runs))
		for _, run := range runs {
			log.Printf("[executor] dry-run: would delete run %d (%s, branch %s, created %s)",
				run.ID, run.WorkflowName, run.HeadBranch, run.CreatedAt.Format(time.RFC3339))
			outcomes = append(outcomes, Outcome{Run: run, Dry: true, Tried: time.Now()})
		}
		return Summary{Skipped: len(runs)}, outcomes
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	var (
		mu       sync.Mutex
		summary  Summary
		outcomes []Outcome
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, run := range runs {
		run := run
		g.Go(func() error {
			err := del.DeleteRun(ctx, opts.Repo, run.ID)

			mu.Lock()
			defer mu.Unlock()
			outcomes = append(outcomes, Outcome{Run: run, Err: err, Tried: time.Now()})

			switch {
			case err == nil:
				summary.Deleted++
				log.Printf("[executor] deleted run %d (%s)", run.ID, run.WorkflowName)
			case errors.Is(err, github.ErrSecondaryRateLimit):
				summary.Failed++
				log.Printf("[executor] run %d hit secondary rate limit, not retrying", run.ID)
			default:
				summary.Failed++
				log.Printf("[executor] failed to delete run %d: %v", run.ID, err)
			}

			// Failures are isolated; never propagate into the group.
			return nil
		})
	}

	g.Wait()
	return summary, outcomes
}
