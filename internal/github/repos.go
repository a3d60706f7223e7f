package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hochfrequenz/actions-janitor/internal/domain"
)

// apiWorkflow mirrors the REST payload for a workflow definition
type apiWorkflow struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Path  string `json:"path"`
	State string `json:"state"`
}

type workflowsResponse struct {
	TotalCount int           `json:"total_count"`
	Workflows  []apiWorkflow `json:"workflows"`
}

// apiRun mirrors the REST payload for a workflow run
type apiRun struct {
	ID           int64     `json:"id"`
	WorkflowID   int64     `json:"workflow_id"`
	Name         string    `json:"name"`
	Status       string    `json:"status"`
	Conclusion   string    `json:"conclusion"`
	HeadBranch   string    `json:"head_branch"`
	CreatedAt    time.Time `json:"created_at"`
	PullRequests []struct {
		Number int `json:"number"`
	} `json:"pull_requests"`
}

type runsResponse struct {
	TotalCount   int      `json:"total_count"`
	WorkflowRuns []apiRun `json:"workflow_runs"`
}

type apiBranch struct {
	Name string `json:"name"`
}

// ListWorkflows fetches all workflow definitions for a repository,
// following pagination until the set is complete.
func (c *Client) ListWorkflows(ctx context.Context, repo domain.RepoRef) ([]*domain.Workflow, error) {
	var workflows []*domain.Workflow

	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/repos/%s/actions/workflows?per_page=%d&page=%d",
			c.baseURL, repo, perPage, page)

		var resp workflowsResponse
		if err := c.getJSON(ctx, url, &resp); err != nil {
			return nil, fmt.Errorf("listing workflows for %s: %w", repo, err)
		}

		for _, w := range resp.Workflows {
			workflows = append(workflows, &domain.Workflow{
				ID:    w.ID,
				Name:  w.Name,
				Path:  w.Path,
				State: domain.WorkflowState(w.State),
			})
		}

		if len(resp.Workflows) < perPage {
			return workflows, nil
		}
	}
}

// ListBranches fetches the names of all branches in a repository
func (c *Client) ListBranches(ctx context.Context, repo domain.RepoRef) ([]string, error) {
	var names []string

	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/repos/%s/branches?per_page=%d&page=%d",
			c.baseURL, repo, perPage, page)

		var branches []apiBranch
		if err := c.getJSON(ctx, url, &branches); err != nil {
			return nil, fmt.Errorf("listing branches for %s: %w", repo, err)
		}

		for _, b := range branches {
			names = append(names, b.Name)
		}

		if len(branches) < perPage {
			return names, nil
		}
	}
}

// ListAllRuns fetches every workflow run in the repository, including
// runs whose workflow definition no longer exists.
func (c *Client) ListAllRuns(ctx context.Context, repo domain.RepoRef) ([]*domain.WorkflowRun, error) {
	base := fmt.Sprintf("%s/repos/%s/actions/runs", c.baseURL, repo)
	runs, err := c.listRuns(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("listing runs for %s: %w", repo, err)
	}
	return runs, nil
}

// ListRunsForWorkflow fetches all runs belonging to one workflow
func (c *Client) ListRunsForWorkflow(ctx context.Context, repo domain.RepoRef, workflowID int64) ([]*domain.WorkflowRun, error) {
	base := fmt.Sprintf("%s/repos/%s/actions/workflows/%d/runs", c.baseURL, repo, workflowID)
	runs, err := c.listRuns(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("listing runs for workflow %d in %s: %w", workflowID, repo, err)
	}
	return runs, nil
}

func (c *Client) listRuns(ctx context.Context, base string) ([]*domain.WorkflowRun, error) {
	var runs []*domain.WorkflowRun

	for page := 1; ; page++ {
		url := fmt.Sprintf("%s?per_page=%d&page=%d", base, perPage, page)

		var resp runsResponse
		if err := c.getJSON(ctx, url, &resp); err != nil {
			return nil, err
		}

		for _, r := range resp.WorkflowRuns {
			run := &domain.WorkflowRun{
				ID:           r.ID,
				WorkflowID:   r.WorkflowID,
				WorkflowName: r.Name,
				Status:       domain.RunStatus(r.Status),
				Conclusion:   domain.RunConclusion(r.Conclusion),
				HeadBranch:   r.HeadBranch,
				CreatedAt:    r.CreatedAt,
			}
			for _, pr := range r.PullRequests {
				run.PullRequests = append(run.PullRequests, domain.PullRequestRef{Number: pr.Number})
			}
			runs = append(runs, run)
		}

		if len(resp.WorkflowRuns) < perPage {
			return runs, nil
		}
	}
}

// DeleteRun deletes a single workflow run. Deleting an already-deleted
// run is not an error: the call is idempotent from the caller's view.
func (c *Client) DeleteRun(ctx context.Context, repo domain.RepoRef, runID int64) error {
	url := fmt.Sprintf("%s/repos/%s/actions/runs/%d", c.baseURL, repo, runID)

	_, err := c.do(ctx, http.MethodDelete, url)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("deleting run %d in %s: %w", runID, repo, err)
	}
	return nil
}
