package history

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/hochfrequenz/actions-janitor/internal/domain"
	"github.com/hochfrequenz/actions-janitor/internal/executor"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_InvocationLifecycle(t *testing.T) {
	store := testStore(t)
	repo := domain.RepoRef{Owner: "octo", Name: "hello"}
	started := time.Date(2025, 6, 15, 3, 0, 0, 0, time.UTC)

	id, err := store.Begin(repo, false, started)
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Fatal("Begin should return an invocation id")
	}

	summary := executor.Summary{Deleted: 7, Failed: 1}
	if err := store.Finish(id, summary, started.Add(time.Minute)); err != nil {
		t.Fatal(err)
	}

	invocations, err := store.ListInvocations(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(invocations) != 1 {
		t.Fatalf("got %d invocations, want 1", len(invocations))
	}

	inv := invocations[0]
	if inv.Repository != "octo/hello" || inv.Deleted != 7 || inv.Failed != 1 {
		t.Errorf("unexpected invocation: %+v", inv)
	}
	if inv.FinishedAt == nil {
		t.Error("FinishedAt should be set after Finish")
	}
}

func TestStore_RecordOutcomes(t *testing.T) {
	store := testStore(t)
	repo := domain.RepoRef{Owner: "octo", Name: "hello"}

	id, err := store.Begin(repo, true, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	outcomes := []executor.Outcome{
		{Run: &domain.WorkflowRun{ID: 1, WorkflowName: "CI"}, Dry: true},
		{Run: &domain.WorkflowRun{ID: 2, WorkflowName: "CI"}, Err: fmt.Errorf("boom")},
	}
	if err := store.RecordOutcomes(id, outcomes); err != nil {
		t.Fatal(err)
	}

	var count int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM outcomes WHERE invocation_id = ?`, id).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("got %d outcomes, want 2", count)
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	store := testStore(t)
	repo := domain.RepoRef{Owner: "octo", Name: "hello"}

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	var last string
	for i := 0; i < 3; i++ {
		id, err := store.Begin(repo, false, base.Add(time.Duration(i)*time.Hour))
		if err != nil {
			t.Fatal(err)
		}
		last = id
	}

	invocations, err := store.ListInvocations(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(invocations) != 2 {
		t.Fatalf("got %d invocations, want 2 (limit)", len(invocations))
	}
	if invocations[0].ID != last {
		t.Error("invocations should be newest first")
	}
}
