package retention

import (
	"testing"

	"github.com/hochfrequenz/actions-janitor/internal/domain"
)

func testWorkflows() []*domain.Workflow {
	return []*domain.Workflow{
		{ID: 1, Name: "CI", Path: ".github/workflows/ci.yml", State: domain.WorkflowActive},
		{ID: 2, Name: "Release", Path: ".github/workflows/release.yml", State: domain.WorkflowActive},
		{ID: 3, Name: "Nightly Build", Path: ".github/workflows/nightly.yml", State: domain.WorkflowDisabledManually},
		{ID: 4, Name: "pages-build-deployment", Path: "dynamic/pages/pages-build-deployment", State: domain.WorkflowDeleted},
	}
}

func TestFilterWorkflows_NoFilters(t *testing.T) {
	got := FilterWorkflows(testWorkflows(), nil, NewFilter("ALL"))
	if len(got) != 4 {
		t.Errorf("got %d workflows, want all 4", len(got))
	}
}

func TestFilterWorkflows_ByName(t *testing.T) {
	tests := []struct {
		patterns []string
		wantIDs  []int64
	}{
		{[]string{"CI"}, []int64{1}},
		{[]string{"ci.yml"}, []int64{1}},                  // filename match
		{[]string{"Release", "Nightly"}, []int64{2, 3}},   // OR across patterns
		{[]string{"pages-build-deployment"}, []int64{4}},  // path prefix stripped
		{[]string{"ci"}, []int64{1}},                      // matches ci.yml, not "CI" (case-sensitive)
		{[]string{"nope"}, nil},
	}

	for _, tt := range tests {
		got := FilterWorkflows(testWorkflows(), tt.patterns, Filter{})
		gotIDs := make([]int64, len(got))
		for i, w := range got {
			gotIDs[i] = w.ID
		}
		if len(gotIDs) != len(tt.wantIDs) {
			t.Errorf("patterns %v: got %v, want %v", tt.patterns, gotIDs, tt.wantIDs)
			continue
		}
		for i := range gotIDs {
			if gotIDs[i] != tt.wantIDs[i] {
				t.Errorf("patterns %v: got %v, want %v", tt.patterns, gotIDs, tt.wantIDs)
				break
			}
		}
	}
}

func TestFilterWorkflows_ByState(t *testing.T) {
	got := FilterWorkflows(testWorkflows(), nil, NewFilter("disabled_manually,deleted"))
	if len(got) != 2 {
		t.Fatalf("got %d workflows, want 2", len(got))
	}
	if got[0].ID != 3 || got[1].ID != 4 {
		t.Errorf("got ids [%d %d], want [3 4]", got[0].ID, got[1].ID)
	}
}

func TestFilterWorkflows_NameAndState(t *testing.T) {
	got := FilterWorkflows(testWorkflows(), []string{".yml"}, NewFilter("active"))
	if len(got) != 2 {
		t.Fatalf("got %d workflows, want 2", len(got))
	}
}
