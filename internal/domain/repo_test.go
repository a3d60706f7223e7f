package domain

import "testing"

func TestParseRepoRef(t *testing.T) {
	tests := []struct {
		input   string
		owner   string
		name    string
		wantErr bool
	}{
		{"hochfrequenz/actions-janitor", "hochfrequenz", "actions-janitor", false},
		{"owner/repo", "owner", "repo", false},
		{"", "", "", true},
		{"justowner", "", "", true},
		{"owner/", "", "", true},
		{"/repo", "", "", true},
		{"a/b/c", "", "", true},
	}

	for _, tt := range tests {
		ref, err := ParseRepoRef(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRepoRef(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if ref.Owner != tt.owner || ref.Name != tt.name {
			t.Errorf("ParseRepoRef(%q) = %v, want %s/%s", tt.input, ref, tt.owner, tt.name)
		}
	}
}

func TestRepoRef_String(t *testing.T) {
	ref := RepoRef{Owner: "octo", Name: "hello"}
	if got := ref.String(); got != "octo/hello" {
		t.Errorf("String() = %q, want %q", got, "octo/hello")
	}
}

func TestWorkflow_Filename(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{".github/workflows/ci.yml", "ci.yml"},
		{"ci.yml", "ci.yml"},
		{"dynamic/pages/pages-build-deployment", "pages-build-deployment"},
	}

	for _, tt := range tests {
		w := &Workflow{Path: tt.path}
		if got := w.Filename(); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
