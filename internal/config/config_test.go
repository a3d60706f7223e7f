package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Retention.RetainDays != 30 {
		t.Errorf("RetainDays = %d, want 30", cfg.Retention.RetainDays)
	}
	if cfg.Retention.KeepMinimumRuns != 6 {
		t.Errorf("KeepMinimumRuns = %d, want 6", cfg.Retention.KeepMinimumRuns)
	}
	if !cfg.StateFilter().Unrestricted() {
		t.Error("default state filter should be unrestricted")
	}
}

func TestLoad_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[repository]
ref = "octo/hello"

[retention]
retain_days = 14
keep_minimum_runs = 3
daily = true
delete_run_by_conclusion_pattern = "failure,cancelled"
check_branch_existence = true
branch_exceptions = ["nightly"]
dry_run = true

[executor]
concurrency = 8
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	repo, err := cfg.Repo()
	if err != nil {
		t.Fatal(err)
	}
	if repo.String() != "octo/hello" {
		t.Errorf("repo = %s", repo)
	}

	engine := cfg.EngineConfig()
	if engine.RetainDays != 14 || engine.KeepMinimumRuns != 3 || !engine.DailyRetention {
		t.Errorf("engine config = %+v", engine)
	}
	if engine.Conclusions.Matches("success") {
		t.Error("success should not pass the conclusion filter")
	}
	if !engine.Conclusions.Matches("failure") {
		t.Error("failure should pass the conclusion filter")
	}
	if !engine.CheckBranchExists || len(engine.BranchExceptions) != 1 {
		t.Errorf("branch settings not loaded: %+v", engine)
	}
	if cfg.Executor.Concurrency != 8 {
		t.Errorf("Concurrency = %d, want 8", cfg.Executor.Concurrency)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
repository:
  ref: octo/hello
retention:
  retain_days: 7
  delete_workflow_pattern: "ci,release"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Retention.RetainDays != 7 {
		t.Errorf("RetainDays = %d, want 7", cfg.Retention.RetainDays)
	}
	patterns := cfg.WorkflowPatterns()
	if len(patterns) != 2 || patterns[0] != "ci" || patterns[1] != "release" {
		t.Errorf("WorkflowPatterns = %v", patterns)
	}
}

func TestRepo_Invalid(t *testing.T) {
	cfg := Default()
	cfg.Repository.Ref = "not-a-repo"

	if _, err := cfg.Repo(); err == nil {
		t.Fatal("malformed repository reference should be rejected")
	}
}

func TestToken_EnvFallback(t *testing.T) {
	cfg := Default()
	t.Setenv("GITHUB_TOKEN", "env-token")

	if got := cfg.Token(); got != "env-token" {
		t.Errorf("Token() = %q, want env fallback", got)
	}

	cfg.Repository.Token = "file-token"
	if got := cfg.Token(); got != "file-token" {
		t.Errorf("Token() = %q, want file value to win", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()
	if got := ExpandPath("~/x"); got != filepath.Join(home, "x") {
		t.Errorf("ExpandPath(~/x) = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath(/abs/path) = %q", got)
	}
}
