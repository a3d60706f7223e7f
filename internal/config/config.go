package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/hochfrequenz/actions-janitor/internal/domain"
	"github.com/hochfrequenz/actions-janitor/internal/retention"
)

// Config holds all application configuration
type Config struct {
	Repository    RepositoryConfig    `toml:"repository" yaml:"repository"`
	Retention     RetentionConfig     `toml:"retention" yaml:"retention"`
	Executor      ExecutorConfig      `toml:"executor" yaml:"executor"`
	History       HistoryConfig       `toml:"history" yaml:"history"`
	Notifications NotificationsConfig `toml:"notifications" yaml:"notifications"`
	Daemon        DaemonConfig        `toml:"daemon" yaml:"daemon"`
}

// RepositoryConfig identifies the target repository and credentials
type RepositoryConfig struct {
	Ref   string `toml:"ref" yaml:"ref"`
	Token string `toml:"token" yaml:"token"`
}

// RetentionConfig holds the retention policy settings
type RetentionConfig struct {
	RetainDays                   int      `toml:"retain_days" yaml:"retain_days"`
	KeepMinimumRuns              int      `toml:"keep_minimum_runs" yaml:"keep_minimum_runs"`
	Daily                        bool     `toml:"daily" yaml:"daily"`
	DeleteWorkflowPattern        string   `toml:"delete_workflow_pattern" yaml:"delete_workflow_pattern"`
	DeleteWorkflowByStatePattern string   `toml:"delete_workflow_by_state_pattern" yaml:"delete_workflow_by_state_pattern"`
	DeleteRunByConclusionPattern string   `toml:"delete_run_by_conclusion_pattern" yaml:"delete_run_by_conclusion_pattern"`
	CheckBranchExistence         bool     `toml:"check_branch_existence" yaml:"check_branch_existence"`
	BranchExceptions             []string `toml:"branch_exceptions" yaml:"branch_exceptions"`
	CheckPullRequestExist        bool     `toml:"check_pullrequest_exist" yaml:"check_pullrequest_exist"`
	DryRun                       bool     `toml:"dry_run" yaml:"dry_run"`
}

// ExecutorConfig holds deletion executor settings
type ExecutorConfig struct {
	Concurrency int `toml:"concurrency" yaml:"concurrency"`
}

// HistoryConfig holds audit log settings
type HistoryConfig struct {
	Enabled      bool   `toml:"enabled" yaml:"enabled"`
	DatabasePath string `toml:"database_path" yaml:"database_path"`
}

// NotificationsConfig holds notification settings
type NotificationsConfig struct {
	Desktop      bool   `toml:"desktop" yaml:"desktop"`
	SlackWebhook string `toml:"slack_webhook" yaml:"slack_webhook"`
}

// DaemonConfig holds scheduled-mode settings
type DaemonConfig struct {
	Cron string `toml:"cron" yaml:"cron"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Retention: RetentionConfig{
			RetainDays:                   30,
			KeepMinimumRuns:              6,
			DeleteWorkflowByStatePattern: "ALL",
			DeleteRunByConclusionPattern: "ALL",
		},
		Executor: ExecutorConfig{
			Concurrency: 4,
		},
		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: filepath.Join(home, ".local", "share", "actions-janitor", "history.db"),
		},
		Daemon: DaemonConfig{
			Cron: "0 3 * * *",
		},
	}
}

// Load reads configuration from a TOML or YAML file, falling back to
// defaults when the file does not exist. The format is chosen by
// extension; anything other than .yaml/.yml is parsed as TOML.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.History.DatabasePath = ExpandPath(cfg.History.DatabasePath)

	return cfg, nil
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "actions-janitor", "config.toml")
}

// Repo parses and validates the configured repository reference.
// A malformed reference is a fatal configuration error raised before
// any backend call.
func (c *Config) Repo() (domain.RepoRef, error) {
	return domain.ParseRepoRef(c.Repository.Ref)
}

// Token returns the configured API token, falling back to GITHUB_TOKEN
func (c *Config) Token() string {
	if c.Repository.Token != "" {
		return c.Repository.Token
	}
	return os.Getenv("GITHUB_TOKEN")
}

// EngineConfig builds the retention engine configuration
func (c *Config) EngineConfig() retention.Config {
	return retention.Config{
		RetainDays:        c.Retention.RetainDays,
		KeepMinimumRuns:   c.Retention.KeepMinimumRuns,
		DailyRetention:    c.Retention.Daily,
		Conclusions:       retention.NewFilter(c.Retention.DeleteRunByConclusionPattern),
		CheckBranchExists: c.Retention.CheckBranchExistence,
		BranchExceptions:  c.Retention.BranchExceptions,
		CheckPullRequests: c.Retention.CheckPullRequestExist,
	}
}

// WorkflowPatterns returns the workflow name/filename patterns
func (c *Config) WorkflowPatterns() []string {
	return retention.SplitPattern(c.Retention.DeleteWorkflowPattern)
}

// StateFilter returns the workflow state filter
func (c *Config) StateFilter() retention.Filter {
	return retention.NewFilter(c.Retention.DeleteWorkflowByStatePattern)
}
