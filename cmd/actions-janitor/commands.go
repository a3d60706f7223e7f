package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hochfrequenz/actions-janitor/internal/config"
	"github.com/hochfrequenz/actions-janitor/internal/executor"
	"github.com/hochfrequenz/actions-janitor/internal/github"
	"github.com/hochfrequenz/actions-janitor/internal/history"
	"github.com/hochfrequenz/actions-janitor/internal/janitor"
	"github.com/hochfrequenz/actions-janitor/internal/notify"
	"github.com/hochfrequenz/actions-janitor/internal/retention"
	"github.com/hochfrequenz/actions-janitor/internal/schedule"
	"github.com/hochfrequenz/actions-janitor/tui"
)

var (
	flagRepo        string
	flagDryRun      bool
	flagRetainDays  int
	flagKeepMinimum int
	flagWorkflows   string
	flagConclusions string
	historyLimit    int
	orphansDryRun   bool
)

func init() {
	// cleanup command
	cleanupCmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete workflow runs outside the retention policy",
		RunE:  runCleanup,
	}
	cleanupCmd.Flags().StringVar(&flagRepo, "repo", "", "repository (owner/name), overrides config")
	cleanupCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "compute and log decisions without deleting")
	cleanupCmd.Flags().IntVar(&flagRetainDays, "retain-days", -1, "override retain_days")
	cleanupCmd.Flags().IntVar(&flagKeepMinimum, "keep-minimum", -1, "override keep_minimum_runs")
	cleanupCmd.Flags().StringVar(&flagWorkflows, "workflows", "", "override delete_workflow_pattern")
	cleanupCmd.Flags().StringVar(&flagConclusions, "conclusions", "", "override delete_run_by_conclusion_pattern")
	rootCmd.AddCommand(cleanupCmd)

	// preview command
	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "Browse retention decisions without deleting anything",
		RunE:  runPreview,
	}
	previewCmd.Flags().StringVar(&flagRepo, "repo", "", "repository (owner/name), overrides config")
	rootCmd.AddCommand(previewCmd)

	// orphans command
	orphansCmd := &cobra.Command{
		Use:   "orphans",
		Short: "Delete runs whose workflow no longer exists",
		RunE:  runOrphans,
	}
	orphansCmd.Flags().StringVar(&flagRepo, "repo", "", "repository (owner/name), overrides config")
	orphansCmd.Flags().BoolVar(&orphansDryRun, "dry-run", false, "list orphans without deleting")
	rootCmd.AddCommand(orphansCmd)

	// daemon command
	daemonCmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run cleanup on a cron schedule",
		RunE:  runDaemon,
	}
	rootCmd.AddCommand(daemonCmd)

	// history command
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent cleanup invocations",
		RunE:  runHistory,
	}
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of invocations to show")
	rootCmd.AddCommand(historyCmd)

	// version command
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("actions-janitor %s\n", version)
		},
	}
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg)
	return cfg, nil
}

func applyOverrides(cfg *config.Config) {
	if flagRepo != "" {
		cfg.Repository.Ref = flagRepo
	}
	if flagDryRun {
		cfg.Retention.DryRun = true
	}
	if flagRetainDays >= 0 {
		cfg.Retention.RetainDays = flagRetainDays
	}
	if flagKeepMinimum >= 0 {
		cfg.Retention.KeepMinimumRuns = flagKeepMinimum
	}
	if flagWorkflows != "" {
		cfg.Retention.DeleteWorkflowPattern = flagWorkflows
	}
	if flagConclusions != "" {
		cfg.Retention.DeleteRunByConclusionPattern = flagConclusions
	}
}

// newJanitor validates config and builds the invocation pieces.
// Configuration errors surface here, before any backend call.
func newJanitor(cfg *config.Config) (*janitor.Janitor, error) {
	repo, err := cfg.Repo()
	if err != nil {
		return nil, err
	}

	client := github.NewClient(cfg.Token())
	return janitor.New(client, janitor.Config{
		Repo:             repo,
		Retention:        cfg.EngineConfig(),
		WorkflowPatterns: cfg.WorkflowPatterns(),
		WorkflowStates:   cfg.StateFilter(),
		DryRun:           cfg.Retention.DryRun,
		Concurrency:      cfg.Executor.Concurrency,
	}), nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	report, err := cleanOnce(ctx, cfg)
	if err != nil {
		return err
	}

	printReport(report)
	return nil
}

// cleanOnce runs a full invocation including history and notifications
func cleanOnce(ctx context.Context, cfg *config.Config) (*janitor.Report, error) {
	j, err := newJanitor(cfg)
	if err != nil {
		return nil, err
	}

	var store *history.Store
	var invocationID string
	if cfg.History.Enabled {
		store, err = history.New(cfg.History.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("opening history database: %w", err)
		}
		defer store.Close()
	}

	repo, _ := cfg.Repo()
	if store != nil {
		invocationID, err = store.Begin(repo, cfg.Retention.DryRun, time.Now())
		if err != nil {
			log.Printf("[janitor] history: %v", err)
			store = nil
		}
	}

	report, err := j.Clean(ctx)
	if err != nil {
		return nil, err
	}

	if store != nil {
		if err := store.RecordOutcomes(invocationID, report.Outcomes); err != nil {
			log.Printf("[janitor] history: %v", err)
		}
		if err := store.Finish(invocationID, report.Summary, time.Now()); err != nil {
			log.Printf("[janitor] history: %v", err)
		}
	}

	notifier := notify.NewMultiNotifier(
		notify.NewDesktopNotifier(cfg.Notifications.Desktop),
		notify.NewSlackNotifier(cfg.Notifications.SlackWebhook),
	)
	if err := notifier.Send(notify.FromReport(report)); err != nil {
		log.Printf("[janitor] notify: %v", err)
	}

	return report, nil
}

func printReport(report *janitor.Report) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WORKFLOW\tRUNS\tRETAINED\tDELETED")
	for _, wr := range report.Workflows {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n",
			wr.Workflow.Name, wr.TotalRuns, len(wr.Partition.Retain), len(wr.Partition.Delete))
	}
	if len(report.Orphans) > 0 {
		fmt.Fprintf(w, "(orphaned)\t%d\t0\t%d\n", len(report.Orphans), len(report.Orphans))
	}
	w.Flush()

	if report.DryRun {
		fmt.Printf("\n%s: would delete %d run(s) (%.1fs)\n",
			report.Repo, report.Summary.Skipped,
			report.FinishedAt.Sub(report.StartedAt).Seconds())
		return
	}
	fmt.Printf("\n%s: deleted %d, skipped %d, failed %d (%.1fs)\n",
		report.Repo, report.Summary.Deleted, report.Summary.Skipped, report.Summary.Failed,
		report.FinishedAt.Sub(report.StartedAt).Seconds())
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	j, err := newJanitor(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	report, err := j.Plan(ctx)
	if err != nil {
		return err
	}
	report.DryRun = true

	program := tea.NewProgram(tui.NewModel(report), tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func runOrphans(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	repo, err := cfg.Repo()
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	client := github.NewClient(cfg.Token())

	workflows, err := client.ListWorkflows(ctx, repo)
	if err != nil {
		return fmt.Errorf("fetching workflows: %w", err)
	}
	runs, err := client.ListAllRuns(ctx, repo)
	if err != nil {
		return fmt.Errorf("fetching run history: %w", err)
	}

	orphans := retention.FindOrphans(runs, retention.KnownWorkflowIDs(workflows))
	if len(orphans) == 0 {
		fmt.Println("No orphaned runs found")
		return nil
	}

	summary, _ := executor.Execute(ctx, orphans, client, executor.Options{
		Repo:        repo,
		DryRun:      orphansDryRun,
		Concurrency: cfg.Executor.Concurrency,
	})

	fmt.Printf("%d orphaned run(s): deleted %d, skipped %d, failed %d\n",
		len(orphans), summary.Deleted, summary.Skipped, summary.Failed)
	return nil
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if _, err := cfg.Repo(); err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	// The config may be edited while the daemon runs; each tick picks
	// up the latest loaded copy.
	var mu sync.Mutex
	current := cfg

	daemon, err := schedule.NewDaemon(cfg.Daemon.Cron, func(ctx context.Context) error {
		mu.Lock()
		tickCfg := current
		mu.Unlock()

		report, err := cleanOnce(ctx, tickCfg)
		if err != nil {
			return err
		}
		log.Printf("[daemon] %s: deleted %d, skipped %d, failed %d",
			report.Repo, report.Summary.Deleted, report.Summary.Skipped, report.Summary.Failed)
		return nil
	})
	if err != nil {
		return err
	}

	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	go func() {
		err := schedule.WatchConfig(ctx, path, func() {
			reloaded, err := config.Load(path)
			if err != nil {
				log.Printf("[daemon] config reload failed: %v", err)
				return
			}
			applyOverrides(reloaded)
			mu.Lock()
			current = reloaded
			mu.Unlock()
			log.Printf("[daemon] config reloaded")
		})
		if err != nil && err != context.Canceled {
			log.Printf("[daemon] config watch stopped: %v", err)
		}
	}()

	err = daemon.Run(ctx)
	if err == context.Canceled {
		return nil
	}
	return err
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := history.New(cfg.History.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	invocations, err := store.ListInvocations(historyLimit)
	if err != nil {
		return err
	}
	if len(invocations) == 0 {
		fmt.Println("No invocations recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tREPOSITORY\tMODE\tDELETED\tSKIPPED\tFAILED")
	for _, inv := range invocations {
		mode := "delete"
		if inv.DryRun {
			mode = "dry-run"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			inv.StartedAt.Format("2006-01-02 15:04"),
			inv.Repository, mode, inv.Deleted, inv.Skipped, inv.Failed)
	}
	return w.Flush()
}
