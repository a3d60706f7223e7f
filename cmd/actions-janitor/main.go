package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// set via -ldflags "-X main.version=..."
var version = "dev"

var (
	configPath string
	rootCmd    = &cobra.Command{
		Use:   "actions-janitor",
		Short: "Retention cleanup for GitHub Actions workflow run history",
		Long: `actions-janitor enumerates a repository's workflows and their past runs,
filters them against a retention policy (age, conclusion, branch liveness,
pull-request linkage) and deletes what falls outside the policy, always
preserving a minimum number of recent runs per workflow.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
