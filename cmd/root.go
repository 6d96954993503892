package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var Version = "dev"

// errReported marks an error the command already printed
var errReported = errors.New("error already reported")

var rootCmd = &cobra.Command{
	Use:   "linear-pm",
	Short: "Command line project management for Linear",
	Long: `A command line client for project management with Linear issues and projects.

This tool allows you to:
- Create issues one at a time or in batches from YAML/JSON files
- Create a project together with all of its issues
- Update many issues at once and see which updates failed
- List and search issues with gh style filters`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadRuntime,
}

// Global flags
var (
	configPath   string
	outputFormat string
	jqExpr       string
	logLevel     string
	logFormat    string
	endpoint     string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (default: nearest .linear-pm.yml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "Output format (table, json, csv, quiet)")
	rootCmd.PersistentFlags().StringVarP(&jqExpr, "jq", "q", "", "Filter JSON output using a jq expression")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (structured, console)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Linear GraphQL endpoint")
}

func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			reportError(rootCmd, err)
		}
		return 1
	}
	return 0
}
