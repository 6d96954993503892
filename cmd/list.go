package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yahsan2/linear-pm/pkg/args"
	"github.com/yahsan2/linear-pm/pkg/config"
	"github.com/yahsan2/linear-pm/pkg/filter"
	"github.com/yahsan2/linear-pm/pkg/issue"
	"github.com/yahsan2/linear-pm/pkg/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List issues",
	Long: `List Linear issues with filters compatible with gh issue list.

Search terms such as updated:>@today-1w, created:<2025-01-01 or due:<=@today+3d
are turned into date filters; the rest of the query matches title and
description.`,
	Example: `  # List open issues of the default team
  linear-pm list --team ENG

  # Issues assigned to me, updated in the last week
  linear-pm list --assignee @me --updated ">=@today-1w"

  # Closed bugs as JSON
  linear-pm list --state closed --label bug -o json`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	args.AddCommonFlags(listCmd, nil)
	args.AddDateFlags(listCmd)
}

// ListCommand lists issues
type ListCommand struct {
	config    *config.Config
	issues    *issue.Client
	formatter *output.Formatter
	logger    *zap.Logger
}

func runList(cmd *cobra.Command, cmdArgs []string) error {
	filters, err := args.ParseCommonFlags(cmd, nil)
	if err != nil {
		return err
	}
	if err := args.ParseDateFlags(cmd, filters); err != nil {
		return err
	}

	c, err := newClients(cmd)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(cmd, false)
	if err != nil {
		return err
	}

	command := &ListCommand{
		config:    app.cfg,
		issues:    c.issues,
		formatter: formatter,
		logger:    app.logger,
	}
	return command.Execute(cmd.Context(), filters)
}

// Execute fetches matching issues and prints them
func (c *ListCommand) Execute(ctx context.Context, filters *filter.IssueFilters) error {
	if filters.Team == "" {
		filters.Team = c.config.Defaults.Team
	}

	doc, err := filters.Build(c.config, time.Now())
	if err != nil {
		return err
	}

	c.logger.Debug("listing issues", zap.Any("filter", doc), zap.Int("limit", filters.Limit))

	issues, err := c.issues.SearchAllIssues(ctx, doc, filters.Limit)
	if err != nil {
		return fmt.Errorf("failed to list issues: %w", err)
	}

	return c.formatter.FormatIssues(issues)
}
