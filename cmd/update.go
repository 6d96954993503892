package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yahsan2/linear-pm/pkg/issue"
	"github.com/yahsan2/linear-pm/pkg/output"
)

var updateCmd = &cobra.Command{
	Use:   "update <issue-id>...",
	Short: "Apply the same change to one or more issues",
	Long: `Update one or more issues with the same changes.

Issues are updated one at a time. A failure does not stop the remaining
updates; every failure is reported and the command exits non-zero when any
update failed.`,
	Example: `  # Move two issues to Done
  linear-pm update 2f1c... 9a0b... --state Done

  # Remove every label
  linear-pm update 2f1c... --clear-labels

  # Raise priority and assign to me
  linear-pm update 2f1c... --priority urgent --assignee @me`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpdate,
}

var (
	updateTitle       string
	updateDescription string
	updateTeam        string
	updateLabels      []string
	updatePriority    string
	updateState       string
	updateAssignee    string
	updateProject     string
	updateClearLabels bool
)

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVarP(&updateTitle, "title", "t", "", "New title")
	updateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "New description")
	updateCmd.Flags().StringVar(&updateTeam, "team", "", "Move to team, also used to resolve state and label names")
	updateCmd.Flags().StringSliceVarP(&updateLabels, "label", "l", []string{}, "Replace labels")
	updateCmd.Flags().StringVar(&updatePriority, "priority", "", "New priority")
	updateCmd.Flags().StringVar(&updateState, "state", "", "New workflow state")
	updateCmd.Flags().StringVarP(&updateAssignee, "assignee", "a", "", "New assignee (@me, email or ID)")
	updateCmd.Flags().StringVar(&updateProject, "project", "", "Project ID to move the issues to")
	updateCmd.Flags().BoolVar(&updateClearLabels, "clear-labels", false, "Remove every label")
}

// UpdateCommand updates issues in bulk
type UpdateCommand struct {
	issues    *issue.Client
	creator   *issue.Creator
	formatter *output.Formatter
	stderr    io.Writer
}

func runUpdate(cmd *cobra.Command, args []string) error {
	c, err := newClients(cmd)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(cmd, false)
	if err != nil {
		return err
	}

	command := &UpdateCommand{
		issues:    c.issues,
		creator:   issue.NewCreator(app.cfg),
		formatter: formatter,
		stderr:    cmd.ErrOrStderr(),
	}

	return command.Execute(cmd.Context(), args, &issue.UpdateData{
		Title:       updateTitle,
		Description: updateDescription,
		Team:        updateTeam,
		Priority:    updatePriority,
		State:       updateState,
		Labels:      updateLabels,
		Assignee:    updateAssignee,
		Project:     updateProject,
		ClearLabels: updateClearLabels,
	})
}

// Execute updates every id with the same input
func (c *UpdateCommand) Execute(ctx context.Context, ids []string, data *issue.UpdateData) error {
	input, err := c.creator.BuildUpdateInput(data)
	if err != nil {
		return err
	}

	result := c.issues.UpdateIssues(ctx, ids, input, issue.WithFailureHandler(func(f issue.UpdateFailure) {
		fmt.Fprintf(c.stderr, "failed to update %s: %v\n", f.ID, f.Err)
	}))

	summary := result.Summary()
	if err := c.formatter.FormatBatchResult(&summary); err != nil {
		return err
	}

	if !result.Success {
		return fmt.Errorf("%d of %d updates failed", len(result.Failures), len(ids))
	}
	return nil
}
