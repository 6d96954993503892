package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yahsan2/linear-pm/pkg/graphql"
	"github.com/yahsan2/linear-pm/pkg/setup"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <issue-id>...",
	Short: "Delete issues",
	Long:  `Delete one or more issues in a single request. Deleted issues go to Linear's trash.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDelete,
}

var deleteYes bool

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	if !deleteYes {
		prompt := setup.NewInteractivePromptWithIO(cmd.InOrStdin(), cmd.ErrOrStderr())
		answer := prompt.GetStringInput(fmt.Sprintf("Delete %d issue(s)? (y/N)", len(args)), "")
		if a := strings.ToLower(answer); a != "y" && a != "yes" {
			fmt.Fprintln(cmd.ErrOrStderr(), "Deletion cancelled.")
			return nil
		}
	}

	c, err := newClients(cmd)
	if err != nil {
		return err
	}

	resp, err := c.issues.DeleteIssues(cmd.Context(), args)
	if err != nil {
		return fmt.Errorf("failed to delete issues: %w", err)
	}
	if !resp.IssueDelete.Success {
		return graphql.NewDeclaredError(graphql.TemplateDeleteIssues, "failed to delete issues")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d issue(s)\n", len(args))
	return nil
}
