package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Display the user the API key belongs to",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	c, err := newClients(cmd)
	if err != nil {
		return err
	}
	formatter, err := newFormatter(cmd, false)
	if err != nil {
		return err
	}

	viewer, err := c.users.GetCurrentUser(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch current user: %w", err)
	}

	return formatter.FormatViewer(viewer)
}
