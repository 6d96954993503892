package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yahsan2/linear-pm/pkg/graphql"
	"github.com/yahsan2/linear-pm/pkg/team"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List teams with their workflow states",
	RunE:  runTeams,
}

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "Manage issue labels",
}

var labelsCreateCmd = &cobra.Command{
	Use:     "create <name>...",
	Short:   "Create issue labels",
	Example: `  linear-pm labels create bug regression --team ENG --color "#eb5757"`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runLabelsCreate,
}

var (
	labelTeam  string
	labelColor string
)

func init() {
	rootCmd.AddCommand(teamsCmd, labelsCmd)
	labelsCmd.AddCommand(labelsCreateCmd)

	labelsCreateCmd.Flags().StringVar(&labelTeam, "team", "", "Team key (default: configured team; workspace label when none)")
	labelsCreateCmd.Flags().StringVar(&labelColor, "color", "", "Label color as hex")
}

func runTeams(cmd *cobra.Command, args []string) error {
	c, err := newClients(cmd)
	if err != nil {
		return err
	}
	formatter, err := newFormatter(cmd, false)
	if err != nil {
		return err
	}

	resp, err := c.teams.GetTeams(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list teams: %w", err)
	}

	return formatter.FormatTeams(resp.Teams.Nodes)
}

func runLabelsCreate(cmd *cobra.Command, args []string) error {
	teamRef := labelTeam
	if teamRef == "" {
		teamRef = app.cfg.Defaults.Team
	}

	var teamID string
	if teamRef != "" {
		meta := app.cfg.TeamByKey(teamRef)
		if meta == nil {
			return fmt.Errorf("team '%s' not found in cached metadata; run 'linear-pm init'", teamRef)
		}
		teamID = meta.ID
	}

	labels := make([]team.LabelInput, 0, len(args))
	for _, name := range args {
		labels = append(labels, team.LabelInput{Name: name, Color: labelColor, TeamID: teamID})
	}

	c, err := newClients(cmd)
	if err != nil {
		return err
	}

	resp, err := c.teams.CreateLabels(cmd.Context(), labels)
	if err != nil {
		return fmt.Errorf("failed to create labels: %w", err)
	}
	if !resp.IssueLabelCreate.Success {
		return graphql.NewDeclaredError(graphql.TemplateCreateLabels, "failed to create labels")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %d label(s)\n", len(labels))
	return nil
}
