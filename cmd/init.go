package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yahsan2/linear-pm/pkg/config"
	"github.com/yahsan2/linear-pm/pkg/setup"
	"github.com/yahsan2/linear-pm/pkg/team"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize linear-pm configuration",
	Long: `Initialize a new linear-pm configuration file (.linear-pm.yml) in the current directory.

This command will:
- Verify the API key and cache the authenticated user
- Pick the default team, suggested from the current git repository
- Cache team, workflow state and label IDs so names can be used in commands`,
	Example: `  # Interactive initialization
  linear-pm init

  # Non-interactive with a default team
  linear-pm init --team ENG --interactive=false

  # Cache metadata for every team in the workspace
  linear-pm init --all-teams`,
	RunE: runInit,
}

var (
	initTeam        string
	initInteractive bool
	initAllTeams    bool
	initForce       bool
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initTeam, "team", "", "Default team key")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", true, "Interactive mode")
	initCmd.Flags().BoolVar(&initAllTeams, "all-teams", false, "Cache metadata for every team, not only the default one")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing configuration file without asking")
}

func runInit(cmd *cobra.Command, args []string) error {
	if err := initialize(cmd); err != nil {
		setup.HandleSetupError(cmd.ErrOrStderr(), err)
		return errReported
	}
	return nil
}

func initialize(cmd *cobra.Command) error {
	path := configPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return setup.NewFileSystemError("failed to get working directory", err)
		}
		path = filepath.Join(wd, config.ConfigFileName)
	}

	prompt := setup.NewInteractivePromptWithIO(cmd.InOrStdin(), cmd.OutOrStdout())
	out := cmd.OutOrStdout()

	if _, err := os.Stat(path); err == nil && !initForce {
		if !initInteractive || !prompt.ConfirmOverwrite(path) {
			fmt.Fprintln(out, "Initialization cancelled.")
			return nil
		}
	}

	cfg := app.cfg
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	c, err := newClients(cmd)
	if err != nil {
		return setup.NewAPIError("failed to create API client", err)
	}

	manager := setup.NewMetadataManager(c.teams, c.users)
	ctx := cmd.Context()

	viewer, err := manager.FetchViewer(ctx)
	if err != nil {
		return err
	}
	teams, err := manager.FetchTeams(ctx)
	if err != nil {
		return err
	}
	if len(teams) == 0 {
		return setup.NewValidationError("no teams are visible to this API key")
	}

	selected, err := chooseTeam(teams, prompt)
	if err != nil {
		return err
	}

	var keys []string
	if !initAllTeams && selected != nil {
		keys = []string{selected.Key}
	}

	metadata, err := manager.BuildMetadata(viewer, teams, keys)
	if err != nil {
		return err
	}

	cfg.Metadata = metadata
	cfg.Defaults.Team = ""
	if selected != nil {
		cfg.Defaults.Team = selected.Key
	}

	if err := cfg.Save(path); err != nil {
		return setup.NewFileSystemError("failed to save configuration", err)
	}

	fmt.Fprintf(out, "\nConfiguration saved to %s\n", path)
	fmt.Fprintf(out, "  User: %s <%s>\n", viewer.Name, viewer.Email)
	if selected != nil {
		fmt.Fprintf(out, "  Default team: %s (%s)\n", selected.Name, selected.Key)
	}
	fmt.Fprintf(out, "  Cached teams: %d\n", len(metadata.Teams))
	return nil
}

// chooseTeam resolves the default team from --team, the interactive prompt
// or the team matching the current repository
func chooseTeam(teams []team.Team, prompt *setup.InteractivePrompt) (*team.Team, error) {
	if initTeam != "" {
		for i := range teams {
			if strings.EqualFold(teams[i].Key, initTeam) {
				return &teams[i], nil
			}
		}
		return nil, setup.NewValidationError(fmt.Sprintf("team '%s' not found in workspace", initTeam))
	}

	suggested := setup.NewTeamDetector().SuggestTeam(teams)
	if initInteractive {
		return prompt.SelectTeam(teams, suggested), nil
	}

	for i := range teams {
		if teams[i].Key == suggested {
			return &teams[i], nil
		}
	}
	return nil, nil
}
