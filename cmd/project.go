package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yahsan2/linear-pm/pkg/graphql"
	"github.com/yahsan2/linear-pm/pkg/issue"
	"github.com/yahsan2/linear-pm/pkg/project"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project",
	Long: `Create a project. With --issues-file the issues listed in the file are
created in the project with a single batch request. If the project is created
but its issues are not, the project is kept and reported together with the error.`,
	Example: `  linear-pm project create --name "Q3 launch" --team ENG --lead @me

  # Create a project with its issues
  linear-pm project create --name "Q3 launch" --issues-file launch.yml`,
	RunE: runProjectCreate,
}

var projectViewCmd = &cobra.Command{
	Use:   "view <project-id>",
	Short: "Display a project and its issues",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectView,
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"search"},
	Short: "List projects",
	RunE:  runProjectList,
}

var (
	projectName        string
	projectDescription string
	projectTeams       []string
	projectLead        string
	projectStartDate   string
	projectTargetDate  string
	projectIssuesFile  string
)

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectCreateCmd, projectViewCmd, projectListCmd)

	projectCreateCmd.Flags().StringVar(&projectName, "name", "", "Project name")
	projectCreateCmd.Flags().StringVarP(&projectDescription, "description", "d", "", "Project description")
	projectCreateCmd.Flags().StringSliceVar(&projectTeams, "team", []string{}, "Team keys (default: configured team)")
	projectCreateCmd.Flags().StringVar(&projectLead, "lead", "", "Project lead (@me or user ID)")
	projectCreateCmd.Flags().StringVar(&projectStartDate, "start", "", "Start date (YYYY-MM-DD)")
	projectCreateCmd.Flags().StringVar(&projectTargetDate, "target", "", "Target date (YYYY-MM-DD)")
	projectCreateCmd.Flags().StringVar(&projectIssuesFile, "issues-file", "", "Create the issues in this YAML/JSON file inside the project")

	projectListCmd.Flags().StringVar(&projectName, "name", "", "Only the project with this exact name")
}

func runProjectCreate(cmd *cobra.Command, args []string) error {
	data := &project.ProjectData{
		Name:        projectName,
		Description: projectDescription,
		Teams:       projectTeams,
		Lead:        projectLead,
		StartDate:   projectStartDate,
		TargetDate:  projectTargetDate,
	}
	input, err := project.BuildProjectInput(app.cfg, data)
	if err != nil {
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

	if projectIssuesFile != "" {
		plan, err := project.LoadPlan(projectIssuesFile)
		if err != nil {
			return err
		}
		command := &CreateCommand{
			config:    app.cfg,
			issues:    c.issues,
			projects:  c.projects,
			creator:   issue.NewCreator(app.cfg),
			formatter: formatter,
			logger:    app.logger,
		}
		inputs, err := command.creator.BuildCreateInputs(plan.Issues)
		if err != nil {
			return err
		}
		return command.executeProjectPlan(cmd.Context(), data, inputs)
	}

	resp, err := c.projects.CreateProject(cmd.Context(), input)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	if !resp.ProjectCreate.Success || resp.ProjectCreate.Project == nil {
		return graphql.NewDeclaredError(graphql.TemplateCreateProject, "failed to create project")
	}

	return formatter.FormatProject(resp.ProjectCreate.Project)
}

func runProjectView(cmd *cobra.Command, args []string) error {
	c, err := newClients(cmd)
	if err != nil {
		return err
	}
	formatter, err := newFormatter(cmd, false)
	if err != nil {
		return err
	}

	resp, err := c.projects.GetProject(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch project: %w", err)
	}
	if resp.Project == nil {
		return fmt.Errorf("project %s not found", args[0])
	}

	return formatter.FormatProject(resp.Project)
}

func runProjectList(cmd *cobra.Command, args []string) error {
	c, err := newClients(cmd)
	if err != nil {
		return err
	}
	formatter, err := newFormatter(cmd, false)
	if err != nil {
		return err
	}

	resp, err := c.projects.SearchProjects(cmd.Context(), projectName)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	return formatter.FormatProjects(resp.Projects.Nodes)
}
