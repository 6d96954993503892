package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yahsan2/linear-pm/pkg/config"
	"github.com/yahsan2/linear-pm/pkg/graphql"
	"github.com/yahsan2/linear-pm/pkg/issue"
	"github.com/yahsan2/linear-pm/pkg/output"
	"github.com/yahsan2/linear-pm/pkg/project"
)

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create issues, optionally together with a project",
	Long: `Create a new Linear issue using the team, priority, state and labels
configured in .linear-pm.yml as defaults.

With --from-file every issue in the file is created in a single batch request.
When the file also describes a project, the project is created first and every
issue is attached to it. If the project is created but the issues are not, the
project is kept and reported together with the error.`,
	Example: `  # Create an issue with a title
  linear-pm create --title "Fix login bug"

  # Create with specific priority, state and labels
  linear-pm create --title "Critical issue" --priority urgent --state "In Progress" --label bug

  # Create from a file (batch mode, optionally with a project)
  linear-pm create --from-file issues.yml`,
	RunE: runCreate,
}

// Command flags
var (
	createTitle       string
	createDescription string
	createTeam        string
	createLabels      []string
	createPriority    string
	createState       string
	createAssignee    string
	createProject     string
	createParent      string
	createEstimate    int
	createDueDate     string
	createFromFile    string
	createQuiet       bool
)

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVarP(&createTitle, "title", "t", "", "Issue title")
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "Issue description (markdown)")
	createCmd.Flags().StringVar(&createTeam, "team", "", "Team key (overrides default)")
	createCmd.Flags().StringSliceVarP(&createLabels, "label", "l", []string{}, "Comma-separated labels")
	createCmd.Flags().StringVar(&createPriority, "priority", "", "Issue priority (overrides default)")
	createCmd.Flags().StringVar(&createState, "state", "", "Workflow state (overrides default)")
	createCmd.Flags().StringVarP(&createAssignee, "assignee", "a", "", "Assign to user (@me, email or ID)")
	createCmd.Flags().StringVar(&createProject, "project", "", "Project ID to attach the issue to")
	createCmd.Flags().StringVar(&createParent, "parent", "", "Parent issue ID")
	createCmd.Flags().IntVar(&createEstimate, "estimate", 0, "Estimate points")
	createCmd.Flags().StringVar(&createDueDate, "due", "", "Due date (YYYY-MM-DD)")
	createCmd.Flags().StringVar(&createFromFile, "from-file", "", "Create issues from YAML/JSON file")
	createCmd.Flags().BoolVar(&createQuiet, "quiet", false, "Only output issue URLs")
}

// CreateCommand creates issues and projects
type CreateCommand struct {
	config    *config.Config
	issues    *issue.Client
	projects  *project.Client
	creator   *issue.Creator
	formatter *output.Formatter
	logger    *zap.Logger
}

func runCreate(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && createTitle == "" {
		createTitle = strings.Join(args, " ")
	}

	c, err := newClients(cmd)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(cmd, createQuiet)
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

	if createFromFile != "" {
		return command.ExecuteFile(cmd.Context(), createFromFile)
	}

	data := &issue.IssueData{
		Title:       createTitle,
		Description: createDescription,
		Team:        createTeam,
		Priority:    createPriority,
		State:       createState,
		Labels:      createLabels,
		Assignee:    createAssignee,
		Project:     createProject,
		Parent:      createParent,
		DueDate:     createDueDate,
	}
	if cmd.Flags().Changed("estimate") {
		estimate := createEstimate
		data.Estimate = &estimate
	}

	return command.Execute(cmd.Context(), data)
}

// Execute creates a single issue
func (c *CreateCommand) Execute(ctx context.Context, data *issue.IssueData) error {
	input, err := c.creator.BuildCreateInput(data)
	if err != nil {
		return err
	}

	resp, err := c.issues.CreateIssue(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create issue: %w", err)
	}

	payload := resp.IssueCreate
	if !payload.Success || payload.Issue == nil {
		return graphql.NewDeclaredError(graphql.TemplateCreateIssue, "failed to create issue")
	}

	c.logger.Info("issue created", zap.String("identifier", payload.Issue.Identifier))
	return c.formatter.FormatIssue(payload.Issue)
}

// ExecuteFile creates every issue in the file, with its project when the
// file describes one
func (c *CreateCommand) ExecuteFile(ctx context.Context, path string) error {
	plan, err := project.LoadPlan(path)
	if err != nil {
		return err
	}

	inputs, err := c.creator.BuildCreateInputs(plan.Issues)
	if err != nil {
		return err
	}

	if plan.Project != nil {
		return c.executeProjectPlan(ctx, plan.Project, inputs)
	}

	resp, err := c.issues.CreateBatchIssues(ctx, inputs)
	if err != nil {
		return fmt.Errorf("failed to create issues: %w", err)
	}

	summary := issue.SummarizeBatch(inputs, resp)
	if err := c.formatter.FormatBatchResult(&summary); err != nil {
		return err
	}
	if !resp.IssueBatchCreate.Success {
		return graphql.NewDeclaredError(graphql.TemplateCreateBatchIssues, "failed to create issues")
	}
	return nil
}

func (c *CreateCommand) executeProjectPlan(ctx context.Context, data *project.ProjectData, inputs []issue.CreateIssueInput) error {
	projectInput, err := project.BuildProjectInput(c.config, data)
	if err != nil {
		return err
	}

	result, err := c.projects.CreateProjectWithIssues(ctx, projectInput, inputs)
	if result != nil {
		if formatErr := c.formatter.FormatProjectWithIssues(result, inputs); formatErr != nil {
			return formatErr
		}
	}
	if err != nil {
		if result != nil && result.ProjectCreate.Project != nil {
			return fmt.Errorf("project %s was created but its issues were not: %w", result.ProjectCreate.Project.URL, err)
		}
		return err
	}
	return nil
}
