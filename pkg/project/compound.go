package project

import (
	"context"

	"go.uber.org/zap"

	"github.com/yahsan2/linear-pm/pkg/graphql"
	"github.com/yahsan2/linear-pm/pkg/issue"
)

// CreateProjectWithIssues creates a project and then every issue in a single
// batch attached to it.
//
// Nothing is created when the project step fails. When the batch step fails
// the project is left in place and the returned result, non-nil alongside
// the error, carries it.
func (c *Client) CreateProjectWithIssues(ctx context.Context, input ProjectInput, issues []issue.CreateIssueInput) (*ProjectWithIssuesResult, error) {
	created, err := c.CreateProject(ctx, input)
	if err != nil {
		return nil, err
	}

	payload := created.ProjectCreate
	if !payload.Success || payload.Project == nil {
		return nil, graphql.NewDeclaredError(graphql.TemplateCreateProject, "failed to create project")
	}

	projectID := payload.Project.ID
	attached := make([]issue.CreateIssueInput, len(issues))
	for i, in := range issues {
		in.ProjectID = projectID
		attached[i] = in
	}

	result := &ProjectWithIssuesResult{ProjectCreate: payload}

	batch, err := c.issues.CreateBatchIssues(ctx, attached)
	if err != nil {
		c.logger.Warn("project created but its issues were not",
			zap.String("project_id", projectID),
			zap.Int("issues", len(attached)),
			zap.Error(err),
		)
		return result, err
	}

	result.IssueBatchCreate = batch.IssueBatchCreate
	if !batch.IssueBatchCreate.Success {
		c.logger.Warn("project created but batch issue creation reported failure",
			zap.String("project_id", projectID),
			zap.Int("issues", len(attached)),
		)
		return result, graphql.NewDeclaredError(graphql.TemplateCreateBatchIssues, "failed to create issues")
	}

	result.Success = true
	return result, nil
}
