package project

import (
	"context"

	"go.uber.org/zap"

	"github.com/yahsan2/linear-pm/pkg/graphql"
	"github.com/yahsan2/linear-pm/pkg/issue"
)

// IssueBatchCreator creates several issues in one request
type IssueBatchCreator interface {
	CreateBatchIssues(ctx context.Context, issues []issue.CreateIssueInput) (*issue.IssueBatchResponse, error)
}

// Client runs project operations through a gateway
type Client struct {
	gateway   *graphql.Gateway
	issues    IssueBatchCreator
	logger    *zap.Logger
	templates map[string]graphql.Template
}

// NewClient creates a new project client. Issues for compound operations
// are created through issues.
func NewClient(gateway *graphql.Gateway, store *graphql.TemplateStore, issues IssueBatchCreator) (*Client, error) {
	templates, err := store.Resolve(
		graphql.TemplateCreateProject,
		graphql.TemplateGetProject,
		graphql.TemplateSearchProjects,
	)
	if err != nil {
		return nil, err
	}

	return &Client{
		gateway:   gateway,
		issues:    issues,
		logger:    gateway.Logger().Named("project"),
		templates: templates,
	}, nil
}

// CreateProject creates a project
func (c *Client) CreateProject(ctx context.Context, input ProjectInput) (*CreateProjectResponse, error) {
	// teamIds is a required list
	if input.TeamIDs == nil {
		input.TeamIDs = []string{}
	}
	return graphql.Do[CreateProjectResponse](ctx, c.gateway, c.templates[graphql.TemplateCreateProject], graphql.Variables{
		"input": input,
	})
}

// GetProject fetches a project by ID
func (c *Client) GetProject(ctx context.Context, id string) (*GetProjectResponse, error) {
	return graphql.Do[GetProjectResponse](ctx, c.gateway, c.templates[graphql.TemplateGetProject], graphql.Variables{
		"id": id,
	})
}

// SearchProjects lists projects, restricted to an exact name when name is set
func (c *Client) SearchProjects(ctx context.Context, name string) (*SearchProjectsResponse, error) {
	filter := map[string]interface{}{}
	if name != "" {
		filter["name"] = map[string]interface{}{"eq": name}
	}

	return graphql.Do[SearchProjectsResponse](ctx, c.gateway, c.templates[graphql.TemplateSearchProjects], graphql.Variables{
		"filter": filter,
	})
}
