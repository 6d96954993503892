package issue

import (
	"context"

	"go.uber.org/zap"

	"github.com/yahsan2/linear-pm/pkg/graphql"
)

var requiredTemplates = []string{
	graphql.TemplateCreateIssue,
	graphql.TemplateCreateBatchIssues,
	graphql.TemplateUpdateIssue,
	graphql.TemplateSearchIssues,
	graphql.TemplateDeleteIssues,
}

// Client runs issue operations through a gateway
type Client struct {
	gateway   *graphql.Gateway
	logger    *zap.Logger
	templates map[string]graphql.Template
}

// NewClient creates a new issue client. It fails when store lacks any of
// the issue templates.
func NewClient(gateway *graphql.Gateway, store *graphql.TemplateStore) (*Client, error) {
	templates, err := store.Resolve(requiredTemplates...)
	if err != nil {
		return nil, err
	}

	return &Client{
		gateway:   gateway,
		logger:    gateway.Logger().Named("issue"),
		templates: templates,
	}, nil
}

// CreateIssue creates a single issue
func (c *Client) CreateIssue(ctx context.Context, input CreateIssueInput) (*CreateIssueResponse, error) {
	return graphql.Do[CreateIssueResponse](ctx, c.gateway, c.templates[graphql.TemplateCreateIssue], graphql.Variables{
		"input": input,
	})
}

// UpdateIssue updates a single issue
func (c *Client) UpdateIssue(ctx context.Context, id string, input UpdateIssueInput) (*UpdateIssueResponse, error) {
	return graphql.Do[UpdateIssueResponse](ctx, c.gateway, c.templates[graphql.TemplateUpdateIssue], updateVariables(id, input))
}

// DeleteIssue deletes a single issue
func (c *Client) DeleteIssue(ctx context.Context, id string) (*DeleteIssueResponse, error) {
	return c.DeleteIssues(ctx, []string{id})
}

// DeleteIssues deletes several issues in one request
func (c *Client) DeleteIssues(ctx context.Context, ids []string) (*DeleteIssueResponse, error) {
	if ids == nil {
		ids = []string{}
	}
	return graphql.Do[DeleteIssueResponse](ctx, c.gateway, c.templates[graphql.TemplateDeleteIssues], graphql.Variables{
		"ids": ids,
	})
}

func updateVariables(id string, input UpdateIssueInput) graphql.Variables {
	return graphql.Variables{
		"id":    id,
		"input": input,
	}
}
