// Package team lists teams and manages their labels.
package team

import (
	"context"
	"fmt"
	"strings"

	"github.com/yahsan2/linear-pm/pkg/graphql"
)

// Client runs team operations through a gateway
type Client struct {
	gateway   *graphql.Gateway
	templates map[string]graphql.Template
}

// NewClient creates a new team client
func NewClient(gateway *graphql.Gateway, store *graphql.TemplateStore) (*Client, error) {
	templates, err := store.Resolve(graphql.TemplateGetTeams, graphql.TemplateCreateLabels)
	if err != nil {
		return nil, err
	}
	return &Client{gateway: gateway, templates: templates}, nil
}

// GetTeams lists every team visible to the API key
func (c *Client) GetTeams(ctx context.Context) (*GetTeamsResponse, error) {
	return graphql.Do[GetTeamsResponse](ctx, c.gateway, c.templates[graphql.TemplateGetTeams], nil)
}

// CreateLabels creates issue labels
func (c *Client) CreateLabels(ctx context.Context, labels []LabelInput) (*CreateLabelsResponse, error) {
	if len(labels) == 0 {
		return nil, graphql.NewValidationError(graphql.TemplateCreateLabels, "at least one label is required")
	}
	for i, l := range labels {
		if strings.TrimSpace(l.Name) == "" {
			return nil, graphql.NewValidationError(graphql.TemplateCreateLabels, fmt.Sprintf("label %d has no name", i+1))
		}
	}

	return graphql.Do[CreateLabelsResponse](ctx, c.gateway, c.templates[graphql.TemplateCreateLabels], graphql.Variables{
		"labels": labels,
	})
}
