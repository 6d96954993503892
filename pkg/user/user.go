// Package user reads the authenticated viewer.
package user

import (
	"context"

	"github.com/yahsan2/linear-pm/pkg/config"
	"github.com/yahsan2/linear-pm/pkg/graphql"
	"github.com/yahsan2/linear-pm/pkg/issue"
)

// Viewer is the user the API key belongs to
type Viewer struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Email string         `json:"email"`
	Teams TeamConnection `json:"teams"`
}

// TeamConnection wraps the viewer's team memberships
type TeamConnection struct {
	Nodes []issue.Team `json:"nodes"`
}

// GetUserResponse is the get-user response
type GetUserResponse struct {
	Viewer Viewer `json:"viewer"`
}

// Metadata converts the viewer into its cached config form
func (v Viewer) Metadata() config.UserMetadata {
	return config.UserMetadata{ID: v.ID, Name: v.Name, Email: v.Email}
}

// Client runs user operations through a gateway
type Client struct {
	gateway  *graphql.Gateway
	template graphql.Template
}

// NewClient creates a new user client
func NewClient(gateway *graphql.Gateway, store *graphql.TemplateStore) (*Client, error) {
	tmpl, err := store.Get(graphql.TemplateGetUser)
	if err != nil {
		return nil, err
	}
	return &Client{gateway: gateway, template: tmpl}, nil
}

// GetCurrentUser returns the viewer
func (c *Client) GetCurrentUser(ctx context.Context) (*Viewer, error) {
	resp, err := graphql.Do[GetUserResponse](ctx, c.gateway, c.template, nil)
	if err != nil {
		return nil, err
	}
	return &resp.Viewer, nil
}
