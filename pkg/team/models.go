package team

import (
	"github.com/yahsan2/linear-pm/pkg/config"
	"github.com/yahsan2/linear-pm/pkg/issue"
)

// Team represents a Linear team with its workflow states and labels
type Team struct {
	ID     string                `json:"id"`
	Key    string                `json:"key"`
	Name   string                `json:"name"`
	States StateConnection       `json:"states"`
	Labels issue.LabelConnection `json:"labels"`
}

// StateConnection wraps workflow state nodes
type StateConnection struct {
	Nodes []issue.State `json:"nodes"`
}

// TeamConnection wraps team nodes
type TeamConnection struct {
	Nodes []Team `json:"nodes"`
}

// GetTeamsResponse is the get-teams response
type GetTeamsResponse struct {
	Teams TeamConnection `json:"teams"`
}

// LabelInput mirrors Linear's IssueLabelCreateInput
type LabelInput struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
	TeamID      string `json:"teamId,omitempty"`
}

// LabelPayload is the payload of a label mutation
type LabelPayload struct {
	Success    bool         `json:"success"`
	IssueLabel *issue.Label `json:"issueLabel"`
}

// CreateLabelsResponse is the create-labels response
type CreateLabelsResponse struct {
	IssueLabelCreate LabelPayload `json:"issueLabelCreate"`
}

// Metadata converts the team into its cached config form
func (t Team) Metadata() config.TeamMetadata {
	meta := config.TeamMetadata{ID: t.ID, Key: t.Key, Name: t.Name}
	for _, s := range t.States.Nodes {
		meta.States = append(meta.States, config.NamedID{ID: s.ID, Name: s.Name})
	}
	for _, l := range t.Labels.Nodes {
		meta.Labels = append(meta.Labels, config.NamedID{ID: l.ID, Name: l.Name})
	}
	return meta
}

// StateNames returns the names of the team's workflow states
func (t Team) StateNames() []string {
	names := make([]string, 0, len(t.States.Nodes))
	for _, s := range t.States.Nodes {
		names = append(names, s.Name)
	}
	return names
}
