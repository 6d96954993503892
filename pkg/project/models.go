package project

import (
	"github.com/yahsan2/linear-pm/pkg/issue"
)

// Project represents a Linear project
type Project struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	URL         string                `json:"url"`
	State       string                `json:"state,omitempty"`
	Teams       TeamConnection        `json:"teams"`
	Issues      issue.IssueConnection `json:"issues"`
}

// TeamConnection wraps team nodes
type TeamConnection struct {
	Nodes []issue.Team `json:"nodes"`
}

// TeamKeys returns the keys of the project teams
func (p *Project) TeamKeys() []string {
	keys := make([]string, 0, len(p.Teams.Nodes))
	for _, t := range p.Teams.Nodes {
		keys = append(keys, t.Key)
	}
	return keys
}

// ProjectInput mirrors Linear's ProjectCreateInput
type ProjectInput struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	TeamIDs     []string `json:"teamIds" yaml:"team_ids"`
	LeadID      string   `json:"leadId,omitempty" yaml:"lead_id,omitempty"`
	StartDate   string   `json:"startDate,omitempty" yaml:"start_date,omitempty"`
	TargetDate  string   `json:"targetDate,omitempty" yaml:"target_date,omitempty"`
}

// ProjectPayload is the result of a project mutation
type ProjectPayload struct {
	Success bool     `json:"success"`
	Project *Project `json:"project"`
}

// CreateProjectResponse is the response of the create-project template
type CreateProjectResponse struct {
	ProjectCreate ProjectPayload `json:"projectCreate"`
}

// GetProjectResponse is the response of the get-project template
type GetProjectResponse struct {
	Project *Project `json:"project"`
}

// ProjectConnection is a list of projects
type ProjectConnection struct {
	Nodes []Project `json:"nodes"`
}

// SearchProjectsResponse is the response of the search-projects template
type SearchProjectsResponse struct {
	Projects ProjectConnection `json:"projects"`
}

// ProjectWithIssuesResult aggregates a project creation and the batch
// creation of its issues
type ProjectWithIssuesResult struct {
	Success          bool                    `json:"success"`
	ProjectCreate    ProjectPayload          `json:"projectCreate"`
	IssueBatchCreate issue.IssueBatchPayload `json:"issueBatchCreate"`
}
