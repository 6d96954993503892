package issue

import (
	"fmt"
	"strings"
	"time"
)

// Issue represents a Linear issue as returned by the API
type Issue struct {
	ID          string          `json:"id"`
	Identifier  string          `json:"identifier"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	URL         string          `json:"url"`
	Priority    int             `json:"priority"`
	State       *State          `json:"state,omitempty"`
	Team        *Team           `json:"team,omitempty"`
	Assignee    *User           `json:"assignee,omitempty"`
	Project     *ProjectRef     `json:"project,omitempty"`
	Labels      LabelConnection `json:"labels"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// State represents a workflow state
type State struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Team represents the team an issue belongs to
type Team struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// User represents an assignee
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// ProjectRef represents the project an issue is attached to
type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Label represents an issue label
type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// LabelConnection wraps label nodes
type LabelConnection struct {
	Nodes []Label `json:"nodes"`
}

// LabelNames returns the names of the issue labels
func (i *Issue) LabelNames() []string {
	names := make([]string, 0, len(i.Labels.Nodes))
	for _, l := range i.Labels.Nodes {
		names = append(names, l.Name)
	}
	return names
}

// StateName returns the workflow state name or an empty string
func (i *Issue) StateName() string {
	if i.State == nil {
		return ""
	}
	return i.State.Name
}

// AssigneeName returns the assignee name or an empty string
func (i *Issue) AssigneeName() string {
	if i.Assignee == nil {
		return ""
	}
	return i.Assignee.Name
}

// CreateIssueInput mirrors Linear's IssueCreateInput
type CreateIssueInput struct {
	TeamID      string   `json:"teamId" yaml:"team_id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Priority    *int     `json:"priority,omitempty" yaml:"priority,omitempty"`
	StateID     string   `json:"stateId,omitempty" yaml:"state_id,omitempty"`
	AssigneeID  string   `json:"assigneeId,omitempty" yaml:"assignee_id,omitempty"`
	LabelIDs    []string `json:"labelIds,omitempty" yaml:"label_ids,omitempty"`
	ProjectID   string   `json:"projectId,omitempty" yaml:"project_id,omitempty"`
	ParentID    string   `json:"parentId,omitempty" yaml:"parent_id,omitempty"`
	Estimate    *int     `json:"estimate,omitempty" yaml:"estimate,omitempty"`
	DueDate     string   `json:"dueDate,omitempty" yaml:"due_date,omitempty"`
}

// UpdateIssueInput mirrors Linear's IssueUpdateInput; nil fields are left
// unchanged. A non-nil LabelIDs pointing at an empty slice removes every label.
type UpdateIssueInput struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Priority    *int      `json:"priority,omitempty"`
	StateID     *string   `json:"stateId,omitempty"`
	AssigneeID  *string   `json:"assigneeId,omitempty"`
	LabelIDs    *[]string `json:"labelIds,omitempty"`
	ProjectID   *string   `json:"projectId,omitempty"`
	TeamID      *string   `json:"teamId,omitempty"`
	Estimate    *int      `json:"estimate,omitempty"`
	DueDate     *string   `json:"dueDate,omitempty"`
}

// IsEmpty reports whether the update would change nothing
func (u UpdateIssueInput) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Priority == nil &&
		u.StateID == nil && u.AssigneeID == nil && u.LabelIDs == nil &&
		u.ProjectID == nil && u.TeamID == nil && u.Estimate == nil && u.DueDate == nil
}

// IssuePayload is the result of a single issue mutation
type IssuePayload struct {
	Success bool   `json:"success"`
	Issue   *Issue `json:"issue"`
}

// CreateIssueResponse is the response of the create-issue template
type CreateIssueResponse struct {
	IssueCreate IssuePayload `json:"issueCreate"`
}

// UpdateIssueResponse is the response of the update-issue template
type UpdateIssueResponse struct {
	IssueUpdate IssuePayload `json:"issueUpdate"`
}

// IssueBatchPayload is the result of a batch create
type IssueBatchPayload struct {
	Success bool    `json:"success"`
	Issues  []Issue `json:"issues"`
}

// IssueBatchResponse is the response of the create-batch-issues template
type IssueBatchResponse struct {
	IssueBatchCreate IssueBatchPayload `json:"issueBatchCreate"`
}

// PageInfo describes a page of a connection
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// IssueConnection is a page of issues
type IssueConnection struct {
	Nodes    []Issue  `json:"nodes"`
	PageInfo PageInfo `json:"pageInfo"`
}

// SearchIssuesResponse is the response of the search-issues template
type SearchIssuesResponse struct {
	Issues IssueConnection `json:"issues"`
}

// DeletePayload is the result of a delete mutation
type DeletePayload struct {
	Success bool `json:"success"`
}

// DeleteIssueResponse is the response of the delete-issues template
type DeleteIssueResponse struct {
	IssueDelete DeletePayload `json:"issueDelete"`
}

// IssueData is the human-facing description of an issue, as written in
// issue files and collected from flags. Names are resolved to IDs by a Creator.
type IssueData struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Team        string   `yaml:"team" json:"team"`
	Priority    string   `yaml:"priority" json:"priority"`
	State       string   `yaml:"state" json:"state"`
	Labels      []string `yaml:"labels" json:"labels"`
	Assignee    string   `yaml:"assignee" json:"assignee"`
	Project     string   `yaml:"project" json:"project"`
	Parent      string   `yaml:"parent" json:"parent"`
	Estimate    *int     `yaml:"estimate" json:"estimate"`
	DueDate     string   `yaml:"due_date" json:"due_date"`
}

// Validate checks if the issue data is valid
func (d *IssueData) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("issue title is required")
	}

	if len(d.Title) > 255 {
		return fmt.Errorf("issue title must be 255 characters or less")
	}

	for _, label := range d.Labels {
		if strings.TrimSpace(label) == "" {
			return fmt.Errorf("empty label is not allowed")
		}
	}

	if d.DueDate != "" {
		if _, err := time.Parse("2006-01-02", d.DueDate); err != nil {
			return fmt.Errorf("due date '%s' must be in YYYY-MM-DD format", d.DueDate)
		}
	}

	return nil
}
