package issue

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yahsan2/linear-pm/pkg/config"
	"github.com/yahsan2/linear-pm/pkg/graphql"
)

// Creator turns IssueData into API inputs, resolving team, state, label and
// assignee names through the cached workspace metadata
type Creator struct {
	cfg *config.Config
}

// NewCreator creates a new issue creator
func NewCreator(cfg *config.Config) *Creator {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Creator{cfg: cfg}
}

// BuildCreateInput validates data, applies configured defaults and returns
// the create input
func (c *Creator) BuildCreateInput(data *IssueData) (CreateIssueInput, error) {
	if err := data.Validate(); err != nil {
		return CreateIssueInput{}, graphql.NewValidationError(graphql.TemplateCreateIssue, fmt.Sprintf("invalid issue data: %v", err))
	}

	teamRef := firstNonEmpty(data.Team, c.cfg.Defaults.Team)
	if teamRef == "" {
		return CreateIssueInput{}, graphql.NewValidationError(graphql.TemplateCreateIssue, "team is required: pass --team or set defaults.team")
	}

	teamID, team, err := c.resolveTeam(teamRef)
	if err != nil {
		return CreateIssueInput{}, err
	}

	input := CreateIssueInput{
		TeamID:      teamID,
		Title:       strings.TrimSpace(data.Title),
		Description: data.Description,
		ProjectID:   data.Project,
		ParentID:    data.Parent,
		Estimate:    data.Estimate,
		DueDate:     data.DueDate,
	}

	if priority := firstNonEmpty(data.Priority, c.cfg.Defaults.Priority); priority != "" {
		value, err := c.cfg.ResolvePriority(priority)
		if err != nil {
			return CreateIssueInput{}, graphql.NewValidationError(graphql.TemplateCreateIssue, err.Error())
		}
		input.Priority = &value
	}

	if state := firstNonEmpty(data.State, c.cfg.Defaults.State); state != "" {
		if input.StateID, err = c.resolveState(team, state); err != nil {
			return CreateIssueInput{}, err
		}
	}

	labels := data.Labels
	if len(labels) == 0 {
		labels = c.cfg.Defaults.Labels
	}
	if input.LabelIDs, err = c.resolveLabels(team, labels); err != nil {
		return CreateIssueInput{}, err
	}

	if data.Assignee != "" {
		if input.AssigneeID, err = c.resolveAssignee(data.Assignee); err != nil {
			return CreateIssueInput{}, err
		}
	}

	return input, nil
}

// BuildCreateInputs resolves several issues, reporting the index of the first invalid one
func (c *Creator) BuildCreateInputs(items []IssueData) ([]CreateIssueInput, error) {
	inputs := make([]CreateIssueInput, 0, len(items))
	for i := range items {
		input, err := c.BuildCreateInput(&items[i])
		if err != nil {
			return nil, fmt.Errorf("issue %d (%q): %w", i+1, items[i].Title, err)
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

// UpdateData describes a partial update; empty fields are left unchanged
type UpdateData struct {
	Title       string
	Description string
	Team        string
	Priority    string
	State       string
	Labels      []string
	Assignee    string
	Project     string
	// ClearLabels removes every label; it cannot be combined with Labels
	ClearLabels bool
}

// BuildUpdateInput resolves data into an update input. State and label names
// are resolved against data.Team or the default team.
func (c *Creator) BuildUpdateInput(data *UpdateData) (UpdateIssueInput, error) {
	var input UpdateIssueInput

	if data.Title != "" {
		input.Title = stringPtr(data.Title)
	}
	if data.Description != "" {
		input.Description = stringPtr(data.Description)
	}
	if data.Project != "" {
		input.ProjectID = stringPtr(data.Project)
	}

	if data.Priority != "" {
		value, err := c.cfg.ResolvePriority(data.Priority)
		if err != nil {
			return UpdateIssueInput{}, graphql.NewValidationError(graphql.TemplateUpdateIssue, err.Error())
		}
		input.Priority = &value
	}

	if data.Assignee != "" {
		id, err := c.resolveAssignee(data.Assignee)
		if err != nil {
			return UpdateIssueInput{}, err
		}
		input.AssigneeID = &id
	}

	var team *config.TeamMetadata
	if data.State != "" || len(data.Labels) > 0 || data.Team != "" {
		teamRef := firstNonEmpty(data.Team, c.cfg.Defaults.Team)
		if teamRef != "" {
			teamID, t, err := c.resolveTeam(teamRef)
			if err != nil {
				return UpdateIssueInput{}, err
			}
			team = t
			if data.Team != "" {
				input.TeamID = &teamID
			}
		}
	}

	if data.State != "" {
		id, err := c.resolveState(team, data.State)
		if err != nil {
			return UpdateIssueInput{}, err
		}
		input.StateID = &id
	}

	switch {
	case data.ClearLabels && len(data.Labels) > 0:
		return UpdateIssueInput{}, graphql.NewValidationError(graphql.TemplateUpdateIssue, "labels cannot be set and cleared in the same update")
	case data.ClearLabels:
		input.LabelIDs = &[]string{}
	case len(data.Labels) > 0:
		ids, err := c.resolveLabels(team, data.Labels)
		if err != nil {
			return UpdateIssueInput{}, err
		}
		input.LabelIDs = &ids
	}

	if input.IsEmpty() {
		return UpdateIssueInput{}, graphql.NewValidationError(graphql.TemplateUpdateIssue, "nothing to update: specify at least one field")
	}

	return input, nil
}

func (c *Creator) resolveTeam(ref string) (string, *config.TeamMetadata, error) {
	if team := c.cfg.TeamByKey(ref); team != nil {
		return team.ID, team, nil
	}
	if isID(ref) {
		return ref, nil, nil
	}
	return "", nil, notFound("team", ref)
}

func (c *Creator) resolveState(team *config.TeamMetadata, name string) (string, error) {
	if team != nil {
		if id, ok := team.StateID(name); ok {
			return id, nil
		}
	}
	if isID(name) {
		return name, nil
	}
	return "", notFound("workflow state", name)
}

func (c *Creator) resolveLabels(team *config.TeamMetadata, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(names))
	for _, name := range names {
		if team != nil {
			if id, ok := team.LabelID(name); ok {
				ids = append(ids, id)
				continue
			}
		}
		if isID(name) {
			ids = append(ids, name)
			continue
		}
		return nil, notFound("label", name)
	}
	return ids, nil
}

func (c *Creator) resolveAssignee(ref string) (string, error) {
	if ref == "@me" || strings.EqualFold(ref, "me") {
		if c.cfg.Metadata == nil || c.cfg.Metadata.Viewer.ID == "" {
			return "", notFound("current user", ref)
		}
		return c.cfg.Metadata.Viewer.ID, nil
	}
	if isID(ref) {
		return ref, nil
	}
	if c.cfg.Metadata != nil && strings.EqualFold(c.cfg.Metadata.Viewer.Email, ref) {
		return c.cfg.Metadata.Viewer.ID, nil
	}
	return "", notFound("assignee", ref)
}

func notFound(kind, ref string) error {
	return &graphql.OperationError{
		Type:       graphql.ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s '%s' not found in cached metadata", kind, ref),
		Suggestion: "Run 'linear-pm init' to refresh metadata, or pass the ID directly",
	}
}

// isID reports whether s looks like a Linear UUID
func isID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func stringPtr(s string) *string {
	return &s
}
