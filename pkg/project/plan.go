package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/yahsan2/linear-pm/pkg/config"
	"github.com/yahsan2/linear-pm/pkg/issue"
)

// Plan is the contents of an issue file: an optional project and the issues
// to create in it
type Plan struct {
	Project *ProjectData      `yaml:"project,omitempty" json:"project,omitempty"`
	Issues  []issue.IssueData `yaml:"issues" json:"issues"`
}

// ProjectData is the human-facing description of a project
type ProjectData struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Teams       []string `yaml:"teams" json:"teams"`
	Lead        string   `yaml:"lead" json:"lead"`
	StartDate   string   `yaml:"start_date" json:"start_date"`
	TargetDate  string   `yaml:"target_date" json:"target_date"`
}

// LoadPlan reads a YAML or JSON issue file. A bare list of issues is
// accepted as well as the full document.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read issue file: %w", err)
	}

	return ParsePlan(data, strings.EqualFold(filepath.Ext(path), ".json"))
}

// ParsePlan decodes an issue file
func ParsePlan(data []byte, isJSON bool) (*Plan, error) {
	unmarshal := yaml.Unmarshal
	if isJSON {
		unmarshal = json.Unmarshal
	}

	var plan Plan
	if err := unmarshal(data, &plan); err != nil {
		var issues []issue.IssueData
		if listErr := unmarshal(data, &issues); listErr != nil {
			return nil, fmt.Errorf("failed to parse issue file: %w", err)
		}
		plan.Issues = issues
	}

	if plan.Project == nil && len(plan.Issues) == 0 {
		return nil, fmt.Errorf("issue file contains no issues")
	}

	return &plan, nil
}

// Validate checks if the project data is valid
func (d *ProjectData) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("project name is required")
	}
	if len(d.Name) > 80 {
		return fmt.Errorf("project name must be 80 characters or less")
	}
	return nil
}

// BuildProjectInput resolves team keys and the lead through cfg. With no
// teams given the default team is used.
func BuildProjectInput(cfg *config.Config, d *ProjectData) (ProjectInput, error) {
	if err := d.Validate(); err != nil {
		return ProjectInput{}, err
	}

	teams := d.Teams
	if len(teams) == 0 && cfg.Defaults.Team != "" {
		teams = []string{cfg.Defaults.Team}
	}
	if len(teams) == 0 {
		return ProjectInput{}, fmt.Errorf("at least one team is required for project '%s'", d.Name)
	}

	input := ProjectInput{
		Name:        strings.TrimSpace(d.Name),
		TeamIDs:     make([]string, 0, len(teams)),
		Description: d.Description,
		StartDate:   d.StartDate,
		TargetDate:  d.TargetDate,
	}

	for _, ref := range teams {
		if team := cfg.TeamByKey(ref); team != nil {
			input.TeamIDs = append(input.TeamIDs, team.ID)
			continue
		}
		if _, err := uuid.Parse(ref); err == nil {
			input.TeamIDs = append(input.TeamIDs, ref)
			continue
		}
		return ProjectInput{}, fmt.Errorf("team '%s' not found in cached metadata", ref)
	}

	switch {
	case d.Lead == "":
	case d.Lead == "@me" || strings.EqualFold(d.Lead, "me"):
		if cfg.Metadata == nil || cfg.Metadata.Viewer.ID == "" {
			return ProjectInput{}, fmt.Errorf("current user is not cached; run 'linear-pm init'")
		}
		input.LeadID = cfg.Metadata.Viewer.ID
	default:
		input.LeadID = d.Lead
	}

	return input, nil
}
