package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yahsan2/linear-pm/pkg/config"
)

func TestLoadPlanYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yml")
	content := `project:
  name: Launch
  teams: [ENG]
  lead: "@me"
issues:
  - title: Write docs
    priority: high
    labels: [Docs]
  - title: Ship it
    due_date: "2024-06-01"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	plan, err := LoadPlan(path)

	require.NoError(t, err)
	require.NotNil(t, plan.Project)
	assert.Equal(t, "Launch", plan.Project.Name)
	assert.Equal(t, []string{"ENG"}, plan.Project.Teams)
	require.Len(t, plan.Issues, 2)
	assert.Equal(t, "high", plan.Issues[0].Priority)
	assert.Equal(t, []string{"Docs"}, plan.Issues[0].Labels)
	assert.Equal(t, "2024-06-01", plan.Issues[1].DueDate)
}

func TestLoadPlanBareList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issues.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title":"one"},{"title":"two","team":"ENG"}]`), 0644))

	plan, err := LoadPlan(path)

	require.NoError(t, err)
	assert.Nil(t, plan.Project)
	require.Len(t, plan.Issues, 2)
	assert.Equal(t, "ENG", plan.Issues[1].Team)
}

func TestParsePlanErrors(t *testing.T) {
	_, err := ParsePlan([]byte("issues: []\n"), false)
	assert.Error(t, err)

	_, err = ParsePlan([]byte("{not json"), true)
	assert.Error(t, err)

	_, err = LoadPlan(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestBuildProjectInput(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Defaults.Team = "ENG"
	cfg.Metadata = &config.ConfigMetadata{
		Viewer: config.UserMetadata{ID: "user-1"},
		Teams:  []config.TeamMetadata{{ID: "team-1", Key: "ENG"}, {ID: "team-2", Key: "OPS"}},
	}

	t.Run("resolves teams and lead", func(t *testing.T) {
		input, err := BuildProjectInput(cfg, &ProjectData{Name: " Launch ", Teams: []string{"eng", "OPS"}, Lead: "@me"})
		require.NoError(t, err)
		assert.Equal(t, "Launch", input.Name)
		assert.Equal(t, []string{"team-1", "team-2"}, input.TeamIDs)
		assert.Equal(t, "user-1", input.LeadID)
	})

	t.Run("falls back to the default team", func(t *testing.T) {
		input, err := BuildProjectInput(cfg, &ProjectData{Name: "Launch"})
		require.NoError(t, err)
		assert.Equal(t, []string{"team-1"}, input.TeamIDs)
	})

	t.Run("unknown team", func(t *testing.T) {
		_, err := BuildProjectInput(cfg, &ProjectData{Name: "Launch", Teams: []string{"QA"}})
		assert.Error(t, err)
	})

	t.Run("name required", func(t *testing.T) {
		_, err := BuildProjectInput(cfg, &ProjectData{})
		assert.Error(t, err)
	})

	t.Run("no team at all", func(t *testing.T) {
		_, err := BuildProjectInput(config.DefaultConfig(), &ProjectData{Name: "Launch"})
		assert.Error(t, err)
	})
}
