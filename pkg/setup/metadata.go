package setup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yahsan2/linear-pm/pkg/config"
	"github.com/yahsan2/linear-pm/pkg/team"
	"github.com/yahsan2/linear-pm/pkg/user"
)

// TeamLister lists the workspace teams
type TeamLister interface {
	GetTeams(ctx context.Context) (*team.GetTeamsResponse, error)
}

// ViewerGetter reads the authenticated user
type ViewerGetter interface {
	GetCurrentUser(ctx context.Context) (*user.Viewer, error)
}

// MetadataManager fetches the workspace metadata cached in the config file
type MetadataManager struct {
	teams TeamLister
	users ViewerGetter
	now   func() time.Time
}

// NewMetadataManager creates a new MetadataManager instance
func NewMetadataManager(teams TeamLister, users ViewerGetter) *MetadataManager {
	return &MetadataManager{
		teams: teams,
		users: users,
		now:   time.Now,
	}
}

// FetchTeams lists every team visible to the API key
func (m *MetadataManager) FetchTeams(ctx context.Context) ([]team.Team, error) {
	resp, err := m.teams.GetTeams(ctx)
	if err != nil {
		return nil, NewAPIError("failed to fetch teams", err)
	}
	return resp.Teams.Nodes, nil
}

// FetchViewer reads the authenticated user
func (m *MetadataManager) FetchViewer(ctx context.Context) (*user.Viewer, error) {
	viewer, err := m.users.GetCurrentUser(ctx)
	if err != nil {
		return nil, NewAPIError("failed to fetch current user", err)
	}
	return viewer, nil
}

// BuildMetadata builds the cached metadata for the given teams. When keys is
// non-empty only matching teams are kept.
func (m *MetadataManager) BuildMetadata(viewer *user.Viewer, teams []team.Team, keys []string) (*config.ConfigMetadata, error) {
	if viewer == nil {
		return nil, NewValidationError("viewer is nil")
	}

	metadata := &config.ConfigMetadata{
		Viewer:    viewer.Metadata(),
		Teams:     make([]config.TeamMetadata, 0, len(teams)),
		UpdatedAt: m.now().UTC().Truncate(time.Second),
	}

	for _, t := range teams {
		if len(keys) > 0 && !containsFold(keys, t.Key) {
			continue
		}
		metadata.Teams = append(metadata.Teams, t.Metadata())
	}

	found := make([]string, 0, len(metadata.Teams))
	for _, t := range metadata.Teams {
		found = append(found, t.Key)
	}
	for _, key := range keys {
		if !containsFold(found, key) {
			return nil, NewValidationError(fmt.Sprintf("team '%s' not found in workspace", key))
		}
	}

	return metadata, nil
}

// Refresh fetches the viewer and teams and builds fresh metadata
func (m *MetadataManager) Refresh(ctx context.Context, keys []string) (*config.ConfigMetadata, error) {
	viewer, err := m.FetchViewer(ctx)
	if err != nil {
		return nil, err
	}
	teams, err := m.FetchTeams(ctx)
	if err != nil {
		return nil, err
	}
	return m.BuildMetadata(viewer, teams, keys)
}

func containsFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
