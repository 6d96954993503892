package setup

import (
	"strings"

	"github.com/cli/go-gh/v2/pkg/repository"

	"github.com/yahsan2/linear-pm/pkg/team"
)

// TeamDetector suggests a default team from the git repository in the
// working directory
type TeamDetector struct {
	current func() (repository.Repository, error)
}

// NewTeamDetector creates a new TeamDetector instance
func NewTeamDetector() *TeamDetector {
	return &TeamDetector{current: repository.Current}
}

// SuggestTeam returns the key of the team matching the current repository
// name, or an empty string
func (d *TeamDetector) SuggestTeam(teams []team.Team) string {
	repo, err := d.current()
	if err != nil {
		return ""
	}
	return matchTeam(repo.Name, teams)
}

func matchTeam(repoName string, teams []team.Team) string {
	name := strings.ToLower(repoName)
	if name == "" {
		return ""
	}

	for _, t := range teams {
		if strings.EqualFold(t.Key, name) || strings.EqualFold(t.Name, name) {
			return t.Key
		}
	}
	for _, t := range teams {
		if strings.HasPrefix(name, strings.ToLower(t.Key)+"-") {
			return t.Key
		}
	}
	return ""
}
