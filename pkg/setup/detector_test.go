package setup

import (
	"errors"
	"testing"

	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/stretchr/testify/assert"
)

func TestTeamDetectorSuggestTeam(t *testing.T) {
	tests := []struct {
		name string
		repo string
		want string
	}{
		{name: "repo named after key", repo: "eng", want: "ENG"},
		{name: "repo named after team", repo: "Operations", want: "OPS"},
		{name: "key prefix", repo: "ops-tooling", want: "OPS"},
		{name: "no match", repo: "website"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &TeamDetector{current: func() (repository.Repository, error) {
				return repository.Repository{Host: "github.com", Owner: "acme", Name: tt.repo}, nil
			}}
			assert.Equal(t, tt.want, d.SuggestTeam(workspaceTeams()))
		})
	}
}

func TestTeamDetectorOutsideRepository(t *testing.T) {
	d := &TeamDetector{current: func() (repository.Repository, error) {
		return repository.Repository{}, errors.New("not a git repository")
	}}

	assert.Equal(t, "", d.SuggestTeam(workspaceTeams()))
}
