package setup

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yahsan2/linear-pm/pkg/team"
)

func newPrompt(input string) (*InteractivePrompt, *bytes.Buffer) {
	var out bytes.Buffer
	return NewInteractivePromptWithIO(strings.NewReader(input), &out), &out
}

func TestConfirmOverwrite(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "", want: false},
	}

	for _, tt := range tests {
		p, out := newPrompt(tt.input)
		assert.Equal(t, tt.want, p.ConfirmOverwrite(".linear-pm.yml"), "input %q", tt.input)
		assert.Contains(t, out.String(), ".linear-pm.yml")
	}
}

func TestSelectTeam(t *testing.T) {
	teams := workspaceTeams()

	tests := []struct {
		name      string
		input     string
		suggested string
		want      string
	}{
		{name: "by number", input: "2\n", want: "OPS"},
		{name: "by key", input: "eng\n", want: "ENG"},
		{name: "by name fragment", input: "operat\n", want: "OPS"},
		{name: "enter takes suggestion", input: "\n", suggested: "OPS", want: "OPS"},
		{name: "zero skips", input: "0\n"},
		{name: "out of range", input: "9\n"},
		{name: "unknown", input: "qa\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newPrompt(tt.input)
			got := p.SelectTeam(teams, tt.suggested)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Key)
		})
	}
}

func TestSelectTeamSingle(t *testing.T) {
	teams := []team.Team{{ID: "team-1", Key: "ENG", Name: "Engineering"}}

	p, _ := newPrompt("\n")
	require.NotNil(t, p.SelectTeam(teams, ""))

	p, _ = newPrompt("n\n")
	assert.Nil(t, p.SelectTeam(teams, ""))

	p, _ = newPrompt("")
	assert.Nil(t, p.SelectTeam(nil, ""))
}

func TestGetStringInput(t *testing.T) {
	p, _ := newPrompt("\nvalue\n")
	assert.Equal(t, "fallback", p.GetStringInput("Name", "fallback"))
	assert.Equal(t, "value", p.GetStringInput("Name", "fallback"))
	assert.Equal(t, "fallback", p.GetStringInput("Name", "fallback"))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcdefg...", truncateString("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncateString("abcdef", 2))
}
