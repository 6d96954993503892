package args

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommonFlags(t *testing.T) {
	cmd := &cobra.Command{
		Use: "test",
	}

	AddCommonFlags(cmd, nil)

	for _, name := range []string{"team", "label", "assignee", "author", "state", "project", "search", "limit"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}

	assert.Equal(t, "t", cmd.Flags().Lookup("team").Shorthand)
	assert.Equal(t, "l", cmd.Flags().Lookup("label").Shorthand)
	assert.Equal(t, "a", cmd.Flags().Lookup("assignee").Shorthand)
	assert.Equal(t, "A", cmd.Flags().Lookup("author").Shorthand)
	assert.Equal(t, "s", cmd.Flags().Lookup("state").Shorthand)
	assert.Equal(t, "p", cmd.Flags().Lookup("project").Shorthand)
	assert.Equal(t, "S", cmd.Flags().Lookup("search").Shorthand)
	assert.Equal(t, "L", cmd.Flags().Lookup("limit").Shorthand)
}

func TestAddDateFlags(t *testing.T) {
	cmd := &cobra.Command{
		Use: "test",
	}

	AddDateFlags(cmd)

	assert.NotNil(t, cmd.Flags().Lookup("priority"))
	assert.NotNil(t, cmd.Flags().Lookup("updated"))
	assert.NotNil(t, cmd.Flags().Lookup("created"))
}

func TestParseCommonFlags(t *testing.T) {
	cmd := &cobra.Command{
		Use: "test",
	}

	AddCommonFlags(cmd, nil)

	require.NoError(t, cmd.Flags().Set("state", "closed"))
	require.NoError(t, cmd.Flags().Set("limit", "50"))
	require.NoError(t, cmd.Flags().Set("assignee", "@me"))
	require.NoError(t, cmd.Flags().Set("team", "ENG"))
	require.NoError(t, cmd.Flags().Set("label", "bug,auth"))

	filters, err := ParseCommonFlags(cmd, nil)
	require.NoError(t, err)

	assert.Equal(t, "closed", filters.State)
	assert.Equal(t, 50, filters.Limit)
	assert.Equal(t, "@me", filters.Assignee)
	assert.Equal(t, "ENG", filters.Team)
	assert.Equal(t, []string{"bug", "auth"}, filters.Labels)
}

func TestParseCommonFlagsDefaults(t *testing.T) {
	cmd := &cobra.Command{
		Use: "test",
	}

	AddCommonFlags(cmd, nil)

	filters, err := ParseCommonFlags(cmd, nil)
	require.NoError(t, err)

	assert.Equal(t, "open", filters.State)
	assert.Equal(t, 100, filters.Limit)
	assert.Empty(t, filters.Labels)
}

func TestParseDateFlags(t *testing.T) {
	cmd := &cobra.Command{
		Use: "test",
	}

	AddCommonFlags(cmd, nil)
	AddDateFlags(cmd)

	require.NoError(t, cmd.Flags().Set("priority", "high"))
	require.NoError(t, cmd.Flags().Set("updated", ">=@today-1w"))

	filters, err := ParseCommonFlags(cmd, nil)
	require.NoError(t, err)

	require.NoError(t, ParseDateFlags(cmd, filters))

	assert.Equal(t, "high", filters.Priority)
	assert.Equal(t, ">=@today-1w", filters.Updated)
	assert.Empty(t, filters.Created)
}

func TestParseCommonFlagsMissingFlag(t *testing.T) {
	cmd := &cobra.Command{
		Use: "test",
	}

	_, err := ParseCommonFlags(cmd, nil)
	assert.Error(t, err)
}

func TestDefaultFlags(t *testing.T) {
	flags := DefaultFlags()

	assert.Equal(t, "team", flags.Team)
	assert.Equal(t, "label", flags.Label)
	assert.Equal(t, "assignee", flags.Assignee)
	assert.Equal(t, "author", flags.Author)
	assert.Equal(t, "state", flags.State)
	assert.Equal(t, "project", flags.Project)
	assert.Equal(t, "search", flags.Search)
	assert.Equal(t, "limit", flags.Limit)
}
