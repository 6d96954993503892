package issue

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yahsan2/linear-pm/pkg/graphql"
)

func page(ids []string, next string) map[string]interface{} {
	nodes := make([]map[string]interface{}, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, map[string]interface{}{"id": id})
	}
	return map[string]interface{}{
		"issues": map[string]interface{}{
			"nodes":    nodes,
			"pageInfo": map[string]interface{}{"hasNextPage": next != "", "endCursor": next},
		},
	}
}

func TestSearchIssuesDefaults(t *testing.T) {
	client, fake := newTestClient(t, nil)
	fake.Reply(graphql.TemplateSearchIssues, page([]string{"a"}, ""))

	resp, err := client.SearchIssues(context.Background(), SearchOptions{})

	require.NoError(t, err)
	assert.Len(t, resp.Issues.Nodes, 1)

	calls := fake.CallsTo(graphql.TemplateSearchIssues)
	require.Len(t, calls, 1)
	vars := calls[0].Variables
	assert.Equal(t, DefaultPageSize, vars["first"])
	assert.Equal(t, "updatedAt", vars["orderBy"])
	assert.NotContains(t, vars, "after")
	assert.NotContains(t, vars, "filter")
}

func TestSearchIssuesPassesOptions(t *testing.T) {
	client, fake := newTestClient(t, nil)
	fake.Reply(graphql.TemplateSearchIssues, page(nil, ""))

	filter := map[string]interface{}{"team": map[string]interface{}{"key": map[string]interface{}{"eq": "ENG"}}}
	_, err := client.SearchIssues(context.Background(), SearchOptions{
		Filter:  filter,
		First:   10,
		After:   "cursor-1",
		OrderBy: "createdAt",
	})

	require.NoError(t, err)
	vars := fake.Calls()[0].Variables
	assert.Equal(t, filter, vars["filter"])
	assert.Equal(t, 10, vars["first"])
	assert.Equal(t, "cursor-1", vars["after"])
	assert.Equal(t, "createdAt", vars["orderBy"])
}

func TestSearchAllIssuesFollowsCursor(t *testing.T) {
	client, fake := newTestClient(t, nil)
	fake.On(graphql.TemplateSearchIssues, func(vars map[string]interface{}) (interface{}, error) {
		switch vars["after"] {
		case nil:
			return page([]string{"a", "b"}, "c1"), nil
		case "c1":
			return page([]string{"c", "d"}, "c2"), nil
		case "c2":
			return page([]string{"e"}, ""), nil
		}
		return nil, fmt.Errorf("unexpected cursor %v", vars["after"])
	})

	issues, err := client.SearchAllIssues(context.Background(), nil, 0)

	require.NoError(t, err)
	require.Len(t, issues, 5)
	assert.Equal(t, "e", issues[4].ID)
	assert.Len(t, fake.Calls(), 3)
}

func TestSearchAllIssuesRespectsLimit(t *testing.T) {
	client, fake := newTestClient(t, nil)
	fake.On(graphql.TemplateSearchIssues, func(vars map[string]interface{}) (interface{}, error) {
		if vars["after"] == nil {
			return page([]string{"a", "b", "c"}, "c1"), nil
		}
		return page([]string{"d", "e", "f"}, "c2"), nil
	})

	issues, err := client.SearchAllIssues(context.Background(), nil, 4)

	require.NoError(t, err)
	require.Len(t, issues, 4)
	assert.Equal(t, "d", issues[3].ID)

	calls := fake.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, 4, calls[0].Variables["first"])
}

func TestSearchAllIssuesError(t *testing.T) {
	client, fake := newTestClient(t, nil)
	fake.Fail(graphql.TemplateSearchIssues, fmt.Errorf("timeout"))

	issues, err := client.SearchAllIssues(context.Background(), nil, 0)

	assert.Nil(t, issues)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}
