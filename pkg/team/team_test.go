package team

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yahsan2/linear-pm/pkg/config"
	"github.com/yahsan2/linear-pm/pkg/graphql"
	"github.com/yahsan2/linear-pm/pkg/graphql/graphqltest"
)

func newTestClient(t *testing.T) (*Client, *graphqltest.Transport) {
	t.Helper()

	store, err := graphql.DefaultTemplateStore()
	require.NoError(t, err)

	fake := graphqltest.NewTransport(store)
	client, err := NewClient(graphql.NewGateway(fake, nil), store)
	require.NoError(t, err)

	return client, fake
}

func TestGetTeams(t *testing.T) {
	client, fake := newTestClient(t)
	fake.Reply(graphql.TemplateGetTeams, map[string]interface{}{
		"teams": map[string]interface{}{
			"nodes": []map[string]interface{}{{
				"id":     "team-1",
				"key":    "ENG",
				"name":   "Engineering",
				"states": map[string]interface{}{"nodes": []map[string]interface{}{{"id": "s1", "name": "Todo", "type": "unstarted"}}},
				"labels": map[string]interface{}{"nodes": []map[string]interface{}{{"id": "l1", "name": "Bug"}}},
			}},
		},
	})

	resp, err := client.GetTeams(context.Background())

	require.NoError(t, err)
	require.Len(t, resp.Teams.Nodes, 1)
	team := resp.Teams.Nodes[0]
	assert.Equal(t, []string{"Todo"}, team.StateNames())

	meta := team.Metadata()
	assert.Equal(t, config.TeamMetadata{
		ID:     "team-1",
		Key:    "ENG",
		Name:   "Engineering",
		States: []config.NamedID{{ID: "s1", Name: "Todo"}},
		Labels: []config.NamedID{{ID: "l1", Name: "Bug"}},
	}, meta)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].Variables)
}

func TestCreateLabels(t *testing.T) {
	client, fake := newTestClient(t)
	fake.Reply(graphql.TemplateCreateLabels, map[string]interface{}{
		"issueLabelCreate": map[string]interface{}{
			"success":    true,
			"issueLabel": map[string]interface{}{"id": "l2", "name": "Docs", "color": "#00ff00"},
		},
	})

	labels := []LabelInput{{Name: "Docs", Color: "#00ff00", TeamID: "team-1"}}
	resp, err := client.CreateLabels(context.Background(), labels)

	require.NoError(t, err)
	assert.True(t, resp.IssueLabelCreate.Success)
	assert.Equal(t, "l2", resp.IssueLabelCreate.IssueLabel.ID)
	assert.Equal(t, labels, fake.Calls()[0].Variables["labels"])
}

func TestCreateLabelsValidation(t *testing.T) {
	client, fake := newTestClient(t)

	_, err := client.CreateLabels(context.Background(), nil)
	assert.True(t, graphql.IsType(err, graphql.ErrorTypeValidation))

	_, err = client.CreateLabels(context.Background(), []LabelInput{{Name: " "}})
	assert.True(t, graphql.IsType(err, graphql.ErrorTypeValidation))

	assert.Empty(t, fake.Calls())
}
