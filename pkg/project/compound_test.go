package project

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yahsan2/linear-pm/pkg/graphql"
	"github.com/yahsan2/linear-pm/pkg/graphql/graphqltest"
	"github.com/yahsan2/linear-pm/pkg/issue"
)

func newTestClient(t *testing.T) (*Client, *graphqltest.Transport) {
	t.Helper()

	store, err := graphql.DefaultTemplateStore()
	require.NoError(t, err)

	fake := graphqltest.NewTransport(store)
	gateway := graphql.NewGateway(fake, nil)

	issues, err := issue.NewClient(gateway, store)
	require.NoError(t, err)

	client, err := NewClient(gateway, store, issues)
	require.NoError(t, err)

	return client, fake
}

func projectCreated(id string) map[string]interface{} {
	return map[string]interface{}{
		"projectCreate": map[string]interface{}{
			"success": true,
			"project": map[string]interface{}{"id": id, "name": "X"},
		},
	}
}

func batchCreated(success bool, count int) map[string]interface{} {
	issues := make([]map[string]interface{}, 0, count)
	for i := 0; i < count; i++ {
		issues = append(issues, map[string]interface{}{"id": "issue"})
	}
	return map[string]interface{}{
		"issueBatchCreate": map[string]interface{}{"success": success, "issues": issues},
	}
}

func batchInputs(t *testing.T, call graphqltest.Call) []issue.CreateIssueInput {
	t.Helper()

	input, ok := call.Variables["input"].(map[string]interface{})
	require.True(t, ok)
	items, ok := input["issues"].([]issue.CreateIssueInput)
	require.True(t, ok)
	return items
}

func TestCreateProjectWithIssuesProjectDeclaredFailure(t *testing.T) {
	client, fake := newTestClient(t)
	fake.Reply(graphql.TemplateCreateProject, map[string]interface{}{
		"projectCreate": map[string]interface{}{"success": false},
	})
	fake.Reply(graphql.TemplateCreateBatchIssues, batchCreated(true, 2))

	result, err := client.CreateProjectWithIssues(context.Background(), ProjectInput{Name: "X"}, []issue.CreateIssueInput{
		{TeamID: "t", Title: "one"},
		{TeamID: "t", Title: "two"},
	})

	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, graphql.IsDeclared(err))
	assert.Contains(t, err.Error(), "failed to create project")
	assert.Empty(t, fake.CallsTo(graphql.TemplateCreateBatchIssues))
}

func TestCreateProjectWithIssuesProjectTransportFailure(t *testing.T) {
	client, fake := newTestClient(t)
	fake.Fail(graphql.TemplateCreateProject, errors.New("timeout"))

	result, err := client.CreateProjectWithIssues(context.Background(), ProjectInput{Name: "X"}, []issue.CreateIssueInput{{Title: "one"}})

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), graphql.OperationFailedPrefix)
	assert.Contains(t, err.Error(), "timeout")
	assert.Empty(t, fake.CallsTo(graphql.TemplateCreateBatchIssues))
}

func TestCreateProjectWithIssuesAttachesProject(t *testing.T) {
	client, fake := newTestClient(t)
	fake.Reply(graphql.TemplateCreateProject, projectCreated("proj-1"))
	fake.Reply(graphql.TemplateCreateBatchIssues, batchCreated(true, 2))

	priority := 2
	inputs := []issue.CreateIssueInput{
		{TeamID: "team-1", Title: "one", Priority: &priority, LabelIDs: []string{"l1"}},
		{TeamID: "team-1", Title: "two", ProjectID: "stale", Description: "body"},
	}

	result, err := client.CreateProjectWithIssues(context.Background(), ProjectInput{Name: "X", TeamIDs: []string{"team-1"}}, inputs)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Success)
	assert.Equal(t, "proj-1", result.ProjectCreate.Project.ID)
	assert.Len(t, result.IssueBatchCreate.Issues, 2)

	calls := fake.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, graphql.TemplateCreateProject, calls[0].Name)
	assert.Equal(t, graphql.TemplateCreateBatchIssues, calls[1].Name)

	sent := batchInputs(t, calls[1])
	require.Len(t, sent, 2)
	for i, in := range sent {
		assert.Equal(t, "proj-1", in.ProjectID)

		want := inputs[i]
		want.ProjectID = "proj-1"
		assert.Equal(t, want, in)
	}

	// caller inputs are not modified
	assert.Equal(t, "", inputs[0].ProjectID)
	assert.Equal(t, "stale", inputs[1].ProjectID)
}

func TestCreateProjectWithIssuesBatchFailure(t *testing.T) {
	tests := []struct {
		name        string
		configure   func(*graphqltest.Transport)
		wantDeclare bool
	}{
		{
			name: "batch reports failure",
			configure: func(f *graphqltest.Transport) {
				f.Reply(graphql.TemplateCreateBatchIssues, batchCreated(false, 0))
			},
			wantDeclare: true,
		},
		{
			name: "batch transport error",
			configure: func(f *graphqltest.Transport) {
				f.Fail(graphql.TemplateCreateBatchIssues, errors.New("connection reset"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, fake := newTestClient(t)
			fake.Reply(graphql.TemplateCreateProject, projectCreated("proj-2"))
			tt.configure(fake)

			result, err := client.CreateProjectWithIssues(context.Background(), ProjectInput{Name: "X"}, []issue.CreateIssueInput{{Title: "one"}})

			require.Error(t, err)
			assert.Equal(t, tt.wantDeclare, graphql.IsDeclared(err))
			require.NotNil(t, result)
			assert.False(t, result.Success)
			assert.Equal(t, "proj-2", result.ProjectCreate.Project.ID)

			// no compensation is attempted
			assert.Len(t, fake.Calls(), 2)
			assert.Empty(t, fake.CallsTo(graphql.TemplateDeleteIssues))
		})
	}
}

func TestCreateProjectWithIssuesEmptyIssues(t *testing.T) {
	client, fake := newTestClient(t)
	fake.Reply(graphql.TemplateCreateProject, projectCreated("proj-3"))
	fake.Reply(graphql.TemplateCreateBatchIssues, batchCreated(true, 0))

	result, err := client.CreateProjectWithIssues(context.Background(), ProjectInput{Name: "X"}, nil)

	require.NoError(t, err)
	assert.True(t, result.Success)

	calls := fake.CallsTo(graphql.TemplateCreateBatchIssues)
	require.Len(t, calls, 1)
	assert.Empty(t, batchInputs(t, calls[0]))
}
