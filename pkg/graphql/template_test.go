package graphql

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplateStore(t *testing.T) {
	store, err := DefaultTemplateStore()
	require.NoError(t, err)

	want := []string{
		TemplateCreateBatchIssues,
		TemplateCreateIssue,
		TemplateCreateLabels,
		TemplateCreateProject,
		TemplateDeleteIssues,
		TemplateGetProject,
		TemplateGetTeams,
		TemplateGetUser,
		TemplateSearchIssues,
		TemplateSearchProjects,
		TemplateUpdateIssue,
	}
	assert.Equal(t, want, store.Names())

	for _, name := range want {
		tmpl, err := store.Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, tmpl.Name)
		assert.NotEmpty(t, tmpl.Body)
	}

	update, _ := store.Get(TemplateUpdateIssue)
	assert.Contains(t, update.Body, "$id: String!")
	assert.Contains(t, update.Body, "$input: IssueUpdateInput!")

	batch, _ := store.Get(TemplateCreateBatchIssues)
	assert.True(t, strings.HasPrefix(batch.Body, "mutation"))
}

func TestTemplateStoreGetMissing(t *testing.T) {
	store := NewTemplateStore(Template{Name: "a", Body: "query A { a }"})

	_, err := store.Get("b")
	require.Error(t, err)
	assert.True(t, IsType(err, ErrorTypeNotFound))
	assert.Contains(t, err.Error(), `"b"`)
}

func TestTemplateStoreResolve(t *testing.T) {
	store := NewTemplateStore(
		Template{Name: "a", Body: "query A { a }"},
		Template{Name: "b", Body: "query B { b }"},
	)

	resolved, err := store.Resolve("a", "b")
	require.NoError(t, err)
	assert.Len(t, resolved, 2)

	_, err = store.Resolve("a", "c")
	assert.Error(t, err)
}

func TestLoadTemplateStore(t *testing.T) {
	t.Run("file name becomes template name", func(t *testing.T) {
		fsys := fstest.MapFS{
			"docs/get-thing.graphql": {Data: []byte("\nquery GetThing { thing { id } }\n")},
			"docs/readme.md":         {Data: []byte("ignored")},
		}

		store, err := LoadTemplateStore(fsys, "docs")
		require.NoError(t, err)
		assert.Equal(t, []string{"get-thing"}, store.Names())

		tmpl, err := store.Get("get-thing")
		require.NoError(t, err)
		assert.Equal(t, "query GetThing { thing { id } }", tmpl.Body)
	})

	t.Run("empty document is rejected", func(t *testing.T) {
		fsys := fstest.MapFS{
			"docs/blank.graphql": {Data: []byte("   ")},
		}

		_, err := LoadTemplateStore(fsys, "docs")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})
}
