package graphql

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Names of the request templates shipped in documents/
const (
	TemplateCreateIssue       = "create-issue"
	TemplateCreateBatchIssues = "create-batch-issues"
	TemplateCreateProject     = "create-project"
	TemplateUpdateIssue       = "update-issue"
	TemplateCreateLabels      = "create-labels"
	TemplateSearchIssues      = "search-issues"
	TemplateGetTeams          = "get-teams"
	TemplateGetUser           = "get-user"
	TemplateGetProject        = "get-project"
	TemplateSearchProjects    = "search-projects"
	TemplateDeleteIssues      = "delete-issues"
)

//go:embed documents/*.graphql
var documents embed.FS

// Template is a named GraphQL query or mutation document
type Template struct {
	Name string
	Body string
}

// Variables holds the variables sent with a single operation
type Variables map[string]interface{}

// TemplateStore maps operation names to request templates
type TemplateStore struct {
	templates map[string]Template
}

// NewTemplateStore creates a store holding the given templates
func NewTemplateStore(templates ...Template) *TemplateStore {
	s := &TemplateStore{
		templates: make(map[string]Template, len(templates)),
	}
	for _, t := range templates {
		s.templates[t.Name] = t
	}
	return s
}

// DefaultTemplateStore loads the embedded Linear request documents
func DefaultTemplateStore() (*TemplateStore, error) {
	return LoadTemplateStore(documents, "documents")
}

// LoadTemplateStore reads every *.graphql file in dir; the file name without
// extension becomes the template name
func LoadTemplateStore(fsys fs.FS, dir string) (*TemplateStore, error) {
	matches, err := fs.Glob(fsys, path.Join(dir, "*.graphql"))
	if err != nil {
		return nil, fmt.Errorf("failed to list request documents: %w", err)
	}

	templates := make([]Template, 0, len(matches))
	for _, match := range matches {
		data, err := fs.ReadFile(fsys, match)
		if err != nil {
			return nil, fmt.Errorf("failed to read request document %s: %w", match, err)
		}

		body := strings.TrimSpace(string(data))
		if body == "" {
			return nil, fmt.Errorf("request document %s is empty", match)
		}

		templates = append(templates, Template{
			Name: strings.TrimSuffix(path.Base(match), ".graphql"),
			Body: body,
		})
	}

	return NewTemplateStore(templates...), nil
}

// Get returns the template registered under name
func (s *TemplateStore) Get(name string) (Template, error) {
	t, ok := s.templates[name]
	if !ok {
		return Template{}, NewTemplateNotFoundError(name)
	}
	return t, nil
}

// Names returns the registered template names in sorted order
func (s *TemplateStore) Names() []string {
	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve looks up several templates at once, failing on the first missing name
func (s *TemplateStore) Resolve(names ...string) (map[string]Template, error) {
	resolved := make(map[string]Template, len(names))
	for _, name := range names {
		t, err := s.Get(name)
		if err != nil {
			return nil, err
		}
		resolved[name] = t
	}
	return resolved, nil
}
