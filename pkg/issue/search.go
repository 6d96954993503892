package issue

import (
	"context"

	"go.uber.org/zap"

	"github.com/yahsan2/linear-pm/pkg/graphql"
)

const (
	// DefaultPageSize is the page size used when none is given
	DefaultPageSize = 50
	// DefaultOrderBy orders search results by last update
	DefaultOrderBy = "updatedAt"
)

// SearchOptions controls a single search request
type SearchOptions struct {
	// Filter is a Linear IssueFilter document
	Filter  map[string]interface{}
	First   int
	After   string
	OrderBy string
}

// SearchIssues fetches one page of issues matching opts
func (c *Client) SearchIssues(ctx context.Context, opts SearchOptions) (*SearchIssuesResponse, error) {
	return graphql.Do[SearchIssuesResponse](ctx, c.gateway, c.templates[graphql.TemplateSearchIssues], searchVariables(opts))
}

// SearchAllIssues follows the result cursor until limit issues were
// collected or there are no more pages. A limit of zero or less fetches
// every page.
func (c *Client) SearchAllIssues(ctx context.Context, filter map[string]interface{}, limit int) ([]Issue, error) {
	pageSize := DefaultPageSize
	if limit > 0 && limit < pageSize {
		pageSize = limit
	}

	issues := []Issue{}
	after := ""
	for {
		resp, err := c.SearchIssues(ctx, SearchOptions{
			Filter: filter,
			First:  pageSize,
			After:  after,
		})
		if err != nil {
			return nil, err
		}

		issues = append(issues, resp.Issues.Nodes...)
		c.logger.Debug("fetched issue page",
			zap.Int("page_size", len(resp.Issues.Nodes)),
			zap.Int("total", len(issues)),
		)

		if limit > 0 && len(issues) >= limit {
			return issues[:limit], nil
		}

		page := resp.Issues.PageInfo
		if !page.HasNextPage || page.EndCursor == "" {
			return issues, nil
		}
		after = page.EndCursor
	}
}

func searchVariables(opts SearchOptions) graphql.Variables {
	first := opts.First
	if first <= 0 {
		first = DefaultPageSize
	}

	orderBy := opts.OrderBy
	if orderBy == "" {
		orderBy = DefaultOrderBy
	}

	vars := graphql.Variables{
		"first":   first,
		"orderBy": orderBy,
	}
	if len(opts.Filter) > 0 {
		vars["filter"] = opts.Filter
	}
	if opts.After != "" {
		vars["after"] = opts.After
	}
	return vars
}
