package issue

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yahsan2/linear-pm/pkg/graphql"
)

// UpdateFailure records why a single identifier could not be updated
type UpdateFailure struct {
	// Index is the position of ID in the identifiers passed to UpdateIssues
	Index int
	ID    string
	Err   error
}

func (f UpdateFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.ID, f.Err)
}

// BulkUpdateResult aggregates a sequential bulk update. Success is true only
// when every identifier was updated; Issues holds the confirmed updates in
// input order.
type BulkUpdateResult struct {
	Success  bool
	Issues   []Issue
	Failures []UpdateFailure
}

// Summary converts the result into a BatchResult for display
func (r *BulkUpdateResult) Summary() BatchResult {
	summary := BatchResult{
		Total:     len(r.Issues) + len(r.Failures),
		Succeeded: len(r.Issues),
		Failed:    len(r.Failures),
		Issues:    r.Issues,
	}
	for _, f := range r.Failures {
		summary.Errors = append(summary.Errors, BatchError{
			Index: f.Index,
			ID:    f.ID,
			Error: f.Err.Error(),
		})
	}
	return summary
}

// UpdateOption configures UpdateIssues
type UpdateOption func(*updateOptions)

type updateOptions struct {
	onFailure func(UpdateFailure)
}

// WithFailureHandler registers fn to be called for every failed identifier
func WithFailureHandler(fn func(UpdateFailure)) UpdateOption {
	return func(o *updateOptions) {
		o.onFailure = fn
	}
}

// UpdateIssues applies input to every id, one request at a time and in
// order. A failure for one id never stops the others.
func (c *Client) UpdateIssues(ctx context.Context, ids []string, input UpdateIssueInput, opts ...UpdateOption) *BulkUpdateResult {
	var options updateOptions
	for _, opt := range opts {
		opt(&options)
	}

	result := &BulkUpdateResult{
		Success: true,
		Issues:  []Issue{},
	}

	fail := func(index int, id string, err error) {
		failure := UpdateFailure{Index: index, ID: id, Err: err}
		result.Success = false
		result.Failures = append(result.Failures, failure)

		c.logger.Warn("failed to update issue", zap.String("id", id), zap.Error(err))
		if options.onFailure != nil {
			options.onFailure(failure)
		}
	}

	tmpl := c.templates[graphql.TemplateUpdateIssue]
	for i, id := range ids {
		resp, err := graphql.Do[UpdateIssueResponse](ctx, c.gateway, tmpl, updateVariables(id, input))
		if err != nil {
			fail(i, id, err)
			continue
		}

		if !resp.IssueUpdate.Success || resp.IssueUpdate.Issue == nil {
			fail(i, id, graphql.NewDeclaredError(tmpl.Name, fmt.Sprintf("failed to update issue %s", id)))
			continue
		}

		result.Issues = append(result.Issues, *resp.IssueUpdate.Issue)
	}

	return result
}
