package issue

import (
	"context"

	"github.com/yahsan2/linear-pm/pkg/graphql"
)

// BatchResult represents the result of a multi-issue operation for display
type BatchResult struct {
	Total     int          `json:"total"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Issues    []Issue      `json:"issues"`
	Errors    []BatchError `json:"errors,omitempty"`
}

// BatchError represents an error during batch processing
type BatchError struct {
	Index int    `json:"index"`
	ID    string `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
	Error string `json:"error"`
}

// CreateBatchIssues creates all issues in a single request. The result
// carries whatever success flag the API reports; nothing is retried or split.
func (c *Client) CreateBatchIssues(ctx context.Context, issues []CreateIssueInput) (*IssueBatchResponse, error) {
	if issues == nil {
		issues = []CreateIssueInput{}
	}

	return graphql.Do[IssueBatchResponse](ctx, c.gateway, c.templates[graphql.TemplateCreateBatchIssues], graphql.Variables{
		"input": map[string]interface{}{
			"issues": issues,
		},
	})
}

// SummarizeBatch builds a BatchResult for a batch create response
func SummarizeBatch(inputs []CreateIssueInput, resp *IssueBatchResponse) BatchResult {
	result := BatchResult{
		Total:  len(inputs),
		Issues: []Issue{},
	}

	if resp == nil || !resp.IssueBatchCreate.Success {
		result.Failed = len(inputs)
		for i, in := range inputs {
			result.Errors = append(result.Errors, BatchError{
				Index: i,
				Title: in.Title,
				Error: "batch create reported failure",
			})
		}
		return result
	}

	result.Issues = append(result.Issues, resp.IssueBatchCreate.Issues...)
	result.Succeeded = len(resp.IssueBatchCreate.Issues)
	return result
}
