package graphql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cli/go-gh/v2/pkg/api"
)

// OperationFailedPrefix starts the message of every normalized operation failure
const OperationFailedPrefix = "GraphQL operation failed"

// ErrorType represents the kind of failure an operation ran into
type ErrorType int

const (
	// ErrorTypeNetwork indicates a network or protocol level failure
	ErrorTypeNetwork ErrorType = iota
	// ErrorTypeGraphQL indicates errors reported in the GraphQL response
	ErrorTypeGraphQL
	// ErrorTypePermission indicates an authentication/authorization failure
	ErrorTypePermission
	// ErrorTypeRateLimit indicates the API rate limit was exceeded
	ErrorTypeRateLimit
	// ErrorTypeNotFound indicates a missing resource or template
	ErrorTypeNotFound
	// ErrorTypeValidation indicates an invalid request built by the caller
	ErrorTypeValidation
	// ErrorTypeDeclared indicates the operation completed but reported success=false
	ErrorTypeDeclared
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeNetwork:
		return "network"
	case ErrorTypeGraphQL:
		return "graphql"
	case ErrorTypePermission:
		return "permission"
	case ErrorTypeRateLimit:
		return "rate_limit"
	case ErrorTypeNotFound:
		return "not_found"
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeDeclared:
		return "declared"
	default:
		return "unknown"
	}
}

// OperationError is the single error shape returned for a failed operation
type OperationError struct {
	Type       ErrorType
	Operation  string
	Message    string
	Cause      error
	Suggestion string
}

// Error implements the error interface
func (e *OperationError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *OperationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an OperationError of the same type
func (e *OperationError) Is(target error) bool {
	t, ok := target.(*OperationError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// IsType reports whether err is an OperationError of the given type
func IsType(err error, errType ErrorType) bool {
	var opErr *OperationError
	if !errors.As(err, &opErr) {
		return false
	}
	return opErr.Type == errType
}

// IsDeclared reports whether err is a declared (success=false) failure
func IsDeclared(err error) bool {
	return IsType(err, ErrorTypeDeclared)
}

// NewDeclaredError creates the failure raised when an operation reports success=false
func NewDeclaredError(operation, message string) *OperationError {
	return &OperationError{
		Type:       ErrorTypeDeclared,
		Operation:  operation,
		Message:    message,
		Suggestion: "The API accepted the request but reported it as unsuccessful; check the input values",
	}
}

// NewValidationError creates a failure for a request that could not be sent
func NewValidationError(operation, message string) *OperationError {
	return &OperationError{
		Type:       ErrorTypeValidation,
		Operation:  operation,
		Message:    message,
		Suggestion: "Check your input parameters and try again",
	}
}

// NewTemplateNotFoundError creates a failure for an unknown template name
func NewTemplateNotFoundError(name string) *OperationError {
	return &OperationError{
		Type:       ErrorTypeNotFound,
		Operation:  name,
		Message:    fmt.Sprintf("request template %q not found", name),
		Suggestion: "Check that the template store was built with all request documents",
	}
}

// newOperationFailure normalizes a transport error for the named operation.
func newOperationFailure(operation string, cause error) *OperationError {
	opErr := &OperationError{
		Type:       ErrorTypeNetwork,
		Operation:  operation,
		Message:    OperationFailedPrefix,
		Cause:      cause,
		Suggestion: "Check your internet connection and try again",
	}

	var gqlErr *api.GraphQLError
	var httpErr *api.HTTPError

	switch {
	case errors.As(cause, &gqlErr):
		opErr.Type = ErrorTypeGraphQL
		opErr.Suggestion = "Check the request variables against the API schema"
		if hasErrorCode(gqlErr, "AUTHENTICATION_ERROR", "FORBIDDEN") {
			opErr.Type = ErrorTypePermission
			opErr.Suggestion = "Check that your API key is valid (linear-pm auth login)"
		}
	case errors.As(cause, &httpErr):
		switch httpErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			opErr.Type = ErrorTypePermission
			opErr.Suggestion = "Check that your API key is valid (linear-pm auth login)"
		case http.StatusTooManyRequests:
			opErr.Type = ErrorTypeRateLimit
			opErr.Suggestion = "Rate limit exceeded. Wait before retrying"
		case http.StatusNotFound:
			opErr.Type = ErrorTypeNotFound
			opErr.Suggestion = "Check the configured API endpoint"
		default:
			opErr.Suggestion = "Check Linear status at https://linearstatus.com/ and try again"
		}
	case errors.Is(cause, context.Canceled), errors.Is(cause, context.DeadlineExceeded):
		opErr.Suggestion = "The request was cancelled or timed out"
	}

	return opErr
}

// hasErrorCode checks the extensions.code of every reported GraphQL error
func hasErrorCode(gqlErr *api.GraphQLError, codes ...string) bool {
	for _, item := range gqlErr.Errors {
		code, _ := item.Extensions["code"].(string)
		for _, c := range codes {
			if strings.EqualFold(code, c) {
				return true
			}
		}
	}
	return false
}
