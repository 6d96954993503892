package setup

import (
	"errors"
	"fmt"
	"io"

	"github.com/yahsan2/linear-pm/pkg/graphql"
)

// ErrorType represents the type of setup error
type ErrorType int

const (
	// ErrorTypeConfig indicates a configuration file error
	ErrorTypeConfig ErrorType = iota
	// ErrorTypeAPI indicates a Linear API error
	ErrorTypeAPI
	// ErrorTypeFileSystem indicates a file system error
	ErrorTypeFileSystem
	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation
)

// SetupError represents a setup error with context
type SetupError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *SetupError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *SetupError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new configuration error
func NewConfigError(message string, cause error) *SetupError {
	return &SetupError{Type: ErrorTypeConfig, Message: message, Cause: cause}
}

// NewAPIError creates a new Linear API error
func NewAPIError(message string, cause error) *SetupError {
	return &SetupError{Type: ErrorTypeAPI, Message: message, Cause: cause}
}

// NewFileSystemError creates a new file system error
func NewFileSystemError(message string, cause error) *SetupError {
	return &SetupError{Type: ErrorTypeFileSystem, Message: message, Cause: cause}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *SetupError {
	return &SetupError{Type: ErrorTypeValidation, Message: message}
}

// HandleSetupError writes the error and a hint matching its type to w
func HandleSetupError(w io.Writer, err error) {
	if err == nil {
		return
	}

	var e *SetupError
	if !errors.As(err, &e) {
		fmt.Fprintf(w, "Unexpected error: %v\n", err)
		return
	}

	switch e.Type {
	case ErrorTypeConfig:
		fmt.Fprintf(w, "Configuration error: %v\n", e)
		fmt.Fprintln(w, "Please check your .linear-pm.yml file format and try again.")
	case ErrorTypeAPI:
		fmt.Fprintf(w, "Linear API error: %v\n", e)
		var opErr *graphql.OperationError
		if errors.As(e.Cause, &opErr) && opErr.Suggestion != "" {
			fmt.Fprintln(w, opErr.Suggestion)
		} else {
			fmt.Fprintln(w, "Please check your network connection and API key:")
			fmt.Fprintln(w, "  Run: linear-pm auth login")
		}
	case ErrorTypeFileSystem:
		fmt.Fprintf(w, "File system error: %v\n", e)
		fmt.Fprintln(w, "Please check file permissions and disk space.")
	case ErrorTypeValidation:
		fmt.Fprintf(w, "Validation error: %v\n", e)
		fmt.Fprintln(w, "Please check your input values and try again.")
	default:
		fmt.Fprintf(w, "Error: %v\n", e)
	}
}
