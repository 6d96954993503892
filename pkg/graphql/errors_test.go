package graphql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationErrorMessage(t *testing.T) {
	err := newOperationFailure(TemplateCreateIssue, errors.New("timeout"))

	assert.Equal(t, OperationFailedPrefix+": timeout", err.Error())
	assert.Equal(t, "network", err.Type.String())
}

func TestOperationErrorIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewDeclaredError(TemplateCreateProject, "failed to create project"))

	assert.True(t, errors.Is(err, &OperationError{Type: ErrorTypeDeclared}))
	assert.False(t, errors.Is(err, &OperationError{Type: ErrorTypeNetwork}))
	assert.True(t, IsDeclared(err))
	assert.False(t, IsType(errors.New("plain"), ErrorTypeDeclared))
}

func TestErrorTypeString(t *testing.T) {
	tests := map[ErrorType]string{
		ErrorTypeGraphQL:    "graphql",
		ErrorTypePermission: "permission",
		ErrorTypeRateLimit:  "rate_limit",
		ErrorTypeNotFound:   "not_found",
		ErrorTypeValidation: "validation",
		ErrorType(99):       "unknown",
	}

	for typ, want := range tests {
		assert.Equal(t, want, typ.String())
	}
}
