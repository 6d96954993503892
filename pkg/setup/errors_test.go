package setup

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yahsan2/linear-pm/pkg/graphql"
)

func TestSetupErrorMessage(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewFileSystemError("failed to write config", cause)

	assert.Equal(t, "failed to write config: permission denied", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "team missing", NewValidationError("team missing").Error())
}

func TestHandleSetupError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "config", err: NewConfigError("bad yaml", nil), want: "Configuration error: bad yaml"},
		{name: "file system", err: NewFileSystemError("cannot write", nil), want: "check file permissions"},
		{name: "validation", err: NewValidationError("no team"), want: "Validation error: no team"},
		{name: "api without suggestion", err: NewAPIError("failed", errors.New("boom")), want: "linear-pm auth login"},
		{
			name: "api with suggestion",
			err:  NewAPIError("failed", &graphql.OperationError{Type: graphql.ErrorTypeRateLimit, Suggestion: "Wait before retrying"}),
			want: "Wait before retrying",
		},
		{name: "plain", err: errors.New("boom"), want: "Unexpected error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			HandleSetupError(&buf, tt.err)
			assert.Contains(t, buf.String(), tt.want)
		})
	}

	var buf bytes.Buffer
	HandleSetupError(&buf, nil)
	assert.Empty(t, buf.String())
}
