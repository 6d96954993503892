package graphql

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Gateway executes single GraphQL operations and normalizes their failures
type Gateway struct {
	transport Transport
	logger    *zap.Logger
}

// NewGateway creates a gateway over the given transport. A nil logger
// disables logging.
func NewGateway(transport Transport, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		transport: transport,
		logger:    logger,
	}
}

// Logger returns the logger the gateway was built with
func (g *Gateway) Logger() *zap.Logger {
	return g.logger
}

// Execute sends tmpl with variables exactly once and decodes the data payload
// into response. Every failure is returned as an *OperationError.
func (g *Gateway) Execute(ctx context.Context, tmpl Template, variables Variables, response interface{}) error {
	if strings.TrimSpace(tmpl.Body) == "" {
		return NewValidationError(tmpl.Name, "request template "+tmpl.Name+" has an empty body")
	}

	callID := uuid.NewString()
	logger := g.logger.With(
		zap.String("operation", tmpl.Name),
		zap.String("call_id", callID),
	)

	logger.Debug("sending GraphQL operation", zap.Int("variables", len(variables)))
	started := time.Now()

	err := g.transport.Send(ctx, tmpl.Body, variables, response)
	elapsed := time.Since(started)
	if err != nil {
		opErr := newOperationFailure(tmpl.Name, err)
		logger.Warn("GraphQL operation failed",
			zap.Duration("duration", elapsed),
			zap.Stringer("error_type", opErr.Type),
			zap.Error(err),
		)
		return opErr
	}

	logger.Debug("GraphQL operation completed", zap.Duration("duration", elapsed))
	return nil
}

// Do executes tmpl and returns the decoded payload as a *T
func Do[T any](ctx context.Context, g *Gateway, tmpl Template, variables Variables) (*T, error) {
	var response T
	if err := g.Execute(ctx, tmpl, variables, &response); err != nil {
		return nil, err
	}
	return &response, nil
}
