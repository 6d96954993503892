package graphql

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"
)

// DefaultEndpoint is the Linear GraphQL API endpoint
const DefaultEndpoint = "https://api.linear.app/graphql"

// Transport sends a GraphQL document and decodes the data payload into response
type Transport interface {
	Send(ctx context.Context, body string, variables map[string]interface{}, response interface{}) error
}

// TransportOptions configures the go-gh backed transport
type TransportOptions struct {
	// Endpoint is the full GraphQL URL; DefaultEndpoint when empty
	Endpoint string
	// APIKey is sent verbatim in the Authorization header
	APIKey  string
	Timeout time.Duration
	// Log receives HTTP traffic when set; Verbose adds headers and bodies
	Log     io.Writer
	Verbose bool
	Headers map[string]string
	// RoundTripper replaces http.DefaultTransport, mostly for tests
	RoundTripper http.RoundTripper
}

// GHTransport sends requests through a go-gh GraphQL client
type GHTransport struct {
	client   *api.GraphQLClient
	endpoint *url.URL
}

// NewTransport creates a transport for the configured endpoint
func NewTransport(opts TransportOptions) (*GHTransport, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	raw := opts.Endpoint
	if raw == "" {
		raw = DefaultEndpoint
	}

	endpoint, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", raw, err)
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" || endpoint.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: must be an absolute http(s) URL", raw)
	}

	headers := map[string]string{
		"Authorization": opts.APIKey,
		"Accept":        "application/json",
		"User-Agent":    "linear-pm",
	}
	for k, v := range opts.Headers {
		headers[k] = v
	}

	base := opts.RoundTripper
	if base == nil {
		base = http.DefaultTransport
	}

	client, err := api.NewGraphQLClient(api.ClientOptions{
		// go-gh only attaches Authorization for requests to Host
		Host:           endpoint.Hostname(),
		AuthToken:      opts.APIKey,
		Headers:        headers,
		Timeout:        opts.Timeout,
		Transport:      &endpointRoundTripper{endpoint: endpoint, next: base},
		Log:            opts.Log,
		LogIgnoreEnv:   true,
		LogVerboseHTTP: opts.Verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GraphQL client: %w", err)
	}

	return &GHTransport{
		client:   client,
		endpoint: endpoint,
	}, nil
}

// Endpoint returns the URL requests are sent to
func (t *GHTransport) Endpoint() string {
	return t.endpoint.String()
}

// Send implements Transport
func (t *GHTransport) Send(ctx context.Context, body string, variables map[string]interface{}, response interface{}) error {
	return t.client.DoWithContext(ctx, body, variables, response)
}

// endpointRoundTripper points go-gh's GitHub style GraphQL URL at the
// configured endpoint.
type endpointRoundTripper struct {
	endpoint *url.URL
	next     http.RoundTripper
}

func (rt *endpointRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.URL.Scheme = rt.endpoint.Scheme
	r.URL.Host = rt.endpoint.Host
	r.URL.Path = rt.endpoint.Path
	r.URL.RawPath = rt.endpoint.RawPath
	r.URL.RawQuery = rt.endpoint.RawQuery
	r.Host = rt.endpoint.Host
	return rt.next.RoundTrip(r)
}
