package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Path          string
	Authorization string
	Query         string
	Variables     map[string]interface{}
}

func newGraphQLServer(t *testing.T, status int, reply string) (*httptest.Server, *recordedRequest) {
	t.Helper()

	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.Path = r.URL.Path
		rec.Authorization = r.Header.Get("Authorization")

		var body struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		rec.Query = body.Query
		rec.Variables = body.Variables

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)

	return srv, rec
}

func TestNewTransport(t *testing.T) {
	t.Run("requires an API key", func(t *testing.T) {
		_, err := NewTransport(TransportOptions{})
		assert.Error(t, err)
	})

	t.Run("uses the default endpoint", func(t *testing.T) {
		tr, err := NewTransport(TransportOptions{APIKey: "lin_api_x"})
		require.NoError(t, err)
		assert.Equal(t, DefaultEndpoint, tr.Endpoint())
	})

	t.Run("rejects relative endpoints", func(t *testing.T) {
		_, err := NewTransport(TransportOptions{APIKey: "k", Endpoint: "/graphql"})
		assert.Error(t, err)
	})
}

func TestGHTransportSend(t *testing.T) {
	t.Run("posts to the configured endpoint with the API key", func(t *testing.T) {
		srv, rec := newGraphQLServer(t, http.StatusOK, `{"data":{"viewer":{"id":"u1","name":"Ada"}}}`)

		tr, err := NewTransport(TransportOptions{Endpoint: srv.URL + "/graphql", APIKey: "lin_api_test"})
		require.NoError(t, err)

		var resp viewerPayload
		err = tr.Send(context.Background(), viewerTemplate.Body, map[string]interface{}{"first": 1}, &resp)

		require.NoError(t, err)
		assert.Equal(t, "u1", resp.Viewer.ID)
		assert.Equal(t, "/graphql", rec.Path)
		assert.Equal(t, "lin_api_test", rec.Authorization)
		assert.Equal(t, viewerTemplate.Body, rec.Query)
		assert.Equal(t, float64(1), rec.Variables["first"])
	})

	t.Run("GraphQL errors surface as api.GraphQLError", func(t *testing.T) {
		srv, _ := newGraphQLServer(t, http.StatusOK, `{"data":null,"errors":[{"message":"Entity not found","extensions":{"code":"INVALID_INPUT"}}]}`)

		tr, err := NewTransport(TransportOptions{Endpoint: srv.URL + "/graphql", APIKey: "k"})
		require.NoError(t, err)

		err = tr.Send(context.Background(), viewerTemplate.Body, nil, &viewerPayload{})

		var gqlErr *api.GraphQLError
		require.True(t, errors.As(err, &gqlErr))
		assert.Contains(t, gqlErr.Error(), "Entity not found")
	})

	t.Run("non-2xx surfaces as api.HTTPError", func(t *testing.T) {
		srv, _ := newGraphQLServer(t, http.StatusInternalServerError, `{"message":"oops"}`)

		tr, err := NewTransport(TransportOptions{Endpoint: srv.URL + "/graphql", APIKey: "k"})
		require.NoError(t, err)

		err = tr.Send(context.Background(), viewerTemplate.Body, nil, &viewerPayload{})

		var httpErr *api.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	})

	t.Run("gateway over a failing server", func(t *testing.T) {
		srv, _ := newGraphQLServer(t, http.StatusUnauthorized, `{"message":"Bad credentials"}`)

		tr, err := NewTransport(TransportOptions{Endpoint: srv.URL + "/graphql", APIKey: "k"})
		require.NoError(t, err)

		err = NewGateway(tr, nil).Execute(context.Background(), viewerTemplate, nil, &viewerPayload{})

		require.Error(t, err)
		assert.True(t, IsType(err, ErrorTypePermission))
		assert.Contains(t, err.Error(), OperationFailedPrefix)
	})
}
