// Package graphqltest provides a recording fake Transport for tests.
package graphqltest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/yahsan2/linear-pm/pkg/graphql"
)

// Responder produces the data payload (or an error) for one call
type Responder func(variables map[string]interface{}) (interface{}, error)

// Call is a recorded Send invocation
type Call struct {
	Name      string
	Variables map[string]interface{}
}

// Transport is a fake graphql.Transport that routes requests by template name
type Transport struct {
	mu         sync.Mutex
	names      map[string]string
	responders map[string]Responder
	calls      []Call
}

// NewTransport creates a fake that recognizes every template in store
func NewTransport(store *graphql.TemplateStore) *Transport {
	t := &Transport{
		names:      make(map[string]string),
		responders: make(map[string]Responder),
	}
	for _, name := range store.Names() {
		tmpl, _ := store.Get(name)
		t.names[tmpl.Body] = name
	}
	return t
}

// On registers the responder used for the named template
func (t *Transport) On(name string, responder Responder) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.responders[name] = responder
	return t
}

// Reply registers a fixed payload for the named template
func (t *Transport) Reply(name string, payload interface{}) *Transport {
	return t.On(name, func(map[string]interface{}) (interface{}, error) {
		return payload, nil
	})
}

// Fail registers a fixed error for the named template
func (t *Transport) Fail(name string, err error) *Transport {
	return t.On(name, func(map[string]interface{}) (interface{}, error) {
		return nil, err
	})
}

// Send implements graphql.Transport
func (t *Transport) Send(ctx context.Context, body string, variables map[string]interface{}, response interface{}) error {
	t.mu.Lock()
	name, ok := t.names[body]
	if !ok {
		name = body
	}
	t.calls = append(t.calls, Call{Name: name, Variables: variables})
	responder := t.responders[name]
	t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if responder == nil {
		return fmt.Errorf("graphqltest: no responder for %q", name)
	}

	payload, err := responder(variables)
	if err != nil {
		return err
	}
	if payload == nil || response == nil {
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, response)
}

// Calls returns every recorded call in order
func (t *Transport) Calls() []Call {
	t.mu.Lock()
	defer t.mu.Unlock()
	calls := make([]Call, len(t.calls))
	copy(calls, t.calls)
	return calls
}

// CallsTo returns the recorded calls for the named template
func (t *Transport) CallsTo(name string) []Call {
	var calls []Call
	for _, c := range t.Calls() {
		if c.Name == name {
			calls = append(calls, c)
		}
	}
	return calls
}
