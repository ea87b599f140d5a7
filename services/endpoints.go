package services

import (
	"fmt"

	"github.com/cy6erlion/kong-kontrollers/core"
)

// BaseEndpoints returns framework-agnostic endpoint specifications for the
// account routes. Adapters map each OperationID to their own handler.
func BaseEndpoints() []core.Endpoint {
	return []core.Endpoint{
		{
			Path:        "/accounts",
			Method:      "POST",
			OperationID: "createAccount",
			Description: "Create a new account; the response carries only the public projection",
		},
		{
			Path:        "/accounts/:username",
			Method:      "GET",
			OperationID: "getPublicAccount",
			Description: "Get the public projection of an account by username",
		},
		{
			Path:        "/login",
			Method:      "POST",
			OperationID: "login",
			Description: "Authenticate credentials and issue a passport cookie",
		},
	}
}

// EndpointRegistry manages the endpoint set and detects duplicate
// METHOD:PATH registrations. It starts with the base account endpoints and
// accepts additional endpoints from embedding applications.
type EndpointRegistry struct {
	// endpoints stores all registered endpoints keyed by "METHOD:PATH"
	endpoints map[string]*core.Endpoint
}

// NewEndpointRegistry creates a registry with the base account endpoints
// pre-registered.
func NewEndpointRegistry() *EndpointRegistry {
	reg := &EndpointRegistry{
		endpoints: make(map[string]*core.Endpoint),
	}

	for _, ep := range BaseEndpoints() {
		_ = reg.register(&ep)
	}

	return reg
}

func (r *EndpointRegistry) register(ep *core.Endpoint) error {
	key := fmt.Sprintf("%s:%s", ep.Method, ep.Path)

	if _, exists := r.endpoints[key]; exists {
		return fmt.Errorf("endpoint conflict: %s %s already registered", ep.Method, ep.Path)
	}

	r.endpoints[key] = ep
	return nil
}

// RegisterExtra registers additional endpoints from an embedding
// application. If any endpoint conflicts with an existing one, or with
// another endpoint in the same batch, none are registered.
func (r *EndpointRegistry) RegisterExtra(endpoints []core.Endpoint) error {
	for i := range endpoints {
		ep := &endpoints[i]
		key := fmt.Sprintf("%s:%s", ep.Method, ep.Path)

		if _, exists := r.endpoints[key]; exists {
			return fmt.Errorf("endpoint conflict: %s %s already registered", ep.Method, ep.Path)
		}
	}

	seen := make(map[string]bool)
	for i := range endpoints {
		ep := &endpoints[i]
		key := fmt.Sprintf("%s:%s", ep.Method, ep.Path)

		if seen[key] {
			return fmt.Errorf("duplicate endpoint in batch: %s %s", ep.Method, ep.Path)
		}
		seen[key] = true
	}

	for i := range endpoints {
		ep := endpoints[i]
		r.endpoints[fmt.Sprintf("%s:%s", ep.Method, ep.Path)] = &ep
	}

	return nil
}

// Endpoints returns all registered endpoints.
func (r *EndpointRegistry) Endpoints() []*core.Endpoint {
	result := make([]*core.Endpoint, 0, len(r.endpoints))
	for _, ep := range r.endpoints {
		result = append(result, ep)
	}
	return result
}
