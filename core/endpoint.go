package core

// Endpoint describes a route the account core expects an HTTP adapter to
// serve. Endpoints are descriptive; adapters supply the framework-specific
// handlers.
type Endpoint struct {
	Path        string
	Method      string
	OperationID string
	Description string
}
