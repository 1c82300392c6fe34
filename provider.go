package genstream

import "context"

// Provider sends generate-content requests to a backend.
type Provider interface {
	// Stream starts a streaming request. The returned Stream owns the
	// response body; callers must Close it.
	Stream(ctx context.Context, req Request) (Stream, error)

	// Generate sends a non-streaming request.
	Generate(ctx context.Context, req Request) (*EnhancedResponse, error)
}
