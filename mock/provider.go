// Package mock provides test doubles for genstream interfaces using
// function fields, and a chunked response body for driving the pipeline.
package mock

import (
	"context"

	"github.com/fwojciec/genstream"
)

// Interface compliance check.
var _ genstream.Provider = (*Provider)(nil)

// Provider is a test double for genstream.Provider.
// Set StreamFn or GenerateFn before calling the matching method.
type Provider struct {
	StreamFn   func(ctx context.Context, req genstream.Request) (genstream.Stream, error)
	GenerateFn func(ctx context.Context, req genstream.Request) (*genstream.EnhancedResponse, error)
}

// Stream delegates to StreamFn.
func (p *Provider) Stream(ctx context.Context, req genstream.Request) (genstream.Stream, error) {
	return p.StreamFn(ctx, req)
}

// Generate delegates to GenerateFn.
func (p *Provider) Generate(ctx context.Context, req genstream.Request) (*genstream.EnhancedResponse, error) {
	return p.GenerateFn(ctx, req)
}
