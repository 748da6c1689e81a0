package service

import (
	"context"

	"github.com/medicare-vn/medicare-be/types"
)

// Provider is one strategy for answering a chat turn. Providers are tried
// in priority order; any error falls through to the next one. Adding or
// removing a provider is a wiring change, not a control-flow rewrite.
type Provider interface {
	Name() string
	Respond(ctx context.Context, input *types.ProviderInput) (*types.ProviderResponse, error)
}

// snapshotSource decouples providers from the concrete knowledge store.
type snapshotSource interface {
	GetSnapshot(ctx context.Context) *types.KnowledgeSnapshot
}
