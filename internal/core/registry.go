package core

import (
	"context"

	"github.com/lmercadier/tchat/internal/store"
)

// channelsKey is the store set holding every known channel name.
const channelsKey = "channels"

// Registry is the set of known channel names. Channels are created
// implicitly the first time they are named and never deleted.
type Registry struct {
	store store.Store
}

// NewRegistry binds a registry to a store.
func NewRegistry(st store.Store) *Registry {
	return &Registry{store: st}
}

// Create records a channel name. Idempotent: creating an existing
// channel is a no-op, not an error.
func (r *Registry) Create(ctx context.Context, name string) error {
	return r.store.SetAdd(ctx, channelsKey, name)
}

// Channels returns every known channel name.
func (r *Registry) Channels(ctx context.Context) ([]string, error) {
	return r.store.SetMembers(ctx, channelsKey)
}
