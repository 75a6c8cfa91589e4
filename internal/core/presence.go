package core

import (
	"context"

	"github.com/lmercadier/tchat/internal/store"
)

const (
	// connectedKey holds identities attached to a live session.
	connectedKey = "users"
	// disconnectedKey holds identities whose last session ended,
	// kept as a best-effort "recently seen offline" list.
	disconnectedKey = "disconnectedUsers"
)

// membersKey is the per-channel membership set.
func membersKey(channel string) string {
	return "users:" + channel
}

// Presence tracks connected and recently-disconnected identities,
// globally and per channel.
type Presence struct {
	store store.Store
}

// NewPresence binds a presence tracker to a store.
func NewPresence(st store.Store) *Presence {
	return &Presence{store: st}
}

// MarkConnected adds an identity to the global connected set.
func (p *Presence) MarkConnected(ctx context.Context, identity string) error {
	return p.store.SetAdd(ctx, connectedKey, identity)
}

// RemoveConnected removes an identity from the global connected set.
func (p *Presence) RemoveConnected(ctx context.Context, identity string) error {
	return p.store.SetRemove(ctx, connectedKey, identity)
}

// MarkDisconnected adds an identity to the global disconnected set.
func (p *Presence) MarkDisconnected(ctx context.Context, identity string) error {
	return p.store.SetAdd(ctx, disconnectedKey, identity)
}

// ClearDisconnected removes an identity from the global disconnected set.
func (p *Presence) ClearDisconnected(ctx context.Context, identity string) error {
	return p.store.SetRemove(ctx, disconnectedKey, identity)
}

// Connected returns the global connected-identity snapshot.
func (p *Presence) Connected(ctx context.Context) ([]string, error) {
	return p.store.SetMembers(ctx, connectedKey)
}

// Disconnected returns the global disconnected-identity snapshot.
func (p *Presence) Disconnected(ctx context.Context) ([]string, error) {
	return p.store.SetMembers(ctx, disconnectedKey)
}

// JoinChannel records an identity as a member of a channel.
func (p *Presence) JoinChannel(ctx context.Context, channel, identity string) error {
	return p.store.SetAdd(ctx, membersKey(channel), identity)
}

// LeaveChannel removes an identity from a channel's membership set.
func (p *Presence) LeaveChannel(ctx context.Context, channel, identity string) error {
	return p.store.SetRemove(ctx, membersKey(channel), identity)
}

// ChannelMembers returns a channel's membership snapshot.
func (p *Presence) ChannelMembers(ctx context.Context, channel string) ([]string, error) {
	return p.store.SetMembers(ctx, membersKey(channel))
}
