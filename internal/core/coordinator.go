package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lmercadier/tchat/internal/store"
)

// History read bounds: 5 messages on the initial join, 10 when
// moving into another channel.
const (
	joinHistoryLimit   = 5
	switchHistoryLimit = 10
)

// Coordinator mediates all shared chat state on behalf of
// connections. It is called directly from each connection's read
// goroutine: actions from one connection run in order, actions from
// different connections interleave freely against the store. Every
// store operation is atomic on its own; multi-step sequences are
// not, so membership and presence snapshots are best-effort views.
// The coordinator always re-reads state before broadcasting a
// snapshot instead of caching a possibly-stale value.
type Coordinator struct {
	registry *Registry
	presence *Presence
	history  *History
	fanout   *Fanout

	defaultChannel string
	log            *zerolog.Logger
}

// NewCoordinator wires the protocol against a store and a fanout.
func NewCoordinator(st store.Store, fanout *Fanout, defaultChannel string, logger *zerolog.Logger) *Coordinator {
	return &Coordinator{
		registry:       NewRegistry(st),
		presence:       NewPresence(st),
		history:        NewHistory(st),
		fanout:         fanout,
		defaultChannel: defaultChannel,
		log:            logger,
	}
}

// Connect registers a fresh connection and makes sure the default
// channel exists in the registry. The session stays empty until the
// client issues a join.
func (co *Coordinator) Connect(ctx context.Context, c *Client) error {
	co.fanout.Register(c)
	co.log.Debug().Str("client_id", c.ID).Msg("connection opened")

	if err := co.registry.Create(ctx, co.defaultChannel); err != nil {
		return fmt.Errorf("ensure default channel: %w", err)
	}
	return nil
}

// Join completes the session handshake: the identity claims its
// place in the default channel and everyone's presence view is
// refreshed. The identity is caller-supplied and unvalidated; empty
// names and duplicates across sessions are accepted.
func (co *Coordinator) Join(ctx context.Context, c *Client, identity, sourceAddr string) error {
	c.Session.Identity = identity
	c.Session.SourceAddr = sourceAddr
	c.Session.CurrentChannel = co.defaultChannel

	co.fanout.Join(co.defaultChannel, c)

	co.log.Info().
		Str("user", identity).
		Str("ip", sourceAddr).
		Str("channel", co.defaultChannel).
		Msg("user joined")

	if err := co.presence.MarkConnected(ctx, identity); err != nil {
		return fmt.Errorf("mark connected: %w", err)
	}
	if err := co.presence.JoinChannel(ctx, co.defaultChannel, identity); err != nil {
		return fmt.Errorf("join channel membership: %w", err)
	}
	if err := co.presence.ClearDisconnected(ctx, identity); err != nil {
		return fmt.Errorf("clear disconnected: %w", err)
	}

	if err := co.broadcastPresence(ctx, nil); err != nil {
		return err
	}

	messages, err := co.history.Recent(ctx, co.defaultChannel, joinHistoryLimit)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	co.fanout.ToClient(c, &Event{Kind: EventInitMessages, Channel: co.defaultChannel, Messages: messages})

	// Membership just changed, so the snapshot goes to the whole
	// channel, not only the joiner.
	members, err := co.presence.ChannelMembers(ctx, co.defaultChannel)
	if err != nil {
		return fmt.Errorf("read channel membership: %w", err)
	}
	co.fanout.ToGroup(co.defaultChannel, &Event{Kind: EventInitUsers, Channel: co.defaultChannel, Users: members}, nil)

	channels, err := co.registry.Channels(ctx)
	if err != nil {
		return fmt.Errorf("read channel registry: %w", err)
	}
	co.fanout.ToClient(c, &Event{Kind: EventChannelList, Channels: channels})
	co.fanout.ToClient(c, &Event{Kind: EventInitChannelName, Channel: co.defaultChannel})

	return nil
}

// SendMessage appends a message to the current channel's log and
// fans it out to everyone in the channel, sender included. Before
// the join completes the action is meaningless and silently dropped.
func (co *Coordinator) SendMessage(ctx context.Context, c *Client, body string) error {
	if !c.Joined() || c.Session.CurrentChannel == "" {
		co.log.Debug().Str("client_id", c.ID).Msg("dropping message from unjoined session")
		return nil
	}

	channel := c.Session.CurrentChannel
	msg := Message{Author: c.Session.Identity, Body: body}

	co.log.Info().
		Str("user", msg.Author).
		Str("channel", channel).
		Msg("new message")

	if err := co.history.Append(ctx, channel, msg); err != nil {
		return fmt.Errorf("append message: %w", err)
	}

	co.fanout.ToGroup(channel, &Event{Kind: EventNewMessage, Channel: channel, Message: msg}, nil)
	return nil
}

// SwitchChannel moves the session into another channel. The
// destination group receives the updated membership snapshot.
func (co *Coordinator) SwitchChannel(ctx context.Context, c *Client, target string) error {
	if !c.Joined() {
		return nil
	}
	return co.move(ctx, c, target, true)
}

// CreateChannel records a channel name (idempotently), announces the
// updated registry to everyone, then moves the creator into it. The
// membership snapshot goes to the creator alone, mirroring the
// switch/create asymmetry of the original protocol.
func (co *Coordinator) CreateChannel(ctx context.Context, c *Client, name string) error {
	if !c.Joined() {
		return nil
	}

	if err := co.registry.Create(ctx, name); err != nil {
		return fmt.Errorf("create channel: %w", err)
	}

	channels, err := co.registry.Channels(ctx)
	if err != nil {
		return fmt.Errorf("read channel registry: %w", err)
	}
	co.fanout.ToAll(&Event{Kind: EventChannelList, Channels: channels}, nil)

	return co.move(ctx, c, name, false)
}

// move performs the leave-old/join-new sequence shared by channel
// switches and channel creation. Membership removal from the old
// channel happens before the fanout-group move, and membership
// addition to the new channel happens before its snapshot broadcast,
// so each broadcast reflects the change that triggered it.
func (co *Coordinator) move(ctx context.Context, c *Client, target string, snapshotToGroup bool) error {
	previous := c.Session.CurrentChannel
	identity := c.Session.Identity

	if err := co.presence.LeaveChannel(ctx, previous, identity); err != nil {
		return fmt.Errorf("leave channel membership: %w", err)
	}

	co.fanout.Leave(previous, c)
	co.fanout.Join(target, c)
	c.Session.CurrentChannel = target

	co.log.Info().
		Str("user", identity).
		Str("from", previous).
		Str("to", target).
		Msg("user moved channel")

	co.fanout.ToGroup(target, &Event{Kind: EventUserJoined, Channel: target, User: identity}, c)

	if err := co.presence.JoinChannel(ctx, target, identity); err != nil {
		return fmt.Errorf("join channel membership: %w", err)
	}

	messages, err := co.history.Recent(ctx, target, switchHistoryLimit)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	co.fanout.ToClient(c, &Event{Kind: EventInitMessages, Channel: target, Messages: messages})
	co.fanout.ToClient(c, &Event{Kind: EventInitChannelName, Channel: target})

	members, err := co.presence.ChannelMembers(ctx, target)
	if err != nil {
		return fmt.Errorf("read channel membership: %w", err)
	}
	snapshot := &Event{Kind: EventInitUsers, Channel: target, Users: members}
	if snapshotToGroup {
		co.fanout.ToGroup(target, snapshot, nil)
	} else {
		co.fanout.ToClient(c, snapshot)
	}

	return nil
}

// Typing tells everyone else in the current channel that this
// identity is typing. Nothing is persisted.
func (co *Coordinator) Typing(c *Client) {
	if !c.Joined() {
		return
	}
	co.fanout.ToGroup(c.Session.CurrentChannel, &Event{
		Kind:    EventUserTyping,
		Channel: c.Session.CurrentChannel,
		User:    c.Session.Identity,
	}, c)
}

// Ping echoes a heartbeat acknowledgment back to the sender alone.
func (co *Coordinator) Ping(c *Client) {
	co.fanout.ToClient(c, &Event{Kind: EventPingAck})
}

// Disconnect tears the session down. Sessions that never joined
// leave no trace. The departing connection is excluded from the
// presence broadcast since it is already gone.
func (co *Coordinator) Disconnect(ctx context.Context, c *Client) error {
	defer co.fanout.Unregister(c)

	if !c.Joined() {
		co.log.Debug().Str("client_id", c.ID).Msg("connection closed before join")
		return nil
	}

	identity := c.Session.Identity
	co.log.Info().Str("user", identity).Msg("user disconnected")

	if err := co.presence.LeaveChannel(ctx, c.Session.CurrentChannel, identity); err != nil {
		return fmt.Errorf("leave channel membership: %w", err)
	}
	if err := co.presence.RemoveConnected(ctx, identity); err != nil {
		return fmt.Errorf("remove connected: %w", err)
	}
	if err := co.presence.MarkDisconnected(ctx, identity); err != nil {
		return fmt.Errorf("mark disconnected: %w", err)
	}

	return co.broadcastPresence(ctx, c)
}

// broadcastPresence re-reads both global presence sets and pushes
// the snapshots to every connection except the given one.
func (co *Coordinator) broadcastPresence(ctx context.Context, except *Client) error {
	disconnected, err := co.presence.Disconnected(ctx)
	if err != nil {
		return fmt.Errorf("read disconnected set: %w", err)
	}
	co.fanout.ToAll(&Event{Kind: EventDisconnectedUsers, Users: disconnected}, except)

	connected, err := co.presence.Connected(ctx)
	if err != nil {
		return fmt.Errorf("read connected set: %w", err)
	}
	co.fanout.ToAll(&Event{Kind: EventConnectedUsers, Users: connected}, except)

	return nil
}
