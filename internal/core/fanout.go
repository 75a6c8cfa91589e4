package core

import "sync"

// Fanout tracks live connections and named delivery groups, and
// delivers events to one connection, to a group, or to everyone.
// Group membership here is transport-local plumbing; the durable
// membership sets live in the store.
type Fanout struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	groups  map[string]map[*Client]struct{}
}

// NewFanout constructs an empty fanout registry.
func NewFanout() *Fanout {
	return &Fanout{
		clients: make(map[*Client]struct{}),
		groups:  make(map[string]map[*Client]struct{}),
	}
}

// Register adds a connection to the global delivery set.
func (f *Fanout) Register(c *Client) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients[c] = struct{}{}
}

// Unregister removes a connection from the global set and from
// every group it belongs to.
func (f *Fanout) Unregister(c *Client) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.clients, c)
	for name, group := range f.groups {
		delete(group, c)
		if len(group) == 0 {
			delete(f.groups, name)
		}
	}
}

// Join adds a connection to a named group, creating it on first use.
func (f *Fanout) Join(group string, c *Client) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[group]
	if !ok {
		g = make(map[*Client]struct{})
		f.groups[group] = g
	}
	g[c] = struct{}{}
}

// Leave removes a connection from a named group.
func (f *Fanout) Leave(group string, c *Client) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[group]
	if !ok {
		return
	}
	delete(g, c)
	if len(g) == 0 {
		delete(f.groups, group)
	}
}

// ToClient delivers an event to a single connection.
func (f *Fanout) ToClient(c *Client, event *Event) {
	send(c, event)
}

// ToGroup delivers an event to every connection in a group.
// If except is non-nil, that connection is skipped.
func (f *Fanout) ToGroup(group string, event *Event, except *Client) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for c := range f.groups[group] {
		if c == except {
			continue
		}
		send(c, event)
	}
}

// ToAll delivers an event to every registered connection.
// If except is non-nil, that connection is skipped.
func (f *Fanout) ToAll(event *Event, except *Client) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for c := range f.clients {
		if c == except {
			continue
		}
		send(c, event)
	}
}

func send(c *Client, event *Event) {
	select {
	case c.Events <- event:
	default:
		// Drop if slow consumer.
	}
}
