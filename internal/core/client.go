package core

// Session is the per-connection mutable record. It is owned
// exclusively by the connection's own goroutine; nothing else
// reads or writes it, so no locking is needed.
type Session struct {
	// Identity is the display name claimed at join. Set once,
	// immutable for the rest of the session.
	Identity string
	// CurrentChannel is the channel the connection occupies.
	// Unset until join completes.
	CurrentChannel string
	// SourceAddr is the originating network address, recorded at join.
	SourceAddr string
}

// Client is a live connection as seen by the core layer.
type Client struct {
	ID      string
	Session Session
	Events  chan *Event
}

// NewClient constructs a client with an empty session.
func NewClient(id string) *Client {
	return &Client{
		ID:     id,
		Events: make(chan *Event, 32),
	}
}

// Joined reports whether the session completed the join handshake.
// The transition is terminal: once joined, a session stays joined.
func (c *Client) Joined() bool {
	return c.Session.Identity != ""
}
