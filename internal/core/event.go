package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventInitMessages delivers recent channel history to a client.
	EventInitMessages EventKind = iota
	// EventInitUsers delivers a channel's membership snapshot.
	EventInitUsers
	// EventInitChannelName tells a client which channel it now occupies.
	EventInitChannelName
	// EventChannelList delivers the full channel registry.
	EventChannelList
	// EventUserJoined notifies a channel that an identity arrived.
	EventUserJoined
	// EventNewMessage notifies a channel about a chat message.
	EventNewMessage
	// EventUserTyping notifies a channel that an identity is typing.
	EventUserTyping
	// EventConnectedUsers delivers the global connected-identity snapshot.
	EventConnectedUsers
	// EventDisconnectedUsers delivers the global disconnected-identity snapshot.
	EventDisconnectedUsers
	// EventPingAck answers a client heartbeat.
	EventPingAck
)

// Event is sent to clients to describe what happened in the system.
// Only the fields relevant to the Kind are populated.
type Event struct {
	Kind     EventKind
	Channel  string
	User     string
	Message  Message
	Messages []Message
	Users    []string
	Channels []string
}
