package proto

import "encoding/json"

// Inbound is the envelope for actions coming from the client.
type Inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Inbound action names, kept wire-compatible with the original
// socket.io client. Payloads are plain JSON strings where present.
const (
	ActionJoin          = "chat.join"
	ActionMessage       = "channel.message"
	ActionJoinChannel   = "chat.joinChannel"
	ActionCreateChannel = "channel.create"
	ActionTyping        = "channel.userIsTyping"
	ActionPing          = "chat.ping"
)

// Outbound event names.
const (
	EventInitMessages      = "channel.initMessages"
	EventInitUsers         = "channel.initUsers"
	EventInitChannelName   = "channel.initName"
	EventChannelList       = "chat.channelList"
	EventUserJoined        = "channel.userJoined"
	EventNewMessage        = "channel.newMessage"
	EventUserTyping        = "channel.userIsTyping"
	EventConnectedUsers    = "chat.userList"
	EventDisconnectedUsers = "chat.disconnectedUserList"
	EventPingAck           = "chat.ping"
)

// Outbound is the envelope for events sent to clients.
type Outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}
