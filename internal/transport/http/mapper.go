package http

import (
	"github.com/lmercadier/tchat/internal/core"
	"github.com/lmercadier/tchat/internal/proto"
)

// outboundFromEvent translates a core event into its wire envelope.
func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventInitMessages:
		return proto.Outbound{Event: proto.EventInitMessages, Data: event.Messages}
	case core.EventInitUsers:
		return proto.Outbound{Event: proto.EventInitUsers, Data: event.Users}
	case core.EventInitChannelName:
		return proto.Outbound{Event: proto.EventInitChannelName, Data: event.Channel}
	case core.EventChannelList:
		return proto.Outbound{Event: proto.EventChannelList, Data: event.Channels}
	case core.EventUserJoined:
		return proto.Outbound{Event: proto.EventUserJoined, Data: event.User}
	case core.EventNewMessage:
		return proto.Outbound{Event: proto.EventNewMessage, Data: event.Message}
	case core.EventUserTyping:
		return proto.Outbound{Event: proto.EventUserTyping, Data: event.User}
	case core.EventConnectedUsers:
		return proto.Outbound{Event: proto.EventConnectedUsers, Data: event.Users}
	case core.EventDisconnectedUsers:
		return proto.Outbound{Event: proto.EventDisconnectedUsers, Data: event.Users}
	case core.EventPingAck:
		return proto.Outbound{Event: proto.EventPingAck}
	default:
		return proto.Outbound{}
	}
}
