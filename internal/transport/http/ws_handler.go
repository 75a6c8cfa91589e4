package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	stdhttp "net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lmercadier/tchat/internal/core"
	"github.com/lmercadier/tchat/internal/proto"
)

// WSHandler upgrades HTTP connections and bridges them to the
// coordinator. Each connection gets a read loop that dispatches
// actions and a write loop that drains the client's event channel.
type WSHandler struct {
	coord *core.Coordinator
	log   *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(coord *core.Coordinator, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{coord: coord, log: logger}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	client := core.NewClient(uuid.NewString())
	if err := h.coord.Connect(ctx, client); err != nil {
		h.log.Error().Err(err).Str("client_id", client.ID).Msg("connect failed")
	}
	// The request context is gone once the handler unwinds, but the
	// disconnect path still needs to write presence to the store.
	defer func() {
		if err := h.coord.Disconnect(context.WithoutCancel(ctx), client); err != nil {
			h.log.Error().Err(err).Str("client_id", client.ID).Msg("disconnect cleanup failed")
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client, r.RemoteAddr)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *core.Client, remoteAddr string) error {
	for {
		var inbound proto.Inbound
		if err := wsjson.Read(ctx, conn, &inbound); err != nil {
			return err
		}

		// A store failure aborts that one action; the connection
		// itself stays up.
		if err := h.dispatch(ctx, client, remoteAddr, inbound); err != nil {
			h.log.Error().
				Err(err).
				Str("client_id", client.ID).
				Str("event", inbound.Event).
				Msg("action failed")
		}
	}
}

func (h *WSHandler) dispatch(ctx context.Context, client *core.Client, remoteAddr string, inbound proto.Inbound) error {
	switch inbound.Event {
	case proto.ActionJoin:
		identity, err := stringPayload(inbound.Data)
		if err != nil {
			return err
		}
		return h.coord.Join(ctx, client, identity, remoteAddr)
	case proto.ActionMessage:
		body, err := stringPayload(inbound.Data)
		if err != nil {
			return err
		}
		return h.coord.SendMessage(ctx, client, body)
	case proto.ActionJoinChannel:
		channel, err := stringPayload(inbound.Data)
		if err != nil {
			return err
		}
		return h.coord.SwitchChannel(ctx, client, channel)
	case proto.ActionCreateChannel:
		channel, err := stringPayload(inbound.Data)
		if err != nil {
			return err
		}
		return h.coord.CreateChannel(ctx, client, channel)
	case proto.ActionTyping:
		h.coord.Typing(client)
		return nil
	case proto.ActionPing:
		h.coord.Ping(client)
		return nil
	default:
		h.log.Debug().Str("event", inbound.Event).Msg("unknown inbound event")
		return nil
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		select {
		case event, ok := <-client.Events:
			if !ok {
				return nil
			}
			if err := wsjson.Write(ctx, conn, outboundFromEvent(event)); err != nil {
				h.log.Error().Err(err).Str("client_id", client.ID).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func stringPayload(data json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", err
	}
	return s, nil
}
