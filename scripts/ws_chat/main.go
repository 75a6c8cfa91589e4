package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/lmercadier/tchat/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:3000/ws", "WebSocket address")
	user := flag.String("user", "cli-user", "username")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	if err := sendAction(ctx, conn, proto.ActionJoin, *user); err != nil {
		return fmt.Errorf("join: %w", err)
	}

	fmt.Printf("Connected to %s as %s\n", *addr, *user)
	fmt.Println("Type messages and press Enter to send.")
	fmt.Println("Commands: /switch <channel>, /create <channel>, /ping. Ctrl+C to exit.")

	go func() {
		defer cancel()
		readLoop(ctx, conn)
	}()

	writeLoop(ctx, conn)

	stop()
	cancel()
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	return nil
}

func sendAction(ctx context.Context, conn *websocket.Conn, event, payload string) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return wsjson.Write(ctx, conn, proto.Inbound{Event: event, Data: data})
}

func readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var outbound struct {
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			// Treat expected shutdowns quietly.
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			log.Printf("read error: %v", err)
			return
		}

		switch outbound.Event {
		case proto.EventNewMessage:
			var msg struct {
				Username string `json:"username"`
				Message  string `json:"message"`
			}
			if err := json.Unmarshal(outbound.Data, &msg); err != nil {
				log.Printf("unmarshal message: %v", err)
				continue
			}
			fmt.Printf("%s: %s\n", msg.Username, msg.Message)
		case proto.EventInitMessages:
			var history []struct {
				Username string `json:"username"`
				Message  string `json:"message"`
			}
			if err := json.Unmarshal(outbound.Data, &history); err != nil {
				log.Printf("unmarshal history: %v", err)
				continue
			}
			// History arrives newest first; replay it oldest first.
			for i := len(history) - 1; i >= 0; i-- {
				fmt.Printf("%s: %s\n", history[i].Username, history[i].Message)
			}
		case proto.EventInitChannelName:
			var name string
			if err := json.Unmarshal(outbound.Data, &name); err != nil {
				continue
			}
			fmt.Printf("-- now in channel %s --\n", name)
		case proto.EventUserJoined:
			var name string
			if err := json.Unmarshal(outbound.Data, &name); err != nil {
				continue
			}
			fmt.Printf("-- %s joined --\n", name)
		case proto.EventUserTyping:
			var name string
			if err := json.Unmarshal(outbound.Data, &name); err != nil {
				continue
			}
			fmt.Printf("-- %s is typing --\n", name)
		case proto.EventPingAck:
			fmt.Println("-- pong --")
		case proto.EventInitUsers, proto.EventChannelList, proto.EventConnectedUsers, proto.EventDisconnectedUsers:
			var names []string
			if err := json.Unmarshal(outbound.Data, &names); err != nil {
				continue
			}
			fmt.Printf("-- %s: %s --\n", outbound.Event, strings.Join(names, ", "))
		default:
			fmt.Printf("event=%s data=%s\n", outbound.Event, outbound.Data)
		}
	}
}

func writeLoop(ctx context.Context, conn *websocket.Conn) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}

			var err error
			switch {
			case strings.HasPrefix(text, "/switch "):
				err = sendAction(ctx, conn, proto.ActionJoinChannel, strings.TrimPrefix(text, "/switch "))
			case strings.HasPrefix(text, "/create "):
				err = sendAction(ctx, conn, proto.ActionCreateChannel, strings.TrimPrefix(text, "/create "))
			case text == "/ping":
				err = wsjson.Write(ctx, conn, proto.Inbound{Event: proto.ActionPing})
			default:
				err = sendAction(ctx, conn, proto.ActionMessage, text)
			}
			if err != nil {
				log.Printf("send error: %v", err)
				return
			}
		}
	}
}
