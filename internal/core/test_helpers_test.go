package core

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"

	redisstore "github.com/lmercadier/tchat/internal/store/redis"
)

// newTestCoordinator builds a coordinator against an in-process
// miniredis store with "general" as the default channel.
func newTestCoordinator(t *testing.T) *Coordinator {
	t.Helper()

	mr := miniredis.RunT(t)
	st, err := redisstore.New(context.Background(), mr.Addr(), "", 0)
	if err != nil {
		t.Fatalf("connect test store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	logger := zerolog.Nop()
	return NewCoordinator(st, NewFanout(), "general", &logger)
}

func connect(t *testing.T, co *Coordinator, id string) *Client {
	t.Helper()

	c := NewClient(id)
	if err := co.Connect(context.Background(), c); err != nil {
		t.Fatalf("connect %s: %v", id, err)
	}
	return c
}

func join(t *testing.T, co *Coordinator, c *Client, identity string) {
	t.Helper()

	if err := co.Join(context.Background(), c, identity, "127.0.0.1:49152"); err != nil {
		t.Fatalf("join %s: %v", identity, err)
	}
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

// drainEvents empties a client's event channel. Coordinator calls
// are synchronous, so everything emitted so far is already buffered.
func drainEvents(c *Client) []*Event {
	var events []*Event
	for {
		select {
		case ev := <-c.Events:
			events = append(events, ev)
		default:
			return events
		}
	}
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func hasKind(events []*Event, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}
