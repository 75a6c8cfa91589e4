package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lmercadier/tchat/internal/store"
)

// logKey is the per-channel message log, newest entry first.
func logKey(channel string) string {
	return "messages:" + channel
}

// History is the bounded-read message log per channel. Entries are
// stored as JSON so the log stays readable by the existing web client.
type History struct {
	store store.Store
}

// NewHistory binds a message log to a store.
func NewHistory(st store.Store) *History {
	return &History{store: st}
}

// Append prepends a message to a channel's log.
func (h *History) Append(ctx context.Context, channel string, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	return h.store.ListPrepend(ctx, logKey(channel), string(data))
}

// Recent returns up to n of the newest messages in a channel,
// newest first. An empty channel reads as an empty slice.
func (h *History) Recent(ctx context.Context, channel string, n int) ([]Message, error) {
	entries, err := h.store.ListRange(ctx, logKey(channel), 0, int64(n)-1)
	if err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(entries))
	for _, entry := range entries {
		var msg Message
		if err := json.Unmarshal([]byte(entry), &msg); err != nil {
			return nil, fmt.Errorf("decode message in %q: %w", channel, err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
