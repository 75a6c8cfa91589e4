package store

import "context"

// Store is the shared state substrate the coordinator runs against.
// Each operation is atomic in isolation; sequences of operations are
// not, and the coordinator is written with that in mind.
type Store interface {
	// SetAdd inserts member into the set at key. Adding an existing
	// member is a no-op.
	SetAdd(ctx context.Context, key, member string) error

	// SetRemove deletes member from the set at key. Removing an
	// absent member is a no-op.
	SetRemove(ctx context.Context, key, member string) error

	// SetMembers returns all members of the set at key. A missing
	// key reads as an empty set.
	SetMembers(ctx context.Context, key string) ([]string, error)

	// ListPrepend pushes value onto the head of the list at key,
	// so the newest entry is always first.
	ListPrepend(ctx context.Context, key, value string) error

	// ListRange returns list entries between start and stop
	// inclusive, head first. A missing key reads as an empty list.
	ListRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// Close releases the underlying connection.
	Close() error
}
