package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	mr := miniredis.RunT(t)
	st, err := New(context.Background(), mr.Addr(), "", 0)
	if err != nil {
		t.Fatalf("connect test store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestSetAddDedupes(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	for i := 0; i < 3; i++ {
		if err := st.SetAdd(ctx, "channels", "general"); err != nil {
			t.Fatalf("set add: %v", err)
		}
	}

	members, err := st.SetMembers(ctx, "channels")
	if err != nil {
		t.Fatalf("set members: %v", err)
	}
	if len(members) != 1 || members[0] != "general" {
		t.Fatalf("expected single member, got %v", members)
	}
}

func TestSetRemoveAbsentMemberIsNoop(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	if err := st.SetRemove(ctx, "users", "ghost"); err != nil {
		t.Fatalf("removing absent member errored: %v", err)
	}
}

func TestSetMembersMissingKeyReadsEmpty(t *testing.T) {
	st := newTestStore(t)

	members, err := st.SetMembers(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("set members: %v", err)
	}
	if len(members) != 0 {
		t.Fatalf("expected empty set, got %v", members)
	}
}

func TestListPrependKeepsNewestFirst(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	for _, v := range []string{"one", "two", "three"} {
		if err := st.ListPrepend(ctx, "messages:general", v); err != nil {
			t.Fatalf("list prepend: %v", err)
		}
	}

	entries, err := st.ListRange(ctx, "messages:general", 0, -1)
	if err != nil {
		t.Fatalf("list range: %v", err)
	}
	want := []string{"three", "two", "one"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %v", len(want), entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Fatalf("entry %d: want %q, got %q", i, want[i], entries[i])
		}
	}
}

func TestListRangeBounds(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	for i := 0; i < 10; i++ {
		if err := st.ListPrepend(ctx, "messages:general", "entry"); err != nil {
			t.Fatalf("list prepend: %v", err)
		}
	}

	entries, err := st.ListRange(ctx, "messages:general", 0, 4)
	if err != nil {
		t.Fatalf("list range: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}

	empty, err := st.ListRange(ctx, "messages:ghost", 0, 4)
	if err != nil {
		t.Fatalf("list range on missing key: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty range, got %v", empty)
	}
}
