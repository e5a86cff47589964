package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingGateway struct {
	*MemoryGateway
	gets int
}

func (c *countingGateway) Get(ctx context.Context, key string) (string, bool, error) {
	c.gets++
	return c.MemoryGateway.Get(ctx, key)
}

func TestCachedGatewayServesRepeatReadsFromMemory(t *testing.T) {
	ctx := context.Background()
	inner := &countingGateway{MemoryGateway: NewMemoryGateway()}
	inner.MemoryGateway.Set(ctx, "notes", "[1]")
	gw := NewCachedGateway(inner, 10*time.Millisecond)
	defer gw.Close()

	for i := 0; i < 3; i++ {
		v, found, err := gw.Get(ctx, "notes")
		if err != nil || !found || v != "[1]" {
			t.Fatalf("Get = %q %v %v", v, found, err)
		}
	}
	if inner.gets != 1 {
		t.Fatalf("inner reads = %d, want 1", inner.gets)
	}

	if err := gw.Set(ctx, "notes", "[2]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, _, _ := gw.Get(ctx, "notes"); v != "[2]" {
		t.Fatalf("after Set = %q", v)
	}
	if inner.gets != 1 {
		t.Fatalf("inner reads = %d after write-through, want 1", inner.gets)
	}
}

func TestCachedGatewayInvalidateRereads(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryGateway()
	inner.Set(ctx, "reminders", "[]")
	gw := NewCachedGateway(inner, 5*time.Millisecond)
	defer gw.Close()

	gw.Get(ctx, "reminders")
	inner.Set(ctx, "reminders", `[{"id":"r"}]`)

	if v, _, _ := gw.Get(ctx, "reminders"); v != "[]" {
		t.Fatalf("expected stale cached value, got %q", v)
	}

	gw.Invalidate("reminders")
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if v, _, _ := gw.Get(ctx, "reminders"); v == `[{"id":"r"}]` {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("cache never picked up external change")
}

func TestCachedGatewayFailedWriteDropsEntry(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryGateway()
	inner.Set(ctx, "notes", "[1]")
	gw := NewCachedGateway(inner, time.Millisecond)
	defer gw.Close()

	gw.Get(ctx, "notes")
	inner.FailSet = func(string) error { return errors.New("read-only") }

	if err := gw.Set(ctx, "notes", "[2]"); err == nil {
		t.Fatal("expected write error")
	}
	if v, _, _ := gw.Get(ctx, "notes"); v != "[1]" {
		t.Fatalf("notes = %q, want stored value", v)
	}
}

type stallingGateway struct {
	*MemoryGateway
	read    chan struct{}
	release chan struct{}
}

// Get takes its snapshot, then waits until released before returning it.
func (s *stallingGateway) Get(ctx context.Context, key string) (string, bool, error) {
	value, found, err := s.MemoryGateway.Get(ctx, key)
	if s.read != nil {
		close(s.read)
		s.read = nil
		<-s.release
	}
	return value, found, err
}

func TestCachedGatewayReadOverlappingWriteIsNotCached(t *testing.T) {
	ctx := context.Background()
	inner := &stallingGateway{
		MemoryGateway: NewMemoryGateway(),
		read:          make(chan struct{}),
		release:       make(chan struct{}),
	}
	inner.MemoryGateway.Set(ctx, "notes", "[]")
	started := inner.read
	gw := NewCachedGateway(inner, time.Minute)
	defer gw.Close()

	done := make(chan string)
	go func() {
		v, _, _ := gw.Get(ctx, "notes")
		done <- v
	}()

	<-started
	if err := gw.Set(ctx, "notes", `[{"id":"1"}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	close(inner.release)

	if v := <-done; v != "[]" {
		t.Fatalf("overlapping read = %q, want the value it started with", v)
	}
	if v, _, _ := gw.Get(ctx, "notes"); v != `[{"id":"1"}]` {
		t.Fatalf("after write, Get = %q", v)
	}
}
