package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileGatewayRoundTrip(t *testing.T) {
	ctx := context.Background()
	gw, err := NewFileGateway(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileGateway: %v", err)
	}
	defer gw.Close()

	if _, found, err := gw.Get(ctx, "notes"); err != nil || found {
		t.Fatalf("Get on empty dir = found %v, err %v", found, err)
	}

	if err := gw.Set(ctx, "notes", `[{"id":"1"}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, found, err := gw.Get(ctx, "notes")
	if err != nil || !found {
		t.Fatalf("Get after Set = found %v, err %v", found, err)
	}
	if value != `[{"id":"1"}]` {
		t.Fatalf("value = %q", value)
	}

	if _, err := os.Stat(filepath.Join(gw.DataDir(), "notes.json")); err != nil {
		t.Fatalf("expected notes.json on disk: %v", err)
	}

	if err := gw.Remove(ctx, "notes"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, found, _ := gw.Get(ctx, "notes"); found {
		t.Fatal("key still present after Remove")
	}
	if err := gw.Remove(ctx, "notes"); err != nil {
		t.Fatalf("Remove of missing key: %v", err)
	}
}

func TestFileGatewayRejectsInvalidKeys(t *testing.T) {
	ctx := context.Background()
	gw, err := NewFileGateway(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileGateway: %v", err)
	}

	for _, key := range []string{"", "../escape", "Notes", "a/b", "with space"} {
		if err := gw.Set(ctx, key, "[]"); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Set(%q) err = %v, want ErrInvalidKey", key, err)
		}
	}
}

func TestFileGatewaySetManyLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	gw, err := NewFileGateway(dir)
	if err != nil {
		t.Fatalf("NewFileGateway: %v", err)
	}

	err = gw.SetMany(ctx, []Entry{
		{Key: "trash", Value: `[{"id":"1"}]`},
		{Key: "notes", Value: `[]`},
	})
	if err != nil {
		t.Fatalf("SetMany: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if len(matches) != 0 {
		t.Fatalf("leftover temp files: %v", matches)
	}
	if v, _, _ := gw.Get(ctx, "trash"); v != `[{"id":"1"}]` {
		t.Fatalf("trash = %q", v)
	}
}

func TestFileGatewayCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gw, err := NewFileGateway(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileGateway: %v", err)
	}
	if err := gw.Set(ctx, "notes", "[]"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Set err = %v, want context.Canceled", err)
	}
}

func TestFileGatewayWatchReportsExternalWrites(t *testing.T) {
	dir := t.TempDir()
	gw, err := NewFileGateway(dir)
	if err != nil {
		t.Fatalf("NewFileGateway: %v", err)
	}
	defer gw.Close()

	changed := make(chan string, 8)
	if err := gw.Watch(func(key string) { changed <- key }); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "reminders.json"), []byte("[]"), 0644); err != nil {
		t.Fatalf("external write: %v", err)
	}

	select {
	case key := <-changed:
		if key != "reminders" {
			t.Fatalf("changed key = %q, want reminders", key)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported for external write")
	}
}
