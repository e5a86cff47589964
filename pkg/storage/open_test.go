package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestOpenFileBackendPicksUpExternalEdits(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	gw, closeFn, err := Open(ctx, "file", dir, "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closeFn()

	if err := gw.Set(ctx, "notes", "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, _, _ := gw.Get(ctx, "notes"); v != "[]" {
		t.Fatalf("notes = %q", v)
	}

	external := `[{"id":"9","title":"from another process"}]`
	time.Sleep(20 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "notes.json"), []byte(external), 0644); err != nil {
		t.Fatalf("external write: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if v, _, _ := gw.Get(ctx, "notes"); v == external {
			return
		}
		time.Sleep(25 * time.Millisecond)
	}
	t.Fatal("external edit never became visible")
}

func TestOpenMemoryAndUnknown(t *testing.T) {
	ctx := context.Background()
	gw, closeFn, err := Open(ctx, "memory", "", "")
	if err != nil {
		t.Fatalf("Open memory: %v", err)
	}
	if _, ok := gw.(*MemoryGateway); !ok {
		t.Fatalf("gateway = %T", gw)
	}
	closeFn()

	if _, _, err := Open(ctx, "redis", "", ""); err == nil {
		t.Fatal("unknown backend accepted")
	}
	if _, _, err := Open(ctx, "postgres", "", ""); err == nil {
		t.Fatal("postgres without URL accepted")
	}
}
