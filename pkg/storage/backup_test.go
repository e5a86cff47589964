package storage

import (
	"archive/zip"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func TestBackupCollections(t *testing.T) {
	ctx := context.Background()
	gw := NewMemoryGateway()
	gw.Set(ctx, "notes", `[{"id":"1","title":"Groceries"}]`)

	dir := t.TempDir()
	path, err := BackupCollections(ctx, gw, dir, "notes", "trash")
	if err != nil {
		t.Fatalf("BackupCollections: %v", err)
	}
	if filepath.Dir(path) != dir || !strings.HasPrefix(filepath.Base(path), "backup-") {
		t.Fatalf("unexpected backup path %q", path)
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer r.Close()

	contents := map[string]string{}
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, _ := io.ReadAll(rc)
		rc.Close()
		contents[f.Name] = string(data)
	}

	if contents["notes.json"] != `[{"id":"1","title":"Groceries"}]` {
		t.Errorf("notes.json = %q", contents["notes.json"])
	}
	if contents["trash.json"] != "[]" {
		t.Errorf("trash.json = %q, want []", contents["trash.json"])
	}
}
