package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"scrib/pkg/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SCRIB_DATA_DIR", "SCRIB_ADDR", "SCRIB_BACKEND", "DATABASE_URL", "SCRIB_TRASH_RETENTION_DAYS"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.Backend != BackendFile || cfg.TrashRetentionDays != 7 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.TrashRetention() != 7*24*time.Hour {
		t.Fatalf("retention = %v", cfg.TrashRetention())
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte(`{"dataDir":"/srv/scrib","addr":":9000","trashRetentionDays":3}`), 0644)
	t.Setenv("SCRIB_ADDR", "127.0.0.1:7000")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.DataDir != "/srv/scrib" || cfg.TrashRetentionDays != 3 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Addr != "127.0.0.1:7000" {
		t.Fatalf("env override not applied: %s", cfg.Addr)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte(`{not json`), 0644)

	_, err := LoadFrom(path)
	if !errors.Is(err, errors.ErrTypeConfig) {
		t.Fatalf("err = %v, want configuration error", err)
	}
}

func TestLoadRejectsNonPositiveRetention(t *testing.T) {
	clearEnv(t)
	t.Setenv("SCRIB_TRASH_RETENTION_DAYS", "0")
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "config.json")); err == nil {
		t.Fatal("zero retention accepted")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	cfg.DataDir = "/tmp/scrib"
	cfg.Backend = BackendPostgres
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.DataDir != "/tmp/scrib" || loaded.Backend != BackendPostgres {
		t.Fatalf("loaded = %+v", loaded)
	}
}
