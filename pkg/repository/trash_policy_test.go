package repository

import (
	"testing"
	"time"

	"scrib/pkg/models"
)

func TestTrashPolicyKeeps(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	policy := TrashPolicy{Retention: DefaultRetention}
	week := DefaultRetention.Milliseconds()

	stamp := func(ms int64) *int64 { return &ms }

	tests := []struct {
		name      string
		deletedAt *int64
		want      bool
	}{
		{"just deleted", stamp(now.UnixMilli()), true},
		{"one ms inside retention", stamp(now.UnixMilli() - week + 1), true},
		{"exactly at retention", stamp(now.UnixMilli() - week), false},
		{"one ms past retention", stamp(now.UnixMilli() - week - 1), false},
		{"missing deletedAt", nil, true},
		{"deleted in the future", stamp(now.UnixMilli() + 1000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := models.TrashEntry{Note: models.Note{ID: "1"}, DeletedAt: tt.deletedAt}
			if got := policy.Keeps(entry, now); got != tt.want {
				t.Errorf("Keeps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrashPolicyFilterCountsEvictions(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	old := now.Add(-8 * 24 * time.Hour)

	entries := []models.TrashEntry{
		models.NewTrashEntry(models.Note{ID: "old"}, old),
		models.NewTrashEntry(models.Note{ID: "new"}, now),
	}
	kept, evicted := TrashPolicy{}.Filter(entries, now)
	if evicted != 1 {
		t.Fatalf("evicted = %d, want 1", evicted)
	}
	if len(kept) != 1 || kept[0].ID != "new" {
		t.Fatalf("kept = %+v", kept)
	}
}

func TestTrashPolicyCustomRetention(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	entry := models.NewTrashEntry(models.Note{ID: "1"}, now.Add(-2*time.Hour))

	if (TrashPolicy{Retention: time.Hour}).Keeps(entry, now) {
		t.Error("entry older than a one hour retention was kept")
	}
	if !(TrashPolicy{Retention: 3 * time.Hour}).Keeps(entry, now) {
		t.Error("entry within a three hour retention was evicted")
	}
}
