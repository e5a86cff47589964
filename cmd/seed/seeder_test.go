package main

import (
	"context"
	"testing"
	"time"

	"github.com/jaswdr/faker"

	"scrib/pkg/models"
	"scrib/pkg/repository"
	"scrib/pkg/storage"
)

func TestSeedCreatesDistinctItems(t *testing.T) {
	ctx := context.Background()
	repo := repository.New(storage.NewMemoryGateway())
	s := newSeeder(repo, faker.New(), time.UnixMilli(1_700_000_000_000))

	created, err := s.seed(ctx, 4, 2, 3)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if created != 9 {
		t.Fatalf("created = %d, want 9", created)
	}

	notes, _ := repo.LoadNotes(ctx)
	if len(notes) != 6 {
		t.Fatalf("notes = %d, want 6", len(notes))
	}
	seen := map[string]bool{}
	lists := 0
	for _, n := range notes {
		if seen[n.ID] {
			t.Fatalf("duplicate id %s", n.ID)
		}
		seen[n.ID] = true
		if n.Mode == models.ModeList {
			lists++
		}
	}
	if lists != 2 {
		t.Fatalf("lists = %d, want 2", lists)
	}

	reminders, _ := repo.LoadReminders(ctx)
	if len(reminders) != 3 {
		t.Fatalf("reminders = %d, want 3", len(reminders))
	}
	for _, r := range reminders {
		if _, ok := r.When(); !ok {
			t.Fatalf("reminder %s has unreadable date %q", r.ID, r.Date)
		}
	}
}
