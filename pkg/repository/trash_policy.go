package repository

import (
	"time"

	"scrib/pkg/models"
)

// DefaultRetention is how long a deleted note stays in the trash
const DefaultRetention = 7 * 24 * time.Hour

// TrashPolicy decides which trash entries are still kept.
// An entry survives while now - deletedAt < Retention. Entries without a
// deletion time are treated as deleted at now.
type TrashPolicy struct {
	Retention time.Duration
}

// Keeps reports whether entry survives at now
func (p TrashPolicy) Keeps(entry models.TrashEntry, now time.Time) bool {
	nowMs := now.UnixMilli()
	deletedAt := nowMs
	if entry.DeletedAt != nil {
		deletedAt = *entry.DeletedAt
	}
	return nowMs-deletedAt < p.retention().Milliseconds()
}

// Filter returns the surviving entries and how many were evicted
func (p TrashPolicy) Filter(entries []models.TrashEntry, now time.Time) ([]models.TrashEntry, int) {
	kept := make([]models.TrashEntry, 0, len(entries))
	for _, entry := range entries {
		if p.Keeps(entry, now) {
			kept = append(kept, entry)
		}
	}
	return kept, len(entries) - len(kept)
}

func (p TrashPolicy) retention() time.Duration {
	if p.Retention <= 0 {
		return DefaultRetention
	}
	return p.Retention
}
