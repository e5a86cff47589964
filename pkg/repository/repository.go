// Package repository persists notes, reminders and the trash as three
// whole JSON arrays behind a storage gateway.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	apperrors "scrib/pkg/errors"
	"scrib/pkg/models"
	"scrib/pkg/storage"
)

// Storage keys of the three collections
const (
	KeyNotes     = "notes"
	KeyReminders = "reminders"
	KeyTrash     = "trash"
)

var (
	ErrBlankNote    = errors.New("note has no title, content or list text")
	ErrBlankMessage = errors.New("reminder message is blank")
	ErrNotFound     = errors.New("item not found")
)

// Repository reads and rewrites whole collections through a gateway.
// Mutations through one Repository are serialized; writers in other
// processes still race and the last write wins.
type Repository struct {
	gw     storage.Gateway
	mu     sync.Mutex
	policy TrashPolicy
	now    func() time.Time
}

// Option configures a Repository
type Option func(*Repository)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithRetention sets how long trash entries are kept
func WithRetention(d time.Duration) Option {
	return func(r *Repository) { r.policy.Retention = d }
}

// New creates a repository over gw
func New(gw storage.Gateway, opts ...Option) *Repository {
	r := &Repository{
		gw:     gw,
		policy: TrashPolicy{Retention: DefaultRetention},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Now returns the repository clock's current time
func (r *Repository) Now() time.Time {
	return r.now()
}

// LoadNotes returns the stored notes. Missing or malformed data yields an
// empty slice.
func (r *Repository) LoadNotes(ctx context.Context) ([]models.Note, error) {
	return load[models.Note](ctx, r.gw, KeyNotes)
}

// GetNote returns the note with id
func (r *Repository) GetNote(ctx context.Context, id string) (models.Note, error) {
	notes, err := r.LoadNotes(ctx)
	if err != nil {
		return models.Note{}, err
	}
	if i := indexNote(notes, id); i >= 0 {
		return notes[i], nil
	}
	return models.Note{}, fmt.Errorf("note %s: %w", id, ErrNotFound)
}

// SaveNote inserts the note or replaces the stored note with the same id
func (r *Repository) SaveNote(ctx context.Context, note models.Note) error {
	if note.IsBlank() {
		return ErrBlankNote
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	notes, err := r.LoadNotes(ctx)
	if err != nil {
		return err
	}
	notes = upsertNote(notes, note)
	return store(ctx, r.gw, KeyNotes, notes)
}

// DeleteNote moves a note into the trash stamped with the current time
func (r *Repository) DeleteNote(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes, err := r.LoadNotes(ctx)
	if err != nil {
		return err
	}
	i := indexNote(notes, id)
	if i < 0 {
		return fmt.Errorf("note %s: %w", id, ErrNotFound)
	}

	trash, err := r.keptTrash(ctx)
	if err != nil {
		return err
	}

	trash = append(trash, models.NewTrashEntry(notes[i], r.now()))
	notes = append(notes[:i:i], notes[i+1:]...)

	// Trash first: a failure between the writes leaves the note in both
	// collections instead of neither.
	return r.storeBoth(ctx, KeyTrash, trash, KeyNotes, notes)
}

// RestoreNote moves a trash entry back into the notes without its deletion time
func (r *Repository) RestoreNote(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	trash, err := r.keptTrash(ctx)
	if err != nil {
		return err
	}
	i := indexTrash(trash, id)
	if i < 0 {
		return fmt.Errorf("trash entry %s: %w", id, ErrNotFound)
	}

	notes, err := r.LoadNotes(ctx)
	if err != nil {
		return err
	}

	notes = upsertNote(notes, trash[i].Restored())
	trash = append(trash[:i:i], trash[i+1:]...)

	return r.storeBoth(ctx, KeyNotes, notes, KeyTrash, trash)
}

// PurgeNote removes a trash entry permanently
func (r *Repository) PurgeNote(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	trash, err := r.keptTrash(ctx)
	if err != nil {
		return err
	}
	i := indexTrash(trash, id)
	if i < 0 {
		return fmt.Errorf("trash entry %s: %w", id, ErrNotFound)
	}
	trash = append(trash[:i:i], trash[i+1:]...)
	return store(ctx, r.gw, KeyTrash, trash)
}

// EmptyTrash clears the trash
func (r *Repository) EmptyTrash(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return store(ctx, r.gw, KeyTrash, []models.TrashEntry{})
}

// LoadTrash returns the entries still within retention. Evicted entries are
// removed from storage before returning.
func (r *Repository) LoadTrash(ctx context.Context) ([]models.TrashEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := load[models.TrashEntry](ctx, r.gw, KeyTrash)
	if err != nil {
		return nil, err
	}
	kept, evicted := r.policy.Filter(all, r.now())
	if evicted > 0 {
		if err := store(ctx, r.gw, KeyTrash, kept); err != nil {
			log.Printf("Failed to write back trash after evicting %d entries: %v", evicted, err)
		} else {
			log.Printf("Evicted %d expired trash entries", evicted)
		}
	}
	return kept, nil
}

// LoadReminders returns the stored reminders in storage order
func (r *Repository) LoadReminders(ctx context.Context) ([]models.Reminder, error) {
	return load[models.Reminder](ctx, r.gw, KeyReminders)
}

// SaveReminder inserts the reminder or replaces the one with the same id
func (r *Repository) SaveReminder(ctx context.Context, reminder models.Reminder) error {
	if reminder.IsBlank() {
		return ErrBlankMessage
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	reminders, err := r.LoadReminders(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range reminders {
		if reminders[i].ID == reminder.ID {
			reminders[i] = reminder
			replaced = true
			break
		}
	}
	if !replaced {
		reminders = append(reminders, reminder)
	}
	return store(ctx, r.gw, KeyReminders, reminders)
}

// DeleteReminder removes a reminder; reminders have no trash stage
func (r *Repository) DeleteReminder(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reminders, err := r.LoadReminders(ctx)
	if err != nil {
		return err
	}
	for i := range reminders {
		if reminders[i].ID == id {
			reminders = append(reminders[:i:i], reminders[i+1:]...)
			return store(ctx, r.gw, KeyReminders, reminders)
		}
	}
	return fmt.Errorf("reminder %s: %w", id, ErrNotFound)
}

func (r *Repository) keptTrash(ctx context.Context) ([]models.TrashEntry, error) {
	all, err := load[models.TrashEntry](ctx, r.gw, KeyTrash)
	if err != nil {
		return nil, err
	}
	kept, _ := r.policy.Filter(all, r.now())
	return kept, nil
}

// storeBoth writes two collections, as one step when the gateway supports it
func (r *Repository) storeBoth(ctx context.Context, firstKey string, first any, secondKey string, second any) error {
	firstValue, err := encode(firstKey, first)
	if err != nil {
		return err
	}
	secondValue, err := encode(secondKey, second)
	if err != nil {
		return err
	}

	if batch, ok := r.gw.(storage.BatchSetter); ok {
		err := batch.SetMany(ctx, []storage.Entry{
			{Key: firstKey, Value: firstValue},
			{Key: secondKey, Value: secondValue},
		})
		if err != nil {
			return fmt.Errorf("write %s and %s: %w", firstKey, secondKey, err)
		}
		return nil
	}

	if err := r.gw.Set(ctx, firstKey, firstValue); err != nil {
		return fmt.Errorf("write %s: %w", firstKey, err)
	}
	if err := r.gw.Set(ctx, secondKey, secondValue); err != nil {
		return fmt.Errorf("write %s: %w", secondKey, err)
	}
	return nil
}

func load[T any](ctx context.Context, gw storage.Gateway, key string) ([]T, error) {
	value, found, err := gw.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	items := []T{}
	if !found || strings.TrimSpace(value) == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		apperrors.Cause(apperrors.ErrMalformedData, err).WithContext("collection", key).Log()
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func store[T any](ctx context.Context, gw storage.Gateway, key string, items []T) error {
	value, err := encode(key, items)
	if err != nil {
		return err
	}
	if err := gw.Set(ctx, key, value); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func encode(key string, items any) (string, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", key, err)
	}
	if string(data) == "null" {
		return "[]", nil
	}
	return string(data), nil
}

func indexNote(notes []models.Note, id string) int {
	for i := range notes {
		if notes[i].ID == id {
			return i
		}
	}
	return -1
}

func indexTrash(trash []models.TrashEntry, id string) int {
	for i := range trash {
		if trash[i].ID == id {
			return i
		}
	}
	return -1
}

func upsertNote(notes []models.Note, note models.Note) []models.Note {
	if i := indexNote(notes, note.ID); i >= 0 {
		notes[i] = note
		return notes
	}
	return append(notes, note)
}
