package models

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// NoteMode selects which body of a note is meaningful
type NoteMode string

const (
	ModeText NoteMode = "text"
	ModeList NoteMode = "list"
)

// DefaultColor is the color token given to notes created without one
const DefaultColor = "#E6E6D9"

// UntitledLabel is shown in place of an empty title
const UntitledLabel = "Sem título"

// Palette lists the color tokens offered by the note editor
var Palette = []string{"#E6E6D9", "#F4BFBF", "#A3C9A8", "#A0C4FF", "#FFD6A5", "#FFADAD"}

// Note represents a text note or checklist as stored under the notes key
type Note struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Mode    NoteMode   `json:"mode,omitempty"`
	List    []ListItem `json:"list,omitempty"`
	Color   string     `json:"color,omitempty"`
}

// ListItem is one checklist line owned by its note
type ListItem struct {
	Text      string `json:"text"`
	IsChecked bool   `json:"isChecked"`
}

// IsBlank reports whether the note carries no text at all
func (n Note) IsBlank() bool {
	if strings.TrimSpace(n.Title) != "" || strings.TrimSpace(n.Content) != "" {
		return false
	}
	for _, item := range n.List {
		if strings.TrimSpace(item.Text) != "" {
			return false
		}
	}
	return true
}

// EffectiveMode treats a missing mode as text
func (n Note) EffectiveMode() NoteMode {
	if n.Mode == ModeList {
		return ModeList
	}
	return ModeText
}

// DisplayTitle returns the title or the untitled label
func (n Note) DisplayTitle() string {
	if strings.TrimSpace(n.Title) == "" {
		return UntitledLabel
	}
	return n.Title
}

// WithDefaults fills in the color and mode of a note
func (n Note) WithDefaults() Note {
	if n.Color == "" {
		n.Color = DefaultColor
	}
	n.Mode = n.EffectiveMode()
	return n
}

// TrashEntry is a deleted note together with its deletion time.
// DeletedAt is nil for entries written without a timestamp.
type TrashEntry struct {
	Note
	DeletedAt *int64 `json:"deletedAt,omitempty"`
}

// Restored returns the note without its deletion stamp
func (e TrashEntry) Restored() Note {
	return e.Note
}

// NewTrashEntry stamps a note with the deletion time
func NewTrashEntry(n Note, deletedAt time.Time) TrashEntry {
	ms := deletedAt.UnixMilli()
	return TrashEntry{Note: n, DeletedAt: &ms}
}

// NewID derives an identifier from a timestamp, in milliseconds
func NewID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// IDSequence issues timestamp ids that never repeat. Two calls in the same
// millisecond, or a clock that steps back, get the last id plus one.
type IDSequence struct {
	mutex sync.Mutex
	last  int64
}

// Next returns the id for t
func (q *IDSequence) Next(t time.Time) string {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	ms := t.UnixMilli()
	if ms <= q.last {
		ms = q.last + 1
	}
	q.last = ms
	return strconv.FormatInt(ms, 10)
}
