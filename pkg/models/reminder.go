package models

import (
	"strings"
	"time"
)

// Reminder represents a scheduled message stored under the reminders key
type Reminder struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Message   string `json:"message"`
	Color     string `json:"color,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

// IsBlank reports whether the reminder has nothing to remind about
func (r Reminder) IsBlank() bool {
	return strings.TrimSpace(r.Message) == ""
}

// When parses the scheduled moment. ok is false for a missing or
// unparsable date.
func (r Reminder) When() (t time.Time, ok bool) {
	if r.Date == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, r.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders a scheduled moment the way reminders are stored
func FormatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
