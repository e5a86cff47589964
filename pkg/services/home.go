package services

import (
	"context"

	"scrib/pkg/models"
)

// NoteCard is a note as the list screens show it, with the label to use
// when the title is empty
type NoteCard struct {
	models.Note
	DisplayTitle string `json:"displayTitle"`
}

// Cards wraps notes for display
func Cards(notes []models.Note) []NoteCard {
	cards := make([]NoteCard, len(notes))
	for i, n := range notes {
		cards[i] = NoteCard{Note: n, DisplayTitle: n.DisplayTitle()}
	}
	return cards
}

// HomeFeed is what the home screen shows
type HomeFeed struct {
	Notes     []NoteCard        `json:"notes"`
	Reminders []models.Reminder `json:"reminders"`
}

// LoadHomeFeed returns the notes in storage order and the reminders
// soonest first
func LoadHomeFeed(ctx context.Context, notes *NoteService, reminders *ReminderService) (HomeFeed, error) {
	n, err := notes.List(ctx)
	if err != nil {
		return HomeFeed{}, err
	}
	r, err := reminders.Upcoming(ctx)
	if err != nil {
		return HomeFeed{}, err
	}
	return HomeFeed{Notes: Cards(n), Reminders: r}, nil
}
