package services

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"scrib/pkg/errors"
	"scrib/pkg/models"
	"scrib/pkg/repository"
)

// ReminderService handles reminder business logic
type ReminderService struct {
	repo *repository.Repository
	ids  models.IDSequence
}

// NewReminderService creates a new reminder service
func NewReminderService(repo *repository.Repository) *ReminderService {
	return &ReminderService{repo: repo}
}

// Schedule creates a reminder for date. The id and createdAt come from the
// current time and the message is trimmed.
func (s *ReminderService) Schedule(ctx context.Context, date time.Time, message, color string) (models.Reminder, error) {
	now := s.repo.Now()
	reminder := models.Reminder{
		ID:        s.ids.Next(now),
		Date:      models.FormatDate(date),
		Message:   strings.TrimSpace(message),
		Color:     color,
		CreatedAt: now.UnixMilli(),
	}
	return s.Save(ctx, reminder)
}

// Save validates and upserts a reminder. An existing reminder keeps its
// original createdAt.
func (s *ReminderService) Save(ctx context.Context, reminder models.Reminder) (models.Reminder, error) {
	validator := errors.NewValidator()
	if result := validator.ValidateReminder(reminder); !result.IsValid {
		err := result.GetFirstError()
		err.Log()
		return models.Reminder{}, err
	}

	existing, err := s.repo.LoadReminders(ctx)
	if err != nil {
		return models.Reminder{}, fail(err, errors.ErrLoadFailed, nil, "collection", repository.KeyReminders)
	}
	for _, r := range existing {
		if r.ID == reminder.ID {
			reminder.CreatedAt = r.CreatedAt
			break
		}
	}
	if reminder.CreatedAt == 0 {
		reminder.CreatedAt = s.repo.Now().UnixMilli()
	}

	if err := s.repo.SaveReminder(ctx, reminder); err != nil {
		return models.Reminder{}, fail(err, errors.ErrSaveFailed, nil, "reminderId", reminder.ID)
	}

	log.Printf("Reminder saved: %s", reminder.ID)
	return reminder, nil
}

// Delete removes a reminder
func (s *ReminderService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteReminder(ctx, id); err != nil {
		return fail(err, errors.ErrDeleteFailed, errors.ErrReminderNotFound, "reminderId", id)
	}
	log.Printf("Reminder deleted: %s", id)
	return nil
}

// Upcoming returns every reminder ordered by date, soonest first.
// Reminders with an unreadable date sort last.
func (s *ReminderService) Upcoming(ctx context.Context) ([]models.Reminder, error) {
	reminders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(reminders, func(i, j int) bool {
		ti, okI := reminders[i].When()
		tj, okJ := reminders[j].When()
		if okI != okJ {
			return okI
		}
		return ti.Before(tj)
	})
	return reminders, nil
}

// Timeline returns the reminders that have a date, latest first
func (s *ReminderService) Timeline(ctx context.Context) ([]models.Reminder, error) {
	reminders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	dated := make([]models.Reminder, 0, len(reminders))
	for _, r := range reminders {
		if _, ok := r.When(); ok {
			dated = append(dated, r)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		ti, _ := dated[i].When()
		tj, _ := dated[j].When()
		return ti.After(tj)
	})
	return dated, nil
}

func (s *ReminderService) load(ctx context.Context) ([]models.Reminder, error) {
	reminders, err := s.repo.LoadReminders(ctx)
	if err != nil {
		return nil, fail(err, errors.ErrLoadFailed, nil, "collection", repository.KeyReminders)
	}
	return reminders, nil
}
