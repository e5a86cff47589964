package main

import (
	"context"
	"strings"
	"time"

	"github.com/jaswdr/faker"

	"scrib/pkg/models"
	"scrib/pkg/repository"
)

// seeder fills a repository with sample notes, checklists and reminders.
// Ids come from a clock that advances one millisecond per item so they
// never collide.
type seeder struct {
	repo  *repository.Repository
	fake  faker.Faker
	clock time.Time
}

func newSeeder(repo *repository.Repository, fake faker.Faker, start time.Time) *seeder {
	return &seeder{repo: repo, fake: fake, clock: start}
}

func (s *seeder) next() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

func (s *seeder) seed(ctx context.Context, notes, lists, reminders int) (int, error) {
	created := 0

	for i := 0; i < notes; i++ {
		note := models.Note{
			ID:      models.NewID(s.next()),
			Title:   strings.TrimSuffix(s.fake.Lorem().Sentence(3), "."),
			Content: s.fake.Lorem().Paragraph(2),
			Mode:    models.ModeText,
			Color:   s.fake.RandomStringElement(models.Palette),
		}
		if err := s.repo.SaveNote(ctx, note); err != nil {
			return created, err
		}
		created++
	}

	for i := 0; i < lists; i++ {
		items := make([]models.ListItem, s.fake.IntBetween(2, 6))
		for j := range items {
			items[j] = models.ListItem{
				Text:      s.fake.Lorem().Word(),
				IsChecked: s.fake.Boolean().Bool(),
			}
		}
		note := models.Note{
			ID:    models.NewID(s.next()),
			Title: strings.TrimSuffix(s.fake.Lorem().Sentence(2), "."),
			Mode:  models.ModeList,
			List:  items,
			Color: s.fake.RandomStringElement(models.Palette),
		}
		if err := s.repo.SaveNote(ctx, note); err != nil {
			return created, err
		}
		created++
	}

	for i := 0; i < reminders; i++ {
		now := s.next()
		when := s.fake.Time().TimeBetween(now, now.Add(30*24*time.Hour))
		reminder := models.Reminder{
			ID:        models.NewID(now),
			Date:      models.FormatDate(when),
			Message:   s.fake.Lorem().Sentence(4),
			CreatedAt: now.UnixMilli(),
		}
		if err := s.repo.SaveReminder(ctx, reminder); err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}
