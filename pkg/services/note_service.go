package services

import (
	"context"
	stderrors "errors"
	"log"
	"strings"

	"scrib/pkg/errors"
	"scrib/pkg/models"
	"scrib/pkg/repository"
)

// NoteService handles note business logic
type NoteService struct {
	repo *repository.Repository
	ids  models.IDSequence
}

// NewNoteService creates a new note service
func NewNoteService(repo *repository.Repository) *NoteService {
	return &NoteService{
		repo: repo,
	}
}

// BeginEdit starts an editing session. The returned draft's id stays the
// same for every save of that session.
func (s *NoteService) BeginEdit(mode models.NoteMode) models.Note {
	if mode != models.ModeList {
		mode = models.ModeText
	}
	return models.Note{
		ID:    s.ids.Next(s.repo.Now()),
		Mode:  mode,
		Color: models.DefaultColor,
	}
}

// List returns all notes in storage order
func (s *NoteService) List(ctx context.Context) ([]models.Note, error) {
	notes, err := s.repo.LoadNotes(ctx)
	if err != nil {
		return nil, fail(err, errors.ErrLoadFailed, nil, "collection", repository.KeyNotes)
	}
	return notes, nil
}

// Lists returns checklist notes, newest first
func (s *NoteService) Lists(ctx context.Context) ([]models.Note, error) {
	notes, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	lists := make([]models.Note, 0, len(notes))
	for i := len(notes) - 1; i >= 0; i-- {
		if notes[i].EffectiveMode() == models.ModeList {
			lists = append(lists, notes[i])
		}
	}
	return lists, nil
}

// Folders returns every note, newest first
func (s *NoteService) Folders(ctx context.Context) ([]models.Note, error) {
	notes, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	reversed := make([]models.Note, len(notes))
	for i, n := range notes {
		reversed[len(notes)-1-i] = n
	}
	return reversed, nil
}

// Search returns notes whose title, content or list text contains query,
// ignoring case. An empty query matches everything.
func (s *NoteService) Search(ctx context.Context, query string) ([]models.Note, error) {
	notes, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return notes, nil
	}

	var results []models.Note
	for _, note := range notes {
		if matches(note, query) {
			results = append(results, note)
		}
	}
	if results == nil {
		results = []models.Note{}
	}
	return results, nil
}

func matches(note models.Note, query string) bool {
	if strings.Contains(strings.ToLower(note.Title), query) ||
		strings.Contains(strings.ToLower(note.Content), query) {
		return true
	}
	for _, item := range note.List {
		if strings.Contains(strings.ToLower(item.Text), query) {
			return true
		}
	}
	return false
}

// Get returns a specific note by ID with validation
func (s *NoteService) Get(ctx context.Context, id string) (models.Note, error) {
	validator := errors.NewValidator()
	if result := validator.ValidateNoteID(id); !result.IsValid {
		err := result.GetFirstError()
		err.Log()
		return models.Note{}, err
	}

	note, err := s.repo.GetNote(ctx, id)
	if err != nil {
		return models.Note{}, fail(err, errors.ErrLoadFailed, errors.ErrNoteNotFound, "noteId", id)
	}
	return note, nil
}

// Save validates and upserts a note, filling in its default color and mode
func (s *NoteService) Save(ctx context.Context, note models.Note) (models.Note, error) {
	validator := errors.NewValidator()
	if result := validator.ValidateNote(note); !result.IsValid {
		err := result.GetFirstError()
		err.Log()
		return models.Note{}, err
	}

	note = note.WithDefaults()
	if err := s.repo.SaveNote(ctx, note); err != nil {
		return models.Note{}, fail(err, errors.ErrSaveFailed, nil, "noteId", note.ID)
	}

	log.Printf("Note saved: %s", note.ID)
	return note, nil
}

// Finish is the editor's explicit save; unlike Save it requires a title
func (s *NoteService) Finish(ctx context.Context, note models.Note) (models.Note, error) {
	if strings.TrimSpace(note.Title) == "" {
		err := errors.ErrTitleRequired.WithContext("noteId", note.ID)
		err.Log()
		return models.Note{}, err
	}
	return s.Save(ctx, note)
}

// Delete moves a note to the trash
func (s *NoteService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteNote(ctx, id); err != nil {
		return fail(err, errors.ErrDeleteFailed, errors.ErrNoteNotFound, "noteId", id)
	}
	log.Printf("Note moved to trash: %s", id)
	return nil
}

// Trash returns the trash entries still within retention
func (s *NoteService) Trash(ctx context.Context) ([]models.TrashEntry, error) {
	entries, err := s.repo.LoadTrash(ctx)
	if err != nil {
		return nil, fail(err, errors.ErrLoadFailed, nil, "collection", repository.KeyTrash)
	}
	return entries, nil
}

// Restore moves a trash entry back to the notes
func (s *NoteService) Restore(ctx context.Context, id string) error {
	if err := s.repo.RestoreNote(ctx, id); err != nil {
		return fail(err, errors.ErrRestoreFailed, errors.ErrTrashEntryNotFound, "noteId", id)
	}
	log.Printf("Note restored from trash: %s", id)
	return nil
}

// Purge deletes a trash entry permanently
func (s *NoteService) Purge(ctx context.Context, id string) error {
	if err := s.repo.PurgeNote(ctx, id); err != nil {
		return fail(err, errors.ErrDeleteFailed, errors.ErrTrashEntryNotFound, "noteId", id)
	}
	log.Printf("Note permanently deleted: %s", id)
	return nil
}

// EmptyTrash deletes every trash entry permanently
func (s *NoteService) EmptyTrash(ctx context.Context) error {
	if err := s.repo.EmptyTrash(ctx); err != nil {
		return fail(err, errors.ErrDeleteFailed, nil, "collection", repository.KeyTrash)
	}
	log.Printf("Trash emptied")
	return nil
}

// fail translates a repository error into a logged AppError. Storage
// failures become base and missing items become notFound.
func fail(err error, base, notFound *errors.AppError, key string, value interface{}) *errors.AppError {
	var appErr *errors.AppError
	switch {
	case notFound != nil && stderrors.Is(err, repository.ErrNotFound):
		appErr = notFound
	case stderrors.Is(err, repository.ErrBlankNote):
		appErr = errors.ErrBlankNote
	case stderrors.Is(err, repository.ErrBlankMessage):
		appErr = errors.ErrBlankReminder
	default:
		appErr = errors.Cause(base, err)
	}
	appErr = appErr.WithContext(key, value)
	appErr.Log()
	return appErr
}
