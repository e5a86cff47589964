package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"scrib/pkg/config"
	"scrib/pkg/errors"
	"scrib/pkg/middleware"
	"scrib/pkg/models"
	"scrib/pkg/repository"
	"scrib/pkg/services"
	"scrib/pkg/storage"
)

// APIHandlers contains API endpoint handlers
type APIHandlers struct {
	notes     *services.NoteService
	reminders *services.ReminderService
	gateway   storage.Gateway
	config    *config.Config
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(notes *services.NoteService, reminders *services.ReminderService, gateway storage.Gateway, config *config.Config) *APIHandlers {
	return &APIHandlers{
		notes:     notes,
		reminders: reminders,
		gateway:   gateway,
		config:    config,
	}
}

// HomeHandler returns the notes and the upcoming reminders
func (h *APIHandlers) HomeHandler(w http.ResponseWriter, r *http.Request) {
	feed, err := services.LoadHomeFeed(r.Context(), h.notes, h.reminders)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

// GetNotesHandler returns all notes, filtered by ?q= when given
func (h *APIHandlers) GetNotesHandler(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

// DraftHandler starts an editing session and returns its draft note
func (h *APIHandlers) DraftHandler(w http.ResponseWriter, r *http.Request) {
	mode := models.NoteMode(r.URL.Query().Get("mode"))
	writeJSON(w, http.StatusCreated, h.notes.BeginEdit(mode))
}

// GetNoteHandler returns a specific note by ID
func (h *APIHandlers) GetNoteHandler(w http.ResponseWriter, r *http.Request) {
	note, err := h.notes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// PutNoteHandler upserts the note with the id from the path. With
// ?finish=true the note must have a title.
func (h *APIHandlers) PutNoteHandler(w http.ResponseWriter, r *http.Request) {
	var note models.Note
	if !decodeBody(w, r, &note) {
		return
	}
	note.ID = chi.URLParam(r, "id")

	save := h.notes.Save
	if r.URL.Query().Get("finish") == "true" {
		save = h.notes.Finish
	}

	saved, err := save(r.Context(), note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DeleteNoteHandler moves a note to the trash
func (h *APIHandlers) DeleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, r, h.notes.Delete)
}

// ListsHandler returns checklist notes, newest first
func (h *APIHandlers) ListsHandler(w http.ResponseWriter, r *http.Request) {
	lists, err := h.notes.Lists(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, services.Cards(lists))
}

// FoldersHandler returns every note, newest first
func (h *APIHandlers) FoldersHandler(w http.ResponseWriter, r *http.Request) {
	folders, err := h.notes.Folders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, services.Cards(folders))
}

// GetTrashHandler returns the trash after evicting expired entries
func (h *APIHandlers) GetTrashHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := h.notes.Trash(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// EmptyTrashHandler deletes every trash entry
func (h *APIHandlers) EmptyTrashHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.notes.EmptyTrash(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RestoreHandler moves a trash entry back to the notes
func (h *APIHandlers) RestoreHandler(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, r, h.notes.Restore)
}

// PurgeHandler deletes a trash entry permanently
func (h *APIHandlers) PurgeHandler(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, r, h.notes.Purge)
}

func (h *APIHandlers) noContent(w http.ResponseWriter, r *http.Request, op func(context.Context, string) error) {
	if err := op(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BackupHandler archives the three collections into the data directory
func (h *APIHandlers) BackupHandler(w http.ResponseWriter, r *http.Request) {
	path, err := storage.BackupCollections(r.Context(), h.gateway, h.config.DataDir,
		repository.KeyNotes, repository.KeyReminders, repository.KeyTrash)
	if err != nil {
		appErr := errors.Wrap(err, errors.ErrTypeStorage, "BACKUP_FAILED", "failed to create backup").
			WithUserMessage("Não foi possível criar o backup.")
		appErr.Log()
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"path":    path,
	})
}

// GetSettingsHandler returns current configuration
func (h *APIHandlers) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	view := *h.config
	if view.DatabaseURL != "" {
		view.DatabaseURL = "********"
	}
	session, _ := middleware.SessionFrom(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"config":  view,
		"palette": models.Palette,
		"session": session,
	})
}
