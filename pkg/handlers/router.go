package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"scrib/pkg/middleware"
)

// NewRouter wires every route. /api routes need a session.
func NewRouter(api *APIHandlers, authHandlers *AuthHandlers, authManager middleware.AuthManager) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandlers.LoginHandler)
		r.Post("/guest", authHandlers.GuestHandler)
		r.Post("/register", authHandlers.RegisterHandler)
		r.Post("/logout", authHandlers.LogoutHandler)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireAuthAPI(authManager))

		r.Get("/home", api.HomeHandler)

		r.Get("/notes", api.GetNotesHandler)
		r.Post("/notes/draft", api.DraftHandler)
		r.Get("/notes/{id}", api.GetNoteHandler)
		r.Put("/notes/{id}", api.PutNoteHandler)
		r.Delete("/notes/{id}", api.DeleteNoteHandler)

		r.Get("/lists", api.ListsHandler)
		r.Get("/folders", api.FoldersHandler)

		r.Get("/trash", api.GetTrashHandler)
		r.Delete("/trash", api.EmptyTrashHandler)
		r.Post("/trash/{id}/restore", api.RestoreHandler)
		r.Delete("/trash/{id}", api.PurgeHandler)

		r.Get("/reminders", api.GetRemindersHandler)
		r.Post("/reminders", api.CreateReminderHandler)
		r.Delete("/reminders/{id}", api.DeleteReminderHandler)

		r.Post("/backup", api.BackupHandler)
		r.Get("/settings", api.GetSettingsHandler)
	})

	return r
}
