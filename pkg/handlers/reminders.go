package handlers

import (
	"net/http"
	"strings"
	"time"

	"scrib/pkg/errors"
)

// GetRemindersHandler returns the dated reminders latest first, or every
// reminder soonest first with ?order=asc
func (h *APIHandlers) GetRemindersHandler(w http.ResponseWriter, r *http.Request) {
	list := h.reminders.Timeline
	if r.URL.Query().Get("order") == "asc" {
		list = h.reminders.Upcoming
	}

	reminders, err := list(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reminders)
}

// CreateReminderHandler schedules a reminder
func (h *APIHandlers) CreateReminderHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date    string `json:"date"`
		Message string `json:"message"`
		Color   string `json:"color"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeError(w, errors.ErrBlankReminder)
		return
	}

	date, err := time.Parse(time.RFC3339Nano, req.Date)
	if err != nil {
		writeError(w, errors.ErrInvalidDate.WithContext("date", req.Date))
		return
	}

	reminder, err := h.reminders.Schedule(r.Context(), date, req.Message, req.Color)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reminder)
}

// DeleteReminderHandler removes a reminder
func (h *APIHandlers) DeleteReminderHandler(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, r, h.reminders.Delete)
}
