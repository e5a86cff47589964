package handlers

import (
	"net/http"

	"scrib/pkg/auth"
	"scrib/pkg/services"
)

// AuthHandlers contains authentication-related handlers
type AuthHandlers struct {
	auth *services.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authService *services.AuthService) *AuthHandlers {
	return &AuthHandlers{auth: authService}
}

func setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// LoginHandler checks the credentials and sets the session cookie
func (h *AuthHandlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	session, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	setSessionCookie(w, session.ID)
	writeJSON(w, http.StatusOK, session)
}

// GuestHandler opens a guest session
func (h *AuthHandlers) GuestHandler(w http.ResponseWriter, r *http.Request) {
	session := h.auth.Guest()
	setSessionCookie(w, session.ID)
	writeJSON(w, http.StatusOK, session)
}

// RegisterHandler validates the account creation form
func (h *AuthHandlers) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.auth.Register(req.Name, req.Email, req.Password, req.ConfirmPassword); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Conta criada com sucesso!",
	})
}

// LogoutHandler ends the session and clears the cookie
func (h *AuthHandlers) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookie); err == nil {
		h.auth.Logout(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	w.WriteHeader(http.StatusNoContent)
}
