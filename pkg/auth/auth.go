package auth

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"scrib/pkg/models"
	"scrib/pkg/utils"
)

const SessionTimeout = 30 * time.Minute

// SessionCookie is the cookie carrying the session id
const SessionCookie = "session"

// The single account accepted by the login form
const (
	DemoEmail    = "teste@email.com"
	DemoPassword = "1234"
)

// Manager handles credential checks and session management
type Manager struct {
	sessions      map[string]*models.Session
	sessionsMutex sync.RWMutex
	now           func() time.Time
}

// NewManager creates a new authentication manager
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*models.Session),
		now:      time.Now,
	}
}

// SetClock replaces time.Now for session expiry
func (m *Manager) SetClock(now func() time.Time) {
	m.sessionsMutex.Lock()
	m.now = now
	m.sessionsMutex.Unlock()
}

// CheckCredentials reports whether email and password match the demo account
func (m *Manager) CheckCredentials(email, password string) bool {
	return strings.TrimSpace(email) == DemoEmail && password == DemoPassword
}

// CreateSession creates a new session. An empty email creates a guest session.
func (m *Manager) CreateSession(email string) models.Session {
	m.sessionsMutex.Lock()
	defer m.sessionsMutex.Unlock()

	session := &models.Session{
		ID:        utils.GenerateSessionID(),
		Email:     email,
		Guest:     email == "",
		ExpiresAt: m.now().Add(SessionTimeout),
	}
	m.sessions[session.ID] = session
	return *session
}

// GetSession retrieves and validates a session, extending it on success
func (m *Manager) GetSession(r *http.Request) *models.Session {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil
	}
	return m.Lookup(cookie.Value)
}

// Lookup returns the session with id, extending it on success
func (m *Manager) Lookup(id string) *models.Session {
	m.sessionsMutex.Lock()
	defer m.sessionsMutex.Unlock()

	session, exists := m.sessions[id]
	if !exists {
		return nil
	}
	now := m.now()
	if now.After(session.ExpiresAt) {
		delete(m.sessions, id)
		return nil
	}

	session.ExpiresAt = now.Add(SessionTimeout)
	copied := *session
	return &copied
}

// DeleteSession removes a session (logout)
func (m *Manager) DeleteSession(sessionID string) {
	m.sessionsMutex.Lock()
	delete(m.sessions, sessionID)
	m.sessionsMutex.Unlock()
}

// IsAuthenticated checks if the request has a valid session
func (m *Manager) IsAuthenticated(r *http.Request) *models.Session {
	return m.GetSession(r)
}

// CleanupExpiredSessions drops expired sessions and returns how many
func (m *Manager) CleanupExpiredSessions() int {
	m.sessionsMutex.Lock()
	defer m.sessionsMutex.Unlock()

	now := m.now()
	removed := 0
	for id, session := range m.sessions {
		if now.After(session.ExpiresAt) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// SessionCount returns the number of live sessions
func (m *Manager) SessionCount() int {
	m.sessionsMutex.RLock()
	defer m.sessionsMutex.RUnlock()
	return len(m.sessions)
}
