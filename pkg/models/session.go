package models

import "time"

// Session represents a signed-in user, or a guest when Email is empty
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	Guest     bool      `json:"guest"`
	ExpiresAt time.Time `json:"expires_at"`
}
