package models

import "time"

type Session struct {
	SessionID        string    `json:"session_id"`
	UserID           string    `json:"user_id"`
	PersonIdentifier string    `json:"person_identifier"`
	ExpiresAt        time.Time `json:"expires_at"`
}
