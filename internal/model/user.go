// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account. Immutable after creation except
// for credential rotation; users are never deleted.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	CredentialHash string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
