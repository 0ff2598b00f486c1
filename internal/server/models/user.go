// Package models holds the persisted server-side aggregates.
package models

import "time"

// User is an account record. Email is unique; uniqueness is enforced by the
// database index, not application logic.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
