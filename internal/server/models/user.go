// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an identity record. The password is stored only as a bcrypt hash
// and is never serialized to any external representation.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
