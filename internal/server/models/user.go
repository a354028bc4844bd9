// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an identity record. PasswordHash is a bcrypt digest and never
// leaves the server.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
