package models

import "time"

// Task is a unit of work owned by exactly one user. UserID and CreatedAt are
// set once, at creation.
type Task struct {
	ID          string
	UserID      string
	Title       string
	IsCompleted bool
	CreatedAt   time.Time
}

// TaskUpdate is a partial update: nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	IsCompleted *bool
}

// Empty reports whether the update carries no fields.
func (u TaskUpdate) Empty() bool {
	return u.Title == nil && u.IsCompleted == nil
}
