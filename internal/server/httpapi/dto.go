package httpapi

import (
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"strongpassword"`
}

// LoginRequest is not validated: missing fields fail as invalid credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"strongpassword"`
}

type CreateTaskRequest struct {
	Title string `json:"title" validate:"required"`
}

// UpdateTaskRequest distinguishes absent fields (nil) from zero values.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	IsCompleted *bool   `json:"isCompleted"`
}

func (r UpdateTaskRequest) toModel() models.TaskUpdate {
	return models.TaskUpdate{Title: r.Title, IsCompleted: r.IsCompleted}
}

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

func newAuthResponse(r *services.AuthResult) AuthResponse {
	return AuthResponse{
		Token: r.Token,
		User:  UserSummary{ID: r.User.ID, Name: r.User.Name, Email: r.User.Email},
	}
}

// UserResponse is the stored user minus the password hash.
type UserResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

type TaskResponse struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	IsCompleted bool      `json:"isCompleted"`
	User        string    `json:"user"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newTaskResponse(t *models.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		IsCompleted: t.IsCompleted,
		User:        t.UserID,
		CreatedAt:   t.CreatedAt,
	}
}

type MessageResponse struct {
	Msg string `json:"msg"`
}

type FieldErrorResponse struct {
	Type     string `json:"type"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

type ValidationErrorResponse struct {
	Errors []FieldErrorResponse `json:"errors"`
}
