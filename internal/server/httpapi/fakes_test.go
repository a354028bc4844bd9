package httpapi

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
)

const (
	goodToken = "good-token"
	userID    = "11111111-1111-1111-1111-111111111111"
)

var createdAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fakeUsers struct {
	register       func(ctx context.Context, name, email, password string) (*services.AuthResult, error)
	login          func(ctx context.Context, email, password string) (*services.AuthResult, error)
	getSelf        func(ctx context.Context, userID string) (*models.User, error)
	updatePassword func(ctx context.Context, userID, oldPassword, newPassword string) error
}

func (f *fakeUsers) Register(ctx context.Context, name, email, password string) (*services.AuthResult, error) {
	return f.register(ctx, name, email, password)
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (*services.AuthResult, error) {
	return f.login(ctx, email, password)
}

func (f *fakeUsers) ResolveIdentity(ctx context.Context, token string) (string, error) {
	if token != goodToken {
		return "", common.ErrorUnauthorized
	}
	return userID, nil
}

func (f *fakeUsers) GetSelf(ctx context.Context, id string) (*models.User, error) {
	return f.getSelf(ctx, id)
}

func (f *fakeUsers) UpdatePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	return f.updatePassword(ctx, id, oldPassword, newPassword)
}

type fakeTasks struct {
	list   func(ctx context.Context, ownerID string) ([]*models.Task, error)
	create func(ctx context.Context, ownerID, title string) (*models.Task, error)
	update func(ctx context.Context, taskID, requesterID string, upd models.TaskUpdate) (*models.Task, error)
	del    func(ctx context.Context, taskID, requesterID string) error
}

func (f *fakeTasks) List(ctx context.Context, ownerID string) ([]*models.Task, error) {
	return f.list(ctx, ownerID)
}

func (f *fakeTasks) Create(ctx context.Context, ownerID, title string) (*models.Task, error) {
	return f.create(ctx, ownerID, title)
}

func (f *fakeTasks) Update(ctx context.Context, taskID, requesterID string, upd models.TaskUpdate) (*models.Task, error) {
	return f.update(ctx, taskID, requesterID, upd)
}

func (f *fakeTasks) Delete(ctx context.Context, taskID, requesterID string) error {
	return f.del(ctx, taskID, requesterID)
}

func newTestServer(t *testing.T, us *fakeUsers, ts *fakeTasks) *HTTPServer {
	t.Helper()
	if us == nil {
		us = &fakeUsers{}
	}
	if ts == nil {
		ts = &fakeTasks{}
	}
	return NewHTTPServer("127.0.0.1:0", logging.Nop{}, us, ts, time.Second)
}

// do sends a request through the router. A non-empty token is sent as a
// bearer Authorization header.
func do(t *testing.T, s *HTTPServer, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func sampleUser() *models.User {
	return &models.User{ID: userID, Name: "Alice", Email: "alice@x.com", PasswordHash: "secret-hash", CreatedAt: createdAt}
}

func sampleTask(title string, done bool) *models.Task {
	return &models.Task{
		ID:          "22222222-2222-2222-2222-222222222222",
		UserID:      userID,
		Title:       title,
		IsCompleted: done,
		CreatedAt:   createdAt,
	}
}

