// Package httpapi exposes the user and task services as a JSON API over echo.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/labstack/echo/v4"
)

// UserService is the authentication surface the API needs.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	ResolveIdentity(ctx context.Context, token string) (string, error)
	GetSelf(ctx context.Context, userID string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

// TaskService is the task surface the API needs.
type TaskService interface {
	List(ctx context.Context, ownerID string) ([]*models.Task, error)
	Create(ctx context.Context, ownerID, title string) (*models.Task, error)
	Update(ctx context.Context, taskID, requesterID string, upd models.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, taskID, requesterID string) error
}

type HTTPServer struct {
	address         string
	echo            *echo.Echo
	users           UserService
	tasks           TaskService
	logger          logging.Logger
	shutdownTimeout time.Duration
}

func NewHTTPServer(a string, l logging.Logger, us UserService, ts TaskService, shutdownTimeout time.Duration) *HTTPServer {
	s := &HTTPServer{
		address:         a,
		logger:          l.With("module", "http_server"),
		users:           us,
		tasks:           ts,
		shutdownTimeout: shutdownTimeout,
	}
	s.echo = s.newEcho()
	return s
}

// Handler returns the router, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.echo
}

// Listen binds the configured address.
func (s *HTTPServer) Listen() (net.Listener, error) {
	return net.Listen("tcp", s.address)
}

// Serve accepts connections on ln until ctx is cancelled, then drains
// in-flight requests for at most the shutdown timeout. The shutdown
// goroutine has exited by the time Serve returns.
func (s *HTTPServer) Serve(ctx context.Context, ln net.Listener) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	srv := &http.Server{
		Handler:           s.echo,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", ln.Addr().String())

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		stop()
		<-done
		return err
	}

	<-done
	return nil
}

func (s *HTTPServer) Run(ctx context.Context) error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}
