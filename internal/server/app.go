// Package server initializes and runs the taskkeeper server.
// It opens and migrates the database, wires the services, and runs the HTTP
// API next to the gRPC health probe until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"

	gs "github.com/dmitrijs2005/taskkeeper/internal/server/grpc"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	httpServer   *httpapi.HTTPServer
	healthServer *gs.HealthServer
}

// NewApp connects to the database, applies migrations and builds the servers.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := repomanager.OpenDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	return newApp(c, logger, db, rm), nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) *App {
	us := services.NewUserService(db, rm, c, logger)
	ts := services.NewTaskService(db, rm, logger)

	return &App{
		config:       c,
		logger:       logger,
		db:           db,
		httpServer:   httpapi.NewHTTPServer(c.EndpointAddrHTTP, logger, us, ts, c.ShutdownTimeout),
		healthServer: gs.NewHealthServer(c.EndpointAddrGRPC, logger),
	}
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves until ctx is cancelled, a shutdown signal arrives or one of the
// servers fails. Both listeners are bound before the probe reports SERVING.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	httpLn, err := app.httpServer.Listen()
	if err != nil {
		return fmt.Errorf("http listen: %w", err)
	}
	healthLn, err := app.healthServer.Listen()
	if err != nil {
		_ = httpLn.Close()
		return fmt.Errorf("grpc listen: %w", err)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Serve(ctx, httpLn); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.healthServer.Serve(ctx, healthLn); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	app.healthServer.SetServing(true)

	<-ctx.Done()
	app.healthServer.SetServing(false)

	wg.Wait()

	if err := app.db.Close(); err != nil {
		return fmt.Errorf("db close: %w", err)
	}

	app.logger.Info(context.Background(), "App stopped")
	return nil
}
