// Package server wires the planner together: it connects the document store,
// prepares indexes, builds the services, and runs the web and health servers
// until the process is asked to stop.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/weekplanner/internal/logging"
	"github.com/dmitrijs2005/weekplanner/internal/server/config"
	"github.com/dmitrijs2005/weekplanner/internal/server/health"
	"github.com/dmitrijs2005/weekplanner/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/weekplanner/internal/server/services"
	"github.com/dmitrijs2005/weekplanner/internal/server/store"
	"github.com/dmitrijs2005/weekplanner/internal/server/web"
)

const (
	connectTimeout    = 10 * time.Second
	disconnectTimeout = 5 * time.Second
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	store       *store.Store
	userService *services.UserService
	taskService *services.TaskService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	cctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	st, err := store.Connect(cctx, c.MongoURI, c.DatabaseName)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewMongoRepositoryManager(st)
	if err := rm.EnsureIndexes(cctx); err != nil {
		_ = st.Close(context.Background())
		return nil, err
	}

	us := services.NewUserService(rm, c, logger)
	ts := services.NewTaskService(rm, logger)

	return &App{config: c, logger: logger, store: st, userService: us, taskService: ts}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	h, err := web.NewHandlers(app.userService, app.taskService, app.logger, app.config.SecureCookies)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	s := web.NewServer(app.config.EndpointAddrHTTP, h.Routes(), app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHealthServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := health.NewServer(app.config.EndpointAddrGRPC, app.store, app.config.HealthCheckInterval, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a signal arrives, ctx is cancelled, or a server fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHealthServer(ctx, cancelFunc)
	}()

	wg.Wait()

	dctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	if err := app.store.Close(dctx); err != nil {
		app.logger.Error(dctx, "store close error", "error", err)
	}

	app.logger.Info(dctx, "App stopped")
}
