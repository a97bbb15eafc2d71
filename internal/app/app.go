package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/yuuzu/spenderman/internal/config"
	"github.com/yuuzu/spenderman/pkg/sample"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Application wires configuration, storage, router, and server lifecycle.
type Application struct {
	cfg        config.Application
	deps       *Dependencies
	router     *mux.Router
	srv        *http.Server
	closeStore func()
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication(ctx context.Context, cfg config.Application) (*Application, error) {
	store, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Build dependencies (repositories, services, handlers...)
	deps := BuildDependencies(store, cfg)

	if cfg.Seed.Enabled {
		if _, err := sample.Seed(ctx, deps.SampleRepositories(), deps.Clock); err != nil {
			closeStore()
			return nil, err
		}
	}

	r := mux.NewRouter()

	// Middleware chain
	SetupMiddleware(r)

	// Routes
	RegisterRoutes(r, deps)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Server.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, deps: deps, router: r, srv: srv, closeStore: closeStore}, nil
}

func (a *Application) Dependencies() *Dependencies {
	return a.deps
}

func (a *Application) Handler() http.Handler {
	return a.router
}

// Run serves HTTP until ctx is cancelled, then shuts the server down gracefully
// and releases the store.
func (a *Application) Run(ctx context.Context) error {
	defer a.closeStore()
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("Starting server on %s", a.srv.Addr)
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		// Alerts are advisory, the server keeps running without them.
		if err := newBudgetAlertWatcher(a.deps.StatsService).Run(gCtx, a.deps); err != nil {
			log.Errorf("Budget alerts disabled: %v", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Close releases the store of an application that is not going to Run.
func (a *Application) Close() {
	a.closeStore()
}
