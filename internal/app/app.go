package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spendwise/spendwise/internal/broker"
	"github.com/spendwise/spendwise/internal/config"
	"github.com/spendwise/spendwise/internal/database"
	"github.com/spendwise/spendwise/internal/utils"
	log "github.com/sirupsen/logrus"
)

const DefaultConfigPath = "./config/application.yaml"

// Application wires configuration, storage, router, and server lifecycle.
type Application struct {
	cfg       config.Application
	db        *pgxpool.Pool
	publisher *broker.Publisher
	deps      *Dependencies
	srv       *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication(configPath string) (*Application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	var db *pgxpool.Pool
	switch cfg.Storage {
	case config.StorageMemory:
		log.Warn("Using in-memory storage, data will be lost on restart")
	case config.StoragePostgres:
		if err := database.Migrate(cfg.Database); err != nil {
			return nil, err
		}
		db, err = database.Open(context.Background(), cfg.Database)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Storage)
	}

	deps := BuildDependencies(db, cfg, utils.SystemClock{})

	var publisher *broker.Publisher
	if cfg.Broker.Enabled() {
		publisher, err = broker.Dial(cfg.Broker.URL, cfg.Broker.Exchange)
		if err != nil {
			if db != nil {
				db.Close()
			}
			return nil, err
		}
		broker.Forward(deps.EventBus, publisher)
	}

	srv := &http.Server{
		Handler:      NewRouter(deps),
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, db: db, publisher: publisher, deps: deps, srv: srv}, nil
}

// Run starts the HTTP server and blocks until it fails or the process is interrupted.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s (storage: %s)", a.srv.Addr, a.cfg.Storage)
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := a.srv.Shutdown(shutdownCtx)
	a.close()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *Application) close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			log.Warnf("failed to close broker connection: %v", err)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
}
