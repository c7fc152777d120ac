// Package app wires the dashboard together: blob store, state store,
// generated metrics, derivation engines, assistant boundary, research log and
// the HTTP API.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"vitaldeck/api"
	"vitaldeck/blobstore"
	"vitaldeck/config"
	"vitaldeck/conversation"
	"vitaldeck/database"
	"vitaldeck/generator"
	"vitaldeck/llm"
	"vitaldeck/realtime"
	"vitaldeck/research"
	"vitaldeck/state"
)

// App holds the wired application
type App struct {
	cfg    *config.Config
	log    zerolog.Logger
	blobs  blobstore.Store
	db     *database.Database
	store  *state.Store
	broker *realtime.Broker
	server *api.Server

	cancel context.CancelFunc
}

// New builds the application from configuration. Optional backends (Redis,
// Postgres, the assistant) degrade to local or canned behaviour when disabled
// or unreachable.
func New(cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	// Blob store: Redis when enabled, JSON files otherwise
	if cfg.RedisEnabled {
		blobs, err := blobstore.NewRedisStore(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, log)
		if err != nil {
			return nil, fmt.Errorf("redis blob store: %w", err)
		}
		a.blobs = blobs
	} else {
		blobs, err := blobstore.NewFileStore(cfg.StateDir)
		if err != nil {
			return nil, fmt.Errorf("file blob store: %w", err)
		}
		a.blobs = blobs
		log.Info().Str("dir", cfg.StateDir).Msg("📁 Using file blob store")
	}

	// State store, rehydrated from the last session
	initial, err := state.Load(context.Background(), a.blobs)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	a.store = state.NewStore(initial, log)
	state.PersistOn(a.store, a.blobs, log)

	// Synthetic metric history, regenerated per process
	summaries := generator.BuildAll(cfg.Dashboard.HistoryDays)
	log.Info().Int("metrics", len(summaries)).Int("days", cfg.Dashboard.HistoryDays).Msg("📊 Generated metric history")

	// Optional research-log mirror
	var repo *database.ResearchRepository
	if cfg.Database.Enabled {
		db, err := database.Connect(cfg.Database.Host, cfg.Database.Port, cfg.Database.Name, cfg.Database.User, cfg.Database.Password)
		if err != nil {
			return nil, fmt.Errorf("research database: %w", err)
		}
		a.db = db
		repo = database.NewResearchRepository(db)
		if err := repo.InitSchema(); err != nil {
			return nil, fmt.Errorf("research schema: %w", err)
		}
		log.Info().Msg("✅ Connected to research database")
	}

	recorder, err := research.NewRecorder(context.Background(), a.blobs, repo, log, func() int64 {
		return time.Now().UnixMilli()
	})
	if err != nil {
		return nil, fmt.Errorf("research recorder: %w", err)
	}
	recorder.Attach(a.store)

	a.broker = realtime.NewBroker(log)

	// Assistant boundary; nil client degrades the conversation flow
	var client *llm.Client
	if cfg.Assistant.Enabled && cfg.Assistant.APIKey != "" {
		client = llm.NewClient(cfg.Assistant.Endpoint, cfg.Assistant.APIKey, cfg.Assistant.Model)
		log.Info().Str("model", cfg.Assistant.Model).Msg("🤖 Assistant enabled")
	} else {
		log.Info().Msg("Assistant disabled, conversation runs on canned replies")
	}

	controller := conversation.NewController(a.store, summaries, client, a.broker, log)

	// Every state transition reaches connected dashboards
	a.store.Subscribe(func(next state.AppState, _ state.Event) {
		a.broker.Broadcast(realtime.EventState, next)
	})

	a.server = api.NewServer(a.store, summaries, controller, recorder, a.broker, log)
	return a, nil
}

// Start runs the broker and HTTP server until SIGINT or SIGTERM, then shuts
// down gracefully.
func (a *App) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	go a.broker.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start(a.cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		a.shutdown()
		return err
	case sig := <-quit:
		a.log.Info().Str("signal", sig.String()).Msg("🛑 Shutting down")
		a.shutdown()
		return nil
	}
}

func (a *App) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if a.cancel != nil {
		a.cancel()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Error().Err(err).Msg("database close failed")
		}
	}
	if err := a.blobs.Close(); err != nil {
		a.log.Error().Err(err).Msg("blob store close failed")
	}
	a.log.Info().Msg("👋 Shutdown complete")
}
