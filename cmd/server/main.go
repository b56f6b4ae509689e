package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/quackworks/duckfarm/internal/broadcast"
	"github.com/quackworks/duckfarm/internal/config"
	"github.com/quackworks/duckfarm/internal/repository/sheets"
	"github.com/quackworks/duckfarm/internal/scheduler"
	"github.com/quackworks/duckfarm/internal/server/handlers"
	"github.com/quackworks/duckfarm/internal/server/router"
	assistantsvc "github.com/quackworks/duckfarm/internal/service/assistant"
	reportingsvc "github.com/quackworks/duckfarm/internal/service/reporting"
	"github.com/quackworks/duckfarm/internal/snapshot"
	"github.com/quackworks/duckfarm/internal/store"
	"github.com/quackworks/duckfarm/pkg/clients/genai"
	"github.com/quackworks/duckfarm/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	snaps, cleanup, err := buildSnapshotStore(cfg, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init snapshot store", zap.Error(err))
	}
	defer cleanup()

	bus := broadcast.NewBus(baseLogger.Named("bus"))

	st := store.New(snaps, bus, baseLogger.Named("store"))
	if err := st.LoadState(context.Background()); err != nil {
		baseLogger.Warn("state load failed, starting from in-memory defaults", zap.Error(err))
	}

	// Assistant features are optional; without an API key the endpoints are
	// simply not routed.
	var assistantHandler *handlers.AssistantHandler
	if cfg.AI.APIKey != "" {
		aiClient := genai.NewClient(cfg.AI.APIKey, genai.Options{
			BaseURL:   cfg.AI.BaseURL,
			ChatModel: cfg.AI.ChatModel,
			TTSModel:  cfg.AI.TTSModel,
		})
		assistantSvc := assistantsvc.NewService(aiClient, st, cfg.AI.Voice, baseLogger.Named("svc.assistant"))
		assistantHandler = handlers.NewAssistantHandler(assistantSvc, baseLogger.Named("handlers.assistant"))
		baseLogger.Info("generative ai client enabled")
	} else {
		baseLogger.Warn("generative api key missing, assistant features disabled")
	}

	var reportingSvc *reportingsvc.Service
	var reportsHandler *handlers.ReportsHandler
	if cfg.SheetsEnabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		reportingSvc = reportingsvc.NewService(sheetsRepo, st, baseLogger.Named("svc.reporting"))
		reportsHandler = handlers.NewReportsHandler(reportingSvc, baseLogger.Named("handlers.reports"))
		baseLogger.Info("sheets report export enabled")
	}

	engine := router.New(router.Handlers{
		State:      handlers.NewStateHandler(st, baseLogger.Named("handlers.state")),
		Auth:       handlers.NewAuthHandler(st, baseLogger.Named("handlers.auth")),
		Ducks:      handlers.NewDuckHandler(st, baseLogger.Named("handlers.ducks")),
		Production: handlers.NewProductionHandler(st, baseLogger.Named("handlers.production")),
		Inventory:  handlers.NewInventoryHandler(st, baseLogger.Named("handlers.inventory")),
		Finance:    handlers.NewFinanceHandler(st, baseLogger.Named("handlers.finance")),
		Events:     handlers.NewEventsHandler(bus, baseLogger.Named("handlers.events")),
		Assistant:  assistantHandler,
		Reports:    reportsHandler,
	}, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Scheduler, st, reportingSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:        ":" + cfg.Server.Port,
		Handler:     engine,
		ReadTimeout: 15 * time.Second,
		// No write timeout: /api/events holds a long-lived SSE stream.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}

	// Flush any unsaved edits before exiting.
	if st.IsDirty() {
		if err := st.SaveState(shutdownCtx); err != nil {
			baseLogger.Error("final state save failed", zap.Error(err))
		}
	}
}

func buildSnapshotStore(cfg *config.Config, baseLogger *zap.Logger) (snapshot.Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendMongo:
		mongoStore, err := snapshot.NewMongoStore(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := mongoStore.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}
		return mongoStore, cleanup, nil
	default:
		fileStore, err := snapshot.NewFileStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return fileStore, func() {}, nil
	}
}
