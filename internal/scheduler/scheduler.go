package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/quackworks/duckfarm/internal/config"
	"github.com/quackworks/duckfarm/internal/service/reporting"
	"github.com/quackworks/duckfarm/internal/store"
)

// Scheduler manages the background jobs: autosaving dirty state and,
// when configured, the periodic spreadsheet export.
type Scheduler struct {
	cron         *cron.Cron
	store        *store.Store
	reportingSvc *reporting.Service
	cfg          config.SchedulerConfig
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. reportingSvc may be nil
// when no spreadsheet is configured.
func NewScheduler(cfg config.SchedulerConfig, st *store.Store, reportingSvc *reporting.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:         cron.New(),
		store:        st,
		reportingSvc: reportingSvc,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("autosave", s.cfg.AutosaveCron))

	if _, err := s.cron.AddFunc(s.cfg.AutosaveCron, s.autosave); err != nil {
		s.logger.Error("failed to schedule autosave", zap.Error(err))
	}

	if s.reportingSvc != nil && s.cfg.ExportCron != "" {
		if _, err := s.cron.AddFunc(s.cfg.ExportCron, s.exportReports); err != nil {
			s.logger.Error("failed to schedule report export", zap.Error(err))
		} else {
			s.logger.Info("report export scheduled", zap.String("cron", s.cfg.ExportCron))
		}
	}

	s.cron.Start()
}

// Stop stops the cron loop.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

// autosave persists state only when there are unsaved changes, so an idle
// dashboard does not rewrite an identical snapshot.
func (s *Scheduler) autosave() {
	if !s.store.IsDirty() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.store.SaveState(ctx); err != nil {
		s.logger.Error("autosave failed", zap.Error(err))
		return
	}
	s.logger.Debug("autosave completed")
}

func (s *Scheduler) exportReports() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.reportingSvc.ExportAll(ctx); err != nil {
		s.logger.Error("scheduled report export failed", zap.Error(err))
		return
	}
	s.logger.Info("scheduled report export completed")
}
