package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/taskvault/backend/internal/infrastructure/audit"
)

// RetentionConfig controls how often old audit entries are pruned and how
// long they are kept.
type RetentionConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

// AuditRetention periodically prunes audit entries past the retention
// window. This is storage housekeeping, not domain work.
type AuditRetention struct {
	store  *audit.Store
	logger *zap.Logger
	cron   *cron.Cron
	cfg    RetentionConfig
}

func NewAuditRetention(store *audit.Store, logger *zap.Logger, cfg RetentionConfig) *AuditRetention {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 30 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ar := &AuditRetention{
		store:  store,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = ar.cron.AddFunc(schedule, func() {
		if err := ar.Sweep(); err != nil {
			ar.logger.Error("audit retention sweep failed", zap.Error(err))
		}
	})

	return ar
}

// Start launches the cron scheduler.
func (ar *AuditRetention) Start() {
	if ar == nil || ar.cron == nil {
		return
	}
	ar.cron.Start()
	ar.logger.Info("audit retention started", zap.Duration("retention", ar.cfg.Retention))
}

// Stop gracefully stops the scheduler.
func (ar *AuditRetention) Stop() {
	if ar == nil || ar.cron == nil {
		return
	}
	<-ar.cron.Stop().Done()
	ar.logger.Info("audit retention stopped")
}

// Sweep prunes entries older than the retention window.
func (ar *AuditRetention) Sweep() error {
	if ar == nil || ar.store == nil {
		return nil
	}
	return ar.store.Cleanup(time.Now().Add(-ar.cfg.Retention))
}
