package scheduler

import (
	"context"
	"sync"

	"github.com/filmlog/filmlog/internal/config"
	"github.com/filmlog/filmlog/internal/database"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler manages scheduled maintenance tasks
type Scheduler struct {
	cron   *cron.Cron
	cfg    *config.Config
	logger *zap.Logger
	mu     sync.Mutex
}

// New creates a new scheduler
func New(cfg *config.Config, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		cfg:    cfg,
		logger: logger,
	}
}

// Start registers the configured jobs and starts the cron loop
func (s *Scheduler) Start() error {
	if s.cfg.Scheduler.TagStatsEnabled {
		_, err := s.cron.AddFunc(s.cfg.Scheduler.TagStatsCron, func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			s.logger.Info("starting scheduled tag stats refresh")
			if err := s.refreshTagUsage(); err != nil {
				s.logger.Error("tag stats refresh failed", zap.Error(err))
				return
			}
			s.logger.Info("tag stats refresh completed")
		})
		if err != nil {
			return err
		}
		s.logger.Info("tag stats refresh task registered",
			zap.String("cron", s.cfg.Scheduler.TagStatsCron))
	} else {
		s.logger.Info("tag stats refresh task is disabled")
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// refreshTagUsage recomputes the denormalized usage_count column from the
// photo_tags associations. Tag listings sort and display by this count
// without paying for a join on every request.
func (s *Scheduler) refreshTagUsage() error {
	ctx := context.Background()
	pool := database.GetPool()

	if _, err := pool.Exec(ctx, `
		UPDATE tags SET usage_count = counted.cnt
		FROM (SELECT tag_id, COUNT(*) AS cnt FROM photo_tags GROUP BY tag_id) counted
		WHERE tags.id = counted.tag_id AND tags.usage_count <> counted.cnt
	`); err != nil {
		return err
	}

	_, err := pool.Exec(ctx, `
		UPDATE tags SET usage_count = 0
		WHERE usage_count <> 0
		  AND NOT EXISTS (SELECT 1 FROM photo_tags pt WHERE pt.tag_id = tags.id)
	`)
	return err
}
