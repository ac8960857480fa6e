package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/chainfolio/price-indexer/internal/engine"
	"github.com/chainfolio/price-indexer/internal/logger"
)

// runTimeout bounds one full refresh run across every chain
const runTimeout = 10 * time.Minute

// Scheduler triggers the full price refresh on a fixed cron schedule
type Scheduler struct {
	engine   engine.Engine
	cronSpec string
	cron     *cron.Cron
}

// New creates a scheduler that runs the engine's full refresh on cronSpec
func New(eng engine.Engine, cronSpec string) *Scheduler {
	return &Scheduler{
		engine:   eng,
		cronSpec: cronSpec,
	}
}

// Start registers the refresh job and starts the cron loop. The first refresh
// runs immediately so a fresh deployment serves prices before the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	s.cron = cron.New(cron.WithChain(cron.Recover(cronLogger{})))

	if _, err := s.cron.AddFunc(s.cronSpec, func() {
		s.runOnce(ctx)
	}); err != nil {
		return err
	}

	s.runOnce(ctx)
	s.cron.Start()

	logger.Info("Refresh scheduler started", zap.String("cron_spec", s.cronSpec))
	return nil
}

// Stop stops the cron loop and waits for a running refresh to finish
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	logger.Info("Refresh scheduler stopped")
}

// runOnce executes one bounded full refresh and logs its outcome
func (s *Scheduler) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	start := time.Now()
	report := s.engine.RefreshAll(runCtx)

	failed := make([]string, 0, len(report.Failed))
	for chainID := range report.Failed {
		failed = append(failed, string(chainID))
	}

	logger.InfoCtx(runCtx, "Refresh run complete",
		zap.Int("succeeded", len(report.Succeeded)),
		zap.Strings("failed", failed),
		zap.Duration("duration", time.Since(start)))
}

// cronLogger adapts the global zap logger to the cron logging interface
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug(msg, zap.Any("details", keysAndValues))
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error(err, zap.String("message", msg), zap.Any("details", keysAndValues))
}
