package sessionsweep

import (
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Worker по расписанию удаляет истекшие сессии пользователей.
type Worker struct {
	sweeper  Sweeper
	schedule string
	logger   *slog.Logger
	cron     *cron.Cron
}

func NewWorker(sweeper Sweeper, schedule string, logger *slog.Logger) *Worker {
	return &Worker{
		sweeper:  sweeper,
		schedule: schedule,
		logger:   logger,
		cron:     cron.New(cron.WithChain(cron.Recover(cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))))),
	}
}

func (w *Worker) Name() string {
	return "session-sweep"
}

func (w *Worker) Start() error {
	if _, err := w.cron.AddFunc(w.schedule, w.RunOnce); err != nil {
		return fmt.Errorf("failed to add session sweep job: %w", err)
	}
	w.cron.Start()

	w.logger.Info("Session sweep worker started", "schedule", w.schedule)
	return nil
}

func (w *Worker) Stop() {
	<-w.cron.Stop().Done()
}

// RunOnce один проход очистки.
func (w *Worker) RunOnce() {
	removed := w.sweeper.Sweep()
	if removed > 0 {
		w.logger.Debug("Expired sessions removed", "removed", removed, "remaining", w.sweeper.Len())
	}
}
