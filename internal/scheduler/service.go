package scheduler

import (
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/ytinsight/insight-client/internal/config"
	"github.com/ytinsight/insight-client/internal/monitoring"
)

// Runner performs one watch run
type Runner interface {
	RunWatch() error
}

// Ensure the watcher service can be scheduled
var _ Runner = (*monitoring.Service)(nil)

// Service handles scheduling of watch runs
type Service struct {
	config *config.Config
	runner Runner
	cron   *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, runner Runner) *Service {
	return &Service{
		config: cfg,
		runner: runner,
		cron:   cron.New(cron.WithSeconds()),
	}
}

// Start begins the scheduled watch runs
func (s *Service) Start() error {
	_, err := s.cron.AddFunc(s.config.WatchSchedule, s.run)
	if err != nil {
		return fmt.Errorf("invalid watch schedule %q: %w", s.config.WatchSchedule, err)
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with schedule %q for %d URLs", s.config.WatchSchedule, len(s.config.WatchURLs))
	return nil
}

func (s *Service) run() {
	logrus.Info("Starting scheduled watch run")
	if err := s.runner.RunWatch(); err != nil {
		if errors.Is(err, monitoring.ErrRunInProgress) {
			logrus.Warn("Skipping scheduled run, previous run still active")
			return
		}
		logrus.Errorf("Scheduled watch run failed: %v", err)
	}
}

// Next returns when the next run is due, or an empty string before Start
func (s *Service) Next() string {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return ""
	}
	return entries[0].Next.UTC().Format("2006-01-02T15:04:05Z")
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Service) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
		logrus.Info("Scheduler stopped")
	}
}
