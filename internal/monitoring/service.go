// Package monitoring re-analyzes the watched channels, exports their refreshed
// dashboards and reports the outcome of every job.
package monitoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ytinsight/insight-client/internal/config"
	"github.com/ytinsight/insight-client/internal/dashboard"
	"github.com/ytinsight/insight-client/internal/models"
	"github.com/ytinsight/insight-client/internal/notifications"
	"github.com/ytinsight/insight-client/internal/storage"
)

// SnapshotPrefix is where refreshed dashboards are exported
const SnapshotPrefix = "snapshots/"

// ErrRunInProgress is returned when a run is triggered while another is active
var ErrRunInProgress = errors.New("a watch run is already in progress")

// Analyzer drives one analysis job the way a dashboard screen does
type Analyzer interface {
	Analyze(ctx context.Context, url string) error
	State() dashboard.State
	Wait(ctx context.Context) (dashboard.State, error)
	Snapshot() models.DashboardSnapshot
	Close()
}

// Ensure the dashboard screen can be driven by the watcher
var _ Analyzer = (*dashboard.Screen)(nil)

// ScreenFactory opens a fresh screen; every watched URL gets its own
type ScreenFactory func() Analyzer

// SessionGuard makes sure the watcher is signed in before a run
type SessionGuard func(ctx context.Context) error

// Service handles scheduled re-analysis of watched channels
type Service struct {
	config              *config.Config
	storage             storage.StorageInterface
	notificationService notifications.NotificationInterface
	newScreen           ScreenFactory
	ensureSession       SessionGuard
	metrics             *Metrics
	mu                  sync.RWMutex
	running             sync.Mutex
	active              atomic.Bool
	now                 func() time.Time
}

// Metrics holds watcher metrics
type Metrics struct {
	Runs            int               `json:"runs"`
	Successes       int               `json:"successes"`
	Failures        int               `json:"failures"`
	LastRun         time.Time         `json:"last_run"`
	LastRunDuration string            `json:"last_run_duration"`
	Channels        map[string]string `json:"channels"`
}

// NewService creates a new watcher service
func NewService(cfg *config.Config, storage storage.StorageInterface, notificationService notifications.NotificationInterface, newScreen ScreenFactory, ensureSession SessionGuard) *Service {
	return &Service{
		config:              cfg,
		storage:             storage,
		notificationService: notificationService,
		newScreen:           newScreen,
		ensureSession:       ensureSession,
		metrics: &Metrics{
			Channels: make(map[string]string),
		},
		now: time.Now,
	}
}

// Running reports whether a watch run is active
func (s *Service) Running() bool {
	return s.active.Load()
}

// RunWatch submits every watched URL, waits for the jobs to finish, exports
// the refreshed dashboards and sends a report
func (s *Service) RunWatch() error {
	if !s.running.TryLock() {
		return ErrRunInProgress
	}
	defer s.running.Unlock()
	s.active.Store(true)
	defer s.active.Store(false)

	start := time.Now()
	urls := s.config.WatchURLs
	if len(urls) == 0 {
		logrus.Info("No watch URLs configured, skipping run")
		return nil
	}
	logrus.Infof("Starting watch run over %d URLs", len(urls))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if s.ensureSession != nil {
		if err := s.ensureSession(ctx); err != nil {
			s.recordRun(nil, time.Since(start))
			alert := &models.Alert{
				Type:      "session",
				Title:     "Channel watcher could not sign in",
				Message:   err.Error(),
				CreatedAt: s.now(),
			}
			if alertErr := s.notificationService.SendAlert(alert); alertErr != nil {
				logrus.Errorf("Failed to send session alert: %v", alertErr)
			}
			return fmt.Errorf("failed to establish session: %w", err)
		}
	}

	outcomes := make([]models.WatchOutcome, len(urls))
	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			outcomes[i] = s.analyze(ctx, url)
		}(i, url)
	}
	wg.Wait()

	report := s.generateReport(outcomes)
	s.recordRun(outcomes, time.Since(start))

	if err := s.notificationService.SendReport(report); err != nil {
		logrus.Errorf("Failed to send report: %v", err)
		return err
	}

	logrus.Infof("Watch run completed in %v: %d succeeded, %d failed", time.Since(start), report.Succeeded, report.Failed)
	return nil
}

func (s *Service) analyze(ctx context.Context, url string) (outcome models.WatchOutcome) {
	start := time.Now()
	outcome = models.WatchOutcome{URL: url, Status: models.JobPending}
	defer func() { outcome.Duration = time.Since(start).Round(time.Millisecond).String() }()

	screen := s.newScreen()
	defer screen.Close()

	if err := screen.Analyze(ctx, url); err != nil {
		logrus.Errorf("Failed to submit %s: %v", url, err)
		outcome.Status = models.JobFailed
		outcome.Error = err.Error()
		return outcome
	}
	outcome.JobID = screen.State().JobID

	state, err := screen.Wait(ctx)
	if err != nil {
		var jobErr *dashboard.JobFailedError
		if errors.As(err, &jobErr) {
			outcome.JobID = jobErr.JobID
		}
		logrus.Errorf("Analysis of %s failed: %v", url, err)
		outcome.Status = models.JobFailed
		outcome.Error = err.Error()
		return outcome
	}

	outcome.Status = models.JobSuccess
	outcome.ChannelID = state.ChannelID

	snapshot := screen.Snapshot()
	if snapshot.Metrics == nil {
		outcome.Error = "dashboard refresh returned no metrics"
		return outcome
	}
	outcome.TotalViews = snapshot.Metrics.TotalViews
	outcome.TotalLikes = snapshot.Metrics.TotalLikes

	path, err := s.storeSnapshot(ctx, snapshot)
	if err != nil {
		logrus.Errorf("Failed to store snapshot for %s: %v", url, err)
		outcome.Error = err.Error()
		return outcome
	}
	outcome.SnapshotPath = path

	logrus.Infof("Refreshed %s (channel %s), snapshot %s", url, outcome.ChannelID, path)
	return outcome
}

func snapshotName(channelID string, at time.Time) string {
	if channelID == "" {
		channelID = "unknown"
	}
	return fmt.Sprintf("%s%s-%s.json", SnapshotPrefix, channelID, at.UTC().Format("20060102T150405Z"))
}

func (s *Service) storeSnapshot(ctx context.Context, snapshot models.DashboardSnapshot) (string, error) {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	name := snapshotName(snapshot.ChannelID, s.now())
	if err := s.storage.Store(ctx, name, data); err != nil {
		return "", fmt.Errorf("failed to store snapshot: %w", err)
	}
	return name, nil
}

// LatestSnapshot returns the most recently exported dashboard of a channel
func (s *Service) LatestSnapshot(ctx context.Context, channelID string) (*models.DashboardSnapshot, error) {
	names, err := s.storage.List(ctx, SnapshotPrefix+channelID+"-")
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	if len(names) == 0 {
		return nil, storage.ErrNotFound
	}

	// timestamps sort lexically
	sort.Strings(names)
	data, err := s.storage.Retrieve(ctx, names[len(names)-1])
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve snapshot: %w", err)
	}

	var snapshot models.DashboardSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snapshot, nil
}

func (s *Service) generateReport(outcomes []models.WatchOutcome) *models.WatchReport {
	report := &models.WatchReport{
		GeneratedAt: s.now(),
		Schedule:    s.config.WatchSchedule,
		Outcomes:    outcomes,
	}
	for _, outcome := range outcomes {
		if outcome.Succeeded() {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}
	return report
}

func (s *Service) recordRun(outcomes []models.WatchOutcome, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.Runs++
	s.metrics.LastRun = s.now()
	s.metrics.LastRunDuration = duration.String()
	if outcomes == nil {
		s.metrics.Failures++
		return
	}

	for _, outcome := range outcomes {
		status := string(outcome.Status)
		if outcome.Succeeded() {
			s.metrics.Successes++
		} else {
			s.metrics.Failures++
			if outcome.Error != "" {
				status += ": " + strings.TrimSpace(outcome.Error)
			}
		}
		s.metrics.Channels[outcome.URL] = status
	}
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}
