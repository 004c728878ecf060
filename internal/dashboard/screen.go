// Package dashboard drives the analyze-and-refresh flow of the dashboard
// screen: submitting a URL, polling the resulting job, and re-fetching the
// channel's metrics once the job succeeds.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ytinsight/insight-client/internal/apiclient"
	"github.com/ytinsight/insight-client/internal/forms"
	"github.com/ytinsight/insight-client/internal/models"
	"github.com/ytinsight/insight-client/internal/viewstate"
)

// DefaultPollInterval is how often a running job is queried
const DefaultPollInterval = 3 * time.Second

// maxPollFailures is how many consecutive transport errors end a job
const maxPollFailures = 3

var (
	// ErrJobInProgress is returned when a submit arrives while a job is still running
	ErrJobInProgress = errors.New("an analysis job is already in progress")
	// ErrClosed is returned after the screen has been torn down
	ErrClosed = errors.New("dashboard screen closed")
)

// JobFailedError carries the backend's message for a FAILED job verbatim
type JobFailedError struct {
	JobID   int64
	Message string
}

func (e *JobFailedError) Error() string {
	return e.Message
}

// latch is closed once, by whichever of completion or teardown comes first
type latch struct {
	once sync.Once
	ch   chan struct{}
}

func newLatch() *latch {
	return &latch{ch: make(chan struct{})}
}

func (l *latch) release() {
	l.once.Do(func() { close(l.ch) })
}

// Phase of the analyze flow
type Phase int

const (
	Idle Phase = iota
	Submitting
	Polling
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Submitting:
		return "submitting"
	case Polling:
		return "polling"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// JobAPI creates analysis jobs and reports their status
type JobAPI interface {
	Analyze(ctx context.Context, url string) (*models.AnalysisJob, error)
	JobStatus(ctx context.Context, jobID int64) (*models.AnalysisJob, error)
}

// DataAPI serves the dashboard's read-only analytics
type DataAPI interface {
	Metrics(ctx context.Context, channelID string) (*models.DashboardMetrics, error)
	Trends(ctx context.Context, channelID string, start, end time.Time) (*models.DashboardTrend, error)
	TopVideos(ctx context.Context, channelID string, limit int) ([]models.TopVideo, error)
	Sentiment(ctx context.Context, channelID string) (*models.SentimentSummary, error)
}

// State is a consistent view of the analyze flow
type State struct {
	Phase     Phase
	Input     string
	JobID     int64
	Status    models.JobStatus
	Progress  *int
	Message   string
	ChannelID string
	Err       error
}

// Option configures a Screen
type Option func(*Screen)

// WithPollInterval overrides DefaultPollInterval
func WithPollInterval(d time.Duration) Option {
	return func(s *Screen) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithTopVideos sets how many top videos are fetched
func WithTopVideos(limit int) Option {
	return func(s *Screen) {
		s.topVideos = limit
	}
}

// OnChange registers a callback for every state change
func OnChange(fn func(State)) Option {
	return func(s *Screen) {
		s.onChange = fn
	}
}

// Screen is one instance of the dashboard. It allows a single job at a time.
type Screen struct {
	jobs      JobAPI
	data      DataAPI
	interval  time.Duration
	topVideos int
	onChange  func(State)

	Metrics   viewstate.Slice[*models.DashboardMetrics]
	Trends    viewstate.Slice[*models.DashboardTrend]
	TopVideos viewstate.Slice[[]models.TopVideo]
	Sentiment viewstate.Slice[*models.SentimentSummary]

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	state    State
	poller   *Poller
	failures int
	settled  *latch
	closed   bool
	wg       sync.WaitGroup
}

func NewScreen(jobs JobAPI, data DataAPI, opts ...Option) *Screen {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Screen{
		jobs:      jobs,
		data:      data,
		interval:  DefaultPollInterval,
		topVideos: 5,
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current analyze-flow state
func (s *Screen) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetInput updates the URL field
func (s *Screen) SetInput(value string) {
	s.update(func(st *State) { st.Input = value })
}

// update applies fn under the lock and notifies after unlocking
func (s *Screen) update(fn func(st *State)) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	fn(&s.state)
	s.notifyLocked()()
}

// notifyLocked unlocks mu and returns the notification to run afterwards
func (s *Screen) notifyLocked() func() {
	snap := s.state
	s.mu.Unlock()
	return func() {
		if s.onChange != nil {
			s.onChange(snap)
		}
	}
}

// Analyze sets the URL field and submits it
func (s *Screen) Analyze(ctx context.Context, url string) error {
	s.SetInput(url)
	return s.Submit(ctx)
}

// Submit creates a job for the URL in the input field and starts polling
// it. A blank URL is rejected without a request and without touching state.
func (s *Screen) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	url, err := forms.AnalyzeURL(s.state.Input)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if s.state.Phase == Submitting || s.state.Phase == Polling {
		s.mu.Unlock()
		return ErrJobInProgress
	}

	s.state = State{Phase: Submitting}
	s.failures = 0
	settled := newLatch()
	s.settled = settled
	s.notifyLocked()()

	logrus.Infof("Submitting %s for analysis", url)
	job, err := s.jobs.Analyze(ctx, url)

	s.mu.Lock()
	if s.closed || s.settled != settled {
		s.mu.Unlock()
		return ErrClosed
	}
	if err != nil {
		s.state.Phase = Failed
		s.state.Err = err
		settled.release()
		s.notifyLocked()()
		return fmt.Errorf("failed to submit analysis: %w", err)
	}

	s.state.Phase = Polling
	s.applyJobLocked(job)
	if job.Status.IsTerminal() {
		// Some backends finish instantly for cached channels
		s.mu.Unlock()
		s.handlePoll(nil, job, nil)
		return nil
	}

	poller := NewPoller(s.interval, func(ctx context.Context) (*models.AnalysisJob, error) {
		return s.jobs.JobStatus(ctx, job.JobID)
	})
	s.poller = poller
	s.notifyLocked()()

	logrus.Infof("Analysis job %d created, polling every %v", job.JobID, s.interval)
	poller.Start(s.ctx, func(polled *models.AnalysisJob, err error) bool {
		return s.handlePoll(poller, polled, err)
	})
	return nil
}

func (s *Screen) applyJobLocked(job *models.AnalysisJob) {
	s.state.JobID = job.JobID
	s.state.Status = job.Status
	if job.Progress != nil {
		p := *job.Progress
		s.state.Progress = &p
	}
	if job.Message != "" {
		s.state.Message = job.Message
	}
	if job.ChannelID != "" {
		s.state.ChannelID = job.ChannelID
	}
}

// handlePoll applies one poll result and reports whether polling continues.
// Results from a poller that is no longer the screen's current one are dropped.
func (s *Screen) handlePoll(poller *Poller, job *models.AnalysisJob, err error) bool {
	s.mu.Lock()
	if s.closed || s.poller != poller || s.state.Phase != Polling {
		s.mu.Unlock()
		return false
	}

	if err != nil {
		s.failures++
		authErr := errors.Is(err, apiclient.ErrSessionExpired) || errors.Is(err, apiclient.ErrAuthenticationRequired)
		if !authErr && s.failures < maxPollFailures {
			jobID, failures := s.state.JobID, s.failures
			s.mu.Unlock()
			logrus.Warnf("Polling job %d failed (%d/%d): %v", jobID, failures, maxPollFailures, err)
			return true
		}
		s.finishLocked(Failed, err)
		return false
	}
	s.failures = 0
	s.applyJobLocked(job)

	switch job.Status {
	case models.JobSuccess:
		channelID := s.state.ChannelID
		s.poller = nil
		s.state = State{Phase: Succeeded, ChannelID: channelID, Status: job.Status}
		settled := s.settled
		s.wg.Add(1)
		s.notifyLocked()()

		logrus.Infof("Analysis job %d succeeded, refreshing channel %s", job.JobID, channelID)
		go func() {
			defer s.wg.Done()
			defer settled.release()
			if err := s.Load(s.ctx, channelID); err != nil {
				logrus.Errorf("Failed to refresh dashboard for %s: %v", channelID, err)
			}
		}()
		return false

	case models.JobFailed:
		message := job.Error
		if message == "" {
			message = "analysis failed"
		}
		logrus.Warnf("Analysis job %d failed: %s", job.JobID, message)
		s.finishLocked(Failed, &JobFailedError{JobID: job.JobID, Message: message})
		return false

	default:
		s.notifyLocked()()
		return true
	}
}

// finishLocked ends the current job with err and unlocks mu
func (s *Screen) finishLocked(phase Phase, err error) {
	s.poller = nil
	s.state.Phase = phase
	s.state.Err = err
	if s.settled != nil {
		s.settled.release()
	}
	s.notifyLocked()()
}

// Wait blocks until the current job has settled, including the dashboard
// refresh after success, and returns the resulting state
func (s *Screen) Wait(ctx context.Context) (State, error) {
	s.mu.Lock()
	settled := s.settled
	s.mu.Unlock()

	if settled != nil {
		select {
		case <-settled.ch:
		case <-ctx.Done():
			return s.State(), ctx.Err()
		}
	}

	st := s.State()
	if st.Phase == Failed {
		return st, st.Err
	}
	return st, nil
}

// Load fetches metrics, trends, top videos and sentiment for a channel. An
// empty channelID asks the backend for the user's default channel.
func (s *Screen) Load(ctx context.Context, channelID string) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrClosed
	}

	var wg sync.WaitGroup
	errs := make([]error, 4)

	wg.Add(4)
	go func() {
		defer wg.Done()
		ticket := s.Metrics.Begin()
		metrics, err := s.data.Metrics(ctx, channelID)
		s.Metrics.Apply(ticket, metrics, err)
		errs[0] = err
	}()
	go func() {
		defer wg.Done()
		ticket := s.Trends.Begin()
		trend, err := s.data.Trends(ctx, channelID, time.Time{}, time.Time{})
		s.Trends.Apply(ticket, trend, err)
		errs[1] = err
	}()
	go func() {
		defer wg.Done()
		ticket := s.TopVideos.Begin()
		videos, err := s.data.TopVideos(ctx, channelID, s.topVideos)
		s.TopVideos.Apply(ticket, videos, err)
		errs[2] = err
	}()
	go func() {
		defer wg.Done()
		ticket := s.Sentiment.Begin()
		sentiment, err := s.data.Sentiment(ctx, channelID)
		s.Sentiment.Apply(ticket, sentiment, err)
		errs[3] = err
	}()
	wg.Wait()

	return errors.Join(errs...)
}

// Snapshot returns the dashboard data currently held by the screen
func (s *Screen) Snapshot() models.DashboardSnapshot {
	return models.DashboardSnapshot{
		ChannelID: s.State().ChannelID,
		Metrics:   s.Metrics.View().Data,
		Trend:     s.Trends.View().Data,
		TopVideos: s.TopVideos.View().Data,
		Sentiment: s.Sentiment.View().Data,
	}
}

// Close cancels polling and any in-flight refresh. Nothing is applied to
// the screen afterwards.
func (s *Screen) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	poller := s.poller
	s.poller = nil
	if s.settled != nil {
		s.settled.release()
	}
	s.mu.Unlock()

	s.cancel()
	if poller != nil {
		poller.Cancel()
		<-poller.Done()
	}
	s.wg.Wait()

	s.Metrics.Reset()
	s.Trends.Reset()
	s.TopVideos.Reset()
	s.Sentiment.Reset()
}
