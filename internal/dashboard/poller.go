package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/ytinsight/insight-client/internal/models"
)

// PollFunc fetches the current status of one job
type PollFunc func(ctx context.Context) (*models.AnalysisJob, error)

// Handler receives every poll result; returning false stops the poller
type Handler func(job *models.AnalysisJob, err error) bool

// Poller queries a job on a fixed interval until its handler says stop or it
// is cancelled. A Poller runs at most once.
type Poller struct {
	interval time.Duration
	poll     PollFunc

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewPoller(interval time.Duration, poll PollFunc) *Poller {
	return &Poller{
		interval: interval,
		poll:     poll,
		done:     make(chan struct{}),
	}
}

// Start begins polling in the background. The first query happens one
// interval after Start.
func (p *Poller) Start(ctx context.Context, handle Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true

	ctx, p.cancel = context.WithCancel(ctx)
	go p.run(ctx, handle)
}

func (p *Poller) run(ctx context.Context, handle Handler) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		job, err := p.poll(ctx)
		if ctx.Err() != nil {
			return
		}
		if !handle(job, err) {
			return
		}
	}
}

// Cancel stops polling; results of an in-flight query are dropped
func (p *Poller) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		p.started = true
		close(p.done)
		return
	}
	p.cancel()
}

// Done is closed once the poller has stopped
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

// Alive reports whether the poller has not yet stopped
func (p *Poller) Alive() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}
