package dashboard

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/ytinsight/insight-client/internal/models"
)

func TestPoller_StopsWhenHandlerDeclines(t *testing.T) {
	var polls int32
	p := NewPoller(time.Millisecond, func(ctx context.Context) (*models.AnalysisJob, error) {
		atomic.AddInt32(&polls, 1)
		return &models.AnalysisJob{Status: models.JobRunning}, nil
	})

	p.Start(context.Background(), func(job *models.AnalysisJob, err error) bool {
		return atomic.LoadInt32(&polls) < 3
	})

	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&polls))
	assert.False(t, p.Alive())
}

func TestPoller_CancelDropsInFlightResult(t *testing.T) {
	release := make(chan struct{})
	var handled int32
	p := NewPoller(time.Millisecond, func(ctx context.Context) (*models.AnalysisJob, error) {
		<-release
		return &models.AnalysisJob{Status: models.JobSuccess}, nil
	})
	p.Start(context.Background(), func(job *models.AnalysisJob, err error) bool {
		atomic.AddInt32(&handled, 1)
		return false
	})

	time.Sleep(5 * time.Millisecond)
	p.Cancel()
	close(release)
	<-p.Done()

	assert.Zero(t, atomic.LoadInt32(&handled))
}

func TestPoller_CancelBeforeStart(t *testing.T) {
	p := NewPoller(time.Millisecond, nil)
	p.Cancel()
	assert.False(t, p.Alive())

	// Start after Cancel is a no-op
	p.Start(context.Background(), func(*models.AnalysisJob, error) bool { return true })
	<-p.Done()
}
