package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ytinsight/insight-client/internal/models"
	"github.com/ytinsight/insight-client/internal/storage"
)

// MockWatcher is a mock implementation of the watch service
type MockWatcher struct {
	mock.Mock
}

func (m *MockWatcher) RunWatch() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockWatcher) Running() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockWatcher) GetMetrics() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockWatcher) LatestSnapshot(ctx context.Context, channelID string) (*models.DashboardSnapshot, error) {
	args := m.Called(channelID)
	snap, _ := args.Get(0).(*models.DashboardSnapshot)
	return snap, args.Error(1)
}

type fixedNext string

func (f fixedNext) Next() string { return string(f) }

func TestRouter_Health(t *testing.T) {
	router := newRouter(&MockWatcher{}, fixedNext("2024-05-01T12:00:00Z"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "2024-05-01T12:00:00Z", body["next_run"])
}

func TestRouter_Metrics(t *testing.T) {
	w := &MockWatcher{}
	w.On("GetMetrics").Return(`{"runs": 2}`)

	rec := httptest.NewRecorder()
	newRouter(w, fixedNext("")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"runs": 2}`, rec.Body.String())
}

func TestRouter_TriggerRunsAsynchronously(t *testing.T) {
	w := &MockWatcher{}
	done := make(chan struct{})
	w.On("Running").Return(false)
	w.On("RunWatch").Run(func(mock.Arguments) { close(done) }).Return(nil).Once()

	rec := httptest.NewRecorder()
	newRouter(w, fixedNext("")).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/trigger", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watch run was not triggered")
	}

	rec = httptest.NewRecorder()
	newRouter(w, fixedNext("")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trigger", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_TriggerWhileRunningConflicts(t *testing.T) {
	w := &MockWatcher{}
	w.On("Running").Return(true)

	rec := httptest.NewRecorder()
	newRouter(w, fixedNext("")).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/trigger", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already in progress")
	w.AssertNotCalled(t, "RunWatch")
}

func TestRouter_Snapshots(t *testing.T) {
	w := &MockWatcher{}
	w.On("LatestSnapshot", "UC1").Return(&models.DashboardSnapshot{ChannelID: "UC1"}, nil)
	w.On("LatestSnapshot", "UC2").Return(nil, storage.ErrNotFound)
	router := newRouter(w, fixedNext(""))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/snapshots/UC1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"channelId":"UC1"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/snapshots/UC2", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
