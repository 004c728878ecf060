package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ytinsight/insight-client/internal/config"
	"github.com/ytinsight/insight-client/internal/dashboard"
	"github.com/ytinsight/insight-client/internal/router"
	"github.com/ytinsight/insight-client/internal/session"
	"github.com/ytinsight/insight-client/internal/storage"
)

type fakeBackend struct {
	polls     int32
	refreshes int32
	logouts   int32
}

func (b *fakeBackend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	authorized := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer T1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next(w, r)
		}
	}

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"token":"T1","user":{"id":1,"username":"a","email":"a@b.com","role":"ADMIN"}}`)
	})
	mux.HandleFunc("/api/auth/logout", authorized(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&b.logouts, 1)
		w.WriteHeader(http.StatusNoContent)
	}))
	mux.HandleFunc("/api/youtube/analyze", authorized(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		fmt.Fprint(w, `{"jobId":42,"status":"PENDING","progress":0,"createdAt":"2024-05-01T09:00:00"}`)
	}))
	mux.HandleFunc("/api/youtube/analyze/42", authorized(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&b.polls, 1) {
		case 1:
			fmt.Fprint(w, `{"jobId":42,"status":"RUNNING","progress":50}`)
		default:
			fmt.Fprint(w, `{"jobId":42,"status":"SUCCESS","progress":100,"channelId":"UC9","finishedAt":"2024-05-01T09:01:00"}`)
		}
	}))
	mux.HandleFunc("/api/dashboard/metrics", authorized(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&b.refreshes, 1)
		assert.Equal(t, "UC9", r.URL.Query().Get("channelId"))
		fmt.Fprint(w, `{"youtubeChannelId":"UC9","totalViews":5000,"totalLikes":300}`)
	}))
	mux.HandleFunc("/api/dashboard/trends", authorized(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"youtubeChannelId":"UC9","points":[{"date":"2024-05-01","views":10,"likes":1,"comments":0}]}`)
	}))
	mux.HandleFunc("/api/dashboard/top-videos", authorized(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		fmt.Fprint(w, `[{"id":1,"videoId":"v1","title":"First","viewCount":900}]`)
	}))
	mux.HandleFunc("/api/dashboard/sentiment", authorized(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"totalComments":3,"positiveCount":2,"negativeCount":1,"neutralCount":0}`)
	}))
	return mux
}

func newTestApp(t *testing.T, backend *fakeBackend) (*App, *storage.MemoryStorage) {
	t.Helper()
	server := httptest.NewServer(backend.handler(t))
	t.Cleanup(server.Close)

	cfg := &config.Config{
		APIBaseURL:     server.URL + "/api",
		RequestTimeout: 5 * time.Second,
		PollInterval:   5 * time.Millisecond,
	}
	store := storage.NewMemoryStorage()
	a := New(cfg, store, nil)
	t.Cleanup(a.Close)
	return a, store
}

func TestApp_AnalyzeFlowEndToEnd(t *testing.T) {
	backend := &fakeBackend{}
	a, _ := newTestApp(t, backend)
	ctx := context.Background()

	require.NoError(t, a.Start(ctx))
	assert.Equal(t, router.Redirect, a.Gate.Resolve("/dashboard").Outcome)

	_, err := a.Session.Login(ctx, "a@b.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, router.Render, a.Gate.Resolve("/admin/users").Outcome)

	screen := a.NewScreen()
	defer screen.Close()

	require.NoError(t, screen.Analyze(ctx, "https://youtube.com/@nine"))

	waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	state, err := screen.Wait(waitCtx)
	require.NoError(t, err)

	assert.Equal(t, dashboard.Succeeded, state.Phase)
	assert.Equal(t, "UC9", state.ChannelID)
	assert.Equal(t, int32(2), atomic.LoadInt32(&backend.polls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&backend.refreshes))

	snap := screen.Snapshot()
	require.NotNil(t, snap.Metrics)
	assert.Equal(t, int64(5000), snap.Metrics.TotalViews)
	require.NotNil(t, snap.Trend)
	assert.Len(t, snap.Trend.Points, 1)
	assert.Len(t, snap.TopVideos, 1)
	require.NotNil(t, snap.Sentiment)
	assert.Equal(t, int64(2), snap.Sentiment.PositiveCount)
}

func TestApp_LogoutClearsPersistedSession(t *testing.T) {
	backend := &fakeBackend{}
	a, store := newTestApp(t, backend)
	ctx := context.Background()

	require.NoError(t, a.Start(ctx))
	_, err := a.Session.Login(ctx, "a@b.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, a.Logout(ctx))

	assert.Equal(t, int32(1), atomic.LoadInt32(&backend.logouts))
	_, err = store.Retrieve(ctx, session.KeyToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, session.Unauthenticated, a.Session.Snapshot().State)
}

func TestNewStorage(t *testing.T) {
	store, err := NewStorage(context.Background(), &config.Config{StorageBackend: "file", StateDir: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, store.Store(context.Background(), session.KeyToken, []byte("T1")))

	_, err = NewStorage(context.Background(), &config.Config{StorageBackend: "s3"})
	assert.Error(t, err)
}
