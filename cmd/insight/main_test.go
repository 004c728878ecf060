package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ytinsight/insight-client/internal/models"
	"github.com/ytinsight/insight-client/internal/viewstate"
)

type backend struct {
	mu         sync.Mutex
	role       string
	pages      []string
	logoutHits int
}

func (b *backend) handler() http.Handler {
	mux := http.NewServeMux()
	user := func() string {
		return fmt.Sprintf(`{"id":1,"username":"a","email":"a@b.com","role":%q,"createdAt":"2024-01-02T03:04:05"}`, b.role)
	}
	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer T1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next(w, r)
		}
	}

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"token":"T1","user":%s}`, user())
	})
	mux.HandleFunc("/api/auth/me", authed(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, user())
	}))
	mux.HandleFunc("/api/auth/logout", authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.logoutHits++
		b.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	mux.HandleFunc("/api/comments/sentiment", authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.pages = append(b.pages, r.URL.Query().Get("page"))
		b.mu.Unlock()
		fmt.Fprint(w, `{"content":[{"id":1,"authorName":"viewer","content":"great video","sentiment":"positive","emotion":"happy","likeCount":3}],"totalPages":2,"totalElements":21}`)
	}))
	mux.HandleFunc("/api/admin/users", authed(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"content":[{"id":1,"username":"a","email":"a@b.com","role":"ADMIN"}],"totalPages":1,"totalElements":1}`)
	}))
	return mux
}

func setup(t *testing.T, role string) *backend {
	t.Helper()
	b := &backend{role: role}
	server := httptest.NewServer(b.handler())
	t.Cleanup(server.Close)

	t.Setenv("API_BASE_URL", server.URL+"/api")
	t.Setenv("STATE_DIR", t.TempDir())
	t.Setenv("STORAGE_BACKEND", "file")
	t.Setenv("NOTIFICATION_EMAIL", "")
	t.Setenv("INSIGHT_EMAIL", "")
	t.Setenv("INSIGHT_PASSWORD", "")
	return b
}

func runCLI(args ...string) (int, string, string) {
	var out, errOut bytes.Buffer
	code := run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestCLI_ProtectedCommandRequiresLogin(t *testing.T) {
	setup(t, "USER")

	code, _, errOut := runCLI("whoami")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "not signed in")
}

func TestCLI_LoginValidatesBeforeRequest(t *testing.T) {
	setup(t, "USER")

	code, _, errOut := runCLI("login", "-email", "not-an-email", "-password", "x")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "email: invalid email address")
}

func TestCLI_SessionPersistsAcrossInvocations(t *testing.T) {
	b := setup(t, "USER")

	code, out, errOut := runCLI("login", "-email", "a@b.com", "-password", "secret1")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "Signed in as a (USER)\n", out)

	code, out, _ = runCLI("whoami")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "a@b.com")
	assert.Contains(t, out, "2024-01-02")

	code, _, errOut = runCLI("admin", "users")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "requires the ADMIN role")

	code, out, _ = runCLI("logout")
	require.Equal(t, 0, code)
	assert.Equal(t, "Signed out\n", out)
	assert.Equal(t, 1, b.logoutHits)

	code, _, _ = runCLI("whoami")
	assert.Equal(t, 1, code)
}

func TestCLI_AdminCommandForAdmin(t *testing.T) {
	setup(t, "ADMIN")

	code, _, errOut := runCLI("login", "-email", "a@b.com", "-password", "secret1")
	require.Equal(t, 0, code, errOut)

	code, out, errOut := runCLI("admin", "users")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "USERNAME")
	assert.Contains(t, out, "Page 1 of 1 (1 total)")
}

func TestCLI_CommentsClampsPastLastPage(t *testing.T) {
	b := setup(t, "USER")
	code, _, errOut := runCLI("login", "-email", "a@b.com", "-password", "secret1")
	require.Equal(t, 0, code, errOut)

	code, out, errOut := runCLI("comments", "UC1", "positive", "9")
	require.Equal(t, 0, code, errOut)

	assert.Equal(t, []string{"8", "1"}, b.pages, "page past the end is re-requested as the last page")
	assert.Contains(t, out, "great video")
	assert.Contains(t, out, "Page 2 of 2 (21 total)  prev: 1")
}

func TestCLI_UnknownCommand(t *testing.T) {
	code, _, errOut := runCLI("frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "Usage: insight")
}

func TestTrendSVG(t *testing.T) {
	trend := &models.DashboardTrend{Points: []models.TrendPoint{{Views: 0}, {Views: 10}}}
	svg := trendSVG(trend, 100, 50)

	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Contains(t, svg, `points="`+viewstate.Polyline([]int64{0, 10}, 100, 50)+`"`)

	path := filepath.Join(t.TempDir(), "trend.svg")
	require.NoError(t, os.WriteFile(path, []byte(svg), 0o644))
}
