package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokens struct {
	token    string
	expired  int32
	rejected string
}

func (f *fakeTokens) Token() string { return f.token }
func (f *fakeTokens) Expire(token string) {
	atomic.AddInt32(&f.expired, 1)
	f.rejected = token
	f.token = ""
}

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) (*Client, *fakeTokens) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(Options{BaseURL: server.URL})
	tokens := &fakeTokens{token: token}
	client.SetTokenSource(tokens)
	return client, tokens
}

func TestClient_Do_AttachesBearerAndDecodes(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer T1", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Equal(t, "/dashboard/metrics", r.URL.Path)
		assert.Equal(t, "UC1", r.URL.Query().Get("channelId"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"channelName":"Demo","totalViews":42}`))
	}, "T1")

	var out struct {
		ChannelName string `json:"channelName"`
		TotalViews  int64  `json:"totalViews"`
	}
	err := client.Do(context.Background(), Request{Endpoint: "/dashboard/metrics" + BuildQuery(P("channelId", "UC1"))}, &out)
	require.NoError(t, err)
	assert.Equal(t, "Demo", out.ChannelName)
	assert.Equal(t, int64(42), out.TotalViews)
}

func TestClient_Do_NoTokenFailsWithoutDispatch(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}, "")

	err := client.Do(context.Background(), Request{Endpoint: "/auth/me"}, nil)
	assert.ErrorIs(t, err, ErrAuthenticationRequired)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestClient_Do_AnonymousSkipsToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"token":"T1"}`))
	}, "")

	var out struct {
		Token string `json:"token"`
	}
	err := client.Do(context.Background(), Request{Method: http.MethodPost, Endpoint: "/auth/login", Anonymous: true, Body: map[string]string{"email": "a@b.com"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "T1", out.Token)
}

func TestClient_Do_UnauthorizedExpiresSession(t *testing.T) {
	client, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"expired"}`))
	}, "T1")

	err := client.Do(context.Background(), Request{Endpoint: "/auth/me"}, nil)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, int32(1), atomic.LoadInt32(&tokens.expired))
	assert.Equal(t, "T1", tokens.rejected, "the token sent with the request is the one reported")
}

func TestClient_Do_AnonymousUnauthorizedIsOrdinaryFailure(t *testing.T) {
	client, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid email or password"}`))
	}, "")

	err := client.Do(context.Background(), Request{Method: http.MethodPost, Endpoint: "/auth/login", Anonymous: true}, nil)
	var rf *RequestFailedError
	require.True(t, errors.As(err, &rf))
	assert.Equal(t, "Invalid email or password", rf.Message)
	assert.Equal(t, int32(0), atomic.LoadInt32(&tokens.expired))
}

func TestClient_Do_ErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{name: "Message field", status: 400, body: `{"message":"URL is invalid"}`, expected: "URL is invalid"},
		{name: "Error field", status: 500, body: `{"error":"Internal Server Error"}`, expected: "Internal Server Error"},
		{name: "Message wins over error", status: 409, body: `{"message":"taken","error":"Conflict"}`, expected: "taken"},
		{name: "Non-JSON body", status: 502, body: `<html>bad gateway</html>`, expected: "request failed with status 502"},
		{name: "Empty body", status: 404, body: ``, expected: "request failed with status 404"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, "T1")

			err := client.Do(context.Background(), Request{Endpoint: "/x"}, nil)
			var rf *RequestFailedError
			require.True(t, errors.As(err, &rf))
			assert.Equal(t, tt.status, rf.Status)
			assert.Equal(t, tt.expected, rf.Error())
			assert.Equal(t, tt.status, StatusCode(err))
		})
	}
}

func TestClient_Do_NoContentLeavesOutUntouched(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, "T1")

	out := map[string]string{"kept": "yes"}
	err := client.Do(context.Background(), Request{Method: http.MethodDelete, Endpoint: "/admin/users/1"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "yes", out["kept"])
}

func TestClient_Do_JSONBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "https://youtube.com/@demo", body["url"])
		w.Write([]byte(`{"jobId":7,"status":"PENDING"}`))
	}, "T1")

	var out map[string]interface{}
	err := client.Do(context.Background(), Request{Method: http.MethodPost, Endpoint: "/youtube/analyze", Body: map[string]string{"url": "https://youtube.com/@demo"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", out["status"])
}

func TestClient_Do_MultipartBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
		file, header, err := r.FormFile("avatar")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "me.png", header.Filename)
		assert.Equal(t, "PNGDATA", string(data))
		w.Write([]byte(`{"avatarUrl":"/a.png"}`))
	}, "T1")

	body := &Multipart{Field: "avatar", FileName: "me.png", ContentType: "image/png", Reader: strings.NewReader("PNGDATA")}
	err := client.Do(context.Background(), Request{Method: http.MethodPost, Endpoint: "/user/avatar", Body: body}, nil)
	require.NoError(t, err)
}

func TestClient_Do_MalformedSuccessBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}, "T1")

	var out map[string]interface{}
	err := client.Do(context.Background(), Request{Endpoint: "/auth/me"}, &out)
	assert.Error(t, err)
}
