package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// TokenSource supplies the bearer credential and is told which token the
// backend rejected
type TokenSource interface {
	Token() string
	Expire(token string)
}

// Options configures a Client
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 disables throttling
	Burst     int
	UserAgent string
}

// Multipart is a request body sent as multipart/form-data
type Multipart struct {
	Field       string
	FileName    string
	ContentType string
	Reader      io.Reader
	Fields      map[string]string
}

// Request describes one call against the backend
type Request struct {
	Method    string
	Endpoint  string // path relative to the base URL, query string included
	Body      interface{}
	Headers   map[string]string
	Anonymous bool // credential exchange endpoints; no token attached, 401 is an ordinary failure
}

// Client wraps resty with bearer auth, body serialization and error normalization
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter

	mu     sync.RWMutex
	tokens TokenSource
}

// New creates a Client for the backend at opts.BaseURL
func New(opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = "insight-client/1.0"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	c := &Client{
		http: resty.New().
			SetBaseURL(opts.BaseURL).
			SetTimeout(opts.Timeout).
			SetHeader("User-Agent", opts.UserAgent),
	}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return c
}

// SetTokenSource installs the session that owns the bearer token
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = tokens
}

func (c *Client) tokenSource() TokenSource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tokens
}

// Do performs req and decodes a non-empty JSON response body into out.
// out may be nil; 204 and empty bodies leave out untouched.
func (c *Client) Do(ctx context.Context, req Request, out interface{}) error {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	r := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString())

	tokens := c.tokenSource()
	token := ""
	if !req.Anonymous {
		if tokens != nil {
			token = tokens.Token()
		}
		if token == "" {
			return ErrAuthenticationRequired
		}
		r.SetAuthToken(token)
	}

	if err := setBody(r, req.Body); err != nil {
		return err
	}
	for k, v := range req.Headers {
		r.SetHeader(k, v)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("request to %s throttled: %w", req.Endpoint, err)
		}
	}

	resp, err := r.Execute(method, req.Endpoint)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, req.Endpoint, err)
	}

	status := resp.StatusCode()
	var body []byte
	if status != http.StatusNoContent {
		body = resp.Body()
	}

	if !resp.IsSuccess() {
		if status == http.StatusUnauthorized && !req.Anonymous {
			logrus.Warnf("Backend rejected bearer token on %s %s", method, req.Endpoint)
			if tokens != nil {
				tokens.Expire(token)
			}
			return ErrSessionExpired
		}

		message := errorMessage(body, status)
		logrus.WithFields(logrus.Fields{
			"status":   status,
			"method":   method,
			"endpoint": req.Endpoint,
			"body":     string(body),
		}).Error("API error")
		return &RequestFailedError{Status: status, Message: message, Method: method, Endpoint: req.Endpoint}
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", req.Endpoint, err)
	}
	return nil
}

func setBody(r *resty.Request, body interface{}) error {
	switch b := body.(type) {
	case nil:
		r.SetHeader("Content-Type", "application/json")
	case Multipart:
		return setBody(r, &b)
	case *Multipart:
		if b.Reader != nil {
			r.SetMultipartField(b.Field, b.FileName, b.ContentType, b.Reader)
		}
		if len(b.Fields) > 0 {
			r.SetMultipartFormData(b.Fields)
		}
	case string:
		r.SetHeader("Content-Type", "application/json")
		r.SetBody(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		r.SetHeader("Content-Type", "application/json")
		r.SetBody(data)
	}
	return nil
}

func errorMessage(body []byte, status int) string {
	if len(body) == 0 {
		return fallbackMessage(status)
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		logrus.Debugf("Non-JSON error body with status %d: %v", status, err)
		return fallbackMessage(status)
	}
	if payload.Message != "" {
		return payload.Message
	}
	if payload.Error != "" {
		return payload.Error
	}
	return fallbackMessage(status)
}
