// Package session holds the authenticated principal and its bearer token.
//
// A Session moves between Unknown (before Bootstrap), Verifying (persisted
// credentials restored, awaiting confirmation from the backend),
// Authenticated and Unauthenticated. Every transition bumps a generation
// counter; asynchronous results captured under an older generation are
// discarded, so a verification that resolves after Logout cannot restore the
// session.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ytinsight/insight-client/internal/apiclient"
	"github.com/ytinsight/insight-client/internal/models"
)

// State of the session state machine
type State int

const (
	Unknown State = iota
	Unauthenticated
	Verifying
	Authenticated
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Verifying:
		return "verifying"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// EntryPath is where the session navigates after logout
const EntryPath = "/login"

// ErrNotAuthenticated is returned by operations that need an authenticated session
var ErrNotAuthenticated = errors.New("not authenticated")

// Authenticator is the subset of the auth endpoints the session drives
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	GoogleLogin(ctx context.Context, providerToken string) (*models.AuthResponse, error)
	Me(ctx context.Context) (*models.User, error)
}

// Navigator moves the UI to another route
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Snapshot is an immutable view of the session
type Snapshot struct {
	State State
	User  *models.User
}

// Loading reports whether the session is not yet resolved
func (s Snapshot) Loading() bool {
	return s.State == Unknown || s.State == Verifying
}

// Session is the single writer of the persisted token and user
type Session struct {
	auth    Authenticator
	persist *Persister
	nav     Navigator
	now     func() time.Time

	mu         sync.Mutex
	state      State
	token      string
	user       *models.User
	generation uint64
	listeners  map[int]func(Snapshot)
	nextID     int

	readyOnce sync.Once
	ready     chan struct{}

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Ensure Session can back the HTTP client's bearer token
var _ apiclient.TokenSource = (*Session)(nil)

// New creates a session in the Unknown state; call Bootstrap to resolve it
func New(auth Authenticator, persist *Persister, nav Navigator) *Session {
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}
	return &Session{
		auth:      auth,
		persist:   persist,
		nav:       nav,
		now:       time.Now,
		listeners: make(map[int]func(Snapshot)),
		ready:     make(chan struct{}),
	}
}

// Ready is closed once the session has left Unknown and Verifying for the first time
func (s *Session) Ready() <-chan struct{} {
	return s.ready
}

func (s *Session) markReady() {
	s.readyOnce.Do(func() { close(s.ready) })
}

// Snapshot returns the current state and user
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	var user *models.User
	if s.user != nil {
		u := *s.user
		user = &u
	}
	return Snapshot{State: s.state, User: user}
}

// Subscribe registers fn for every state change and returns an unsubscribe func
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// transitionLocked must be called with mu held; the returned func notifies
// listeners and must be called after unlocking
func (s *Session) transitionLocked(state State, token string, user *models.User) func() {
	s.generation++
	s.state = state
	s.token = token
	s.user = user

	snap := s.snapshotLocked()
	listeners := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	if state != Verifying {
		s.markReady()
	}
	return func() {
		for _, fn := range listeners {
			fn(snap)
		}
	}
}

// Token implements apiclient.TokenSource
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Bootstrap restores persisted credentials. With a token and user on disk it
// enters Verifying, exposes the cached user, and confirms it with the backend
// in the background.
func (s *Session) Bootstrap(ctx context.Context) error {
	persisted, err := s.persist.Load(ctx)
	if err != nil {
		logrus.Warnf("Discarding persisted session: %v", err)
		s.mu.Lock()
		clearErr := s.persist.Clear(ctx)
		notify := s.transitionLocked(Unauthenticated, "", nil)
		s.mu.Unlock()
		notify()
		if errors.Is(err, ErrCorruptState) {
			return clearErr
		}
		return err
	}

	if persisted.Token == "" || persisted.User == nil {
		s.mu.Lock()
		var clearErr error
		if persisted.Token != "" || persisted.User != nil || persisted.RememberMe {
			logrus.Warn("Discarding half-persisted session")
			clearErr = s.persist.Clear(ctx)
		}
		notify := s.transitionLocked(Unauthenticated, "", nil)
		s.mu.Unlock()
		notify()
		return clearErr
	}

	if tokenExpired(persisted.Token, s.now()) {
		logrus.Info("Persisted token has expired, signing out")
		s.mu.Lock()
		clearErr := s.persist.Clear(ctx)
		notify := s.transitionLocked(Unauthenticated, "", nil)
		s.mu.Unlock()
		notify()
		return clearErr
	}

	s.mu.Lock()
	notify := s.transitionLocked(Verifying, persisted.Token, persisted.User)
	generation := s.generation
	verifyCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()
	notify()

	go s.verify(verifyCtx, generation)
	return nil
}

func (s *Session) verify(ctx context.Context, generation uint64) {
	defer s.wg.Done()

	user, err := s.auth.Me(ctx)
	if ctx.Err() != nil {
		logrus.Debug("Session verification cancelled, keeping persisted credentials")
		return
	}

	s.mu.Lock()
	if s.generation != generation {
		s.mu.Unlock()
		logrus.Debug("Session changed during verification, discarding result")
		return
	}

	var notify func()
	if err != nil {
		logrus.Infof("Persisted session rejected: %v", err)
		if clearErr := s.persist.Clear(context.Background()); clearErr != nil {
			logrus.Errorf("Failed to clear persisted session: %v", clearErr)
		}
		notify = s.transitionLocked(Unauthenticated, "", nil)
	} else {
		if saveErr := s.persist.SaveUser(context.Background(), user); saveErr != nil {
			logrus.Errorf("Failed to persist refreshed user: %v", saveErr)
		}
		notify = s.transitionLocked(Authenticated, s.token, user)
	}
	s.mu.Unlock()
	notify()
}

// Login exchanges email and password for a session
func (s *Session) Login(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, resp)
}

// Register creates an account and signs in as it
func (s *Session) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	resp, err := s.auth.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, resp)
}

// FederatedLogin exchanges a provider credential for a session
func (s *Session) FederatedLogin(ctx context.Context, providerToken string) (*models.User, error) {
	resp, err := s.auth.GoogleLogin(ctx, providerToken)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, resp)
}

func (s *Session) establish(ctx context.Context, resp *models.AuthResponse) (*models.User, error) {
	if resp.Token == "" {
		return nil, fmt.Errorf("backend returned no token")
	}
	user := resp.User

	s.mu.Lock()
	if err := s.persist.Save(ctx, resp.Token, &user); err != nil {
		if clearErr := s.persist.Clear(ctx); clearErr != nil {
			logrus.Errorf("Failed to roll back partial session: %v", clearErr)
		}
		s.mu.Unlock()
		return nil, err
	}
	notify := s.transitionLocked(Authenticated, resp.Token, &user)
	s.mu.Unlock()
	notify()

	logrus.Infof("Signed in as %s (%s)", user.Username, user.Role)
	out := user
	return &out, nil
}

// Ensure waits for the session to resolve and signs in with the given
// credentials unless it is already authenticated
func (s *Session) Ensure(ctx context.Context, email, password string) error {
	select {
	case <-s.ready:
	case <-ctx.Done():
		return ctx.Err()
	}

	if s.Snapshot().State == Authenticated {
		return nil
	}
	if email == "" || password == "" {
		return ErrNotAuthenticated
	}
	_, err := s.Login(ctx, email, password)
	return err
}

// SetRememberMe persists the remember-me flag for an authenticated session
func (s *Session) SetRememberMe(ctx context.Context, remember bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Authenticated {
		return ErrNotAuthenticated
	}
	return s.persist.SaveRememberMe(ctx, remember)
}

// Logout clears memory and storage unconditionally, then navigates to the entry screen
func (s *Session) Logout(ctx context.Context) error {
	err := s.reset(ctx)
	s.nav.Navigate(EntryPath)
	return err
}

// Expire implements apiclient.TokenSource; called when the backend answers 401.
// A rejection of a token the session no longer holds is ignored.
func (s *Session) Expire(token string) {
	s.mu.Lock()
	if token == "" || s.token != token {
		s.mu.Unlock()
		logrus.Debug("Ignoring rejection of a superseded token")
		return
	}
	err := s.persist.Clear(context.Background())
	notify := s.transitionLocked(Unauthenticated, "", nil)
	s.mu.Unlock()
	notify()

	if err != nil {
		logrus.Errorf("Failed to clear expired session: %v", err)
	}
}

func (s *Session) reset(ctx context.Context) error {
	s.mu.Lock()
	err := s.persist.Clear(ctx)
	notify := s.transitionLocked(Unauthenticated, "", nil)
	s.mu.Unlock()
	notify()
	return err
}

// RefreshUser re-fetches the current user without changing the state
func (s *Session) RefreshUser(ctx context.Context) (*models.User, error) {
	s.mu.Lock()
	if s.state != Authenticated {
		s.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	generation := s.generation
	s.mu.Unlock()

	user, err := s.auth.Me(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.generation != generation || s.state != Authenticated {
		s.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	if err := s.persist.SaveUser(ctx, user); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.user = user
	snap := s.snapshotLocked()
	listeners := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
	out := *user
	return &out, nil
}

// Close cancels background verification and waits for it to finish
func (s *Session) Close() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}
