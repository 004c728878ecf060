package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ytinsight/insight-client/internal/models"
	"github.com/ytinsight/insight-client/internal/storage"
)

// Keys of the durable client state
const (
	KeyToken      = "token"
	KeyUser       = "user"
	KeyRememberMe = "rememberMe"
)

// ErrCorruptState is returned when the persisted user record cannot be decoded
var ErrCorruptState = errors.New("persisted session state is corrupt")

// Persister maps session fields onto storage keys
type Persister struct {
	store storage.StorageInterface
}

func NewPersister(store storage.StorageInterface) *Persister {
	return &Persister{store: store}
}

// Persisted is the durable record as read back from storage
type Persisted struct {
	Token      string
	User       *models.User
	RememberMe bool
}

func (p *Persister) Load(ctx context.Context) (*Persisted, error) {
	out := &Persisted{}

	token, err := p.retrieve(ctx, KeyToken)
	if err != nil {
		return nil, err
	}
	out.Token = string(token)

	raw, err := p.retrieve(ctx, KeyUser)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		var user models.User
		if err := json.Unmarshal(raw, &user); err != nil {
			return out, fmt.Errorf("%w: %v", ErrCorruptState, err)
		}
		out.User = &user
	}

	remember, err := p.retrieve(ctx, KeyRememberMe)
	if err != nil {
		return nil, err
	}
	out.RememberMe = string(remember) == "true"

	return out, nil
}

func (p *Persister) retrieve(ctx context.Context, key string) ([]byte, error) {
	data, err := p.store.Retrieve(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Save writes token and user together
func (p *Persister) Save(ctx context.Context, token string, user *models.User) error {
	if err := p.SaveUser(ctx, user); err != nil {
		return err
	}
	if err := p.store.Store(ctx, KeyToken, []byte(token)); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	return nil
}

func (p *Persister) SaveUser(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	if err := p.store.Store(ctx, KeyUser, data); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}
	return nil
}

func (p *Persister) SaveRememberMe(ctx context.Context, remember bool) error {
	if !remember {
		return p.store.Delete(ctx, KeyRememberMe)
	}
	if err := p.store.Store(ctx, KeyRememberMe, []byte("true")); err != nil {
		return fmt.Errorf("failed to persist rememberMe: %w", err)
	}
	return nil
}

// Clear removes every key; all deletions are attempted
func (p *Persister) Clear(ctx context.Context) error {
	var errs []error
	for _, key := range []string{KeyToken, KeyUser, KeyRememberMe} {
		if err := p.store.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
