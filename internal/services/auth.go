package services

import (
	"context"
	"net/http"

	"github.com/ytinsight/insight-client/internal/apiclient"
	"github.com/ytinsight/insight-client/internal/models"
)

// AuthService exchanges credentials for a bearer token
type AuthService struct {
	api Requester
}

func NewAuthService(api Requester) *AuthService {
	return &AuthService{api: api}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var out models.AuthResponse
	err := s.api.Do(ctx, apiclient.Request{
		Method:    http.MethodPost,
		Endpoint:  "/auth/login",
		Body:      models.LoginRequest{Email: email, Password: password},
		Anonymous: true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	err := s.api.Do(ctx, apiclient.Request{
		Method:    http.MethodPost,
		Endpoint:  "/auth/register",
		Body:      req,
		Anonymous: true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GoogleLogin exchanges a Google ID token for a session
func (s *AuthService) GoogleLogin(ctx context.Context, providerToken string) (*models.AuthResponse, error) {
	var out models.AuthResponse
	err := s.api.Do(ctx, apiclient.Request{
		Method:    http.MethodPost,
		Endpoint:  "/auth/google",
		Body:      models.GoogleAuthRequest{Token: providerToken},
		Anonymous: true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the user the current bearer token belongs to
func (s *AuthService) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := get(ctx, s.api, "/auth/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout tells the backend the token is being discarded
func (s *AuthService) Logout(ctx context.Context) error {
	return send(ctx, s.api, http.MethodPost, "/auth/logout", nil, nil)
}
