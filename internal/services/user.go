package services

import (
	"context"
	"io"
	"net/http"

	"github.com/ytinsight/insight-client/internal/apiclient"
	"github.com/ytinsight/insight-client/internal/models"
)

// UserService is the self-service account surface
type UserService struct {
	api Requester
}

func NewUserService(api Requester) *UserService {
	return &UserService{api: api}
}

func (s *UserService) Profile(ctx context.Context) (*models.UserProfile, error) {
	var out models.UserProfile
	if err := get(ctx, s.api, "/user/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.UserProfile, error) {
	var out models.UserProfile
	if err := send(ctx, s.api, http.MethodPut, "/user/profile", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UserService) UpdatePassword(ctx context.Context, req models.UpdatePasswordRequest) error {
	return send(ctx, s.api, http.MethodPut, "/user/password", req, nil)
}

func (s *UserService) UpdatePreferences(ctx context.Context, req models.UpdatePreferencesRequest) (*models.UserProfile, error) {
	var out models.UserProfile
	if err := send(ctx, s.api, http.MethodPut, "/user/preferences", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAvatar uploads an image as the multipart field "avatar"
func (s *UserService) UpdateAvatar(ctx context.Context, fileName, contentType string, r io.Reader) (*models.UserProfile, error) {
	var out models.UserProfile
	body := &apiclient.Multipart{Field: "avatar", FileName: fileName, ContentType: contentType, Reader: r}
	if err := send(ctx, s.api, http.MethodPost, "/user/avatar", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
