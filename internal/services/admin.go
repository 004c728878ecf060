package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ytinsight/insight-client/internal/apiclient"
	"github.com/ytinsight/insight-client/internal/models"
)

// ListQuery is the filter/search/pagination shape shared by admin lists
type ListQuery struct {
	Page    int
	Size    int
	Search  string
	Filters []apiclient.Param // endpoint specific, e.g. role, status, level
}

func (q ListQuery) encode() string {
	params := []apiclient.Param{apiclient.P("page", q.Page)}
	if q.Size > 0 {
		params = append(params, apiclient.P("size", q.Size))
	}
	params = append(params, apiclient.P("search", q.Search))
	params = append(params, q.Filters...)
	return apiclient.BuildQuery(params...)
}

// AdminService backs the administrative console
type AdminService struct {
	api Requester
}

func NewAdminService(api Requester) *AdminService {
	return &AdminService{api: api}
}

func (s *AdminService) DashboardStats(ctx context.Context) (*models.AdminDashboard, error) {
	var out models.AdminDashboard
	if err := get(ctx, s.api, "/admin/dashboard", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) ServerStatus(ctx context.Context) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if err := get(ctx, s.api, "/admin/server-status", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AdminService) APIRequestStats(ctx context.Context, params ...apiclient.Param) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if err := get(ctx, s.api, "/admin/dashboard/api-requests"+apiclient.BuildQuery(params...), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AdminService) RecentActivities(ctx context.Context, params ...apiclient.Param) ([]models.UserActivity, error) {
	var out []models.UserActivity
	if err := get(ctx, s.api, "/admin/dashboard/activity"+apiclient.BuildQuery(params...), &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (s *AdminService) RecentLogs(ctx context.Context, params ...apiclient.Param) ([]models.SystemLog, error) {
	var out []models.SystemLog
	if err := get(ctx, s.api, "/admin/dashboard/logs"+apiclient.BuildQuery(params...), &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// Users

func (s *AdminService) Users(ctx context.Context, q ListQuery) (*models.Page[models.UserSummary], error) {
	var out models.Page[models.UserSummary]
	if err := get(ctx, s.api, "/admin/users"+q.encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) User(ctx context.Context, id int64) (*models.UserProfile, error) {
	var out models.UserProfile
	if err := get(ctx, s.api, fmt.Sprintf("/admin/users/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) UpdateUser(ctx context.Context, id int64, req models.UpdateUserRequest) (*models.UserSummary, error) {
	var out models.UserSummary
	if err := send(ctx, s.api, http.MethodPut, fmt.Sprintf("/admin/users/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) UpdateUserRole(ctx context.Context, id int64, role models.Role) (*models.UserSummary, error) {
	var out models.UserSummary
	if err := send(ctx, s.api, http.MethodPut, fmt.Sprintf("/admin/users/%d/role", id), models.UpdateRoleRequest{Role: role}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) LockUser(ctx context.Context, id int64) error {
	return send(ctx, s.api, http.MethodPut, fmt.Sprintf("/admin/users/%d/lock", id), nil, nil)
}

func (s *AdminService) UnlockUser(ctx context.Context, id int64) error {
	return send(ctx, s.api, http.MethodPut, fmt.Sprintf("/admin/users/%d/unlock", id), nil, nil)
}

func (s *AdminService) DeleteUser(ctx context.Context, id int64) error {
	return send(ctx, s.api, http.MethodDelete, fmt.Sprintf("/admin/users/%d", id), nil, nil)
}

// Data management

func (s *AdminService) AnalysisHistory(ctx context.Context, q ListQuery) (*models.Page[models.AnalysisHistory], error) {
	var out models.Page[models.AnalysisHistory]
	if err := get(ctx, s.api, "/admin/data/analysis-history"+q.encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) Channels(ctx context.Context, q ListQuery) (*models.Page[models.ChannelSummary], error) {
	var out models.Page[models.ChannelSummary]
	if err := get(ctx, s.api, "/admin/data/channels"+q.encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) RefreshChannel(ctx context.Context, id int64) error {
	return send(ctx, s.api, http.MethodPost, fmt.Sprintf("/admin/data/channels/%d/refresh", id), nil, nil)
}

func (s *AdminService) DeleteChannel(ctx context.Context, id int64) error {
	return send(ctx, s.api, http.MethodDelete, fmt.Sprintf("/admin/data/channels/%d", id), nil, nil)
}

func (s *AdminService) DeleteVideo(ctx context.Context, id int64) error {
	return send(ctx, s.api, http.MethodDelete, fmt.Sprintf("/admin/data/videos/%d", id), nil, nil)
}

func (s *AdminService) CleanupData(ctx context.Context, req models.CleanupDataRequest) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if err := send(ctx, s.api, http.MethodPost, "/admin/data/cleanup", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AI models

func (s *AdminService) AIModels(ctx context.Context) ([]models.AIModel, error) {
	var out []models.AIModel
	if err := get(ctx, s.api, "/admin/ai/models", &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (s *AdminService) UploadAIModel(ctx context.Context, req models.UploadModelRequest) (*models.AIModel, error) {
	var out models.AIModel
	if err := send(ctx, s.api, http.MethodPost, "/admin/ai/models/upload", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) ActivateAIModel(ctx context.Context, id int64) (*models.AIModel, error) {
	var out models.AIModel
	if err := send(ctx, s.api, http.MethodPut, fmt.Sprintf("/admin/ai/models/%d/activate", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) TrainingHistory(ctx context.Context, q ListQuery) (*models.Page[models.TrainingHistory], error) {
	var out models.Page[models.TrainingHistory]
	if err := get(ctx, s.api, "/admin/ai/training-history"+q.encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) SensitiveKeywords(ctx context.Context) ([]models.SensitiveKeyword, error) {
	var out []models.SensitiveKeyword
	if err := get(ctx, s.api, "/admin/ai/sensitive-keywords", &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (s *AdminService) AddSensitiveKeyword(ctx context.Context, kw models.SensitiveKeyword) error {
	return send(ctx, s.api, http.MethodPost, "/admin/ai/sensitive-keywords", kw, nil)
}

func (s *AdminService) DeleteSensitiveKeyword(ctx context.Context, keyword string) error {
	return send(ctx, s.api, http.MethodDelete, "/admin/ai/sensitive-keywords/"+url.PathEscape(keyword), nil, nil)
}

// Settings

func (s *AdminService) SystemSettings(ctx context.Context) (models.SystemSettings, error) {
	out := models.SystemSettings{}
	if err := get(ctx, s.api, "/admin/settings", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AdminService) UpdateSystemSettings(ctx context.Context, settings models.SystemSettings) (models.SystemSettings, error) {
	out := models.SystemSettings{}
	if err := send(ctx, s.api, http.MethodPut, "/admin/settings", settings, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AdminService) UpdateAPIKeys(ctx context.Context, keys map[string]string) error {
	return send(ctx, s.api, http.MethodPut, "/admin/settings/api-keys", keys, nil)
}

func (s *AdminService) UpdateRateLimit(ctx context.Context, req models.UpdateRateLimitRequest) error {
	return send(ctx, s.api, http.MethodPut, "/admin/settings/rate-limit", req, nil)
}

func (s *AdminService) UpdateLogSettings(ctx context.Context, req models.UpdateLogSettingsRequest) error {
	return send(ctx, s.api, http.MethodPut, "/admin/settings/logs", req, nil)
}

func (s *AdminService) CreateBackup(ctx context.Context) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if err := send(ctx, s.api, http.MethodPost, "/admin/settings/backup", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AdminService) RestoreBackup(ctx context.Context, backupFile string) error {
	return send(ctx, s.api, http.MethodPost, "/admin/settings/restore", models.RestoreBackupRequest{BackupFile: backupFile}, nil)
}

// Support and logs

func (s *AdminService) SupportTickets(ctx context.Context, q ListQuery) (*models.Page[models.SupportTicket], error) {
	var out models.Page[models.SupportTicket]
	if err := get(ctx, s.api, "/admin/support/tickets"+q.encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) SupportTicket(ctx context.Context, id int64) (*models.SupportTicket, error) {
	var out models.SupportTicket
	if err := get(ctx, s.api, fmt.Sprintf("/admin/support/tickets/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) RespondToTicket(ctx context.Context, id int64, response string) (*models.SupportTicket, error) {
	var out models.SupportTicket
	body := models.RespondTicketRequest{Response: response}
	if err := send(ctx, s.api, http.MethodPut, fmt.Sprintf("/admin/support/tickets/%d/respond", id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) SystemLogs(ctx context.Context, q ListQuery) (*models.Page[models.SystemLog], error) {
	var out models.Page[models.SystemLog]
	if err := get(ctx, s.api, "/admin/logs"+q.encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
