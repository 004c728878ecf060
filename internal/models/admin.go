package models

// AdminDashboard holds platform-wide counters
type AdminDashboard struct {
	TotalUsers       int64 `json:"totalUsers"`
	TotalChannels    int64 `json:"totalChannels"`
	TotalVideos      int64 `json:"totalVideos"`
	TotalComments    int64 `json:"totalComments"`
	APIRequestsToday int64 `json:"apiRequestsToday"`
}

type UserSummary struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	CreatedAt    Timestamp `json:"createdAt"`
	ChannelCount int64     `json:"channelCount"`
	IsLocked     bool      `json:"isLocked"`
}

type UserActivity struct {
	UserID      int64     `json:"userId"`
	Username    string    `json:"username"`
	ChannelName string    `json:"channelName"`
	ChannelID   string    `json:"channelId"`
	Action      string    `json:"action"`
	Timestamp   Timestamp `json:"timestamp"`
}

type UpdateUserRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

type UpdateRoleRequest struct {
	Role Role `json:"role"`
}

type SystemLog struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`  // ERROR, INFO, WARN, DEBUG
	Source    string    `json:"source"` // backend, ai_module, youtube_api
	Message   string    `json:"message"`
	Timestamp Timestamp `json:"timestamp"`
}

type SupportTicket struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	Username      string    `json:"username"`
	Title         string    `json:"title"`
	Message       string    `json:"message,omitempty"`
	Status        string    `json:"status"` // open, in_progress, resolved, closed
	AdminResponse string    `json:"adminResponse,omitempty"`
	CreatedAt     Timestamp `json:"createdAt"`
	UpdatedAt     Timestamp `json:"updatedAt"`
}

type RespondTicketRequest struct {
	Response string `json:"response"`
}

type AIModel struct {
	ID        int64     `json:"id"`
	ModelType string    `json:"modelType"` // sentiment, emotion, topic
	Version   string    `json:"version"`
	FilePath  string    `json:"filePath"`
	Accuracy  float64   `json:"accuracy"`
	IsActive  bool      `json:"isActive"`
	CreatedAt Timestamp `json:"createdAt"`
}

type UploadModelRequest struct {
	ModelType string  `json:"modelType"`
	FilePath  string  `json:"filePath"`
	Version   string  `json:"version"`
	Accuracy  float64 `json:"accuracy"`
}

type TrainingHistory struct {
	ID          int64     `json:"id"`
	ModelType   string    `json:"modelType"`
	DatasetSize int       `json:"datasetSize"`
	Accuracy    float64   `json:"accuracy"`
	Loss        float64   `json:"loss"`
	Status      string    `json:"status"` // completed, failed, in_progress
	CreatedAt   Timestamp `json:"createdAt"`
}

type AnalysisHistory struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Username     string    `json:"username"`
	UserEmail    string    `json:"userEmail"`
	ChannelID    int64     `json:"channelId"`
	ChannelName  string    `json:"channelName"`
	AnalysisType string    `json:"analysisType"` // channel, video
	Status       string    `json:"status"`       // success, failed
	VideoCount   int64     `json:"videoCount"`
	CommentCount int64     `json:"commentCount"`
	SyncedAt     Timestamp `json:"syncedAt"`
	CreatedAt    Timestamp `json:"createdAt"`
}

type ChannelSummary struct {
	ID              int64     `json:"id"`
	ChannelID       string    `json:"channelId"`
	ChannelName     string    `json:"channelName"`
	UserID          int64     `json:"userId"`
	VideoCount      int       `json:"videoCount"`
	SubscriberCount int64     `json:"subscriberCount"`
	LastSyncedAt    Timestamp `json:"lastSyncedAt"`
}

type CleanupDataRequest struct {
	BeforeDate      Timestamp `json:"beforeDate"`
	DeleteComments  bool      `json:"deleteComments"`
	DeleteVideos    bool      `json:"deleteVideos"`
	DeleteAnalytics bool      `json:"deleteAnalytics"`
}

type SensitiveKeyword struct {
	Keyword  string `json:"keyword"`
	Category string `json:"category"` // toxic, spam, negative
}

// SystemSettings is kept loosely typed; the backend owns its shape
type SystemSettings map[string]interface{}

type UpdateRateLimitRequest struct {
	MaxRequestsPerDay  int `json:"maxRequestsPerDay"`
	MaxRequestsPerHour int `json:"maxRequestsPerHour"`
}

type UpdateLogSettingsRequest struct {
	LogAPIRequests      *bool `json:"logApiRequests,omitempty"`
	LogAbnormalRequests *bool `json:"logAbnormalRequests,omitempty"`
	LogAIProcessing     *bool `json:"logAiProcessing,omitempty"`
}

type RestoreBackupRequest struct {
	BackupFile string `json:"backupFile"`
}
