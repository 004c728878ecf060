// Package app wires configuration, storage, the HTTP client, the session and
// the domain services into one object shared by the binaries.
package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/ytinsight/insight-client/internal/apiclient"
	"github.com/ytinsight/insight-client/internal/config"
	"github.com/ytinsight/insight-client/internal/dashboard"
	"github.com/ytinsight/insight-client/internal/router"
	"github.com/ytinsight/insight-client/internal/services"
	"github.com/ytinsight/insight-client/internal/session"
	"github.com/ytinsight/insight-client/internal/storage"
)

// App holds the long-lived collaborators of a client process
type App struct {
	Config  *config.Config
	Storage storage.StorageInterface
	Client  *apiclient.Client
	Session *session.Session
	Gate    *router.Gate

	Auth      *services.AuthService
	YouTube   *services.YouTubeService
	Dashboard *services.DashboardService
	Comments  *services.CommentService
	Community *services.CommunityService
	Analytics *services.VideoAnalyticsService
	User      *services.UserService
	AI        *services.AIService
	Admin     *services.AdminService
}

// NewStorage opens the configured durable state backend
func NewStorage(ctx context.Context, cfg *config.Config) (storage.StorageInterface, error) {
	switch cfg.StorageBackend {
	case "azure":
		store, err := storage.NewAzureStorage(ctx, cfg.StorageAccount, cfg.StorageContainer)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "file":
		store, err := storage.NewFileStorage(cfg.StateDir)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// New builds an App on top of store. nav receives logout navigation; it may be nil.
func New(cfg *config.Config, store storage.StorageInterface, nav session.Navigator) *App {
	client := apiclient.New(apiclient.Options{
		BaseURL:   cfg.APIBaseURL,
		Timeout:   cfg.RequestTimeout,
		RateLimit: cfg.RateLimitRPS,
		Burst:     cfg.RateLimitBurst,
	})

	auth := services.NewAuthService(client)
	sess := session.New(auth, session.NewPersister(store), nav)
	client.SetTokenSource(sess)

	return &App{
		Config:  cfg,
		Storage: store,
		Client:  client,
		Session: sess,
		Gate:    router.NewGate(sess),

		Auth:      auth,
		YouTube:   services.NewYouTubeService(client),
		Dashboard: services.NewDashboardService(client),
		Comments:  services.NewCommentService(client),
		Community: services.NewCommunityService(client),
		Analytics: services.NewVideoAnalyticsService(client),
		User:      services.NewUserService(client),
		AI:        services.NewAIService(client),
		Admin:     services.NewAdminService(client),
	}
}

// Start restores the persisted session
func (a *App) Start(ctx context.Context) error {
	if err := a.Session.Bootstrap(ctx); err != nil {
		logrus.Warnf("Session bootstrap: %v", err)
		return err
	}
	return nil
}

// NewScreen opens a dashboard screen bound to this App's services
func (a *App) NewScreen(opts ...dashboard.Option) *dashboard.Screen {
	opts = append([]dashboard.Option{dashboard.WithPollInterval(a.Config.PollInterval)}, opts...)
	return dashboard.NewScreen(a.YouTube, a.Dashboard, opts...)
}

// Logout tells the backend, then clears the local session regardless
func (a *App) Logout(ctx context.Context) error {
	if err := a.Auth.Logout(ctx); err != nil {
		logrus.Debugf("Backend logout failed: %v", err)
	}
	return a.Session.Logout(ctx)
}

// Close stops background session work
func (a *App) Close() {
	a.Session.Close()
}
