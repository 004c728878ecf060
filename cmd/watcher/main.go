package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/ytinsight/insight-client/internal/app"
	"github.com/ytinsight/insight-client/internal/config"
	"github.com/ytinsight/insight-client/internal/models"
	"github.com/ytinsight/insight-client/internal/monitoring"
	"github.com/ytinsight/insight-client/internal/notifications"
	"github.com/ytinsight/insight-client/internal/scheduler"
	"github.com/ytinsight/insight-client/internal/storage"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting channel watcher")

	ctx := context.Background()
	store, err := app.NewStorage(ctx, cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize storage: %v", err)
	}

	insight := app.New(cfg, store, nil)
	defer insight.Close()
	if err := insight.Start(ctx); err != nil {
		logrus.Warnf("Starting without a restored session: %v", err)
	}

	notificationService := notifications.NewService(cfg)

	watchService := monitoring.NewService(cfg, store, notificationService,
		func() monitoring.Analyzer { return insight.NewScreen() },
		func(ctx context.Context) error { return insight.Session.Ensure(ctx, cfg.Email, cfg.Password) },
	)

	schedulerService := scheduler.NewService(cfg, watchService)
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      newRouter(watchService, schedulerService),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

// watcher is what the console needs from the watch service
type watcher interface {
	RunWatch() error
	Running() bool
	GetMetrics() string
	LatestSnapshot(ctx context.Context, channelID string) (*models.DashboardSnapshot, error)
}

type nextRun interface {
	Next() string
}

func newRouter(w watcher, sched nextRun) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/health", healthCheckHandler(sched)).Methods("GET")
	router.HandleFunc("/metrics", metricsHandler(w)).Methods("GET")
	router.HandleFunc("/trigger", triggerHandler(w)).Methods("POST")
	router.HandleFunc("/snapshots/{channelId}", snapshotHandler(w)).Methods("GET")
	return router
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.Errorf("Failed to write response: %v", err)
	}
}

func healthCheckHandler(sched nextRun) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"next_run":  sched.Next(),
		})
	}
}

func metricsHandler(watchService watcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(watchService.GetMetrics()))
	}
}

func triggerHandler(watchService watcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if watchService.Running() {
			writeJSON(w, http.StatusConflict, map[string]string{"error": monitoring.ErrRunInProgress.Error()})
			return
		}

		go func() {
			if err := watchService.RunWatch(); err != nil {
				logrus.Errorf("Manual watch trigger failed: %v", err)
			}
		}()

		writeJSON(w, http.StatusAccepted, map[string]string{"message": "Watch run triggered"})
	}
}

func snapshotHandler(watchService watcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channelID := mux.Vars(r)["channelId"]
		snapshot, err := watchService.LatestSnapshot(r.Context(), channelID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no snapshot for channel " + channelID})
		case err != nil:
			logrus.Errorf("Failed to load snapshot for %s: %v", channelID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		default:
			writeJSON(w, http.StatusOK, snapshot)
		}
	}
}
