package services

import (
	"context"
	"time"

	"github.com/ytinsight/insight-client/internal/apiclient"
	"github.com/ytinsight/insight-client/internal/models"
)

type DashboardService struct {
	api Requester
}

func NewDashboardService(api Requester) *DashboardService {
	return &DashboardService{api: api}
}

func (s *DashboardService) Metrics(ctx context.Context, channelID string) (*models.DashboardMetrics, error) {
	var out models.DashboardMetrics
	q := apiclient.BuildQuery(apiclient.P("channelId", channelID))
	if err := get(ctx, s.api, "/dashboard/metrics"+q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Trends returns daily points; zero start/end let the backend pick the window
func (s *DashboardService) Trends(ctx context.Context, channelID string, start, end time.Time) (*models.DashboardTrend, error) {
	var out models.DashboardTrend
	q := apiclient.BuildQuery(
		apiclient.P("channelId", channelID),
		apiclient.P("startDate", start),
		apiclient.P("endDate", end),
	)
	if err := get(ctx, s.api, "/dashboard/trends"+q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DashboardService) TopVideos(ctx context.Context, channelID string, limit int) ([]models.TopVideo, error) {
	if limit <= 0 {
		limit = 5
	}
	var out []models.TopVideo
	q := apiclient.BuildQuery(apiclient.P("channelId", channelID), apiclient.P("limit", limit))
	if err := get(ctx, s.api, "/dashboard/top-videos"+q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DashboardService) Sentiment(ctx context.Context, channelID string) (*models.SentimentSummary, error) {
	var out models.SentimentSummary
	q := apiclient.BuildQuery(apiclient.P("channelId", channelID))
	if err := get(ctx, s.api, "/dashboard/sentiment"+q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
