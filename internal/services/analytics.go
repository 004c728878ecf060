package services

import (
	"context"
	"time"

	"github.com/ytinsight/insight-client/internal/apiclient"
	"github.com/ytinsight/insight-client/internal/models"
)

type VideoAnalyticsService struct {
	api Requester
}

func NewVideoAnalyticsService(api Requester) *VideoAnalyticsService {
	return &VideoAnalyticsService{api: api}
}

// ViewGrowth accepts period daily, weekly or monthly; empty means daily
func (s *VideoAnalyticsService) ViewGrowth(ctx context.Context, channelID, period string) (*models.ViewGrowth, error) {
	if period == "" {
		period = "daily"
	}
	var out models.ViewGrowth
	q := apiclient.BuildQuery(apiclient.P("channelId", channelID), apiclient.P("period", period))
	if err := get(ctx, s.api, "/video-analytics/view-growth"+q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Interactions accepts type view, like or comment; empty means view
func (s *VideoAnalyticsService) Interactions(ctx context.Context, channelID, kind string, start, end time.Time) (*models.Interactions, error) {
	if kind == "" {
		kind = "view"
	}
	var out models.Interactions
	q := apiclient.BuildQuery(
		apiclient.P("channelId", channelID),
		apiclient.P("type", kind),
		apiclient.P("startDate", start),
		apiclient.P("endDate", end),
	)
	if err := get(ctx, s.api, "/video-analytics/interactions"+q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *VideoAnalyticsService) OptimalPostingTime(ctx context.Context, channelID string) (*models.OptimalPostingTime, error) {
	var out models.OptimalPostingTime
	if err := get(ctx, s.api, "/video-analytics/optimal-posting-time"+channelQuery(channelID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
