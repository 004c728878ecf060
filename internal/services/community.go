package services

import (
	"context"

	"github.com/ytinsight/insight-client/internal/apiclient"
	"github.com/ytinsight/insight-client/internal/models"
)

// CommunityService reads topic and keyword insights derived from comments.
// Null responses decode to empty values.
type CommunityService struct {
	api Requester
}

func NewCommunityService(api Requester) *CommunityService {
	return &CommunityService{api: api}
}

func channelQuery(channelID string) string {
	return apiclient.BuildQuery(apiclient.P("channelId", channelID))
}

func (s *CommunityService) TotalComments(ctx context.Context, channelID string) (int64, error) {
	var out models.TotalComments
	if err := get(ctx, s.api, "/community/total-comments"+channelQuery(channelID), &out); err != nil {
		return 0, err
	}
	return out.TotalComments, nil
}

func (s *CommunityService) Topics(ctx context.Context, channelID string) ([]models.VideoTopic, error) {
	out := []models.VideoTopic{}
	if err := get(ctx, s.api, "/community/topics"+channelQuery(channelID), &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (s *CommunityService) SentimentDistribution(ctx context.Context, channelID string) (*models.SentimentStats, error) {
	var out models.SentimentStats
	if err := get(ctx, s.api, "/community/sentiment-distribution"+channelQuery(channelID), &out); err != nil {
		return nil, err
	}
	if out.Sentiment == nil {
		out.Sentiment = map[string]int64{}
	}
	if out.Emotion == nil {
		out.Emotion = map[string]int64{}
	}
	return &out, nil
}

func (s *CommunityService) Keywords(ctx context.Context, channelID string, limit int) ([]models.Keyword, error) {
	if limit <= 0 {
		limit = 10
	}
	out := []models.Keyword{}
	q := apiclient.BuildQuery(apiclient.P("channelId", channelID), apiclient.P("limit", limit))
	if err := get(ctx, s.api, "/community/keywords"+q, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (s *CommunityService) TopicSuggestions(ctx context.Context, channelID string) ([]models.TopicSuggestion, error) {
	out := []models.TopicSuggestion{}
	if err := get(ctx, s.api, "/community/topic-suggestions"+channelQuery(channelID), &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (s *CommunityService) TopicComparison(ctx context.Context, channelID string) ([]models.TopicComparison, error) {
	out := []models.TopicComparison{}
	if err := get(ctx, s.api, "/community/topic-comparison"+channelQuery(channelID), &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
