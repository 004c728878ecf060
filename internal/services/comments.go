package services

import (
	"context"

	"github.com/ytinsight/insight-client/internal/apiclient"
	"github.com/ytinsight/insight-client/internal/models"
)

type CommentService struct {
	api Requester
}

func NewCommentService(api Requester) *CommentService {
	return &CommentService{api: api}
}

func defaultPage(p PageRequest) PageRequest {
	if p.Size <= 0 {
		p.Size = 20
	}
	if p.Page < 0 {
		p.Page = 0
	}
	return p
}

// BySentiment lists comments labelled positive, negative or neutral
func (s *CommentService) BySentiment(ctx context.Context, channelID, sentiment string, page PageRequest) (*models.Page[models.Comment], error) {
	page = defaultPage(page)
	params := append([]apiclient.Param{apiclient.P("channelId", channelID), apiclient.P("sentiment", sentiment)}, page.params()...)
	var out models.Page[models.Comment]
	if err := get(ctx, s.api, "/comments/sentiment"+apiclient.BuildQuery(params...), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CommentService) ByEmotion(ctx context.Context, channelID, emotion string, page PageRequest) (*models.Page[models.Comment], error) {
	page = defaultPage(page)
	params := append([]apiclient.Param{apiclient.P("channelId", channelID), apiclient.P("emotion", emotion)}, page.params()...)
	var out models.Page[models.Comment]
	if err := get(ctx, s.api, "/comments/emotion"+apiclient.BuildQuery(params...), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CommentService) SentimentStats(ctx context.Context, channelID string) (*models.SentimentStats, error) {
	var out models.SentimentStats
	if err := get(ctx, s.api, "/comments/sentiment-stats"+apiclient.BuildQuery(apiclient.P("channelId", channelID)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EmotionChart returns comment counts keyed by emotion
func (s *CommentService) EmotionChart(ctx context.Context, channelID string) (map[string]int64, error) {
	out := map[string]int64{}
	if err := get(ctx, s.api, "/comments/emotion-chart"+apiclient.BuildQuery(apiclient.P("channelId", channelID)), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CommentService) TopVideos(ctx context.Context, channelID string, limit int) ([]models.TopVideo, error) {
	if limit <= 0 {
		limit = 3
	}
	var out []models.TopVideo
	q := apiclient.BuildQuery(apiclient.P("channelId", channelID), apiclient.P("limit", limit))
	if err := get(ctx, s.api, "/comments/top-videos"+q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
