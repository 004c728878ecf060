package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ytinsight/insight-client/internal/models"
)

// YouTubeService submits analysis jobs and reports their status
type YouTubeService struct {
	api Requester
}

func NewYouTubeService(api Requester) *YouTubeService {
	return &YouTubeService{api: api}
}

// Analyze creates a server-side analysis job for a channel or video URL
func (s *YouTubeService) Analyze(ctx context.Context, url string) (*models.AnalysisJob, error) {
	var out models.AnalysisJob
	if err := send(ctx, s.api, http.MethodPost, "/youtube/analyze", models.AnalyzeRequest{URL: url}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *YouTubeService) JobStatus(ctx context.Context, jobID int64) (*models.AnalysisJob, error) {
	var out models.AnalysisJob
	if err := get(ctx, s.api, fmt.Sprintf("/youtube/analyze/%d", jobID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
