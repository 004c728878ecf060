package services

import (
	"context"
	"net/http"

	"github.com/ytinsight/insight-client/internal/models"
)

type AIService struct {
	api Requester
}

func NewAIService(api Requester) *AIService {
	return &AIService{api: api}
}

// GenerateSuggestions asks the backend for titles, hashtags and topics
func (s *AIService) GenerateSuggestions(ctx context.Context, req models.AISuggestionRequest) (*models.AISuggestionResponse, error) {
	var out models.AISuggestionResponse
	if err := send(ctx, s.api, http.MethodPost, "/ai/suggestions", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
