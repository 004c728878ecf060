package models

type Comment struct {
	ID           int64         `json:"id"`
	AuthorName   string        `json:"authorName"`
	AuthorAvatar string        `json:"authorAvatar,omitempty"`
	Content      string        `json:"content"`
	LikeCount    int           `json:"likeCount"`
	Sentiment    string        `json:"sentiment"` // positive, negative, neutral
	Emotion      string        `json:"emotion"`   // happy, sad, angry, suggestion, love
	PublishedAt  Timestamp     `json:"publishedAt"`
	Video        *CommentVideo `json:"video,omitempty"`
}

type CommentVideo struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// SentimentStats holds comment counts keyed by sentiment and by emotion
type SentimentStats struct {
	Sentiment map[string]int64 `json:"sentiment"`
	Emotion   map[string]int64 `json:"emotion"`
}
