package models

type TotalComments struct {
	TotalComments int64 `json:"totalComments"`
}

type VideoTopic struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	VideoCount  int64  `json:"videoCount"`
}

type Keyword struct {
	Keyword string `json:"keyword"`
	Count   int64  `json:"count"`
}

type TopicSuggestion struct {
	Topic  string  `json:"topic"`
	Reason string  `json:"reason,omitempty"`
	Score  float64 `json:"score"`
}

type TopicComparison struct {
	Topic        string  `json:"topic"`
	VideoCount   int64   `json:"videoCount"`
	AvgViews     float64 `json:"avgViews"`
	AvgLikes     float64 `json:"avgLikes"`
	AvgComments  float64 `json:"avgComments"`
	PositiveRate float64 `json:"positiveRate"`
}
