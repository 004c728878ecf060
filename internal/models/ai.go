package models

type AISuggestionRequest struct {
	Keywords            []string `json:"keywords"`
	Description         string   `json:"description,omitempty"`
	ChannelID           string   `json:"channelId,omitempty"`
	UseChannelContext   bool     `json:"useChannelContext"`
	FetchYouTubeContext bool     `json:"fetchYouTubeContext"`
	SampleVideoLimit    int      `json:"sampleVideoLimit,omitempty"`
	Locale              string   `json:"locale,omitempty"`
}

type AISuggestionResponse struct {
	Titles      []string         `json:"titles"`
	Description string           `json:"description"`
	Hashtags    []string         `json:"hashtags"`
	Topics      []string         `json:"topics"`
	Trends      *TrendInsight    `json:"trends,omitempty"`
	Context     *ContextSnapshot `json:"context,omitempty"`
	GeneratedAt string           `json:"generatedAt"`
}

type TrendInsight struct {
	Google  []string `json:"google"`
	YouTube []string `json:"youtube"`
}

type ContextSnapshot struct {
	Keywords []string      `json:"keywords"`
	Channel  *ChannelBrief `json:"channel,omitempty"`
	Videos   []SourceVideo `json:"videos"`
}

type ChannelBrief struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	SubscriberCount int64  `json:"subscriberCount"`
	ViewCount       int64  `json:"viewCount"`
	Niche           string `json:"niche"`
}

type SourceVideo struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Views       int64     `json:"views"`
	Likes       int64     `json:"likes"`
	Comments    int64     `json:"comments"`
	PublishedAt Timestamp `json:"publishedAt"`
}
