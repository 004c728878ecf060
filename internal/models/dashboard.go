package models

// DashboardMetrics is the channel headline snapshot
type DashboardMetrics struct {
	ChannelInternalID int64     `json:"channelInternalId"`
	YouTubeChannelID  string    `json:"youtubeChannelId"`
	ChannelName       string    `json:"channelName"`
	AvatarURL         string    `json:"avatarUrl,omitempty"`
	SubscriberCount   int64     `json:"subscriberCount"`
	SyncedVideoCount  int       `json:"syncedVideoCount"`
	LastSyncedAt      Timestamp `json:"lastSyncedAt"`
	TotalViews        int64     `json:"totalViews"`
	TotalLikes        int64     `json:"totalLikes"`
	TotalComments     int64     `json:"totalComments"`
	TotalVideos       int64     `json:"totalVideos"`
}

type DashboardTrend struct {
	YouTubeChannelID string       `json:"youtubeChannelId"`
	StartDate        Timestamp    `json:"startDate"`
	EndDate          Timestamp    `json:"endDate"`
	Points           []TrendPoint `json:"points"`
}

type TrendPoint struct {
	Date     Timestamp `json:"date"`
	Views    int64     `json:"views"`
	Likes    int64     `json:"likes"`
	Comments int64     `json:"comments"`
}

type TopVideo struct {
	ID           int64     `json:"id"`
	VideoID      string    `json:"videoId"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	ViewCount    int64     `json:"viewCount"`
	LikeCount    int64     `json:"likeCount"`
	CommentCount int64     `json:"commentCount"`
	PublishedAt  Timestamp `json:"publishedAt"`
}

type SentimentSummary struct {
	TotalComments int64   `json:"totalComments"`
	PositiveCount int64   `json:"positiveCount"`
	NegativeCount int64   `json:"negativeCount"`
	NeutralCount  int64   `json:"neutralCount"`
	PositiveRatio float64 `json:"positiveRatio"`
	NegativeRatio float64 `json:"negativeRatio"`
	NeutralRatio  float64 `json:"neutralRatio"`
}

// DashboardSnapshot groups the dependent slices refreshed after an analysis
type DashboardSnapshot struct {
	ChannelID string            `json:"channelId"`
	Metrics   *DashboardMetrics `json:"metrics,omitempty"`
	Trend     *DashboardTrend   `json:"trend,omitempty"`
	TopVideos []TopVideo        `json:"topVideos,omitempty"`
	Sentiment *SentimentSummary `json:"sentiment,omitempty"`
}
