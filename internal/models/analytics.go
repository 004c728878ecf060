package models

type ViewGrowth struct {
	YouTubeChannelID string        `json:"youtubeChannelId"`
	Period           string        `json:"period"` // daily, weekly, monthly
	StartDate        Timestamp     `json:"startDate"`
	EndDate          Timestamp     `json:"endDate"`
	Points           []GrowthPoint `json:"points"`
}

type GrowthPoint struct {
	Date       Timestamp `json:"date"`
	ViewGrowth int64     `json:"viewGrowth"`
	GrowthRate float64   `json:"growthRate"` // percent
}

type Interactions struct {
	YouTubeChannelID string             `json:"youtubeChannelId"`
	Type             string             `json:"type"` // view, like, comment
	StartDate        Timestamp          `json:"startDate"`
	EndDate          Timestamp          `json:"endDate"`
	Points           []InteractionPoint `json:"points"`
}

type InteractionPoint struct {
	Date  Timestamp `json:"date"`
	Value int64     `json:"value"`
}

type OptimalPostingTime struct {
	YouTubeChannelID string                  `json:"youtubeChannelId"`
	OptimalHours     []int                   `json:"optimalHours"`
	OptimalDays      []string                `json:"optimalDays"`
	Recommendations  []PostingRecommendation `json:"recommendations"`
}

type PostingRecommendation struct {
	Time               string  `json:"time"`
	Reason             string  `json:"reason"`
	ExpectedEngagement float64 `json:"expectedEngagement"` // 0-1
}
