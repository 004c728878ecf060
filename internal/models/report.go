package models

import "time"

// WatchOutcome is the result of re-analyzing one watched URL
type WatchOutcome struct {
	URL          string    `json:"url"`
	ChannelID    string    `json:"channelId,omitempty"`
	JobID        int64     `json:"jobId,omitempty"`
	Status       JobStatus `json:"status"`
	Error        string    `json:"error,omitempty"`
	SnapshotPath string    `json:"snapshotPath,omitempty"`
	TotalViews   int64     `json:"totalViews"`
	TotalLikes   int64     `json:"totalLikes"`
	Duration     string    `json:"duration"`
}

// Succeeded reports whether the job finished and its dashboard was refreshed
func (o WatchOutcome) Succeeded() bool {
	return o.Status == JobSuccess && o.Error == ""
}

// WatchReport summarizes one scheduled run over the watch list
type WatchReport struct {
	GeneratedAt time.Time      `json:"generatedAt"`
	Schedule    string         `json:"schedule"`
	Outcomes    []WatchOutcome `json:"outcomes"`
	Succeeded   int            `json:"succeeded"`
	Failed      int            `json:"failed"`
}

// Alert is an out-of-band notification, e.g. the watcher losing its session
type Alert struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
