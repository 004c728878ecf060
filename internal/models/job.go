package models

// JobStatus is the lifecycle state of a server-side analysis job
type JobStatus string

const (
	JobPending JobStatus = "PENDING"
	JobRunning JobStatus = "RUNNING"
	JobSuccess JobStatus = "SUCCESS"
	JobFailed  JobStatus = "FAILED"
)

// IsTerminal reports whether no further transitions will be observed
func (s JobStatus) IsTerminal() bool {
	return s == JobSuccess || s == JobFailed
}

// AnalysisJob describes a channel/video analysis tracked by the backend
type AnalysisJob struct {
	JobID      int64     `json:"jobId"`
	Status     JobStatus `json:"status"`
	Progress   *int      `json:"progress,omitempty"` // 0-100
	Message    string    `json:"message,omitempty"`
	Error      string    `json:"error,omitempty"`
	ChannelID  string    `json:"channelId,omitempty"`
	CreatedAt  Timestamp `json:"createdAt"`
	UpdatedAt  Timestamp `json:"updatedAt"`
	FinishedAt Timestamp `json:"finishedAt"`
}

type AnalyzeRequest struct {
	URL string `json:"url"`
}
