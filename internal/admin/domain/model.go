package domain

import "time"

// Counts are the aggregate totals shown on the dashboard.
type Counts struct {
	TotalCitizens int `json:"total_citizens"`
	ActiveSOS     int `json:"active_sos"`
	TotalModules  int `json:"total_modules"`
	TotalQuizzes  int `json:"total_quizzes"`
}

type ActivityEntry struct {
	Kind         string    `json:"kind"`
	Message      string    `json:"message"`
	RelativeTime string    `json:"relative_time"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type Stats struct {
	Counts
	RecentActivity []ActivityEntry `json:"recent_activity"`
}
