package activity

import "time"

// Stats is the aggregated activity summary served by the activity service
type Stats struct {
	WorkoutsCompleted  int       `json:"workoutsCompleted"`
	TotalVideosWatched int       `json:"totalVideosWatched"`
	TotalMinutes       int       `json:"totalMinutes"`
	CaloriesBurned     float64   `json:"caloriesBurned"`
	CurrentStreak      int       `json:"currentStreak"`
	LongestStreak      int       `json:"longestStreak"`
	LastWorkoutAt      time.Time `json:"lastWorkoutAt"`
}

// LogEntry is one activity event pushed to the activity service
type LogEntry struct {
	Type      string    `json:"type"`
	Detail    string    `json:"detail,omitempty"`
	XPAwarded int       `json:"xpAwarded,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
