package achievements

import "time"

// Achievement types
const (
	TypeMilestone = "milestone"
	TypeStreak    = "streak"
	TypeTotal     = "total"
	TypeSpecial   = "special"
)

// Rarity values
const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// Progress sources. Each achievement has exactly one: mirrors track an
// externally reported total and only ever raise progress to match it;
// counters accumulate commutative increments; specials fire once on a
// time-of-day condition.
const (
	SourceMirrorVideos   = "mirror_videos"
	SourceMirrorWorkouts = "mirror_workouts"
	SourceMirrorStreak   = "mirror_streak"
	SourceCounterMinutes = "counter_minutes"
	SourceEarlyBird      = "special_early_bird"
	SourceNightOwl       = "special_night_owl"
)

// Progress event types
const (
	EventVideoWatched     = "video_watched"
	EventWorkoutCompleted = "workout_completed"
	EventTimeSpent        = "time_spent"
	EventStreakUpdated    = "streak_updated"
)

// Challenge categories
const (
	ChallengeDaily   = "daily"
	ChallengeWeekly  = "weekly"
	ChallengeMonthly = "monthly"
	ChallengeSpecial = "special"
)

// Reward attached to an achievement or challenge
type Reward struct {
	XP    int    `json:"xp"`
	Badge string `json:"badge,omitempty"`
	Title string `json:"title,omitempty"`
}

// Achievement is a one-way-unlockable milestone. CurrentProgress only
// advances; once IsUnlocked is set it never resets and UnlockedAt never
// changes.
type Achievement struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Category        string     `json:"category"`
	Type            string     `json:"type"`
	Requirement     int        `json:"requirement"`
	CurrentProgress int        `json:"currentProgress"`
	IsUnlocked      bool       `json:"isUnlocked"`
	UnlockedAt      *time.Time `json:"unlockedAt,omitempty"`
	Reward          Reward     `json:"reward"`
	Rarity          string     `json:"rarity"`
	ProgressSource  string     `json:"progressSource"`
}

// Requirement is one component of a challenge; Current is clamped at Target
type Requirement struct {
	Type        string `json:"type"`
	Target      int    `json:"target"`
	Current     int    `json:"current"`
	Description string `json:"description"`
}

// Challenge is a time-boxed, multi-requirement task. Completion requires
// every requirement to reach its target inside the active window; an
// expired challenge can never complete afterwards.
type Challenge struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Category     string        `json:"category"`
	Difficulty   string        `json:"difficulty"`
	StartDate    time.Time     `json:"startDate"`
	EndDate      time.Time     `json:"endDate"`
	Requirements []Requirement `json:"requirements"`
	Rewards      Reward        `json:"rewards"`
	IsCompleted  bool          `json:"isCompleted"`
	CompletedAt  *time.Time    `json:"completedAt,omitempty"`
}

// IsActive reports whether the challenge window is open and it has not
// completed. Terminal states (completed, expired) are exclusive.
func (c *Challenge) IsActive(now time.Time) bool {
	return !c.IsCompleted && !now.Before(c.StartDate) && now.Before(c.EndDate)
}

// IsExpired reports whether the window closed without completion
func (c *Challenge) IsExpired(now time.Time) bool {
	return !c.IsCompleted && !now.Before(c.EndDate)
}

// UserStats aggregates the gamification counters. TotalXP and the activity
// counters are monotonic; streaks mirror the external activity service.
type UserStats struct {
	TotalXP                int       `json:"totalXP"`
	CurrentLevel           int       `json:"currentLevel"`
	XPToNextLevel          int       `json:"xpToNextLevel"`
	TotalVideosWatched     int       `json:"totalVideosWatched"`
	TotalWorkoutsCompleted int       `json:"totalWorkoutsCompleted"`
	TotalTimeSpent         int       `json:"totalTimeSpent"` // minutes
	CurrentStreak          int       `json:"currentStreak"`
	LongestStreak          int       `json:"longestStreak"`
	JoinDate               time.Time `json:"joinDate"`
	LastActivity           time.Time `json:"lastActivity"`
}

// State is the full per-user gamification state persisted as one blob
type State struct {
	Achievements   []Achievement `json:"achievements"`
	Challenges     []Challenge   `json:"challenges"`
	Stats          UserStats     `json:"stats"`
	UnlockedTitles []string      `json:"unlockedTitles"`
	CurrentTitle   string        `json:"currentTitle"`
}

// ProgressEvent is one tracked activity event feeding progress updates
type ProgressEvent struct {
	Type       string    `json:"type" validate:"required,oneof=video_watched workout_completed time_spent streak_updated"`
	Amount     int       `json:"amount" validate:"omitempty,gte=0"`
	OccurredAt time.Time `json:"occurredAt,omitempty"`
}

// SetTitleRequest selects an unlocked title for display
type SetTitleRequest struct {
	Title string `json:"title" validate:"required"`
}

// LevelProgress is the derived level view
type LevelProgress struct {
	Current  int     `json:"current"`
	Next     int     `json:"next"`
	Progress float64 `json:"progress"` // percent, clamped to [0,100]
}
