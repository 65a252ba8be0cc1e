package recommendation

import (
	"time"

	"github.com/lib/pq"
)

// Score categories
const (
	CategoryHigh   = "high"   // score >= 0.7
	CategoryMedium = "medium" // score >= 0.4
	CategoryLow    = "low"
)

// Interaction types
const (
	InteractionView     = "view"
	InteractionLike     = "like"
	InteractionComplete = "complete"
	InteractionSkip     = "skip"
)

// Time-of-day buckets, always derived from the clock
const (
	TimeOfDayMorning   = "morning"   // 06:00–12:00
	TimeOfDayAfternoon = "afternoon" // 12:00–18:00
	TimeOfDayEvening   = "evening"   // 18:00–22:00
	TimeOfDayNight     = "night"
)

// Video is a workout/content video candidate from the catalog
type Video struct {
	ID           int64          `json:"id" db:"id"`
	Title        string         `json:"title" db:"title"`
	Category     string         `json:"category" db:"category"`
	Tags         pq.StringArray `json:"tags" db:"tags"`
	Duration     string         `json:"duration" db:"duration"` // e.g. "25 min"
	Difficulty   string         `json:"difficulty" db:"difficulty"`
	Instructor   string         `json:"instructor" db:"instructor"`
	ThumbnailURL string         `json:"thumbnail_url" db:"thumbnail_url"`
	IsPremium    bool           `json:"is_premium" db:"is_premium"`
}

// Product is a store product candidate
type Product struct {
	ID          int64          `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Category    string         `json:"category" db:"category"`
	Tags        pq.StringArray `json:"tags" db:"tags"`
	Price       float64        `json:"price" db:"price"`
	Description string         `json:"description" db:"description"`
	ImageURL    string         `json:"image_url" db:"image_url"`
	InStock     bool           `json:"in_stock" db:"in_stock"`
}

// App is a companion-app candidate
type App struct {
	ID          int64          `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Category    string         `json:"category" db:"category"`
	Features    pq.StringArray `json:"features" db:"features"`
	Description string         `json:"description" db:"description"`
	Platform    string         `json:"platform" db:"platform"`
}

// RecommendedItem pairs a candidate with its score and a coarse
// user-facing reason string
type RecommendedItem[T any] struct {
	Item               T        `json:"item"`
	Score              float64  `json:"score"`
	Reasons            []string `json:"reasons,omitempty"`
	Category           string   `json:"category"`
	PersonalizedReason string   `json:"personalizedReason"`
}

// Filters narrows and truncates a recommendation result set. Applied in
// order: MinScore, Categories (OR), sort desc, MaxItems.
type Filters struct {
	MaxItems   int      `json:"maxItems,omitempty"`
	MinScore   float64  `json:"minScore,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// UserContext is the ephemeral per-user context. TimeOfDay and DayOfWeek
// are always derived from the clock, never settable by callers.
type UserContext struct {
	CurrentTime      time.Time `json:"currentTime"`
	TimeOfDay        string    `json:"timeOfDay"`
	DayOfWeek        string    `json:"dayOfWeek"`
	CurrentMood      string    `json:"currentMood,omitempty"`
	Location         string    `json:"location,omitempty"`
	LastActivityType string    `json:"lastActivityType,omitempty"`
	LastActivityTime time.Time `json:"lastActivityTime,omitempty"`
}

// PersonalizedContent is the refreshed recommendation set for one user
type PersonalizedContent struct {
	Videos      []RecommendedItem[Video]   `json:"videos"`
	Products    []RecommendedItem[Product] `json:"products"`
	Apps        []RecommendedItem[App]     `json:"apps"`
	Tips        []string                   `json:"tips"`
	LastUpdated time.Time                  `json:"lastUpdated"`
}

// UpdateContextRequest carries the caller-settable context fields
type UpdateContextRequest struct {
	CurrentMood *string `json:"currentMood,omitempty" validate:"omitempty,oneof=motivated tired energetic stressed neutral"`
	Location    *string `json:"location,omitempty"`
}

// TrackInteractionRequest records one user interaction with a content item
type TrackInteractionRequest struct {
	Type     string   `json:"type" validate:"required,oneof=view like complete skip"`
	ItemID   int64    `json:"itemId" validate:"required"`
	Category string   `json:"category"`
	Tags     []string `json:"tags,omitempty"`
}
