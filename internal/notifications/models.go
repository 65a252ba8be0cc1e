package notifications

import (
	"encoding/json"
	"time"
)

// Notification types emitted by the gamification flow
const (
	TypeAchievementUnlocked = "achievement_unlocked"
	TypeChallengeCompleted  = "challenge_completed"
	TypeLevelUp             = "level_up"
	TypeStreakMilestone     = "streak_milestone"
)

// Notification is one toast shown to the user, also persisted so the SPA
// can list recent ones
type Notification struct {
	ID        string    `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Type      string    `json:"type" db:"type"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	IsRead    bool      `json:"isRead" db:"is_read"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// WSMessage is the websocket envelope pushed to connected clients
type WSMessage struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}
