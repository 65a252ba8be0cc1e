package achievements

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/vivafit/vivafit-backend/internal/activity"
	"github.com/vivafit/vivafit-backend/internal/common/utils"
	"github.com/vivafit/vivafit-backend/internal/notifications"
)

var ErrTitleLocked = errors.New("title has not been unlocked")

type Service interface {
	InitializeAchievements(ctx context.Context, userID int64) (*State, error)
	GetState(ctx context.Context, userID int64) (*State, error)
	GetAchievementsByCategory(ctx context.Context, userID int64, category string) ([]Achievement, error)
	GetChallenges(ctx context.Context, userID int64, status string) ([]Challenge, error)

	UpdateProgress(ctx context.Context, userID int64, event *ProgressEvent) (*State, error)
	UnlockAchievement(ctx context.Context, userID int64, achievementID string) error
	CompleteChallenge(ctx context.Context, userID int64, challengeID string) error
	SyncStreak(ctx context.Context, userID int64) (*UserStats, error)

	SetCurrentTitle(ctx context.Context, userID int64, title string) error
	GetLevelProgress(ctx context.Context, userID int64) (*LevelProgress, error)
}

type service struct {
	repo     Repository
	activity activity.Service
	notifier notifications.Notifier

	// Per-user mutexes serialize every state mutation so two concurrent
	// progress events cannot lose an update
	locksMux sync.Mutex
	locks    map[int64]*sync.Mutex

	now func() time.Time
}

func NewService(repo Repository, activitySvc activity.Service, notifier notifications.Notifier) Service {
	return &service{
		repo:     repo,
		activity: activitySvc,
		notifier: notifier,
		locks:    make(map[int64]*sync.Mutex),
		now:      time.Now,
	}
}

func (s *service) userLock(userID int64) *sync.Mutex {
	s.locksMux.Lock()
	defer s.locksMux.Unlock()

	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// InitializeAchievements seeds the catalog once for an empty state, then
// raises progress to match externally reported activity totals.
func (s *service) InitializeAchievements(ctx context.Context, userID int64) (*State, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.loadOrSeed(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.syncMirrors(ctx, userID, state)

	if err := s.repo.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *service) loadOrSeed(ctx context.Context, userID int64) (*State, error) {
	state, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state == nil || len(state.Achievements) == 0 {
		state = seedState(s.now())
	}
	return state, nil
}

// syncMirrors raises mirror-sourced progress to the external activity
// totals. Stats fetch failures are logged and skipped; progress is never
// lowered.
func (s *service) syncMirrors(ctx context.Context, userID int64, state *State) {
	stats, err := s.activity.GetUserActivityStats(ctx, userID)
	if err != nil {
		log.Printf("achievements: activity stats unavailable for user %d: %v", userID, err)
		return
	}

	if stats.TotalVideosWatched > state.Stats.TotalVideosWatched {
		state.Stats.TotalVideosWatched = stats.TotalVideosWatched
	}
	if stats.WorkoutsCompleted > state.Stats.TotalWorkoutsCompleted {
		state.Stats.TotalWorkoutsCompleted = stats.WorkoutsCompleted
	}
	if stats.CurrentStreak > state.Stats.CurrentStreak {
		state.Stats.CurrentStreak = stats.CurrentStreak
	}
	if state.Stats.CurrentStreak > state.Stats.LongestStreak {
		state.Stats.LongestStreak = state.Stats.CurrentStreak
	}

	s.applyProgress(ctx, userID, state, nil)
}

func (s *service) GetState(ctx context.Context, userID int64) (*State, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.loadOrSeed(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *service) GetAchievementsByCategory(ctx context.Context, userID int64, category string) ([]Achievement, error) {
	state, err := s.GetState(ctx, userID)
	if err != nil {
		return nil, err
	}

	if category == "" {
		return state.Achievements, nil
	}

	filtered := make([]Achievement, 0)
	for _, achievement := range state.Achievements {
		if achievement.Category == category {
			filtered = append(filtered, achievement)
		}
	}
	return filtered, nil
}

// GetChallenges filters by status: active, completed, expired, or all
func (s *service) GetChallenges(ctx context.Context, userID int64, status string) ([]Challenge, error) {
	state, err := s.GetState(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	filtered := make([]Challenge, 0)
	for _, challenge := range state.Challenges {
		switch status {
		case "active":
			if challenge.IsActive(now) {
				filtered = append(filtered, challenge)
			}
		case "completed":
			if challenge.IsCompleted {
				filtered = append(filtered, challenge)
			}
		case "expired":
			if challenge.IsExpired(now) {
				filtered = append(filtered, challenge)
			}
		default:
			filtered = append(filtered, challenge)
		}
	}
	return filtered, nil
}

// UpdateProgress applies one activity event: aggregate counters advance,
// achievement progress re-derives per its source, challenge requirements
// clamp at their targets, and anything reaching its requirement unlocks or
// completes. All mutations for one user are serialized.
func (s *service) UpdateProgress(ctx context.Context, userID int64, event *ProgressEvent) (*State, error) {
	if err := utils.ValidateStruct(event); err != nil {
		return nil, err
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.loadOrSeed(ctx, userID)
	if err != nil {
		return nil, err
	}

	amount := event.Amount
	// streak updates carry an absolute value; zero means the streak broke
	if amount == 0 && event.Type != EventStreakUpdated {
		amount = 1
	}
	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = s.now()
	}

	switch event.Type {
	case EventVideoWatched:
		state.Stats.TotalVideosWatched += amount
	case EventWorkoutCompleted:
		state.Stats.TotalWorkoutsCompleted += amount
	case EventTimeSpent:
		state.Stats.TotalTimeSpent += amount
	case EventStreakUpdated:
		state.Stats.CurrentStreak = amount
		if amount > state.Stats.LongestStreak {
			state.Stats.LongestStreak = amount
		}
	}
	state.Stats.LastActivity = occurredAt

	s.applyProgress(ctx, userID, state, &appliedEvent{
		eventType:  event.Type,
		amount:     amount,
		occurredAt: occurredAt,
	})

	if err := s.repo.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	return state, nil
}

type appliedEvent struct {
	eventType  string
	amount     int
	occurredAt time.Time
}

// applyProgress re-derives achievement and challenge progress from the
// current stats and the triggering event (nil when only mirror sync ran)
func (s *service) applyProgress(ctx context.Context, userID int64, state *State, event *appliedEvent) {
	for i := range state.Achievements {
		achievement := &state.Achievements[i]

		switch achievement.ProgressSource {
		case SourceMirrorVideos:
			raiseProgress(achievement, state.Stats.TotalVideosWatched)
		case SourceMirrorWorkouts:
			raiseProgress(achievement, state.Stats.TotalWorkoutsCompleted)
		case SourceMirrorStreak:
			raiseProgress(achievement, state.Stats.CurrentStreak)
		case SourceCounterMinutes:
			if event != nil && event.eventType == EventTimeSpent {
				raiseProgress(achievement, achievement.CurrentProgress+event.amount)
			}
		case SourceEarlyBird:
			if event != nil && event.eventType == EventWorkoutCompleted &&
				achievement.CurrentProgress == 0 && event.occurredAt.Hour() < 7 {
				raiseProgress(achievement, achievement.Requirement)
			}
		case SourceNightOwl:
			if event != nil && event.eventType == EventWorkoutCompleted &&
				achievement.CurrentProgress == 0 && event.occurredAt.Hour() >= 22 {
				raiseProgress(achievement, achievement.Requirement)
			}
		}

		if achievement.CurrentProgress >= achievement.Requirement && !achievement.IsUnlocked {
			s.unlockLocked(ctx, userID, state, achievement)
		}
	}

	if event == nil {
		return
	}

	now := s.now()
	for i := range state.Challenges {
		challenge := &state.Challenges[i]
		if !challenge.IsActive(now) {
			// expired challenges never complete, even retroactively
			continue
		}

		for j := range challenge.Requirements {
			requirement := &challenge.Requirements[j]
			if requirement.Type != event.eventType {
				continue
			}
			requirement.Current += event.amount
			if requirement.Current > requirement.Target {
				requirement.Current = requirement.Target
			}
		}

		if challengeSatisfied(challenge) && !challenge.IsCompleted {
			s.completeLocked(ctx, userID, state, challenge)
		}
	}
}

// raiseProgress advances progress to target without ever lowering it, and
// clamps at the requirement
func raiseProgress(achievement *Achievement, target int) {
	if target > achievement.Requirement {
		target = achievement.Requirement
	}
	if target > achievement.CurrentProgress {
		achievement.CurrentProgress = target
	}
}

func challengeSatisfied(challenge *Challenge) bool {
	for _, requirement := range challenge.Requirements {
		if requirement.Current < requirement.Target {
			return false
		}
	}
	return len(challenge.Requirements) > 0
}

// unlockLocked performs the one-way locked→unlocked transition. Callers
// hold the user lock; the IsUnlocked guard makes it idempotent.
func (s *service) unlockLocked(ctx context.Context, userID int64, state *State, achievement *Achievement) {
	if achievement.IsUnlocked {
		return
	}

	now := s.now()
	achievement.IsUnlocked = true
	achievement.UnlockedAt = &now
	achievement.CurrentProgress = achievement.Requirement

	s.addXPLocked(ctx, userID, state, achievement.Reward.XP)
	if achievement.Reward.Title != "" {
		state.UnlockedTitles = append(state.UnlockedTitles, achievement.Reward.Title)
	}

	unlocksTotal.WithLabelValues(achievement.Rarity).Inc()

	s.notifier.Notify(ctx, userID, notifications.TypeAchievementUnlocked,
		"Conquista desbloqueada!",
		fmt.Sprintf("Você desbloqueou \"%s\" (+%d XP)", achievement.Title, achievement.Reward.XP))

	s.activity.LogUserActivity(ctx, userID, &activity.LogEntry{
		Type:      "achievement_unlocked",
		Detail:    achievement.ID,
		XPAwarded: achievement.Reward.XP,
	})
}

// completeLocked performs the one-way active→completed transition
func (s *service) completeLocked(ctx context.Context, userID int64, state *State, challenge *Challenge) {
	if challenge.IsCompleted {
		return
	}

	now := s.now()
	challenge.IsCompleted = true
	challenge.CompletedAt = &now

	s.addXPLocked(ctx, userID, state, challenge.Rewards.XP)
	challengeCompletionsTotal.Inc()

	s.notifier.Notify(ctx, userID, notifications.TypeChallengeCompleted,
		"Desafio concluído!",
		fmt.Sprintf("Você concluiu \"%s\" (+%d XP)", challenge.Title, challenge.Rewards.XP))

	s.activity.LogUserActivity(ctx, userID, &activity.LogEntry{
		Type:      "challenge_completed",
		Detail:    challenge.ID,
		XPAwarded: challenge.Rewards.XP,
	})
}

// addXPLocked adds XP and recomputes the level. A level increase emits the
// level-up notification exactly once per call.
func (s *service) addXPLocked(ctx context.Context, userID int64, state *State, amount int) {
	if amount <= 0 {
		return
	}

	previousLevel := LevelFromXP(state.Stats.TotalXP)
	state.Stats.TotalXP += amount
	state.Stats.CurrentLevel = LevelFromXP(state.Stats.TotalXP)
	state.Stats.XPToNextLevel = XPForLevel(state.Stats.CurrentLevel+1) - state.Stats.TotalXP

	xpAwardedTotal.Add(float64(amount))

	if state.Stats.CurrentLevel > previousLevel {
		levelUpsTotal.Inc()
		s.notifier.Notify(ctx, userID, notifications.TypeLevelUp,
			"Subiu de nível!",
			fmt.Sprintf("Você alcançou o nível %d", state.Stats.CurrentLevel))
	}
}

// UnlockAchievement forces the one-way unlock transition. Unknown IDs and
// already-unlocked achievements are silent no-ops.
func (s *service) UnlockAchievement(ctx context.Context, userID int64, achievementID string) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.loadOrSeed(ctx, userID)
	if err != nil {
		return err
	}

	for i := range state.Achievements {
		if state.Achievements[i].ID == achievementID {
			s.unlockLocked(ctx, userID, state, &state.Achievements[i])
			break
		}
	}
	return s.repo.Save(ctx, userID, state)
}

// CompleteChallenge forces the one-way completion transition. Unknown IDs,
// completed challenges, and expired challenges are silent no-ops.
func (s *service) CompleteChallenge(ctx context.Context, userID int64, challengeID string) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.loadOrSeed(ctx, userID)
	if err != nil {
		return err
	}

	now := s.now()
	for i := range state.Challenges {
		challenge := &state.Challenges[i]
		if challenge.ID != challengeID {
			continue
		}
		if challenge.IsExpired(now) {
			break
		}
		s.completeLocked(ctx, userID, state, challenge)
		break
	}
	return s.repo.Save(ctx, userID, state)
}

// SyncStreak pulls the authoritative streak from the activity service and
// re-runs progress. A streak landing on a 7-day multiple emits a milestone
// toast.
func (s *service) SyncStreak(ctx context.Context, userID int64) (*UserStats, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.loadOrSeed(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.activity.GetUserActivityStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	previousStreak := state.Stats.CurrentStreak
	state.Stats.CurrentStreak = stats.CurrentStreak
	if stats.LongestStreak > state.Stats.LongestStreak {
		state.Stats.LongestStreak = stats.LongestStreak
	}
	if state.Stats.CurrentStreak > state.Stats.LongestStreak {
		state.Stats.LongestStreak = state.Stats.CurrentStreak
	}

	s.applyProgress(ctx, userID, state, nil)

	if state.Stats.CurrentStreak != previousStreak &&
		state.Stats.CurrentStreak > 0 && state.Stats.CurrentStreak%7 == 0 {
		s.notifier.Notify(ctx, userID, notifications.TypeStreakMilestone,
			"Sequência em dia!",
			fmt.Sprintf("%d dias seguidos de atividade. Continue assim!", state.Stats.CurrentStreak))
	}

	if err := s.repo.Save(ctx, userID, state); err != nil {
		return nil, err
	}

	copied := state.Stats
	return &copied, nil
}

// SetCurrentTitle selects a display title; only unlocked titles qualify
func (s *service) SetCurrentTitle(ctx context.Context, userID int64, title string) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.loadOrSeed(ctx, userID)
	if err != nil {
		return err
	}

	for _, unlocked := range state.UnlockedTitles {
		if unlocked == title {
			state.CurrentTitle = title
			return s.repo.Save(ctx, userID, state)
		}
	}
	return ErrTitleLocked
}

// GetLevelProgress returns the derived level view with progress clamped to
// [0,100]
func (s *service) GetLevelProgress(ctx context.Context, userID int64) (*LevelProgress, error) {
	state, err := s.GetState(ctx, userID)
	if err != nil {
		return nil, err
	}

	current := state.Stats.CurrentLevel
	if current < 1 {
		current = LevelFromXP(state.Stats.TotalXP)
	}

	floor := XPForLevel(current)
	ceiling := XPForLevel(current + 1)
	progress := float64(state.Stats.TotalXP-floor) / float64(ceiling-floor) * 100

	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	return &LevelProgress{
		Current:  current,
		Next:     current + 1,
		Progress: progress,
	}, nil
}
