package achievements

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/vivafit/vivafit-backend/internal/activity"
)

type memoryRepo struct {
	mu     sync.Mutex
	states map[int64]*State
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{states: make(map[int64]*State)}
}

func (r *memoryRepo) Get(_ context.Context, userID int64) (*State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.states[userID], nil
}

func (r *memoryRepo) Save(_ context.Context, userID int64, state *State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[userID] = state
	return nil
}

type recordedNotification struct {
	Type    string
	Title   string
	Message string
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedNotification
}

func (n *recordingNotifier) Notify(_ context.Context, _ int64, notificationType, title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedNotification{notificationType, title, message})
}

func (n *recordingNotifier) countType(notificationType string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, event := range n.events {
		if event.Type == notificationType {
			count++
		}
	}
	return count
}

func newTestService() (Service, *memoryRepo, *recordingNotifier, *activity.MockService) {
	repo := newMemoryRepo()
	notifier := &recordingNotifier{}
	activitySvc := activity.NewMockService()
	return NewService(repo, activitySvc, notifier), repo, notifier, activitySvc
}

func findAchievement(t *testing.T, state *State, id string) *Achievement {
	t.Helper()
	for i := range state.Achievements {
		if state.Achievements[i].ID == id {
			return &state.Achievements[i]
		}
	}
	t.Fatalf("achievement %q not in state", id)
	return nil
}

func TestInitializeSeedsCatalogOnce(t *testing.T) {
	svc, repo, _, activitySvc := newTestService()
	ctx := context.Background()

	activitySvc.SetStats(1, &activity.Stats{WorkoutsCompleted: 2, TotalVideosWatched: 3})

	state, err := svc.InitializeAchievements(ctx, 1)
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if len(state.Achievements) != 10 {
		t.Fatalf("got %d achievements, want 10", len(state.Achievements))
	}
	if len(state.Challenges) != 3 {
		t.Fatalf("got %d challenges, want 3", len(state.Challenges))
	}

	// externally reported totals unlock first_workout and first_video
	// immediately and are mirrored into the aggregate counters
	first := findAchievement(t, state, "first_workout")
	if !first.IsUnlocked {
		t.Fatalf("first_workout should unlock from external stats")
	}
	if !findAchievement(t, state, "first_video").IsUnlocked {
		t.Fatalf("first_video should unlock from external stats")
	}
	if state.Stats.TotalVideosWatched != 3 {
		t.Fatalf("videos watched %d, want mirrored 3", state.Stats.TotalVideosWatched)
	}
	if got := findAchievement(t, state, "video_marathon").CurrentProgress; got != 3 {
		t.Fatalf("video_marathon progress %d, want 3", got)
	}

	// a second call must not reseed or lower progress
	again, err := svc.InitializeAchievements(ctx, 1)
	if err != nil {
		t.Fatalf("second initialize: %v", err)
	}
	if !findAchievement(t, again, "first_workout").IsUnlocked {
		t.Fatalf("reinitialize reset an unlocked achievement")
	}
	if repo.states[1] == nil {
		t.Fatalf("state not persisted")
	}
}

func TestProgressIsMonotonic(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	state, err := svc.UpdateProgress(ctx, 1, &ProgressEvent{Type: EventWorkoutCompleted, Amount: 5})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	warrior := findAchievement(t, state, "workout_warrior")
	if warrior.CurrentProgress != 5 {
		t.Fatalf("progress %d, want 5", warrior.CurrentProgress)
	}

	// a streak drop never lowers streak-mirror progress
	state, err = svc.UpdateProgress(ctx, 1, &ProgressEvent{Type: EventStreakUpdated, Amount: 9})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	week := findAchievement(t, state, "streak_week")
	if week.CurrentProgress != 7 || !week.IsUnlocked {
		t.Fatalf("streak_week progress %d unlocked=%v, want clamped 7 and unlocked", week.CurrentProgress, week.IsUnlocked)
	}
	unlockedAt := *week.UnlockedAt

	state, err = svc.UpdateProgress(ctx, 1, &ProgressEvent{Type: EventStreakUpdated, Amount: 2})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	week = findAchievement(t, state, "streak_week")
	if week.CurrentProgress != 7 {
		t.Fatalf("streak drop lowered progress to %d", week.CurrentProgress)
	}
	if !week.IsUnlocked || !week.UnlockedAt.Equal(unlockedAt) {
		t.Fatalf("unlock state changed after later updates")
	}
}

func TestStreakEventCanReportABreak(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	state, err := svc.UpdateProgress(ctx, 1, &ProgressEvent{Type: EventStreakUpdated, Amount: 9})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if state.Stats.CurrentStreak != 9 {
		t.Fatalf("streak %d, want 9", state.Stats.CurrentStreak)
	}

	// a zero amount is the broken streak, not a default single-unit event
	state, err = svc.UpdateProgress(ctx, 1, &ProgressEvent{Type: EventStreakUpdated, Amount: 0})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if state.Stats.CurrentStreak != 0 {
		t.Fatalf("streak %d after break, want 0", state.Stats.CurrentStreak)
	}
	if state.Stats.LongestStreak != 9 {
		t.Fatalf("longest streak %d, want 9 preserved", state.Stats.LongestStreak)
	}
	if got := findAchievement(t, state, "streak_week").CurrentProgress; got != 7 {
		t.Fatalf("streak_week progress %d, want 7 preserved", got)
	}
}

func TestUnlockIsIdempotent(t *testing.T) {
	svc, repo, notifier, _ := newTestService()
	ctx := context.Background()

	if err := svc.UnlockAchievement(ctx, 1, "first_video"); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	xpAfterFirst := repo.states[1].Stats.TotalXP

	if err := svc.UnlockAchievement(ctx, 1, "first_video"); err != nil {
		t.Fatalf("second unlock: %v", err)
	}
	if repo.states[1].Stats.TotalXP != xpAfterFirst {
		t.Fatalf("double unlock awarded XP twice")
	}
	if got := notifier.countType("achievement_unlocked"); got != 1 {
		t.Fatalf("got %d unlock notifications, want 1", got)
	}

	// unknown IDs are silent no-ops
	if err := svc.UnlockAchievement(ctx, 1, "does_not_exist"); err != nil {
		t.Fatalf("unknown id: %v", err)
	}
}

func TestLevelUpFiresExactlyOnce(t *testing.T) {
	svc, repo, notifier, _ := newTestService()
	ctx := context.Background()

	seeded := seedState(time.Now())
	seeded.Stats.TotalXP = 90
	seeded.Stats.CurrentLevel = LevelFromXP(90)
	repo.states[1] = seeded

	// first_video awards 25 XP: 90 -> 115 crosses the 100 XP boundary
	if err := svc.UnlockAchievement(ctx, 1, "first_video"); err != nil {
		t.Fatalf("unlock: %v", err)
	}

	state := repo.states[1]
	if state.Stats.TotalXP != 115 || state.Stats.CurrentLevel != 2 {
		t.Fatalf("stats after unlock: xp=%d level=%d, want 115/2", state.Stats.TotalXP, state.Stats.CurrentLevel)
	}
	if got := notifier.countType("level_up"); got != 1 {
		t.Fatalf("got %d level-up notifications, want exactly 1", got)
	}
}

func TestExpiredChallengeNeverCompletes(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	seeded := seedState(time.Now())
	for i := range seeded.Challenges {
		seeded.Challenges[i].StartDate = time.Now().Add(-48 * time.Hour)
		seeded.Challenges[i].EndDate = time.Now().Add(-24 * time.Hour)
	}
	repo.states[1] = seeded

	state, err := svc.UpdateProgress(ctx, 1, &ProgressEvent{Type: EventWorkoutCompleted, Amount: 50})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	now := time.Now()
	for _, challenge := range state.Challenges {
		if challenge.IsCompleted {
			t.Fatalf("expired challenge %q completed", challenge.ID)
		}
		if challenge.IsCompleted && challenge.IsActive(now) {
			t.Fatalf("challenge %q both completed and active", challenge.ID)
		}
	}

	// a forced completion on an expired challenge is also a no-op
	if err := svc.CompleteChallenge(ctx, 1, state.Challenges[0].ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if repo.states[1].Challenges[0].IsCompleted {
		t.Fatalf("forced completion bypassed the expiry")
	}
}

func TestChallengeCompletesWhenAllRequirementsMet(t *testing.T) {
	svc, _, notifier, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.UpdateProgress(ctx, 1, &ProgressEvent{Type: EventWorkoutCompleted}); err != nil {
		t.Fatalf("workout: %v", err)
	}
	state, err := svc.UpdateProgress(ctx, 1, &ProgressEvent{Type: EventVideoWatched})
	if err != nil {
		t.Fatalf("video: %v", err)
	}

	var daily *Challenge
	for i := range state.Challenges {
		if state.Challenges[i].ID == "daily_mover" {
			daily = &state.Challenges[i]
		}
	}
	if daily == nil || !daily.IsCompleted {
		t.Fatalf("daily_mover should complete after one workout and one video")
	}
	if daily.IsActive(time.Now()) {
		t.Fatalf("completed challenge still active")
	}
	if got := notifier.countType("challenge_completed"); got != 1 {
		t.Fatalf("got %d challenge notifications, want 1", got)
	}
}

func TestRequirementsClampAtTarget(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	state, err := svc.UpdateProgress(ctx, 1, &ProgressEvent{Type: EventTimeSpent, Amount: 500})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	for _, challenge := range state.Challenges {
		for _, requirement := range challenge.Requirements {
			if requirement.Current > requirement.Target {
				t.Fatalf("challenge %q requirement %q exceeds target: %d > %d",
					challenge.ID, requirement.Type, requirement.Current, requirement.Target)
			}
		}
	}
}

func TestEarlyBirdAndNightOwlFireOnce(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	earlyMorning := time.Date(2026, 3, 4, 6, 15, 0, 0, time.UTC)
	state, err := svc.UpdateProgress(ctx, 1, &ProgressEvent{Type: EventWorkoutCompleted, OccurredAt: earlyMorning})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !findAchievement(t, state, "early_bird").IsUnlocked {
		t.Fatalf("06:15 workout should unlock early_bird")
	}
	if findAchievement(t, state, "night_owl").IsUnlocked {
		t.Fatalf("morning workout unlocked night_owl")
	}

	lateNight := time.Date(2026, 3, 4, 22, 0, 0, 0, time.UTC)
	state, err = svc.UpdateProgress(ctx, 1, &ProgressEvent{Type: EventWorkoutCompleted, OccurredAt: lateNight})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !findAchievement(t, state, "night_owl").IsUnlocked {
		t.Fatalf("22:00 workout should unlock night_owl")
	}
}

func TestStreakSyncEmitsMilestoneToast(t *testing.T) {
	svc, _, notifier, activitySvc := newTestService()
	ctx := context.Background()

	activitySvc.SetStats(1, &activity.Stats{CurrentStreak: 14, LongestStreak: 14})

	stats, err := svc.SyncStreak(ctx, 1)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if stats.CurrentStreak != 14 || stats.LongestStreak != 14 {
		t.Fatalf("streak %d/%d, want 14/14", stats.CurrentStreak, stats.LongestStreak)
	}
	if got := notifier.countType("streak_milestone"); got != 1 {
		t.Fatalf("got %d milestone notifications, want 1", got)
	}

	// unchanged streak does not repeat the toast
	if _, err := svc.SyncStreak(ctx, 1); err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if got := notifier.countType("streak_milestone"); got != 1 {
		t.Fatalf("repeat sync duplicated the milestone toast")
	}
}

func TestSetCurrentTitleRequiresUnlock(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	if err := svc.SetCurrentTitle(ctx, 1, "Centurião"); err != ErrTitleLocked {
		t.Fatalf("locked title: err = %v, want ErrTitleLocked", err)
	}

	if err := svc.UnlockAchievement(ctx, 1, "first_workout"); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if err := svc.SetCurrentTitle(ctx, 1, "Iniciante Dedicado"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if repo.states[1].CurrentTitle != "Iniciante Dedicado" {
		t.Fatalf("current title %q", repo.states[1].CurrentTitle)
	}
}

func TestLevelProgressClamped(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	seeded := seedState(time.Now())
	seeded.Stats.TotalXP = 150
	seeded.Stats.CurrentLevel = LevelFromXP(150)
	repo.states[1] = seeded

	progress, err := svc.GetLevelProgress(ctx, 1)
	if err != nil {
		t.Fatalf("level progress: %v", err)
	}
	if progress.Current != 2 || progress.Next != 3 {
		t.Fatalf("levels %d/%d, want 2/3", progress.Current, progress.Next)
	}
	// 150 XP sits at (150-100)/(400-100) ≈ 16.67%
	if progress.Progress < 16 || progress.Progress > 17 {
		t.Fatalf("progress %v, want about 16.67", progress.Progress)
	}
	if progress.Progress < 0 || progress.Progress > 100 {
		t.Fatalf("progress %v out of [0,100]", progress.Progress)
	}
}
