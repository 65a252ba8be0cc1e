package recommendation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vivafit/vivafit-backend/internal/preferences"
)

type stubPrefsService struct {
	prefs   *preferences.UserPreferences
	updates []*preferences.UpdatePreferencesRequest
}

func (s *stubPrefsService) Get(context.Context, int64) (*preferences.UserPreferences, error) {
	return s.prefs, nil
}

func (s *stubPrefsService) Update(_ context.Context, _ int64, req *preferences.UpdatePreferencesRequest) (*preferences.UserPreferences, error) {
	s.updates = append(s.updates, req)
	if req.WorkoutDifficulty != nil {
		s.prefs.WorkoutDifficulty = *req.WorkoutDifficulty
	}
	return s.prefs, nil
}

func (s *stubPrefsService) Reset(context.Context, int64) (*preferences.UserPreferences, error) {
	return s.prefs, nil
}

func (s *stubPrefsService) ListRestrictions() []preferences.DietaryRestriction { return nil }
func (s *stubPrefsService) GetAlternatives(string) []string                    { return nil }
func (s *stubPrefsService) CheckIngredient(context.Context, int64, string) (*preferences.IngredientCheck, error) {
	return nil, nil
}
func (s *stubPrefsService) SetUpdateHook(preferences.UpdateHook) {}

type stubRepo struct {
	videos []Video
	err    error
}

func (r *stubRepo) ListVideos(context.Context) ([]Video, error) {
	return r.videos, r.err
}
func (r *stubRepo) ListProducts(context.Context) ([]Product, error) {
	return nil, r.err
}
func (r *stubRepo) ListApps(context.Context) ([]App, error) {
	return nil, r.err
}

func newTestStore(prefs *preferences.UserPreferences, repo Repository) (*Store, *stubPrefsService) {
	svc := &stubPrefsService{prefs: prefs}
	return NewStore(svc, repo, nil, 10, time.Hour), svc
}

func TestRefreshIsNoOpWhenSmartRecommendationsDisabled(t *testing.T) {
	prefs := preferences.DefaultPreferences()
	prefs.EnableSmartRecommendations = false

	store, _ := newTestStore(prefs, &stubRepo{videos: []Video{{Title: "x", Category: "Yoga"}}})

	if err := store.Refresh(context.Background(), 1, "manual"); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	store.mu.RLock()
	_, ok := store.content[1]
	store.mu.RUnlock()
	if ok {
		t.Fatalf("disabled refresh produced content")
	}
}

func TestRefreshFailureLeavesPriorContentUntouched(t *testing.T) {
	repo := &stubRepo{videos: []Video{{Title: "x", Category: "Funcional"}}}
	store, _ := newTestStore(preferences.DefaultPreferences(), repo)

	if err := store.Refresh(context.Background(), 1, "manual"); err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	store.mu.RLock()
	before := store.content[1]
	store.mu.RUnlock()

	repo.err = errors.New("catalog down")
	if err := store.Refresh(context.Background(), 1, "manual"); err == nil {
		t.Fatalf("expected refresh error")
	}

	store.mu.RLock()
	after := store.content[1]
	store.mu.RUnlock()

	if after != before {
		t.Fatalf("failed refresh replaced the previous content set")
	}
}

func TestTrackInteractionInfersMood(t *testing.T) {
	store, _ := newTestStore(preferences.DefaultPreferences(), &stubRepo{})
	ctx := context.Background()

	if err := store.TrackInteraction(ctx, 1, &TrackInteractionRequest{Type: InteractionComplete, ItemID: 10}); err != nil {
		t.Fatalf("track: %v", err)
	}
	if uc := store.GetContext(1); uc.CurrentMood != "motivated" {
		t.Fatalf("after complete: mood %q, want motivated", uc.CurrentMood)
	}

	if err := store.TrackInteraction(ctx, 1, &TrackInteractionRequest{Type: InteractionSkip, ItemID: 11}); err != nil {
		t.Fatalf("track: %v", err)
	}
	if uc := store.GetContext(1); uc.CurrentMood != "neutral" {
		t.Fatalf("after skip: mood %q, want neutral", uc.CurrentMood)
	}
}

func TestSustainedAdvancedCompletionsRaiseDifficulty(t *testing.T) {
	prefs := preferences.DefaultPreferences()
	store, svc := newTestStore(prefs, &stubRepo{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := store.TrackInteraction(ctx, 1, &TrackInteractionRequest{
			Type:   InteractionComplete,
			ItemID: int64(i + 1),
			Tags:   []string{"avançado"},
		})
		if err != nil {
			t.Fatalf("track %d: %v", i, err)
		}
	}

	if len(svc.updates) != 1 {
		t.Fatalf("got %d preference updates, want 1", len(svc.updates))
	}
	if prefs.WorkoutDifficulty != preferences.DifficultyChallenging {
		t.Fatalf("difficulty %q, want challenging", prefs.WorkoutDifficulty)
	}
}

func TestBeginnerCompletionsLowerChallengingDifficulty(t *testing.T) {
	prefs := preferences.DefaultPreferences()
	prefs.WorkoutDifficulty = preferences.DifficultyChallenging
	store, _ := newTestStore(prefs, &stubRepo{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := store.TrackInteraction(ctx, 1, &TrackInteractionRequest{
			Type:   InteractionComplete,
			ItemID: int64(i + 1),
			Tags:   []string{"iniciante"},
		})
		if err != nil {
			t.Fatalf("track %d: %v", i, err)
		}
	}

	if prefs.WorkoutDifficulty != preferences.DifficultyModerate {
		t.Fatalf("difficulty %q, want moderate", prefs.WorkoutDifficulty)
	}
}

func TestUpdateContextMoodChangeTriggersRefresh(t *testing.T) {
	repo := &stubRepo{videos: []Video{{Title: "x", Category: "Funcional"}}}
	store, _ := newTestStore(preferences.DefaultPreferences(), repo)

	mood := "energetic"
	uc, err := store.UpdateContext(context.Background(), 1, &UpdateContextRequest{CurrentMood: &mood})
	if err != nil {
		t.Fatalf("update context: %v", err)
	}
	if uc.CurrentMood != "energetic" {
		t.Fatalf("mood %q, want energetic", uc.CurrentMood)
	}

	store.mu.RLock()
	_, ok := store.content[1]
	store.mu.RUnlock()
	if !ok {
		t.Fatalf("mood change did not trigger a refresh")
	}
}
