package recommendation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/vivafit/vivafit-backend/internal/common/utils"
	"github.com/vivafit/vivafit-backend/internal/preferences"
)

// How many recent interactions feed the difficulty drift heuristic, and how
// many matching completions trigger an adjustment.
const (
	interactionWindow = 10
	driftThreshold    = 3
)

type interaction struct {
	Type string
	Tags []string
	At   time.Time
}

// Store holds ephemeral per-user context and the current personalized
// content set. Context is in-memory only; content is write-through cached in
// Redis so it survives restarts.
type Store struct {
	mu           sync.RWMutex
	contexts     map[int64]*UserContext
	content      map[int64]*PersonalizedContent
	interactions map[int64][]interaction

	prefs      preferences.Service
	repo       Repository
	redis      *redis.Client
	maxItems   int
	staleAfter time.Duration
	now        func() time.Time
}

// NewStore builds the context store. redisClient may be nil; caching is then
// skipped entirely.
func NewStore(prefs preferences.Service, repo Repository, redisClient *redis.Client, maxItems int, staleAfter time.Duration) *Store {
	if maxItems <= 0 {
		maxItems = 10
	}
	if staleAfter <= 0 {
		staleAfter = time.Hour
	}
	return &Store{
		contexts:     make(map[int64]*UserContext),
		content:      make(map[int64]*PersonalizedContent),
		interactions: make(map[int64][]interaction),
		prefs:        prefs,
		repo:         repo,
		redis:        redisClient,
		maxItems:     maxItems,
		staleAfter:   staleAfter,
		now:          time.Now,
	}
}

// GetContext returns the user's current context with the time fields
// re-derived from the clock.
func (s *Store) GetContext(userID int64) *UserContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contextLocked(userID)
}

// contextLocked refreshes the derived fields in place; callers hold s.mu
func (s *Store) contextLocked(userID int64) *UserContext {
	now := s.now()
	uc, ok := s.contexts[userID]
	if !ok {
		uc = newUserContext(now)
		s.contexts[userID] = uc
	} else {
		uc.CurrentTime = now
		uc.TimeOfDay = deriveTimeOfDay(now)
		uc.DayOfWeek = now.Weekday().String()
	}
	copied := *uc
	return &copied
}

// UpdateContext applies caller-settable context fields. A change in mood,
// location, or derived time-of-day bucket triggers a refresh.
func (s *Store) UpdateContext(ctx context.Context, userID int64, req *UpdateContextRequest) (*UserContext, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	now := s.now()
	uc, ok := s.contexts[userID]
	if !ok {
		uc = newUserContext(now)
		s.contexts[userID] = uc
	}

	previousMood := uc.CurrentMood
	previousLocation := uc.Location
	previousTimeOfDay := uc.TimeOfDay

	uc.CurrentTime = now
	uc.TimeOfDay = deriveTimeOfDay(now)
	uc.DayOfWeek = now.Weekday().String()
	if req.CurrentMood != nil {
		uc.CurrentMood = *req.CurrentMood
	}
	if req.Location != nil {
		uc.Location = *req.Location
	}

	changed := uc.CurrentMood != previousMood ||
		uc.Location != previousLocation ||
		(ok && uc.TimeOfDay != previousTimeOfDay)
	copied := *uc
	s.mu.Unlock()

	if changed {
		if err := s.Refresh(ctx, userID, "context_change"); err != nil {
			log.Printf("recommendation: refresh after context change failed for user %d: %v", userID, err)
		}
	}

	return &copied, nil
}

// GetContent returns the current personalized content, refreshing first when
// nothing is cached or the cached set is stale.
func (s *Store) GetContent(ctx context.Context, userID int64) (*PersonalizedContent, error) {
	s.mu.RLock()
	content, ok := s.content[userID]
	s.mu.RUnlock()

	if !ok {
		if cached := s.loadCached(ctx, userID); cached != nil {
			s.mu.Lock()
			s.content[userID] = cached
			s.mu.Unlock()
			content, ok = cached, true
		}
	}

	if !ok || s.now().Sub(content.LastUpdated) > s.staleAfter {
		if err := s.Refresh(ctx, userID, "on_demand"); err != nil && !ok {
			return nil, err
		}
		s.mu.RLock()
		content, ok = s.content[userID]
		s.mu.RUnlock()
	}

	if !ok {
		// smart recommendations disabled and nothing cached
		return &PersonalizedContent{
			Videos:   []RecommendedItem[Video]{},
			Products: []RecommendedItem[Product]{},
			Apps:     []RecommendedItem[App]{},
			Tips:     []string{},
		}, nil
	}
	return content, nil
}

// Refresh rebuilds the personalized content set. It is a no-op when the user
// has disabled smart recommendations, and any failure leaves the previous
// content untouched.
func (s *Store) Refresh(ctx context.Context, userID int64, trigger string) error {
	prefs, err := s.prefs.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("loading preferences: %w", err)
	}
	if !prefs.EnableSmartRecommendations {
		return nil
	}

	s.mu.Lock()
	uc := s.contextLocked(userID)
	s.mu.Unlock()

	videos, err := s.repo.ListVideos(ctx)
	if err != nil {
		return fmt.Errorf("listing videos: %w", err)
	}
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("listing products: %w", err)
	}
	apps, err := s.repo.ListApps(ctx)
	if err != nil {
		return fmt.Errorf("listing apps: %w", err)
	}

	engine := NewEngine(prefs)

	// Videos are narrowed by time-of-day categories; products and apps are not
	videoFilters := &Filters{
		MaxItems:   s.maxItems,
		Categories: timeOfDayCategories[uc.TimeOfDay],
	}

	content := &PersonalizedContent{
		Videos:      engine.RecommendVideos(videos, videoFilters),
		Products:    engine.RecommendProducts(products, &Filters{MaxItems: s.maxItems}),
		Apps:        engine.RecommendApps(apps, &Filters{MaxItems: s.maxItems}),
		Tips:        buildSuggestions(uc, prefs),
		LastUpdated: s.now(),
	}

	for _, item := range content.Videos {
		recommendationScores.Observe(item.Score)
	}
	for _, item := range content.Products {
		recommendationScores.Observe(item.Score)
	}
	refreshesTotal.WithLabelValues(trigger).Inc()

	s.mu.Lock()
	s.content[userID] = content
	s.mu.Unlock()

	s.storeCached(ctx, userID, content)
	return nil
}

// TrackInteraction records a content interaction, infers mood from it, and
// feeds the difficulty drift heuristic.
func (s *Store) TrackInteraction(ctx context.Context, userID int64, req *TrackInteractionRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	interactionsTotal.WithLabelValues(req.Type).Inc()

	s.mu.Lock()
	uc, ok := s.contexts[userID]
	if !ok {
		uc = newUserContext(s.now())
		s.contexts[userID] = uc
	}
	uc.LastActivityType = req.Type
	uc.LastActivityTime = s.now()

	switch req.Type {
	case InteractionComplete:
		uc.CurrentMood = "motivated"
	case InteractionSkip:
		uc.CurrentMood = "neutral"
	}

	history := append(s.interactions[userID], interaction{
		Type: req.Type,
		Tags: req.Tags,
		At:   s.now(),
	})
	if len(history) > interactionWindow {
		history = history[len(history)-interactionWindow:]
	}
	s.interactions[userID] = history
	s.mu.Unlock()

	if req.Type == InteractionComplete {
		s.adaptPreferences(ctx, userID, history)
	}
	return nil
}

// adaptPreferences nudges workout difficulty one step when the recent
// completion history shows a sustained mismatch. At most one adjustment per
// call, in one direction only.
func (s *Store) adaptPreferences(ctx context.Context, userID int64, history []interaction) {
	prefs, err := s.prefs.Get(ctx, userID)
	if err != nil {
		log.Printf("recommendation: preference drift check failed for user %d: %v", userID, err)
		return
	}

	advanced, beginner := 0, 0
	for _, entry := range history {
		if entry.Type != InteractionComplete {
			continue
		}
		for _, tag := range entry.Tags {
			if containsFold(tag, "avançado") {
				advanced++
				break
			}
			if containsFold(tag, "iniciante") {
				beginner++
				break
			}
		}
	}

	var next string
	switch {
	case prefs.WorkoutDifficulty == preferences.DifficultyModerate && advanced >= driftThreshold:
		next = preferences.DifficultyChallenging
	case prefs.WorkoutDifficulty == preferences.DifficultyChallenging && beginner >= driftThreshold:
		next = preferences.DifficultyModerate
	default:
		return
	}

	if _, err := s.prefs.Update(ctx, userID, &preferences.UpdatePreferencesRequest{
		WorkoutDifficulty: &next,
	}); err != nil {
		log.Printf("recommendation: preference drift update failed for user %d: %v", userID, err)
		return
	}

	preferenceDriftsTotal.Inc()
	s.mu.Lock()
	s.interactions[userID] = nil
	s.mu.Unlock()
	log.Printf("recommendation: adjusted workout difficulty to %s for user %d", next, userID)
}

// ContextualSuggestions returns up to 3 suggestion strings for the user's
// current context.
func (s *Store) ContextualSuggestions(ctx context.Context, userID int64) ([]string, error) {
	prefs, err := s.prefs.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	uc := s.contextLocked(userID)
	s.mu.Unlock()

	return buildSuggestions(uc, prefs), nil
}

// OnPreferencesUpdated is registered as the preference update hook in main.
// Refresh failures are logged, never propagated.
func (s *Store) OnPreferencesUpdated(ctx context.Context, userID int64, _ *preferences.UserPreferences) {
	if err := s.Refresh(ctx, userID, "preferences_update"); err != nil {
		log.Printf("recommendation: refresh after preference update failed for user %d: %v", userID, err)
	}
}

// RefreshStale rescans known users and refreshes everyone whose content set
// aged past the staleness window. Called by the scheduler.
func (s *Store) RefreshStale(ctx context.Context) {
	s.mu.RLock()
	stale := make([]int64, 0)
	for userID, content := range s.content {
		if s.now().Sub(content.LastUpdated) > s.staleAfter {
			stale = append(stale, userID)
		}
	}
	s.mu.RUnlock()

	for _, userID := range stale {
		if err := s.Refresh(ctx, userID, "scheduled"); err != nil {
			log.Printf("recommendation: scheduled refresh failed for user %d: %v", userID, err)
		}
	}
}

func contentCacheKey(userID int64) string {
	return fmt.Sprintf("recommendations:content:%d", userID)
}

func (s *Store) loadCached(ctx context.Context, userID int64) *PersonalizedContent {
	if s.redis == nil {
		return nil
	}

	payload, err := s.redis.Get(ctx, contentCacheKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("recommendation: redis read failed for user %d: %v", userID, err)
		}
		return nil
	}

	var content PersonalizedContent
	if err := json.Unmarshal(payload, &content); err != nil {
		log.Printf("recommendation: corrupt cached content for user %d: %v", userID, err)
		return nil
	}
	return &content
}

func (s *Store) storeCached(ctx context.Context, userID int64, content *PersonalizedContent) {
	if s.redis == nil {
		return
	}

	payload, err := json.Marshal(content)
	if err != nil {
		log.Printf("recommendation: marshaling content for user %d: %v", userID, err)
		return
	}
	if err := s.redis.Set(ctx, contentCacheKey(userID), payload, s.staleAfter).Err(); err != nil {
		log.Printf("recommendation: redis write failed for user %d: %v", userID, err)
	}
}
