package preferences

import (
	"context"
	"log"
	"time"

	"github.com/vivafit/vivafit-backend/internal/common/utils"
)

// UpdateHook is called after every successful preference write so dependent
// stores (recommendations) can rebuild. Failures inside the hook never
// surface to the caller.
type UpdateHook func(ctx context.Context, userID int64, prefs *UserPreferences)

type Service interface {
	Get(ctx context.Context, userID int64) (*UserPreferences, error)
	Update(ctx context.Context, userID int64, req *UpdatePreferencesRequest) (*UserPreferences, error)
	Reset(ctx context.Context, userID int64) (*UserPreferences, error)

	ListRestrictions() []DietaryRestriction
	GetAlternatives(restrictionID string) []string
	CheckIngredient(ctx context.Context, userID int64, ingredient string) (*IngredientCheck, error)

	SetUpdateHook(hook UpdateHook)
}

type service struct {
	repo Repository
	hook UpdateHook
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// SetUpdateHook wires the post-update callback. Called once from main to
// resolve the circular dependency with the recommendation store.
func (s *service) SetUpdateHook(hook UpdateHook) {
	s.hook = hook
}

func (s *service) Get(ctx context.Context, userID int64) (*UserPreferences, error) {
	return s.repo.Get(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID int64, req *UpdatePreferencesRequest) (*UserPreferences, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	prefs, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyPartial(prefs, req)
	prefs.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, userID, prefs); err != nil {
		return nil, err
	}

	s.notifyUpdated(ctx, userID, prefs)
	return prefs, nil
}

func (s *service) Reset(ctx context.Context, userID int64) (*UserPreferences, error) {
	prefs := DefaultPreferences()
	prefs.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, userID, prefs); err != nil {
		return nil, err
	}

	s.notifyUpdated(ctx, userID, prefs)
	return prefs, nil
}

func (s *service) ListRestrictions() []DietaryRestriction {
	return Catalog()
}

// GetAlternatives returns the alternative ingredients for a restriction.
// Unknown IDs return an empty list, never an error.
func (s *service) GetAlternatives(restrictionID string) []string {
	restriction, ok := RestrictionByID(restrictionID)
	if !ok {
		return []string{}
	}
	out := make([]string, len(restriction.AlternativeIngredients))
	copy(out, restriction.AlternativeIngredients)
	return out
}

// CheckIngredient checks one ingredient against the user's active
// restrictions and allergy list. The first matching restriction wins and its
// alternatives are suggested.
func (s *service) CheckIngredient(ctx context.Context, userID int64, ingredient string) (*IngredientCheck, error) {
	prefs, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	check := &IngredientCheck{Ingredient: ingredient, Allowed: true}

	for _, id := range prefs.DietaryRestrictions {
		restriction, ok := RestrictionByID(id)
		if !ok {
			continue // unknown catalog IDs are ignored
		}
		for _, restricted := range restriction.RestrictedIngredients {
			if ingredientMatches(ingredient, restricted) {
				check.Allowed = false
				check.Restriction = restriction.ID
				check.Alternatives = s.GetAlternatives(restriction.ID)
				return check, nil
			}
		}
	}

	for _, allergy := range prefs.Allergies {
		if ingredientMatches(ingredient, allergy) {
			check.Allowed = false
			check.Allergy = allergy
			return check, nil
		}
	}

	return check, nil
}

func (s *service) notifyUpdated(ctx context.Context, userID int64, prefs *UserPreferences) {
	if s.hook == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("preferences: update hook panicked for user %d: %v", userID, r)
		}
	}()
	s.hook(ctx, userID, prefs)
}

// applyPartial merges non-nil request fields into the preference record
func applyPartial(prefs *UserPreferences, req *UpdatePreferencesRequest) {
	if req.Age != nil {
		prefs.Age = *req.Age
	}
	if req.Gender != nil {
		prefs.Gender = *req.Gender
	}
	if req.CurrentWeight != nil {
		prefs.CurrentWeight = *req.CurrentWeight
	}
	if req.TargetWeight != nil {
		prefs.TargetWeight = *req.TargetWeight
	}
	if req.FitnessGoal != nil {
		prefs.FitnessGoal = *req.FitnessGoal
	}
	if req.ActivityLevel != nil {
		prefs.ActivityLevel = *req.ActivityLevel
	}
	if req.ExperienceLevel != nil {
		prefs.ExperienceLevel = *req.ExperienceLevel
	}
	if req.DietaryRestrictions != nil {
		prefs.DietaryRestrictions = *req.DietaryRestrictions
	}
	if req.Allergies != nil {
		prefs.Allergies = *req.Allergies
	}
	if req.FoodPreferences != nil {
		prefs.FoodPreferences = *req.FoodPreferences
	}
	if req.TimeAvailable != nil {
		prefs.TimeAvailable = *req.TimeAvailable
	}
	if req.BudgetLevel != nil {
		prefs.BudgetLevel = *req.BudgetLevel
	}
	if req.CookingSkill != nil {
		prefs.CookingSkill = *req.CookingSkill
	}
	if req.Equipment != nil {
		prefs.Equipment = *req.Equipment
	}
	if req.PreferredMealTimes != nil {
		prefs.PreferredMealTimes = *req.PreferredMealTimes
	}
	if req.WorkoutDifficulty != nil {
		prefs.WorkoutDifficulty = *req.WorkoutDifficulty
	}
	if req.EnableSmartRecommendations != nil {
		prefs.EnableSmartRecommendations = *req.EnableSmartRecommendations
	}
	if req.EnableNutritionalAlerts != nil {
		prefs.EnableNutritionalAlerts = *req.EnableNutritionalAlerts
	}
}
