package preferences

import "time"

// Fitness goal values
const (
	GoalWeightLoss  = "weight_loss"
	GoalMuscleGain  = "muscle_gain"
	GoalMaintenance = "maintenance"
	GoalEndurance   = "endurance"
	GoalStrength    = "strength"
)

// Activity level values
const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
)

// Experience level values
const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
)

// Budget level values
const (
	BudgetLow    = "low"
	BudgetMedium = "medium"
	BudgetHigh   = "high"
)

// Workout difficulty values, adjusted over time by interaction tracking
const (
	DifficultyLight       = "light"
	DifficultyModerate    = "moderate"
	DifficultyChallenging = "challenging"
)

// UserPreferences is the canonical per-user preference record. It is
// persisted as a versioned JSON blob, so only json tags appear here.
type UserPreferences struct {
	Age             int     `json:"age"`
	Gender          string  `json:"gender"`
	CurrentWeight   float64 `json:"currentWeight"`
	TargetWeight    float64 `json:"targetWeight"`
	FitnessGoal     string  `json:"fitnessGoal"`
	ActivityLevel   string  `json:"activityLevel"`
	ExperienceLevel string  `json:"experienceLevel"`

	DietaryRestrictions []string `json:"dietaryRestrictions"`
	Allergies           []string `json:"allergies"`
	FoodPreferences     []string `json:"foodPreferences"`

	TimeAvailable      int      `json:"timeAvailable"` // minutes per day
	BudgetLevel        string   `json:"budgetLevel"`
	CookingSkill       string   `json:"cookingSkill"`
	Equipment          []string `json:"equipment"`
	PreferredMealTimes []string `json:"preferredMealTimes"` // HH:MM, ordered
	WorkoutDifficulty  string   `json:"workoutDifficulty"`

	EnableSmartRecommendations bool `json:"enableSmartRecommendations"`
	EnableNutritionalAlerts    bool `json:"enableNutritionalAlerts"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// DefaultPreferences returns the documented defaults used when no record
// exists or a persisted blob cannot be read.
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Age:                        30,
		Gender:                     "other",
		FitnessGoal:                GoalMaintenance,
		ActivityLevel:              ActivityModerate,
		ExperienceLevel:            ExperienceBeginner,
		DietaryRestrictions:        []string{},
		Allergies:                  []string{},
		FoodPreferences:            []string{},
		TimeAvailable:              30,
		BudgetLevel:                BudgetMedium,
		CookingSkill:               "basic",
		Equipment:                  []string{},
		PreferredMealTimes:         []string{"08:00", "12:30", "19:30"},
		WorkoutDifficulty:          DifficultyModerate,
		EnableSmartRecommendations: true,
		EnableNutritionalAlerts:    true,
	}
}

// DietaryRestriction is one entry of the static restriction catalog.
// Ingredient matching is case-insensitive substring matching.
type DietaryRestriction struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	Description            string   `json:"description"`
	RestrictedIngredients  []string `json:"restrictedIngredients"`
	AlternativeIngredients []string `json:"alternativeIngredients"`
}

// UpdatePreferencesRequest carries a partial update; nil fields are untouched
type UpdatePreferencesRequest struct {
	Age             *int     `json:"age,omitempty" validate:"omitempty,gte=13,lte=120"`
	Gender          *string  `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	CurrentWeight   *float64 `json:"currentWeight,omitempty" validate:"omitempty,gt=0"`
	TargetWeight    *float64 `json:"targetWeight,omitempty" validate:"omitempty,gt=0"`
	FitnessGoal     *string  `json:"fitnessGoal,omitempty" validate:"omitempty,oneof=weight_loss muscle_gain maintenance endurance strength"`
	ActivityLevel   *string  `json:"activityLevel,omitempty" validate:"omitempty,oneof=sedentary light moderate active very_active"`
	ExperienceLevel *string  `json:"experienceLevel,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`

	DietaryRestrictions *[]string `json:"dietaryRestrictions,omitempty"`
	Allergies           *[]string `json:"allergies,omitempty"`
	FoodPreferences     *[]string `json:"foodPreferences,omitempty"`

	TimeAvailable      *int      `json:"timeAvailable,omitempty" validate:"omitempty,gt=0"`
	BudgetLevel        *string   `json:"budgetLevel,omitempty" validate:"omitempty,oneof=low medium high"`
	CookingSkill       *string   `json:"cookingSkill,omitempty" validate:"omitempty,oneof=basic intermediate advanced"`
	Equipment          *[]string `json:"equipment,omitempty"`
	PreferredMealTimes *[]string `json:"preferredMealTimes,omitempty" validate:"omitempty,dive,len=5"`
	WorkoutDifficulty  *string   `json:"workoutDifficulty,omitempty" validate:"omitempty,oneof=light moderate challenging"`

	EnableSmartRecommendations *bool `json:"enableSmartRecommendations,omitempty"`
	EnableNutritionalAlerts    *bool `json:"enableNutritionalAlerts,omitempty"`
}

// IngredientCheck is the result of checking one ingredient against the
// user's restrictions and allergies
type IngredientCheck struct {
	Ingredient   string   `json:"ingredient"`
	Allowed      bool     `json:"allowed"`
	Restriction  string   `json:"restriction,omitempty"` // restriction ID that blocked it
	Allergy      string   `json:"allergy,omitempty"`     // allergy that blocked it
	Alternatives []string `json:"alternatives,omitempty"`
}

// CheckIngredientRequest is the payload for the ingredient-allowed endpoint
type CheckIngredientRequest struct {
	Ingredient string `json:"ingredient" validate:"required,min=2"`
}
