package calculator

// Activity level values (pt-BR, as submitted by the SPA calculator form)
const (
	ActivitySedentary  = "sedentario"
	ActivityLight      = "leve"
	ActivityModerate   = "moderado"
	ActivityActive     = "ativo"
	ActivityVeryActive = "muito_ativo"
)

// Medical condition values
const (
	ConditionHypothyroidism  = "hipotireoidismo"
	ConditionHyperthyroidism = "hipertireoidismo"
	ConditionDiabetes        = "diabetes"
	ConditionPCOS            = "sop"
	ConditionHypertension    = "hipertensao"
)

// Input is the calculator request. All computation is deterministic given
// these fields.
type Input struct {
	HeightCm       float64 `json:"heightCm" validate:"required,gt=0"`
	WeightKg       float64 `json:"weightKg" validate:"required,gt=0"`
	TargetWeightKg float64 `json:"targetWeightKg" validate:"required,gt=0"`
	Age            int     `json:"age" validate:"required,gte=13,lte=120"`
	Sex            string  `json:"sex" validate:"required,oneof=male female"`
	ActivityLevel  string  `json:"activityLevel" validate:"required,oneof=sedentario leve moderado ativo muito_ativo"`

	MedicalConditions   []string `json:"medicalConditions,omitempty"`
	DietaryRestrictions []string `json:"dietaryRestrictions,omitempty"`
	Allergies           []string `json:"allergies,omitempty"`

	ExperienceLevel string `json:"experienceLevel,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	TimeAvailable   int    `json:"timeAvailable,omitempty" validate:"omitempty,gt=0"` // minutes per day
	TimelineWeeks   int    `json:"timelineWeeks,omitempty" validate:"omitempty,gt=0"` // desired timeline
}

// BMIResult pairs the value with its classification band
type BMIResult struct {
	Value          float64 `json:"value"`
	Classification string  `json:"classification"`
}

// Meal is one entry of the generated daily plan
type Meal struct {
	Name         string   `json:"name"`
	Calories     int      `json:"calories"`
	Recipe       string   `json:"recipe"`
	Ingredients  []string `json:"ingredients"`
	Alternatives []string `json:"alternatives,omitempty"`
	Alerts       []string `json:"alerts,omitempty"`
}

// Milestone is one of the 4 fixed checkpoints along the weight-loss path
type Milestone struct {
	Percent      int      `json:"percent"`
	TargetWeight float64  `json:"targetWeight"`
	Benefits     []string `json:"benefits"`
	Reward       string   `json:"reward"`
}

// Results is the full calculator output
type Results struct {
	CurrentBMI BMIResult `json:"currentBMI"`
	TargetBMI  BMIResult `json:"targetBMI"`

	IdealWeightKg float64 `json:"idealWeightKg"`
	BMR           float64 `json:"bmr"`
	AdjustedBMR   float64 `json:"adjustedBMR"`
	TDEE          float64 `json:"tdee"`

	DailyDeficit  float64 `json:"dailyDeficit"`
	DailyCalories float64 `json:"dailyCalories"`
	WeeklyLossKg  float64 `json:"weeklyLossKg"`
	WeightToLose  float64 `json:"weightToLose"`
	DurationWeeks int     `json:"durationWeeks"`

	MealPlan           []Meal      `json:"mealPlan"`
	SuccessProbability float64     `json:"successProbability"`
	Milestones         []Milestone `json:"milestones"`

	Explanation string `json:"explanation,omitempty"`
}
