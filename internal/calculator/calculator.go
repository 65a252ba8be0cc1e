// internal/calculator/calculator.go
// Deterministic weight-loss computation. No I/O; the explanation call lives
// in the service wrapper.

package calculator

import "math"

// activityMultipliers is the 5-tier TDEE table
var activityMultipliers = map[string]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// conditionMultipliers adjust BMR sequentially for each condition present
var conditionMultipliers = map[string]float64{
	ConditionHypothyroidism:  0.9,
	ConditionHyperthyroidism: 1.1,
	ConditionDiabetes:        0.95,
	ConditionPCOS:            0.85,
}

// deficitCaps limit the daily caloric deficit per condition
var deficitCaps = map[string]float64{
	ConditionDiabetes:     300,
	ConditionHypertension: 400,
}

const (
	baseDeficit  = 500.0
	kcalPerKgFat = 7700.0
)

// Calculate runs the full weight-loss computation
func Calculate(input *Input) *Results {
	heightM := input.HeightCm / 100

	currentBMI := input.WeightKg / (heightM * heightM)
	targetBMI := input.TargetWeightKg / (heightM * heightM)

	bmr := mifflinStJeor(input)
	adjustedBMR := applyConditions(bmr, input.MedicalConditions)
	tdee := adjustedBMR * activityMultiplier(input.ActivityLevel)

	deficit := effectiveDeficit(input)
	weeklyLoss := deficit * 7 / kcalPerKgFat

	weightToLose := input.WeightKg - input.TargetWeightKg
	if weightToLose < 0 {
		weightToLose = 0
	}

	durationWeeks := 0
	if weightToLose > 0 && weeklyLoss > 0 {
		durationWeeks = int(math.Ceil(weightToLose / weeklyLoss))
	}

	dailyCalories := tdee - deficit

	return &Results{
		CurrentBMI:         BMIResult{Value: currentBMI, Classification: classifyBMI(currentBMI)},
		TargetBMI:          BMIResult{Value: targetBMI, Classification: classifyBMI(targetBMI)},
		IdealWeightKg:      robinsonIdealWeight(input.HeightCm, input.Sex),
		BMR:                bmr,
		AdjustedBMR:        adjustedBMR,
		TDEE:               tdee,
		DailyDeficit:       deficit,
		DailyCalories:      dailyCalories,
		WeeklyLossKg:       weeklyLoss,
		WeightToLose:       weightToLose,
		DurationWeeks:      durationWeeks,
		MealPlan:           buildMealPlan(dailyCalories, input),
		SuccessProbability: successProbability(input, weightToLose),
		Milestones:         buildMilestones(input.WeightKg, weightToLose),
	}
}

// classifyBMI maps a BMI value into the 6 fixed bands. Boundary values
// classify into the band starting at the threshold.
func classifyBMI(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Abaixo do peso"
	case bmi < 25:
		return "Peso normal"
	case bmi < 30:
		return "Sobrepeso"
	case bmi < 35:
		return "Obesidade grau I"
	case bmi < 40:
		return "Obesidade grau II"
	default:
		return "Obesidade grau III"
	}
}

// robinsonIdealWeight uses the Robinson formula with sex-dependent
// constant and slope per inch over 5 feet
func robinsonIdealWeight(heightCm float64, sex string) float64 {
	inchesOverFiveFeet := heightCm/2.54 - 60
	if inchesOverFiveFeet < 0 {
		inchesOverFiveFeet = 0
	}

	if sex == "male" {
		return 52 + 1.9*inchesOverFiveFeet
	}
	return 49 + 1.7*inchesOverFiveFeet
}

// mifflinStJeor computes BMR with the sex-dependent offset
func mifflinStJeor(input *Input) float64 {
	base := 10*input.WeightKg + 6.25*input.HeightCm - 5*float64(input.Age)
	if input.Sex == "male" {
		return base + 5
	}
	return base - 161
}

func applyConditions(bmr float64, conditions []string) float64 {
	adjusted := bmr
	for _, condition := range conditions {
		if multiplier, ok := conditionMultipliers[condition]; ok {
			adjusted *= multiplier
		}
	}
	return adjusted
}

func activityMultiplier(level string) float64 {
	if multiplier, ok := activityMultipliers[level]; ok {
		return multiplier
	}
	return activityMultipliers[ActivityModerate]
}

// effectiveDeficit starts at 500 kcal/day and composes every applicable cap
// by taking the minimum
func effectiveDeficit(input *Input) float64 {
	deficit := baseDeficit

	for _, condition := range input.MedicalConditions {
		if limit, ok := deficitCaps[condition]; ok && limit < deficit {
			deficit = limit
		}
	}

	switch {
	case input.Age > 60:
		deficit = math.Min(deficit, 350)
	case input.Age > 50:
		deficit = math.Min(deficit, 400)
	}

	return deficit
}

// successProbability starts at 0.7 and applies the fixed modifiers, clamped
// to [0.3, 0.95]
func successProbability(input *Input, weightToLose float64) float64 {
	probability := 0.7

	if input.ExperienceLevel != "" && input.ExperienceLevel != "beginner" {
		probability += 0.1
	}
	if input.TimeAvailable >= 45 {
		probability += 0.1
	}
	if weightToLose <= 10 {
		probability += 0.1
	}
	if len(input.MedicalConditions) > 2 {
		probability -= 0.1
	}
	if input.Age > 50 {
		probability -= 0.05
	}
	if input.TimelineWeeks > 0 && input.TimelineWeeks < 12 {
		probability -= 0.15
	}

	if probability < 0.3 {
		return 0.3
	}
	if probability > 0.95 {
		return 0.95
	}
	return probability
}

// milestoneBenefits by percentage tier
var milestoneBenefits = map[int][]string{
	25:  {"Mais disposição no dia a dia", "Melhora na qualidade do sono"},
	50:  {"Redução da pressão arterial", "Roupas vestindo melhor"},
	75:  {"Melhora nos exames de sangue", "Mais resistência nos treinos"},
	100: {"Meta alcançada!", "Risco cardiovascular significativamente menor"},
}

var milestoneRewards = []string{
	"Presenteie-se com uma roupa nova de treino",
	"Planeje um passeio ao ar livre",
	"Invista em um acessório fitness que você queria",
	"Comemore com quem acompanhou sua jornada",
}

// buildMilestones places the 4 fixed checkpoints at 25/50/75/100% of the
// total weight to lose
func buildMilestones(currentWeight, weightToLose float64) []Milestone {
	percents := []int{25, 50, 75, 100}
	milestones := make([]Milestone, 0, len(percents))

	for i, percent := range percents {
		milestones = append(milestones, Milestone{
			Percent:      percent,
			TargetWeight: currentWeight - weightToLose*float64(percent)/100,
			Benefits:     milestoneBenefits[percent],
			Reward:       milestoneRewards[i],
		})
	}
	return milestones
}
