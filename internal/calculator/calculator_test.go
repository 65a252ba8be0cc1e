package calculator

import (
	"math"
	"testing"
)

func TestBMIClassificationBoundaries(t *testing.T) {
	tests := []struct {
		bmi  float64
		want string
	}{
		{18.49, "Abaixo do peso"},
		{18.5, "Peso normal"},
		{24.99, "Peso normal"},
		{25, "Sobrepeso"},
		{30, "Obesidade grau I"},
		{35, "Obesidade grau II"},
		{40, "Obesidade grau III"},
		{42.5, "Obesidade grau III"},
	}

	for _, tt := range tests {
		if got := classifyBMI(tt.bmi); got != tt.want {
			t.Fatalf("classifyBMI(%v) = %q, want %q", tt.bmi, got, tt.want)
		}
	}
}

func TestWeightLossScenario(t *testing.T) {
	input := &Input{
		HeightCm:       170,
		WeightKg:       80,
		TargetWeightKg: 72,
		Age:            35,
		Sex:            "male",
		ActivityLevel:  ActivityModerate,
	}

	results := Calculate(input)

	approx := func(got, want, tolerance float64, label string) {
		t.Helper()
		if math.Abs(got-want) > tolerance {
			t.Fatalf("%s = %v, want ~%v", label, got, want)
		}
	}

	approx(results.CurrentBMI.Value, 27.68, 0.01, "BMI")
	if results.CurrentBMI.Classification != "Sobrepeso" {
		t.Fatalf("classification %q, want Sobrepeso", results.CurrentBMI.Classification)
	}
	// 10×80 + 6.25×170 - 5×35 + 5
	approx(results.BMR, 1692.5, 0.01, "BMR")
	approx(results.AdjustedBMR, 1692.5, 0.01, "adjusted BMR")
	approx(results.TDEE, 1692.5*1.55, 0.01, "TDEE")
	if results.DailyDeficit != 500 {
		t.Fatalf("deficit %v, want uncapped 500", results.DailyDeficit)
	}
	approx(results.DailyCalories, 1692.5*1.55-500, 0.01, "daily calories")
	approx(results.WeeklyLossKg, 500*7/7700.0, 0.0001, "weekly loss")
}

func TestDeficitCapsComposeViaMinimum(t *testing.T) {
	tests := []struct {
		name       string
		age        int
		conditions []string
		want       float64
	}{
		{"no caps", 35, nil, 500},
		{"diabetes", 35, []string{ConditionDiabetes}, 300},
		{"hypertension", 35, []string{ConditionHypertension}, 400},
		{"both conditions", 35, []string{ConditionDiabetes, ConditionHypertension}, 300},
		{"age over 50", 55, nil, 400},
		{"age over 60", 65, nil, 350},
		{"diabetic age 65", 65, []string{ConditionDiabetes}, 300},
		{"hypertensive age 65", 65, []string{ConditionHypertension}, 350},
	}

	for _, tt := range tests {
		input := &Input{Age: tt.age, MedicalConditions: tt.conditions}
		if got := effectiveDeficit(input); got != tt.want {
			t.Fatalf("%s: deficit %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestConditionMultipliersApplySequentially(t *testing.T) {
	input := &Input{
		HeightCm:      170,
		WeightKg:      80,
		Age:           35,
		Sex:           "female",
		ActivityLevel: ActivitySedentary,
		MedicalConditions: []string{
			ConditionHypothyroidism,
			ConditionDiabetes,
		},
	}

	bmr := mifflinStJeor(input)
	adjusted := applyConditions(bmr, input.MedicalConditions)

	want := bmr * 0.9 * 0.95
	if math.Abs(adjusted-want) > 0.001 {
		t.Fatalf("adjusted BMR %v, want %v", adjusted, want)
	}
}

func TestMifflinStJeorSexOffset(t *testing.T) {
	male := &Input{HeightCm: 170, WeightKg: 80, Age: 35, Sex: "male"}
	female := &Input{HeightCm: 170, WeightKg: 80, Age: 35, Sex: "female"}

	if diff := mifflinStJeor(male) - mifflinStJeor(female); diff != 166 {
		t.Fatalf("sex offset difference %v, want 166", diff)
	}
}

func TestRobinsonIdealWeight(t *testing.T) {
	// 170cm ≈ 66.93 inches, 6.93 over five feet
	male := robinsonIdealWeight(170, "male")
	female := robinsonIdealWeight(170, "female")

	if math.Abs(male-(52+1.9*(170/2.54-60))) > 0.001 {
		t.Fatalf("male ideal weight %v", male)
	}
	if math.Abs(female-(49+1.7*(170/2.54-60))) > 0.001 {
		t.Fatalf("female ideal weight %v", female)
	}
	if male <= female {
		t.Fatalf("male ideal weight should exceed female at same height")
	}
}

func TestDurationRoundsUp(t *testing.T) {
	input := &Input{
		HeightCm:       170,
		WeightKg:       80,
		TargetWeightKg: 75,
		Age:            35,
		Sex:            "male",
		ActivityLevel:  ActivityModerate,
	}

	results := Calculate(input)

	weeks := results.WeightToLose / results.WeeklyLossKg
	if results.DurationWeeks != int(math.Ceil(weeks)) {
		t.Fatalf("duration %d, want ceil(%v)", results.DurationWeeks, weeks)
	}
}

func TestSuccessProbabilityModifiers(t *testing.T) {
	pessimistic := &Input{
		Age:               66,
		MedicalConditions: []string{ConditionDiabetes, ConditionHypertension, ConditionPCOS},
		TimelineWeeks:     8,
	}
	// 0.7 - 0.1 (conditions) - 0.05 (age) - 0.15 (short timeline)
	if got := successProbability(pessimistic, 30); math.Abs(got-0.4) > 0.001 {
		t.Fatalf("pessimistic probability %v, want 0.4", got)
	}

	optimistic := &Input{
		Age:             30,
		ExperienceLevel: "advanced",
		TimeAvailable:   60,
	}
	if got := successProbability(optimistic, 5); got != 0.95 {
		t.Fatalf("optimistic probability %v, want cap 0.95", got)
	}
}

func TestMilestonesAtQuarters(t *testing.T) {
	results := Calculate(&Input{
		HeightCm:       170,
		WeightKg:       80,
		TargetWeightKg: 72,
		Age:            35,
		Sex:            "male",
		ActivityLevel:  ActivityModerate,
	})

	if len(results.Milestones) != 4 {
		t.Fatalf("got %d milestones, want 4", len(results.Milestones))
	}

	wantWeights := []float64{78, 76, 74, 72}
	for i, milestone := range results.Milestones {
		if milestone.Percent != (i+1)*25 {
			t.Fatalf("milestone %d percent %d", i, milestone.Percent)
		}
		if math.Abs(milestone.TargetWeight-wantWeights[i]) > 0.001 {
			t.Fatalf("milestone %d weight %v, want %v", i, milestone.TargetWeight, wantWeights[i])
		}
		if len(milestone.Benefits) == 0 || milestone.Reward == "" {
			t.Fatalf("milestone %d missing benefits or reward", i)
		}
	}
}
