package calculator

import (
	"strings"
	"testing"
)

func TestRestrictionBranchPriority(t *testing.T) {
	tests := []struct {
		restrictions []string
		want         string
	}{
		{nil, "default"},
		{[]string{"sem_lactose"}, "sem_lactose"},
		{[]string{"sem_lactose", "sem_gluten"}, "sem_gluten"},
		{[]string{"sem_gluten", "vegano", "sem_lactose"}, "vegano"},
		{[]string{"low_carb"}, "default"},
	}

	for _, tt := range tests {
		if got := restrictionBranch(tt.restrictions); got != tt.want {
			t.Fatalf("restrictionBranch(%v) = %q, want %q", tt.restrictions, got, tt.want)
		}
	}
}

func TestMealPlanSplitsCalories(t *testing.T) {
	plan := buildMealPlan(2000, &Input{})

	if len(plan) != 4 {
		t.Fatalf("got %d meals, want 4", len(plan))
	}

	wantCalories := map[string]int{
		"Café da manhã": 500,
		"Almoço":        700,
		"Jantar":        600,
		"Lanche":        200,
	}
	for _, meal := range plan {
		if meal.Calories != wantCalories[meal.Name] {
			t.Fatalf("%s: %d kcal, want %d", meal.Name, meal.Calories, wantCalories[meal.Name])
		}
		if meal.Recipe == "" || len(meal.Ingredients) == 0 {
			t.Fatalf("%s: missing recipe or ingredients", meal.Name)
		}
	}
}

func TestVeganPlanAvoidsAnimalIngredients(t *testing.T) {
	plan := buildMealPlan(1800, &Input{DietaryRestrictions: []string{"vegano"}})

	banned := []string{"frango", "peixe", "salmão", "ovos", "iogurte", "queijo", "ricota"}
	for _, meal := range plan {
		for _, ingredient := range meal.Ingredients {
			for _, item := range banned {
				if strings.Contains(strings.ToLower(ingredient), item) {
					t.Fatalf("%s: vegan plan contains %q", meal.Name, ingredient)
				}
			}
		}
	}
}

func TestAllergyAlertsFlagMatchingIngredients(t *testing.T) {
	plan := buildMealPlan(2000, &Input{Allergies: []string{"amendoim"}})

	// The default branch has no peanut ingredient; switch to a branch that does
	glutenFree := buildMealPlan(2000, &Input{
		DietaryRestrictions: []string{"sem_gluten"},
		Allergies:           []string{"amendoim"},
	})

	var flagged bool
	for _, meal := range glutenFree {
		for _, alert := range meal.Alerts {
			if strings.Contains(alert, "amendoim") {
				flagged = true
			}
		}
	}
	if !flagged {
		t.Fatalf("peanut allergy not flagged in gluten-free plan")
	}

	for _, meal := range plan {
		for _, alert := range meal.Alerts {
			if strings.Contains(strings.ToLower(alert), "amendoim") {
				t.Fatalf("%s: spurious peanut alert %q", meal.Name, alert)
			}
		}
	}
}

func TestLactoseAlternativesSuggested(t *testing.T) {
	// Default breakfast contains iogurte natural, which conflicts with the
	// lactose restriction only when the branch is not switched. With the
	// restriction active the branch avoids dairy, so check the catalog scan
	// directly instead.
	alternatives := ingredientAlternatives([]string{"iogurte natural"}, []string{"sem_lactose"})
	if len(alternatives) == 0 {
		t.Fatalf("no alternatives suggested for dairy ingredient")
	}

	if alts := ingredientAlternatives([]string{"arroz"}, []string{"sem_lactose"}); len(alts) != 0 {
		t.Fatalf("non-conflicting ingredient produced alternatives %v", alts)
	}
}
