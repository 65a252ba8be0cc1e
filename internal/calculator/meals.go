package calculator

import (
	"strings"

	"github.com/vivafit/vivafit-backend/internal/preferences"
)

// Calorie split across breakfast/lunch/dinner/snack
var mealSplit = []struct {
	Name  string
	Share float64
}{
	{"Café da manhã", 0.25},
	{"Almoço", 0.35},
	{"Jantar", 0.30},
	{"Lanche", 0.10},
}

type recipe struct {
	Recipe      string
	Ingredients []string
}

// Recipes per meal slot and restriction branch. Restriction priority is
// vegan > gluten-free > lactose-intolerant > default; only the first
// matching branch applies per meal, restrictions are not composed.
var mealRecipes = map[string]map[string]recipe{
	"Café da manhã": {
		"vegano":      {"Smoothie de banana com aveia e pasta de amendoim", []string{"banana", "aveia", "pasta de amendoim", "leite de amêndoas"}},
		"sem_gluten":  {"Omelete com legumes e tapioca", []string{"ovos", "tomate", "espinafre", "tapioca"}},
		"sem_lactose": {"Vitamina de frutas com leite de coco", []string{"mamão", "banana", "leite de coco", "aveia"}},
		"default":     {"Iogurte com granola e frutas", []string{"iogurte natural", "granola", "morango", "mel"}},
	},
	"Almoço": {
		"vegano":      {"Bowl de grão-de-bico com quinoa e legumes assados", []string{"grão-de-bico", "quinoa", "abobrinha", "cenoura", "azeite"}},
		"sem_gluten":  {"Frango grelhado com arroz integral e salada", []string{"peito de frango", "arroz integral", "alface", "tomate"}},
		"sem_lactose": {"Peixe assado com batata-doce e brócolis", []string{"filé de tilápia", "batata-doce", "brócolis", "azeite"}},
		"default":     {"Strogonoff leve de frango com arroz", []string{"peito de frango", "creme de leite light", "arroz", "champignon"}},
	},
	"Jantar": {
		"vegano":      {"Sopa de lentilha com legumes", []string{"lentilha", "cenoura", "batata", "cebola"}},
		"sem_gluten":  {"Omelete de forno com salada verde", []string{"ovos", "espinafre", "queijo", "rúcula"}},
		"sem_lactose": {"Salmão grelhado com purê de mandioquinha", []string{"salmão", "mandioquinha", "aspargos", "azeite"}},
		"default":     {"Wrap integral de frango com ricota", []string{"tortilha integral", "frango desfiado", "ricota", "alface"}},
	},
	"Lanche": {
		"vegano":      {"Mix de castanhas com frutas secas", []string{"castanha-do-pará", "amêndoas", "damasco seco"}},
		"sem_gluten":  {"Frutas com pasta de amendoim", []string{"maçã", "pasta de amendoim"}},
		"sem_lactose": {"Biscoito de arroz com abacate", []string{"biscoito de arroz", "abacate", "limão"}},
		"default":     {"Queijo branco com torrada integral", []string{"queijo branco", "torrada integral", "geleia sem açúcar"}},
	},
}

// restrictionBranch picks the single recipe branch per the fixed priority
func restrictionBranch(restrictions []string) string {
	has := func(id string) bool {
		for _, restriction := range restrictions {
			if restriction == id {
				return true
			}
		}
		return false
	}

	switch {
	case has("vegano"):
		return "vegano"
	case has("sem_gluten"):
		return "sem_gluten"
	case has("sem_lactose"):
		return "sem_lactose"
	default:
		return "default"
	}
}

// buildMealPlan splits the calorie budget and selects recipes, then appends
// alternative-ingredient suggestions and allergy alerts by scanning the
// chosen ingredients against the restriction catalog and the allergy list
func buildMealPlan(dailyCalories float64, input *Input) []Meal {
	branch := restrictionBranch(input.DietaryRestrictions)

	plan := make([]Meal, 0, len(mealSplit))
	for _, slot := range mealSplit {
		chosen := mealRecipes[slot.Name][branch]

		meal := Meal{
			Name:        slot.Name,
			Calories:    int(dailyCalories * slot.Share),
			Recipe:      chosen.Recipe,
			Ingredients: chosen.Ingredients,
		}
		meal.Alternatives = ingredientAlternatives(chosen.Ingredients, input.DietaryRestrictions)
		meal.Alerts = allergyAlerts(chosen.Ingredients, input.Allergies)

		plan = append(plan, meal)
	}
	return plan
}

// ingredientAlternatives suggests catalog alternatives for any chosen
// ingredient that conflicts with one of the user's restrictions
func ingredientAlternatives(ingredients, restrictions []string) []string {
	alternatives := []string{}
	seen := map[string]bool{}

	for _, id := range restrictions {
		restriction, ok := preferences.RestrictionByID(id)
		if !ok {
			continue
		}
		for _, ingredient := range ingredients {
			if !matchesAnyIngredient(ingredient, restriction.RestrictedIngredients) {
				continue
			}
			for _, alternative := range restriction.AlternativeIngredients {
				if !seen[alternative] {
					seen[alternative] = true
					alternatives = append(alternatives, alternative)
				}
			}
		}
	}
	return alternatives
}

func allergyAlerts(ingredients, allergies []string) []string {
	alerts := []string{}
	for _, ingredient := range ingredients {
		for _, allergy := range allergies {
			if containsFold(ingredient, allergy) || containsFold(allergy, ingredient) {
				alerts = append(alerts, "Contém possível alérgeno: "+ingredient)
				break
			}
		}
	}
	return alerts
}

func matchesAnyIngredient(ingredient string, restricted []string) bool {
	for _, item := range restricted {
		if containsFold(ingredient, item) || containsFold(item, ingredient) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	if substr == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
