package preferences

import "strings"

// restrictionCatalog is the static dietary restriction catalog. IDs stored in
// UserPreferences.DietaryRestrictions reference these entries; unknown IDs
// are ignored by every lookup.
var restrictionCatalog = []DietaryRestriction{
	{
		ID:          "vegetariano",
		Name:        "Vegetariano",
		Description: "Sem carne de qualquer tipo",
		RestrictedIngredients: []string{
			"carne", "frango", "peixe", "porco", "bacon", "presunto", "linguiça",
		},
		AlternativeIngredients: []string{
			"tofu", "grão-de-bico", "lentilha", "cogumelos", "ovo",
		},
	},
	{
		ID:          "vegano",
		Name:        "Vegano",
		Description: "Sem produtos de origem animal",
		RestrictedIngredients: []string{
			"carne", "frango", "peixe", "leite", "queijo", "ovo", "mel",
			"iogurte", "manteiga",
		},
		AlternativeIngredients: []string{
			"tofu", "leite de amêndoas", "levedura nutricional", "aquafaba",
			"grão-de-bico",
		},
	},
	{
		ID:          "sem_gluten",
		Name:        "Sem Glúten",
		Description: "Sem trigo, cevada ou centeio",
		RestrictedIngredients: []string{
			"trigo", "pão", "macarrão", "cevada", "centeio", "farinha de trigo",
		},
		AlternativeIngredients: []string{
			"arroz", "quinoa", "tapioca", "pão sem glúten", "macarrão de arroz",
		},
	},
	{
		ID:          "sem_lactose",
		Name:        "Sem Lactose",
		Description: "Sem leite e derivados com lactose",
		RestrictedIngredients: []string{
			"leite", "queijo", "iogurte", "manteiga", "creme de leite",
		},
		AlternativeIngredients: []string{
			"leite sem lactose", "leite de coco", "queijo vegano", "iogurte de coco",
		},
	},
	{
		ID:          "low_carb",
		Name:        "Low Carb",
		Description: "Redução de carboidratos simples",
		RestrictedIngredients: []string{
			"açúcar", "pão", "arroz branco", "batata", "macarrão",
		},
		AlternativeIngredients: []string{
			"couve-flor", "abobrinha", "batata-doce", "arroz de couve-flor",
		},
	},
	{
		ID:          "diabetico",
		Name:        "Diabético",
		Description: "Controle de açúcar e índice glicêmico",
		RestrictedIngredients: []string{
			"açúcar", "doce", "refrigerante", "mel", "chocolate ao leite",
		},
		AlternativeIngredients: []string{
			"adoçante stevia", "frutas de baixo índice glicêmico", "chocolate amargo",
		},
	},
}

// Catalog returns the full dietary restriction catalog
func Catalog() []DietaryRestriction {
	out := make([]DietaryRestriction, len(restrictionCatalog))
	copy(out, restrictionCatalog)
	return out
}

// RestrictionByID looks up one catalog entry. Unknown IDs return ok=false,
// never an error.
func RestrictionByID(id string) (DietaryRestriction, bool) {
	for _, r := range restrictionCatalog {
		if r.ID == id {
			return r, true
		}
	}
	return DietaryRestriction{}, false
}

// ingredientMatches reports whether the candidate ingredient matches a
// restricted/catalog ingredient, case-insensitively and in either direction
// ("pão integral" matches "pão", and "pão" matches "pão integral").
func ingredientMatches(ingredient, restricted string) bool {
	a := strings.ToLower(strings.TrimSpace(ingredient))
	b := strings.ToLower(strings.TrimSpace(restricted))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
