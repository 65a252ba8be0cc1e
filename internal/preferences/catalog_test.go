package preferences

import "testing"

func TestIngredientMatchesBothDirections(t *testing.T) {
	tests := []struct {
		ingredient string
		restricted string
		want       bool
	}{
		{"pão integral", "pão", true},
		{"pão", "pão integral", true},
		{"Queijo Minas", "queijo", true},
		{"arroz", "queijo", false},
		{"", "queijo", false},
		{"arroz", "", false},
		{"  leite  ", "leite", true},
	}

	for _, tt := range tests {
		if got := ingredientMatches(tt.ingredient, tt.restricted); got != tt.want {
			t.Fatalf("ingredientMatches(%q, %q) = %v, want %v", tt.ingredient, tt.restricted, got, tt.want)
		}
	}
}

func TestRestrictionByID(t *testing.T) {
	restriction, ok := RestrictionByID("sem_gluten")
	if !ok {
		t.Fatalf("sem_gluten missing from catalog")
	}
	if len(restriction.RestrictedIngredients) == 0 || len(restriction.AlternativeIngredients) == 0 {
		t.Fatalf("sem_gluten entry incomplete: %+v", restriction)
	}

	if _, ok := RestrictionByID("paleolitico"); ok {
		t.Fatalf("unknown ID should not resolve")
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	first := Catalog()
	first[0].ID = "mutated"

	if Catalog()[0].ID == "mutated" {
		t.Fatalf("catalog exposes internal slice")
	}
}
