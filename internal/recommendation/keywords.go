package recommendation

// Keyword tables driving goal/activity/experience alignment. Matching is
// case-insensitive substring matching against candidate category and tags.
// Unknown enum values simply have no entry and contribute nothing.

var goalKeywords = map[string][]string{
	"weight_loss": {"emagrecimento", "queima", "cardio", "hiit", "perda de peso"},
	"muscle_gain": {"hipertrofia", "musculação", "força", "ganho de massa", "proteína"},
	"maintenance": {"manutenção", "equilíbrio", "bem-estar", "saúde"},
	"endurance":   {"resistência", "corrida", "cardio", "condicionamento"},
	"strength":    {"força", "musculação", "levantamento", "powerlifting"},
}

var activityKeywords = map[string][]string{
	"sedentary":   {"iniciante", "leve", "caminhada", "alongamento"},
	"light":       {"leve", "moderado", "yoga", "pilates"},
	"moderate":    {"moderado", "intermediário", "funcional"},
	"active":      {"intenso", "avançado", "hiit", "crossfit"},
	"very_active": {"intenso", "avançado", "atleta", "performance"},
}

var experienceKeywords = map[string][]string{
	"beginner":     {"iniciante", "básico", "introdução", "primeiros passos"},
	"intermediate": {"intermediário", "moderado", "progressão"},
	"advanced":     {"avançado", "intenso", "expert", "desafio"},
}

// dietaryKeywords maps restriction IDs to tags that indicate content
// aligned with that restriction
var dietaryKeywords = map[string][]string{
	"vegetariano": {"vegetariano", "vegetariana", "sem carne"},
	"vegano":      {"vegano", "vegana", "plant-based"},
	"sem_gluten":  {"sem glúten", "gluten free"},
	"sem_lactose": {"sem lactose", "zero lactose"},
	"low_carb":    {"low carb", "cetogênica", "keto"},
	"diabetico":   {"diabético", "sem açúcar", "baixo índice glicêmico"},
}

// timeOfDayCategories narrows recommendation categories by time of day.
// Buckets without an entry apply no narrowing.
var timeOfDayCategories = map[string][]string{
	TimeOfDayMorning: {"energia", "cardio", "yoga"},
	TimeOfDayEvening: {"relaxamento", "alongamento", "mindfulness"},
}

// budgetTiers maps budget level to (max, optimal) price in BRL
var budgetTiers = map[string]struct{ Max, Optimal float64 }{
	"low":    {Max: 50, Optimal: 25},
	"medium": {Max: 150, Optimal: 75},
	"high":   {Max: 500, Optimal: 200},
}

// Reason templates appended when a sub-score exceeds 0.7
const (
	reasonGoal       = "Alinhado com seu objetivo de treino"
	reasonActivity   = "Combina com seu nível de atividade"
	reasonExperience = "Adequado à sua experiência"
	reasonTimeFit    = "Cabe no seu tempo disponível"
	reasonDietary    = "Respeita suas restrições alimentares"
	reasonBudget     = "Dentro do seu orçamento"
	reasonFeatures   = "Recursos que combinam com seu perfil"
)

// personalizedReasonFor picks the coarse user-facing reason from the score
// category. Independent of the detailed reasons list.
func personalizedReasonFor(category string) string {
	switch category {
	case CategoryHigh:
		return "Perfeito para você neste momento"
	case CategoryMedium:
		return "Pode ser uma boa opção para você"
	default:
		return "Explore algo novo"
	}
}

// categoryFor assigns the score bucket using the fixed thresholds
func categoryFor(score float64) string {
	switch {
	case score >= 0.7:
		return CategoryHigh
	case score >= 0.4:
		return CategoryMedium
	default:
		return CategoryLow
	}
}
