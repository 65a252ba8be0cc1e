package recommendation

import (
	"time"

	"github.com/vivafit/vivafit-backend/internal/preferences"
)

// deriveTimeOfDay buckets the clock: morning 6–12, afternoon 12–18,
// evening 18–22, night otherwise
func deriveTimeOfDay(t time.Time) string {
	hour := t.Hour()
	switch {
	case hour >= 6 && hour < 12:
		return TimeOfDayMorning
	case hour >= 12 && hour < 18:
		return TimeOfDayAfternoon
	case hour >= 18 && hour < 22:
		return TimeOfDayEvening
	default:
		return TimeOfDayNight
	}
}

func newUserContext(now time.Time) *UserContext {
	return &UserContext{
		CurrentTime: now,
		TimeOfDay:   deriveTimeOfDay(now),
		DayOfWeek:   now.Weekday().String(),
	}
}

// buildSuggestions returns up to 3 contextual suggestion strings. Each
// category (time of day, day of week, mood, goal, activity level) is
// first-match-wins; results are concatenated in that order and capped.
func buildSuggestions(uc *UserContext, prefs *preferences.UserPreferences) []string {
	suggestions := []string{}

	switch uc.TimeOfDay {
	case TimeOfDayMorning:
		suggestions = append(suggestions, "Comece o dia com energia: que tal um cardio agora de manhã?")
	case TimeOfDayAfternoon:
		suggestions = append(suggestions, "Aproveite a tarde para um treino funcional.")
	case TimeOfDayEvening:
		suggestions = append(suggestions, "Fim de dia é ótimo para alongamento e relaxamento.")
	case TimeOfDayNight:
		suggestions = append(suggestions, "Prefira atividades leves antes de dormir.")
	}

	switch uc.DayOfWeek {
	case "Monday":
		suggestions = append(suggestions, "Segunda-feira é o melhor dia para planejar a semana de treinos.")
	case "Friday":
		suggestions = append(suggestions, "Sexta! Feche a semana com um treino que você gosta.")
	}

	switch uc.CurrentMood {
	case "tired":
		suggestions = append(suggestions, "Você parece cansado. Um alongamento leve pode ajudar.")
	case "energetic":
		suggestions = append(suggestions, "Aproveite essa energia com um HIIT!")
	case "stressed":
		suggestions = append(suggestions, "Respire fundo: 10 minutos de mindfulness fazem diferença.")
	}

	switch prefs.FitnessGoal {
	case preferences.GoalWeightLoss:
		suggestions = append(suggestions, "Consistência queima calorias: agende seu cardio de hoje.")
	case preferences.GoalMuscleGain:
		suggestions = append(suggestions, "Não esqueça da proteína no pós-treino.")
	case preferences.GoalEndurance:
		suggestions = append(suggestions, "Aumente gradualmente a distância esta semana.")
	case preferences.GoalStrength:
		suggestions = append(suggestions, "Foque na técnica antes de aumentar a carga.")
	}

	switch prefs.ActivityLevel {
	case preferences.ActivitySedentary:
		suggestions = append(suggestions, "Comece com 10 minutos de caminhada hoje.")
	case preferences.ActivityVeryActive:
		suggestions = append(suggestions, "Lembre-se de incluir um dia de descanso.")
	}

	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return suggestions
}
