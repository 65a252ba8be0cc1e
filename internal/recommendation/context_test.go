package recommendation

import (
	"testing"
	"time"

	"github.com/vivafit/vivafit-backend/internal/preferences"
)

func TestDeriveTimeOfDayBuckets(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{5, TimeOfDayNight},
		{6, TimeOfDayMorning},
		{11, TimeOfDayMorning},
		{12, TimeOfDayAfternoon},
		{17, TimeOfDayAfternoon},
		{18, TimeOfDayEvening},
		{21, TimeOfDayEvening},
		{22, TimeOfDayNight},
		{0, TimeOfDayNight},
	}

	for _, tt := range tests {
		at := time.Date(2026, 3, 4, tt.hour, 30, 0, 0, time.UTC)
		if got := deriveTimeOfDay(at); got != tt.want {
			t.Fatalf("deriveTimeOfDay(%02d:30) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestBuildSuggestionsCappedAtThree(t *testing.T) {
	// A Monday morning with mood, goal, and activity level all matching
	// produces five candidates; only the first three survive
	uc := &UserContext{TimeOfDay: TimeOfDayMorning, DayOfWeek: "Monday", CurrentMood: "tired"}
	prefs := preferences.DefaultPreferences()
	prefs.FitnessGoal = preferences.GoalWeightLoss
	prefs.ActivityLevel = preferences.ActivitySedentary

	suggestions := buildSuggestions(uc, prefs)

	if len(suggestions) != 3 {
		t.Fatalf("got %d suggestions, want 3", len(suggestions))
	}
}

func TestBuildSuggestionsFirstMatchPerCategory(t *testing.T) {
	uc := &UserContext{TimeOfDay: TimeOfDayEvening, DayOfWeek: "Wednesday"}
	prefs := preferences.DefaultPreferences()
	prefs.FitnessGoal = preferences.GoalMuscleGain
	prefs.ActivityLevel = preferences.ActivityModerate

	suggestions := buildSuggestions(uc, prefs)

	// evening template plus the goal template; no day/mood/activity match
	if len(suggestions) != 2 {
		t.Fatalf("got %d suggestions (%v), want 2", len(suggestions), suggestions)
	}
	if suggestions[0] != "Fim de dia é ótimo para alongamento e relaxamento." {
		t.Fatalf("unexpected first suggestion %q", suggestions[0])
	}
}
