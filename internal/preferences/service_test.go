package preferences

import (
	"context"
	"testing"
)

type memoryRepo struct {
	records map[int64]*UserPreferences
	saves   int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{records: map[int64]*UserPreferences{}}
}

func (r *memoryRepo) Get(_ context.Context, userID int64) (*UserPreferences, error) {
	if prefs, ok := r.records[userID]; ok {
		copied := *prefs
		return &copied, nil
	}
	return DefaultPreferences(), nil
}

func (r *memoryRepo) Save(_ context.Context, userID int64, prefs *UserPreferences) error {
	copied := *prefs
	r.records[userID] = &copied
	r.saves++
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, userID int64) error {
	delete(r.records, userID)
	return nil
}

func TestGetReturnsDefaultsForNewUser(t *testing.T) {
	svc := NewService(newMemoryRepo())

	prefs, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if prefs.FitnessGoal != GoalMaintenance {
		t.Fatalf("goal %q, want maintenance default", prefs.FitnessGoal)
	}
	if !prefs.EnableSmartRecommendations {
		t.Fatalf("smart recommendations should default to enabled")
	}
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	goal := GoalWeightLoss
	if _, err := svc.Update(ctx, 1, &UpdatePreferencesRequest{FitnessGoal: &goal}); err != nil {
		t.Fatalf("first update: %v", err)
	}

	budget := BudgetHigh
	prefs, err := svc.Update(ctx, 1, &UpdatePreferencesRequest{BudgetLevel: &budget})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}

	if prefs.FitnessGoal != GoalWeightLoss {
		t.Fatalf("goal %q was clobbered by the partial update", prefs.FitnessGoal)
	}
	if prefs.BudgetLevel != BudgetHigh {
		t.Fatalf("budget %q, want high", prefs.BudgetLevel)
	}
	if prefs.ActivityLevel != ActivityModerate {
		t.Fatalf("untouched activity level changed to %q", prefs.ActivityLevel)
	}
}

func TestUpdateRejectsInvalidValues(t *testing.T) {
	svc := NewService(newMemoryRepo())

	goal := "get_huge"
	if _, err := svc.Update(context.Background(), 1, &UpdatePreferencesRequest{FitnessGoal: &goal}); err == nil {
		t.Fatalf("expected validation error for unknown goal")
	}

	age := 7
	if _, err := svc.Update(context.Background(), 1, &UpdatePreferencesRequest{Age: &age}); err == nil {
		t.Fatalf("expected validation error for age below 13")
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	goal := GoalStrength
	if _, err := svc.Update(ctx, 1, &UpdatePreferencesRequest{FitnessGoal: &goal}); err != nil {
		t.Fatalf("update: %v", err)
	}

	prefs, err := svc.Reset(ctx, 1)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if prefs.FitnessGoal != GoalMaintenance {
		t.Fatalf("goal %q after reset, want maintenance", prefs.FitnessGoal)
	}

	stored, _ := svc.Get(ctx, 1)
	if stored.FitnessGoal != GoalMaintenance {
		t.Fatalf("reset was not persisted")
	}
}

func TestUpdateHookFiresAfterWrites(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	var calls int
	svc.SetUpdateHook(func(context.Context, int64, *UserPreferences) { calls++ })

	goal := GoalEndurance
	if _, err := svc.Update(ctx, 1, &UpdatePreferencesRequest{FitnessGoal: &goal}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := svc.Reset(ctx, 1); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if calls != 2 {
		t.Fatalf("hook fired %d times, want 2", calls)
	}
}

func TestUpdateHookPanicDoesNotFailTheWrite(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	svc.SetUpdateHook(func(context.Context, int64, *UserPreferences) { panic("hook blew up") })

	goal := GoalWeightLoss
	if _, err := svc.Update(context.Background(), 1, &UpdatePreferencesRequest{FitnessGoal: &goal}); err != nil {
		t.Fatalf("update failed because of hook panic: %v", err)
	}
	if repo.saves != 1 {
		t.Fatalf("write did not reach the repository")
	}
}

func TestCheckIngredientFirstRestrictionWins(t *testing.T) {
	repo := newMemoryRepo()
	repo.records[1] = &UserPreferences{
		DietaryRestrictions: []string{"desconhecido", "vegano", "sem_lactose"},
		Allergies:           []string{},
	}
	svc := NewService(repo)

	check, err := svc.CheckIngredient(context.Background(), 1, "queijo minas")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if check.Allowed {
		t.Fatalf("queijo should be blocked")
	}
	// vegano appears before sem_lactose and both restrict queijo
	if check.Restriction != "vegano" {
		t.Fatalf("blocking restriction %q, want vegano", check.Restriction)
	}
	if len(check.Alternatives) == 0 {
		t.Fatalf("blocked ingredient came without alternatives")
	}
}

func TestCheckIngredientAllergyPath(t *testing.T) {
	repo := newMemoryRepo()
	repo.records[1] = &UserPreferences{
		DietaryRestrictions: []string{},
		Allergies:           []string{"amendoim"},
	}
	svc := NewService(repo)
	ctx := context.Background()

	check, err := svc.CheckIngredient(ctx, 1, "Pasta de Amendoim")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if check.Allowed || check.Allergy != "amendoim" {
		t.Fatalf("allergy not detected: %+v", check)
	}

	clean, err := svc.CheckIngredient(ctx, 1, "banana")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !clean.Allowed {
		t.Fatalf("banana should be allowed")
	}
}

func TestGetAlternativesUnknownIDIsEmpty(t *testing.T) {
	svc := NewService(newMemoryRepo())

	if alts := svc.GetAlternatives("sem_lactose"); len(alts) == 0 {
		t.Fatalf("known restriction returned no alternatives")
	}
	if alts := svc.GetAlternatives("nope"); len(alts) != 0 {
		t.Fatalf("unknown restriction returned %v", alts)
	}
}
