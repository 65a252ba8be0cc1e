package preferences

import (
	"encoding/json"
	"testing"
)

func TestDecodeBlobCurrentVersion(t *testing.T) {
	original := DefaultPreferences()
	original.FitnessGoal = GoalWeightLoss

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	prefs, err := decodeBlob(schemaVersion, data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if prefs.FitnessGoal != GoalWeightLoss {
		t.Fatalf("goal %q, want weight_loss", prefs.FitnessGoal)
	}
}

func TestDecodeBlobMigratesV1(t *testing.T) {
	// v1 blobs predate the feature toggles and the equipment list
	v1 := []byte(`{
		"age": 28,
		"fitnessGoal": "muscle_gain",
		"activityLevel": "active",
		"dietaryRestrictions": ["vegano"],
		"allergies": [],
		"timeAvailable": 45
	}`)

	prefs, err := decodeBlob(1, v1)
	if err != nil {
		t.Fatalf("decode v1: %v", err)
	}

	if prefs.Age != 28 || prefs.FitnessGoal != GoalMuscleGain {
		t.Fatalf("v1 fields lost in migration: %+v", prefs)
	}
	if !prefs.EnableSmartRecommendations || !prefs.EnableNutritionalAlerts {
		t.Fatalf("migration did not default the feature toggles")
	}
	if prefs.Equipment == nil {
		t.Fatalf("migration did not add the equipment list")
	}
}

func TestDecodeBlobRejectsNewerVersion(t *testing.T) {
	if _, err := decodeBlob(schemaVersion+1, []byte(`{}`)); err == nil {
		t.Fatalf("expected error for blob newer than supported")
	}
}

func TestDecodeBlobRejectsCorruptData(t *testing.T) {
	if _, err := decodeBlob(schemaVersion, []byte(`{not json`)); err == nil {
		t.Fatalf("expected error for corrupt blob")
	}
	if _, err := decodeBlob(1, []byte(`[1,2,3]`)); err == nil {
		t.Fatalf("expected error for non-object v1 blob")
	}
}
