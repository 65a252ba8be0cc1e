package preferences

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
)

// schemaVersion is the current version of the persisted preference blob.
// Older blobs are upgraded through blobMigrations on load.
const schemaVersion = 2

// blobMigrations upgrades a decoded blob from version v to v+1. Each step
// mutates the generic map so later versions can keep adding fields without
// touching earlier steps.
var blobMigrations = map[int]func(map[string]interface{}){
	// v1 predates the feature toggles and equipment list
	1: func(m map[string]interface{}) {
		if _, ok := m["enableSmartRecommendations"]; !ok {
			m["enableSmartRecommendations"] = true
		}
		if _, ok := m["enableNutritionalAlerts"]; !ok {
			m["enableNutritionalAlerts"] = true
		}
		if _, ok := m["equipment"]; !ok {
			m["equipment"] = []interface{}{}
		}
	},
}

type Repository interface {
	Get(ctx context.Context, userID int64) (*UserPreferences, error)
	Save(ctx context.Context, userID int64, prefs *UserPreferences) error
	Delete(ctx context.Context, userID int64) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

type blobRow struct {
	Version int    `db:"version"`
	Data    []byte `db:"data"`
}

// Get loads the persisted preference blob for the user. Absent or corrupt
// blobs fall back to defaults and never produce an error.
func (r *postgresRepository) Get(ctx context.Context, userID int64) (*UserPreferences, error) {
	var row blobRow
	query := `SELECT version, data FROM user_preferences WHERE user_id = $1`

	err := r.db.GetContext(ctx, &row, query, userID)
	if err == sql.ErrNoRows {
		return DefaultPreferences(), nil
	}
	if err != nil {
		return nil, err
	}

	prefs, err := decodeBlob(row.Version, row.Data)
	if err != nil {
		log.Printf("preferences: corrupt blob for user %d, falling back to defaults: %v", userID, err)
		return DefaultPreferences(), nil
	}

	return prefs, nil
}

func (r *postgresRepository) Save(ctx context.Context, userID int64, prefs *UserPreferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	query := `
        INSERT INTO user_preferences (user_id, version, data, updated_at)
        VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
        ON CONFLICT (user_id)
        DO UPDATE SET version = $2, data = $3, updated_at = CURRENT_TIMESTAMP
    `

	_, err = r.db.ExecContext(ctx, query, userID, schemaVersion, data)
	return err
}

func (r *postgresRepository) Delete(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_preferences WHERE user_id = $1`, userID)
	return err
}

// decodeBlob runs the stored blob through any pending migrations and decodes
// it into a UserPreferences value.
func decodeBlob(version int, data []byte) (*UserPreferences, error) {
	if version > schemaVersion {
		return nil, fmt.Errorf("blob version %d is newer than supported %d", version, schemaVersion)
	}

	if version < schemaVersion {
		var generic map[string]interface{}
		if err := json.Unmarshal(data, &generic); err != nil {
			return nil, err
		}
		for v := version; v < schemaVersion; v++ {
			migrate, ok := blobMigrations[v]
			if !ok {
				return nil, fmt.Errorf("no migration from blob version %d", v)
			}
			migrate(generic)
		}
		upgraded, err := json.Marshal(generic)
		if err != nil {
			return nil, err
		}
		data = upgraded
	}

	var prefs UserPreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}
