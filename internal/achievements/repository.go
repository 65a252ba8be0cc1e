package achievements

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
)

// stateVersion is the current version of the persisted gamification blob
const stateVersion = 2

// stateMigrations upgrades a decoded blob from version v to v+1
var stateMigrations = map[int]func(map[string]interface{}){
	// v1 predates the selectable display title
	1: func(m map[string]interface{}) {
		if _, ok := m["currentTitle"]; !ok {
			m["currentTitle"] = ""
		}
		if _, ok := m["unlockedTitles"]; !ok {
			m["unlockedTitles"] = []interface{}{}
		}
	},
}

type Repository interface {
	// Get returns nil when no state exists yet
	Get(ctx context.Context, userID int64) (*State, error)
	Save(ctx context.Context, userID int64, state *State) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

type stateRow struct {
	Version int    `db:"version"`
	Data    []byte `db:"data"`
}

// Get loads the persisted state blob. A corrupt blob is treated like an
// absent one so the service can reseed; it never produces an error.
func (r *postgresRepository) Get(ctx context.Context, userID int64) (*State, error) {
	var row stateRow
	query := `SELECT version, data FROM achievement_states WHERE user_id = $1`

	err := r.db.GetContext(ctx, &row, query, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state, err := decodeState(row.Version, row.Data)
	if err != nil {
		log.Printf("achievements: corrupt state for user %d, reseeding: %v", userID, err)
		return nil, nil
	}

	return state, nil
}

func (r *postgresRepository) Save(ctx context.Context, userID int64, state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode achievement state: %w", err)
	}

	query := `
        INSERT INTO achievement_states (user_id, version, data, updated_at)
        VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
        ON CONFLICT (user_id)
        DO UPDATE SET version = $2, data = $3, updated_at = CURRENT_TIMESTAMP
    `

	_, err = r.db.ExecContext(ctx, query, userID, stateVersion, data)
	return err
}

func decodeState(version int, data []byte) (*State, error) {
	if version > stateVersion {
		return nil, fmt.Errorf("state version %d is newer than supported %d", version, stateVersion)
	}

	if version < stateVersion {
		var generic map[string]interface{}
		if err := json.Unmarshal(data, &generic); err != nil {
			return nil, err
		}
		for v := version; v < stateVersion; v++ {
			migrate, ok := stateMigrations[v]
			if !ok {
				return nil, fmt.Errorf("no migration from state version %d", v)
			}
			migrate(generic)
		}
		upgraded, err := json.Marshal(generic)
		if err != nil {
			return nil, err
		}
		data = upgraded
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}
