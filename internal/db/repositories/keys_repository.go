package repositories

import (
	"context"

	"harbourwatch/sealog/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type KeysRepo struct {
	db *sqlx.DB
}

func NewKeysRepo(db *sqlx.DB) *KeysRepo {
	return &KeysRepo{db}
}

// GetStatus looks up an API key and the owner it is scoped to.
func (r *KeysRepo) GetStatus(ctx context.Context, apiKey string) (*entities.APIKey, error) {
	var key entities.APIKey

	query := `SELECT * FROM api_keys WHERE key = $1`
	if err := r.db.QueryRowxContext(ctx, query, apiKey).StructScan(&key); err != nil {
		return nil, err
	}

	return &key, nil
}
