package entities

import "time"

type APIKey struct {
	Key       string    `db:"key"`
	OwnerID   string    `db:"owner_id"`
	Status    bool      `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}
