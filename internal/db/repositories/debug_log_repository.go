package repositories

import (
	"context"

	"harbourwatch/sealog/internal/constants"
	"harbourwatch/sealog/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// DebugLogRepository appends AIS poll diagnostics. The table is append-only;
// there is deliberately no update or delete here.
type DebugLogRepository struct {
	db *sqlx.DB
}

func NewDebugLogRepository(db *sqlx.DB) *DebugLogRepository {
	return &DebugLogRepository{db}
}

func (r *DebugLogRepository) Append(ctx context.Context, entry *entities.AISDebugLog) error {
	_, err := r.db.ExecContext(ctx, constants.InsertDebugLog,
		entry.VesselID,
		entry.MMSI,
		entry.APIURL,
		entry.RequestTime,
		entry.ResponseStatus,
		entry.ResponseBody,
		entry.AuthStatus,
		entry.ErrorMessage,
	)
	return err
}
