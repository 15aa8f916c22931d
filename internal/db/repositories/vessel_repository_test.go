package repositories

import (
	"context"
	"testing"

	gormModels "harbourwatch/sealog/internal/models/gorm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	gormlib "gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestVesselRepo(t *testing.T) *VesselRepository {
	t.Helper()

	db, err := gormlib.Open(sqlite.Open("file::memory:?cache=shared"), &gormlib.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// The production schema defaults id via gen_random_uuid(), which sqlite
	// does not have; the test schema takes explicit ids instead.
	require.NoError(t, db.Exec(`DROP TABLE IF EXISTS vessels`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE vessels (
		id TEXT PRIMARY KEY,
		mmsi TEXT NOT NULL,
		name TEXT NOT NULL,
		propulsion_type TEXT DEFAULT 'engine',
		is_active BOOLEAN DEFAULT FALSE,
		owner_id TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	)`).Error)

	return NewVesselRepository(db)
}

func seedVessel(t *testing.T, repo *VesselRepository, id, ownerID string, active bool) {
	t.Helper()

	vessel := gormModels.Vessel{
		ID:             id,
		MMSI:           "235000" + id,
		Name:           "MV " + id,
		PropulsionType: "engine",
		IsActive:       active,
		OwnerID:        ownerID,
	}
	require.NoError(t, repo.db.Create(&vessel).Error)
}

func TestVesselRepository_GetByID(t *testing.T) {
	repo := newTestVesselRepo(t)
	seedVessel(t, repo, "v1", "owner-1", false)

	vessel, err := repo.GetByID(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, "MV v1", vessel.Name)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrVesselNotFound)
}

func TestVesselRepository_Activate_Exclusive(t *testing.T) {
	repo := newTestVesselRepo(t)
	ctx := context.Background()

	seedVessel(t, repo, "v1", "owner-1", true)
	seedVessel(t, repo, "v2", "owner-1", false)
	seedVessel(t, repo, "v3", "owner-2", true)

	activated, err := repo.Activate(ctx, "owner-1", "v2")
	require.NoError(t, err)
	assert.True(t, activated.IsActive)

	// The owner's previously active vessel was deactivated in the same
	// transaction.
	v1, err := repo.GetByID(ctx, "v1")
	require.NoError(t, err)
	assert.False(t, v1.IsActive)

	// Another owner's active vessel is untouched.
	v3, err := repo.GetByID(ctx, "v3")
	require.NoError(t, err)
	assert.True(t, v3.IsActive)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestVesselRepository_Activate_Idempotent(t *testing.T) {
	repo := newTestVesselRepo(t)
	ctx := context.Background()

	seedVessel(t, repo, "v1", "owner-1", false)

	for i := 0; i < 2; i++ {
		vessel, err := repo.Activate(ctx, "owner-1", "v1")
		require.NoError(t, err)
		assert.True(t, vessel.IsActive)
	}

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestVesselRepository_Activate_WrongOwner(t *testing.T) {
	repo := newTestVesselRepo(t)
	seedVessel(t, repo, "v1", "owner-1", false)

	// Owner scoping: another owner cannot activate the vessel.
	_, err := repo.Activate(context.Background(), "owner-2", "v1")
	assert.ErrorIs(t, err, ErrVesselNotFound)
}

func TestVesselRepository_Deactivate(t *testing.T) {
	repo := newTestVesselRepo(t)
	ctx := context.Background()

	seedVessel(t, repo, "v1", "owner-1", true)

	require.NoError(t, repo.Deactivate(ctx, "owner-1", "v1"))

	v1, err := repo.GetByID(ctx, "v1")
	require.NoError(t, err)
	assert.False(t, v1.IsActive)

	assert.ErrorIs(t, repo.Deactivate(ctx, "owner-1", "missing"), ErrVesselNotFound)
}

func TestVesselRepository_ListByOwner(t *testing.T) {
	repo := newTestVesselRepo(t)

	seedVessel(t, repo, "v1", "owner-1", false)
	seedVessel(t, repo, "v2", "owner-1", true)
	seedVessel(t, repo, "v3", "owner-2", false)

	vessels, err := repo.ListByOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Len(t, vessels, 2)
}
