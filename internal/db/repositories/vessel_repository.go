package repositories

import (
	"context"
	"errors"
	"time"

	gormModels "harbourwatch/sealog/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

var ErrVesselNotFound = errors.New("vessel not found")

// VesselRepository handles vessel reads and the exclusive-activation rule:
// at most one is_active vessel per owner, enforced in a single transaction.
type VesselRepository struct {
	db *gormlib.DB
}

func NewVesselRepository(db *gormlib.DB) *VesselRepository {
	return &VesselRepository{db: db}
}

func (r *VesselRepository) GetByID(ctx context.Context, vesselID string) (*gormModels.Vessel, error) {
	var vessel gormModels.Vessel

	err := r.db.WithContext(ctx).
		Where("id = ?", vesselID).
		First(&vessel).Error
	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, ErrVesselNotFound
		}
		return nil, err
	}

	return &vessel, nil
}

// ListActive returns every vessel currently under automatic tracking.
func (r *VesselRepository) ListActive(ctx context.Context) ([]gormModels.Vessel, error) {
	var vessels []gormModels.Vessel

	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&vessels).Error

	return vessels, err
}

func (r *VesselRepository) ListByOwner(ctx context.Context, ownerID string) ([]gormModels.Vessel, error) {
	var vessels []gormModels.Vessel

	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at").
		Find(&vessels).Error

	return vessels, err
}

// Activate marks the vessel active and deactivates the owner's previously
// active vessel in the same transaction, so the per-owner uniqueness
// invariant can never be observed violated.
func (r *VesselRepository) Activate(ctx context.Context, ownerID, vesselID string) (*gormModels.Vessel, error) {
	var vessel gormModels.Vessel

	err := r.db.WithContext(ctx).Transaction(func(tx *gormlib.DB) error {
		if err := tx.Where("id = ? AND owner_id = ?", vesselID, ownerID).First(&vessel).Error; err != nil {
			if err == gormlib.ErrRecordNotFound {
				return ErrVesselNotFound
			}
			return err
		}

		if err := tx.Model(&gormModels.Vessel{}).
			Where("owner_id = ? AND is_active = ? AND id <> ?", ownerID, true, vesselID).
			Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()}).Error; err != nil {
			return err
		}

		return tx.Model(&vessel).
			Updates(map[string]interface{}{"is_active": true, "updated_at": time.Now()}).Error
	})
	if err != nil {
		return nil, err
	}

	vessel.IsActive = true
	return &vessel, nil
}

// Deactivate turns tracking off for the vessel.
func (r *VesselRepository) Deactivate(ctx context.Context, ownerID, vesselID string) error {
	res := r.db.WithContext(ctx).Model(&gormModels.Vessel{}).
		Where("id = ? AND owner_id = ?", vesselID, ownerID).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVesselNotFound
	}
	return nil
}
