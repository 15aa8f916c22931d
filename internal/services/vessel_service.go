package services

import (
	"context"
	"fmt"

	"harbourwatch/sealog/internal/common"
	"harbourwatch/sealog/internal/constants"
	"harbourwatch/sealog/internal/db/repositories"
	"harbourwatch/sealog/internal/logging"
	gormModels "harbourwatch/sealog/internal/models/gorm"
)

// VesselService orchestrates vessel activation: the vessel flip happens in
// one repository transaction, and the polling task follows the active flag.
type VesselService struct {
	vessels *repositories.VesselRepository
	tasks   *repositories.TaskRepository
	cache   common.CacheInterface
}

func NewVesselService(vessels *repositories.VesselRepository, tasks *repositories.TaskRepository, cache common.CacheInterface) *VesselService {
	return &VesselService{vessels: vessels, tasks: tasks, cache: cache}
}

// ActivateVessel makes the vessel the owner's single tracked vessel and
// schedules polling for it. The previously active vessel's task is removed so
// exactly one task per owner polls at a time.
func (s *VesselService) ActivateVessel(ctx context.Context, ownerID, vesselID string, intervalHours float64) (*gormModels.Vessel, error) {
	if intervalHours <= 0 {
		intervalHours = constants.DefaultPollIntervalHours
	}

	previous, err := s.vessels.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	vessel, err := s.vessels.Activate(ctx, ownerID, vesselID)
	if err != nil {
		return nil, err
	}

	for _, v := range previous {
		if v.IsActive && v.ID != vesselID {
			if err := s.tasks.DeleteForVessel(ctx, v.ID); err != nil {
				logging.Warn("Failed to remove polling task for deactivated vessel",
					"vessel_id", v.ID, "error", err.Error())
			}
		}
	}

	// Idempotent re-activation: clear any existing task before scheduling.
	if err := s.tasks.DeleteForVessel(ctx, vesselID); err != nil {
		return nil, fmt.Errorf("failed to reset polling task: %w", err)
	}
	if _, err := s.tasks.CreateForVessel(ctx, vesselID, intervalHours); err != nil {
		return nil, fmt.Errorf("failed to schedule polling task: %w", err)
	}

	s.invalidate(ownerID, vesselID)

	logging.Info("Vessel activated for tracking",
		"vessel_id", vesselID,
		"owner_id", ownerID,
		"interval_hours", intervalHours,
	)
	return vessel, nil
}

// DeactivateVessel stops tracking and removes the polling task.
func (s *VesselService) DeactivateVessel(ctx context.Context, ownerID, vesselID string) error {
	if err := s.vessels.Deactivate(ctx, ownerID, vesselID); err != nil {
		return err
	}
	if err := s.tasks.DeleteForVessel(ctx, vesselID); err != nil {
		return fmt.Errorf("failed to remove polling task: %w", err)
	}

	s.invalidate(ownerID, vesselID)

	logging.Info("Vessel deactivated", "vessel_id", vesselID, "owner_id", ownerID)
	return nil
}

func (s *VesselService) ListByOwner(ctx context.Context, ownerID string) ([]gormModels.Vessel, error) {
	return s.vessels.ListByOwner(ctx, ownerID)
}

func (s *VesselService) invalidate(ownerID, vesselID string) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(string(constants.CachePrefixVessel) + vesselID)
	s.cache.Delete(string(constants.CachePrefixOwnerVessels) + ownerID)
}
