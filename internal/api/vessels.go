package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"harbourwatch/sealog/internal/auth"
	"harbourwatch/sealog/internal/db/repositories"
	gormModels "harbourwatch/sealog/internal/models/gorm"
	"harbourwatch/sealog/internal/services"

	"github.com/go-chi/chi/v5"
)

type activateVesselRequest struct {
	IntervalHours float64 `json:"interval_hours"`
}

// ListVesselsHandler handles GET /vessels
func ListVesselsHandler(svc *services.VesselService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Missing credentials")
			return
		}

		vessels, err := svc.ListByOwner(r.Context(), claims.OwnerID())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to load vessels")
			return
		}

		respondWithSuccess(w, http.StatusOK, &vessels)
	}
}

// ActivateVesselHandler handles POST /vessels/{vessel_id}/activate
func ActivateVesselHandler(svc *services.VesselService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Missing credentials")
			return
		}
		vesselID := chi.URLParam(r, "vessel_id")

		var req activateVesselRequest
		if r.Body != nil {
			// Body is optional; default interval applies when absent.
			_ = json.NewDecoder(r.Body).Decode(&req)
		}

		vessel, err := svc.ActivateVessel(r.Context(), claims.OwnerID(), vesselID, req.IntervalHours)
		if err != nil {
			writeVesselError(w, err)
			return
		}

		respondWithSuccess[gormModels.Vessel](w, http.StatusOK, vessel)
	}
}

// DeactivateVesselHandler handles POST /vessels/{vessel_id}/deactivate
func DeactivateVesselHandler(svc *services.VesselService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Missing credentials")
			return
		}
		vesselID := chi.URLParam(r, "vessel_id")

		if err := svc.DeactivateVessel(r.Context(), claims.OwnerID(), vesselID); err != nil {
			writeVesselError(w, err)
			return
		}

		msg := "deactivated"
		respondWithSuccess(w, http.StatusOK, &msg)
	}
}

func writeVesselError(w http.ResponseWriter, err error) {
	if errors.Is(err, repositories.ErrVesselNotFound) {
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	respondWithError(w, http.StatusInternalServerError, "Internal error")
}
