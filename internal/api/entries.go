package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"harbourwatch/sealog/internal/accrual"
	"harbourwatch/sealog/internal/auth"
	"harbourwatch/sealog/internal/db/repositories"
	"harbourwatch/sealog/internal/models/dtos"
	"harbourwatch/sealog/internal/models/entities"
	"harbourwatch/sealog/internal/services"

	"github.com/go-chi/chi/v5"
)

// ListPendingEntriesHandler handles GET /entries/pending
func ListPendingEntriesHandler(svc *services.SeaTimeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Missing credentials")
			return
		}

		entries, err := svc.ListPending(r.Context(), claims.OwnerID())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to load pending entries")
			return
		}

		out := make([]dtos.EntryResponse, 0, len(entries))
		for i := range entries {
			out = append(out, toEntryResponse(&entries[i]))
		}
		respondWithSuccess(w, http.StatusOK, &out)
	}
}

// ConfirmEntryHandler handles POST /entries/{entry_id}/confirm
func ConfirmEntryHandler(svc *services.SeaTimeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Missing credentials")
			return
		}
		entryID := chi.URLParam(r, "entry_id")

		var req dtos.ConfirmEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		entry, err := svc.ConfirmEntry(r.Context(), claims.OwnerID(), entryID, &req)
		if err != nil {
			writeEntryError(w, err)
			return
		}

		resp := toEntryResponse(entry)
		respondWithSuccess(w, http.StatusOK, &resp)
	}
}

// RejectEntryHandler handles POST /entries/{entry_id}/reject
func RejectEntryHandler(svc *services.SeaTimeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Missing credentials")
			return
		}
		entryID := chi.URLParam(r, "entry_id")

		var req dtos.RejectEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		entry, err := svc.RejectEntry(r.Context(), claims.OwnerID(), entryID, req.Notes)
		if err != nil {
			writeEntryError(w, err)
			return
		}

		resp := toEntryResponse(entry)
		respondWithSuccess(w, http.StatusOK, &resp)
	}
}

// DeleteEntryHandler handles DELETE /entries/{entry_id}
func DeleteEntryHandler(svc *services.SeaTimeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Missing credentials")
			return
		}
		entryID := chi.URLParam(r, "entry_id")

		if err := svc.DeleteEntry(r.Context(), claims.OwnerID(), entryID); err != nil {
			writeEntryError(w, err)
			return
		}

		msg := "deleted"
		respondWithSuccess(w, http.StatusOK, &msg)
	}
}

// CreateManualEntryHandler handles POST /entries/manual
func CreateManualEntryHandler(svc *services.SeaTimeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Missing credentials")
			return
		}

		var req dtos.ManualEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		entry, err := svc.CreateManualEntry(r.Context(), claims.OwnerID(), &req)
		if err != nil {
			writeEntryError(w, err)
			return
		}

		resp := toEntryResponse(entry)
		respondWithSuccess(w, http.StatusCreated, &resp)
	}
}

func writeEntryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repositories.ErrEntryNotFound),
		errors.Is(err, repositories.ErrVesselNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repositories.ErrInvalidEntryState),
		errors.Is(err, repositories.ErrOverlappingEntry),
		errors.Is(err, repositories.ErrDuplicateOpenEntry),
		errors.Is(err, services.ErrIdenticalCoordinates),
		errors.Is(err, services.ErrEntryStillOpen):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrVesselNotOwned):
		respondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrUnknownServiceType),
		errors.Is(err, services.ErrInvalidTimeRange):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal error")
	}
}

func toEntryResponse(e *entities.SeaTimeEntry) dtos.EntryResponse {
	resp := dtos.EntryResponse{
		ID:                          e.ID,
		VesselID:                    e.VesselID,
		StartTime:                   e.StartTime.UTC().Format(time.RFC3339),
		Status:                      e.Status,
		ServiceType:                 e.ServiceType,
		WatchkeepingHours:           e.WatchkeepingHours,
		AdditionalWatchkeepingHours: e.AdditionalWatchkeepingHours,
		EffectiveSeaHours:           e.EffectiveSeaHours,
		IsStationary:                e.IsStationary,
		Notes:                       e.Notes,
	}
	if e.EndTime != nil {
		end := e.EndTime.UTC().Format(time.RFC3339)
		resp.EndTime = &end
	}
	if e.DurationHours != nil {
		resp.DurationHours = e.DurationHours
		resp.MCACompliant = accrual.MCACompliant(*e.DurationHours)
		resp.RequiresReview = !resp.MCACompliant
	}
	return resp
}
