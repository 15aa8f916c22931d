package api

import (
	"net/http"
	"time"

	"harbourwatch/sealog/internal/auth"
	"harbourwatch/sealog/internal/constants"
	"harbourwatch/sealog/internal/services"
)

// SeaServiceReportHandler handles GET /reports/sea-service?month=2026-08&department=deck
func SeaServiceReportHandler(svc *services.ReportingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Missing credentials")
			return
		}

		month := r.URL.Query().Get("month")
		if month == "" {
			month = time.Now().UTC().Format("2006-01")
		}
		department := r.URL.Query().Get("department")
		if department == "" {
			department = constants.DepartmentDeck
		}

		reports, err := svc.MonthlySummary(r.Context(), claims.OwnerID(), month, department)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, &reports)
	}
}

// GenerateLinkTokenHandler handles POST /auth/generate-dashboard-link.
// Issues a short-lived token so a companion app can open the logbook
// without holding the API key.
func GenerateLinkTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Missing credentials")
			return
		}

		token, err := auth.SignLinkToken(claims.OwnerID(), 15*time.Minute)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to sign link token")
			return
		}

		respondWithSuccess(w, http.StatusOK, &token)
	}
}
