package middleware

import (
	"net/http"
	"strings"

	"harbourwatch/sealog/internal/auth"
	"harbourwatch/sealog/internal/db/repositories"
)

// AuthMiddleware authenticates every request with either an owner API key or
// a short-lived dashboard-link token. An authentication failure here never
// disables anything server-side; a fixed credential works on the next call.
func AuthMiddleware(keysRepo *repositories.KeysRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			authHeader := r.Header.Get("Authorization")
			apiKey := r.Header.Get("X-API-Key")

			var claims auth.UserClaims

			switch {
			case strings.HasPrefix(authHeader, "Bearer "):
				token := strings.TrimPrefix(authHeader, "Bearer ")
				linkClaims, err := auth.ParseLinkToken(token)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid link token", http.StatusUnauthorized)
					return
				}
				claims = linkClaims

			case apiKey != "":
				keyRes, err := keysRepo.GetStatus(r.Context(), apiKey)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid API Key", http.StatusUnauthorized)
					return
				}

				if !keyRes.Status {
					http.Error(w, "Unauthorized. Inactive API Key", http.StatusUnauthorized)
					return
				}

				claims = &auth.APIKeyClaims{OwnerUUID: keyRes.OwnerID}

			default:
				http.Error(w, "Unauthorized. Missing credentials", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
