// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avandyk/wealth-analytics/internal/api/response"
	"github.com/avandyk/wealth-analytics/internal/validation"
)

// ValidateAccountIDMiddleware validates that the accountID URL parameter is
// present and is a valid UUID. Returns 400 Bad Request otherwise. Apply it to
// routes carrying an account ID in the URL path:
//
//	r.Route("/{accountID}", func(r chi.Router) {
//	    r.Use(middleware.ValidateAccountIDMiddleware)
//	    r.Get("/snapshots", handler.Snapshots)
//	})
func ValidateAccountIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID := chi.URLParam(r, "accountID")

		if accountID == "" {
			response.RespondError(w, http.StatusBadRequest, "valid account ID is required", "")
			return
		}

		if err := validation.ValidateUUID(accountID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid account ID format", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
