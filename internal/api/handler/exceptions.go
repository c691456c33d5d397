package handler

import (
	"net/http"

	"github.com/buckii/bi-forecast-sub000/internal/domain"
	"github.com/buckii/bi-forecast-sub000/internal/usecases/exceptions"
	"github.com/buckii/bi-forecast-sub000/pkg/apiErrors"
	"github.com/buckii/bi-forecast-sub000/pkg/middleware"
)

// GetExceptions serves the report of records needing manual attention
func GetExceptions(finder exceptions.Finder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "user is not authenticated", nil)
			return
		}

		report, err := finder.FindAll(r.Context(), claims.CompanyID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		apiErrors.WriteSuccess(w, report)
	}
}
