package handler

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/buckii/bi-forecast-sub000/internal/domain"
	"github.com/buckii/bi-forecast-sub000/internal/usecases/forecasting"
	"github.com/buckii/bi-forecast-sub000/pkg/apiErrors"
	"github.com/buckii/bi-forecast-sub000/pkg/middleware"
)

// GetMonthTransactions serves one month's per-component transaction detail
// and per-client breakdown
func GetMonthTransactions(service forecasting.DetailService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "user is not authenticated", nil)
			return
		}

		monthStr := httprouter.ParamsFromContext(r.Context()).ByName("month")
		month, err := time.ParseInLocation(dateParamLayout, monthStr, time.Local)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "month must be a YYYY-MM-DD date", nil)
			return
		}

		asOf, ok := optionalDateParam(w, r, "asOf")
		if !ok {
			return
		}

		asOfDate := time.Now()
		if asOf != nil {
			asOfDate = *asOf
		}

		entry, err := service.GetMonthDetail(r.Context(), claims.CompanyID, month, asOfDate)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		apiErrors.WriteSuccess(w, entry)
	}
}

// GetRangeTransactions serves the combined detail for a month range
func GetRangeTransactions(service forecasting.DetailService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "user is not authenticated", nil)
			return
		}

		start, ok := requiredDateParam(w, r, "start")
		if !ok {
			return
		}

		end, ok := requiredDateParam(w, r, "end")
		if !ok {
			return
		}

		if end.Before(start) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "end must not be before start", nil)
			return
		}

		asOf, ok := optionalDateParam(w, r, "asOf")
		if !ok {
			return
		}

		asOfDate := time.Now()
		if asOf != nil {
			asOfDate = *asOf
		}

		entry, err := service.GetRangeDetail(r.Context(), claims.CompanyID, start, end, asOfDate)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		apiErrors.WriteSuccess(w, entry)
	}
}

// PrefetchTransactions warms the detail cache for the standard dashboard
// window
func PrefetchTransactions(service forecasting.DetailService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "user is not authenticated", nil)
			return
		}

		if err := service.Prefetch(r.Context(), claims.CompanyID, time.Now()); err != nil {
			writeDomainError(w, err)
			return
		}

		apiErrors.WriteSuccess(w, map[string]bool{"prefetched": true})
	}
}
