package handler

import (
	"net/http"
	"strconv"

	"github.com/buckii/bi-forecast-sub000/infrastructure/integrator/pipedrive"
	"github.com/buckii/bi-forecast-sub000/internal/domain"
	"github.com/buckii/bi-forecast-sub000/pkg/apiErrors"
	"github.com/buckii/bi-forecast-sub000/pkg/middleware"
)

const defaultTimelineMonths = 6

// GetWonDeals lists deals won within [start, end], both dates required
func GetWonDeals(crm pipedrive.PipedriveIntegrator) http.HandlerFunc {
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

		// the fetch window is half-open, so include the end day itself
		deals, err := crm.FetchWonDeals(r.Context(), claims.CompanyID, start, end.AddDate(0, 0, 1))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		apiErrors.WriteSuccess(w, deals)
	}
}

// GetDealsTimeline lists open deals expected to close within a month window
// starting at the given date, defaulting to six months from the current month
func GetDealsTimeline(crm pipedrive.PipedriveIntegrator) http.HandlerFunc {
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

		months := defaultTimelineMonths
		if raw := r.URL.Query().Get("months"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "months must be a positive integer", nil)
				return
			}
			months = parsed
		}

		deals, err := crm.FetchDealsTimeline(r.Context(), claims.CompanyID, start, months)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		apiErrors.WriteSuccess(w, deals)
	}
}
