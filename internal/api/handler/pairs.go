package handler

import (
	"net/http"

	"github.com/buckii/bi-forecast-sub000/infrastructure/integrator/quickbooks"
	"github.com/buckii/bi-forecast-sub000/infrastructure/repository"
	"github.com/buckii/bi-forecast-sub000/internal/domain"
	"github.com/buckii/bi-forecast-sub000/internal/usecases/pairing"
	"github.com/buckii/bi-forecast-sub000/pkg/apiErrors"
	"github.com/buckii/bi-forecast-sub000/pkg/middleware"
)

// GetJournalEntryPairs detects matched debit/credit journal-entry pairs over
// the requested date range. Requires the company's journal-entry account
// roles to be configured.
func GetJournalEntryPairs(
	accounting quickbooks.QuickBooksIntegrator,
	settingsRepo repository.CompanySettingsRepository,
	detector *pairing.Detector,
) http.HandlerFunc {
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

		settings, err := settingsRepo.Get(r.Context(), claims.CompanyID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		if settings == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest,
				"journal entry accounts are not configured for this company", nil)
			return
		}

		if err := settings.JournalEntryAccounts.Validate(); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		entries, err := accounting.FetchJournalEntries(r.Context(), claims.CompanyID, start, end)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		annotated := pairing.Annotate(entries, &settings.JournalEntryAccounts)

		apiErrors.WriteSuccess(w, detector.Detect(annotated))
	}
}
