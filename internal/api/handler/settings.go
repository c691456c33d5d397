package handler

import (
	"encoding/json"
	"net/http"

	"github.com/buckii/bi-forecast-sub000/infrastructure/repository"
	"github.com/buckii/bi-forecast-sub000/internal/domain"
	"github.com/buckii/bi-forecast-sub000/pkg/apiErrors"
	"github.com/buckii/bi-forecast-sub000/pkg/middleware"
)

// GetJournalAccounts returns the company's journal-entry account role
// configuration
func GetJournalAccounts(settingsRepo repository.CompanySettingsRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "user is not authenticated", nil)
			return
		}

		settings, err := settingsRepo.Get(r.Context(), claims.CompanyID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		if settings == nil {
			apiErrors.WriteSuccess(w, domain.JournalEntryAccounts{})
			return
		}

		apiErrors.WriteSuccess(w, settings.JournalEntryAccounts)
	}
}

// UpdateJournalAccounts replaces the company's journal-entry account roles.
// Every named role must be present; partial configurations are rejected up
// front.
func UpdateJournalAccounts(settingsRepo repository.CompanySettingsRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "user is not authenticated", nil)
			return
		}

		var accounts domain.JournalEntryAccounts
		if err := json.NewDecoder(r.Body).Decode(&accounts); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		if err := accounts.Validate(); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			return
		}

		settings, err := settingsRepo.Get(r.Context(), claims.CompanyID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		if settings == nil {
			settings = &domain.CompanySettings{CompanyID: claims.CompanyID}
		}

		settings.JournalEntryAccounts = accounts

		if err := settingsRepo.Save(r.Context(), settings); err != nil {
			writeDomainError(w, err)
			return
		}

		apiErrors.WriteSuccess(w, settings.JournalEntryAccounts)
	}
}
