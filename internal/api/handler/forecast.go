package handler

import (
	"net/http"
	"time"

	"github.com/buckii/bi-forecast-sub000/internal/domain"
	"github.com/buckii/bi-forecast-sub000/internal/usecases/forecasting"
	"github.com/buckii/bi-forecast-sub000/pkg/apiErrors"
	"github.com/buckii/bi-forecast-sub000/pkg/middleware"
)

const dateParamLayout = "2006-01-02"

// ForecastMonth is one month of the forecast response, with the total
// already resolved for the caller's weighted-sales choice
type ForecastMonth struct {
	MonthStart   string                `json:"monthStart"`
	Components   domain.Components     `json:"components"`
	Total        float64               `json:"total"`
	Transactions []*domain.Transaction `json:"transactions,omitempty"`
}

type ForecastResponse struct {
	CompanyID        string                   `json:"companyId"`
	Months           []ForecastMonth          `json:"months"`
	AsOf             *string                  `json:"asOf,omitempty"`
	FromArchive      bool                     `json:"fromArchive"`
	IncludeWeighted  bool                     `json:"includeWeighted"`
	DataSourceErrors []domain.DataSourceError `json:"dataSourceErrors,omitempty"`
}

// GetForecast serves the live forecast window, or a point-in-time view when
// the asOf query parameter is present
func GetForecast(service forecasting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "user is not authenticated", nil)
			return
		}

		asOf, ok := optionalDateParam(w, r, "asOf")
		if !ok {
			return
		}

		includeWeighted := r.URL.Query().Get("includeWeighted") == "true"

		forecast, err := service.GetForecast(r.Context(), claims.CompanyID, asOf)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		apiErrors.WriteSuccess(w, buildForecastResponse(forecast, includeWeighted, false))
	}
}

// GetForecastHistory serves the archived view for a required date. Unlike
// GetForecast it never falls back to the current data.
func GetForecastHistory(service forecasting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "user is not authenticated", nil)
			return
		}

		date, ok := requiredDateParam(w, r, "date")
		if !ok {
			return
		}

		includeWeighted := r.URL.Query().Get("includeWeighted") == "true"

		forecast, err := service.GetForecast(r.Context(), claims.CompanyID, &date)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		apiErrors.WriteSuccess(w, buildForecastResponse(forecast, includeWeighted, true))
	}
}

func buildForecastResponse(forecast *forecasting.Forecast, includeWeighted, includeTransactions bool) ForecastResponse {
	response := ForecastResponse{
		CompanyID:        forecast.CompanyID,
		Months:           make([]ForecastMonth, 0, len(forecast.Months)),
		FromArchive:      forecast.FromArchive,
		IncludeWeighted:  includeWeighted,
		DataSourceErrors: forecast.DataSourceErrors,
	}

	if forecast.AsOf != nil {
		asOf := forecast.AsOf.Format(dateParamLayout)
		response.AsOf = &asOf
	}

	for _, month := range forecast.Months {
		responseMonth := ForecastMonth{
			MonthStart: month.MonthStart.Format(dateParamLayout),
			Components: month.Components,
			Total:      month.Components.Total(includeWeighted),
		}
		if includeTransactions {
			responseMonth.Transactions = month.Transactions
		}
		response.Months = append(response.Months, responseMonth)
	}

	return response
}

// optionalDateParam reads a strictly YYYY-MM-DD query parameter, writing the
// validation error itself. The bool result is false when a response was
// already written.
func optionalDateParam(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, true
	}

	parsed, err := time.ParseInLocation(dateParamLayout, value, time.Local)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, name+" must be a YYYY-MM-DD date", nil)
		return nil, false
	}

	return &parsed, true
}

func requiredDateParam(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, name+" is required", nil)
		return time.Time{}, false
	}

	parsed, err := time.ParseInLocation(dateParamLayout, value, time.Local)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, name+" must be a YYYY-MM-DD date", nil)
		return time.Time{}, false
	}

	return parsed, true
}
