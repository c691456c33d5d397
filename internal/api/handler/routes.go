package handler

import (
	"net/http"

	"github.com/buckii/bi-forecast-sub000/infrastructure/integrator/pipedrive"
	"github.com/buckii/bi-forecast-sub000/infrastructure/integrator/quickbooks"
	"github.com/buckii/bi-forecast-sub000/infrastructure/repository"
	"github.com/buckii/bi-forecast-sub000/internal/api/handler/router"
	"github.com/buckii/bi-forecast-sub000/internal/usecases/authenticating"
	"github.com/buckii/bi-forecast-sub000/internal/usecases/exceptions"
	"github.com/buckii/bi-forecast-sub000/internal/usecases/forecasting"
	"github.com/buckii/bi-forecast-sub000/internal/usecases/pairing"
	"github.com/buckii/bi-forecast-sub000/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Forecast(service forecasting.Service) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/forecast",
			Method:      http.MethodGet,
			Handler:     GetForecast(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/forecast/history",
			Method:      http.MethodGet,
			Handler:     GetForecastHistory(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Transactions(service forecasting.DetailService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/months/:month/transactions",
			Method:      http.MethodGet,
			Handler:     GetMonthTransactions(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/transactions",
			Method:      http.MethodGet,
			Handler:     GetRangeTransactions(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/cache/prefetch",
			Method:      http.MethodPost,
			Handler:     PrefetchTransactions(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Deals(crm pipedrive.PipedriveIntegrator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/deals/won",
			Method:      http.MethodGet,
			Handler:     GetWonDeals(crm),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/deals/timeline",
			Method:      http.MethodGet,
			Handler:     GetDealsTimeline(crm),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Exceptions(finder exceptions.Finder) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/exceptions",
			Method:      http.MethodGet,
			Handler:     GetExceptions(finder),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func JournalEntryPairs(
	accounting quickbooks.QuickBooksIntegrator,
	settingsRepo repository.CompanySettingsRepository,
	detector *pairing.Detector,
) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/journal-entries/pairs",
			Method:      http.MethodGet,
			Handler:     GetJournalEntryPairs(accounting, settingsRepo, detector),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Settings(settingsRepo repository.CompanySettingsRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/settings/journal-accounts",
			Method:      http.MethodGet,
			Handler:     GetJournalAccounts(settingsRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/settings/journal-accounts",
			Method:      http.MethodPut,
			Handler:     UpdateJournalAccounts(settingsRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
