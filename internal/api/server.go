package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/justinas/alice"

	"github.com/buckii/bi-forecast-sub000/infrastructure/integrator/pipedrive"
	"github.com/buckii/bi-forecast-sub000/infrastructure/integrator/quickbooks"
	"github.com/buckii/bi-forecast-sub000/infrastructure/repository"
	"github.com/buckii/bi-forecast-sub000/internal/api/handler"
	"github.com/buckii/bi-forecast-sub000/internal/api/handler/router"
	"github.com/buckii/bi-forecast-sub000/internal/config"
	"github.com/buckii/bi-forecast-sub000/internal/scheduler"
	"github.com/buckii/bi-forecast-sub000/internal/usecases/authenticating"
	"github.com/buckii/bi-forecast-sub000/internal/usecases/exceptions"
	"github.com/buckii/bi-forecast-sub000/internal/usecases/forecasting"
	"github.com/buckii/bi-forecast-sub000/internal/usecases/pairing"
	"github.com/buckii/bi-forecast-sub000/pkg/log"
	"github.com/buckii/bi-forecast-sub000/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Server struct {
	httpServer *http.Server
}

func New(
	cfg *config.Config,
	forecastService forecasting.Service,
	detailService forecasting.DetailService,
	exceptionsFinder exceptions.Finder,
	accounting quickbooks.QuickBooksIntegrator,
	crm pipedrive.PipedriveIntegrator,
	settingsRepo repository.CompanySettingsRepository,
	authenticator authenticating.Authenticator,
	archiveSyncService *scheduler.ArchiveSyncService,
	cacheSweepService *scheduler.CacheSweepService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		ArchiveSyncService: archiveSyncService,
		CacheSweepService:  cacheSweepService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.User(authenticator)...),
		router.WithRoutes(handler.Forecast(forecastService)...),
		router.WithRoutes(handler.Transactions(detailService)...),
		router.WithRoutes(handler.Deals(crm)...),
		router.WithRoutes(handler.Exceptions(exceptionsFinder)...),
		router.WithRoutes(handler.JournalEntryPairs(accounting, settingsRepo, pairing.NewDetector())...),
		router.WithRoutes(handler.Settings(settingsRepo)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	}

	chained := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           chained,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		log.L.WithFields(log.Fields{
			"address": s.httpServer.Addr,
		}).Info("server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.L.WithError(err).Error("server stopped unexpectedly")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		log.L.Info("interrupt signal received")
	case <-ctx.Done():
		log.L.Info("application context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.L.WithField("timeout", "15s").Info("starting graceful shutdown")

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.L.WithError(err).Error("error during server shutdown")
		return err
	}

	log.L.Info("server stopped")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
