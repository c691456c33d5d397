package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/buckii/bi-forecast-sub000/infrastructure/database/postgres"
	"github.com/buckii/bi-forecast-sub000/infrastructure/integrator/pipedrive"
	"github.com/buckii/bi-forecast-sub000/infrastructure/integrator/pipedrive/pipedriveclient"
	"github.com/buckii/bi-forecast-sub000/infrastructure/integrator/quickbooks"
	"github.com/buckii/bi-forecast-sub000/infrastructure/integrator/quickbooks/qbclient"
	"github.com/buckii/bi-forecast-sub000/infrastructure/repository"
	"github.com/buckii/bi-forecast-sub000/internal/api"
	"github.com/buckii/bi-forecast-sub000/internal/config"
	"github.com/buckii/bi-forecast-sub000/internal/scheduler"
	"github.com/buckii/bi-forecast-sub000/internal/usecases/archiving"
	"github.com/buckii/bi-forecast-sub000/internal/usecases/authenticating"
	"github.com/buckii/bi-forecast-sub000/internal/usecases/exceptions"
	"github.com/buckii/bi-forecast-sub000/internal/usecases/forecasting"
	"github.com/buckii/bi-forecast-sub000/pkg/ratelimit"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("invalid log level %q, using info", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	settingsRepo := repository.NewCompanySettingsRepository(pgConn)
	credentialRepo := repository.NewCredentialRepository(pgConn)
	archiveRepo := repository.NewArchiveSnapshotRepository(pgConn)
	cacheRepo := repository.NewTransactionCacheRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	qbGate := ratelimit.NewGate(time.Duration(cfg.QuickBooks.RequestIntervalMS) * time.Millisecond)
	qbTokenManager := qbclient.NewTokenManager(cfg, credentialRepo)
	qbClient := qbclient.NewClient(cfg, qbTokenManager, qbGate)
	accountingIntegrator := quickbooks.New(cfg, qbClient)

	pipedriveClient := pipedriveclient.NewPipedriveClient(cfg, credentialRepo)
	crmIntegrator := pipedrive.New(cfg, pipedriveClient)

	calculator := forecasting.NewCalculator()
	forecastService := forecasting.NewService(cfg, accountingIntegrator, crmIntegrator, calculator, archiveRepo)
	detailService := forecasting.NewDetailService(cfg, forecastService, cacheRepo)
	exceptionsFinder := exceptions.NewFinder(accountingIntegrator, crmIntegrator)
	archivingService := archiving.NewService(cfg, forecastService, exceptionsFinder, accountingIntegrator, archiveRepo, settingsRepo)

	archiveSyncService := scheduler.NewArchiveSyncService(cfg, archivingService)
	cacheSweepService := scheduler.NewCacheSweepService(cfg, cacheRepo)

	if err := archiveSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("failed to start archive sync scheduler")
	}

	if err := cacheSweepService.Start(ctx); err != nil {
		logrus.WithError(err).Error("failed to start cache sweep scheduler")
	}

	server, err := api.New(
		cfg,
		forecastService,
		detailService,
		exceptionsFinder,
		accountingIntegrator,
		crmIntegrator,
		settingsRepo,
		authenticator,
		archiveSyncService,
		cacheSweepService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("failed to ping PostgreSQL")
	}

	logrus.Info("PostgreSQL connection established")
	return conn
}
