package archiving

import (
	"context"
	"sync"
	"time"

	"github.com/buckii/bi-forecast-sub000/infrastructure/integrator/quickbooks"
	"github.com/buckii/bi-forecast-sub000/infrastructure/repository"
	"github.com/buckii/bi-forecast-sub000/internal/config"
	"github.com/buckii/bi-forecast-sub000/internal/domain"
	"github.com/buckii/bi-forecast-sub000/internal/usecases/exceptions"
	"github.com/buckii/bi-forecast-sub000/internal/usecases/forecasting"
	"github.com/buckii/bi-forecast-sub000/pkg/log"
	"github.com/buckii/bi-forecast-sub000/pkg/utils"
)

const receivablesLookbackMonths = 12

// CompanyResult records one company's outcome inside a full archive run
type CompanyResult struct {
	CompanyID string `json:"companyId"`
	Err       error  `json:"-"`
	Error     string `json:"error,omitempty"`
}

// Service produces and stores the daily snapshots that answer historical
// forecast requests
type Service interface {
	// ArchiveAll snapshots every configured company, isolating failures
	ArchiveAll(ctx context.Context) []CompanyResult

	// ArchiveCompany recomputes one company's full state, upserts today's
	// snapshot and prunes expired ones
	ArchiveCompany(ctx context.Context, settings *domain.CompanySettings) error

	// BuildSnapshot computes the snapshot without persisting it
	BuildSnapshot(ctx context.Context, companyID string) (*domain.ArchiveSnapshot, error)
}

type service struct {
	cfg          *config.Config
	forecast     forecasting.Service
	finder       exceptions.Finder
	accounting   quickbooks.QuickBooksIntegrator
	archiveRepo  repository.ArchiveSnapshotRepository
	settingsRepo repository.CompanySettingsRepository
	now          func() time.Time
}

func NewService(
	cfg *config.Config,
	forecast forecasting.Service,
	finder exceptions.Finder,
	accounting quickbooks.QuickBooksIntegrator,
	archiveRepo repository.ArchiveSnapshotRepository,
	settingsRepo repository.CompanySettingsRepository,
) Service {
	return &service{
		cfg:          cfg,
		forecast:     forecast,
		finder:       finder,
		accounting:   accounting,
		archiveRepo:  archiveRepo,
		settingsRepo: settingsRepo,
		now:          time.Now,
	}
}

func (s *service) ArchiveAll(ctx context.Context) []CompanyResult {
	companies, err := s.settingsRepo.List(ctx)
	if err != nil {
		log.L.WithContext(ctx).WithError(err).Error("listing companies for archive run")
		return nil
	}

	maxJobs := s.cfg.ArchiveSync.MaxConcurrentJobs
	if maxJobs < 1 {
		maxJobs = 1
	}

	results := make([]CompanyResult, len(companies))
	semaphore := make(chan struct{}, maxJobs)

	var wg sync.WaitGroup
	for i, company := range companies {
		wg.Add(1)
		go func(i int, company *domain.CompanySettings) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			result := CompanyResult{CompanyID: company.CompanyID}
			if err := s.ArchiveCompany(ctx, company); err != nil {
				result.Err = err
				result.Error = err.Error()

				log.L.WithContext(ctx).WithFields(log.Fields{
					"company_id": company.CompanyID,
				}).WithError(err).Error("company archive failed")
			}
			results[i] = result
		}(i, company)
	}
	wg.Wait()

	return results
}

func (s *service) ArchiveCompany(ctx context.Context, settings *domain.CompanySettings) error {
	snapshot, err := s.BuildSnapshot(ctx, settings.CompanyID)
	if err != nil {
		return err
	}

	if err := s.archiveRepo.UpsertToday(ctx, snapshot); err != nil {
		return err
	}

	pruned, err := s.archiveRepo.Prune(ctx, settings.CompanyID, settings.RetentionDays())
	if err != nil {
		return err
	}

	log.L.WithContext(ctx).WithFields(log.Fields{
		"company_id": settings.CompanyID,
		"months":     len(snapshot.Months),
		"pruned":     pruned,
	}).Info("company snapshot archived")

	return nil
}

func (s *service) BuildSnapshot(ctx context.Context, companyID string) (*domain.ArchiveSnapshot, error) {
	windowStart := utils.AddMonths(utils.MonthStart(s.now()), -s.cfg.Forecast.MonthsBack)
	monthCount := s.cfg.Forecast.MonthsBack + 1 + s.cfg.Forecast.MonthsForward

	months, sourceErrors, err := s.forecast.ComputeMonths(ctx, companyID, windowStart, monthCount)
	if err != nil {
		return nil, err
	}

	for _, sourceErr := range sourceErrors {
		log.L.WithContext(ctx).WithFields(log.Fields{
			"company_id": companyID,
			"source":     sourceErr.Source,
		}).Warn("snapshot built with a source missing")
	}

	report, err := s.finder.FindAll(ctx, companyID)
	if err != nil {
		return nil, err
	}

	balances, err := s.buildBalances(ctx, companyID)
	if err != nil {
		// balances are supplementary; the snapshot is still useful
		log.L.WithContext(ctx).WithFields(log.Fields{
			"company_id": companyID,
		}).WithError(err).Warn("snapshot balances unavailable")
		balances = &domain.BalanceSummary{}
	}

	return &domain.ArchiveSnapshot{
		CompanyID:  companyID,
		Months:     months,
		Exceptions: report,
		Balances:   balances,
	}, nil
}

func (s *service) buildBalances(ctx context.Context, companyID string) (*domain.BalanceSummary, error) {
	accounts, err := s.accounting.FetchAccounts(ctx, companyID, &domain.AccountFilter{
		Classifications: []string{"Asset", "Liability"},
	})
	if err != nil {
		return nil, err
	}

	balances := &domain.BalanceSummary{
		AssetAccounts:     make([]*domain.Account, 0),
		LiabilityAccounts: make([]*domain.Account, 0),
	}

	for _, account := range accounts {
		switch account.Classification {
		case "Asset":
			balances.AssetAccounts = append(balances.AssetAccounts, account)
		case "Liability":
			balances.LiabilityAccounts = append(balances.LiabilityAccounts, account)
		}
	}

	receivables, err := s.buildAgedReceivables(ctx, companyID)
	if err != nil {
		return nil, err
	}
	balances.AgedReceivables = *receivables

	return balances, nil
}

// buildAgedReceivables buckets open invoice balances by days past due
func (s *service) buildAgedReceivables(ctx context.Context, companyID string) (*domain.AgedReceivables, error) {
	today := utils.DayStart(s.now())
	lookbackStart := utils.AddMonths(utils.MonthStart(today), -receivablesLookbackMonths)

	invoices, err := s.accounting.FetchInvoices(ctx, companyID, lookbackStart, today)
	if err != nil {
		return nil, err
	}

	receivables := &domain.AgedReceivables{}
	for _, invoice := range invoices {
		if invoice.Balance <= 0 {
			continue
		}

		dueDate := invoice.TxnDate
		if invoice.DueDate != nil && !invoice.DueDate.IsZero() {
			dueDate = *invoice.DueDate
		}

		daysPastDue := utils.DaysBetween(utils.DayStart(dueDate), today)

		switch {
		case daysPastDue <= 0:
			receivables.Current += invoice.Balance
		case daysPastDue <= 30:
			receivables.Days1To30 += invoice.Balance
		case daysPastDue <= 60:
			receivables.Days31To60 += invoice.Balance
		case daysPastDue <= 90:
			receivables.Days61To90 += invoice.Balance
		default:
			receivables.Over90Days += invoice.Balance
		}

		receivables.TotalDue += invoice.Balance
	}

	return receivables, nil
}
