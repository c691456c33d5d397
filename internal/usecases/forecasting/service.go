package forecasting

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/buckii/bi-forecast-sub000/infrastructure/integrator/pipedrive"
	"github.com/buckii/bi-forecast-sub000/infrastructure/integrator/quickbooks"
	"github.com/buckii/bi-forecast-sub000/infrastructure/repository"
	"github.com/buckii/bi-forecast-sub000/internal/config"
	"github.com/buckii/bi-forecast-sub000/internal/domain"
	"github.com/buckii/bi-forecast-sub000/pkg/log"
	"github.com/buckii/bi-forecast-sub000/pkg/utils"
)

// Forecast is the month-by-month revenue projection for one company. When a
// source failed mid-computation the months still carry every other source's
// contribution and the failure is listed in DataSourceErrors.
type Forecast struct {
	CompanyID        string                   `json:"companyId"`
	Months           []*domain.RevenueMonth   `json:"months"`
	AsOf             *time.Time               `json:"asOf,omitempty"`
	FromArchive      bool                     `json:"fromArchive"`
	DataSourceErrors []domain.DataSourceError `json:"dataSourceErrors,omitempty"`
}

type Service interface {
	// GetForecast computes the live forecast window, or resolves a
	// point-in-time view when asOf is given
	GetForecast(ctx context.Context, companyID string, asOf *time.Time) (*Forecast, error)

	// ComputeMonths runs the calculator over a fresh dataset for an
	// arbitrary window; used by the archive job and the detail cache
	ComputeMonths(ctx context.Context, companyID string, windowStart time.Time, monthCount int) ([]*domain.RevenueMonth, []domain.DataSourceError, error)

	// FetchDataset pulls both sources concurrently for a window, folding
	// per-source failures into the returned error list
	FetchDataset(ctx context.Context, companyID string, start, end time.Time) (*Dataset, []domain.DataSourceError, error)
}

type service struct {
	cfg         *config.Config
	accounting  quickbooks.QuickBooksIntegrator
	crm         pipedrive.PipedriveIntegrator
	calculator  *Calculator
	archiveRepo repository.ArchiveSnapshotRepository
	now         func() time.Time
}

func NewService(
	cfg *config.Config,
	accounting quickbooks.QuickBooksIntegrator,
	crm pipedrive.PipedriveIntegrator,
	calculator *Calculator,
	archiveRepo repository.ArchiveSnapshotRepository,
) Service {
	return &service{
		cfg:         cfg,
		accounting:  accounting,
		crm:         crm,
		calculator:  calculator,
		archiveRepo: archiveRepo,
		now:         time.Now,
	}
}

func (s *service) GetForecast(ctx context.Context, companyID string, asOf *time.Time) (*Forecast, error) {
	if asOf != nil {
		return s.forecastAsOf(ctx, companyID, *asOf)
	}

	windowStart := utils.AddMonths(utils.MonthStart(s.now()), -s.cfg.Forecast.MonthsBack)
	monthCount := s.cfg.Forecast.MonthsBack + 1 + s.cfg.Forecast.MonthsForward

	months, sourceErrors, err := s.ComputeMonths(ctx, companyID, windowStart, monthCount)
	if err != nil {
		return nil, err
	}

	return &Forecast{
		CompanyID:        companyID,
		Months:           months,
		DataSourceErrors: sourceErrors,
	}, nil
}

// forecastAsOf answers a historical request from the archive when a snapshot
// exists at or before the date, otherwise recomputes live with the dataset
// truncated to records dated at or before it
func (s *service) forecastAsOf(ctx context.Context, companyID string, asOf time.Time) (*Forecast, error) {
	asOfDay := utils.DayStart(asOf)

	snapshot, err := s.archiveRepo.FindAsOf(ctx, companyID, asOfDay)
	if err != nil {
		return nil, err
	}

	if snapshot != nil {
		return &Forecast{
			CompanyID:   companyID,
			Months:      snapshot.Months,
			AsOf:        &snapshot.ArchiveDate,
			FromArchive: true,
		}, nil
	}

	log.L.WithContext(ctx).WithFields(log.Fields{
		"company_id": companyID,
		"as_of":      asOfDay.Format("2006-01-02"),
	}).Info("no archive snapshot at or before date, recomputing")

	windowStart := utils.AddMonths(utils.MonthStart(asOfDay), -s.cfg.Forecast.MonthsBack)
	monthCount := s.cfg.Forecast.MonthsBack + 1 + s.cfg.Forecast.MonthsForward

	fetchStart := utils.AddMonths(windowStart, -1)
	fetchEnd := utils.AddMonths(windowStart, monthCount)

	data, sourceErrors, err := s.FetchDataset(ctx, companyID, fetchStart, fetchEnd)
	if err != nil {
		return nil, err
	}

	truncateDataset(data, asOfDay)

	calculator := NewCalculatorAt(func() time.Time { return asOfDay })
	months := make([]*domain.RevenueMonth, 0, monthCount)
	for offset := 0; offset < monthCount; offset++ {
		months = append(months, calculator.CalculateMonth(ctx, companyID, data, utils.AddMonths(windowStart, offset)))
	}

	return &Forecast{
		CompanyID:        companyID,
		Months:           months,
		AsOf:             &asOfDay,
		DataSourceErrors: sourceErrors,
	}, nil
}

func (s *service) ComputeMonths(ctx context.Context, companyID string, windowStart time.Time, monthCount int) ([]*domain.RevenueMonth, []domain.DataSourceError, error) {
	windowStart = utils.MonthStart(windowStart)

	// one extra month behind the window feeds the recurring baseline
	fetchStart := utils.AddMonths(windowStart, -1)
	fetchEnd := utils.AddMonths(windowStart, monthCount)

	data, sourceErrors, err := s.FetchDataset(ctx, companyID, fetchStart, fetchEnd)
	if err != nil {
		return nil, nil, err
	}

	months := make([]*domain.RevenueMonth, 0, monthCount)
	for offset := 0; offset < monthCount; offset++ {
		months = append(months, s.calculator.CalculateMonth(ctx, companyID, data, utils.AddMonths(windowStart, offset)))
	}

	return months, sourceErrors, nil
}

// FetchDataset issues the accounting fetches in one sequential strand, so
// the client's rate gate can space its calls, and each CRM fetch in its own
// goroutine.
func (s *service) FetchDataset(ctx context.Context, companyID string, start, end time.Time) (*Dataset, []domain.DataSourceError, error) {
	data := &Dataset{}
	collector := newSourceErrorCollector()

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()

		var err error
		if data.Invoices, err = s.accounting.FetchInvoices(ctx, companyID, start, end); err != nil {
			collector.collect(ctx, err)
			data.Invoices = nil
		}
		if data.JournalEntries, err = s.accounting.FetchJournalEntries(ctx, companyID, start, end); err != nil {
			collector.collect(ctx, err)
			data.JournalEntries = nil
		}
		if data.DelayedCharges, err = s.accounting.FetchDelayedCharges(ctx, companyID, start, end); err != nil {
			collector.collect(ctx, err)
			data.DelayedCharges = nil
		}
	}()

	go func() {
		defer wg.Done()

		var err error
		if data.WonDeals, err = s.crm.FetchWonUnscheduledDeals(ctx, companyID); err != nil {
			collector.collect(ctx, err)
			data.WonDeals = nil
		}
	}()

	go func() {
		defer wg.Done()

		var err error
		if data.OpenDeals, err = s.crm.FetchOpenDeals(ctx, companyID); err != nil {
			collector.collect(ctx, err)
			data.OpenDeals = nil
		}
	}()

	wg.Wait()

	if err := collector.fatal(); err != nil {
		return nil, nil, err
	}

	return data, collector.errors(), nil
}

// truncateDataset drops every record dated after the as-of day so a
// recomputed historical view never sees later activity
func truncateDataset(data *Dataset, asOfDay time.Time) {
	invoices := data.Invoices[:0]
	for _, invoice := range data.Invoices {
		if !utils.DayStart(invoice.TxnDate).After(asOfDay) {
			invoices = append(invoices, invoice)
		}
	}
	data.Invoices = invoices

	entries := data.JournalEntries[:0]
	for _, entry := range data.JournalEntries {
		if !utils.DayStart(entry.TxnDate).After(asOfDay) {
			entries = append(entries, entry)
		}
	}
	data.JournalEntries = entries

	charges := data.DelayedCharges[:0]
	for _, charge := range data.DelayedCharges {
		if !utils.DayStart(charge.EffectiveDate()).After(asOfDay) {
			charges = append(charges, charge)
		}
	}
	data.DelayedCharges = charges

	wonDeals := data.WonDeals[:0]
	for _, deal := range data.WonDeals {
		if deal.WonDate == nil || !utils.DayStart(*deal.WonDate).After(asOfDay) {
			wonDeals = append(wonDeals, deal)
		}
	}
	data.WonDeals = wonDeals
}

// sourceErrorCollector folds transient per-source failures into a list while
// letting a missing credential abort the whole computation
type sourceErrorCollector struct {
	mu           sync.Mutex
	sourceErrors []domain.DataSourceError
	fatalErr     error
}

func newSourceErrorCollector() *sourceErrorCollector {
	return &sourceErrorCollector{}
}

func (c *sourceErrorCollector) collect(ctx context.Context, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if errors.Is(err, domain.ErrNotConnected) {
		if c.fatalErr == nil {
			c.fatalErr = err
		}
		return
	}

	if sourceErr, ok := domain.AsSourceError(err); ok {
		log.L.WithContext(ctx).WithFields(log.Fields{
			"source": sourceErr.Source,
		}).WithError(sourceErr.Err).Warn("data source unavailable, substituting empty result")

		c.sourceErrors = append(c.sourceErrors, domain.DataSourceError{
			Source:  sourceErr.Source,
			Message: sourceErr.Err.Error(),
		})
		return
	}

	if c.fatalErr == nil {
		c.fatalErr = err
	}
}

func (c *sourceErrorCollector) fatal() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fatalErr
}

func (c *sourceErrorCollector) errors() []domain.DataSourceError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sourceErrors
}
