package exceptions

import (
	"context"
	"time"

	"github.com/buckii/bi-forecast-sub000/infrastructure/integrator/pipedrive"
	"github.com/buckii/bi-forecast-sub000/infrastructure/integrator/quickbooks"
	"github.com/buckii/bi-forecast-sub000/internal/domain"
	"github.com/buckii/bi-forecast-sub000/pkg/log"
	"github.com/buckii/bi-forecast-sub000/pkg/utils"
)

const (
	staleChargeAgeDays    = 30
	chargeLookbackMonths  = 6
	wonDealLookbackMonths = 6
)

// Finder assembles the exceptions report: records that need a human. Each
// category is found independently and a category's failure yields an empty
// list for it, never a failed report.
type Finder interface {
	FindAll(ctx context.Context, companyID string) (*domain.ExceptionsReport, error)
	FindOverdueDeals(ctx context.Context, companyID string) ([]*domain.OverdueDeal, error)
	FindStaleDelayedCharges(ctx context.Context, companyID string) ([]*domain.StaleDelayedCharge, error)
	FindWonUnscheduled(ctx context.Context, companyID string) ([]*domain.Deal, error)
}

type finder struct {
	accounting quickbooks.QuickBooksIntegrator
	crm        pipedrive.PipedriveIntegrator
	now        func() time.Time
}

func NewFinder(accounting quickbooks.QuickBooksIntegrator, crm pipedrive.PipedriveIntegrator) Finder {
	return &finder{
		accounting: accounting,
		crm:        crm,
		now:        time.Now,
	}
}

func (f *finder) FindAll(ctx context.Context, companyID string) (*domain.ExceptionsReport, error) {
	report := &domain.ExceptionsReport{
		OverdueDeals:        make([]*domain.OverdueDeal, 0),
		StaleDelayedCharges: make([]*domain.StaleDelayedCharge, 0),
		WonUnscheduled:      make([]*domain.Deal, 0),
	}

	if overdue, err := f.FindOverdueDeals(ctx, companyID); err != nil {
		logCategoryFailure(ctx, companyID, "overdue_deals", err)
	} else {
		report.OverdueDeals = overdue
	}

	if stale, err := f.FindStaleDelayedCharges(ctx, companyID); err != nil {
		logCategoryFailure(ctx, companyID, "stale_delayed_charges", err)
	} else {
		report.StaleDelayedCharges = stale
	}

	if unscheduled, err := f.FindWonUnscheduled(ctx, companyID); err != nil {
		logCategoryFailure(ctx, companyID, "won_unscheduled", err)
	} else {
		report.WonUnscheduled = unscheduled
	}

	return report, nil
}

// FindOverdueDeals returns open deals expected to close strictly before today
func (f *finder) FindOverdueDeals(ctx context.Context, companyID string) ([]*domain.OverdueDeal, error) {
	deals, err := f.crm.FetchOpenDeals(ctx, companyID)
	if err != nil {
		return nil, err
	}

	today := utils.DayStart(f.now())

	overdue := make([]*domain.OverdueDeal, 0)
	for _, deal := range deals {
		if deal.ExpectedCloseDate == nil {
			continue
		}

		closeDay := utils.DayStart(*deal.ExpectedCloseDate)
		if !closeDay.Before(today) {
			continue
		}

		overdue = append(overdue, &domain.OverdueDeal{
			Deal:        deal,
			DaysOverdue: utils.DaysBetween(closeDay, today),
		})
	}

	return overdue, nil
}

// FindStaleDelayedCharges returns unbilled charges older than 30 days within
// a six-month lookback window
func (f *finder) FindStaleDelayedCharges(ctx context.Context, companyID string) ([]*domain.StaleDelayedCharge, error) {
	today := utils.DayStart(f.now())
	lookbackStart := utils.AddMonths(utils.MonthStart(today), -chargeLookbackMonths)

	charges, err := f.accounting.FetchDelayedCharges(ctx, companyID, lookbackStart, today)
	if err != nil {
		return nil, err
	}

	stale := make([]*domain.StaleDelayedCharge, 0)
	for _, charge := range charges {
		if charge.Billed {
			continue
		}

		ageDays := utils.DaysBetween(utils.DayStart(charge.TxnDate), today)
		if ageDays <= staleChargeAgeDays {
			continue
		}

		stale = append(stale, &domain.StaleDelayedCharge{
			Charge:  charge,
			AgeDays: ageDays,
		})
	}

	return stale, nil
}

// FindWonUnscheduled returns deals won within the last six months that still
// have no scheduled invoicing. Older unscheduled deals are excluded as
// presumed handled.
func (f *finder) FindWonUnscheduled(ctx context.Context, companyID string) ([]*domain.Deal, error) {
	deals, err := f.crm.FetchWonUnscheduledDeals(ctx, companyID)
	if err != nil {
		return nil, err
	}

	since := utils.AddMonths(utils.MonthStart(f.now()), -wonDealLookbackMonths)

	recent := make([]*domain.Deal, 0, len(deals))
	for _, deal := range deals {
		if deal.WonDate == nil || deal.WonDate.Before(since) {
			continue
		}
		recent = append(recent, deal)
	}

	return recent, nil
}

func logCategoryFailure(ctx context.Context, companyID, category string, err error) {
	log.L.WithContext(ctx).WithFields(log.Fields{
		"company_id": companyID,
		"category":   category,
	}).WithError(err).Warn("exceptions category failed, returning empty list")
}
