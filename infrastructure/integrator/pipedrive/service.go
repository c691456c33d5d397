package pipedrive

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	pipedriveDomain "github.com/buckii/bi-forecast-sub000/infrastructure/integrator/pipedrive/domain"
	"github.com/buckii/bi-forecast-sub000/infrastructure/integrator/pipedrive/pipedriveclient"
	"github.com/buckii/bi-forecast-sub000/internal/config"
	appDomain "github.com/buckii/bi-forecast-sub000/internal/domain"
	"github.com/buckii/bi-forecast-sub000/pkg/log"
	"github.com/buckii/bi-forecast-sub000/pkg/utils"
)

const (
	SourceDeals = "pipedrive.deals"

	statusOpen = "open"
	statusWon  = "won"

	wonTimeLayout = "2006-01-02 15:04:05"
)

// PipedriveIntegrator is the normalized CRM data surface. Every method
// returns deals in the application's shape, with custom-field values already
// resolved from the configured field keys.
type PipedriveIntegrator interface {
	FetchOpenDeals(ctx context.Context, companyID string) ([]*appDomain.Deal, error)
	FetchWonDeals(ctx context.Context, companyID string, start, end time.Time) ([]*appDomain.Deal, error)
	FetchWonUnscheduledDeals(ctx context.Context, companyID string) ([]*appDomain.Deal, error)
	FetchDealsTimeline(ctx context.Context, companyID string, start time.Time, months int) ([]*appDomain.Deal, error)
}

type service struct {
	cfg    *config.Config
	client pipedriveclient.Client
}

func New(cfg *config.Config, client pipedriveclient.Client) PipedriveIntegrator {
	return &service{
		cfg:    cfg,
		client: client,
	}
}

// FetchOpenDeals returns every open deal in the pipeline
func (s *service) FetchOpenDeals(ctx context.Context, companyID string) ([]*appDomain.Deal, error) {
	wireDeals, err := s.client.ListDeals(ctx, companyID, statusOpen)
	if err != nil {
		return nil, wrapSourceError(err)
	}

	return s.normalizeDeals(ctx, wireDeals), nil
}

// FetchWonDeals returns deals won within [start, end)
func (s *service) FetchWonDeals(ctx context.Context, companyID string, start, end time.Time) ([]*appDomain.Deal, error) {
	wireDeals, err := s.client.ListDeals(ctx, companyID, statusWon)
	if err != nil {
		return nil, wrapSourceError(err)
	}

	deals := make([]*appDomain.Deal, 0)
	for _, deal := range s.normalizeDeals(ctx, wireDeals) {
		if deal.WonDate == nil {
			continue
		}

		if !deal.WonDate.Before(start) && deal.WonDate.Before(end) {
			deals = append(deals, deal)
		}
	}

	return deals, nil
}

// FetchWonUnscheduledDeals returns every won deal whose invoices have not
// yet been scheduled in the accounting system, regardless of when it was won
func (s *service) FetchWonUnscheduledDeals(ctx context.Context, companyID string) ([]*appDomain.Deal, error) {
	wireDeals, err := s.client.ListDeals(ctx, companyID, statusWon)
	if err != nil {
		return nil, wrapSourceError(err)
	}

	deals := make([]*appDomain.Deal, 0)
	for _, deal := range s.normalizeDeals(ctx, wireDeals) {
		if deal.InvoicesScheduled {
			continue
		}

		deals = append(deals, deal)
	}

	return deals, nil
}

// FetchDealsTimeline returns open deals expected to close within the window
// [start, start+months)
func (s *service) FetchDealsTimeline(ctx context.Context, companyID string, start time.Time, months int) ([]*appDomain.Deal, error) {
	wireDeals, err := s.client.ListDeals(ctx, companyID, statusOpen)
	if err != nil {
		return nil, wrapSourceError(err)
	}

	windowStart := utils.MonthStart(start)
	windowEnd := utils.AddMonths(windowStart, months)

	deals := make([]*appDomain.Deal, 0)
	for _, deal := range s.normalizeDeals(ctx, wireDeals) {
		if deal.ExpectedCloseDate == nil {
			continue
		}

		if !deal.ExpectedCloseDate.Before(windowStart) && deal.ExpectedCloseDate.Before(windowEnd) {
			deals = append(deals, deal)
		}
	}

	return deals, nil
}

func (s *service) normalizeDeals(ctx context.Context, wireDeals []pipedriveDomain.Deal) []*appDomain.Deal {
	deals := make([]*appDomain.Deal, 0, len(wireDeals))
	for i := range wireDeals {
		deals = append(deals, s.normalizeDeal(ctx, &wireDeals[i]))
	}

	return deals
}

func (s *service) normalizeDeal(ctx context.Context, wireDeal *pipedriveDomain.Deal) *appDomain.Deal {
	deal := &appDomain.Deal{
		ID:               strconv.Itoa(wireDeal.ID),
		Title:            wireDeal.Title,
		CounterpartyName: counterpartyName(wireDeal),
		Value:            wireDeal.Value,
		Status:           wireDeal.Status,
	}

	if wireDeal.Probability != nil {
		deal.Probability = *wireDeal.Probability
	}

	if wireDeal.WeightedValue != nil {
		deal.WeightedValue = *wireDeal.WeightedValue
	} else {
		deal.WeightedValue = deal.Value * deal.Probability / 100
	}

	deal.ExpectedCloseDate = parseWireDate(ctx, wireDeal.ExpectedCloseDate, wireDeal.ID, "expected_close_date")
	deal.WonDate = parseWonTime(ctx, wireDeal.WonTime, wireDeal.ID)
	deal.ProjectStartDate = parseWireDate(ctx,
		wireDeal.CustomString(s.cfg.Pipedrive.ProjectStartFieldKey), wireDeal.ID, "project_start")

	deal.DurationMonths = parseDuration(ctx,
		wireDeal.CustomString(s.cfg.Pipedrive.DurationFieldKey), wireDeal.ID)
	deal.InvoicesScheduled = parseFlag(
		wireDeal.CustomString(s.cfg.Pipedrive.InvoicesScheduledField))

	return deal
}

func counterpartyName(wireDeal *pipedriveDomain.Deal) string {
	if wireDeal.OrgName != "" {
		return wireDeal.OrgName
	}
	return wireDeal.PersonName
}

func parseWireDate(ctx context.Context, value string, dealID int, field string) *time.Time {
	if value == "" {
		return nil
	}

	parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		log.L.WithContext(ctx).WithFields(log.Fields{
			"deal_id": dealID,
			"field":   field,
			"value":   value,
		}).Warn("pipedrive deal has a malformed date")
		return nil
	}

	return &parsed
}

func parseWonTime(ctx context.Context, value string, dealID int) *time.Time {
	if value == "" {
		return nil
	}

	parsed, err := time.ParseInLocation(wonTimeLayout, value, time.Local)
	if err != nil {
		// some exports carry a bare date instead of a timestamp
		return parseWireDate(ctx, value, dealID, "won_time")
	}

	return &parsed
}

func parseDuration(ctx context.Context, value string, dealID int) int {
	if value == "" {
		return 0
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.L.WithContext(ctx).WithFields(log.Fields{
			"deal_id": dealID,
			"value":   value,
		}).Warn("pipedrive deal has a malformed duration")
		return 0
	}

	return int(parsed)
}

func parseFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "1":
		return true
	}
	return false
}

func wrapSourceError(err error) error {
	if errors.Is(err, appDomain.ErrNotConnected) {
		return err
	}
	return appDomain.NewSourceError(SourceDeals, err)
}
