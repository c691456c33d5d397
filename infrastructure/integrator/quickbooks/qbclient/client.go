package qbclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	qbdomain "github.com/buckii/bi-forecast-sub000/infrastructure/integrator/quickbooks/domain"
	"github.com/buckii/bi-forecast-sub000/internal/config"
	"github.com/buckii/bi-forecast-sub000/pkg/ratelimit"
)

type Client interface {
	QueryInvoices(ctx context.Context, companyID string, start, end time.Time) ([]qbdomain.Invoice, error)
	QueryJournalEntries(ctx context.Context, companyID string, start, end time.Time) ([]qbdomain.JournalEntry, error)
	QueryDelayedCharges(ctx context.Context, companyID string, start, end time.Time) ([]qbdomain.Charge, error)
	QueryAccounts(ctx context.Context, companyID string, classifications []string) ([]qbdomain.Account, error)
}

type QBClient struct {
	cfg          *config.Config
	tokenManager *TokenManager
	gate         *ratelimit.Gate
	httpClient   *http.Client
}

// NewClient creates a QuickBooks query client. The rate gate is shared by
// every call this client makes, keeping request spacing under the external
// API's limits regardless of which service triggers the fetch.
func NewClient(cfg *config.Config, tokenManager *TokenManager, gate *ratelimit.Gate) Client {
	return &QBClient{
		cfg:          cfg,
		tokenManager: tokenManager,
		gate:         gate,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.QuickBooks.TimeoutSeconds) * time.Second,
		},
	}
}

func (c *QBClient) QueryInvoices(ctx context.Context, companyID string, start, end time.Time) ([]qbdomain.Invoice, error) {
	query := fmt.Sprintf(
		"SELECT * FROM Invoice WHERE TxnDate >= '%s' AND TxnDate <= '%s' ORDERBY TxnDate",
		start.Format("2006-01-02"), end.Format("2006-01-02"),
	)

	response, err := c.runQuery(ctx, companyID, query)
	if err != nil {
		return nil, err
	}

	return response.QueryResponse.Invoice, nil
}

func (c *QBClient) QueryJournalEntries(ctx context.Context, companyID string, start, end time.Time) ([]qbdomain.JournalEntry, error) {
	query := fmt.Sprintf(
		"SELECT * FROM JournalEntry WHERE TxnDate >= '%s' AND TxnDate <= '%s' ORDERBY TxnDate",
		start.Format("2006-01-02"), end.Format("2006-01-02"),
	)

	response, err := c.runQuery(ctx, companyID, query)
	if err != nil {
		return nil, err
	}

	return response.QueryResponse.JournalEntry, nil
}

func (c *QBClient) QueryDelayedCharges(ctx context.Context, companyID string, start, end time.Time) ([]qbdomain.Charge, error) {
	query := fmt.Sprintf(
		"SELECT * FROM Charge WHERE TxnDate >= '%s' AND TxnDate <= '%s' ORDERBY TxnDate",
		start.Format("2006-01-02"), end.Format("2006-01-02"),
	)

	response, err := c.runQuery(ctx, companyID, query)
	if err != nil {
		return nil, err
	}

	return response.QueryResponse.DelayedCharge, nil
}

func (c *QBClient) QueryAccounts(ctx context.Context, companyID string, classifications []string) ([]qbdomain.Account, error) {
	query := "SELECT * FROM Account"
	if len(classifications) > 0 {
		quoted := make([]string, 0, len(classifications))
		for _, classification := range classifications {
			quoted = append(quoted, "'"+classification+"'")
		}
		query = fmt.Sprintf("SELECT * FROM Account WHERE Classification IN (%s)", strings.Join(quoted, ", "))
	}

	response, err := c.runQuery(ctx, companyID, query)
	if err != nil {
		return nil, err
	}

	return response.QueryResponse.Account, nil
}

// runQuery executes one QuickBooks query-language request, waiting on the
// rate gate first and retrying once after a forced token refresh on 401
func (c *QBClient) runQuery(ctx context.Context, companyID string, query string) (*qbdomain.QueryResponse, error) {
	credential, err := c.tokenManager.EnsureValidToken(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if err := c.gate.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate gate wait interrupted")
	}

	body, statusCode, err := c.doQuery(ctx, credential.RealmID, credential.AccessToken, query)
	if err != nil {
		return nil, err
	}

	if statusCode == http.StatusUnauthorized {
		// Token rejected despite passing the expiry check; refresh and retry once
		logrus.WithFields(logrus.Fields{
			"company_id": companyID,
		}).Warn("QuickBooks rejected access token, forcing refresh")

		credential, err = c.tokenManager.RefreshToken(ctx, companyID)
		if err != nil {
			return nil, err
		}

		if err := c.gate.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "rate gate wait interrupted")
		}

		body, statusCode, err = c.doQuery(ctx, credential.RealmID, credential.AccessToken, query)
		if err != nil {
			return nil, err
		}
	}

	if statusCode != http.StatusOK {
		return nil, errors.Errorf("QuickBooks query failed with status %d", statusCode)
	}

	response := &qbdomain.QueryResponse{}
	if err := json.Unmarshal(body, response); err != nil {
		return nil, errors.Wrap(err, "failed to decode QuickBooks query response")
	}

	if response.Fault != nil && len(response.Fault.Error) > 0 {
		faultErr := response.Fault.Error[0]
		return nil, errors.Errorf("QuickBooks fault %s: %s", faultErr.Code, faultErr.Message)
	}

	return response, nil
}

func (c *QBClient) doQuery(ctx context.Context, realmID, accessToken, query string) ([]byte, int, error) {
	endpoint := fmt.Sprintf(
		"%s/company/%s/query?query=%s&minorversion=%s",
		c.cfg.QuickBooks.BaseURL,
		realmID,
		url.QueryEscape(query),
		c.cfg.QuickBooks.MinorVersion,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to build QuickBooks request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, errors.Wrap(err, "QuickBooks request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to read QuickBooks response")
	}

	return body, resp.StatusCode, nil
}
