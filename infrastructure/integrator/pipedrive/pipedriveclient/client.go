package pipedriveclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	pipedriveDomain "github.com/buckii/bi-forecast-sub000/infrastructure/integrator/pipedrive/domain"
	"github.com/buckii/bi-forecast-sub000/infrastructure/repository"
	"github.com/buckii/bi-forecast-sub000/internal/config"
	appDomain "github.com/buckii/bi-forecast-sub000/internal/domain"
	"github.com/buckii/bi-forecast-sub000/pkg/log"
)

const dealsPageLimit = 500

type Client interface {
	ListDeals(ctx context.Context, companyID, status string) ([]pipedriveDomain.Deal, error)
}

type PipedriveClient struct {
	cfg            *config.Config
	credentialRepo repository.CredentialRepository
	httpClient     *http.Client
}

func NewPipedriveClient(cfg *config.Config, credentialRepo repository.CredentialRepository) *PipedriveClient {
	timeout := time.Duration(cfg.Pipedrive.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &PipedriveClient{
		cfg:            cfg,
		credentialRepo: credentialRepo,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListDeals fetches every deal with the given status, walking the
// pagination cursor until the collection is exhausted
func (c *PipedriveClient) ListDeals(ctx context.Context, companyID, status string) ([]pipedriveDomain.Deal, error) {
	credential, err := c.credentialRepo.Get(ctx, companyID, appDomain.ServicePipedrive)
	if err != nil {
		return nil, errors.Wrap(err, "loading pipedrive credential")
	}

	if credential == nil || credential.AccessToken == "" {
		return nil, appDomain.ErrNotConnected
	}

	deals := make([]pipedriveDomain.Deal, 0)
	start := 0

	for {
		page, err := c.listDealsPage(ctx, credential.AccessToken, status, start)
		if err != nil {
			return nil, err
		}

		deals = append(deals, page.Data...)

		if page.AdditionalData == nil || page.AdditionalData.Pagination == nil ||
			!page.AdditionalData.Pagination.MoreItemsInCollection {
			break
		}

		start = page.AdditionalData.Pagination.NextStart
	}

	log.L.WithContext(ctx).WithFields(log.Fields{
		"company_id": companyID,
		"status":     status,
		"total":      len(deals),
	}).Debug("pipedrive deals fetched")

	return deals, nil
}

func (c *PipedriveClient) listDealsPage(
	ctx context.Context,
	apiToken, status string,
	start int,
) (*pipedriveDomain.DealsResponse, error) {
	endpoint, err := url.Parse(fmt.Sprintf("%s/v1/deals", c.cfg.Pipedrive.BaseURL))
	if err != nil {
		return nil, errors.Wrap(err, "building pipedrive deals url")
	}

	query := endpoint.Query()
	query.Set("api_token", apiToken)
	query.Set("status", status)
	query.Set("start", strconv.Itoa(start))
	query.Set("limit", strconv.Itoa(dealsPageLimit))
	endpoint.RawQuery = query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "building pipedrive deals request")
	}

	request.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, errors.Wrap(err, "calling pipedrive deals")
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusUnauthorized {
		return nil, appDomain.ErrNotConnected
	}

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(response.Body)
		return nil, errors.Errorf("pipedrive deals returned status %d: %s", response.StatusCode, string(body))
	}

	dealsResponse := &pipedriveDomain.DealsResponse{}
	if err := json.NewDecoder(response.Body).Decode(dealsResponse); err != nil {
		return nil, errors.Wrap(err, "decoding pipedrive deals response")
	}

	if !dealsResponse.Success {
		return nil, errors.New("pipedrive deals request was not successful")
	}

	return dealsResponse, nil
}
