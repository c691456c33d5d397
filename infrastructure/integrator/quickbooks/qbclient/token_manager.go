package qbclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	qbdomain "github.com/buckii/bi-forecast-sub000/infrastructure/integrator/quickbooks/domain"
	"github.com/buckii/bi-forecast-sub000/infrastructure/repository"
	"github.com/buckii/bi-forecast-sub000/internal/config"
	"github.com/buckii/bi-forecast-sub000/internal/domain"
)

// TokenManager manages QuickBooks OAuth access tokens per company. Refresh
// is transparent to callers: they always receive a usable credential or a
// typed error.
type TokenManager struct {
	cfg            *config.Config
	credentialRepo repository.CredentialRepository
	refreshMutex   sync.Mutex
	httpClient     *http.Client
}

func NewTokenManager(cfg *config.Config, credentialRepo repository.CredentialRepository) *TokenManager {
	return &TokenManager{
		cfg:            cfg,
		credentialRepo: credentialRepo,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.QuickBooks.TimeoutSeconds) * time.Second,
		},
	}
}

// EnsureValidToken returns a non-expired credential for the company,
// refreshing the stored bundle when needed. Returns domain.ErrNotConnected
// when the company never connected QuickBooks at all.
func (tm *TokenManager) EnsureValidToken(ctx context.Context, companyID string) (*domain.ServiceCredential, error) {
	credential, err := tm.credentialRepo.Get(ctx, companyID, domain.ServiceQuickBooks)
	if err != nil {
		return nil, fmt.Errorf("failed to load QuickBooks credential: %w", err)
	}

	if credential == nil {
		return nil, domain.ErrNotConnected
	}

	if !credential.Expired(time.Now()) {
		return credential, nil
	}

	return tm.RefreshToken(ctx, companyID)
}

// RefreshToken exchanges the stored refresh token for a fresh access token
// and persists the updated bundle
func (tm *TokenManager) RefreshToken(ctx context.Context, companyID string) (*domain.ServiceCredential, error) {
	tm.refreshMutex.Lock()
	defer tm.refreshMutex.Unlock()

	// Another caller may have refreshed while we waited on the mutex
	credential, err := tm.credentialRepo.Get(ctx, companyID, domain.ServiceQuickBooks)
	if err != nil {
		return nil, fmt.Errorf("failed to load QuickBooks credential: %w", err)
	}

	if credential == nil {
		return nil, domain.ErrNotConnected
	}

	if !credential.Expired(time.Now()) {
		return credential, nil
	}

	logrus.WithFields(logrus.Fields{
		"company_id": companyID,
	}).Info("Refreshing QuickBooks access token")

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", credential.RefreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tm.cfg.QuickBooks.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.SetBasicAuth(tm.cfg.QuickBooks.ClientID, tm.cfg.QuickBooks.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := tm.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logrus.WithFields(logrus.Fields{
			"company_id":  companyID,
			"status_code": resp.StatusCode,
		}).Error("QuickBooks token refresh rejected")
		return nil, fmt.Errorf("token refresh rejected with status %d", resp.StatusCode)
	}

	tokenResponse := &qbdomain.TokenResponse{}
	if err := json.Unmarshal(body, tokenResponse); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	credential.AccessToken = tokenResponse.AccessToken
	if tokenResponse.RefreshToken != "" {
		credential.RefreshToken = tokenResponse.RefreshToken
	}
	credential.ExpiresAt = time.Now().Add(time.Duration(tokenResponse.ExpiresIn) * time.Second)

	if err := tm.credentialRepo.Save(ctx, credential); err != nil {
		return nil, fmt.Errorf("failed to persist refreshed credential: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"company_id": companyID,
		"expires_at": credential.ExpiresAt.Format(time.RFC3339),
	}).Info("QuickBooks access token refreshed")

	return credential, nil
}
