package domain

import "time"

// Service names used as credential keys
const (
	ServiceQuickBooks = "quickbooks"
	ServicePipedrive  = "pipedrive"
)

// ServiceCredential is the opaque token bundle stored per
// (company, external service)
type ServiceCredential struct {
	CompanyID    string    `json:"companyId"`
	Service      string    `json:"service"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	RealmID      string    `json:"realmId,omitempty"` // accounting-system tenant ID
	ExpiresAt    time.Time `json:"expiresAt"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Expired reports whether the access token is past (or within a minute of)
// its expiry
func (c ServiceCredential) Expired(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(time.Minute).Before(c.ExpiresAt)
}
