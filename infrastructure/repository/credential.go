package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/buckii/bi-forecast-sub000/infrastructure/database/postgres"
	"github.com/buckii/bi-forecast-sub000/internal/domain"
)

const (
	credentialsTable = "service_credentials c"
	credentialsCols  = "c.company_id, c.service, c.access_token, c.refresh_token, c.realm_id, c.expires_at, c.created_at, c.updated_at"
)

type CredentialRepository interface {
	Get(ctx context.Context, companyID, service string) (*domain.ServiceCredential, error)
	Save(ctx context.Context, credential *domain.ServiceCredential) error
	Delete(ctx context.Context, companyID, service string) error
}

type credentialRepository struct {
	conn *postgres.Connection
}

func NewCredentialRepository(conn *postgres.Connection) CredentialRepository {
	return &credentialRepository{
		conn: conn,
	}
}

// Get returns the stored token bundle, or nil when the company never
// connected the service
func (r *credentialRepository) Get(ctx context.Context, companyID, service string) (*domain.ServiceCredential, error) {
	query, args, err := squirrel.
		Select(credentialsCols).
		From(credentialsTable).
		Where(squirrel.Eq{"c.company_id": companyID, "c.service": service}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	credential := &domain.ServiceCredential{}
	row := r.conn.QueryRowContext(ctx, query, args...)
	err = row.Scan(
		&credential.CompanyID,
		&credential.Service,
		&credential.AccessToken,
		&credential.RefreshToken,
		&credential.RealmID,
		&credential.ExpiresAt,
		&credential.CreatedAt,
		&credential.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan credential: %w", err)
	}

	return credential, nil
}

func (r *credentialRepository) Save(ctx context.Context, credential *domain.ServiceCredential) error {
	query := squirrel.StatementBuilder.
		Insert("service_credentials").
		Columns("company_id", "service", "access_token", "refresh_token", "realm_id", "expires_at").
		Values(
			credential.CompanyID,
			credential.Service,
			credential.AccessToken,
			credential.RefreshToken,
			credential.RealmID,
			credential.ExpiresAt,
		).
		Suffix(`
			ON CONFLICT (company_id, service) DO UPDATE SET
				access_token = EXCLUDED.access_token,
				refresh_token = EXCLUDED.refresh_token,
				realm_id = EXCLUDED.realm_id,
				expires_at = EXCLUDED.expires_at,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

func (r *credentialRepository) Delete(ctx context.Context, companyID, service string) error {
	query, args, err := squirrel.
		Delete("service_credentials").
		Where(squirrel.Eq{"company_id": companyID, "service": service}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}
