package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/buckii/bi-forecast-sub000/infrastructure/database/postgres"
	"github.com/buckii/bi-forecast-sub000/internal/domain"
)

const (
	companySettingsTable = "company_settings cs"
	companySettingsCols  = "cs.company_id, cs.company_name, cs.journal_entry_accounts, cs.archive_retention_days, cs.created_at, cs.updated_at"
)

type CompanySettingsRepository interface {
	Get(ctx context.Context, companyID string) (*domain.CompanySettings, error)
	List(ctx context.Context) ([]*domain.CompanySettings, error)
	Save(ctx context.Context, settings *domain.CompanySettings) error
}

type companySettingsRepository struct {
	conn *postgres.Connection
}

func NewCompanySettingsRepository(conn *postgres.Connection) CompanySettingsRepository {
	return &companySettingsRepository{
		conn: conn,
	}
}

func (r *companySettingsRepository) Get(ctx context.Context, companyID string) (*domain.CompanySettings, error) {
	query, args, err := squirrel.
		Select(companySettingsCols).
		From(companySettingsTable).
		Where(squirrel.Eq{"cs.company_id": companyID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	row := r.conn.QueryRowContext(ctx, query, args...)
	settings, err := r.scanSettings(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan company settings: %w", err)
	}

	return settings, nil
}

// List returns settings for every configured company, used by the daily
// archive job to enumerate its work
func (r *companySettingsRepository) List(ctx context.Context) ([]*domain.CompanySettings, error) {
	query, args, err := squirrel.
		Select(companySettingsCols).
		From(companySettingsTable).
		OrderBy("cs.company_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	settingsList := make([]*domain.CompanySettings, 0)
	for rows.Next() {
		settings := &domain.CompanySettings{}
		var accountsJSON []byte

		err := rows.Scan(
			&settings.CompanyID,
			&settings.CompanyName,
			&accountsJSON,
			&settings.ArchiveRetentionDays,
			&settings.CreatedAt,
			&settings.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company settings: %w", err)
		}

		if accountsJSON != nil {
			if err := json.Unmarshal(accountsJSON, &settings.JournalEntryAccounts); err != nil {
				return nil, fmt.Errorf("failed to deserialize journal entry accounts: %w", err)
			}
		}

		settingsList = append(settingsList, settings)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed during row iteration: %w", err)
	}

	return settingsList, nil
}

func (r *companySettingsRepository) Save(ctx context.Context, settings *domain.CompanySettings) error {
	accountsJSON, err := json.Marshal(settings.JournalEntryAccounts)
	if err != nil {
		return fmt.Errorf("failed to serialize journal entry accounts: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert("company_settings").
		Columns("company_id", "company_name", "journal_entry_accounts", "archive_retention_days").
		Values(
			settings.CompanyID,
			settings.CompanyName,
			accountsJSON,
			settings.RetentionDays(),
		).
		Suffix(`
			ON CONFLICT (company_id) DO UPDATE SET
				company_name = EXCLUDED.company_name,
				journal_entry_accounts = EXCLUDED.journal_entry_accounts,
				archive_retention_days = EXCLUDED.archive_retention_days,
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

func (r *companySettingsRepository) scanSettings(row *sql.Row) (*domain.CompanySettings, error) {
	settings := &domain.CompanySettings{}
	var accountsJSON []byte

	err := row.Scan(
		&settings.CompanyID,
		&settings.CompanyName,
		&accountsJSON,
		&settings.ArchiveRetentionDays,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if accountsJSON != nil {
		if err := json.Unmarshal(accountsJSON, &settings.JournalEntryAccounts); err != nil {
			return nil, fmt.Errorf("failed to deserialize journal entry accounts: %w", err)
		}
	}

	return settings, nil
}
