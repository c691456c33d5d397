package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/buckii/bi-forecast-sub000/infrastructure/database/postgres"
	"github.com/buckii/bi-forecast-sub000/internal/domain"
	"github.com/buckii/bi-forecast-sub000/pkg/utils"
)

const (
	archiveSnapshotsTable = "archive_snapshots s"
	archiveSnapshotsCols  = "s.id, s.company_id, s.archive_date, s.months, s.exceptions, s.balances, s.created_at, s.updated_at"
)

type ArchiveSnapshotRepository interface {
	UpsertToday(ctx context.Context, snapshot *domain.ArchiveSnapshot) error
	FindAsOf(ctx context.Context, companyID string, date time.Time) (*domain.ArchiveSnapshot, error)
	Prune(ctx context.Context, companyID string, retentionDays int) (int64, error)
}

type archiveSnapshotRepository struct {
	conn *postgres.Connection
}

func NewArchiveSnapshotRepository(conn *postgres.Connection) ArchiveSnapshotRepository {
	return &archiveSnapshotRepository{
		conn: conn,
	}
}

// UpsertToday writes the snapshot keyed at local midnight of the current day.
// A second write on the same day replaces the day's snapshot; older days are
// never touched.
func (r *archiveSnapshotRepository) UpsertToday(ctx context.Context, snapshot *domain.ArchiveSnapshot) error {
	archiveDate := utils.DayStart(time.Now())
	snapshot.ArchiveDate = archiveDate

	monthsJSON, err := json.Marshal(snapshot.Months)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot months: %w", err)
	}

	exceptionsJSON, err := json.Marshal(snapshot.Exceptions)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot exceptions: %w", err)
	}

	balancesJSON, err := json.Marshal(snapshot.Balances)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot balances: %w", err)
	}

	if snapshot.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("failed to generate snapshot ID: %w", err)
		}
		snapshot.ID = id
	}

	query := squirrel.StatementBuilder.
		Insert("archive_snapshots").
		Columns("id", "company_id", "archive_date", "months", "exceptions", "balances").
		Values(
			snapshot.ID,
			snapshot.CompanyID,
			archiveDate.Format("2006-01-02"),
			monthsJSON,
			exceptionsJSON,
			balancesJSON,
		).
		Suffix(`
			ON CONFLICT (company_id, archive_date) DO UPDATE SET
				months = EXCLUDED.months,
				exceptions = EXCLUDED.exceptions,
				balances = EXCLUDED.balances,
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

// FindAsOf returns the most recent snapshot at or before the given date,
// never a future one
func (r *archiveSnapshotRepository) FindAsOf(ctx context.Context, companyID string, date time.Time) (*domain.ArchiveSnapshot, error) {
	query, args, err := squirrel.
		Select(archiveSnapshotsCols).
		From(archiveSnapshotsTable).
		Where(squirrel.Eq{"s.company_id": companyID}).
		Where(squirrel.LtOrEq{"s.archive_date": date.Format("2006-01-02")}).
		OrderBy("s.archive_date DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	row := r.conn.QueryRowContext(ctx, query, args...)
	snapshot, err := r.scanSnapshot(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan archive snapshot: %w", err)
	}

	return snapshot, nil
}

// Prune deletes snapshots older than the retention window for one company
func (r *archiveSnapshotRepository) Prune(ctx context.Context, companyID string, retentionDays int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -retentionDays).Format("2006-01-02")

	query, args, err := squirrel.
		Delete("archive_snapshots").
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.Lt{"archive_date": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rowsAffected, nil
}

func (r *archiveSnapshotRepository) scanSnapshot(row *sql.Row) (*domain.ArchiveSnapshot, error) {
	snapshot := &domain.ArchiveSnapshot{}
	var monthsJSON, exceptionsJSON, balancesJSON []byte

	err := row.Scan(
		&snapshot.ID,
		&snapshot.CompanyID,
		&snapshot.ArchiveDate,
		&monthsJSON,
		&exceptionsJSON,
		&balancesJSON,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if monthsJSON != nil {
		if err := json.Unmarshal(monthsJSON, &snapshot.Months); err != nil {
			return nil, fmt.Errorf("failed to deserialize months JSON: %w", err)
		}
	}

	if exceptionsJSON != nil {
		exceptions := &domain.ExceptionsReport{}
		if err := json.Unmarshal(exceptionsJSON, exceptions); err != nil {
			return nil, fmt.Errorf("failed to deserialize exceptions JSON: %w", err)
		}
		snapshot.Exceptions = exceptions
	}

	if balancesJSON != nil {
		balances := &domain.BalanceSummary{}
		if err := json.Unmarshal(balancesJSON, balances); err != nil {
			return nil, fmt.Errorf("failed to deserialize balances JSON: %w", err)
		}
		snapshot.Balances = balances
	}

	return snapshot, nil
}
