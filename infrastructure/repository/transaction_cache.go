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
	transactionCacheTable = "transaction_cache tc"
	transactionCacheCols  = "tc.id, tc.company_id, tc.month_key, tc.as_of_date, tc.transactions, tc.clients, tc.updated_at"
)

type TransactionCacheRepository interface {
	Get(ctx context.Context, companyID, monthKey string, asOfDate time.Time) (*domain.CacheEntry, error)
	Put(ctx context.Context, entry *domain.CacheEntry) error
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type transactionCacheRepository struct {
	conn *postgres.Connection
}

func NewTransactionCacheRepository(conn *postgres.Connection) TransactionCacheRepository {
	return &transactionCacheRepository{
		conn: conn,
	}
}

func (r *transactionCacheRepository) Get(ctx context.Context, companyID, monthKey string, asOfDate time.Time) (*domain.CacheEntry, error) {
	query, args, err := squirrel.
		Select(transactionCacheCols).
		From(transactionCacheTable).
		Where(squirrel.Eq{
			"tc.company_id": companyID,
			"tc.month_key":  monthKey,
			"tc.as_of_date": asOfDate.Format("2006-01-02"),
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	row := r.conn.QueryRowContext(ctx, query, args...)
	entry, err := r.scanEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan cache entry: %w", err)
	}

	return entry, nil
}

// Put merges the entry's transaction component map into any existing entry
// for the same key and replaces the clients map wholesale. The component
// merge runs inside the upsert's conflict clause, so concurrent writers to
// the same key never lose each other's components.
func (r *transactionCacheRepository) Put(ctx context.Context, entry *domain.CacheEntry) error {
	if entry.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("failed to generate cache entry ID: %w", err)
		}
		entry.ID = id
	}

	sqlQuery, args, err := buildCacheEntryUpsert(entry)
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

// buildCacheEntryUpsert builds the insert whose conflict clause performs the
// component merge in the database. The JSONB || concatenation replaces
// component keys wholesale and keeps the stored keys the incoming map does
// not carry.
func buildCacheEntryUpsert(entry *domain.CacheEntry) (string, []interface{}, error) {
	transactionsJSON, err := json.Marshal(entry.Transactions)
	if err != nil {
		return "", nil, fmt.Errorf("failed to serialize cache transactions: %w", err)
	}

	clientsJSON, err := json.Marshal(entry.Clients)
	if err != nil {
		return "", nil, fmt.Errorf("failed to serialize cache clients: %w", err)
	}

	return squirrel.StatementBuilder.
		Insert("transaction_cache").
		Columns("id", "company_id", "month_key", "as_of_date", "transactions", "clients").
		Values(
			entry.ID,
			entry.CompanyID,
			entry.MonthKey,
			entry.AsOfDate.Format("2006-01-02"),
			transactionsJSON,
			clientsJSON,
		).
		Suffix(`
			ON CONFLICT (company_id, month_key, as_of_date) DO UPDATE SET
				transactions = transaction_cache.transactions || EXCLUDED.transactions,
				clients = EXCLUDED.clients,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// DeleteOlderThan evicts entries not updated in the given number of days.
// Used by the background sweep for single-month entries; range keys are
// additionally treated as read-stale after 24 hours by the cache service.
func (r *transactionCacheRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	query, args, err := squirrel.
		Delete("transaction_cache").
		Where(squirrel.Lt{"updated_at": cutoff}).
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

func (r *transactionCacheRepository) scanEntry(row *sql.Row) (*domain.CacheEntry, error) {
	entry := &domain.CacheEntry{}
	var transactionsJSON, clientsJSON []byte

	err := row.Scan(
		&entry.ID,
		&entry.CompanyID,
		&entry.MonthKey,
		&entry.AsOfDate,
		&transactionsJSON,
		&clientsJSON,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if transactionsJSON != nil {
		if err := json.Unmarshal(transactionsJSON, &entry.Transactions); err != nil {
			return nil, fmt.Errorf("failed to deserialize transactions JSON: %w", err)
		}
	}

	if clientsJSON != nil {
		if err := json.Unmarshal(clientsJSON, &entry.Clients); err != nil {
			return nil, fmt.Errorf("failed to deserialize clients JSON: %w", err)
		}
	}

	return entry, nil
}
