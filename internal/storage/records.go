package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/Veraticus/paysnap/internal/common"
	"github.com/Veraticus/paysnap/internal/model"
)

const recordColumns = `id, amount, category, merchant, pay_method, occurred_at, remark`

// Insert persists a new record. It satisfies the capture ledger contract.
func (s *SQLiteStorage) Insert(ctx context.Context, record model.ExpenseRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(&record); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO expense_records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.Amount, record.Category, record.Merchant,
		record.PayMethod, record.OccurredAt.UTC(), record.Remark)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("record %s: %w", record.ID, common.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to insert record %s: %w", record.ID, err)
	}

	return nil
}

// UpdateRecord replaces every field of an existing record.
func (s *SQLiteStorage) UpdateRecord(ctx context.Context, record model.ExpenseRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(&record); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE expense_records
		SET amount = ?, category = ?, merchant = ?, pay_method = ?, occurred_at = ?, remark = ?
		WHERE id = ?
	`, record.Amount, record.Category, record.Merchant, record.PayMethod,
		record.OccurredAt.UTC(), record.Remark, record.ID)
	if err != nil {
		return fmt.Errorf("failed to update record %s: %w", record.ID, err)
	}

	return requireAffected(result, record.ID)
}

// DeleteRecord removes a record by ID.
func (s *SQLiteStorage) DeleteRecord(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM expense_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete record %s: %w", id, err)
	}

	return requireAffected(result, id)
}

// GetRecord retrieves a single record by ID.
func (s *SQLiteStorage) GetRecord(ctx context.Context, id string) (*model.ExpenseRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM expense_records WHERE id = ?`, id)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return record, nil
}

// GetRecordsByDateRange returns records inside r, newest first.
func (s *SQLiteStorage) GetRecordsByDateRange(ctx context.Context, r model.DateRange) ([]model.ExpenseRecord, error) {
	if err := validateRange(ctx, r); err != nil {
		return nil, err
	}
	return s.queryRecords(ctx, `
		SELECT `+recordColumns+` FROM expense_records
		WHERE occurred_at >= ? AND occurred_at <= ?
		ORDER BY occurred_at DESC
	`, r.Start.UTC(), r.End.UTC())
}

// GetRecordsByCategory returns records of one category, newest first.
func (s *SQLiteStorage) GetRecordsByCategory(ctx context.Context, category string) ([]model.ExpenseRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(category, "category"); err != nil {
		return nil, err
	}
	return s.queryRecords(ctx, `
		SELECT `+recordColumns+` FROM expense_records
		WHERE category = ?
		ORDER BY occurred_at DESC
	`, category)
}

// GetRecordsByPayMethod returns records paid through one channel, newest first.
func (s *SQLiteStorage) GetRecordsByPayMethod(ctx context.Context, payMethod string) ([]model.ExpenseRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(payMethod, "payMethod"); err != nil {
		return nil, err
	}
	return s.queryRecords(ctx, `
		SELECT `+recordColumns+` FROM expense_records
		WHERE pay_method = ?
		ORDER BY occurred_at DESC
	`, payMethod)
}

// GetTotalExpense sums the magnitude of every expense inside r. Income is
// excluded.
func (s *SQLiteStorage) GetTotalExpense(ctx context.Context, r model.DateRange) (float64, error) {
	if err := validateRange(ctx, r); err != nil {
		return 0, err
	}

	var total sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT SUM(-amount) FROM expense_records
		WHERE amount < 0 AND occurred_at >= ? AND occurred_at <= ?
	`, r.Start.UTC(), r.End.UTC()).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return total.Float64, nil
}

// GetCategoryTotals groups expenses inside r by category, largest first.
func (s *SQLiteStorage) GetCategoryTotals(ctx context.Context, r model.DateRange) ([]model.CategorySummary, error) {
	if err := validateRange(ctx, r); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*), SUM(-amount) AS total
		FROM expense_records
		WHERE amount < 0 AND occurred_at >= ? AND occurred_at <= ?
		GROUP BY category
		ORDER BY total DESC, category
	`, r.Start.UTC(), r.End.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query category totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []model.CategorySummary
	for rows.Next() {
		var summary model.CategorySummary
		if err := rows.Scan(&summary.Category, &summary.Count, &summary.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

func (s *SQLiteStorage) queryRecords(ctx context.Context, query string, args ...any) ([]model.ExpenseRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.ExpenseRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*model.ExpenseRecord, error) {
	var record model.ExpenseRecord
	err := row.Scan(
		&record.ID,
		&record.Amount,
		&record.Category,
		&record.Merchant,
		&record.PayMethod,
		&record.OccurredAt,
		&record.Remark,
	)
	if err != nil {
		return nil, err
	}
	// Stored in UTC so range comparisons stay lexically ordered.
	record.OccurredAt = record.OccurredAt.Local()
	return &record, nil
}

func validateRange(ctx context.Context, r model.DateRange) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if r.End.Before(r.Start) {
		return ErrInvalidDateRange
	}
	return nil
}

func requireAffected(result sql.Result, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("record %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
