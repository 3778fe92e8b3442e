package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/paysnap/internal/common"
	"github.com/Veraticus/paysnap/internal/model"
)

// GetVendor retrieves a vendor override by merchant name.
func (s *SQLiteStorage) GetVendor(ctx context.Context, merchantName string) (*model.Vendor, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(merchantName, "merchantName"); err != nil {
		return nil, err
	}

	var vendor model.Vendor
	var source string
	err := s.db.QueryRowContext(ctx, `
		SELECT name, category, source, last_updated, use_count
		FROM vendors
		WHERE name = ?
	`, merchantName).Scan(
		&vendor.Name,
		&vendor.Category,
		&source,
		&vendor.LastUpdated,
		&vendor.UseCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}
	vendor.Source = model.VendorSource(source)

	return &vendor, nil
}

// SaveVendor inserts or replaces a vendor override. Categories are free-form
// so no existence check is made.
func (s *SQLiteStorage) SaveVendor(ctx context.Context, vendor *model.Vendor) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateVendor(vendor); err != nil {
		return err
	}

	if vendor.LastUpdated.IsZero() {
		vendor.LastUpdated = time.Now()
	}
	if vendor.Source == "" {
		vendor.Source = model.SourceManual
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vendors (name, category, source, last_updated, use_count)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			category = excluded.category,
			source = excluded.source,
			last_updated = excluded.last_updated,
			use_count = vendors.use_count + 1
	`, vendor.Name, vendor.Category, string(vendor.Source), vendor.LastUpdated, vendor.UseCount)
	if err != nil {
		return fmt.Errorf("failed to save vendor: %w", err)
	}

	return nil
}

// GetAllVendors retrieves every stored override ordered by name.
func (s *SQLiteStorage) GetAllVendors(ctx context.Context) ([]model.Vendor, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, category, source, last_updated, use_count
		FROM vendors
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var vendors []model.Vendor
	for rows.Next() {
		var vendor model.Vendor
		var source string
		if err := rows.Scan(
			&vendor.Name,
			&vendor.Category,
			&source,
			&vendor.LastUpdated,
			&vendor.UseCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		vendor.Source = model.VendorSource(source)
		vendors = append(vendors, vendor)
	}

	return vendors, rows.Err()
}

// DeleteVendor removes a vendor override.
func (s *SQLiteStorage) DeleteVendor(ctx context.Context, merchantName string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(merchantName, "merchantName"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM vendors WHERE name = ?`, merchantName)
	if err != nil {
		return fmt.Errorf("failed to delete vendor: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return common.ErrNotFound
	}

	return nil
}
