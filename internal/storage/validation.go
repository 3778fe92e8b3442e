// Package storage provides the data persistence layer for captured records.
package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/paysnap/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidRecord    = errors.New("invalid record")
	ErrInvalidVendor    = errors.New("invalid vendor")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRecord validates a single ledger record.
func validateRecord(r *model.ExpenseRecord) error {
	if r == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidRecord)
	}
	if strings.TrimSpace(r.Category) == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidRecord)
	}
	if r.OccurredAt.IsZero() {
		return fmt.Errorf("%w: missing occurrence time", ErrInvalidRecord)
	}
	if math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) {
		return fmt.Errorf("%w: amount %v", ErrInvalidRecord, r.Amount)
	}
	return nil
}

// validateVendor validates a vendor override.
func validateVendor(v *model.Vendor) error {
	if v == nil {
		return fmt.Errorf("%w: vendor", ErrNilParameter)
	}
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidVendor)
	}
	if strings.TrimSpace(v.Category) == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidVendor)
	}
	return nil
}
