// Package testutil provides test helpers backed by a real in-memory ledger.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Veraticus/paysnap/internal/model"
	"github.com/Veraticus/paysnap/internal/storage"
)

// TestDB is a migrated in-memory database scoped to one test.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// TestDBOptions seeds the database before it is handed to the test.
type TestDBOptions struct {
	CustomSetup    func(context.Context, *storage.SQLiteStorage) error
	Records        []model.ExpenseRecord
	Vendors        []model.Vendor
	SkipMigrations bool
}

// SetupTestDB creates a new migrated in-memory database. Cleanup is registered
// on t.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	for _, r := range opts.Records {
		if err := store.Insert(ctx, r); err != nil {
			t.Fatalf("failed to seed record %q: %v", r.ID, err)
		}
	}
	for i := range opts.Vendors {
		if err := store.SaveVendor(ctx, &opts.Vendors[i]); err != nil {
			t.Fatalf("failed to seed vendor %q: %v", opts.Vendors[i].Name, err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// MustRecord returns the stored record or fails the test.
func (db *TestDB) MustRecord(id string) *model.ExpenseRecord {
	db.t.Helper()
	r, err := db.Storage.GetRecord(context.Background(), id)
	if err != nil {
		db.t.Fatalf("record %q: %v", id, err)
	}
	return r
}

// Expense builds a debit record for fixtures. The ID is derived from the
// merchant and time so fixtures stay deterministic.
func Expense(merchant, category string, amount float64, at time.Time) model.ExpenseRecord {
	return model.ExpenseRecord{
		ID:         fmt.Sprintf("%s-%d", merchant, at.UnixMilli()),
		Amount:     -amount,
		Category:   category,
		Merchant:   merchant,
		PayMethod:  model.SourceWeChat.Channel(),
		OccurredAt: at,
	}
}
