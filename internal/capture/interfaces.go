// Package capture owns the confirmation workflow that turns a detected payment
// into a ledger record or a discard.
package capture

import (
	"context"
	"time"

	"github.com/Veraticus/paysnap/internal/model"
)

// Card is what the confirmation surface renders.
type Card struct {
	Payment    model.DetectedPayment
	Category   string
	DetectedAt string
}

// Confirmation carries the user's edits at the moment of confirming. An empty
// Category keeps the predicted one.
type Confirmation struct {
	Category string
	Remark   string
}

// Handle identifies a rendered card. Its value is opaque to the controller.
type Handle any

// Surface renders confirmation cards. onConfirm and onCancel may be invoked
// from any goroutine, at most once each, and never after Dismiss returns.
type Surface interface {
	Show(card Card, onConfirm func(Confirmation), onCancel func()) (Handle, error)
	Dismiss(h Handle)
	ReportSaveFailure(card Card, err error)
}

// Ledger persists confirmed records.
type Ledger interface {
	Insert(ctx context.Context, record model.ExpenseRecord) error
}

// Classifier predicts and learns categories.
type Classifier interface {
	Classify(merchant string) string
	Override(ctx context.Context, merchant, category string) error
}

// Stopper cancels a pending timer. *time.Timer satisfies it.
type Stopper interface {
	Stop() bool
}

// AfterFunc arms a single-shot timer.
type AfterFunc func(d time.Duration, f func()) Stopper

func realAfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}
