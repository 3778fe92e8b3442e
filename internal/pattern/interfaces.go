// Package pattern extracts transaction facts from the flattened text of a
// payment app's confirmation screen.
package pattern

import (
	"github.com/Veraticus/paysnap/internal/accessibility"
	"github.com/Veraticus/paysnap/internal/model"
)

// AmountMatcher finds the paid amount in snapshot text.
type AmountMatcher interface {
	// ExtractAmount returns the decimal text of the amount, or false when the
	// screen is not a payment success screen for app.
	ExtractAmount(text string, app model.SourceApp) (string, bool)
}

// MerchantExtractor finds the payee on a snapshot. It always returns a name.
type MerchantExtractor interface {
	ExtractMerchant(snap accessibility.Snapshot) string
}

// AmountRule describes how one source app renders a successful payment.
type AmountRule struct {
	SuccessMarker string
	AmountPattern string
	App           model.SourceApp
}
