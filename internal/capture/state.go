package capture

import (
	"math"
	"strconv"

	"github.com/Veraticus/paysnap/internal/model"
)

// State is the lifecycle position of a session.
type State int32

// Session states. Every state but Displayed is terminal.
const (
	StateDisplayed State = iota
	StateConfirmed
	StateCancelled
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateDisplayed:
		return "displayed"
	case StateConfirmed:
		return "confirmed"
	case StateCancelled:
		return "cancelled"
	case StateTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s != StateDisplayed
}

// Sign is the direction a captured amount is booked in.
type Sign int

// Booking directions.
const (
	Debit Sign = iota
	Credit
)

// SignPolicy decides the sign of auto-captured records per source app. Apps
// missing from the policy are booked as debits.
type SignPolicy map[model.SourceApp]Sign

// DefaultSignPolicy books every supported payment app as an expense.
func DefaultSignPolicy() SignPolicy {
	return SignPolicy{
		model.SourceWeChat: Debit,
		model.SourceAlipay: Debit,
	}
}

// SignedAmount parses the detected amount text and applies the policy. The
// boolean is false when the text is not a finite non-negative decimal.
func (p SignPolicy) SignedAmount(payment model.DetectedPayment) (float64, bool) {
	v, err := strconv.ParseFloat(payment.AmountText, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v == 0 || p[payment.Source] == Credit {
		return v, true
	}
	return -v, true
}
