package engine

import (
	"github.com/Veraticus/paysnap/internal/capture"
	"github.com/Veraticus/paysnap/internal/model"
)

// CategoryPredictor predicts a category for a merchant.
type CategoryPredictor interface {
	Classify(merchant string) string
}

// SessionStarter receives every completed detection.
type SessionStarter interface {
	Begin(payment model.DetectedPayment) (*capture.Session, error)
}
