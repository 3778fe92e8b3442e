package model

import "time"

// UnknownMerchant is the merchant name used when no label/value pair is found.
const UnknownMerchant = "未知商户"

// DetectedPayment is a transaction candidate extracted from one eligible UI
// event. It is treated as immutable once created.
type DetectedPayment struct {
	AmountText            string
	Merchant              string
	Channel               string
	Source                SourceApp
	DetectedAtEpochMillis int64
}

// DetectedAt returns the detection time.
func (p DetectedPayment) DetectedAt() time.Time {
	return time.UnixMilli(p.DetectedAtEpochMillis)
}
