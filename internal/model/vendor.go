package model

import "time"

// VendorSource indicates how a merchant mapping was created.
type VendorSource string

const (
	// SourceAuto indicates the mapping came from keyword classification.
	SourceAuto VendorSource = "AUTO"
	// SourceManual indicates the user corrected the category explicitly.
	SourceManual VendorSource = "MANUAL"
)

// Vendor represents a known merchant with a category the user has confirmed.
type Vendor struct {
	LastUpdated time.Time
	Name        string
	Category    string
	Source      VendorSource
	UseCount    int
}
