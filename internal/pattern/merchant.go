package pattern

import (
	"strings"

	"github.com/Veraticus/paysnap/internal/accessibility"
	"github.com/Veraticus/paysnap/internal/model"
)

// LabelExtractor takes the first non-empty sibling of a merchant label node.
type LabelExtractor struct {
	labels map[string]struct{}
}

// NewLabelExtractor creates an extractor for the given label texts.
func NewLabelExtractor(labels []string) *LabelExtractor {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[strings.TrimSpace(l)] = struct{}{}
	}
	return &LabelExtractor{labels: set}
}

// ExtractMerchant scans fragments in traversal order. The first label with a
// non-empty sibling wins; otherwise model.UnknownMerchant is returned.
func (e *LabelExtractor) ExtractMerchant(snap accessibility.Snapshot) string {
	for i, f := range snap.Fragments {
		if _, ok := e.labels[strings.TrimSpace(f.Text)]; !ok {
			continue
		}

		for _, j := range snap.Siblings(i) {
			name := strings.TrimSpace(snap.Fragments[j].Text)
			if name != "" {
				return name
			}
		}
	}

	return model.UnknownMerchant
}
