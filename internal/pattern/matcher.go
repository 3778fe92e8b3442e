package pattern

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Veraticus/paysnap/internal/common"
	"github.com/Veraticus/paysnap/internal/model"
)

// groupedDigits is the only comma layout accepted in an integer part.
var groupedDigits = regexp.MustCompile(`^[0-9]{1,3}(?:,[0-9]{3})+$`)

// MatcherImpl implements AmountMatcher over a fixed rule table.
type MatcherImpl struct {
	compiledRegex map[model.SourceApp]*regexp.Regexp
	rules         map[model.SourceApp]AmountRule
}

// NewMatcher creates a matcher with the given rules. A later rule for the same
// app replaces an earlier one.
func NewMatcher(rules []AmountRule) (*MatcherImpl, error) {
	m := &MatcherImpl{
		rules:         make(map[model.SourceApp]AmountRule, len(rules)),
		compiledRegex: make(map[model.SourceApp]*regexp.Regexp, len(rules)),
	}

	for _, rule := range rules {
		if rule.SuccessMarker == "" {
			return nil, fmt.Errorf("rule for %s has no success marker", rule.App)
		}
		re, err := common.CompileWithGroups(rule.AmountPattern, 1)
		if err != nil {
			return nil, fmt.Errorf("invalid amount pattern for %s: %w", rule.App, err)
		}
		m.rules[rule.App] = rule
		m.compiledRegex[rule.App] = re
	}

	return m, nil
}

// ExtractAmount checks the success marker on every call and then returns the
// first capture of the app's currency pattern with thousands separators
// removed. A capture whose commas are not thousands groups is no match.
func (m *MatcherImpl) ExtractAmount(text string, app model.SourceApp) (string, bool) {
	rule, ok := m.rules[app]
	if !ok {
		return "", false
	}

	if !strings.Contains(text, rule.SuccessMarker) {
		return "", false
	}

	raw, ok := common.FirstSubmatch(m.compiledRegex[app], text)
	if !ok {
		return "", false
	}
	return normalizeAmount(raw)
}

// normalizeAmount strips thousands separators. Trailing commas are sentence
// punctuation, not part of the number.
func normalizeAmount(raw string) (string, bool) {
	raw = strings.TrimRight(raw, ",")
	if !strings.Contains(raw, ",") {
		return raw, raw != ""
	}

	intPart, frac, hasFrac := strings.Cut(raw, ".")
	if !groupedDigits.MatchString(intPart) {
		return "", false
	}

	amount := strings.ReplaceAll(intPart, ",", "")
	if hasFrac {
		amount += "." + frac
	}
	return amount, true
}
