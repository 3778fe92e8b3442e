// Package engine wires the detection stages into a single per-event pipeline.
package engine

import (
	"math"
	"strconv"
	"time"

	"github.com/Veraticus/paysnap/internal/accessibility"
	"github.com/Veraticus/paysnap/internal/common"
	"github.com/Veraticus/paysnap/internal/model"
	"github.com/Veraticus/paysnap/internal/pattern"
)

// Pipeline runs Filter, amount matching, merchant extraction and
// classification for one event at a time. Events are expected to arrive
// sequentially.
type Pipeline struct {
	filter     *accessibility.Filter
	cooldown   *accessibility.CooldownState
	matcher    pattern.AmountMatcher
	merchants  pattern.MerchantExtractor
	classifier CategoryPredictor
	sessions   SessionStarter
	now        func() time.Time
	limits     accessibility.Limits
}

// Config holds the tunables of the pipeline.
type Config struct {
	Limits   accessibility.Limits
	Cooldown time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Cooldown: accessibility.DefaultCooldown,
		Limits: accessibility.Limits{
			MaxDepth: accessibility.DefaultMaxDepth,
			MaxNodes: accessibility.DefaultMaxNodes,
		},
	}
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock replaces the time source used for cooldown checks and stamps.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithCooldownState shares an existing cooldown state.
func WithCooldownState(state *accessibility.CooldownState) Option {
	return func(p *Pipeline) {
		if state != nil {
			p.cooldown = state
		}
	}
}

// New creates a pipeline. sessions may be nil, in which case detections are
// only returned.
func New(matcher pattern.AmountMatcher, merchants pattern.MerchantExtractor, classifier CategoryPredictor, sessions SessionStarter, config Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		matcher:    matcher,
		merchants:  merchants,
		classifier: classifier,
		sessions:   sessions,
		limits:     config.Limits,
		now:        time.Now,
		cooldown:   accessibility.NewCooldownState(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.filter = accessibility.NewFilter(p.cooldown, config.Cooldown, p.now)
	return p
}

// Cooldown returns the state stamped by successful detections.
func (p *Pipeline) Cooldown() *accessibility.CooldownState {
	return p.cooldown
}

// OnEvent processes a single event. It returns false when the event did not
// produce a detection; in that case nothing was stamped or started.
func (p *Pipeline) OnEvent(ev accessibility.Event) (model.DetectedPayment, bool) {
	app, ok := p.filter.Accept(ev)
	if !ok {
		return model.DetectedPayment{}, false
	}

	snap := accessibility.TakeSnapshot(ev.Root, p.limits)

	amount, ok := p.matcher.ExtractAmount(snap.Text(), app)
	if !ok {
		return model.DetectedPayment{}, false
	}
	if !validAmount(amount) {
		common.LogDebug("Ignoring malformed amount", common.Fields{"amount": amount, "app": app.String()})
		return model.DetectedPayment{}, false
	}

	merchant := p.merchants.ExtractMerchant(snap)
	category := p.classifier.Classify(merchant)

	now := p.now()
	payment := model.DetectedPayment{
		AmountText:            amount,
		Merchant:              merchant,
		Channel:               app.Channel(),
		Source:                app,
		DetectedAtEpochMillis: now.UnixMilli(),
	}
	p.cooldown.Stamp(now)

	common.LogInfo("Payment detected", common.Fields{
		"app":       app.String(),
		"amount":    amount,
		"merchant":  merchant,
		"category":  category,
		"truncated": snap.Truncated,
	})

	if p.sessions != nil {
		if _, err := p.sessions.Begin(payment); err != nil {
			common.LogError(err, "Failed to start capture session", common.Fields{"merchant": merchant})
		}
	}

	return payment, true
}

func validAmount(text string) bool {
	v, err := strconv.ParseFloat(text, 64)
	return err == nil && v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
