package accessibility

import (
	"sync"
	"time"

	"github.com/Veraticus/paysnap/internal/model"
)

// DefaultCooldown is the minimum interval between two successful detections.
const DefaultCooldown = 3 * time.Second

// CooldownState records the last successful detection. One instance is shared
// by every source app.
type CooldownState struct {
	last time.Time
	mu   sync.RWMutex
}

// NewCooldownState returns a state with no detection recorded.
func NewCooldownState() *CooldownState {
	return &CooldownState{}
}

// Stamp records a successful detection at t.
func (c *CooldownState) Stamp(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = t
}

// LastDetection returns the time of the last successful detection, or the
// zero time if none happened yet.
func (c *CooldownState) LastDetection() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last
}

// Active reports whether now is still within interval of the last detection.
func (c *CooldownState) Active(now time.Time, interval time.Duration) bool {
	last := c.LastDetection()
	if last.IsZero() {
		return false
	}
	return now.Sub(last) < interval
}

// Filter decides whether an event may start extraction. It never mutates the
// cooldown; stamping is left to whoever completes a detection.
type Filter struct {
	cooldown *CooldownState
	now      func() time.Time
	interval time.Duration
}

// NewFilter creates a filter reading the given cooldown state.
func NewFilter(cooldown *CooldownState, interval time.Duration, now func() time.Time) *Filter {
	if cooldown == nil {
		cooldown = NewCooldownState()
	}
	if now == nil {
		now = time.Now
	}
	return &Filter{
		cooldown: cooldown,
		interval: interval,
		now:      now,
	}
}

// Accept resolves the source app of an eligible event. The boolean is false
// when the event has to be ignored.
func (f *Filter) Accept(ev Event) (model.SourceApp, bool) {
	if ev.Kind != WindowStateChanged && ev.Kind != WindowContentChanged {
		return model.SourceUnknown, false
	}

	app := model.SourceAppFromPackage(ev.PackageID)
	if app == model.SourceUnknown {
		return model.SourceUnknown, false
	}

	if f.cooldown.Active(f.now(), f.interval) {
		return model.SourceUnknown, false
	}

	return app, true
}

// Cooldown exposes the shared state so the pipeline can stamp it.
func (f *Filter) Cooldown() *CooldownState {
	return f.cooldown
}
