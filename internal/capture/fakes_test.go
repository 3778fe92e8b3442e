package capture

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Veraticus/paysnap/internal/model"
)

type shownCard struct {
	onConfirm func(Confirmation)
	onCancel  func()
	card      Card
	id        int
	dismissed bool
}

type fakeSurface struct {
	showErr  error
	cards    []*shownCard
	failures []error
	mu       sync.Mutex
}

func (f *fakeSurface) Show(card Card, onConfirm func(Confirmation), onCancel func()) (Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.showErr != nil {
		return nil, f.showErr
	}
	sc := &shownCard{card: card, onConfirm: onConfirm, onCancel: onCancel, id: len(f.cards)}
	f.cards = append(f.cards, sc)
	return sc.id, nil
}

func (f *fakeSurface) Dismiss(h Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cards[h.(int)].dismissed = true
}

func (f *fakeSurface) ReportSaveFailure(_ Card, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = append(f.failures, err)
}

func (f *fakeSurface) card(i int) *shownCard {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cards[i]
}

func (f *fakeSurface) failureCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.failures)
}

type fakeLedger struct {
	err     error
	records []model.ExpenseRecord
	mu      sync.Mutex
}

func (f *fakeLedger) Insert(_ context.Context, r model.ExpenseRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, r)
	return nil
}

func (f *fakeLedger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

type stubClassifier struct {
	category  string
	overrides map[string]string
	mu        sync.Mutex
}

func (s *stubClassifier) Classify(merchant string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.overrides[merchant]; ok {
		return c
	}
	return s.category
}

func (s *stubClassifier) Override(_ context.Context, merchant, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overrides == nil {
		s.overrides = make(map[string]string)
	}
	s.overrides[merchant] = category
	return nil
}

type fakeTimer struct {
	f       func()
	d       time.Duration
	stopped bool
	mu      sync.Mutex
}

func (t *fakeTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

// Fire runs the callback even when stopped, like a timer whose goroutine had
// already started when Stop was called.
func (t *fakeTimer) Fire() {
	t.f()
}

type fakeTimers struct {
	timers []*fakeTimer
	mu     sync.Mutex
}

func (ft *fakeTimers) AfterFunc(d time.Duration, f func()) Stopper {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	ft.timers = append(ft.timers, t)
	return t
}

func (ft *fakeTimers) last() *fakeTimer {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return ft.timers[len(ft.timers)-1]
}

var errBoom = errors.New("boom")

func testPayment() model.DetectedPayment {
	return model.DetectedPayment{
		AmountText:            "88.00",
		Merchant:              "星巴克咖啡",
		Channel:               model.SourceWeChat.Channel(),
		Source:                model.SourceWeChat,
		DetectedAtEpochMillis: time.Date(2024, 5, 1, 12, 30, 0, 0, time.Local).UnixMilli(),
	}
}
