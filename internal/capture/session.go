package capture

import (
	"sync"

	"github.com/Veraticus/paysnap/internal/model"
)

// Session is the confirmation workflow wrapping one detected payment. It is
// created already Displayed and ends in exactly one terminal state.
type Session struct {
	ctrl      *Controller
	handle    Handle
	timer     Stopper
	done      chan struct{}
	card      Card
	state     State
	gen       uint64
	hasHandle bool
	mu        sync.Mutex
}

func newSession(ctrl *Controller, card Card) *Session {
	return &Session{
		ctrl:  ctrl,
		card:  card,
		state: StateDisplayed,
		done:  make(chan struct{}),
	}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Card returns the card currently shown for the session.
func (s *Session) Card() Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.card
}

// Payment returns the payment the session currently wraps.
func (s *Session) Payment() model.DetectedPayment {
	return s.Card().Payment
}

// Done is closed once the session reaches a terminal state.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Confirm confirms the card currently shown. It reports whether this call
// performed the terminal transition.
func (s *Session) Confirm(conf Confirmation) bool {
	return s.confirm(s.generation(), conf)
}

// Cancel dismisses the card currently shown without recording anything.
func (s *Session) Cancel() bool {
	return s.finish(s.generation(), StateCancelled)
}

func (s *Session) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// show renders the card of generation gen and arms its timeout.
func (s *Session) show(gen uint64) error {
	s.mu.Lock()
	card := s.card
	s.mu.Unlock()

	h, err := s.ctrl.surface.Show(card,
		func(conf Confirmation) { s.confirm(gen, conf) },
		func() { s.finish(gen, StateCancelled) },
	)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.state.Terminal() || s.gen != gen {
		// The user answered before Show returned.
		s.mu.Unlock()
		s.ctrl.surface.Dismiss(h)
		return nil
	}
	s.handle = h
	s.hasHandle = true
	s.timer = s.ctrl.afterFunc(s.ctrl.timeout, func() { s.finish(gen, StateTimedOut) })
	s.mu.Unlock()

	return nil
}

// refresh replaces the wrapped payment while the session is still Displayed.
// Callbacks and timers of the previous card become no-ops.
func (s *Session) refresh(card Card) (uint64, bool) {
	s.mu.Lock()
	if s.state.Terminal() {
		s.mu.Unlock()
		return 0, false
	}
	s.gen++
	gen := s.gen
	s.card = card
	old, hadHandle := s.release()
	s.mu.Unlock()

	if hadHandle {
		s.ctrl.surface.Dismiss(old)
	}
	return gen, true
}

// release disarms the timer and detaches the card handle. s.mu must be held.
func (s *Session) release() (Handle, bool) {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	h, ok := s.handle, s.hasHandle
	s.handle, s.hasHandle = nil, false
	return h, ok
}

// transition is the single check-and-set guarding the terminal states.
func (s *Session) transition(gen uint64, to State) (Card, bool) {
	s.mu.Lock()
	if s.state.Terminal() || s.gen != gen {
		s.mu.Unlock()
		return Card{}, false
	}
	s.state = to
	card := s.card
	h, hadHandle := s.release()
	close(s.done)
	s.mu.Unlock()

	if hadHandle {
		s.ctrl.surface.Dismiss(h)
	}
	return card, true
}

func (s *Session) finish(gen uint64, to State) bool {
	card, ok := s.transition(gen, to)
	if !ok {
		s.ctrl.logLoser(to)
		return false
	}
	s.ctrl.logOutcome(card, to)
	return true
}

func (s *Session) confirm(gen uint64, conf Confirmation) bool {
	card, ok := s.transition(gen, StateConfirmed)
	if !ok {
		s.ctrl.logLoser(StateConfirmed)
		return false
	}
	s.ctrl.logOutcome(card, StateConfirmed)
	s.ctrl.commit(card, conf)
	return true
}
