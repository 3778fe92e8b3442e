package capture

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/paysnap/internal/common"
	"github.com/Veraticus/paysnap/internal/model"
)

// Defaults for the confirmation card.
const (
	DefaultTimeout         = 10 * time.Second
	DefaultTimestampLayout = "2006-01-02 15:04"
)

// Controller runs capture sessions. At most one session is Displayed at any
// time.
type Controller struct {
	ctx        context.Context
	surface    Surface
	ledger     Ledger
	classifier Classifier
	afterFunc  AfterFunc
	newID      func() string
	active     *Session
	signs      SignPolicy
	layout     string
	timeout    time.Duration
	pending    sync.WaitGroup
	mu         sync.Mutex
}

// Option configures a Controller.
type Option func(*Controller)

// WithTimeout sets how long an unattended card stays up.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithAfterFunc replaces the timer implementation.
func WithAfterFunc(f AfterFunc) Option {
	return func(c *Controller) {
		if f != nil {
			c.afterFunc = f
		}
	}
}

// WithSignPolicy replaces the booking direction table.
func WithSignPolicy(p SignPolicy) Option {
	return func(c *Controller) {
		if p != nil {
			c.signs = p
		}
	}
}

// WithTimestampLayout sets the layout of the detection time on the card.
func WithTimestampLayout(layout string) Option {
	return func(c *Controller) {
		if layout != "" {
			c.layout = layout
		}
	}
}

// WithContext sets the context used for ledger writes and overrides.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// WithIDGenerator replaces the record ID generator.
func WithIDGenerator(f func() string) Option {
	return func(c *Controller) {
		if f != nil {
			c.newID = f
		}
	}
}

// NewController creates a controller rendering on surface and writing to ledger.
func NewController(surface Surface, ledger Ledger, classifier Classifier, opts ...Option) *Controller {
	c := &Controller{
		ctx:        context.Background(),
		surface:    surface,
		ledger:     ledger,
		classifier: classifier,
		afterFunc:  realAfterFunc,
		newID:      func() string { return uuid.New().String() },
		signs:      DefaultSignPolicy(),
		layout:     DefaultTimestampLayout,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Begin displays a card for payment. If a session is already Displayed its
// card is replaced and its timeout re-armed instead of opening a second one.
func (c *Controller) Begin(payment model.DetectedPayment) (*Session, error) {
	if c.surface == nil {
		return nil, common.ErrSurfaceUnavailable
	}

	card := Card{
		Payment:    payment,
		Category:   c.classifier.Classify(payment.Merchant),
		DetectedAt: payment.DetectedAt().Format(c.layout),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil {
		if gen, ok := c.active.refresh(card); ok {
			common.LogDebug("Refreshing displayed capture card", common.Fields{
				"merchant": payment.Merchant,
				"amount":   payment.AmountText,
			})
			if err := c.active.show(gen); err != nil {
				c.active.finish(gen, StateCancelled)
				return nil, fmt.Errorf("failed to refresh capture card: %w", err)
			}
			return c.active, nil
		}
	}

	s := newSession(c, card)
	c.active = s
	if err := s.show(0); err != nil {
		s.finish(0, StateCancelled)
		return nil, fmt.Errorf("failed to show capture card: %w", err)
	}
	return s, nil
}

// Active returns the Displayed session, if any.
func (c *Controller) Active() (*Session, bool) {
	c.mu.Lock()
	s := c.active
	c.mu.Unlock()

	if s == nil || s.State().Terminal() {
		return nil, false
	}
	return s, true
}

// Wait blocks until every issued ledger write has returned.
func (c *Controller) Wait() {
	c.pending.Wait()
}

// commit builds the record of a confirmed card and hands it to the ledger
// without blocking the caller.
func (c *Controller) commit(card Card, conf Confirmation) {
	payment := card.Payment

	category := card.Category
	if edited := strings.TrimSpace(conf.Category); edited != "" && edited != category {
		category = edited
		if err := c.classifier.Override(c.ctx, payment.Merchant, category); err != nil {
			common.LogError(err, "Failed to remember category correction", common.Fields{
				"merchant": payment.Merchant,
			})
		}
	}

	amount, ok := c.signs.SignedAmount(payment)
	if !ok {
		err := fmt.Errorf("unparseable amount %q", payment.AmountText)
		common.LogError(err, "Discarding confirmed capture", nil)
		c.surface.ReportSaveFailure(card, common.NewUserError("金额无法识别", err))
		return
	}

	record := model.ExpenseRecord{
		ID:         c.newID(),
		Amount:     amount,
		Category:   category,
		Merchant:   payment.Merchant,
		PayMethod:  payment.Channel,
		OccurredAt: payment.DetectedAt(),
		Remark:     conf.Remark,
	}

	if c.ledger == nil {
		c.surface.ReportSaveFailure(card, common.NewUserError("记账保存失败", common.ErrMissingConfig))
		return
	}

	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		if err := c.ledger.Insert(c.ctx, record); err != nil {
			common.LogError(err, "Failed to save captured record", common.Fields{
				"record_id": record.ID,
				"merchant":  record.Merchant,
			})
			c.surface.ReportSaveFailure(card, common.NewUserError("记账保存失败", err))
			return
		}
		common.LogInfo("Saved captured record", common.Fields{
			"record_id": record.ID,
			"amount":    record.Amount,
			"category":  record.Category,
		})
	}()
}

func (c *Controller) logOutcome(card Card, to State) {
	common.LogInfo("Capture session finished", common.Fields{
		"state":    to.String(),
		"merchant": card.Payment.Merchant,
		"amount":   card.Payment.AmountText,
	})
}

func (c *Controller) logLoser(attempted State) {
	common.LogDebug("Ignoring late capture action", common.Fields{"attempted": attempted.String()})
}
