package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/paysnap/internal/capture"
	"github.com/Veraticus/paysnap/internal/common"
)

const cardPrompt = "[Y] 确认  [N] 取消  [C <分类>] 修改分类  [R <备注>] 备注"

type inputKind int

const (
	inputUnknown inputKind = iota
	inputConfirm
	inputCancel
	inputCategory
	inputRemark
)

// parseInput maps a typed line to a card action. An empty line confirms.
func parseInput(line string) (inputKind, string) {
	line = strings.TrimSpace(line)
	head, arg, _ := strings.Cut(line, " ")
	if h, a, ok := strings.Cut(head, ":"); ok && arg == "" {
		head, arg = h, a
	}
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(head) {
	case "", "y", "yes", "确认":
		return inputConfirm, ""
	case "n", "no", "取消":
		return inputCancel, ""
	case "c", "category", "分类":
		if arg == "" {
			return inputUnknown, ""
		}
		return inputCategory, arg
	case "r", "remark", "备注":
		return inputRemark, arg
	default:
		return inputUnknown, ""
	}
}

type cardHandle struct {
	onConfirm func(capture.Confirmation)
	onCancel  func()
	conf      capture.Confirmation
	id        uint64
	closed    bool
}

// TerminalSurface renders confirmation cards on a terminal. A single
// dispatcher reads line input and routes it to the card currently shown.
type TerminalSurface struct {
	ctx     context.Context
	cancel  context.CancelFunc
	writer  io.Writer
	reader  *NonBlockingReader
	current *cardHandle
	once    sync.Once
	seq     atomic.Uint64
	mu      sync.Mutex
	outMu   sync.Mutex
}

// NewTerminalSurface creates a surface reading from in and writing to out.
func NewTerminalSurface(in io.Reader, out io.Writer) *TerminalSurface {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &TerminalSurface{
		ctx:    ctx,
		cancel: cancel,
		writer: out,
		reader: NewNonBlockingReader(in),
	}
}

// Show renders card and makes it the target of subsequent input.
func (s *TerminalSurface) Show(card capture.Card, onConfirm func(capture.Confirmation), onCancel func()) (capture.Handle, error) {
	if err := s.ctx.Err(); err != nil {
		return nil, fmt.Errorf("surface closed: %w", err)
	}

	h := &cardHandle{
		id:        s.seq.Add(1),
		onConfirm: onConfirm,
		onCancel:  onCancel,
	}

	if err := s.println(RenderCard(card) + "\n" + FormatPrompt(cardPrompt)); err != nil {
		return nil, fmt.Errorf("failed to render card: %w", err)
	}

	s.mu.Lock()
	s.current = h
	s.mu.Unlock()

	s.once.Do(func() { go s.dispatch() })
	return h, nil
}

func (s *TerminalSurface) dispatch() {
	for {
		line, err := s.reader.ReadLine(s.ctx)
		if err != nil {
			if !errors.Is(err, ErrInputCancelled) {
				// Input is gone; open cards are left to time out.
				common.LogDebug("Card input closed", common.Fields{"error": err.Error()})
			}
			return
		}
		s.handleLine(line)
	}
}

func (s *TerminalSurface) handleLine(line string) {
	kind, arg := parseInput(line)

	s.mu.Lock()
	h := s.current
	if h == nil {
		s.mu.Unlock()
		_ = s.println(SubtleStyle.Render("没有待确认的账单"))
		return
	}

	switch kind {
	case inputConfirm, inputCancel:
		h.closed = true
		s.current = nil
		conf := h.conf
		s.mu.Unlock()
		// Callbacks run unlocked; they call back into Dismiss.
		if kind == inputConfirm {
			h.onConfirm(conf)
		} else {
			h.onCancel()
		}
	case inputCategory:
		h.conf.Category = arg
		s.mu.Unlock()
		_ = s.println(FormatInfo("分类 → " + arg))
	case inputRemark:
		h.conf.Remark = arg
		s.mu.Unlock()
		_ = s.println(FormatInfo("备注 → " + arg))
	default:
		s.mu.Unlock()
		_ = s.println(FormatWarning("无法识别的输入: " + line))
	}
}

// Dismiss closes a card. No callback starts after it returns.
func (s *TerminalSurface) Dismiss(handle capture.Handle) {
	h, ok := handle.(*cardHandle)
	if !ok || h == nil {
		return
	}

	s.mu.Lock()
	if s.current == h {
		s.current = nil
	}
	unanswered := !h.closed
	h.closed = true
	s.mu.Unlock()

	if unanswered {
		_ = s.println(SubtleStyle.Render("卡片已关闭"))
	}
}

// Close stops reading input. Cards still open are left to their timers.
func (s *TerminalSurface) Close() {
	s.cancel()
}

// ReportSaveFailure prints a non-blocking notice for a record that was
// confirmed but not stored.
func (s *TerminalSurface) ReportSaveFailure(card capture.Card, err error) {
	msg := fmt.Sprintf("%s (%s ¥%s)", common.UserMessage(err), card.Payment.Merchant, card.Payment.AmountText)
	if werr := s.println(FormatError(msg)); werr != nil {
		common.LogWarn("Failed to report save failure", common.Fields{"error": werr.Error()})
	}
}

func (s *TerminalSurface) println(text string) error {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	_, err := fmt.Fprintln(s.writer, text)
	return err
}

// RenderCard formats a confirmation card.
func RenderCard(card capture.Card) string {
	p := card.Payment
	rows := []string{
		AmountStyle.Render("¥" + p.AmountText),
		fmt.Sprintf("商户  %s", p.Merchant),
		fmt.Sprintf("分类  %s", card.Category),
		fmt.Sprintf("渠道  %s", p.Channel),
		SubtleStyle.Render(card.DetectedAt),
	}
	return RenderBox(WalletIcon+" 记一笔", lipgloss.JoinVertical(lipgloss.Left, rows...))
}
