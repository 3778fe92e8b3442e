package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/paysnap/internal/accessibility"
	"github.com/Veraticus/paysnap/internal/capture"
	"github.com/Veraticus/paysnap/internal/classification"
	"github.com/Veraticus/paysnap/internal/common"
	"github.com/Veraticus/paysnap/internal/cli"
	"github.com/Veraticus/paysnap/internal/config"
	"github.com/Veraticus/paysnap/internal/engine"
	"github.com/Veraticus/paysnap/internal/pattern"
	"github.com/Veraticus/paysnap/internal/storage"
)

// Answer modes for replayed cards.
const (
	answerPrompt  = "prompt"
	answerConfirm = "confirm"
	answerCancel  = "cancel"
	answerTimeout = "timeout"
)

func replayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay [events-file]",
		Short: "Replay recorded accessibility events",
		Long: `Read JSON-lines accessibility events from a file (or stdin when the
file is omitted or "-") and run them through detection. Each detected
payment is shown as a confirmation card.

With --answer=prompt cards are answered on stdin, which therefore needs an
events file. The other answer modes settle every card automatically.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runReplay,
	}

	cmd.Flags().String("answer", answerPrompt, "how cards are answered (prompt, confirm, cancel, timeout)")

	return cmd
}

// replayStats summarizes a replay run.
type replayStats struct {
	Events    int
	Invalid   int
	Detected  int
	Confirmed int
}

func runReplay(cmd *cobra.Command, args []string) error {
	answer, _ := cmd.Flags().GetString("answer")

	fromStdin := len(args) == 0 || args[0] == "-"
	switch answer {
	case answerPrompt:
		if fromStdin {
			return errors.New("--answer=prompt reads answers from stdin; pass an events file")
		}
	case answerConfirm, answerCancel, answerTimeout:
	default:
		return fmt.Errorf("unknown answer mode %q", answer)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var events io.Reader = cmd.InOrStdin()
	if !fromStdin {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open events file: %w", err)
		}
		defer func() { _ = f.Close() }()
		events = f
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	out := cmd.OutOrStdout()
	var surface capture.Surface
	if answer == answerPrompt {
		terminal := cli.NewTerminalSurface(cmd.InOrStdin(), out)
		defer terminal.Close()
		surface = terminal
	} else {
		surface = newAutoSurface(cli.NewTerminalSurface(strings.NewReader(""), out), answer)
	}

	stats, err := replay(ctx, cfg, store, surface, events)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf(
		"%d events, %d invalid, %d detected, %d confirmed",
		stats.Events, stats.Invalid, stats.Detected, stats.Confirmed)))
	return nil
}

// replay drives the full capture stack over a JSON-lines event stream.
func replay(ctx context.Context, cfg config.Config, store *storage.SQLiteStorage, surface capture.Surface, events io.Reader) (replayStats, error) {
	var stats replayStats

	classifier := classification.NewDefault(classification.WithOverrideStore(store))
	if n, err := classifier.LoadOverrides(ctx); err != nil {
		return stats, fmt.Errorf("failed to load vendor overrides: %w", err)
	} else if n > 0 {
		common.LogDebug("Loaded vendor overrides", common.Fields{"count": n})
	}

	matcher, err := pattern.NewMatcher(pattern.DefaultAmountRules())
	if err != nil {
		return stats, err
	}

	queue := storage.NewWriteQueue(store, cfg.Database.QueueSize)
	defer func() { _ = queue.Close() }()

	controller := capture.NewController(surface, queue, classifier,
		capture.WithContext(ctx),
		capture.WithTimeout(cfg.Capture.Timeout),
		capture.WithTimestampLayout(cfg.Capture.TimestampLayout),
	)

	pipeline := engine.New(
		matcher,
		pattern.NewLabelExtractor(pattern.DefaultMerchantLabels()),
		classifier,
		controller,
		engine.Config{
			Cooldown: cfg.Capture.Cooldown,
			Limits: accessibility.Limits{
				MaxDepth: cfg.Capture.MaxDepth,
				MaxNodes: cfg.Capture.MaxNodes,
			},
		},
	)

	scanner := bufio.NewScanner(events)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		stats.Events++

		ev, err := accessibility.DecodeEvent([]byte(line))
		if err != nil {
			stats.Invalid++
			common.LogWarn("Skipping malformed event", common.Fields{"line": stats.Events, "error": err.Error()})
			continue
		}

		if _, ok := pipeline.OnEvent(ev); !ok {
			continue
		}
		stats.Detected++

		session, ok := controller.Active()
		if !ok {
			continue
		}
		select {
		case <-session.Done():
		case <-ctx.Done():
		}
		if session.State() == capture.StateConfirmed {
			stats.Confirmed++
		}
	}

	controller.Wait()
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read events: %w", err)
	}
	return stats, nil
}

// autoSurface renders cards through a terminal surface and settles them
// without user input.
type autoSurface struct {
	*cli.TerminalSurface
	answer string
}

func newAutoSurface(terminal *cli.TerminalSurface, answer string) *autoSurface {
	return &autoSurface{TerminalSurface: terminal, answer: answer}
}

func (s *autoSurface) Show(card capture.Card, onConfirm func(capture.Confirmation), onCancel func()) (capture.Handle, error) {
	h, err := s.TerminalSurface.Show(card, func(capture.Confirmation) {}, func() {})
	if err != nil {
		return nil, err
	}

	switch s.answer {
	case answerConfirm:
		go onConfirm(capture.Confirmation{})
	case answerCancel:
		go onCancel()
	}
	return h, nil
}
