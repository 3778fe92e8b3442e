package main

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/paysnap/internal/cli"
	"github.com/Veraticus/paysnap/internal/config"
	"github.com/Veraticus/paysnap/internal/model"
	"github.com/Veraticus/paysnap/internal/testutil"
)

const replayEvents = `# recorded on a test phone
{"kind":"window_state_changed","package":"com.tencent.mm","root":{"text":"","children":[{"text":"支付成功"},{"text":"¥88.00"},{"children":[{"text":"商户:"},{"text":"星巴克咖啡"}]}]}}
not json
{"kind":"window_content_changed","package":"com.android.settings","root":{"text":"支付成功 ¥1.00"}}

{"kind":"window_content_changed","package":"com.eg.android.AlipayGphone","root":{"children":[{"text":"支付成功"},{"text":"35.50元"},{"children":[{"text":"收款方"},{"text":"滴滴出行"}]}]}}
`

// lockedBuffer is written by surface callbacks while the test reads it.
type lockedBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func replayConfig() config.Config {
	cfg := config.Default()
	cfg.Capture.Cooldown = 0
	cfg.Capture.Timeout = 50 * time.Millisecond
	return cfg
}

func TestReplay_AutoConfirm(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	out := &lockedBuffer{}
	surface := newAutoSurface(cli.NewTerminalSurface(strings.NewReader(""), out), answerConfirm)

	stats, err := replay(ctx, replayConfig(), db.Storage, surface, strings.NewReader(replayEvents))
	require.NoError(t, err)

	assert.Equal(t, replayStats{Events: 4, Invalid: 1, Detected: 2, Confirmed: 2}, stats)

	records, err := db.Storage.GetRecordsByDateRange(ctx, model.DayRange(time.Now()))
	require.NoError(t, err)
	require.Len(t, records, 2)

	byMerchant := map[string]model.ExpenseRecord{}
	for _, r := range records {
		byMerchant[r.Merchant] = r
	}
	assert.InDelta(t, -88.0, byMerchant["星巴克咖啡"].Amount, 1e-9)
	assert.Equal(t, model.CategoryFood, byMerchant["星巴克咖啡"].Category)
	assert.Equal(t, "微信支付", byMerchant["星巴克咖啡"].PayMethod)
	assert.InDelta(t, -35.5, byMerchant["滴滴出行"].Amount, 1e-9)
	assert.Equal(t, model.CategoryTransport, byMerchant["滴滴出行"].Category)
	assert.Equal(t, "支付宝", byMerchant["滴滴出行"].PayMethod)

	assert.Contains(t, out.String(), "星巴克咖啡")
}

func TestReplay_NoRecordUnlessConfirmed(t *testing.T) {
	for _, answer := range []string{answerCancel, answerTimeout} {
		t.Run(answer, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			ctx := context.Background()
			surface := newAutoSurface(cli.NewTerminalSurface(strings.NewReader(""), &bytes.Buffer{}), answer)

			stats, err := replay(ctx, replayConfig(), db.Storage, surface, strings.NewReader(replayEvents))
			require.NoError(t, err)
			assert.Equal(t, 2, stats.Detected)
			assert.Zero(t, stats.Confirmed)

			records, err := db.Storage.GetRecordsByDateRange(ctx, model.DayRange(time.Now()))
			require.NoError(t, err)
			assert.Empty(t, records)
		})
	}
}

func TestReplay_CooldownSuppressesBurst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := replayConfig()
	cfg.Capture.Cooldown = time.Hour
	surface := newAutoSurface(cli.NewTerminalSurface(strings.NewReader(""), &bytes.Buffer{}), answerCancel)

	stats, err := replay(context.Background(), cfg, db.Storage, surface, strings.NewReader(replayEvents))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Detected)
}

func TestReplay_UsesStoredOverrides(t *testing.T) {
	db := testutil.SetupTestDBWithOptions(t, testutil.TestDBOptions{
		Vendors: []model.Vendor{{Name: "星巴克咖啡", Category: "应酬", Source: model.SourceManual}},
	})
	ctx := context.Background()
	surface := newAutoSurface(cli.NewTerminalSurface(strings.NewReader(""), &bytes.Buffer{}), answerConfirm)

	_, err := replay(ctx, replayConfig(), db.Storage, surface, strings.NewReader(replayEvents))
	require.NoError(t, err)

	records, err := db.Storage.GetRecordsByCategory(ctx, "应酬")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "星巴克咖啡", records[0].Merchant)
}

func TestReplayCmd_PromptNeedsFile(t *testing.T) {
	cmd := replayCmd()
	cmd.SetArgs([]string{})
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pass an events file")
}
