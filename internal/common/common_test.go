package common

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	base := errors.New("disk full")
	err := NewUserError("记账保存失败", base)

	assert.Equal(t, "记账保存失败: disk full", err.Error())
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "记账保存失败", UserMessage(err))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, SetupLogger(&buf, slog.LevelInfo, "json"))

	LogInfo("payment detected", Fields{"merchant": "星巴克"})
	LogDebug("hidden", nil)
	LogWarn("skipping event", Fields{"line": 3})

	assert.Contains(t, buf.String(), `"msg":"payment detected"`)
	assert.Contains(t, buf.String(), `"merchant":"星巴克"`)
	assert.Contains(t, buf.String(), `"level":"WARN","msg":"skipping event","line":3`)
	assert.NotContains(t, buf.String(), "hidden")

	assert.ErrorIs(t, SetupLogger(&buf, slog.LevelInfo, "xml"), ErrInvalidConfig)
}
