package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSourceAppFromPackage(t *testing.T) {
	tests := []struct {
		name    string
		pkg     string
		want    SourceApp
		channel string
	}{
		{name: "wechat", pkg: "com.tencent.mm", want: SourceWeChat, channel: "微信支付"},
		{name: "alipay", pkg: "com.eg.android.AlipayGphone", want: SourceAlipay, channel: "支付宝"},
		{name: "unrelated app", pkg: "com.example.notes", want: SourceUnknown, channel: "其他支付"},
		{name: "empty", pkg: "", want: SourceUnknown, channel: "其他支付"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SourceAppFromPackage(tt.pkg)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.channel, got.Channel())
		})
	}
}

func TestMonthRange(t *testing.T) {
	loc := time.UTC
	r := MonthRange(time.Date(2024, 2, 17, 13, 4, 0, 0, loc))

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, loc), r.Start)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, int(999*time.Millisecond), loc), r.End)
	assert.True(t, r.Contains(time.Date(2024, 2, 29, 12, 0, 0, 0, loc)))
	assert.False(t, r.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, loc)))
}

func TestDayRange(t *testing.T) {
	loc := time.UTC
	r := DayRange(time.Date(2024, 12, 31, 8, 0, 0, 0, loc))

	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, loc), r.Start)
	assert.True(t, r.Contains(time.Date(2024, 12, 31, 23, 59, 59, 0, loc)))
	assert.False(t, r.Contains(time.Date(2025, 1, 1, 0, 0, 0, 0, loc)))
}

func TestDetectedPayment_DetectedAt(t *testing.T) {
	p := DetectedPayment{DetectedAtEpochMillis: 1700000000123}
	assert.Equal(t, int64(1700000000123), p.DetectedAt().UnixMilli())
}
