package accessibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/paysnap/internal/model"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func TestFilter_Accept(t *testing.T) {
	clock := &fakeClock{now: time.UnixMilli(1_700_000_000_000)}

	tests := []struct {
		name     string
		event    Event
		lastSeen time.Time
		wantApp  model.SourceApp
		wantOK   bool
	}{
		{
			name:    "wechat state change",
			event:   Event{Kind: WindowStateChanged, PackageID: model.WeChatPackage},
			wantApp: model.SourceWeChat,
			wantOK:  true,
		},
		{
			name:    "alipay content change",
			event:   Event{Kind: WindowContentChanged, PackageID: model.AlipayPackage},
			wantApp: model.SourceAlipay,
			wantOK:  true,
		},
		{
			name:  "unrecognized kind",
			event: Event{Kind: "view_clicked", PackageID: model.WeChatPackage},
		},
		{
			name:  "unrecognized package",
			event: Event{Kind: WindowStateChanged, PackageID: "com.example.bank"},
		},
		{
			name:     "within cooldown",
			event:    Event{Kind: WindowStateChanged, PackageID: model.AlipayPackage},
			lastSeen: clock.now.Add(-2999 * time.Millisecond),
		},
		{
			name:     "cooldown elapsed",
			event:    Event{Kind: WindowStateChanged, PackageID: model.AlipayPackage},
			lastSeen: clock.now.Add(-3000 * time.Millisecond),
			wantApp:  model.SourceAlipay,
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewCooldownState()
			if !tt.lastSeen.IsZero() {
				state.Stamp(tt.lastSeen)
			}
			f := NewFilter(state, DefaultCooldown, clock.Now)

			app, ok := f.Accept(tt.event)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantApp, app)
			assert.Equal(t, tt.lastSeen, state.LastDetection(), "filter must not stamp the cooldown")
		})
	}
}

func TestFilter_CooldownIsGlobalAcrossApps(t *testing.T) {
	clock := &fakeClock{now: time.UnixMilli(10_000)}
	state := NewCooldownState()
	f := NewFilter(state, DefaultCooldown, clock.Now)

	// A WeChat detection blocks Alipay as well.
	state.Stamp(clock.now)
	clock.now = clock.now.Add(time.Second)

	_, ok := f.Accept(Event{Kind: WindowStateChanged, PackageID: model.AlipayPackage})
	assert.False(t, ok)

	clock.now = clock.now.Add(2 * time.Second)
	app, ok := f.Accept(Event{Kind: WindowStateChanged, PackageID: model.AlipayPackage})
	assert.True(t, ok)
	assert.Equal(t, model.SourceAlipay, app)
}

func TestDecodeEvent(t *testing.T) {
	ev, err := DecodeEvent([]byte(`{"kind":"window_state_changed","package":"com.tencent.mm","root":{"text":"支付成功","children":[{"text":"¥1.00"}]}}`))
	assert.NoError(t, err)
	assert.Equal(t, WindowStateChanged, ev.Kind)
	assert.Equal(t, model.WeChatPackage, ev.PackageID)
	if assert.NotNil(t, ev.Root) {
		assert.Len(t, ev.Root.Children, 1)
	}

	_, err = DecodeEvent([]byte(`{not json`))
	assert.Error(t, err)
}
