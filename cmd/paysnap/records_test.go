package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/paysnap/internal/model"
	"github.com/Veraticus/paysnap/internal/storage"
)

func TestParseRecordFilter(t *testing.T) {
	now := time.Date(2024, 5, 17, 15, 0, 0, 0, time.Local)

	tests := []struct {
		wantErr   error
		name      string
		wantStart time.Time
		wantEnd   time.Time
		args      []string
	}{
		{
			name:      "defaults to current month",
			wantStart: time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local),
			wantEnd:   model.MonthRange(now).End,
		},
		{
			name:      "from only runs until today",
			args:      []string{"--from", "2024-04-20"},
			wantStart: time.Date(2024, 4, 20, 0, 0, 0, 0, time.Local),
			wantEnd:   model.DayRange(now).End,
		},
		{
			name:      "to includes the whole last day",
			args:      []string{"--from", "2024-03-01", "--to", "2024-03-31"},
			wantStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local),
			wantEnd:   model.DayRange(time.Date(2024, 3, 31, 0, 0, 0, 0, time.Local)).End,
		},
		{
			name:    "inverted",
			args:    []string{"--from", "2024-03-31", "--to", "2024-03-01"},
			wantErr: storage.ErrInvalidDateRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := recordsCmd()
			require.NoError(t, cmd.ParseFlags(tt.args))

			f, err := parseRecordFilter(cmd, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.wantStart.Equal(f.Range.Start), "start %v", f.Range.Start)
			assert.True(t, tt.wantEnd.Equal(f.Range.End), "end %v", f.Range.End)
		})
	}
}

func TestParseRecordFilter_BadDate(t *testing.T) {
	cmd := recordsCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--from", "05/01/2024"}))

	_, err := parseRecordFilter(cmd, time.Now())
	assert.Error(t, err)
}

func TestRecordFilter_Apply(t *testing.T) {
	may := time.Date(2024, 5, 10, 0, 0, 0, 0, time.Local)
	records := []model.ExpenseRecord{
		{ID: "a", Category: model.CategoryFood, PayMethod: "微信支付", OccurredAt: may},
		{ID: "b", Category: model.CategoryFood, PayMethod: "支付宝", OccurredAt: may},
		{ID: "c", Category: model.CategoryFood, PayMethod: "微信支付", OccurredAt: may.AddDate(0, 1, 0)},
		{ID: "d", Category: model.CategoryShopping, PayMethod: "微信支付", OccurredAt: may},
	}

	f := recordFilter{Category: model.CategoryFood, PayMethod: "微信支付", Range: model.MonthRange(may)}
	got := f.apply(records)

	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestRootCommand_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range newRootCmd().Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"replay", "records", "vendors", "categories", "migrate", "config", "version"} {
		assert.True(t, names[want], want)
	}
}
