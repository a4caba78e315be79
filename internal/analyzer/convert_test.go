package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"notif-insights-go/internal/dataset"
	"notif-insights-go/internal/types"
)

func TestParseClickRate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"plain decimal", "12.5", 12.5},
		{"percent suffix", "12.5%", 12.5},
		{"percent with spaces", " 12.5 % ", 12.5},
		{"integer", "7", 7},
		{"zero", "0", 0},
		{"boundary hundred kept", "100", 100},
		{"mis-scaled rescued", "1250", 12.5},
		{"mis-scaled decimal", "100.5", 1.005},
		{"garbage", "abc", 0},
		{"empty", "", 0},
		{"negative", "-3", 0},
		{"bare percent", "%", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, parseClickRate(tt.in), 1e-9)
		})
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"plain", "1200", 1200},
		{"thousands separators", "1,234,567", 1234567},
		{"decimal truncated", "12.7", 12},
		{"garbage", "abc", 0},
		{"empty", "", 0},
		{"negative", "-5", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseCount(tt.in))
		})
	}
}

func TestParseDate(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		in            string
		want          time.Time
		wantDefaulted bool
	}{
		{"dashed", "2025-01-02", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{"dotted", "2025.01.02", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{"slashed", "2025/01/02", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{"unparseable", "jan 2nd", now, true},
		{"empty", "", now, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, defaulted := parseDate(tt.in, now)
			assert.True(t, got.Equal(tt.want))
			assert.Equal(t, tt.wantDefaulted, defaulted)
		})
	}
}

func TestParseWeekday(t *testing.T) {
	monday := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   string
		date time.Time
		want types.Weekday
	}{
		{"korean mon", "월", monday, "Mon"},
		{"korean fri", "금", monday, "Fri"},
		{"korean sun", "일", monday, "Sun"},
		{"english full", "Wednesday", monday, "Wed"},
		{"english short lowercase", "thu", monday, "Thu"},
		{"unknown derives from date", "xx", monday, "Mon"},
		{"empty derives from date", "", monday, "Mon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseWeekday(tt.in, tt.date))
		})
	}
}

func TestConvertRow(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	row := dataset.NormalizedRow{
		dataset.FieldService:    " LoanA ",
		dataset.FieldMessage:    " (ad) benefit up to 50% ",
		dataset.FieldClickRate:  "12.5%",
		dataset.FieldSentDate:   "2025-01-01",
		dataset.FieldWeekday:    "",
		dataset.FieldSentCount:  "1,000",
		dataset.FieldClickCount: "125",
	}

	got := convertRow(row, now)
	assert.Equal(t, "LoanA", got.Service)
	assert.Equal(t, "(ad) benefit up to 50%", got.MessageText)
	assert.Equal(t, 12.5, got.ClickRate)
	assert.Equal(t, types.Weekday("Wed"), got.Weekday)
	assert.Equal(t, 1000, got.SentCount)
	assert.Equal(t, 125, got.ClickCount)
	assert.False(t, got.DateDefaulted)
}

func TestConvertRow_Defaults(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	got := convertRow(dataset.NormalizedRow{
		dataset.FieldService: "  ",
		dataset.FieldMessage: "",
	}, now)

	assert.Equal(t, types.DefaultService, got.Service)
	assert.Equal(t, types.DefaultMessage, got.MessageText)
	assert.Equal(t, 0.0, got.ClickRate)
	assert.True(t, got.DateDefaulted)
	assert.True(t, got.SentDate.Equal(now))
	assert.Equal(t, types.WeekdayOf(now), got.Weekday)
}
