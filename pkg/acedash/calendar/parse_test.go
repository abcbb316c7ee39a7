package calendar

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseMonthKey(t *testing.T) {
	aug15 := time.Date(2023, time.August, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input any
		want  MonthKey
		ok    bool
	}{
		{"time value", aug15, "2023-08", true},
		{"time pointer", &aug15, "2023-08", true},
		{"serial days", 45153.0, "2023-08", true},
		{"serial days int", 45153, "2023-08", true},
		{"serial days int64", int64(45153), "2023-08", true},
		{"serial with fraction", 45153.75, "2023-08", true},
		{"serial last day of month", 45322.999, "2024-01", true},
		{"json number", json.Number("45153"), "2023-08", true},
		{"date literal", "Date(2023,7,15)", "2023-08", true},
		{"date literal with spaces", "Date(2023, 7, 15)", "2023-08", true},
		{"date literal with time", "Date(2023,7,15,10,30,0)", "2023-08", true},
		{"date literal month overflow", "Date(2023,12,1)", "2024-01", true},
		{"date literal december", "Date(2023,11,31)", "2023-12", true},
		{"iso date", "2023-08-15", "2023-08", true},
		{"iso datetime", "2023-08-15T10:00:00Z", "2023-08", true},
		{"slash date", "2023/8/15", "2023-08", true},
		{"slash date padded", "2023/08/15 14:05", "2023-08", true},
		{"us date", "8/15/2023", "2023-08", true},
		{"cjk date", "2023年8月15日", "2023-08", true},
		{"long form", "August 15, 2023", "2023-08", true},
		{"month only", "2023-08", "2023-08", true},
		{"nil", nil, "", false},
		{"nil time pointer", (*time.Time)(nil), "", false},
		{"zero time", time.Time{}, "", false},
		{"zero serial", 0.0, "", false},
		{"NaN", math.NaN(), "", false},
		{"infinity", math.Inf(1), "", false},
		{"huge serial", 1e12, "", false},
		{"empty string", "", "", false},
		{"blank string", "   ", "", false},
		{"garbage", "not a date", "", false},
		{"category text", "教師 Teacher", "", false},
		{"bool", true, "", false},
		{"invalid calendar day", "2023-02-30", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMonthKey(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMonthKeyNegativeSerial(t *testing.T) {
	got, ok := ParseMonthKey(-1.0)
	assert.True(t, ok)
	assert.Equal(t, MonthKey("1899-12"), got)
}

func TestMinAvailableMonth(t *testing.T) {
	tests := []struct {
		now  time.Time
		want MonthKey
	}{
		{time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC), "2019-10"},
		{time.Date(2024, time.January, 31, 23, 59, 0, 0, time.UTC), "2017-01"},
		{time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), "2017-02"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MinAvailableMonth(tt.now), "now=%s", tt.now)
	}
}

func TestMonthKeySplit(t *testing.T) {
	y, m, err := MonthKey("2023-08").Split()
	assert.NoError(t, err)
	assert.Equal(t, 2023, y)
	assert.Equal(t, 8, m)

	for _, bad := range []MonthKey{"", "2023-8", "2023/08", "2023-13", "2023-00", "abcd-01", "2023-08-01"} {
		_, _, err := bad.Split()
		assert.ErrorIs(t, err, ErrMalformedKey, "key %q", bad)
		assert.False(t, bad.Valid())
	}
}
