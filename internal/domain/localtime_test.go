package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{in: "00:00", want: 0, wantOK: true},
		{in: "09:30", want: 570, wantOK: true},
		{in: "9:30", want: 570, wantOK: true},
		{in: "18:00:00", want: 1080, wantOK: true},
		{in: "23:59:59", want: 1439, wantOK: true},
		{in: " 10:15 ", want: 615, wantOK: true},
		{in: "24:00"},
		{in: "12:60"},
		{in: "12:00:60"},
		{in: "12"},
		{in: "12:5"},
		{in: "ab:cd"},
		{in: "-1:00"},
		{in: "10:00:00:00"},
		{in: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseClock(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "23:59", FormatClock(1439))
	assert.Equal(t, "09:05:00", StorageClock(545))
}

func TestISOWeekday(t *testing.T) {
	assert.Equal(t, 1, ISOWeekday(time.Monday))
	assert.Equal(t, 6, ISOWeekday(time.Saturday))
	assert.Equal(t, 7, ISOWeekday(time.Sunday))
}

func TestLocalize_UsesZoneOffsetOfInstant(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// Sunday 23:30 UTC is already Monday 00:30 in Berlin winter time.
	p := Localize(time.Date(2026, 1, 4, 23, 30, 0, 0, time.UTC), berlin)
	assert.Equal(t, 1, p.Weekday)
	assert.Equal(t, "2026-01-05", p.Date())
	assert.Equal(t, 30, p.Minutes())

	// Same UTC clock time in summer maps two hours ahead.
	p = Localize(time.Date(2026, 7, 6, 8, 0, 0, 0, time.UTC), berlin)
	assert.Equal(t, 10*60, p.Minutes())
	assert.Equal(t, 1, p.Weekday)
}

func TestDayBounds_DSTTransitions(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	start, end := DayBounds(time.Date(2026, 3, 29, 12, 0, 0, 0, berlin), berlin)
	assert.Equal(t, 23*time.Hour, end.Sub(start))
	assert.Equal(t, time.Date(2026, 3, 28, 23, 0, 0, 0, time.UTC), start.UTC())

	start, end = DayBounds(time.Date(2026, 10, 25, 12, 0, 0, 0, berlin), berlin)
	assert.Equal(t, 25*time.Hour, end.Sub(start))
}

func TestLoadLocation_FallsBack(t *testing.T) {
	assert.Equal(t, "America/New_York", LoadLocation("America/New_York", "").String())
	assert.Equal(t, "Europe/Lisbon", LoadLocation("", "Europe/Lisbon").String())
	assert.Equal(t, DefaultTimezone, LoadLocation("Not/AZone", "").String())
}

func TestParseLocalDate(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	d, err := ParseLocalDate("2026-02-10", berlin)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 9, 23, 0, 0, 0, time.UTC), d.UTC())

	_, err = ParseLocalDate("10.02.2026", berlin)
	assert.Error(t, err)
}
