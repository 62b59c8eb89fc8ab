package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowOf(t *testing.T) {
	tests := []struct {
		name     string
		row      BusinessHours
		want     Window
		wantOpen bool
	}{
		{name: "hh:mm", row: BusinessHours{OpenTime: "10:00", CloseTime: "18:00"}, want: Window{600, 1080}, wantOpen: true},
		{name: "hh:mm:ss", row: BusinessHours{OpenTime: "09:30:00", CloseTime: "17:15:00"}, want: Window{570, 1035}, wantOpen: true},
		{name: "missing open", row: BusinessHours{CloseTime: "18:00"}},
		{name: "missing close", row: BusinessHours{OpenTime: "10:00"}},
		{name: "unparseable", row: BusinessHours{OpenTime: "ten", CloseTime: "18:00"}},
		{name: "close equals open", row: BusinessHours{OpenTime: "10:00", CloseTime: "10:00"}},
		{name: "close before open", row: BusinessHours{OpenTime: "18:00", CloseTime: "10:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, open := WindowOf(tt.row)
			assert.Equal(t, tt.wantOpen, open)
			if tt.wantOpen {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestHours_WeekMarksMissingDaysClosed(t *testing.T) {
	h := NewHours([]BusinessHours{
		{Weekday: 1, OpenTime: "10:00:00", CloseTime: "18:00:00"},
		{Weekday: 3, OpenTime: "09:00", CloseTime: ""},
		{Weekday: 9, OpenTime: "09:00", CloseTime: "10:00"},
	})

	week := h.Week()
	require.Len(t, week, 7)
	assert.Equal(t, DayHours{Weekday: 1, Open: "10:00", Close: "18:00"}, week[0])
	for _, d := range week[1:] {
		assert.True(t, d.Closed, "weekday %d", d.Weekday)
	}

	_, open := h.WindowFor(3)
	assert.False(t, open)
	_, open = h.WindowFor(0)
	assert.False(t, open)
}

func TestPlanHoursChanges(t *testing.T) {
	changes, err := PlanHoursChanges([]DayHours{
		{Weekday: 2, Open: "09:00", Close: "17:00"},
		{Weekday: 1, Open: "10:00:00", Close: "18:00:00"},
		{Weekday: 7, Closed: true},
		{Weekday: 6, Open: "10:00"},
	})
	require.NoError(t, err)
	require.Len(t, changes, 4)

	assert.Equal(t, 1, changes[0].Weekday)
	assert.Equal(t, &Window{Open: 600, Close: 1080}, changes[0].Window)
	assert.Equal(t, &Window{Open: 540, Close: 1020}, changes[1].Window)
	assert.Equal(t, HoursChange{Weekday: 6}, changes[2])
	assert.Equal(t, HoursChange{Weekday: 7}, changes[3])
}

func TestPlanHoursChanges_RejectsWholeBatch(t *testing.T) {
	tests := []struct {
		name string
		days []DayHours
	}{
		{name: "weekday out of range", days: []DayHours{{Weekday: 8, Open: "10:00", Close: "11:00"}}},
		{name: "duplicate weekday", days: []DayHours{{Weekday: 1, Closed: true}, {Weekday: 1, Open: "10:00", Close: "11:00"}}},
		{name: "malformed open", days: []DayHours{{Weekday: 1, Closed: true}, {Weekday: 2, Open: "25:00", Close: "26:00"}}},
		{name: "close not after open", days: []DayHours{{Weekday: 2, Open: "12:00", Close: "12:00"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes, err := PlanHoursChanges(tt.days)
			assert.Nil(t, changes)
			rej, ok := AsRejection(err)
			require.True(t, ok, "err = %v", err)
			assert.Equal(t, ReasonInvalidHours, rej.Reason)
		})
	}
}

func TestPlanHoursChanges_EmptyBatchIsNoop(t *testing.T) {
	changes, err := PlanHoursChanges(nil)
	require.NoError(t, err)
	assert.Empty(t, changes)

	changes, err = PlanHoursChanges([]DayHours{})
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestDisplayRange(t *testing.T) {
	start, end := DisplayRange(Window{}, false)
	assert.Equal(t, 8*60, start)
	assert.Equal(t, 21*60, end)

	start, end = DisplayRange(Window{Open: 10 * 60, Close: 18 * 60}, true)
	assert.Equal(t, 9*60, start)
	assert.Equal(t, 19*60, end)

	start, end = DisplayRange(Window{Open: 6 * 60, Close: 22*60 + 30}, true)
	assert.Equal(t, 6*60, start)
	assert.Equal(t, 22*60, end)
}

func TestRejection_IsMatchesReason(t *testing.T) {
	err := Reject(ReasonOverlap, "taken")
	assert.True(t, errors.Is(err, ErrOverlap))
	assert.False(t, errors.Is(err, ErrOutsideHours))
	assert.Equal(t, ClassConflict, ReasonOverlap.Class())
	assert.Equal(t, ClassNotFound, ReasonServiceNotFound.Class())
	assert.Equal(t, ClassValidation, ReasonCrossesMidnight.Class())
}
