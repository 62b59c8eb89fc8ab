package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BusinessHours is the stored opening window of one weekday. A missing row or an
// empty bound means the salon is closed that day.
type BusinessHours struct {
	bun.BaseModel `bun:"table:business_hours,alias:bh"`

	SalonID   uuid.UUID `bun:"salon_id,pk,type:uuid"`
	Weekday   int       `bun:"weekday,pk"`
	OpenTime  string    `bun:"open_time,nullzero"`
	CloseTime string    `bun:"close_time,nullzero"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// Window is an opening window in minutes since local midnight.
type Window struct {
	Open  int
	Close int
}

func (w Window) Contains(startMin, endMin int) bool {
	return startMin >= w.Open && endMin <= w.Close
}

// WindowOf parses a stored row. Rows with a missing or unparseable bound, or with
// close not after open, are closed.
func WindowOf(row BusinessHours) (Window, bool) {
	open, ok := ParseClock(row.OpenTime)
	if !ok {
		return Window{}, false
	}
	closing, ok := ParseClock(row.CloseTime)
	if !ok {
		return Window{}, false
	}
	if closing <= open {
		return Window{}, false
	}
	return Window{Open: open, Close: closing}, true
}

// Hours is a salon's weekly schedule keyed by ISO weekday.
type Hours struct {
	windows [8]Window
	open    [8]bool
}

func NewHours(rows []BusinessHours) Hours {
	var h Hours
	for _, row := range rows {
		if row.Weekday < 1 || row.Weekday > 7 {
			continue
		}
		if w, ok := WindowOf(row); ok {
			h.windows[row.Weekday] = w
			h.open[row.Weekday] = true
		}
	}
	return h
}

func (h Hours) WindowFor(weekday int) (Window, bool) {
	if weekday < 1 || weekday > 7 || !h.open[weekday] {
		return Window{}, false
	}
	return h.windows[weekday], true
}

// DayHours is the client-facing view of one weekday.
type DayHours struct {
	Weekday int    `json:"weekday"`
	Open    string `json:"open,omitempty"`
	Close   string `json:"close,omitempty"`
	Closed  bool   `json:"closed"`
}

// Week returns all seven days, Monday first.
func (h Hours) Week() []DayHours {
	out := make([]DayHours, 0, 7)
	for wd := 1; wd <= 7; wd++ {
		w, ok := h.WindowFor(wd)
		if !ok {
			out = append(out, DayHours{Weekday: wd, Closed: true})
			continue
		}
		out = append(out, DayHours{Weekday: wd, Open: FormatClock(w.Open), Close: FormatClock(w.Close)})
	}
	return out
}

// HoursChange sets or clears one weekday. A nil Window clears the day.
type HoursChange struct {
	Weekday int
	Window  *Window
}

// PlanHoursChanges validates a batch of weekday updates. Either every entry is
// valid or the batch is rejected with INVALID_HOURS. An empty batch plans no
// changes.
func PlanHoursChanges(days []DayHours) ([]HoursChange, error) {
	seen := make(map[int]struct{}, len(days))
	out := make([]HoursChange, 0, len(days))
	for _, d := range days {
		if d.Weekday < 1 || d.Weekday > 7 {
			return nil, Reject(ReasonInvalidHours, fmt.Sprintf("weekday %d must be between 1 and 7", d.Weekday))
		}
		if _, dup := seen[d.Weekday]; dup {
			return nil, Reject(ReasonInvalidHours, fmt.Sprintf("weekday %d is listed more than once", d.Weekday))
		}
		seen[d.Weekday] = struct{}{}

		openText := strings.TrimSpace(d.Open)
		closeText := strings.TrimSpace(d.Close)
		if d.Closed || openText == "" || closeText == "" {
			out = append(out, HoursChange{Weekday: d.Weekday})
			continue
		}

		open, ok := ParseClock(openText)
		if !ok {
			return nil, Reject(ReasonInvalidHours, fmt.Sprintf("weekday %d: invalid open time %q", d.Weekday, d.Open))
		}
		closing, ok := ParseClock(closeText)
		if !ok {
			return nil, Reject(ReasonInvalidHours, fmt.Sprintf("weekday %d: invalid close time %q", d.Weekday, d.Close))
		}
		if closing <= open {
			return nil, Reject(ReasonInvalidHours, fmt.Sprintf("weekday %d: close must be after open", d.Weekday))
		}
		out = append(out, HoursChange{Weekday: d.Weekday, Window: &Window{Open: open, Close: closing}})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weekday < out[j].Weekday })
	return out, nil
}

const (
	defaultDisplayStart = 8 * 60
	defaultDisplayEnd   = 21 * 60
	displayPadding      = 60
	displayFloor        = 6 * 60
	displayCeiling      = 22 * 60
)

// DisplayRange is the visible span of a day calendar: the opening window padded by
// an hour on each side and kept within 06:00..22:00. Closed days show 08:00..21:00.
func DisplayRange(w Window, open bool) (int, int) {
	if !open {
		return defaultDisplayStart, defaultDisplayEnd
	}
	start := max(displayFloor, w.Open-displayPadding)
	end := min(displayCeiling, w.Close+displayPadding)
	if end <= start {
		return defaultDisplayStart, defaultDisplayEnd
	}
	return start, end
}
