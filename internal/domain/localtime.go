package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultTimezone applies to salons without a configured zone.
const DefaultTimezone = "Europe/Berlin"

const (
	minutesPerDay = 24 * 60
	dateLayout    = "2006-01-02"
)

// LocalParts is the civil date and clock time an instant represents in a zone.
type LocalParts struct {
	Year    int
	Month   time.Month
	Day     int
	Hour    int
	Minute  int
	Second  int
	Weekday int
}

// Localize derives wall-clock fields from the zoned time, so DST offsets are applied
// for the instant itself.
func Localize(instant time.Time, loc *time.Location) LocalParts {
	t := instant.In(loc)
	return LocalParts{
		Year:    t.Year(),
		Month:   t.Month(),
		Day:     t.Day(),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
		Weekday: ISOWeekday(t.Weekday()),
	}
}

// Minutes returns whole minutes since local midnight, truncating seconds.
func (p LocalParts) Minutes() int {
	return p.Hour*60 + p.Minute
}

// Date formats the local calendar date as YYYY-MM-DD.
func (p LocalParts) Date() string {
	return fmt.Sprintf("%04d-%02d-%02d", p.Year, int(p.Month), p.Day)
}

func (p LocalParts) SameDate(o LocalParts) bool {
	return p.Year == o.Year && p.Month == o.Month && p.Day == o.Day
}

// ISOWeekday maps time.Weekday to 1=Monday..7=Sunday.
func ISOWeekday(wd time.Weekday) int {
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}

// ParseClock converts "HH:MM" or "HH:MM:SS" to minutes since midnight.
func ParseClock(text string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, false
	}
	hour, ok := parseDigits(parts[0], 1, 2)
	if !ok || hour > 23 {
		return 0, false
	}
	minute, ok := parseDigits(parts[1], 2, 2)
	if !ok || minute > 59 {
		return 0, false
	}
	if len(parts) == 3 {
		sec, ok := parseDigits(parts[2], 2, 2)
		if !ok || sec > 59 {
			return 0, false
		}
	}
	return hour*60 + minute, true
}

func parseDigits(s string, minLen, maxLen int) (int, bool) {
	if len(s) < minLen || len(s) > maxLen {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// StorageClock renders minutes since midnight as the "HH:MM:SS" form kept in
// business_hours.
func StorageClock(minutes int) string {
	return FormatClock(minutes) + ":00"
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	if minutes >= minutesPerDay {
		minutes = minutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// LoadLocation resolves a salon zone. Empty or unknown names fall back to fallback,
// then to DefaultTimezone, then to UTC.
func LoadLocation(name, fallback string) *time.Location {
	for _, candidate := range []string{name, fallback, DefaultTimezone} {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if loc, err := time.LoadLocation(candidate); err == nil {
			return loc
		}
	}
	return time.UTC
}

// ParseLocalDate parses YYYY-MM-DD as local midnight in loc.
func ParseLocalDate(text string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(text), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", text)
	}
	return d, nil
}

// DayBounds returns the instants of local midnight on day's date and of the next
// local midnight. The span is 23 or 25 hours on DST transition days.
func DayBounds(day time.Time, loc *time.Location) (time.Time, time.Time) {
	t := day.In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc), time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}

// FormatDate renders the local calendar date of instant in loc.
func FormatDate(instant time.Time, loc *time.Location) string {
	return instant.In(loc).Format(dateLayout)
}
