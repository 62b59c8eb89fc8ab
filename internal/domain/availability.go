package domain

import "time"

// CheckAvailability admits [start, end) when it lies on a single local day inside
// that day's opening window. It returns nil to admit, or one of ErrCrossesMidnight
// and ErrOutsideHours. An end exactly at closing time is admitted.
//
// The caller must reject empty or negative intervals first.
func CheckAvailability(hours Hours, loc *time.Location, start, end time.Time) error {
	ls := Localize(start, loc)
	le := Localize(end, loc)

	if !ls.SameDate(le) {
		return ErrCrossesMidnight
	}

	w, open := hours.WindowFor(ls.Weekday)
	if !open {
		return ErrOutsideHours
	}

	if !w.Contains(ls.Minutes(), endMinutes(end, le)) {
		return ErrOutsideHours
	}
	return nil
}

// endMinutes rounds a partial trailing minute up so an end of 18:00:30 does not
// pass as 18:00.
func endMinutes(end time.Time, p LocalParts) int {
	m := p.Minutes()
	if p.Second > 0 || end.Nanosecond() > 0 {
		m++
	}
	return m
}
