package daterange

import "time"

// Period is a named reporting window.
type Period string

const (
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	PeriodThisWeek  Period = "this-week"
	PeriodLastWeek  Period = "last-week"
	PeriodCustom    Period = "custom"
)

// AllPeriods lists the selectable periods in display order.
var AllPeriods = []Period{PeriodToday, PeriodYesterday, PeriodThisWeek, PeriodLastWeek, PeriodCustom}

// Range is an inclusive date interval in local wall-clock time.
type Range struct {
	From time.Time
	To   time.Time
}

// ParsePeriod maps a user-entered string to a Period. Common aliases from the
// original settings surface ("thisWeek", "lastWeek") are accepted.
func ParsePeriod(s string) (Period, bool) {
	switch s {
	case "today":
		return PeriodToday, true
	case "yesterday":
		return PeriodYesterday, true
	case "this-week", "thisWeek", "thisweek":
		return PeriodThisWeek, true
	case "last-week", "lastWeek", "lastweek":
		return PeriodLastWeek, true
	case "custom":
		return PeriodCustom, true
	}
	return "", false
}

// Resolve maps a named period to a concrete range relative to now.
// Weeks start on Sunday. An unrecognized period resolves like today.
func Resolve(period Period, now time.Time) Range {
	switch period {
	case PeriodYesterday:
		day := startOfDay(now).AddDate(0, 0, -1)
		return Range{From: day, To: endOfDay(day)}
	case PeriodThisWeek:
		return Range{From: startOfWeek(now), To: now}
	case PeriodLastWeek:
		from := startOfWeek(now).AddDate(0, 0, -7)
		return Range{From: from, To: endOfDay(from.AddDate(0, 0, 6))}
	case PeriodToday:
		return Range{From: startOfDay(now), To: now}
	default:
		return Range{From: startOfDay(now), To: now}
	}
}

// Custom builds a range from two user-supplied dates, widening from to that
// day's midnight and to to the end of its day.
func Custom(from, to time.Time) Range {
	return Range{From: startOfDay(from), To: endOfDay(to)}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func startOfWeek(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}
