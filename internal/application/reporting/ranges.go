package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/wholesale-api/internal/domain"
)

// Report filters, in the spelling the admin dashboard sends them.
const (
	FilterToday         = "Today"
	FilterYesterday     = "Yesterday"
	FilterWeekToDate    = "Week to date"
	FilterLastWeek      = "Last week"
	FilterMonthToDate   = "Month to date"
	FilterLastMonth     = "Last month"
	FilterQuarterToDate = "Quarter to date"
	FilterLastQuarter   = "Last quarter"
	FilterYearToDate    = "Year to date"
	FilterLastYear      = "Last year"
)

// Filters lists every supported report filter.
var Filters = []string{
	FilterToday, FilterYesterday,
	FilterWeekToDate, FilterLastWeek,
	FilterMonthToDate, FilterLastMonth,
	FilterQuarterToDate, FilterLastQuarter,
	FilterYearToDate, FilterLastYear,
}

// DateRange closed interval [Start, End] a report covers.
type DateRange struct {
	Filter string // canonical filter name
	Start  time.Time
	End    time.Time
}

// ResolveRange maps a filter to its date range relative to now, in now's location.
// Matching ignores case and accepts '-' or '_' instead of spaces ("month-to-date").
// Weeks start on Sunday. "... to date" ranges end at now; closed periods end on their last nanosecond.
func ResolveRange(option string, now time.Time) (DateRange, error) {
	filter, ok := canonicalFilter(option)
	if !ok {
		return DateRange{}, fmt.Errorf("%w: unknown report filter %q", domain.ErrInvalidInput, option)
	}

	today := startOfDay(now)
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	quarterStart := time.Date(now.Year(), ((now.Month()-1)/3)*3+1, 1, 0, 0, 0, 0, now.Location())
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())

	r := DateRange{Filter: filter}
	switch filter {
	case FilterToday:
		r.Start, r.End = today, endBefore(today.AddDate(0, 0, 1))
	case FilterYesterday:
		r.Start, r.End = today.AddDate(0, 0, -1), endBefore(today)
	case FilterWeekToDate:
		r.Start, r.End = weekStart, now
	case FilterLastWeek:
		r.Start, r.End = weekStart.AddDate(0, 0, -7), endBefore(weekStart)
	case FilterMonthToDate:
		r.Start, r.End = monthStart, now
	case FilterLastMonth:
		r.Start, r.End = monthStart.AddDate(0, -1, 0), endBefore(monthStart)
	case FilterQuarterToDate:
		r.Start, r.End = quarterStart, now
	case FilterLastQuarter:
		r.Start, r.End = quarterStart.AddDate(0, -3, 0), endBefore(quarterStart)
	case FilterYearToDate:
		r.Start, r.End = yearStart, now
	case FilterLastYear:
		r.Start, r.End = yearStart.AddDate(-1, 0, 0), endBefore(yearStart)
	}
	return r, nil
}

func canonicalFilter(option string) (string, bool) {
	norm := strings.NewReplacer("-", " ", "_", " ").Replace(strings.ToLower(option))
	norm = strings.Join(strings.Fields(norm), " ")
	for _, f := range Filters {
		if strings.ToLower(f) == norm {
			return f, true
		}
	}
	return "", false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endBefore(t time.Time) time.Time {
	return t.Add(-time.Nanosecond)
}
