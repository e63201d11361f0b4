package usecase

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/wholesale-api/internal/domain"
)

var holidayLayouts = []string{"02/01/2006", "2006-01-02", time.RFC3339}

// ParseHolidayDates parses dd/mm/yyyy, yyyy-mm-dd or RFC 3339 dates. Blank entries are skipped,
// duplicates collapse and the result is sorted.
func ParseHolidayDates(raw []string) ([]time.Time, error) {
	seen := make(map[string]bool, len(raw))
	out := make([]time.Time, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		d, err := parseDate(r)
		if err != nil {
			return nil, err
		}
		key := d.Format("2006-01-02")
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

// SplitHolidayList splits the comma separated form value sent on supplier creation.
func SplitHolidayList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return strings.Split(v, ",")
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range holidayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", domain.ErrInvalidInput, s)
}
