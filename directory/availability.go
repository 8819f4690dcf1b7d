// Package directory holds the pure logic over the business list: opening
// hours evaluation and category filtering.
package directory

import (
	"strconv"
	"strings"
	"time"

	"terre-server/models/business"
)

// TimeRange is an opening window in minutes since midnight, both ends inclusive.
type TimeRange struct {
	Start int
	End   int
}

// Contains reports whether minute falls within the range. A range whose end is
// before its start (an overnight window) never matches: overnight opening is
// not supported by the hour tables.
func (r TimeRange) Contains(minute int) bool {
	return minute >= r.Start && minute <= r.End
}

// DayHours is one row of the weekly hours table.
type DayHours struct {
	Day    string `json:"day"`
	Label  string `json:"label"`
	Hours  string `json:"hours"`
	Closed bool   `json:"closed"`
}

// IsOpenNow evaluates the business hour table at now's wall-clock time.
// The caller picks the time zone by passing now in the right location.
func IsOpenNow(b business.Business, now time.Time) bool {
	if b.OpeningHours == nil {
		return false
	}

	entry, ok := b.OpeningHours[business.WeekdayName(now.Weekday())]
	if !ok || isClosedEntry(entry) {
		return false
	}

	minute := now.Hour()*60 + now.Minute()
	for _, r := range ParseRanges(entry) {
		if r.Contains(minute) {
			return true
		}
	}
	return false
}

// ParseRanges splits "09:00-12:00, 15:00-19:00" into ranges. Malformed ranges
// are skipped; extra "-" bounds after the second are ignored.
func ParseRanges(entry string) []TimeRange {
	var ranges []TimeRange
	for _, part := range strings.Split(entry, ",") {
		bounds := strings.Split(strings.TrimSpace(part), "-")
		if len(bounds) < 2 {
			continue
		}
		start, ok := parseClock(bounds[0])
		if !ok {
			continue
		}
		end, ok := parseClock(bounds[1])
		if !ok {
			continue
		}
		ranges = append(ranges, TimeRange{Start: start, End: end})
	}
	return ranges
}

// parseClock reads "HH:MM" or "HH" into minutes since midnight.
func parseClock(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	hm := strings.SplitN(s, ":", 2)
	h, err := strconv.Atoi(strings.TrimSpace(hm[0]))
	if err != nil {
		return 0, false
	}
	m := 0
	if len(hm) == 2 && strings.TrimSpace(hm[1]) != "" {
		m, err = strconv.Atoi(strings.TrimSpace(hm[1]))
		if err != nil {
			return 0, false
		}
	}
	return h*60 + m, true
}

func isClosedEntry(entry string) bool {
	e := strings.TrimSpace(entry)
	return e == "" || strings.EqualFold(e, business.ClosedMarker) || strings.EqualFold(e, "closed")
}

// WeeklyHours returns the seven table rows, Monday first. Days without an
// entry are shown closed.
func WeeklyHours(b business.Business) []DayHours {
	rows := make([]DayHours, 0, len(business.WeekOrder))
	for _, day := range business.WeekOrder {
		entry := strings.TrimSpace(b.OpeningHours[day])
		closed := isClosedEntry(entry)
		if closed {
			entry = business.ClosedMarker
		}
		rows = append(rows, DayHours{
			Day:    day,
			Label:  business.DayLabel(day),
			Hours:  entry,
			Closed: closed,
		})
	}
	return rows
}

// CountOpen returns how many of the businesses are open at now.
func CountOpen(businesses []business.Business, now time.Time) int {
	open := 0
	for _, b := range businesses {
		if IsOpenNow(b, now) {
			open++
		}
	}
	return open
}
