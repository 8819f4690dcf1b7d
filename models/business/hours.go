package business

import "time"

const (
	Monday    = "monday"
	Tuesday   = "tuesday"
	Wednesday = "wednesday"
	Thursday  = "thursday"
	Friday    = "friday"
	Saturday  = "saturday"
	Sunday    = "sunday"
)

// ClosedMarker is the literal used in hour tables for a closed day.
const ClosedMarker = "Chiuso"

// OpeningHours maps a lowercase English weekday name to one or more
// comma-separated "HH:MM-HH:MM" ranges.
type OpeningHours map[string]string

// sundayFirst is indexed by time.Weekday.
var sundayFirst = [7]string{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekOrder is the display order of the hours table.
var WeekOrder = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var dayLabels = map[string]string{
	Monday:    "Lunedì",
	Tuesday:   "Martedì",
	Wednesday: "Mercoledì",
	Thursday:  "Giovedì",
	Friday:    "Venerdì",
	Saturday:  "Sabato",
	Sunday:    "Domenica",
}

// WeekdayName returns the table key for a weekday.
func WeekdayName(d time.Weekday) string {
	return sundayFirst[int(d)%7]
}

// DayLabel returns the display label for a table key.
func DayLabel(day string) string {
	if label, ok := dayLabels[day]; ok {
		return label
	}
	return day
}
