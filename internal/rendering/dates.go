package rendering

import (
	"strings"
	"time"
)

const monthLayout = "2006-01"

// Present is the end label of an ongoing experience.
const Present = "Present"

// FormatDate renders a YYYY-MM date as "Mon YYYY". Missing or malformed input yields "".
func FormatDate(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return ""
	}
	t, err := time.Parse(monthLayout, date)
	if err != nil {
		return ""
	}
	return t.Format("Jan 2006")
}

// DateRange renders an experience's tenure. It is empty when the start date
// is missing or malformed, and a current entry always ends in "Present".
func DateRange(start, end string, current bool) string {
	from := FormatDate(start)
	if from == "" {
		return ""
	}
	if current {
		return from + " - " + Present
	}
	if to := FormatDate(end); to != "" {
		return from + " - " + to
	}
	return from
}
