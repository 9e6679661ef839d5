package chart

import (
	"fmt"
	"regexp"
	"time"
)

const dobLayout = "2006-01-02"

// Age returns the completed years between dob (YYYY-MM-DD) and now.
func Age(dob string, now time.Time) (int, error) {
	birth, err := time.Parse(dobLayout, dob)
	if err != nil {
		return 0, fmt.Errorf("parse dob %q: %w", dob, err)
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age, nil
}

var mrnPattern = regexp.MustCompile(`^(\d{3})(\d{3})(\d{3})`)

// FormatMRN renders a 9-digit MRN as 123-456-789. Other inputs are returned
// unchanged.
func FormatMRN(mrn string) string {
	return mrnPattern.ReplaceAllString(mrn, "$1-$2-$3")
}

// FormatDate renders t as "Jan 15, 2024".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatRelative renders the distance from t to now the way the dashboard
// does: "Just now", "5m ago", "3h ago", "2d ago", then the full date.
func FormatRelative(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff/time.Hour))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff/(24*time.Hour)))
	}
	return FormatDate(t)
}

// Greeting returns the time-of-day salutation for the dashboard header.
func Greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h < 12:
		return "Good morning"
	case h < 17:
		return "Good afternoon"
	}
	return "Good evening"
}
