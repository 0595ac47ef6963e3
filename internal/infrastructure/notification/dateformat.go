// Package notification delivers tickets and registration updates to
// attendees and organizers over email and webhooks.
package notification

import (
	"fmt"
	"time"
)

// FormatEventDate renders a YYYY-MM-DD date as a friendly string like
// "21st September, 2026". Unparseable input is returned unchanged.
func FormatEventDate(date string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d%s %s, %d",
		parsed.Day(), ordinalSuffix(parsed.Day()), parsed.Month().String(), parsed.Year())
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
