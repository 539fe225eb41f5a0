package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// ToMinutes parses an "HH:MM" clock string into minutes from midnight.
// Malformed or empty input yields 0 rather than an error; day configs coming
// from the management screens may be incomplete, and a zero-width window
// simply produces no availability.
func ToMinutes(clock string) int {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	if hours < 0 || minutes < 0 || minutes > 59 {
		return 0
	}
	return hours*60 + minutes
}

// ToClockString formats minutes from midnight as a zero-padded "HH:MM".
func ToClockString(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
