package schedule

import (
	"trimly/models"
)

// BusyInterval is an occupied stretch of a working day, in minutes from
// midnight. It is derived on the fly from breaks and committed appointments
// and never persisted.
type BusyInterval struct {
	Start int
	End   int
}

// Overlaps reports whether the candidate window [start, end) collides with the
// interval. The test is open on both ends: a window touching the interval's
// boundary does not overlap, so a slot ending exactly when a break starts is
// still bookable.
func (b BusyInterval) Overlaps(start, end int) bool {
	return start < b.End && end > b.Start
}

// BusyFromDay collects the day's busy intervals: every configured break plus
// every appointment that actually holds the chair (confirmed or done; pending
// and cancelled appointments do not block slots). Overlapping intervals are
// kept as-is; each one disqualifies candidates independently, so there is no
// need to merge them first.
func BusyFromDay(day *models.DaySchedule, appointments []models.Appointment) []BusyInterval {
	var busy []BusyInterval
	if day != nil {
		for _, br := range day.Breaks {
			busy = append(busy, BusyInterval{Start: ToMinutes(br.Start), End: ToMinutes(br.End)})
		}
	}
	for _, a := range appointments {
		if a.Status != models.AppointmentConfirmed && a.Status != models.AppointmentDone {
			continue
		}
		busy = append(busy, BusyInterval{
			Start: ToMinutes(a.LocalStartClock()),
			End:   ToMinutes(a.LocalEndClock()),
		})
	}
	return busy
}

// ComputeSlots slides a window of durationMinutes across the working day in
// stepMinutes increments and returns every start time that fits inside the day
// and clears every busy interval, as ordered "HH:MM" strings.
//
// An absent or inactive day, an unknown duration, or an inverted working
// window all yield an empty result; no availability is a normal outcome, not
// an error.
func ComputeSlots(day *models.DaySchedule, busy []BusyInterval, durationMinutes, stepMinutes int) []string {
	if day == nil || !day.Active || durationMinutes <= 0 || stepMinutes <= 0 {
		return nil
	}
	workStart := ToMinutes(day.Start)
	workEnd := ToMinutes(day.End)
	if workStart >= workEnd {
		return nil
	}

	var slots []string
	for start := workStart; start+durationMinutes <= workEnd; start += stepMinutes {
		end := start + durationMinutes
		blocked := false
		for _, b := range busy {
			if b.Overlaps(start, end) {
				blocked = true
				break
			}
		}
		if !blocked {
			slots = append(slots, ToClockString(start))
		}
	}
	return slots
}
