package models

// BreakWindow is a pause inside a working day, as wall-clock "HH:MM" bounds.
// Breaks may overlap each other; each one is subtracted independently.
type BreakWindow struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// DaySchedule is the working window for a single weekday.
type DaySchedule struct {
	Active bool          `bson:"active" json:"active"`
	Start  string        `bson:"start" json:"start"`
	End    string        `bson:"end" json:"end"`
	Breaks []BreakWindow `bson:"breaks,omitempty" json:"breaks,omitempty"`
}

// WorkingHoursConfig maps each weekday (Sunday-indexed, 0..6) to an optional
// day schedule. A nil entry means the professional never works that day.
type WorkingHoursConfig struct {
	Days [7]*DaySchedule `bson:"days" json:"days"`
}

// ScheduleFor returns the schedule for the given weekday index, or nil.
func (w *WorkingHoursConfig) ScheduleFor(weekday int) *DaySchedule {
	if weekday < 0 || weekday > 6 {
		return nil
	}
	return w.Days[weekday]
}
