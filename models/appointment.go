package models

import "time"

// Appointment status values. "done" and "cancelled" are terminal.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentDone      = "done"
	AppointmentCancelled = "cancelled"
)

// Appointment represents a booked visit. Appointments are never hard-deleted;
// cancellation is a status transition.
type Appointment struct {
	ID             string     `bson:"id" json:"id"`
	ProfessionalID string     `bson:"professional_id" json:"professional_id"`
	ClientID       string     `bson:"client_id" json:"client_id"`
	ServiceIDs     []string   `bson:"service_ids" json:"service_ids"`
	LocationID     string     `bson:"location_id" json:"location_id"`
	StartTime      time.Time  `bson:"start_time" json:"start_time"`
	EndTime        time.Time  `bson:"end_time" json:"end_time"`
	Status         string     `bson:"status" json:"status"`
	ReminderSentAt *time.Time `bson:"reminder_sent_at,omitempty" json:"reminder_sent_at,omitempty"`
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
}

// LocalDate returns the appointment's date in "YYYY-MM-DD" form.
func (a *Appointment) LocalDate() string {
	return a.StartTime.Format("2006-01-02")
}

// LocalStartClock and LocalEndClock return the wall-clock "HH:MM" of the
// appointment on its own day.
func (a *Appointment) LocalStartClock() string {
	return a.StartTime.Format("15:04")
}

func (a *Appointment) LocalEndClock() string {
	return a.EndTime.Format("15:04")
}
