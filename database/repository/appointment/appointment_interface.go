package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"trimly/models"
)

// ErrNotFound is returned when no appointment matches the given ID.
var ErrNotFound = errors.New("appointment not found")

// AppointmentRepository provides typed access to appointment documents.
type AppointmentRepository interface {
	GetByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	// ListForProfessionalOnDay returns the professional's appointments whose
	// start time falls on the given local date ("YYYY-MM-DD"), restricted to
	// the given statuses.
	ListForProfessionalOnDay(ctx context.Context, professionalID, date string, statuses []string) ([]models.Appointment, error)
	// TransitionStatus conditionally moves an appointment into toStatus iff its
	// current status is one of allowedFrom. It reports whether the write
	// matched; a false result means another transition won the race.
	TransitionStatus(ctx context.Context, appointmentID, toStatus string, allowedFrom []string) (bool, error)
	// CountCompletedForClient counts the client's appointments in status "done".
	CountCompletedForClient(ctx context.Context, clientID string) (int64, error)
	// ListDueForReminder returns confirmed appointments starting inside
	// [from, to) whose reminder has not been sent yet.
	ListDueForReminder(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
	MarkReminderSent(ctx context.Context, appointmentID string, at time.Time) error
}
