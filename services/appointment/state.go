package appointment

import "trimly/models"

// IsTerminal reports whether the status admits no further transitions.
func IsTerminal(status string) bool {
	return status == models.AppointmentDone || status == models.AppointmentCancelled
}

// CanTransition reports whether moving from one status to another is legal.
// The machine is pending -> confirmed -> done, with cancellation allowed from
// pending and confirmed. Completion is additionally allowed straight from
// pending so walk-ins a receptionist never confirmed can still be closed out.
func CanTransition(from, to string) bool {
	if IsTerminal(from) {
		return false
	}
	switch to {
	case models.AppointmentConfirmed:
		return from == models.AppointmentPending
	case models.AppointmentDone:
		return from == models.AppointmentPending || from == models.AppointmentConfirmed
	case models.AppointmentCancelled:
		return from == models.AppointmentPending || from == models.AppointmentConfirmed
	}
	return false
}

// completableFrom are the statuses the conditional completion write accepts.
var completableFrom = []string{models.AppointmentPending, models.AppointmentConfirmed}

// cancellableFrom are the statuses the conditional cancellation write accepts.
var cancellableFrom = []string{models.AppointmentPending, models.AppointmentConfirmed}
