package appointment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	appointmentRepo "trimly/database/repository/appointment"
	"trimly/models"

	"go.uber.org/zap"
)

// Cancel drives the cancellation cascade: the authoritative status transition,
// then the best-effort waitlist fan-out for the freed slot.
func (s *DefaultLifecycleService) Cancel(ctx context.Context, appointmentID string) (*Report, error) {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, NewNotFoundError(fmt.Sprintf("appointment %s not found", appointmentID))
		}
		return nil, NewPersistenceError("failed to load appointment", err)
	}

	if IsTerminal(appt.Status) {
		return nil, NewInvalidTransitionError(fmt.Sprintf("cannot cancel a %s appointment", appt.Status))
	}

	// Primary transition. Abort before any notification fan-out if it fails.
	ok, err := s.Appointments.TransitionStatus(ctx, appointmentID, models.AppointmentCancelled, cancellableFrom)
	if err != nil {
		return nil, NewPersistenceError("failed to cancel appointment", err)
	}
	if !ok {
		return nil, NewInvalidTransitionError("appointment is no longer cancellable")
	}

	report := &Report{AppointmentID: appointmentID, Message: "appointment cancelled"}
	date := appt.LocalDate()

	// Everything past the commit point is best-effort and detached from the
	// caller's context.
	tailCtx, cancel := s.tailContext()
	defer cancel()

	if s.Slots != nil {
		s.Slots.InvalidateSlots(tailCtx, appt.ProfessionalID, date)
	}

	entries, err := s.Waitlist.ListUnnotified(tailCtx, appt.ProfessionalID, date)
	if err != nil {
		report.addStep("waitlist_lookup", err)
		s.Logger.Warn("waitlist lookup failed after cancellation",
			zap.String("appointment_id", appointmentID), zap.Error(err))
		return report, nil
	}
	if len(entries) == 0 {
		report.Message = "appointment cancelled; no one to notify"
		return report, nil
	}

	message := s.freedSlotMessage(tailCtx, appt, date)

	// Resolve each waitlisted client's phone through the account directory and
	// dispatch independently; one slow or failing send must not block another.
	results := make(chan StepResult, len(entries))
	processed := make([]string, 0, len(entries))
	attempted := 0
	var wg sync.WaitGroup
	for _, entry := range entries {
		processed = append(processed, entry.ID)
		client, err := s.Clients.GetByID(tailCtx, entry.ClientID)
		if err != nil {
			results <- StepResult{Name: "contact:" + entry.ClientID, Err: err}
			continue
		}
		if client.Phone == "" {
			results <- StepResult{Name: "contact:" + entry.ClientID, Err: fmt.Errorf("client %s has no phone on file", entry.ClientID)}
			continue
		}
		attempted++
		wg.Add(1)
		go func(phone, entryID string) {
			defer wg.Done()
			results <- StepResult{Name: "notify:" + entryID, Err: s.Messenger.Send(tailCtx, phone, message)}
		}(client.Phone, entry.ID)
	}
	wg.Wait()
	close(results)

	for res := range results {
		report.Steps = append(report.Steps, res)
		if !res.OK() {
			s.Logger.Warn("waitlist notification failed",
				zap.String("appointment_id", appointmentID),
				zap.String("step", res.Name),
				zap.Error(res.Err))
		}
	}

	// One batch mark for every processed entry, whatever the dispatch
	// outcomes. Delivery is best-effort; retrying would risk double-notifying.
	if _, err := s.Waitlist.MarkNotified(tailCtx, processed, time.Now()); err != nil {
		report.addStep("waitlist_mark", err)
		s.Logger.Warn("failed to mark waitlist entries notified",
			zap.String("appointment_id", appointmentID), zap.Error(err))
	}

	report.Notified = attempted
	report.Message = fmt.Sprintf("appointment cancelled; notified %d waitlisted client(s)", attempted)
	return report, nil
}

func (s *DefaultLifecycleService) freedSlotMessage(ctx context.Context, appt *models.Appointment, date string) string {
	name := "your professional"
	if prof, err := s.Professionals.GetByID(ctx, appt.ProfessionalID); err == nil {
		name = prof.Name
	} else {
		s.Logger.Warn("professional lookup failed for waitlist message",
			zap.String("professional_id", appt.ProfessionalID), zap.Error(err))
	}
	return fmt.Sprintf("Good news! A slot with %s on %s just opened up at %s. Book now to grab it.",
		name, date, appt.StartTime.Format("15:04"))
}
