package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	appointmentRepo "trimly/database/repository/appointment"
	clientRepo "trimly/database/repository/client"
	referralRepo "trimly/database/repository/referral"
	"trimly/models"

	"go.uber.org/zap"
)

// Complete drives the completion cascade for a single appointment: the
// authoritative status transition, the ledger inflow, then the best-effort
// loyalty and referral bookkeeping.
func (s *DefaultLifecycleService) Complete(ctx context.Context, appointmentID string) (*Report, error) {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, NewNotFoundError(fmt.Sprintf("appointment %s not found", appointmentID))
		}
		return nil, NewPersistenceError("failed to load appointment", err)
	}

	report := &Report{AppointmentID: appointmentID}

	// Re-entrant completion is a success no-op. The trigger may fire more than
	// once for the same event, and a repeat must not re-run any side effects.
	if appt.Status == models.AppointmentDone {
		report.AlreadyDone = true
		report.Message = "appointment already completed"
		return report, nil
	}
	if appt.Status == models.AppointmentCancelled {
		return nil, NewInvalidTransitionError("cannot complete a cancelled appointment")
	}

	// Primary transition. The conditional write is the correctness mechanism:
	// of two concurrent completions only one can match the filter, so only one
	// cascade runs.
	ok, err := s.Appointments.TransitionStatus(ctx, appointmentID, models.AppointmentDone, completableFrom)
	if err != nil {
		return nil, NewPersistenceError("failed to complete appointment", err)
	}
	if !ok {
		current, reloadErr := s.Appointments.GetByID(ctx, appointmentID)
		if reloadErr == nil && current.Status == models.AppointmentDone {
			report.AlreadyDone = true
			report.Message = "appointment already completed"
			return report, nil
		}
		return nil, NewInvalidTransitionError("appointment is no longer completable")
	}

	// Billing. The appointment cannot be monetized without its service and
	// client records; missing either is a hard error even though the status
	// transition has already committed.
	services, err := s.Services.GetByIDs(ctx, appt.ServiceIDs)
	if err != nil {
		return report, NewPersistenceError("failed to resolve services", err)
	}
	if len(services) == 0 || len(services) != len(appt.ServiceIDs) {
		return report, NewIntegrityError(fmt.Sprintf("appointment %s references missing services", appointmentID))
	}
	client, err := s.Clients.GetByID(ctx, appt.ClientID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrNotFound) {
			return report, NewIntegrityError(fmt.Sprintf("appointment %s references a missing client", appointmentID))
		}
		return report, NewPersistenceError("failed to resolve client", err)
	}

	var amount float64
	names := make([]string, 0, len(services))
	for _, svc := range services {
		amount += svc.Price
		names = append(names, svc.Name)
	}
	entry := &models.LedgerEntry{
		OwnerID:       appt.ProfessionalID,
		LocationID:    appt.LocationID,
		Type:          models.LedgerInflow,
		Amount:        amount,
		Description:   fmt.Sprintf("%s - %s", strings.Join(names, " + "), client.Name),
		AppointmentID: appt.ID,
	}
	if err := s.Ledger.Create(ctx, entry); err != nil {
		return report, NewPersistenceError("failed to record ledger entry", err)
	}

	// Best-effort tail. Loyalty and referral bookkeeping run concurrently on a
	// detached context; their failures are logged and reported, never surfaced.
	// Financial correctness outranks gamification bookkeeping.
	tailCtx, cancel := s.tailContext()
	defer cancel()

	results := make(chan StepResult, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := s.Loyalty.Increment(tailCtx, appt.ProfessionalID, appt.ClientID)
		results <- StepResult{Name: "loyalty", Err: err}
	}()
	go func() {
		defer wg.Done()
		results <- StepResult{Name: "referral", Err: s.resolveReferral(tailCtx, appt, client)}
	}()
	wg.Wait()
	close(results)

	for res := range results {
		report.Steps = append(report.Steps, res)
		if !res.OK() {
			s.Logger.Warn("completion side effect failed",
				zap.String("appointment_id", appointmentID),
				zap.String("step", res.Name),
				zap.Error(res.Err))
		}
	}

	if s.Slots != nil {
		s.Slots.InvalidateSlots(tailCtx, appt.ProfessionalID, appt.LocalDate())
	}

	report.Message = "appointment completed"
	return report, nil
}

// resolveReferral completes a pending referral for the client's email iff this
// is the client's first-ever completed appointment. The done count is taken
// after the transition committed, so "exactly 1" pins the moment the count
// went from 0 to 1.
func (s *DefaultLifecycleService) resolveReferral(ctx context.Context, appt *models.Appointment, client *models.Client) error {
	if client.Email == "" {
		return nil
	}
	ref, err := s.Referrals.FindPendingByEmail(ctx, appt.ProfessionalID, client.Email)
	if err != nil {
		if errors.Is(err, referralRepo.ErrNotFound) {
			return nil
		}
		return err
	}
	count, err := s.Appointments.CountCompletedForClient(ctx, appt.ClientID)
	if err != nil {
		return err
	}
	if count != 1 {
		return nil
	}
	if _, err := s.Referrals.Complete(ctx, ref.ID, appt.ClientID); err != nil {
		return err
	}
	return nil
}
