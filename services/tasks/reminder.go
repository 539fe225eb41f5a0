package tasks

import (
	"context"
	"fmt"
	"time"

	appointmentRepo "trimly/database/repository/appointment"
	clientRepo "trimly/database/repository/client"
	"trimly/services/notification"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeReminderSweep = "reminder:sweep"

// NewReminderSweepTask builds the periodic sweep task. The sweep carries no
// payload; it re-derives its window from the clock when it runs.
func NewReminderSweepTask() *asynq.Task {
	return asynq.NewTask(TypeReminderSweep, nil)
}

// ReminderSweeper is the read-and-notify job behind the sweep task: load the
// confirmed appointments entering the send-ahead window, message each client
// once, stamp reminder_sent_at.
type ReminderSweeper struct {
	Appointments appointmentRepo.AppointmentRepository
	Clients      clientRepo.ClientRepository
	Push         notification.Messenger
	SMS          notification.Messenger
	AheadWindow  time.Duration
	Logger       *zap.Logger
}

func (s *ReminderSweeper) Run(ctx context.Context, _ *asynq.Task) error {
	now := time.Now()
	appts, err := s.Appointments.ListDueForReminder(ctx, now, now.Add(s.AheadWindow))
	if err != nil {
		return fmt.Errorf("reminder sweep: %w", err)
	}

	for _, appt := range appts {
		client, err := s.Clients.GetByID(ctx, appt.ClientID)
		if err != nil {
			s.Logger.Warn("reminder sweep: client lookup failed",
				zap.String("appointment_id", appt.ID), zap.Error(err))
			continue
		}

		messenger := s.Push
		to := client.FCMToken
		if to == "" {
			messenger = s.SMS
			to = client.Phone
		}
		if to == "" {
			s.Logger.Warn("reminder sweep: client has no reachable address",
				zap.String("client_id", client.ID))
			continue
		}

		message := fmt.Sprintf("Reminder: you have an appointment on %s at %s.",
			appt.LocalDate(), appt.StartTime.Format("15:04"))
		if err := messenger.Send(ctx, to, message); err != nil {
			s.Logger.Warn("reminder sweep: send failed",
				zap.String("appointment_id", appt.ID), zap.Error(err))
			continue
		}
		// Stamp only after a successful send so an unreachable client gets
		// retried on the next sweep.
		if err := s.Appointments.MarkReminderSent(ctx, appt.ID, time.Now()); err != nil {
			s.Logger.Warn("reminder sweep: failed to mark reminder sent",
				zap.String("appointment_id", appt.ID), zap.Error(err))
		}
	}
	return nil
}
