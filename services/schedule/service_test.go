package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	professionalRepo "trimly/database/repository/professional"
	"trimly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProfessionals struct {
	prof *models.Professional
	err  error
}

func (s *stubProfessionals) GetByID(_ context.Context, id string) (*models.Professional, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.prof == nil || s.prof.ID != id {
		return nil, professionalRepo.ErrNotFound
	}
	return s.prof, nil
}

type stubAppointments struct {
	appts []models.Appointment
	err   error
}

func (s *stubAppointments) GetByID(context.Context, string) (*models.Appointment, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAppointments) ListForProfessionalOnDay(_ context.Context, _, _ string, _ []string) ([]models.Appointment, error) {
	return s.appts, s.err
}

func (s *stubAppointments) TransitionStatus(context.Context, string, string, []string) (bool, error) {
	return false, errors.New("not implemented")
}

func (s *stubAppointments) CountCompletedForClient(context.Context, string) (int64, error) {
	return 0, errors.New("not implemented")
}

func (s *stubAppointments) ListDueForReminder(context.Context, time.Time, time.Time) ([]models.Appointment, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAppointments) MarkReminderSent(context.Context, string, time.Time) error {
	return errors.New("not implemented")
}

// mondayProfessional works 09:00-12:00 on Mondays only. 2026-03-02 is a Monday.
func mondayProfessional() *models.Professional {
	prof := &models.Professional{ID: "p1", Name: "Marco"}
	prof.WorkingHours.Days[1] = &models.DaySchedule{Active: true, Start: "09:00", End: "12:00"}
	return prof
}

func TestGetAvailableSlots(t *testing.T) {
	svc := &DefaultAvailabilityService{
		Professionals: &stubProfessionals{prof: mondayProfessional()},
		Appointments: &stubAppointments{appts: []models.Appointment{
			apptAt(models.AppointmentConfirmed, "10:00", "10:30"),
		}},
		Logger: zap.NewNop(),
	}

	slots, err := svc.GetAvailableSlots(context.Background(), "p1", "2026-03-02", 30, 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:00", "11:30"}, slots)
}

func TestGetAvailableSlotsDayOff(t *testing.T) {
	svc := &DefaultAvailabilityService{
		Professionals: &stubProfessionals{prof: mondayProfessional()},
		Appointments:  &stubAppointments{},
		Logger:        zap.NewNop(),
	}

	// 2026-03-03 is a Tuesday; no schedule means no slots, not an error.
	slots, err := svc.GetAvailableSlots(context.Background(), "p1", "2026-03-03", 30, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailableSlotsInvalidDate(t *testing.T) {
	svc := &DefaultAvailabilityService{
		Professionals: &stubProfessionals{prof: mondayProfessional()},
		Appointments:  &stubAppointments{},
		Logger:        zap.NewNop(),
	}

	_, err := svc.GetAvailableSlots(context.Background(), "p1", "03/02/2026", 30, 30)
	assert.Error(t, err)
}

func TestGetAvailableSlotsUnknownProfessional(t *testing.T) {
	svc := &DefaultAvailabilityService{
		Professionals: &stubProfessionals{},
		Appointments:  &stubAppointments{},
		Logger:        zap.NewNop(),
	}

	_, err := svc.GetAvailableSlots(context.Background(), "ghost", "2026-03-02", 30, 30)
	require.Error(t, err)
	assert.True(t, errors.Is(err, professionalRepo.ErrNotFound))
}

func TestGetAvailableSlotsAppointmentFetchFailure(t *testing.T) {
	svc := &DefaultAvailabilityService{
		Professionals: &stubProfessionals{prof: mondayProfessional()},
		Appointments:  &stubAppointments{err: errors.New("cursor timeout")},
		Logger:        zap.NewNop(),
	}

	_, err := svc.GetAvailableSlots(context.Background(), "p1", "2026-03-02", 30, 30)
	assert.Error(t, err)
}
