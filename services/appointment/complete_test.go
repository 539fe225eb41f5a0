package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"trimly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type workflowFixture struct {
	svc          *DefaultLifecycleService
	appointments *fakeAppointments
	clients      *fakeClients
	services     *fakeServices
	ledger       *fakeLedger
	loyalty      *fakeLoyalty
	referrals    *fakeReferrals
	waitlist     *fakeWaitlist
	messenger    *fakeMessenger
	slots        *fakeSlotCache
}

func newWorkflowFixture(appts ...*models.Appointment) *workflowFixture {
	f := &workflowFixture{
		appointments: newFakeAppointments(appts...),
		clients: &fakeClients{clients: map[string]*models.Client{
			"c1": {ID: "c1", Name: "Jane Doe", Email: "jane@example.com", Phone: "+15550001"},
		}},
		services: &fakeServices{services: map[string]models.Service{
			"s1": {ID: "s1", OwnerID: "p1", Name: "Haircut", Price: 20, DurationMinutes: 30},
			"s2": {ID: "s2", OwnerID: "p1", Name: "Beard Trim", Price: 15, DurationMinutes: 15},
		}},
		ledger:    &fakeLedger{},
		loyalty:   newFakeLoyalty(),
		referrals: newFakeReferrals(),
		waitlist:  &fakeWaitlist{},
		messenger: newFakeMessenger(),
		slots:     &fakeSlotCache{},
	}
	f.svc = &DefaultLifecycleService{
		Appointments: f.appointments,
		Professionals: &fakeProfessionals{profs: map[string]*models.Professional{
			"p1": {ID: "p1", Name: "Marco"},
		}},
		Clients:           f.clients,
		Services:          f.services,
		Ledger:            f.ledger,
		Loyalty:           f.loyalty,
		Referrals:         f.referrals,
		Waitlist:          f.waitlist,
		Messenger:         f.messenger,
		Slots:             f.slots,
		Logger:            zap.NewNop(),
		SideEffectTimeout: time.Second,
	}
	return f
}

func confirmedAppointment(id string) *models.Appointment {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)
	return &models.Appointment{
		ID:             id,
		ProfessionalID: "p1",
		ClientID:       "c1",
		ServiceIDs:     []string{"s1", "s2"},
		LocationID:     "loc1",
		StartTime:      start,
		EndTime:        start.Add(45 * time.Minute),
		Status:         models.AppointmentConfirmed,
	}
}

func TestCompleteHappyPath(t *testing.T) {
	f := newWorkflowFixture(confirmedAppointment("a1"))

	report, err := f.svc.Complete(context.Background(), "a1")
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.False(t, report.AlreadyDone)
	assert.Equal(t, "appointment completed", report.Message)
	assert.Empty(t, report.FailedSteps())

	stored, err := f.appointments.GetByID(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentDone, stored.Status)

	require.Len(t, f.ledger.entries, 1)
	entry := f.ledger.entries[0]
	assert.Equal(t, models.LedgerInflow, entry.Type)
	assert.Equal(t, 35.0, entry.Amount)
	assert.Equal(t, "p1", entry.OwnerID)
	assert.Equal(t, "a1", entry.AppointmentID)
	assert.Equal(t, "Haircut + Beard Trim - Jane Doe", entry.Description)

	assert.Equal(t, 1, f.loyalty.counts["p1/c1"])
	assert.Equal(t, []string{"p1/2026-03-02"}, f.slots.invalidated)
}

func TestCompleteTwiceIsIdempotent(t *testing.T) {
	f := newWorkflowFixture(confirmedAppointment("a1"))

	_, err := f.svc.Complete(context.Background(), "a1")
	require.NoError(t, err)

	report, err := f.svc.Complete(context.Background(), "a1")
	require.NoError(t, err)
	assert.True(t, report.AlreadyDone)
	assert.Equal(t, "appointment already completed", report.Message)

	// The cascade must not re-run: exactly one ledger entry and one loyalty
	// increment for any number of completion calls.
	assert.Len(t, f.ledger.entries, 1)
	assert.Equal(t, 1, f.loyalty.counts["p1/c1"])
}

func TestCompleteFromPending(t *testing.T) {
	appt := confirmedAppointment("a1")
	appt.Status = models.AppointmentPending
	f := newWorkflowFixture(appt)

	report, err := f.svc.Complete(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "appointment completed", report.Message)
	assert.Len(t, f.ledger.entries, 1)
}

func TestCompleteCancelledAppointment(t *testing.T) {
	appt := confirmedAppointment("a1")
	appt.Status = models.AppointmentCancelled
	f := newWorkflowFixture(appt)

	_, err := f.svc.Complete(context.Background(), "a1")
	require.Error(t, err)
	assert.True(t, IsInvalidTransition(err))
	assert.Empty(t, f.ledger.entries)
}

func TestCompleteUnknownAppointment(t *testing.T) {
	f := newWorkflowFixture()

	_, err := f.svc.Complete(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestCompleteMissingServiceReference(t *testing.T) {
	appt := confirmedAppointment("a1")
	appt.ServiceIDs = []string{"s1", "ghost"}
	f := newWorkflowFixture(appt)

	_, err := f.svc.Complete(context.Background(), "a1")
	require.Error(t, err)
	assert.True(t, IsIntegrityError(err))

	// No money may move on a broken reference.
	assert.Empty(t, f.ledger.entries)
	assert.Empty(t, f.loyalty.counts)
}

func TestCompleteMissingClientReference(t *testing.T) {
	appt := confirmedAppointment("a1")
	appt.ClientID = "ghost"
	f := newWorkflowFixture(appt)

	_, err := f.svc.Complete(context.Background(), "a1")
	require.Error(t, err)
	assert.True(t, IsIntegrityError(err))
	assert.Empty(t, f.ledger.entries)
}

func TestCompleteTransitionPersistenceError(t *testing.T) {
	f := newWorkflowFixture(confirmedAppointment("a1"))
	f.appointments.transitionErr = errors.New("primary stepped down")

	_, err := f.svc.Complete(context.Background(), "a1")
	require.Error(t, err)
	assert.True(t, IsPersistenceError(err))
	assert.Empty(t, f.ledger.entries)
}

func TestCompleteLedgerFailureSurfaces(t *testing.T) {
	f := newWorkflowFixture(confirmedAppointment("a1"))
	f.ledger.err = errors.New("write concern timeout")

	report, err := f.svc.Complete(context.Background(), "a1")
	require.Error(t, err)
	assert.True(t, IsPersistenceError(err))
	require.NotNil(t, report)

	// The transition already committed; the caller learns billing failed.
	stored, _ := f.appointments.GetByID(context.Background(), "a1")
	assert.Equal(t, models.AppointmentDone, stored.Status)
	assert.Empty(t, f.loyalty.counts)
}

func TestCompleteLoyaltyFailureIsSwallowed(t *testing.T) {
	f := newWorkflowFixture(confirmedAppointment("a1"))
	f.loyalty.err = errors.New("counter unavailable")

	report, err := f.svc.Complete(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "appointment completed", report.Message)
	assert.Len(t, f.ledger.entries, 1)

	failed := report.FailedSteps()
	require.Len(t, failed, 1)
	assert.Equal(t, "loyalty", failed[0].Name)
}

func TestCompleteResolvesReferralOnFirstCompletion(t *testing.T) {
	f := newWorkflowFixture(confirmedAppointment("a1"))
	f.referrals = newFakeReferrals(&models.Referral{
		ID: "r1", OwnerID: "p1", Email: "jane@example.com", Status: models.ReferralPending,
	})
	f.svc.Referrals = f.referrals

	_, err := f.svc.Complete(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, f.referrals.completed)
}

func TestCompleteSkipsReferralOnLaterCompletions(t *testing.T) {
	earlier := confirmedAppointment("a0")
	earlier.Status = models.AppointmentDone
	f := newWorkflowFixture(earlier, confirmedAppointment("a1"))
	f.referrals = newFakeReferrals(&models.Referral{
		ID: "r1", OwnerID: "p1", Email: "jane@example.com", Status: models.ReferralPending,
	})
	f.svc.Referrals = f.referrals

	// The client already has a completed appointment, so this completion is not
	// the 0 -> 1 moment and the referral stays pending.
	_, err := f.svc.Complete(context.Background(), "a1")
	require.NoError(t, err)
	assert.Empty(t, f.referrals.completed)
}

func TestCompleteWithoutPendingReferral(t *testing.T) {
	f := newWorkflowFixture(confirmedAppointment("a1"))

	report, err := f.svc.Complete(context.Background(), "a1")
	require.NoError(t, err)
	assert.Empty(t, report.FailedSteps())
	assert.Empty(t, f.referrals.completed)
}
