package appointment

import (
	"context"
	"sync"
	"time"

	appointmentRepo "trimly/database/repository/appointment"
	clientRepo "trimly/database/repository/client"
	professionalRepo "trimly/database/repository/professional"
	referralRepo "trimly/database/repository/referral"
	"trimly/models"
)

// In-memory collaborator fakes used by the workflow tests.

type fakeAppointments struct {
	mu            sync.Mutex
	appts         map[string]*models.Appointment
	transitionErr error
	loadErr       error
}

func newFakeAppointments(appts ...*models.Appointment) *fakeAppointments {
	f := &fakeAppointments{appts: make(map[string]*models.Appointment)}
	for _, a := range appts {
		f.appts[a.ID] = a
	}
	return f
}

func (f *fakeAppointments) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	a, ok := f.appts[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointments) ListForProfessionalOnDay(_ context.Context, professionalID, date string, statuses []string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.ProfessionalID != professionalID || a.LocalDate() != date {
			continue
		}
		for _, st := range statuses {
			if a.Status == st {
				out = append(out, *a)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeAppointments) TransitionStatus(_ context.Context, id, toStatus string, allowedFrom []string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.transitionErr != nil {
		return false, f.transitionErr
	}
	a, ok := f.appts[id]
	if !ok {
		return false, nil
	}
	for _, from := range allowedFrom {
		if a.Status == from {
			a.Status = toStatus
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAppointments) CountCompletedForClient(_ context.Context, clientID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, a := range f.appts {
		if a.ClientID == clientID && a.Status == models.AppointmentDone {
			n++
		}
	}
	return n, nil
}

func (f *fakeAppointments) ListDueForReminder(_ context.Context, from, to time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.Status != models.AppointmentConfirmed || a.ReminderSentAt != nil {
			continue
		}
		if !a.StartTime.Before(from) && a.StartTime.Before(to) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointments) MarkReminderSent(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.appts[id]; ok {
		a.ReminderSentAt = &at
	}
	return nil
}

type fakeProfessionals struct {
	profs map[string]*models.Professional
}

func (f *fakeProfessionals) GetByID(_ context.Context, id string) (*models.Professional, error) {
	p, ok := f.profs[id]
	if !ok {
		return nil, professionalRepo.ErrNotFound
	}
	return p, nil
}

type fakeClients struct {
	clients map[string]*models.Client
	err     error
}

func (f *fakeClients) GetByID(_ context.Context, id string) (*models.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.clients[id]
	if !ok {
		return nil, clientRepo.ErrNotFound
	}
	return c, nil
}

type fakeServices struct {
	services map[string]models.Service
}

func (f *fakeServices) GetByIDs(_ context.Context, ids []string) ([]models.Service, error) {
	var out []models.Service
	for _, id := range ids {
		if s, ok := f.services[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeLedger struct {
	mu      sync.Mutex
	entries []*models.LedgerEntry
	err     error
}

func (f *fakeLedger) Create(_ context.Context, entry *models.LedgerEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

type fakeLoyalty struct {
	mu     sync.Mutex
	counts map[string]int
	err    error
}

func newFakeLoyalty() *fakeLoyalty {
	return &fakeLoyalty{counts: make(map[string]int)}
}

func (f *fakeLoyalty) Increment(_ context.Context, ownerID, clientID string) (*models.LoyaltyCounter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	key := ownerID + "/" + clientID
	f.counts[key]++
	return &models.LoyaltyCounter{OwnerID: ownerID, ClientID: clientID, Completed: f.counts[key]}, nil
}

func (f *fakeLoyalty) Get(_ context.Context, ownerID, clientID string) (*models.LoyaltyCounter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &models.LoyaltyCounter{OwnerID: ownerID, ClientID: clientID, Completed: f.counts[ownerID+"/"+clientID]}, nil
}

type fakeReferrals struct {
	mu        sync.Mutex
	pending   map[string]*models.Referral // key: ownerID + "/" + email
	completed []string
	err       error
}

func newFakeReferrals(refs ...*models.Referral) *fakeReferrals {
	f := &fakeReferrals{pending: make(map[string]*models.Referral)}
	for _, r := range refs {
		f.pending[r.OwnerID+"/"+r.Email] = r
	}
	return f
}

func (f *fakeReferrals) FindPendingByEmail(_ context.Context, ownerID, email string) (*models.Referral, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.pending[ownerID+"/"+email]
	if !ok || r.Status != models.ReferralPending {
		return nil, referralRepo.ErrNotFound
	}
	return r, nil
}

func (f *fakeReferrals) Complete(_ context.Context, referralID, clientID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.pending {
		if r.ID == referralID && r.Status == models.ReferralPending {
			r.Status = models.ReferralCompleted
			r.ClientID = clientID
			f.completed = append(f.completed, referralID)
			return true, nil
		}
	}
	return false, nil
}

type fakeWaitlist struct {
	mu        sync.Mutex
	entries   []models.WaitlistEntry
	marked    []string
	markCalls int
	listErr   error
	markErr   error
}

func (f *fakeWaitlist) ListUnnotified(_ context.Context, professionalID, date string) ([]models.WaitlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.WaitlistEntry
	for _, e := range f.entries {
		if e.ProfessionalID == professionalID && e.Date == date && e.NotifiedAt == nil {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeWaitlist) MarkNotified(_ context.Context, ids []string, at time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markCalls++
	if f.markErr != nil {
		return 0, f.markErr
	}
	var n int64
	for i := range f.entries {
		for _, id := range ids {
			if f.entries[i].ID == id && f.entries[i].NotifiedAt == nil {
				stamped := at
				f.entries[i].NotifiedAt = &stamped
				f.marked = append(f.marked, id)
				n++
			}
		}
	}
	return n, nil
}

type sentMessage struct {
	To      string
	Message string
}

type fakeMessenger struct {
	mu      sync.Mutex
	sent    []sentMessage
	failFor map[string]error
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{failFor: make(map[string]error)}
}

func (f *fakeMessenger) Send(_ context.Context, to, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[to]; ok {
		return err
	}
	f.sent = append(f.sent, sentMessage{To: to, Message: message})
	return nil
}

type fakeSlotCache struct {
	mu          sync.Mutex
	invalidated []string
}

func (f *fakeSlotCache) InvalidateSlots(_ context.Context, professionalID, date string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, professionalID+"/"+date)
}
