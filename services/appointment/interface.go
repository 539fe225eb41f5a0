package appointment

import (
	"context"
	"time"

	appointmentRepo "trimly/database/repository/appointment"
	clientRepo "trimly/database/repository/client"
	ledgerRepo "trimly/database/repository/ledger"
	loyaltyRepo "trimly/database/repository/loyalty"
	professionalRepo "trimly/database/repository/professional"
	referralRepo "trimly/database/repository/referral"
	serviceRepo "trimly/database/repository/service"
	waitlistRepo "trimly/database/repository/waitlist"
	"trimly/services/notification"

	"go.uber.org/zap"
)

// LifecycleService drives an appointment through completion and cancellation,
// including the dependent side-effect cascades.
type LifecycleService interface {
	Complete(ctx context.Context, appointmentID string) (*Report, error)
	Cancel(ctx context.Context, appointmentID string) (*Report, error)
}

// SlotCache lets the workflows drop stale availability results once a
// transition commits.
type SlotCache interface {
	InvalidateSlots(ctx context.Context, professionalID, date string)
}

// DefaultLifecycleService is the production implementation.
type DefaultLifecycleService struct {
	Appointments  appointmentRepo.AppointmentRepository
	Professionals professionalRepo.ProfessionalRepository
	Clients       clientRepo.ClientRepository
	Services      serviceRepo.ServiceRepository
	Ledger        ledgerRepo.LedgerRepository
	Loyalty       loyaltyRepo.LoyaltyRepository
	Referrals     referralRepo.ReferralRepository
	Waitlist      waitlistRepo.WaitlistRepository
	Messenger     notification.Messenger
	Slots         SlotCache
	Logger        *zap.Logger

	// SideEffectTimeout bounds each collaborator call in the post-commit tail.
	SideEffectTimeout time.Duration
}

func (s *DefaultLifecycleService) tailTimeout() time.Duration {
	if s.SideEffectTimeout > 0 {
		return s.SideEffectTimeout
	}
	return 10 * time.Second
}

// tailContext detaches the best-effort cascade from the caller's context.
// Once the primary transition has committed the cascade runs to completion;
// a caller-side abort can no longer stop it, because half-applied side
// effects are worse than slightly delayed ones.
func (s *DefaultLifecycleService) tailContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.tailTimeout())
}
