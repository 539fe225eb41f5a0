package models

import "time"

// Referral status values.
const (
	ReferralPending   = "pending"
	ReferralCompleted = "completed"
)

// Referral records an invitation sent to a prospective client. It completes at
// most once, on the referred client's first completed appointment.
type Referral struct {
	ID          string     `bson:"id" json:"id"`
	OwnerID     string     `bson:"owner_id" json:"owner_id"`
	Email       string     `bson:"email" json:"email"`
	Status      string     `bson:"status" json:"status"`
	ClientID    string     `bson:"client_id,omitempty" json:"client_id,omitempty"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
}
