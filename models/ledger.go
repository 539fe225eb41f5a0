package models

import "time"

// Ledger entry types.
const (
	LedgerInflow  = "inflow"
	LedgerOutflow = "outflow"
)

// LedgerEntry is a financial movement on a professional's account. Inflow
// entries are created by the completion workflow; outflow entries come from
// manual financial screens.
type LedgerEntry struct {
	ID            string    `bson:"id" json:"id"`
	OwnerID       string    `bson:"owner_id" json:"owner_id"`
	LocationID    string    `bson:"location_id,omitempty" json:"location_id,omitempty"`
	Type          string    `bson:"type" json:"type"`
	Amount        float64   `bson:"amount" json:"amount"`
	Description   string    `bson:"description" json:"description"`
	AppointmentID string    `bson:"appointment_id,omitempty" json:"appointment_id,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}
