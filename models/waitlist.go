package models

import "time"

// WaitlistEntry is a client waiting for a freed slot with a professional on a
// given date. Once notified it is never re-notified for the same freed slot.
type WaitlistEntry struct {
	ID             string     `bson:"id" json:"id"`
	ProfessionalID string     `bson:"professional_id" json:"professional_id"`
	ClientID       string     `bson:"client_id" json:"client_id"`
	Date           string     `bson:"date" json:"date"` // "YYYY-MM-DD"
	NotifiedAt     *time.Time `bson:"notified_at,omitempty" json:"notified_at,omitempty"`
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
}
