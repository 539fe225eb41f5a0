package models

import "time"

// LoyaltyCounter tracks completed appointments per (owner, client) pair.
// The count only ever goes up; the engine never decrements it.
type LoyaltyCounter struct {
	OwnerID   string    `bson:"owner_id" json:"owner_id"`
	ClientID  string    `bson:"client_id" json:"client_id"`
	Completed int       `bson:"completed" json:"completed"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Tier derives the client's current tier and the threshold of the next reward
// from the configured thresholds (ascending). Tier 0 means below the first
// threshold; nextReward is 0 once every threshold has been passed.
func (c *LoyaltyCounter) Tier(thresholds []int) (tier int, nextReward int) {
	for _, t := range thresholds {
		if c.Completed >= t {
			tier++
			continue
		}
		return tier, t
	}
	return tier, 0
}
