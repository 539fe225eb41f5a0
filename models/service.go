package models

// Service is a bookable offering; duration and price are resolved from here
// when an appointment is billed.
type Service struct {
	ID              string  `bson:"id" json:"id"`
	OwnerID         string  `bson:"owner_id" json:"owner_id"`
	Name            string  `bson:"name" json:"name"`
	Price           float64 `bson:"price" json:"price"`
	DurationMinutes int     `bson:"duration_minutes" json:"duration_minutes"`
}
