package models

// Professional is a bookable staff member. Working hours are mutated only
// through the professional-management screens, never by this engine.
type Professional struct {
	ID           string             `bson:"id" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	LocationID   string             `bson:"location_id,omitempty" json:"location_id,omitempty"`
	WorkingHours WorkingHoursConfig `bson:"working_hours" json:"working_hours"`
}
