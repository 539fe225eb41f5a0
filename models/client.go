package models

// Client is a customer record from the account directory. The engine only
// reads identity and contact fields.
type Client struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email,omitempty" json:"email,omitempty"`
	Phone    string `bson:"phone,omitempty" json:"phone,omitempty"`
	FCMToken string `bson:"fcm_token,omitempty" json:"fcm_token,omitempty"`
}
