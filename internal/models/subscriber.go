package models

import "time"

// Subscriber is a newsletter subscription. Email is unique and lower-cased.
type Subscriber struct {
	ID        string    `json:"id" bson:"_id"`
	Email     string    `json:"email" bson:"email"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
