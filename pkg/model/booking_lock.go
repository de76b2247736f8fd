package model

import "time"

// BookingLock is an advisory lock document keyed by venue, date and slot.
// A TTL index on expires_at reaps stale locks left behind by crashed writers.
type BookingLock struct {
	ID        string    `json:"id" bson:"_id"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
