package model

import (
	"time"
)

type Booking struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	VenueID       string    `json:"venue_id" bson:"venue_id" validate:"required,mongodb"`
	CustomerID    string    `json:"customer_id,omitempty" bson:"customer_id,omitempty" validate:"omitempty,mongodb"`
	Date          time.Time `json:"date" bson:"date" validate:"required"`
	TimeSlot      string    `json:"time_slot" bson:"time_slot" validate:"required,clock_time"`
	DurationMin   int       `json:"duration_min" bson:"duration_min" validate:"required,min=15,max=480"`
	Amount        int64     `json:"amount" bson:"amount" validate:"min=0"`
	PaymentMethod string    `json:"payment_method" bson:"payment_method" validate:"required,oneof=cash card upi netbanking wallet"`
	Status        string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed completed cancelled"`
	NoShow        bool      `json:"no_show" bson:"no_show" validate:"omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type BookingUpdate struct {
	Date          *time.Time `json:"date,omitempty" validate:"omitempty"`
	TimeSlot      string     `json:"time_slot,omitempty" validate:"omitempty,clock_time"`
	DurationMin   *int       `json:"duration_min,omitempty" validate:"omitempty,min=15,max=480"`
	Amount        *int64     `json:"amount,omitempty" validate:"omitempty,min=0"`
	PaymentMethod string     `json:"payment_method,omitempty" validate:"omitempty,oneof=cash card upi netbanking wallet"`
	Status        string     `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	NoShow        *bool      `json:"no_show,omitempty" validate:"omitempty"`
}
