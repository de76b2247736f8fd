package model

import "time"

type Venue struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	OwnerID      string    `json:"owner_id" bson:"owner_id" validate:"required,mongodb"`
	Name         string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Sport        string    `json:"sport" bson:"sport" validate:"required,oneof=football cricket badminton tennis basketball pickleball"`
	City         string    `json:"city" bson:"city" validate:"required,min=2,max=50"`
	Address      string    `json:"address" bson:"address" validate:"required,min=2,max=200"`
	PricePerHour int64     `json:"price_per_hour" bson:"price_per_hour" validate:"required,min=0"`
	OpenTime     string    `json:"open_time" bson:"open_time" validate:"required,clock_time"`
	CloseTime    string    `json:"close_time" bson:"close_time" validate:"required,clock_time"`
	TimeZone     string    `json:"time_zone,omitempty" bson:"time_zone" validate:"omitempty,timezone"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type VenueUpdate struct {
	Name         string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Sport        string  `json:"sport,omitempty" validate:"omitempty,oneof=football cricket badminton tennis basketball pickleball"`
	City         string  `json:"city,omitempty" validate:"omitempty,min=2,max=50"`
	Address      string  `json:"address,omitempty" validate:"omitempty,min=2,max=200"`
	PricePerHour *int64  `json:"price_per_hour,omitempty" validate:"omitempty,min=0"`
	OpenTime     string  `json:"open_time,omitempty" validate:"omitempty,clock_time"`
	CloseTime    string  `json:"close_time,omitempty" validate:"omitempty,clock_time"`
	TimeZone     *string `json:"time_zone,omitempty" validate:"omitempty,timezone"`
}
