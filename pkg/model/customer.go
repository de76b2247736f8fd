package model

import "time"

type Customer struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name         string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Phone        string    `json:"phone" bson:"phone" validate:"required,e164"`
	ReferralCode string    `json:"referral_code,omitempty" bson:"referral_code" validate:"omitempty,uuid4"`
	ReferredBy   string    `json:"referred_by,omitempty" bson:"referred_by,omitempty" validate:"omitempty,mongodb"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type CustomerUpdate struct {
	Name  string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone string `json:"phone,omitempty" validate:"omitempty,e164"`
}

// ReferralSummary is computed on demand from already-fetched documents.
// A referral qualifies once the referred customer has at least one completed
// booking.
type ReferralSummary struct {
	CustomerID         string `json:"customer_id"`
	ReferredCount      int    `json:"referred_count"`
	QualifiedReferrals int    `json:"qualified_referrals"`
	RewardPoints       int    `json:"reward_points"`
	Tier               string `json:"tier"`
}
