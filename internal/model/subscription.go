package model

import "time"

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Subscription is one owner's interview credit plan.
// CreditsRemaining is mutated exclusively through the ledger's conditional
// consume/refund updates so 0 <= CreditsRemaining <= CreditsTotal always holds.
type Subscription struct {
	ID               string             `json:"id" bson:"_id"`
	OwnerID          string             `json:"ownerId" bson:"ownerId"`
	PlanName         string             `json:"planName" bson:"planName"`
	CreditsRemaining int                `json:"creditsRemaining" bson:"creditsRemaining"`
	CreditsTotal     int                `json:"creditsTotal" bson:"creditsTotal"`
	Status           SubscriptionStatus `json:"status" bson:"status"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updatedAt"`
}
