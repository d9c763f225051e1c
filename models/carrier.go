package models

import "time"

// Carrier subscription tiers, lowest to highest.
const (
	TierBasic      = "basic"
	TierPro        = "pro"
	TierEnterprise = "enterprise"
)

// Rate is a canonical [0,1] fraction. Upstream systems report success and
// on-time figures either as fractions or as percentages; NewRate normalizes
// exactly once at ingestion so no call site has to guess.
type Rate float64

// NewRate converts a raw value to a canonical Rate. Values above 1 are read
// as percentages; out-of-range results clamp to the nearest boundary.
func NewRate(raw float64) Rate {
	if raw > 1 {
		raw = raw / 100
	}
	if raw < 0 {
		raw = 0
	}
	if raw > 1 {
		raw = 1
	}
	return Rate(raw)
}

// CarrierProfile carries the reputation signals consumed by scoring. It is
// read-only here; an external carrier-management system owns the writes.
type CarrierProfile struct {
	ID                 string    `bson:"id" json:"id"`
	Name               string    `bson:"name" json:"name"`
	Rating             float64   `bson:"rating" json:"rating"`                         // 0-5, one decimal
	OnTimeRate         float64   `bson:"onTimeRate" json:"onTimeRate"`                 // Fraction or percentage; normalize via NewRate
	VerificationCount  int       `bson:"verificationCount" json:"verificationCount"`   // Credentials on file
	FleetSize          int       `bson:"fleetSize" json:"fleetSize"`                   // Number of vehicles
	AvgResponseMinutes float64   `bson:"avgResponseMinutes" json:"avgResponseMinutes"` // 0 means no data yet
	SubscriptionTier   string    `bson:"subscriptionTier" json:"subscriptionTier"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}
