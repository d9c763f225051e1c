package models

import "time"

// Bid lifecycle states.
const (
	BidPending   = "PENDING"
	BidAccepted  = "ACCEPTED"
	BidRejected  = "REJECTED"
	BidWithdrawn = "WITHDRAWN"
	BidExpired   = "EXPIRED"
)

// Bid is a carrier's priced offer against an open shipment. At most one
// ACCEPTED bid may exist per shipment.
type Bid struct {
	ID                string    `bson:"id" json:"id"`
	ShipmentID        string    `bson:"shipmentId" json:"shipmentId"`
	CarrierID         string    `bson:"carrierId" json:"carrierId"`
	TotalPrice        float64   `bson:"totalPrice" json:"totalPrice"` // Offer in the platform currency
	VehicleType       string    `bson:"vehicleType" json:"vehicleType"`
	EstimatedPickup   string    `bson:"estimatedPickup,omitempty" json:"estimatedPickup,omitempty"`     // RFC3339
	EstimatedDelivery string    `bson:"estimatedDelivery,omitempty" json:"estimatedDelivery,omitempty"` // RFC3339
	Notes             string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Status            string    `bson:"status" json:"status"`
	ExpiresAt         time.Time `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Eligible reports whether the bid still counts for ranking and aggregates.
func (b *Bid) Eligible() bool {
	return b.Status != BidWithdrawn && b.Status != BidExpired
}
