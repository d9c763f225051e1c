package models

import "time"

// Shipment lifecycle states.
const (
	ShipmentOpen      = "OPEN"
	ShipmentAssigned  = "ASSIGNED"
	ShipmentCancelled = "CANCELLED"
)

// Route describes the pickup and delivery ends of a shipment.
type Route struct {
	PickupCity      string    `bson:"pickupCity" json:"pickupCity"`
	PickupCountry   string    `bson:"pickupCountry" json:"pickupCountry"`
	PickupGeo       *GeoPoint `bson:"pickupGeo,omitempty" json:"pickupGeo,omitempty"`
	DeliveryCity    string    `bson:"deliveryCity" json:"deliveryCity"`
	DeliveryCountry string    `bson:"deliveryCountry" json:"deliveryCountry"`
	DeliveryGeo     *GeoPoint `bson:"deliveryGeo,omitempty" json:"deliveryGeo,omitempty"`
}

// Cargo describes what is being moved.
type Cargo struct {
	Type        string  `bson:"type" json:"type"`               // e.g., "pallets", "refrigerated"
	WeightKg    float64 `bson:"weightKg" json:"weightKg"`       // Gross weight in kilograms
	Description string  `bson:"description" json:"description"` // Free text
}

// Shipment is a shipper's posted load. Once a bid is accepted the record is
// mutated only by the selection transition.
type Shipment struct {
	ID             string     `bson:"id" json:"id"`
	ShipperID      string     `bson:"shipperId" json:"shipperId"`
	Route          Route      `bson:"route" json:"route"`
	Cargo          Cargo      `bson:"cargo" json:"cargo"`
	PickupWindow   TimeWindow `bson:"pickupWindow" json:"pickupWindow"`
	DeliveryWindow TimeWindow `bson:"deliveryWindow" json:"deliveryWindow"`
	Status         string     `bson:"status" json:"status"`
	SelectedBidID  string     `bson:"selectedBidId,omitempty" json:"selectedBidId,omitempty"`
	CreatedAt      time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time  `bson:"updatedAt" json:"updatedAt"`
}
