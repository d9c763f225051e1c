package models

// GeoPoint represents a GeoJSON Point.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`               // Always "Point"
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
}

// TimeWindow bounds a requested pickup or delivery interval.
type TimeWindow struct {
	From string `bson:"from,omitempty" json:"from,omitempty"` // RFC3339 timestamp
	To   string `bson:"to,omitempty" json:"to,omitempty"`     // RFC3339 timestamp
}
