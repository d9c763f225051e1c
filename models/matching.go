package models

// Rank tiers assigned by the classifier.
const (
	RankTopMatch  = "TOP_MATCH"
	RankGoodMatch = "GOOD_MATCH"
	RankStandard  = "STANDARD"
)

// Confidence labels for aggregate statistics, driven by sample size.
const (
	ConfidenceLow    = "LOW"
	ConfidenceMedium = "MEDIUM"
	ConfidenceHigh   = "HIGH"
)

// ScoredBid is a bid joined with its computed match score, rank tier and
// explanation strings. It is a view recomputed on every ranking request,
// never persisted.
type ScoredBid struct {
	Bid        Bid      `json:"bid"`
	MatchScore float64  `json:"matchScore"` // 0-100
	Rank       string   `json:"rank"`
	Insights   []string `json:"insights"` // Ordered by contribution, largest first
}

// PriceRange is the min/max of totalPrice over eligible bids.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// MatchingStats aggregates a shipment's scored bid set.
type MatchingStats struct {
	TotalBids       int         `json:"totalBids"`
	TopMatches      int         `json:"topMatches"`
	GoodMatches     int         `json:"goodMatches"`
	StandardMatches int         `json:"standardMatches"`
	AverageScore    int         `json:"averageScore"` // Rounded for display; computed at full precision
	PriceRange      *PriceRange `json:"priceRange,omitempty"`
	Confidence      string      `json:"confidence"`
}

// RankedBidsResult is the ranking response consumed by the shipper-facing
// selection UI.
type RankedBidsResult struct {
	Shipment Shipment      `json:"shipment"`
	Bids     []ScoredBid   `json:"bids"`
	Stats    MatchingStats `json:"matchingStats"`
}
