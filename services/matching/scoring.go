package matching

import (
	"sort"

	"cargomatch/config"
	"cargomatch/models"
)

// Weights holds the per-factor scoring weights. They must sum to 1.0, since
// the tier thresholds in the classifier assume a [0,100] score scale.
type Weights struct {
	Price          float64
	Rating         float64
	OnTime         float64
	Verification   float64
	Responsiveness float64
	Tier           float64
}

// DefaultWeights returns the reputation-weighted default deployment weights.
func DefaultWeights() Weights {
	return Weights{
		Price:          0.15,
		Rating:         0.30,
		OnTime:         0.25,
		Verification:   0.12,
		Responsiveness: 0.10,
		Tier:           0.08,
	}
}

// WeightsFromConfig reads the deployed weights from the loaded configuration.
func WeightsFromConfig() Weights {
	cfg := config.AppConfig
	w := Weights{
		Price:          cfg.WeightPrice,
		Rating:         cfg.WeightRating,
		OnTime:         cfg.WeightOnTime,
		Verification:   cfg.WeightVerification,
		Responsiveness: cfg.WeightResponsiveness,
		Tier:           cfg.WeightTier,
	}
	if w.Price+w.Rating+w.OnTime+w.Verification+w.Responsiveness+w.Tier == 0 {
		return DefaultWeights()
	}
	return w
}

const (
	// verificationCapacity caps the verification-depth factor; credentials
	// beyond this count add nothing.
	verificationCapacity = 5

	// priceEpsilon guards the spread division when all bids are priced equally.
	priceEpsilon = 1e-9

	// Notability thresholds for insight generation.
	notableRating    = 4.5
	notableOnTime    = 0.9
	notablePriceBand = 0.05 // within 5% of the shipment minimum
	notableResponse  = 30.0 // minutes
	notableFleet     = 20
)

// PriceContext carries the shipment-level price statistics a single bid is
// scored against.
type PriceContext struct {
	Min    float64
	Spread float64
}

// NewPriceContext derives the price context from a shipment's eligible bids.
func NewPriceContext(bids []models.Bid) PriceContext {
	pc := PriceContext{}
	first := true
	max := 0.0
	for _, b := range bids {
		price := clamp01Price(b.TotalPrice)
		if first {
			pc.Min, max = price, price
			first = false
			continue
		}
		if price < pc.Min {
			pc.Min = price
		}
		if price > max {
			max = price
		}
	}
	pc.Spread = max - pc.Min
	return pc
}

// Scorer computes match scores. It is pure and safe for concurrent use.
type Scorer struct {
	weights Weights
}

// NewScorer creates a Scorer with the given weights.
func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w}
}

// contribution pairs a candidate insight with the weighted points the factor
// contributed, so insights can be ordered by decision relevance.
type contribution struct {
	insight string
	points  float64
	notable bool
}

// Score computes the match score in [0,100] for one bid, plus its insights
// ordered by contribution magnitude. Deterministic: identical inputs yield
// identical output. A nil profile is treated as all-minimum signals.
func (s *Scorer) Score(bid models.Bid, profile *models.CarrierProfile, prices PriceContext) (float64, []string) {
	if profile == nil {
		profile = &models.CarrierProfile{}
	}

	priceScore := priceCompetitiveness(clamp01Price(bid.TotalPrice), prices)
	ratingScore := clamp(profile.Rating, 0, 5) / 5.0
	onTime := float64(models.NewRate(profile.OnTimeRate))
	verifScore := verificationDepth(profile.VerificationCount)
	respScore := responseBucket(profile.AvgResponseMinutes)
	tierScore := tierBonus(profile.SubscriptionTier, profile.FleetSize)

	contribs := []contribution{
		{
			insight: "highly competitive price",
			points:  s.weights.Price * priceScore,
			notable: prices.Min > 0 && clamp01Price(bid.TotalPrice) <= prices.Min*(1+notablePriceBand),
		},
		{
			insight: "top-rated carrier",
			points:  s.weights.Rating * ratingScore,
			notable: profile.Rating >= notableRating,
		},
		{
			insight: "excellent on-time record",
			points:  s.weights.OnTime * onTime,
			notable: onTime >= notableOnTime,
		},
		{
			insight: "fully verified carrier",
			points:  s.weights.Verification * verifScore,
			notable: profile.VerificationCount >= verificationCapacity,
		},
		{
			insight: "fast response time",
			points:  s.weights.Responsiveness * respScore,
			notable: profile.AvgResponseMinutes > 0 && profile.AvgResponseMinutes <= notableResponse,
		},
		{
			insight: "premium carrier tier",
			points:  s.weights.Tier * tierScore,
			notable: profile.SubscriptionTier == models.TierEnterprise || profile.FleetSize >= notableFleet,
		},
	}

	total := 0.0
	for _, c := range contribs {
		total += c.points
	}

	// Largest contribution first; the fixed factor order above breaks ties,
	// keeping insight order deterministic.
	sort.SliceStable(contribs, func(i, j int) bool {
		return contribs[i].points > contribs[j].points
	})

	var insights []string
	for _, c := range contribs {
		if c.notable {
			insights = append(insights, c.insight)
		}
	}

	return clamp(total*100, 0, 100), insights
}

// priceCompetitiveness maps a bid price to [0,1]: the cheapest bid scores 1.
// With no spread (single bid, or all bids priced equally) every bid scores 1.
func priceCompetitiveness(price float64, prices PriceContext) float64 {
	if prices.Spread <= priceEpsilon {
		return 1.0
	}
	return clamp(1-(price-prices.Min)/prices.Spread, 0, 1)
}

// verificationDepth applies diminishing returns beyond the capacity cap.
func verificationDepth(count int) float64 {
	if count < 0 {
		count = 0
	}
	if count > verificationCapacity {
		count = verificationCapacity
	}
	return float64(count) / verificationCapacity
}

// responseBucket maps average response minutes to a score bucket. Bucketing
// avoids rewarding noise in the response-time statistic. Zero means no data.
func responseBucket(minutes float64) float64 {
	switch {
	case minutes <= 0:
		return 0
	case minutes <= 15:
		return 1.0
	case minutes <= 60:
		return 0.8
	case minutes <= 240:
		return 0.6
	case minutes <= 720:
		return 0.4
	default:
		return 0.2
	}
}

// tierBonus combines subscription tier and fleet size into one capped
// secondary signal.
func tierBonus(tier string, fleetSize int) float64 {
	var sub float64
	switch tier {
	case models.TierEnterprise:
		sub = 1.0
	case models.TierPro:
		sub = 0.6
	case models.TierBasic:
		sub = 0.2
	}
	fleet := clamp(float64(fleetSize)/25.0, 0, 1)
	return 0.7*sub + 0.3*fleet
}

// clamp01Price treats out-of-range prices as their nearest valid boundary, so
// one malformed bid degrades gracefully instead of failing the ranking call.
func clamp01Price(price float64) float64 {
	if price < 0 {
		return 0
	}
	return price
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
