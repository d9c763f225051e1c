package matching

import (
	"math"

	"cargomatch/models"
)

// Confidence sample-size thresholds: price-range and average-score estimates
// are statistically weak with few samples, and the label says so instead of
// presenting false precision.
const (
	highConfidenceBids   = 5
	mediumConfidenceBids = 2
)

// Aggregate computes the per-shipment matching statistics from the classified
// bid set. Callers pass eligible bids only.
func Aggregate(bids []models.ScoredBid) models.MatchingStats {
	stats := models.MatchingStats{
		TotalBids:  len(bids),
		Confidence: confidenceFor(len(bids)),
	}
	if len(bids) == 0 {
		return stats
	}

	sum := 0.0
	pr := models.PriceRange{Min: bids[0].Bid.TotalPrice, Max: bids[0].Bid.TotalPrice}
	for _, b := range bids {
		sum += b.MatchScore
		switch b.Rank {
		case models.RankTopMatch:
			stats.TopMatches++
		case models.RankGoodMatch:
			stats.GoodMatches++
		default:
			stats.StandardMatches++
		}
		if b.Bid.TotalPrice < pr.Min {
			pr.Min = b.Bid.TotalPrice
		}
		if b.Bid.TotalPrice > pr.Max {
			pr.Max = b.Bid.TotalPrice
		}
	}

	// Mean at full precision, rounded only for display.
	stats.AverageScore = int(math.Round(sum / float64(len(bids))))
	stats.PriceRange = &pr
	return stats
}

func confidenceFor(totalBids int) string {
	switch {
	case totalBids >= highConfidenceBids:
		return models.ConfidenceHigh
	case totalBids >= mediumConfidenceBids:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
