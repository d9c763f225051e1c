package matching

import "cargomatch/models"

// Tier thresholds on the [0,100] score scale.
const (
	topMatchThreshold  = 80.0
	goodMatchThreshold = 65.0
)

// Classify populates the rank tier on each scored bid, using the whole bid
// set for relative context. TOP_MATCH requires both clearing the absolute
// threshold and being tied at the set maximum; every bid tied at the max
// wins, so an objectively equal competitor is never spuriously demoted.
// Callers must pass eligible bids only; withdrawn and expired bids never
// reach classification.
func Classify(bids []models.ScoredBid) {
	if len(bids) == 0 {
		return
	}

	max := bids[0].MatchScore
	for _, b := range bids[1:] {
		if b.MatchScore > max {
			max = b.MatchScore
		}
	}

	for i := range bids {
		score := bids[i].MatchScore
		switch {
		case score >= topMatchThreshold && score == max:
			bids[i].Rank = models.RankTopMatch
		case score >= goodMatchThreshold:
			bids[i].Rank = models.RankGoodMatch
		default:
			bids[i].Rank = models.RankStandard
		}
	}
}
