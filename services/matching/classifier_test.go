package matching

import (
	"testing"

	"cargomatch/models"
)

func scoredSet(scores ...float64) []models.ScoredBid {
	bids := make([]models.ScoredBid, len(scores))
	for i, s := range scores {
		bids[i].MatchScore = s
	}
	return bids
}

func TestClassifyTiedMaxAllTopMatch(t *testing.T) {
	// Two objectively equal competitors both win; no artificial single
	// winner is picked.
	bids := scoredSet(85, 85, 70)
	Classify(bids)

	if bids[0].Rank != models.RankTopMatch || bids[1].Rank != models.RankTopMatch {
		t.Errorf("expected both tied bids TOP_MATCH, got %s and %s", bids[0].Rank, bids[1].Rank)
	}
	if bids[2].Rank != models.RankGoodMatch {
		t.Errorf("expected GOOD_MATCH, got %s", bids[2].Rank)
	}
}

func TestClassifyMaxBelowThresholdNoTopMatch(t *testing.T) {
	bids := scoredSet(79.9, 70, 40)
	Classify(bids)

	for _, b := range bids {
		if b.Rank == models.RankTopMatch {
			t.Errorf("no bid should be TOP_MATCH when the max is below 80, got %v", b.MatchScore)
		}
	}
	if bids[0].Rank != models.RankGoodMatch {
		t.Errorf("expected GOOD_MATCH for 79.9, got %s", bids[0].Rank)
	}
	if bids[2].Rank != models.RankStandard {
		t.Errorf("expected STANDARD for 40, got %s", bids[2].Rank)
	}
}

func TestClassifyHighScoreNotAtMaxIsGoodMatch(t *testing.T) {
	// 82 clears the absolute bar but is not the set maximum.
	bids := scoredSet(90, 82)
	Classify(bids)

	if bids[0].Rank != models.RankTopMatch {
		t.Errorf("expected TOP_MATCH for the maximum, got %s", bids[0].Rank)
	}
	if bids[1].Rank != models.RankGoodMatch {
		t.Errorf("expected GOOD_MATCH for 82, got %s", bids[1].Rank)
	}
}

func TestClassifyBoundaries(t *testing.T) {
	bids := scoredSet(80, 65, 64.999)
	Classify(bids)

	if bids[0].Rank != models.RankTopMatch {
		t.Errorf("expected TOP_MATCH at exactly 80, got %s", bids[0].Rank)
	}
	if bids[1].Rank != models.RankGoodMatch {
		t.Errorf("expected GOOD_MATCH at exactly 65, got %s", bids[1].Rank)
	}
	if bids[2].Rank != models.RankStandard {
		t.Errorf("expected STANDARD just under 65, got %s", bids[2].Rank)
	}
}

func TestClassifyEmptySet(t *testing.T) {
	Classify(nil)
	Classify([]models.ScoredBid{})
}
