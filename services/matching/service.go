package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	bidRepo "cargomatch/database/repository/bid"
	carrierRepo "cargomatch/database/repository/carrier"
	shipmentRepo "cargomatch/database/repository/shipment"
	"cargomatch/models"
	"cargomatch/services"
	"cargomatch/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// MatchingService defines methods to rank a shipment's bids.
type MatchingService interface {
	RankBids(shipmentID, shipperID string) (*models.RankedBidsResult, error)
}

// DefaultMatchingService is our robust implementation.
type DefaultMatchingService struct {
	ShipmentRepo shipmentRepo.ShipmentRepository
	BidRepo      bidRepo.BidRepository
	CarrierRepo  carrierRepo.CarrierRepository
	CacheClient  *redis.Client // optional; nil disables caching
	Weights      Weights
	CacheTTL     time.Duration
}

// rankCacheKey builds the Redis key for a shipment's cached ranking.
func rankCacheKey(shipmentID string) string {
	return fmt.Sprintf("rank:%s", shipmentID)
}

// InvalidateRankingCache drops the cached ranking for a shipment. Called by
// every bid and shipment transition so a ranking never mixes pre- and
// post-transition states.
func InvalidateRankingCache(client *redis.Client, shipmentID string) {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Del(ctx, rankCacheKey(shipmentID)).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate ranking cache",
			zap.String("shipmentId", shipmentID), zap.Error(err))
	}
}

// RankBids scores, ranks and aggregates all eligible bids for one shipment.
// It first attempts to retrieve the result from cache; if not found, it
// computes the ranking and caches it. "No bids yet" is a valid, displayable
// result, not an error.
func (s *DefaultMatchingService) RankBids(shipmentID, shipperID string) (*models.RankedBidsResult, error) {
	shipment, err := s.ShipmentRepo.GetByID(shipmentID)
	if err != nil {
		if err == shipmentRepo.ErrNotFound {
			return nil, services.NewNotFoundError("shipment", shipmentID)
		}
		return nil, fmt.Errorf("failed to load shipment: %w", err)
	}
	// Ownership is pre-validated upstream; a shipment that belongs to a
	// different shipper is simply not visible to this caller.
	if shipperID != "" && shipment.ShipperID != shipperID {
		return nil, services.NewNotFoundError("shipment", shipmentID)
	}

	ctx := context.Background()
	cacheKey := rankCacheKey(shipmentID)

	if s.CacheClient != nil {
		cached, err := s.CacheClient.Get(ctx, cacheKey).Result()
		if err == nil && cached != "" {
			var result models.RankedBidsResult
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return &result, nil
			}
			// If unmarshal fails, we fall through to re-computation.
		}
	}

	// Single read per call: all bids come from one snapshot.
	allBids, err := s.BidRepo.GetByShipmentID(shipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bids: %w", err)
	}

	eligible := make([]models.Bid, 0, len(allBids))
	carrierIDs := make([]string, 0, len(allBids))
	seen := make(map[string]bool)
	for _, b := range allBids {
		if !b.Eligible() {
			continue
		}
		eligible = append(eligible, b)
		if !seen[b.CarrierID] {
			seen[b.CarrierID] = true
			carrierIDs = append(carrierIDs, b.CarrierID)
		}
	}

	result := &models.RankedBidsResult{
		Shipment: *shipment,
		Bids:     []models.ScoredBid{},
	}
	if len(eligible) == 0 {
		result.Stats = Aggregate(nil)
		return result, nil
	}

	profiles, err := s.CarrierRepo.GetByIDs(carrierIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load carrier profiles: %w", err)
	}

	scorer := NewScorer(s.Weights)
	prices := NewPriceContext(eligible)

	scored := make([]models.ScoredBid, 0, len(eligible))
	for _, bid := range eligible {
		var profile *models.CarrierProfile
		if p, ok := profiles[bid.CarrierID]; ok {
			profile = &p
		}
		score, insights := scorer.Score(bid, profile, prices)
		scored = append(scored, models.ScoredBid{
			Bid:        bid,
			MatchScore: score,
			Insights:   insights,
		})
	}

	// Score descending; equal scores keep first-come precedence.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].MatchScore != scored[j].MatchScore {
			return scored[i].MatchScore > scored[j].MatchScore
		}
		return scored[i].Bid.CreatedAt.Before(scored[j].Bid.CreatedAt)
	})

	Classify(scored)
	result.Bids = scored
	result.Stats = Aggregate(scored)

	if s.CacheClient != nil && s.CacheTTL > 0 {
		if data, err := json.Marshal(result); err == nil {
			s.CacheClient.Set(ctx, cacheKey, data, s.CacheTTL)
		}
	}

	return result, nil
}
