package bid

import (
	"fmt"
	"time"

	bidRepo "cargomatch/database/repository/bid"
	shipmentRepo "cargomatch/database/repository/shipment"
	"cargomatch/models"
	"cargomatch/services"
	"cargomatch/services/matching"
	"cargomatch/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExpiryScheduler enqueues a deferred expiry task for a bid. Implemented by
// the asynq-backed worker package; nil disables deadline expiry.
type ExpiryScheduler interface {
	ScheduleExpiry(bidID string, at time.Time) error
}

// BidService defines the carrier-facing bid operations plus the time-driven
// expiry transition invoked by the background worker.
type BidService interface {
	PlaceBid(carrierID string, bid *models.Bid) (*models.Bid, error)
	GetBid(id string) (*models.Bid, error)
	ListCarrierBids(carrierID string) ([]models.Bid, error)
	WithdrawBid(bidID, carrierID string) (*models.Bid, error)
	ExpireBid(bidID string) error
}

// DefaultBidService implements BidService.
type DefaultBidService struct {
	BidRepo      bidRepo.BidRepository
	ShipmentRepo shipmentRepo.ShipmentRepository
	CacheClient  *redis.Client // optional; ranking cache invalidation
	Scheduler    ExpiryScheduler
}

// PlaceBid records a carrier's offer against an OPEN shipment.
func (s *DefaultBidService) PlaceBid(carrierID string, bid *models.Bid) (*models.Bid, error) {
	if carrierID == "" {
		return nil, services.NewValidationError("carrierId", "must not be empty")
	}
	if bid.TotalPrice <= 0 {
		return nil, services.NewValidationError("totalPrice", "must be positive")
	}

	shipment, err := s.ShipmentRepo.GetByID(bid.ShipmentID)
	if err != nil {
		if err == shipmentRepo.ErrNotFound {
			return nil, services.NewNotFoundError("shipment", bid.ShipmentID)
		}
		return nil, fmt.Errorf("failed to load shipment: %w", err)
	}
	if shipment.Status != models.ShipmentOpen {
		return nil, services.NewInvalidStateError("shipment", shipment.ID, shipment.Status, "bid on")
	}

	exists, err := s.BidRepo.HasPendingBid(bid.ShipmentID, carrierID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing bids: %w", err)
	}
	if exists {
		return nil, services.NewValidationError("carrierId", "carrier already has a pending bid on this shipment")
	}

	now := time.Now().UTC()
	bid.ID = uuid.New().String()
	bid.CarrierID = carrierID
	bid.Status = models.BidPending
	bid.CreatedAt = now
	bid.UpdatedAt = now

	if err := s.BidRepo.Create(bid); err != nil {
		return nil, fmt.Errorf("failed to create bid: %w", err)
	}

	if s.Scheduler != nil && !bid.ExpiresAt.IsZero() {
		if err := s.Scheduler.ScheduleExpiry(bid.ID, bid.ExpiresAt); err != nil {
			// The bid stands even if scheduling fails; the deadline sweep
			// is best-effort and the failure is surfaced in the logs.
			utils.GetLogger().Warn("failed to schedule bid expiry",
				zap.String("bidId", bid.ID), zap.Error(err))
		}
	}

	matching.InvalidateRankingCache(s.CacheClient, bid.ShipmentID)
	return bid, nil
}

// GetBid retrieves one bid.
func (s *DefaultBidService) GetBid(id string) (*models.Bid, error) {
	b, err := s.BidRepo.GetByID(id)
	if err != nil {
		if err == bidRepo.ErrNotFound {
			return nil, services.NewNotFoundError("bid", id)
		}
		return nil, fmt.Errorf("failed to load bid: %w", err)
	}
	return b, nil
}

// ListCarrierBids returns all bids placed by a carrier, newest first.
func (s *DefaultBidService) ListCarrierBids(carrierID string) ([]models.Bid, error) {
	bids, err := s.BidRepo.GetByCarrierID(carrierID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}
	if bids == nil {
		bids = []models.Bid{}
	}
	return bids, nil
}

// WithdrawBid retracts a PENDING bid while its shipment is still OPEN. No
// cascading effect on the shipment or other bids. Any confirmation step is
// a UI-layer gate in front of this contract.
func (s *DefaultBidService) WithdrawBid(bidID, carrierID string) (*models.Bid, error) {
	b, err := s.BidRepo.GetByID(bidID)
	if err != nil {
		if err == bidRepo.ErrNotFound {
			return nil, services.NewNotFoundError("bid", bidID)
		}
		return nil, fmt.Errorf("failed to load bid: %w", err)
	}
	if carrierID != "" && b.CarrierID != carrierID {
		return nil, services.NewNotFoundError("bid", bidID)
	}
	if b.Status != models.BidPending {
		return nil, services.NewInvalidStateError("bid", bidID, b.Status, "withdraw")
	}

	shipment, err := s.ShipmentRepo.GetByID(b.ShipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shipment: %w", err)
	}
	if shipment.Status != models.ShipmentOpen {
		return nil, services.NewInvalidStateError("shipment", shipment.ID, shipment.Status, "withdraw bid from")
	}

	if err := s.BidRepo.UpdateStatusIf(bidID, models.BidPending, models.BidWithdrawn); err != nil {
		if err == bidRepo.ErrStateConflict {
			current, rerr := s.BidRepo.GetByID(bidID)
			if rerr != nil {
				return nil, fmt.Errorf("failed to reload bid after conflict: %w", rerr)
			}
			return nil, services.NewInvalidStateError("bid", bidID, current.Status, "withdraw")
		}
		return nil, fmt.Errorf("failed to withdraw bid: %w", err)
	}

	matching.InvalidateRankingCache(s.CacheClient, b.ShipmentID)

	b.Status = models.BidWithdrawn
	return b, nil
}

// ExpireBid transitions a PENDING bid past its deadline to EXPIRED. The
// operation is idempotent: a bid that is already EXPIRED, or was resolved
// by selection or withdrawal before the deadline fired, is a no-op, not an
// error.
func (s *DefaultBidService) ExpireBid(bidID string) error {
	b, err := s.BidRepo.GetByID(bidID)
	if err != nil {
		if err == bidRepo.ErrNotFound {
			return services.NewNotFoundError("bid", bidID)
		}
		return fmt.Errorf("failed to load bid: %w", err)
	}
	if b.Status != models.BidPending {
		return nil
	}

	if err := s.BidRepo.UpdateStatusIf(bidID, models.BidPending, models.BidExpired); err != nil {
		if err == bidRepo.ErrStateConflict {
			// Lost a race against selection or withdrawal; the bid is
			// already resolved, which is exactly what expiry wants.
			return nil
		}
		return fmt.Errorf("failed to expire bid: %w", err)
	}

	matching.InvalidateRankingCache(s.CacheClient, b.ShipmentID)
	return nil
}
