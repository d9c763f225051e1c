package shipment

import (
	"context"
	"fmt"
	"sync"

	bidRepo "cargomatch/database/repository/bid"
	"cargomatch/models"
	"cargomatch/services"
	"cargomatch/services/matching"
	"cargomatch/utils"

	"go.uber.org/zap"
)

// selectionLocks holds a map of shipment IDs to their mutexes so concurrent
// selections on the same shipment serialize while distinct shipments proceed
// independently.
type selectionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// get returns the mutex for a shipment, creating one if it doesn't exist.
func (s *selectionLocks) get(shipmentID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locks == nil {
		s.locks = make(map[string]*sync.Mutex)
	}
	lock, exists := s.locks[shipmentID]
	if !exists {
		lock = &sync.Mutex{}
		s.locks[shipmentID] = lock
	}
	return lock
}

// SelectBid finalizes the shipment/carrier pairing. Preconditions: the
// shipment is OPEN and the target bid is a PENDING bid on that shipment.
// The effect is atomic: the bid becomes ACCEPTED, every other PENDING bid
// on the shipment becomes REJECTED, and the shipment becomes ASSIGNED, or
// nothing changes at all. The transition is one-way; reversal is an
// administrative action outside this service.
func (s *DefaultShipmentService) SelectBid(ctx context.Context, shipmentID, bidID, shipperID string) (*models.Shipment, error) {
	lock := s.locks.get(shipmentID)
	lock.Lock()
	defer lock.Unlock()

	shipment, err := s.loadOwned(shipmentID, shipperID)
	if err != nil {
		return nil, err
	}
	if shipment.Status != models.ShipmentOpen {
		return nil, services.NewInvalidStateError("shipment", shipmentID, shipment.Status, "select bid on")
	}

	bid, err := s.BidRepo.GetByID(bidID)
	if err != nil {
		if err == bidRepo.ErrNotFound {
			return nil, services.NewNotFoundError("bid", bidID)
		}
		return nil, fmt.Errorf("failed to load bid: %w", err)
	}
	if bid.ShipmentID != shipmentID {
		return nil, services.NewNotFoundError("bid", bidID)
	}
	if bid.Status != models.BidPending {
		return nil, services.NewInvalidStateError("bid", bidID, bid.Status, "accept")
	}

	if err := s.BidRepo.AcceptBidTransactionally(ctx, shipmentID, bidID); err != nil {
		if err == bidRepo.ErrStateConflict {
			// A concurrent transition won the race; report the state the
			// caller actually faces now.
			current, rerr := s.ShipmentRepo.GetByID(shipmentID)
			if rerr != nil {
				return nil, fmt.Errorf("failed to reload shipment after conflict: %w", rerr)
			}
			return nil, services.NewInvalidStateError("shipment", shipmentID, current.Status, "select bid on")
		}
		return nil, fmt.Errorf("failed to select bid: %w", err)
	}

	matching.InvalidateRankingCache(s.CacheClient, shipmentID)

	// Carrier notification on rejection is an external collaborator's job;
	// the transition itself is only logged here.
	utils.GetLogger().Info("bid selected",
		zap.String("shipmentId", shipmentID),
		zap.String("bidId", bidID),
		zap.String("carrierId", bid.CarrierID))

	shipment.Status = models.ShipmentAssigned
	shipment.SelectedBidID = bidID
	return shipment, nil
}
