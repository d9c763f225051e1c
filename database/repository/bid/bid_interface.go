package bidRepo

import (
	"context"
	"errors"

	"cargomatch/models"
)

// ErrNotFound is returned when no bid matches the query.
var ErrNotFound = errors.New("bid not found")

// ErrStateConflict is returned when a conditional update matched no document,
// i.e. the bid or its shipment was not in the expected state.
var ErrStateConflict = errors.New("bid not in expected state")

// BidRepository defines methods for bid data access.
type BidRepository interface {
	// GetByID retrieves a bid by its unique ID.
	GetByID(id string) (*models.Bid, error)
	// GetByShipmentID retrieves all bids placed against a shipment.
	GetByShipmentID(shipmentID string) ([]models.Bid, error)
	// GetByCarrierID retrieves all bids placed by a carrier.
	GetByCarrierID(carrierID string) ([]models.Bid, error)
	// HasPendingBid reports whether the carrier already has a PENDING bid
	// on the shipment.
	HasPendingBid(shipmentID, carrierID string) (bool, error)
	// Create inserts a new bid record.
	Create(bid *models.Bid) error
	// UpdateStatusIf transitions the status only when the current status
	// matches the expected one; ErrStateConflict otherwise.
	UpdateStatusIf(id, expected, next string) error
	// AcceptBidTransactionally atomically accepts the target bid, rejects
	// every other PENDING bid on the shipment, and marks the shipment
	// ASSIGNED. Either all three effects happen or none do.
	AcceptBidTransactionally(ctx context.Context, shipmentID, bidID string) error
}
