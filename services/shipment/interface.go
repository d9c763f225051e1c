package shipment

import (
	"context"

	bidRepo "cargomatch/database/repository/bid"
	shipmentRepo "cargomatch/database/repository/shipment"
	"cargomatch/models"

	"github.com/go-redis/redis/v8"
)

// ShipmentService defines the shipper-facing shipment operations, including
// the one-way bid-selection transition.
type ShipmentService interface {
	CreateShipment(shipperID string, shipment *models.Shipment) (*models.Shipment, error)
	GetShipment(id, shipperID string) (*models.Shipment, error)
	ListShipments(shipperID string) ([]models.Shipment, error)
	CancelShipment(id, shipperID string) (*models.Shipment, error)
	SelectBid(ctx context.Context, shipmentID, bidID, shipperID string) (*models.Shipment, error)
}

// DefaultShipmentService implements ShipmentService.
type DefaultShipmentService struct {
	ShipmentRepo shipmentRepo.ShipmentRepository
	BidRepo      bidRepo.BidRepository
	CacheClient  *redis.Client // optional; ranking cache invalidation

	locks selectionLocks
}
