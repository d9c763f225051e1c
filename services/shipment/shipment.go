package shipment

import (
	"fmt"
	"time"

	shipmentRepo "cargomatch/database/repository/shipment"
	"cargomatch/models"
	"cargomatch/services"
	"cargomatch/services/matching"

	"github.com/google/uuid"
)

// CreateShipment validates and stores a new shipment in the OPEN state.
func (s *DefaultShipmentService) CreateShipment(shipperID string, shipment *models.Shipment) (*models.Shipment, error) {
	if shipperID == "" {
		return nil, services.NewValidationError("shipperId", "must not be empty")
	}
	if shipment.Route.PickupCity == "" || shipment.Route.DeliveryCity == "" {
		return nil, services.NewValidationError("route", "pickup and delivery city are required")
	}
	if shipment.Cargo.WeightKg < 0 {
		return nil, services.NewValidationError("cargo.weightKg", "must not be negative")
	}

	now := time.Now().UTC()
	shipment.ID = uuid.New().String()
	shipment.ShipperID = shipperID
	shipment.Status = models.ShipmentOpen
	shipment.SelectedBidID = ""
	shipment.CreatedAt = now
	shipment.UpdatedAt = now

	if err := s.ShipmentRepo.Create(shipment); err != nil {
		return nil, fmt.Errorf("failed to create shipment: %w", err)
	}
	return shipment, nil
}

// GetShipment returns a shipment visible to the given shipper.
func (s *DefaultShipmentService) GetShipment(id, shipperID string) (*models.Shipment, error) {
	return s.loadOwned(id, shipperID)
}

// ListShipments returns all shipments posted by the shipper.
func (s *DefaultShipmentService) ListShipments(shipperID string) ([]models.Shipment, error) {
	shipments, err := s.ShipmentRepo.GetByShipperID(shipperID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}
	if shipments == nil {
		shipments = []models.Shipment{}
	}
	return shipments, nil
}

// CancelShipment transitions an OPEN shipment to CANCELLED. There is no
// cascade: outstanding bids stay PENDING until their deadlines expire them,
// and a cancelled shipment can never be assigned.
func (s *DefaultShipmentService) CancelShipment(id, shipperID string) (*models.Shipment, error) {
	shipment, err := s.loadOwned(id, shipperID)
	if err != nil {
		return nil, err
	}
	if shipment.Status != models.ShipmentOpen {
		return nil, services.NewInvalidStateError("shipment", id, shipment.Status, "cancel")
	}

	if err := s.ShipmentRepo.UpdateStatusIf(id, models.ShipmentOpen, models.ShipmentCancelled); err != nil {
		if err == shipmentRepo.ErrStateConflict {
			current, rerr := s.ShipmentRepo.GetByID(id)
			if rerr != nil {
				return nil, fmt.Errorf("failed to reload shipment after conflict: %w", rerr)
			}
			return nil, services.NewInvalidStateError("shipment", id, current.Status, "cancel")
		}
		return nil, fmt.Errorf("failed to cancel shipment: %w", err)
	}

	matching.InvalidateRankingCache(s.CacheClient, id)

	shipment.Status = models.ShipmentCancelled
	return shipment, nil
}

// loadOwned fetches a shipment and hides it from non-owners.
func (s *DefaultShipmentService) loadOwned(id, shipperID string) (*models.Shipment, error) {
	shipment, err := s.ShipmentRepo.GetByID(id)
	if err != nil {
		if err == shipmentRepo.ErrNotFound {
			return nil, services.NewNotFoundError("shipment", id)
		}
		return nil, fmt.Errorf("failed to load shipment: %w", err)
	}
	if shipperID != "" && shipment.ShipperID != shipperID {
		return nil, services.NewNotFoundError("shipment", id)
	}
	return shipment, nil
}
