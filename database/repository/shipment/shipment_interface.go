package shipmentRepo

import (
	"errors"

	"cargomatch/models"
)

// ErrNotFound is returned when no shipment matches the query.
var ErrNotFound = errors.New("shipment not found")

// ErrStateConflict is returned when a conditional status update matched no
// document, i.e. the shipment was not in the expected state.
var ErrStateConflict = errors.New("shipment not in expected state")

// ShipmentRepository defines methods for shipment data access.
type ShipmentRepository interface {
	// GetByID retrieves a shipment by its unique ID.
	GetByID(id string) (*models.Shipment, error)
	// GetByShipperID retrieves all shipments posted by a shipper.
	GetByShipperID(shipperID string) ([]models.Shipment, error)
	// Create inserts a new shipment record.
	Create(shipment *models.Shipment) error
	// UpdateStatusIf transitions the status only when the current status
	// matches the expected one; ErrStateConflict otherwise.
	UpdateStatusIf(id, expected, next string) error
}
