package carrierRepo

import (
	"errors"

	"cargomatch/models"
)

// ErrNotFound is returned when no carrier profile matches the query.
var ErrNotFound = errors.New("carrier profile not found")

// CarrierRepository defines methods for carrier profile data access. Profiles
// are written by the external carrier-management system; this service only
// reads them, plus an upsert used by operations tooling.
type CarrierRepository interface {
	// GetByID retrieves a carrier profile by its unique ID.
	GetByID(id string) (*models.CarrierProfile, error)
	// GetByIDs retrieves profiles for a set of carrier IDs, keyed by ID.
	// Missing carriers are simply absent from the map, not an error.
	GetByIDs(ids []string) (map[string]models.CarrierProfile, error)
	// Upsert creates or replaces a carrier profile record.
	Upsert(profile *models.CarrierProfile) error
}
