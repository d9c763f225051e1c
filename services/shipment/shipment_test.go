package shipment

import (
	"errors"
	"testing"

	"cargomatch/models"
	"cargomatch/services"
)

func validShipmentInput() *models.Shipment {
	return &models.Shipment{
		Route: models.Route{
			PickupCity: "Rotterdam", PickupCountry: "NL",
			DeliveryCity: "Hamburg", DeliveryCountry: "DE",
		},
		Cargo: models.Cargo{Type: "pallets", WeightKg: 12000},
	}
}

func TestCreateShipmentDefaults(t *testing.T) {
	store := newMemStore()
	svc := newSelectionService(store)

	created, err := svc.CreateShipment("ship-1", validShipmentInput())
	if err != nil {
		t.Fatalf("CreateShipment failed: %v", err)
	}
	if created.ID == "" {
		t.Error("expected a generated ID")
	}
	if created.Status != models.ShipmentOpen {
		t.Errorf("expected OPEN, got %s", created.Status)
	}
	if created.ShipperID != "ship-1" {
		t.Errorf("expected shipperId ship-1, got %s", created.ShipperID)
	}
	if created.SelectedBidID != "" {
		t.Errorf("new shipment must not carry a selected bid, got %s", created.SelectedBidID)
	}
	if _, ok := store.shipments[created.ID]; !ok {
		t.Error("shipment not persisted")
	}
}

func TestCreateShipmentValidation(t *testing.T) {
	svc := newSelectionService(newMemStore())

	noRoute := validShipmentInput()
	noRoute.Route.DeliveryCity = ""
	badWeight := validShipmentInput()
	badWeight.Cargo.WeightKg = -1

	cases := []struct {
		name      string
		shipperID string
		input     *models.Shipment
	}{
		{"missing shipper", "", validShipmentInput()},
		{"missing delivery city", "ship-1", noRoute},
		{"negative weight", "ship-1", badWeight},
	}
	for _, c := range cases {
		_, err := svc.CreateShipment(c.shipperID, c.input)
		var ve *services.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%s: expected ValidationError, got %v", c.name, err)
		}
	}
}

func TestListShipmentsEmpty(t *testing.T) {
	svc := newSelectionService(newMemStore())

	shipments, err := svc.ListShipments("ship-1")
	if err != nil {
		t.Fatalf("ListShipments failed: %v", err)
	}
	if shipments == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(shipments) != 0 {
		t.Errorf("expected no shipments, got %d", len(shipments))
	}
}

func TestCancelShipment(t *testing.T) {
	store := newMemStore()
	seedShipment(store, "s1", "ship-1", models.ShipmentOpen)
	svc := newSelectionService(store)

	cancelled, err := svc.CancelShipment("s1", "ship-1")
	if err != nil {
		t.Fatalf("CancelShipment failed: %v", err)
	}
	if cancelled.Status != models.ShipmentCancelled {
		t.Errorf("expected CANCELLED, got %s", cancelled.Status)
	}
	if got := store.shipments["s1"].Status; got != models.ShipmentCancelled {
		t.Errorf("stored shipment: expected CANCELLED, got %s", got)
	}
}

func TestCancelAssignedShipment(t *testing.T) {
	store := newMemStore()
	seedShipment(store, "s1", "ship-1", models.ShipmentAssigned)
	svc := newSelectionService(store)

	_, err := svc.CancelShipment("s1", "ship-1")
	var ise *services.InvalidStateError
	if !errors.As(err, &ise) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
	if ise.CurrentState != models.ShipmentAssigned {
		t.Errorf("expected current state ASSIGNED in error, got %s", ise.CurrentState)
	}
}

func TestGetShipmentHidesForeign(t *testing.T) {
	store := newMemStore()
	seedShipment(store, "s1", "owner", models.ShipmentOpen)
	svc := newSelectionService(store)

	_, err := svc.GetShipment("s1", "intruder")
	var nf *services.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if _, err := svc.GetShipment("s1", "owner"); err != nil {
		t.Errorf("owner must see the shipment, got %v", err)
	}
}
