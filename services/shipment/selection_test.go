package shipment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	bidRepo "cargomatch/database/repository/bid"
	shipmentRepo "cargomatch/database/repository/shipment"
	"cargomatch/models"
	"cargomatch/services"
)

// memStore backs both repo mocks so the transactional accept can mutate
// shipments and bids under one lock, like the real session transaction does.
type memStore struct {
	mu        sync.Mutex
	shipments map[string]models.Shipment
	bids      map[string]models.Bid
}

func newMemStore() *memStore {
	return &memStore{
		shipments: make(map[string]models.Shipment),
		bids:      make(map[string]models.Bid),
	}
}

type memShipmentRepo struct{ store *memStore }

func (r *memShipmentRepo) GetByID(id string) (*models.Shipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.shipments[id]
	if !ok {
		return nil, shipmentRepo.ErrNotFound
	}
	return &s, nil
}

func (r *memShipmentRepo) GetByShipperID(shipperID string) ([]models.Shipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.Shipment
	for _, s := range r.store.shipments {
		if s.ShipperID == shipperID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memShipmentRepo) Create(shipment *models.Shipment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.shipments[shipment.ID] = *shipment
	return nil
}

func (r *memShipmentRepo) UpdateStatusIf(id, expected, next string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.shipments[id]
	if !ok || s.Status != expected {
		return shipmentRepo.ErrStateConflict
	}
	s.Status = next
	r.store.shipments[id] = s
	return nil
}

type memBidRepo struct{ store *memStore }

func (r *memBidRepo) GetByID(id string) (*models.Bid, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bids[id]
	if !ok {
		return nil, bidRepo.ErrNotFound
	}
	return &b, nil
}

func (r *memBidRepo) GetByShipmentID(shipmentID string) ([]models.Bid, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.Bid
	for _, b := range r.store.bids {
		if b.ShipmentID == shipmentID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBidRepo) GetByCarrierID(carrierID string) ([]models.Bid, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.Bid
	for _, b := range r.store.bids {
		if b.CarrierID == carrierID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBidRepo) HasPendingBid(shipmentID, carrierID string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, b := range r.store.bids {
		if b.ShipmentID == shipmentID && b.CarrierID == carrierID && b.Status == models.BidPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *memBidRepo) Create(bid *models.Bid) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.bids[bid.ID] = *bid
	return nil
}

func (r *memBidRepo) UpdateStatusIf(id, expected, next string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bids[id]
	if !ok || b.Status != expected {
		return bidRepo.ErrStateConflict
	}
	b.Status = next
	r.store.bids[id] = b
	return nil
}

func (r *memBidRepo) AcceptBidTransactionally(ctx context.Context, shipmentID, bidID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s, ok := r.store.shipments[shipmentID]
	if !ok || s.Status != models.ShipmentOpen {
		return bidRepo.ErrStateConflict
	}
	b, ok := r.store.bids[bidID]
	if !ok || b.ShipmentID != shipmentID || b.Status != models.BidPending {
		return bidRepo.ErrStateConflict
	}

	s.Status = models.ShipmentAssigned
	s.SelectedBidID = bidID
	r.store.shipments[shipmentID] = s

	b.Status = models.BidAccepted
	r.store.bids[bidID] = b

	for id, other := range r.store.bids {
		if id != bidID && other.ShipmentID == shipmentID && other.Status == models.BidPending {
			other.Status = models.BidRejected
			r.store.bids[id] = other
		}
	}
	return nil
}

func newSelectionService(store *memStore) *DefaultShipmentService {
	return &DefaultShipmentService{
		ShipmentRepo: &memShipmentRepo{store: store},
		BidRepo:      &memBidRepo{store: store},
	}
}

func seedShipment(store *memStore, id, shipperID, status string) {
	store.shipments[id] = models.Shipment{
		ID: id, ShipperID: shipperID, Status: status, CreatedAt: time.Now(),
	}
}

func seedBid(store *memStore, id, shipmentID, carrierID, status string) {
	store.bids[id] = models.Bid{
		ID: id, ShipmentID: shipmentID, CarrierID: carrierID,
		TotalPrice: 500, Status: status, CreatedAt: time.Now(),
	}
}

func TestSelectBidCascade(t *testing.T) {
	store := newMemStore()
	seedShipment(store, "s1", "ship-1", models.ShipmentOpen)
	seedBid(store, "bid-1", "s1", "car-1", models.BidPending)
	seedBid(store, "bid-2", "s1", "car-2", models.BidPending)
	seedBid(store, "bid-3", "s1", "car-3", models.BidWithdrawn)
	svc := newSelectionService(store)

	updated, err := svc.SelectBid(context.Background(), "s1", "bid-1", "ship-1")
	if err != nil {
		t.Fatalf("SelectBid failed: %v", err)
	}
	if updated.Status != models.ShipmentAssigned || updated.SelectedBidID != "bid-1" {
		t.Errorf("unexpected shipment after selection: %+v", updated)
	}

	if got := store.bids["bid-1"].Status; got != models.BidAccepted {
		t.Errorf("selected bid: expected ACCEPTED, got %s", got)
	}
	if got := store.bids["bid-2"].Status; got != models.BidRejected {
		t.Errorf("competing pending bid: expected REJECTED, got %s", got)
	}
	// Already-resolved bids are left alone.
	if got := store.bids["bid-3"].Status; got != models.BidWithdrawn {
		t.Errorf("withdrawn bid must not change, got %s", got)
	}
	if got := store.shipments["s1"].Status; got != models.ShipmentAssigned {
		t.Errorf("stored shipment: expected ASSIGNED, got %s", got)
	}
}

func TestSelectBidOnAssignedShipment(t *testing.T) {
	store := newMemStore()
	seedShipment(store, "s1", "ship-1", models.ShipmentAssigned)
	seedBid(store, "bid-1", "s1", "car-1", models.BidPending)
	svc := newSelectionService(store)

	_, err := svc.SelectBid(context.Background(), "s1", "bid-1", "ship-1")
	var ise *services.InvalidStateError
	if !errors.As(err, &ise) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
	if ise.CurrentState != models.ShipmentAssigned {
		t.Errorf("expected current state ASSIGNED in error, got %s", ise.CurrentState)
	}
	// Nothing may have changed.
	if got := store.bids["bid-1"].Status; got != models.BidPending {
		t.Errorf("bid must stay PENDING, got %s", got)
	}
}

func TestSelectBidFromOtherShipment(t *testing.T) {
	store := newMemStore()
	seedShipment(store, "s1", "ship-1", models.ShipmentOpen)
	seedShipment(store, "s2", "ship-1", models.ShipmentOpen)
	seedBid(store, "bid-1", "s2", "car-1", models.BidPending)
	svc := newSelectionService(store)

	_, err := svc.SelectBid(context.Background(), "s1", "bid-1", "ship-1")
	var nf *services.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError for a bid on another shipment, got %v", err)
	}
	if got := store.shipments["s1"].Status; got != models.ShipmentOpen {
		t.Errorf("shipment must stay OPEN, got %s", got)
	}
}

func TestSelectWithdrawnBid(t *testing.T) {
	store := newMemStore()
	seedShipment(store, "s1", "ship-1", models.ShipmentOpen)
	seedBid(store, "bid-1", "s1", "car-1", models.BidWithdrawn)
	svc := newSelectionService(store)

	_, err := svc.SelectBid(context.Background(), "s1", "bid-1", "ship-1")
	var ise *services.InvalidStateError
	if !errors.As(err, &ise) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
	if ise.CurrentState != models.BidWithdrawn {
		t.Errorf("expected current state WITHDRAWN in error, got %s", ise.CurrentState)
	}
}

func TestSelectBidForeignShipperHidden(t *testing.T) {
	store := newMemStore()
	seedShipment(store, "s1", "owner", models.ShipmentOpen)
	seedBid(store, "bid-1", "s1", "car-1", models.BidPending)
	svc := newSelectionService(store)

	_, err := svc.SelectBid(context.Background(), "s1", "bid-1", "intruder")
	var nf *services.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError for a foreign shipment, got %v", err)
	}
}

// conflictBidRepo simulates a writer that beats the selection between the
// service's precondition read and the transaction.
type conflictBidRepo struct {
	memBidRepo
}

func (r *conflictBidRepo) AcceptBidTransactionally(ctx context.Context, shipmentID, bidID string) error {
	r.store.mu.Lock()
	s := r.store.shipments[shipmentID]
	s.Status = models.ShipmentAssigned
	r.store.shipments[shipmentID] = s
	r.store.mu.Unlock()
	return bidRepo.ErrStateConflict
}

func TestSelectBidConflictReportsActualState(t *testing.T) {
	store := newMemStore()
	seedShipment(store, "s1", "ship-1", models.ShipmentOpen)
	seedBid(store, "bid-1", "s1", "car-1", models.BidPending)
	svc := &DefaultShipmentService{
		ShipmentRepo: &memShipmentRepo{store: store},
		BidRepo:      &conflictBidRepo{memBidRepo{store: store}},
	}

	_, err := svc.SelectBid(context.Background(), "s1", "bid-1", "ship-1")
	var ise *services.InvalidStateError
	if !errors.As(err, &ise) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
	if ise.CurrentState != models.ShipmentAssigned {
		t.Errorf("error must report the post-conflict state, got %s", ise.CurrentState)
	}
}

func TestSelectBidConcurrentSingleWinner(t *testing.T) {
	store := newMemStore()
	seedShipment(store, "s1", "ship-1", models.ShipmentOpen)
	seedBid(store, "bid-1", "s1", "car-1", models.BidPending)
	seedBid(store, "bid-2", "s1", "car-2", models.BidPending)
	svc := newSelectionService(store)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, bidID := range []string{"bid-1", "bid-2"} {
		wg.Add(1)
		go func(i int, bidID string) {
			defer wg.Done()
			_, errs[i] = svc.SelectBid(context.Background(), "s1", bidID, "ship-1")
		}(i, bidID)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		var ise *services.InvalidStateError
		if !errors.As(err, &ise) {
			t.Errorf("loser must see InvalidStateError, got %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}

	accepted := 0
	for _, b := range store.bids {
		switch b.Status {
		case models.BidAccepted:
			accepted++
		case models.BidRejected:
		default:
			t.Errorf("bid %s left in state %s", b.ID, b.Status)
		}
	}
	if accepted != 1 {
		t.Errorf("expected exactly one accepted bid, got %d", accepted)
	}
	if got := store.shipments["s1"].Status; got != models.ShipmentAssigned {
		t.Errorf("shipment must end ASSIGNED, got %s", got)
	}
}
