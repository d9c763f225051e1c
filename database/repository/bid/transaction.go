package bidRepo

import (
	"context"
	"fmt"
	"time"

	"cargomatch/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AcceptBidTransactionally performs the bid-selection cascade inside a single
// Mongo transaction: target bid PENDING -> ACCEPTED, every other PENDING bid
// on the shipment -> REJECTED, shipment OPEN -> ASSIGNED. Conditional filters
// keyed on the expected states guarantee that a concurrent selection commits
// at most once; the loser aborts with ErrStateConflict.
func (r *MongoBidRepo) AcceptBidTransactionally(ctx context.Context, shipmentID, bidID string) error {
	client := r.bidColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now().UTC()

	txnFn := func(sc mongo.SessionContext) error {
		res, err := r.shipmentColl.UpdateOne(sc,
			bson.M{"id": shipmentID, "status": models.ShipmentOpen},
			bson.M{"$set": bson.M{
				"status":        models.ShipmentAssigned,
				"selectedBidId": bidID,
				"updatedAt":     now,
			}},
		)
		if err != nil {
			return fmt.Errorf("assign shipment failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrStateConflict
		}

		res, err = r.bidColl.UpdateOne(sc,
			bson.M{"id": bidID, "shipmentId": shipmentID, "status": models.BidPending},
			bson.M{"$set": bson.M{"status": models.BidAccepted, "updatedAt": now}},
		)
		if err != nil {
			return fmt.Errorf("accept bid failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrStateConflict
		}

		_, err = r.bidColl.UpdateMany(sc,
			bson.M{"shipmentId": shipmentID, "id": bson.M{"$ne": bidID}, "status": models.BidPending},
			bson.M{"$set": bson.M{"status": models.BidRejected, "updatedAt": now}},
		)
		if err != nil {
			return fmt.Errorf("reject competing bids failed: %w", err)
		}

		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrStateConflict {
			return err
		}
		return fmt.Errorf("bid selection transaction failed: %w", err)
	}

	return nil
}
