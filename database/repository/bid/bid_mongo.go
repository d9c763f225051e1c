package bidRepo

import (
	"context"
	"fmt"
	"time"

	"cargomatch/config"
	"cargomatch/database"
	"cargomatch/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBidRepo implements BidRepository using MongoDB.
type MongoBidRepo struct {
	bidColl      *mongo.Collection
	shipmentColl *mongo.Collection
}

// NewMongoBidRepo creates a new instance of BidRepository using MongoDB.
func NewMongoBidRepo() BidRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoBidRepo{
		bidColl:      db.Collection("bids"),
		shipmentColl: db.Collection("shipments"),
	}
}

func (r *MongoBidRepo) GetByID(id string) (*models.Bid, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var bid models.Bid
	if err := r.bidColl.FindOne(ctx, bson.M{"id": id}).Decode(&bid); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch bid with id %s: %w", id, err)
	}
	return &bid, nil
}

func (r *MongoBidRepo) GetByShipmentID(shipmentID string) ([]models.Bid, error) {
	// Sorted by creation time so first-come precedence survives equal scores.
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return r.find(bson.M{"shipmentId": shipmentID}, opts)
}

func (r *MongoBidRepo) GetByCarrierID(carrierID string) ([]models.Bid, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(bson.M{"carrierId": carrierID}, opts)
}

func (r *MongoBidRepo) find(filter bson.M, opts *options.FindOptions) ([]models.Bid, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	cursor, err := r.bidColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bids: %w", err)
	}
	defer cursor.Close(ctx)
	var bids []models.Bid
	for cursor.Next(ctx) {
		var b models.Bid
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode bid: %w", err)
		}
		bids = append(bids, b)
	}
	return bids, nil
}

func (r *MongoBidRepo) HasPendingBid(shipmentID, carrierID string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{
		"shipmentId": shipmentID,
		"carrierId":  carrierID,
		"status":     models.BidPending,
	}
	count, err := r.bidColl.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to count pending bids: %w", err)
	}
	return count > 0, nil
}

func (r *MongoBidRepo) Create(bid *models.Bid) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.bidColl.InsertOne(ctx, bid); err != nil {
		return fmt.Errorf("failed to create bid: %w", err)
	}
	return nil
}

func (r *MongoBidRepo) UpdateStatusIf(id, expected, next string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"id": id, "status": expected}
	update := bson.M{"$set": bson.M{"status": next, "updatedAt": time.Now().UTC()}}
	res, err := r.bidColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update bid %s status: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrStateConflict
	}
	return nil
}
