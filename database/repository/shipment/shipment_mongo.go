package shipmentRepo

import (
	"context"
	"fmt"
	"time"

	"cargomatch/config"
	"cargomatch/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"cargomatch/models"
)

// MongoShipmentRepo implements ShipmentRepository using MongoDB.
type MongoShipmentRepo struct {
	coll *mongo.Collection
}

// NewMongoShipmentRepo creates a new instance of ShipmentRepository using MongoDB.
func NewMongoShipmentRepo() ShipmentRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("shipments")
	return &MongoShipmentRepo{coll: coll}
}

func (r *MongoShipmentRepo) GetByID(id string) (*models.Shipment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var shipment models.Shipment
	filter := bson.M{"id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&shipment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch shipment with id %s: %w", id, err)
	}
	return &shipment, nil
}

func (r *MongoShipmentRepo) GetByShipperID(shipperID string) ([]models.Shipment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	cursor, err := r.coll.Find(ctx, bson.M{"shipperId": shipperID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve shipments for shipper %s: %w", shipperID, err)
	}
	defer cursor.Close(ctx)
	var shipments []models.Shipment
	for cursor.Next(ctx) {
		var s models.Shipment
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode shipment: %w", err)
		}
		shipments = append(shipments, s)
	}
	return shipments, nil
}

func (r *MongoShipmentRepo) Create(shipment *models.Shipment) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, shipment); err != nil {
		return fmt.Errorf("failed to create shipment: %w", err)
	}
	return nil
}

func (r *MongoShipmentRepo) UpdateStatusIf(id, expected, next string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"id": id, "status": expected}
	update := bson.M{"$set": bson.M{"status": next, "updatedAt": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update shipment %s status: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrStateConflict
	}
	return nil
}
