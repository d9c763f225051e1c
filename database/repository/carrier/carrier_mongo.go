package carrierRepo

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

// MongoCarrierRepo implements CarrierRepository using MongoDB.
type MongoCarrierRepo struct {
	coll *mongo.Collection
}

// NewMongoCarrierRepo creates a new instance of CarrierRepository using MongoDB.
func NewMongoCarrierRepo() CarrierRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("carriers")
	return &MongoCarrierRepo{coll: coll}
}

func (r *MongoCarrierRepo) GetByID(id string) (*models.CarrierProfile, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var profile models.CarrierProfile
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch carrier with id %s: %w", id, err)
	}
	return &profile, nil
}

func (r *MongoCarrierRepo) GetByIDs(ids []string) (map[string]models.CarrierProfile, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve carriers: %w", err)
	}
	defer cursor.Close(ctx)
	profiles := make(map[string]models.CarrierProfile, len(ids))
	for cursor.Next(ctx) {
		var p models.CarrierProfile
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode carrier: %w", err)
		}
		profiles[p.ID] = p
	}
	return profiles, nil
}

func (r *MongoCarrierRepo) Upsert(profile *models.CarrierProfile) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	profile.UpdatedAt = time.Now().UTC()
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"id": profile.ID}, profile, opts); err != nil {
		return fmt.Errorf("failed to upsert carrier %s: %w", profile.ID, err)
	}
	return nil
}
