package loyaltyRepo

import (
	"context"
	"fmt"
	"time"

	"trimly/database"
	"trimly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LoyaltyRepository tracks completed-appointment counters per (owner, client).
type LoyaltyRepository interface {
	// Increment atomically bumps the counter by one, creating it on first use,
	// and returns the updated document.
	Increment(ctx context.Context, ownerID, clientID string) (*models.LoyaltyCounter, error)
	Get(ctx context.Context, ownerID, clientID string) (*models.LoyaltyCounter, error)
}

// MongoLoyaltyRepo implements LoyaltyRepository using MongoDB.
type MongoLoyaltyRepo struct {
	coll *mongo.Collection
}

// NewMongoLoyaltyRepo constructs a new instance of MongoLoyaltyRepo.
func NewMongoLoyaltyRepo() LoyaltyRepository {
	db := database.MongoClient.Database("trimly")
	return &MongoLoyaltyRepo{coll: db.Collection("loyalty_counters")}
}

// Increment uses a single $inc upsert so concurrent completions for different
// appointments of the same client cannot lose updates. The counter is never
// decremented here.
func (repo *MongoLoyaltyRepo) Increment(ctx context.Context, ownerID, clientID string) (*models.LoyaltyCounter, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"owner_id": ownerID, "client_id": clientID}
	update := bson.M{
		"$inc":         bson.M{"completed": 1},
		"$set":         bson.M{"updated_at": time.Now()},
		"$setOnInsert": bson.M{"owner_id": ownerID, "client_id": clientID},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter models.LoyaltyCounter
	if err := repo.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter); err != nil {
		return nil, fmt.Errorf("error incrementing loyalty counter for client %s: %w", clientID, err)
	}
	return &counter, nil
}

func (repo *MongoLoyaltyRepo) Get(ctx context.Context, ownerID, clientID string) (*models.LoyaltyCounter, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var counter models.LoyaltyCounter
	filter := bson.M{"owner_id": ownerID, "client_id": clientID}
	if err := repo.coll.FindOne(ctx, filter).Decode(&counter); err != nil {
		return nil, fmt.Errorf("error fetching loyalty counter for client %s: %w", clientID, err)
	}
	return &counter, nil
}
