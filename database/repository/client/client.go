package clientRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trimly/database"
	"trimly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no client matches the given ID.
var ErrNotFound = errors.New("client not found")

// ClientRepository is the account directory lookup: identity in, contact
// details out.
type ClientRepository interface {
	GetByID(ctx context.Context, clientID string) (*models.Client, error)
}

// MongoClientRepo implements ClientRepository using MongoDB.
type MongoClientRepo struct {
	coll *mongo.Collection
}

// NewMongoClientRepo constructs a new instance of MongoClientRepo.
func NewMongoClientRepo() ClientRepository {
	db := database.MongoClient.Database("trimly")
	return &MongoClientRepo{coll: db.Collection("clients")}
}

func (repo *MongoClientRepo) GetByID(ctx context.Context, clientID string) (*models.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var client models.Client
	if err := repo.coll.FindOne(ctx, bson.M{"id": clientID}).Decode(&client); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching client %s: %w", clientID, err)
	}
	return &client, nil
}
