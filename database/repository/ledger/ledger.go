package ledgerRepo

import (
	"context"
	"fmt"
	"time"

	"trimly/database"
	"trimly/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// LedgerRepository writes financial entries for a professional's account.
type LedgerRepository interface {
	Create(ctx context.Context, entry *models.LedgerEntry) error
}

// MongoLedgerRepo implements LedgerRepository using MongoDB.
type MongoLedgerRepo struct {
	coll *mongo.Collection
}

// NewMongoLedgerRepo constructs a new instance of MongoLedgerRepo.
func NewMongoLedgerRepo() LedgerRepository {
	db := database.MongoClient.Database("trimly")
	return &MongoLedgerRepo{coll: db.Collection("ledger_entries")}
}

func (repo *MongoLedgerRepo) Create(ctx context.Context, entry *models.LedgerEntry) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if _, err := repo.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("error creating ledger entry: %w", err)
	}
	return nil
}
