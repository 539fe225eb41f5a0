package waitlistRepo

import (
	"context"
	"fmt"
	"time"

	"trimly/database"
	"trimly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// WaitlistRepository provides access to waitlist entries.
type WaitlistRepository interface {
	// ListUnnotified returns entries for the professional and date that have
	// not been notified yet.
	ListUnnotified(ctx context.Context, professionalID, date string) ([]models.WaitlistEntry, error)
	// MarkNotified stamps notified_at on the given entries in one batch write.
	// Entries already stamped are left untouched, so a freed-slot event can
	// never double-notify.
	MarkNotified(ctx context.Context, entryIDs []string, at time.Time) (int64, error)
}

// MongoWaitlistRepo implements WaitlistRepository using MongoDB.
type MongoWaitlistRepo struct {
	coll *mongo.Collection
}

// NewMongoWaitlistRepo constructs a new instance of MongoWaitlistRepo.
func NewMongoWaitlistRepo() WaitlistRepository {
	db := database.MongoClient.Database("trimly")
	return &MongoWaitlistRepo{coll: db.Collection("waitlist_entries")}
}

func (repo *MongoWaitlistRepo) ListUnnotified(ctx context.Context, professionalID, date string) ([]models.WaitlistEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"professional_id": professionalID,
		"date":            date,
		"notified_at":     nil,
	}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching waitlist entries for %s on %s: %w", professionalID, date, err)
	}
	defer cursor.Close(ctx)

	var entries []models.WaitlistEntry
	for cursor.Next(ctx) {
		var e models.WaitlistEntry
		if err := cursor.Decode(&e); err != nil {
			return nil, fmt.Errorf("error decoding waitlist entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return entries, nil
}

func (repo *MongoWaitlistRepo) MarkNotified(ctx context.Context, entryIDs []string, at time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":          bson.M{"$in": entryIDs},
		"notified_at": nil,
	}
	update := bson.M{"$set": bson.M{"notified_at": at}}
	res, err := repo.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("error marking waitlist entries notified: %w", err)
	}
	return res.ModifiedCount, nil
}
