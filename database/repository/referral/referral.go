package referralRepo

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

// ErrNotFound is returned when no pending referral matches the lookup.
var ErrNotFound = errors.New("referral not found")

// ReferralRepository resolves referral invitations.
type ReferralRepository interface {
	FindPendingByEmail(ctx context.Context, ownerID, email string) (*models.Referral, error)
	// Complete transitions the referral to "completed" and binds the resolved
	// client, iff it is still pending. It reports whether the write matched.
	Complete(ctx context.Context, referralID, clientID string) (bool, error)
}

// MongoReferralRepo implements ReferralRepository using MongoDB.
type MongoReferralRepo struct {
	coll *mongo.Collection
}

// NewMongoReferralRepo constructs a new instance of MongoReferralRepo.
func NewMongoReferralRepo() ReferralRepository {
	db := database.MongoClient.Database("trimly")
	return &MongoReferralRepo{coll: db.Collection("referrals")}
}

func (repo *MongoReferralRepo) FindPendingByEmail(ctx context.Context, ownerID, email string) (*models.Referral, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"owner_id": ownerID,
		"email":    email,
		"status":   models.ReferralPending,
	}
	var ref models.Referral
	if err := repo.coll.FindOne(ctx, filter).Decode(&ref); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching pending referral for %s: %w", email, err)
	}
	return &ref, nil
}

// Complete is guarded on the pending status so a referral transitions at most
// once, even under concurrent first completions.
func (repo *MongoReferralRepo) Complete(ctx context.Context, referralID, clientID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"id": referralID, "status": models.ReferralPending}
	update := bson.M{"$set": bson.M{
		"status":       models.ReferralCompleted,
		"client_id":    clientID,
		"completed_at": now,
	}}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("error completing referral %s: %w", referralID, err)
	}
	return res.MatchedCount == 1, nil
}
