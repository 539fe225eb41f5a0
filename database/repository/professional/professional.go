package professionalRepo

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

// ErrNotFound is returned when no professional matches the given ID.
var ErrNotFound = errors.New("professional not found")

// ProfessionalRepository reads professional records and their working hours.
type ProfessionalRepository interface {
	GetByID(ctx context.Context, professionalID string) (*models.Professional, error)
}

// MongoProfessionalRepo implements ProfessionalRepository using MongoDB.
type MongoProfessionalRepo struct {
	coll *mongo.Collection
}

// NewMongoProfessionalRepo constructs a new instance of MongoProfessionalRepo.
func NewMongoProfessionalRepo() ProfessionalRepository {
	db := database.MongoClient.Database("trimly")
	return &MongoProfessionalRepo{coll: db.Collection("professionals")}
}

func (repo *MongoProfessionalRepo) GetByID(ctx context.Context, professionalID string) (*models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var prof models.Professional
	if err := repo.coll.FindOne(ctx, bson.M{"id": professionalID}).Decode(&prof); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching professional %s: %w", professionalID, err)
	}
	return &prof, nil
}
