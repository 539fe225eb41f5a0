package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"trimly/database"
	"trimly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new instance of MongoAppointmentRepo.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.MongoClient.Database("trimly")
	return &MongoAppointmentRepo{coll: db.Collection("appointments")}
}

func (repo *MongoAppointmentRepo) GetByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	if err := repo.coll.FindOne(ctx, bson.M{"id": appointmentID}).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching appointment %s: %w", appointmentID, err)
	}
	return &appt, nil
}

func (repo *MongoAppointmentRepo) ListForProfessionalOnDay(ctx context.Context, professionalID, date string, statuses []string) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	dayStart, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	filter := bson.M{
		"professional_id": professionalID,
		"status":          bson.M{"$in": statuses},
		"start_time":      bson.M{"$gte": dayStart, "$lt": dayEnd},
	}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching appointments for %s on %s: %w", professionalID, date, err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	for cursor.Next(ctx) {
		var a models.Appointment
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("error decoding appointment: %w", err)
		}
		appts = append(appts, a)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return appts, nil
}

// TransitionStatus performs the primary state transition as a single
// conditional write. Two concurrent callers cannot both match the filter, which
// is what makes the downstream cascades run at most once.
func (repo *MongoAppointmentRepo) TransitionStatus(ctx context.Context, appointmentID, toStatus string, allowedFrom []string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":     appointmentID,
		"status": bson.M{"$in": allowedFrom},
	}
	update := bson.M{"$set": bson.M{"status": toStatus}}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("error transitioning appointment %s to %s: %w", appointmentID, toStatus, err)
	}
	return res.MatchedCount == 1, nil
}

func (repo *MongoAppointmentRepo) CountCompletedForClient(ctx context.Context, clientID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := repo.coll.CountDocuments(ctx, bson.M{
		"client_id": clientID,
		"status":    models.AppointmentDone,
	})
	if err != nil {
		return 0, fmt.Errorf("error counting completed appointments for client %s: %w", clientID, err)
	}
	return count, nil
}

func (repo *MongoAppointmentRepo) ListDueForReminder(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status":           models.AppointmentConfirmed,
		"reminder_sent_at": nil,
		"start_time":       bson.M{"$gte": from, "$lt": to},
	}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching appointments due for reminder: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	for cursor.Next(ctx) {
		var a models.Appointment
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("error decoding appointment: %w", err)
		}
		appts = append(appts, a)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return appts, nil
}

func (repo *MongoAppointmentRepo) MarkReminderSent(ctx context.Context, appointmentID string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": appointmentID, "reminder_sent_at": nil}
	update := bson.M{"$set": bson.M{"reminder_sent_at": at}}
	if _, err := repo.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("error marking reminder sent for appointment %s: %w", appointmentID, err)
	}
	return nil
}
