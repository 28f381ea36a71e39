package repository

import (
	"context"
	"errors"
	"time"

	"erp-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TripRepository struct {
	collection *mongo.Collection
}

func NewTripRepository(db *mongo.Database) *TripRepository {
	return &TripRepository{
		collection: db.Collection(TripsCollection),
	}
}

type TripFilter struct {
	VehicleID string
	Status    string
	Search    string
	From      time.Time
	To        time.Time
	Page
}

func (r *TripRepository) Create(ctx context.Context, trip *models.Trip) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	now := time.Now()
	trip.ID = primitive.NewObjectID()
	trip.CreatedAt = now
	trip.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, trip)
	return err
}

func (r *TripRepository) FindByID(ctx context.Context, id string) (*models.Trip, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var trip models.Trip
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&trip); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &trip, nil
}

func (f TripFilter) query() (bson.M, error) {
	filter := bson.M{}
	if f.VehicleID != "" {
		vehicleID, err := parseID(f.VehicleID)
		if err != nil {
			return nil, err
		}
		filter["vehicle_id"] = vehicleID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Search != "" {
		filter["$or"] = anyFieldContains(f.Search, "destination", "driver_name", "purpose_of_visit")
	}
	dateRange := bson.M{}
	if !f.From.IsZero() {
		dateRange["$gte"] = f.From
	}
	if !f.To.IsZero() {
		dateRange["$lte"] = f.To
	}
	if len(dateRange) > 0 {
		filter["trip_date"] = dateRange
	}
	return filter, nil
}

// List returns one page of trips, most recent first.
func (r *TripRepository) List(ctx context.Context, f TripFilter) ([]*models.Trip, int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter, err := f.query()
	if err != nil {
		return nil, 0, err
	}
	f.Page = f.Page.normalize(20)
	opts := f.Page.apply(options.Find().SetSort(bson.D{{Key: "trip_date", Value: -1}}))

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	trips := make([]*models.Trip, 0)
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, 0, err
	}
	return trips, total, nil
}

// FindAll returns every trip matching f without pagination, for export.
func (r *TripRepository) FindAll(ctx context.Context, f TripFilter) ([]*models.Trip, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter, err := f.query()
	if err != nil {
		return nil, err
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "trip_date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	trips := make([]*models.Trip, 0)
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// Recent returns the latest limit trips by trip date.
func (r *TripRepository) Recent(ctx context.Context, limit int) ([]*models.Trip, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "trip_date", Value: -1}, {Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	trips := make([]*models.Trip, 0)
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *TripRepository) Update(ctx context.Context, id string, trip *models.Trip) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	objectID, err := parseID(id)
	if err != nil {
		return err
	}

	trip.UpdatedAt = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": trip})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TripRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	objectID, err := parseID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TripRepository) DeleteByVehicle(ctx context.Context, vehicleID primitive.ObjectID) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"vehicle_id": vehicleID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *TripRepository) CreateIndexes(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "vehicle_id", Value: 1}, {Key: "trip_date", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	return err
}
