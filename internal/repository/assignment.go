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

type AssignmentRepository struct {
	collection *mongo.Collection
}

func NewAssignmentRepository(db *mongo.Database) *AssignmentRepository {
	return &AssignmentRepository{
		collection: db.Collection(AssignmentsCollection),
	}
}

type AssignmentFilter struct {
	VehicleID string
	Status    string
	Search    string
	SortOrder string
	Page
}

func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.VehicleAssignment) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	now := time.Now()
	assignment.ID = primitive.NewObjectID()
	assignment.CreatedAt = now
	assignment.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, assignment)
	return err
}

func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*models.VehicleAssignment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var assignment models.VehicleAssignment
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&assignment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

func (f AssignmentFilter) query() (bson.M, error) {
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
		filter["$or"] = anyFieldContains(f.Search, "assigned_to", "assigned_by", "purpose")
	}
	return filter, nil
}

// List returns one page of assignments ordered by creation time.
func (r *AssignmentRepository) List(ctx context.Context, f AssignmentFilter) ([]*models.VehicleAssignment, int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter, err := f.query()
	if err != nil {
		return nil, 0, err
	}
	f.Page = f.Page.normalize(20)
	opts := f.Page.apply(options.Find().SetSort(bson.D{{Key: "created_at", Value: sortDirection(f.SortOrder)}}))

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	assignments := make([]*models.VehicleAssignment, 0)
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, 0, err
	}
	return assignments, total, nil
}

// FindAll returns every assignment for export, latest assignment first.
func (r *AssignmentRepository) FindAll(ctx context.Context) ([]*models.VehicleAssignment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "assignment_date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	assignments := make([]*models.VehicleAssignment, 0)
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *AssignmentRepository) Update(ctx context.Context, id string, assignment *models.VehicleAssignment) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	objectID, err := parseID(id)
	if err != nil {
		return err
	}

	assignment.UpdatedAt = time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": objectID}, assignment)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
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

func (r *AssignmentRepository) DeleteByVehicle(ctx context.Context, vehicleID primitive.ObjectID) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"vehicle_id": vehicleID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *AssignmentRepository) CreateIndexes(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "vehicle_id", Value: 1}, {Key: "assignment_date", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	return err
}
