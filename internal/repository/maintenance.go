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

type MaintenanceRepository struct {
	collection *mongo.Collection
}

func NewMaintenanceRepository(db *mongo.Database) *MaintenanceRepository {
	return &MaintenanceRepository{
		collection: db.Collection(MaintenanceCollection),
	}
}

type MaintenanceFilter struct {
	VehicleID string
	Types     []string
	Search    string
	SortBy    string
	SortOrder string
	Page
}

var maintenanceSortFields = map[string]string{
	"maintenanceDate": "maintenance_date",
	"costPkr":         "cost_pkr",
	"createdAt":       "created_at",
	"type":            "type",
}

func (r *MaintenanceRepository) Create(ctx context.Context, record *models.MaintenanceRecord) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	now := time.Now()
	record.ID = primitive.NewObjectID()
	record.CreatedAt = now
	record.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, record)
	return err
}

func (r *MaintenanceRepository) FindByID(ctx context.Context, id string) (*models.MaintenanceRecord, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var record models.MaintenanceRecord
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &record, nil
}

func (f MaintenanceFilter) query() (bson.M, error) {
	filter := bson.M{}
	if f.VehicleID != "" {
		vehicleID, err := parseID(f.VehicleID)
		if err != nil {
			return nil, err
		}
		filter["vehicle_id"] = vehicleID
	}
	if len(f.Types) > 0 {
		filter["type"] = bson.M{"$in": f.Types}
	}
	if f.Search != "" {
		filter["$or"] = anyFieldContains(f.Search, "description", "shop_or_person")
	}
	return filter, nil
}

// List returns one page of maintenance records, newest first by default.
func (r *MaintenanceRepository) List(ctx context.Context, f MaintenanceFilter) ([]*models.MaintenanceRecord, int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter, err := f.query()
	if err != nil {
		return nil, 0, err
	}
	f.Page = f.Page.normalize(10)

	sortField, ok := maintenanceSortFields[f.SortBy]
	if !ok {
		sortField = "maintenance_date"
	}
	opts := f.Page.apply(options.Find().SetSort(bson.D{{Key: sortField, Value: sortDirection(f.SortOrder)}}))

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	records := make([]*models.MaintenanceRecord, 0)
	for cursor.Next(ctx) {
		var record models.MaintenanceRecord
		if err := cursor.Decode(&record); err != nil {
			return nil, 0, err
		}
		records = append(records, &record)
	}

	return records, total, cursor.Err()
}

func (r *MaintenanceRepository) Update(ctx context.Context, id string, record *models.MaintenanceRecord) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	objectID, err := parseID(id)
	if err != nil {
		return err
	}

	record.UpdatedAt = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": record})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MaintenanceRepository) Delete(ctx context.Context, id string) error {
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

// DeleteByVehicle removes the whole maintenance history of a vehicle.
func (r *MaintenanceRepository) DeleteByVehicle(ctx context.Context, vehicleID primitive.ObjectID) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"vehicle_id": vehicleID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// FindAll returns records in a date range for export; zero bounds are open.
func (r *MaintenanceRepository) FindAll(ctx context.Context, from, to time.Time) ([]*models.MaintenanceRecord, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	dateRange := bson.M{}
	if !from.IsZero() {
		dateRange["$gte"] = from
	}
	if !to.IsZero() {
		dateRange["$lte"] = to
	}
	if len(dateRange) > 0 {
		filter["maintenance_date"] = dateRange
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "maintenance_date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := make([]*models.MaintenanceRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func maintenanceCostPipeline() mongo.Pipeline {
	return vehicleTotalsPipeline(bson.M{
		"total_cost":    bson.M{"$sum": "$cost_pkr"},
		"total_records": bson.M{"$sum": 1},
	})
}

// CostsByVehicle sums maintenance spend and record count per vehicle,
// ordered by vehicle name.
func (r *MaintenanceRepository) CostsByVehicle(ctx context.Context) ([]models.MaintenanceCost, error) {
	return aggregateAll[models.MaintenanceCost](ctx, r.collection, maintenanceCostPipeline())
}

func (r *MaintenanceRepository) CreateIndexes(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "vehicle_id", Value: 1}, {Key: "maintenance_date", Value: -1}}},
		{Keys: bson.D{{Key: "type", Value: 1}}},
	})
	return err
}
