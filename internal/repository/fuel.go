package repository

import (
	"context"
	"time"

	"erp-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FuelRepository struct {
	collection *mongo.Collection
}

func NewFuelRepository(db *mongo.Database) *FuelRepository {
	return &FuelRepository{
		collection: db.Collection(FuelCollection),
	}
}

type FuelFilter struct {
	VehicleID string
	Search    string
	SortBy    string
	SortOrder string
	Page
}

var fuelSortFields = map[string]string{
	"date":           "date",
	"quantityLiters": "quantity_liters",
	"totalCost":      "total_cost",
	"createdAt":      "created_at",
}

func (r *FuelRepository) Create(ctx context.Context, entry *models.FuelLog) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	now := time.Now()
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

func (f FuelFilter) query() (bson.M, error) {
	filter := bson.M{}
	if f.VehicleID != "" {
		vehicleID, err := parseID(f.VehicleID)
		if err != nil {
			return nil, err
		}
		filter["vehicle_id"] = vehicleID
	}
	if f.Search != "" {
		filter["station_name"] = containsFold(f.Search)
	}
	return filter, nil
}

// List returns one page of fuel logs, newest entry first by default.
func (r *FuelRepository) List(ctx context.Context, f FuelFilter) ([]*models.FuelLog, int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter, err := f.query()
	if err != nil {
		return nil, 0, err
	}
	f.Page = f.Page.normalize(20)

	sortField, ok := fuelSortFields[f.SortBy]
	if !ok {
		sortField = "created_at"
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

	entries := make([]*models.FuelLog, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func fuelStatsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"total_liters":  bson.M{"$sum": "$quantity_liters"},
			"total_cost":    bson.M{"$sum": "$total_cost"},
			"total_entries": bson.M{"$sum": 1},
		}}},
	}
}

// Stats totals every fuel log. An empty collection yields zeros.
func (r *FuelRepository) Stats(ctx context.Context) (*models.FuelStats, error) {
	rows, err := aggregateAll[models.FuelStats](ctx, r.collection, fuelStatsPipeline())
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &models.FuelStats{}, nil
	}
	return &rows[0], nil
}

func fuelConsumptionPipeline() mongo.Pipeline {
	return vehicleTotalsPipeline(bson.M{
		"total_liters": bson.M{"$sum": "$quantity_liters"},
		"total_cost":   bson.M{"$sum": "$total_cost"},
	})
}

// ConsumptionByVehicle sums liters and cost per vehicle, ordered by name.
func (r *FuelRepository) ConsumptionByVehicle(ctx context.Context) ([]models.FuelConsumption, error) {
	return aggregateAll[models.FuelConsumption](ctx, r.collection, fuelConsumptionPipeline())
}

// FindAll returns every fuel log for export, newest first.
func (r *FuelRepository) FindAll(ctx context.Context) ([]*models.FuelLog, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := make([]*models.FuelLog, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *FuelRepository) DeleteByVehicle(ctx context.Context, vehicleID primitive.ObjectID) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"vehicle_id": vehicleID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *FuelRepository) CreateIndexes(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "vehicle_id", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	return err
}
