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

type VehicleRepository struct {
	collection *mongo.Collection
}

func NewVehicleRepository(db *mongo.Database) *VehicleRepository {
	return &VehicleRepository{
		collection: db.Collection(VehiclesCollection),
	}
}

// VehicleFilter narrows vehicle listings. Empty fields are ignored.
type VehicleFilter struct {
	Search          string
	Type            string
	FuelType        string
	OwnershipStatus string
	Status          string
	AssignedSite    string
	SortBy          string
	SortOrder       string
	Page
}

// vehicleSortFields maps API sort keys to stored field names.
var vehicleSortFields = map[string]string{
	"createdAt":          "created_at",
	"updatedAt":          "updated_at",
	"registrationNumber": "registration_number",
	"vehicleName":        "vehicle_name",
	"type":               "type",
	"model":              "model",
	"status":             "status",
	"currentOdometerKm":  "current_odometer_km",
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	now := time.Now()
	vehicle.ID = primitive.NewObjectID()
	vehicle.CreatedAt = now
	vehicle.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, vehicle); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, id string) (*models.Vehicle, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var vehicle models.Vehicle
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&vehicle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &vehicle, nil
}

func (r *VehicleRepository) FindByRegistration(ctx context.Context, registrationNumber string) (*models.Vehicle, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var vehicle models.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"registration_number": registrationNumber}).Decode(&vehicle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &vehicle, nil
}

func (f VehicleFilter) query() bson.M {
	filter := bson.M{}
	if f.Search != "" {
		filter["$or"] = anyFieldContains(f.Search,
			"registration_number", "vehicle_name", "make", "model", "chassis_number")
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.FuelType != "" {
		filter["fuel_type"] = f.FuelType
	}
	if f.OwnershipStatus != "" {
		filter["ownership_status"] = f.OwnershipStatus
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.AssignedSite != "" {
		filter["assigned_site"] = containsFold(f.AssignedSite)
	}
	return filter
}

// List returns one page of vehicles and the total number of matches.
func (r *VehicleRepository) List(ctx context.Context, f VehicleFilter) ([]*models.Vehicle, int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	f.Page = f.Page.normalize(20)
	filter := f.query()

	sortField, ok := vehicleSortFields[f.SortBy]
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

	vehicles := make([]*models.Vehicle, 0)
	for cursor.Next(ctx) {
		var vehicle models.Vehicle
		if err := cursor.Decode(&vehicle); err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, &vehicle)
	}

	return vehicles, total, cursor.Err()
}

// FindAll returns every vehicle ordered by name.
func (r *VehicleRepository) FindAll(ctx context.Context) ([]*models.Vehicle, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "vehicle_name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	vehicles := make([]*models.Vehicle, 0)
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *VehicleRepository) Update(ctx context.Context, id string, vehicle *models.Vehicle) (*models.Vehicle, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	vehicle.ID = objectID
	vehicle.UpdatedAt = time.Now()

	result := r.collection.FindOneAndReplace(
		ctx,
		bson.M{"_id": objectID},
		vehicle,
		options.FindOneAndReplace().SetReturnDocument(options.After),
	)

	var updated models.Vehicle
	if err := result.Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	return &updated, nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
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

// Dropdown lists active vehicles for selection widgets.
func (r *VehicleRepository) Dropdown(ctx context.Context) ([]models.VehicleOption, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"_id": 1, "registration_number": 1, "vehicle_name": 1}).
		SetSort(bson.D{{Key: "vehicle_name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"status": models.VehicleStatusActive}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	choices := make([]models.VehicleOption, 0)
	if err := cursor.All(ctx, &choices); err != nil {
		return nil, err
	}
	return choices, nil
}

type bucket struct {
	Key   string `bson:"_id"`
	Count int64  `bson:"count"`
}

func groupBy(field string) bson.A {
	return bson.A{bson.M{"$group": bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}}}
}

func bucketMap(buckets []bucket) map[string]int64 {
	out := make(map[string]int64, len(buckets))
	for _, b := range buckets {
		out[b.Key] = b.Count
	}
	return out
}

// Summary counts vehicles by status, type, ownership and fuel in one pass.
func (r *VehicleRepository) Summary(ctx context.Context) (*models.VehicleSummary, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$facet", Value: bson.M{
			"by_status":    groupBy("status"),
			"by_type":      groupBy("type"),
			"by_ownership": groupBy("ownership_status"),
			"by_fuel":      groupBy("fuel_type"),
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var facets struct {
		ByStatus    []bucket `bson:"by_status"`
		ByType      []bucket `bson:"by_type"`
		ByOwnership []bucket `bson:"by_ownership"`
		ByFuel      []bucket `bson:"by_fuel"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&facets); err != nil {
			return nil, err
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	byStatus := bucketMap(facets.ByStatus)
	summary := &models.VehicleSummary{
		Active:        byStatus[models.VehicleStatusActive],
		InMaintenance: byStatus[models.VehicleStatusInMaintenance],
		Inactive:      byStatus[models.VehicleStatusInactive],
		ByType:        bucketMap(facets.ByType),
		ByOwnership:   bucketMap(facets.ByOwnership),
		ByFuel:        bucketMap(facets.ByFuel),
	}
	for _, n := range byStatus {
		summary.Total += n
	}
	return summary, nil
}

// Stats reports driver assignment across the fleet.
func (r *VehicleRepository) Stats(ctx context.Context) (*models.FleetStats, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	unassigned := bson.A{
		bson.M{"current_driver_name": bson.M{"$exists": false}},
		bson.M{"current_driver_name": ""},
	}
	available, err := r.collection.CountDocuments(ctx, bson.M{"status": models.VehicleStatusActive, "$or": unassigned})
	if err != nil {
		return nil, err
	}
	assigned, err := r.collection.CountDocuments(ctx, bson.M{"current_driver_name": bson.M{"$exists": true, "$ne": ""}})
	if err != nil {
		return nil, err
	}

	cursor, err := r.collection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$type", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	byType := make([]models.TypeCount, 0)
	if err := cursor.All(ctx, &byType); err != nil {
		return nil, err
	}

	return &models.FleetStats{Total: total, Available: available, Assigned: assigned, ByType: byType}, nil
}

// ListComplianceVehicles returns the identity and compliance dates of every
// vehicle, ordered by name.
func (r *VehicleRepository) ListComplianceVehicles(ctx context.Context) ([]*models.Vehicle, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{}, complianceFindOptions())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	vehicles := make([]*models.Vehicle, 0)
	for cursor.Next(ctx) {
		var vehicle models.Vehicle
		if err := cursor.Decode(&vehicle); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, &vehicle)
	}

	return vehicles, cursor.Err()
}

func complianceFindOptions() *options.FindOptions {
	return options.Find().
		SetProjection(bson.M{
			"registration_number": 1,
			"vehicle_name":        1,
			"insurance_expiry":    1,
			"registration_expiry": 1,
			"fitness_expiry":      1,
		}).
		SetSort(bson.D{{Key: "vehicle_name", Value: 1}})
}

type maintenanceContextDoc struct {
	models.Vehicle    `bson:",inline"`
	LatestMaintenance []models.MaintenanceRecord `bson:"latest_maintenance"`
	RecentTrips       []models.Trip              `bson:"recent_trips"`
}

// ListMaintenanceContext loads every vehicle with its most recent maintenance
// record and its trips dated on or after since. Everything comes back from a
// single aggregation.
func (r *VehicleRepository) ListMaintenanceContext(ctx context.Context, since time.Time) ([]*models.MaintenanceContext, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := r.collection.Aggregate(ctx, maintenanceContextPipeline(since))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]*models.MaintenanceContext, 0)
	for cursor.Next(ctx) {
		var doc maintenanceContextDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		item := &models.MaintenanceContext{Vehicle: doc.Vehicle, RecentTrips: doc.RecentTrips}
		if len(doc.LatestMaintenance) > 0 {
			item.LatestMaintenance = &doc.LatestMaintenance[0]
		}
		items = append(items, item)
	}

	return items, cursor.Err()
}

func maintenanceContextPipeline(since time.Time) mongo.Pipeline {
	sameVehicle := bson.M{"$eq": bson.A{"$vehicle_id", "$$vid"}}

	return mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "vehicle_name", Value: 1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from": MaintenanceCollection,
			"let":  bson.M{"vid": "$_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": sameVehicle}},
				bson.M{"$sort": bson.D{{Key: "maintenance_date", Value: -1}}},
				bson.M{"$limit": 1},
			},
			"as": "latest_maintenance",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from": TripsCollection,
			"let":  bson.M{"vid": "$_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$and": bson.A{
					sameVehicle,
					bson.M{"$gte": bson.A{"$trip_date", since}},
				}}}},
				bson.M{"$project": bson.M{"trip_date": 1, "total_km": 1, "vehicle_id": 1}},
			},
			"as": "recent_trips",
		}}},
	}
}

// CreateIndexes creates necessary indexes for the vehicles collection
func (r *VehicleRepository) CreateIndexes(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "registration_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "vehicle_name", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "type", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
