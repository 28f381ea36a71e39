package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const queryTimeout = 10 * time.Second

// Collection names
const (
	VehiclesCollection    = "vehicles"
	TripsCollection       = "trips"
	MaintenanceCollection = "maintenance_records"
	FuelCollection        = "fuel_logs"
	AssignmentsCollection = "vehicle_assignments"
	UsersCollection       = "users"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrInvalidID = errors.New("invalid ID")
	ErrDuplicate = errors.New("duplicate key")
)

// Page selects a slice of a sorted result set. Page is 1-based.
type Page struct {
	Page  int
	Limit int
}

func (p Page) normalize(defaultLimit int) Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

func (p Page) apply(opts *options.FindOptions) *options.FindOptions {
	return opts.SetSkip(int64((p.Page - 1) * p.Limit)).SetLimit(int64(p.Limit))
}

func parseID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return objectID, nil
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, queryTimeout)
}

// containsFold builds a case-insensitive substring match.
func containsFold(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
}

// anyFieldContains matches documents where any of fields contains value.
func anyFieldContains(value string, fields ...string) bson.A {
	or := bson.A{}
	for _, f := range fields {
		or = append(or, bson.M{f: containsFold(value)})
	}
	return or
}

func sortDirection(order string) int {
	if order == "ASC" || order == "asc" {
		return 1
	}
	return -1
}
