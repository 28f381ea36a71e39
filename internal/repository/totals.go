package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// vehicleTotalsPipeline groups a vehicle-keyed collection with the given
// accumulators and labels each group with its vehicle's name and
// registration. Groups whose vehicle is gone keep empty labels.
func vehicleTotalsPipeline(accumulators bson.M) mongo.Pipeline {
	group := bson.M{"_id": "$vehicle_id"}
	for field, acc := range accumulators {
		group[field] = acc
	}

	return mongo.Pipeline{
		{{Key: "$group", Value: group}},
		{{Key: "$lookup", Value: bson.M{
			"from":         VehiclesCollection,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "vehicle",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$vehicle", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$addFields", Value: bson.M{
			"vehicle_name":        "$vehicle.vehicle_name",
			"registration_number": "$vehicle.registration_number",
		}}},
		{{Key: "$project", Value: bson.M{"vehicle": 0}}},
		{{Key: "$sort", Value: bson.D{{Key: "vehicle_name", Value: 1}, {Key: "_id", Value: 1}}}},
	}
}

func aggregateAll[T any](ctx context.Context, collection *mongo.Collection, pipeline mongo.Pipeline) ([]T, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
