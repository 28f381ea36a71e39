package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func assertVehicleTotals(t *testing.T, pipeline mongo.Pipeline, accumulators bson.M) {
	t.Helper()
	require.Len(t, pipeline, 6)

	group, ok := stage(t, pipeline[0], "$group").(bson.M)
	require.True(t, ok)
	assert.Equal(t, "$vehicle_id", group["_id"])
	for field, acc := range accumulators {
		assert.Equal(t, acc, group[field], field)
	}
	assert.Len(t, group, len(accumulators)+1)

	lookup, ok := stage(t, pipeline[1], "$lookup").(bson.M)
	require.True(t, ok)
	assert.Equal(t, VehiclesCollection, lookup["from"])
	assert.Equal(t, "_id", lookup["localField"])
	assert.Equal(t, "_id", lookup["foreignField"])

	unwind, ok := stage(t, pipeline[2], "$unwind").(bson.M)
	require.True(t, ok)
	assert.Equal(t, true, unwind["preserveNullAndEmptyArrays"])

	assert.Equal(t, bson.D{{Key: "vehicle_name", Value: 1}, {Key: "_id", Value: 1}}, stage(t, pipeline[5], "$sort"))
}

func TestFuelConsumptionPipeline(t *testing.T) {
	assertVehicleTotals(t, fuelConsumptionPipeline(), bson.M{
		"total_liters": bson.M{"$sum": "$quantity_liters"},
		"total_cost":   bson.M{"$sum": "$total_cost"},
	})
}

func TestMaintenanceCostPipeline(t *testing.T) {
	assertVehicleTotals(t, maintenanceCostPipeline(), bson.M{
		"total_cost":    bson.M{"$sum": "$cost_pkr"},
		"total_records": bson.M{"$sum": 1},
	})
}

func TestFuelStatsPipeline(t *testing.T) {
	pipeline := fuelStatsPipeline()
	require.Len(t, pipeline, 1)

	group, ok := stage(t, pipeline[0], "$group").(bson.M)
	require.True(t, ok)
	assert.Nil(t, group["_id"])
	assert.Equal(t, bson.M{"$sum": 1}, group["total_entries"])
}

func TestFuelRepository_Totals(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("stats of empty collection", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "fleet.fuel_logs", mtest.FirstBatch))

		stats, err := NewFuelRepository(mt.DB).Stats(context.Background())

		require.NoError(mt, err)
		assert.Zero(mt, stats.TotalEntries)
		assert.Zero(mt, stats.TotalLiters)
	})

	mt.Run("stats decode", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "fleet.fuel_logs", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: nil},
				{Key: "total_liters", Value: 82.5},
				{Key: "total_cost", Value: 23100.0},
				{Key: "total_entries", Value: int32(2)},
			},
		))

		stats, err := NewFuelRepository(mt.DB).Stats(context.Background())

		require.NoError(mt, err)
		assert.Equal(mt, 82.5, stats.TotalLiters)
		assert.Equal(mt, 23100.0, stats.TotalCost)
		assert.Equal(mt, int64(2), stats.TotalEntries)
	})

	mt.Run("consumption decode", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "fleet.fuel_logs", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: id},
				{Key: "total_liters", Value: 40.0},
				{Key: "total_cost", Value: 11200.0},
				{Key: "vehicle_name", Value: "Hilux"},
				{Key: "registration_number", Value: "LEA-1"},
			},
		))

		rows, err := NewFuelRepository(mt.DB).ConsumptionByVehicle(context.Background())

		require.NoError(mt, err)
		require.Len(mt, rows, 1)
		assert.Equal(mt, id, rows[0].VehicleID)
		assert.Equal(mt, "LEA-1", rows[0].RegistrationNumber)
		assert.Equal(mt, 40.0, rows[0].TotalLiters)
	})
}
