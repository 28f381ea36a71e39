package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	var body struct {
		Day   *Date `json:"day"`
		Stamp *Date `json:"stamp"`
		Empty *Date `json:"empty"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"day":"2026-12-31","stamp":"2024-06-15T10:30:00+05:00","empty":null}`), &body))

	assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), *body.Day.Ptr())
	assert.True(t, body.Stamp.Equal(time.Date(2024, 6, 15, 5, 30, 0, 0, time.UTC)))
	assert.Nil(t, body.Empty.Ptr())
}

func TestDate_UnmarshalJSON_Invalid(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"31/12/2026"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20261231`), &d))
}

func TestTripDistance(t *testing.T) {
	in := 1250.0
	assert.Equal(t, 250.0, TripDistance(1000, &in))
	assert.Equal(t, 0.0, TripDistance(1000, nil))
}
