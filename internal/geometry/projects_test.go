package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointFromCoordinates(t *testing.T) {
	lat := 40.7831
	lon := -73.9712

	point, ok := PointFromCoordinates(&lat, &lon)
	assert.True(t, ok)
	assert.Equal(t, -73.9712, point.Lon())
	assert.Equal(t, 40.7831, point.Lat())

	_, ok = PointFromCoordinates(nil, &lon)
	assert.False(t, ok)
	_, ok = PointFromCoordinates(&lat, nil)
	assert.False(t, ok)
}

func TestProjectFeature(t *testing.T) {
	record := map[string]any{
		"project_id":   "44218",
		"project_name": "1162-1164 WASHINGTON AVENUE",
		"borough":      "Bronx",
		"latitude":     40.832,
		"longitude":    -73.906,
		"total_units":  24,
	}

	feature := ProjectFeature(record)
	assert.NotNil(t, feature)

	point := feature.Point()
	assert.Equal(t, -73.906, point.Lon())
	assert.Equal(t, 40.832, point.Lat())
	assert.Equal(t, "44218", feature.Properties["project_id"])
	assert.Equal(t, "Bronx", feature.Properties["borough"])
	assert.NotContains(t, feature.Properties, "latitude")
}

func TestProjectFeatureWithoutCoordinates(t *testing.T) {
	record := map[string]any{
		"project_id": "66784",
		"latitude":   nil,
		"longitude":  -73.906,
	}

	assert.Nil(t, ProjectFeature(record))
}

func TestProjectCollection(t *testing.T) {
	records := []map[string]any{
		{"project_id": "1", "latitude": 40.7, "longitude": -73.9},
		{"project_id": "2"},
		{"project_id": "3", "latitude": 40.6, "longitude": -74.0},
	}

	fc := ProjectCollection(records)
	assert.Len(t, fc.Features, 2)
	assert.Equal(t, "1", fc.Features[0].Properties["project_id"])
	assert.Equal(t, "3", fc.Features[1].Properties["project_id"])
}
