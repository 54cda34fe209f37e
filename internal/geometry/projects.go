// Package geometry renders housing records as GeoJSON for the dashboard
// map layer.
package geometry

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// featureProperties are the record keys copied onto each map feature.
var featureProperties = []string{
	"project_id",
	"project_name",
	"address",
	"borough",
	"postcode",
	"total_units",
	"affordable_units",
	"project_start_date",
	"project_completion_date",
}

// PointFromCoordinates builds a WGS84 point from a latitude/longitude pair.
// Returns false when either coordinate is missing: a record without a fix
// has no geometry.
func PointFromCoordinates(latitude, longitude *float64) (orb.Point, bool) {
	if latitude == nil || longitude == nil {
		return orb.Point{}, false
	}
	// GeoJSON positions are (longitude, latitude).
	return orb.Point{*longitude, *latitude}, true
}

// ProjectFeature converts one records-endpoint row into a point feature.
// Returns nil for rows without coordinates.
func ProjectFeature(record map[string]any) *geojson.Feature {
	lat := coordinate(record["latitude"])
	lon := coordinate(record["longitude"])
	point, ok := PointFromCoordinates(lat, lon)
	if !ok {
		return nil
	}

	feature := geojson.NewFeature(point)
	for _, key := range featureProperties {
		if value, ok := record[key]; ok && value != nil {
			feature.Properties[key] = value
		}
	}
	return feature
}

// ProjectCollection converts a page of records into a FeatureCollection,
// silently skipping rows without coordinates.
func ProjectCollection(records []map[string]any) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, record := range records {
		if feature := ProjectFeature(record); feature != nil {
			fc.Append(feature)
		}
	}
	fc.ExtraMembers = map[string]any{
		"generated": time.Now().UTC().Format(time.RFC3339),
	}
	return fc
}

func coordinate(v any) *float64 {
	switch f := v.(type) {
	case float64:
		return &f
	case *float64:
		return f
	default:
		return nil
	}
}
