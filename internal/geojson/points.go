package geojson

import (
	"github.com/samber/lo"

	"geotag/internal/record"
)

// BuildPointsFC builds a GeoJSON feature collection with one Point feature
// per geolocated detection. GeoJSON positions are x-first, so the latitude
// field (the transformed x) leads.
func BuildPointsFC(imageID string, refs []record.GeoRef) FeatureCollection {
	features := lo.Map(refs, func(ref record.GeoRef, _ int) Feature {
		return Feature{
			Type: featureType,
			Geometry: Geometry{
				Type:        geometryPointType,
				Coordinates: []float64{ref.Latitude, ref.Longitude},
			},
			Properties: map[string]any{
				"image_id": imageID,
			},
		}
	})

	return FeatureCollection{
		Type:     featureCollectionType,
		Features: features,
	}
}
