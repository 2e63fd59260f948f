// Package record reads and writes per-image detection records: JSON
// artifacts carrying pixel centers or bounding boxes plus arbitrary
// metadata that must survive a round-trip untouched.
package record

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"

	"geotag/internal/geo"
)

// CenterSource says where a record's pixel centers came from. The choice is
// made once when the record is decoded: explicit centers win, bounding-box
// midpoints are the fallback, never both.
type CenterSource int

const (
	// SourceNone marks a record with neither centers nor bounding boxes.
	SourceNone CenterSource = iota
	// SourceExplicit marks a record that carried a non-empty center list.
	SourceExplicit
	// SourceBBoxes marks centers derived from bounding-box midpoints.
	SourceBBoxes
)

func (s CenterSource) String() string {
	switch s {
	case SourceExplicit:
		return "centers"
	case SourceBBoxes:
		return "bboxes"
	default:
		return "none"
	}
}

// Record is a decoded detection record. Every original top-level field is
// kept as raw JSON so unknown metadata passes through unmodified.
type Record struct {
	fields  map[string]json.RawMessage
	source  CenterSource
	centers []geo.Point
}

// GeoRef is one geolocated detection as it appears in the output record's
// gis list. Latitude carries the transformed x coordinate and Longitude the
// transformed y, matching the upstream artifact convention.
type GeoRef struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Decode parses a detection record and resolves its pixel centers.
func Decode(data []byte) (*Record, error) {
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}

	r := &Record{fields: fields}
	if err := r.resolveCenters(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Record) resolveCenters() error {
	if raw, ok := r.fields["center"]; ok {
		var centers []geo.Point
		if err := json.Unmarshal(raw, &centers); err != nil {
			return fmt.Errorf("parse centers: %w", err)
		}
		if len(centers) > 0 {
			r.source = SourceExplicit
			r.centers = centers
			return nil
		}
	}

	if raw, ok := r.fields["bboxes"]; ok {
		bboxes, err := parseBBoxes(raw)
		if err != nil {
			return err
		}
		if len(bboxes) > 0 {
			r.source = SourceBBoxes
			r.centers = lo.Map(bboxes, func(b geo.BBox, _ int) geo.Point {
				return b.Center()
			})
			return nil
		}
	}

	r.source = SourceNone
	return nil
}

func parseBBoxes(raw json.RawMessage) ([]geo.BBox, error) {
	var tuples [][]float64
	if err := json.Unmarshal(raw, &tuples); err != nil {
		return nil, fmt.Errorf("parse bboxes: %w", err)
	}

	bboxes := make([]geo.BBox, len(tuples))
	for i, tuple := range tuples {
		if len(tuple) != 4 {
			return nil, fmt.Errorf("parse bboxes: entry %d has %d values, want 4", i, len(tuple))
		}
		bboxes[i] = geo.BBox{tuple[0], tuple[1], tuple[2], tuple[3]}
	}
	return bboxes, nil
}

// Source reports where the record's centers came from.
func (r *Record) Source() CenterSource {
	return r.source
}

// Points returns the resolved pixel centers. Empty when Source is SourceNone.
func (r *Record) Points() []geo.Point {
	return r.centers
}

// Locate maps every resolved center through the transform. A record
// without center data yields an empty list, not an error; zero detections
// is a legitimate result downstream.
func (r *Record) Locate(t geo.Transform) []GeoRef {
	return lo.Map(r.centers, func(p geo.Point, _ int) GeoRef {
		g := t.Apply(p)
		return GeoRef{Latitude: g.X, Longitude: g.Y}
	})
}

// WithGIS marshals the record with a gis field holding refs, preserving
// every pre-existing field. The output is indented to match the upstream
// artifact format.
func (r *Record) WithGIS(refs []GeoRef) ([]byte, error) {
	if refs == nil {
		refs = []GeoRef{}
	}

	gis, err := json.Marshal(refs)
	if err != nil {
		return nil, fmt.Errorf("marshal gis: %w", err)
	}

	out := make(map[string]json.RawMessage, len(r.fields)+1)
	for k, v := range r.fields {
		out[k] = v
	}
	out["gis"] = gis

	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	return data, nil
}
