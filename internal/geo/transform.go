package geo

// Transform is an affine pixel-to-geographic mapping for a single image,
// with coefficients in ESRI world-file order.
type Transform struct {
	PixelSizeX float64
	RotationX  float64
	RotationY  float64
	PixelSizeY float64
	OriginX    float64
	OriginY    float64
}

// Point is a position in an image's pixel coordinate space. Fractional
// coordinates are allowed; bounding-box midpoints land on half pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GeoPoint is the geographic position obtained by applying a Transform to
// a Point. Units are whatever the transform's CRS implies.
type GeoPoint struct {
	X float64
	Y float64
}

// Apply maps a pixel point to geographic coordinates.
func (t Transform) Apply(p Point) GeoPoint {
	return GeoPoint{
		X: t.OriginX + p.X*t.PixelSizeX + p.Y*t.RotationX,
		Y: t.OriginY + p.X*t.RotationY + p.Y*t.PixelSizeY,
	}
}

// BBox is a pixel-space bounding box as x, y, width, height.
type BBox [4]float64

// Center returns the midpoint of the box.
func (b BBox) Center() Point {
	return Point{
		X: b[0] + b[2]/2,
		Y: b[1] + b[3]/2,
	}
}
