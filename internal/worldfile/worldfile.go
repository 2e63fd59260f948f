// Package worldfile reads ESRI world files, the six-line text side-cars
// that pair one-to-one with a raster image and encode its affine
// georeferencing transform.
package worldfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"geotag/internal/geo"
)

// ErrMalformed reports a world file without six parseable coefficient lines.
var ErrMalformed = errors.New("malformed world file")

const coefficientCount = 6

// Parse reads the six transform coefficients from r, in world-file order:
// pixel-size-x, rotation-x, rotation-y, pixel-size-y, origin-x, origin-y.
// Content past the sixth line is ignored.
func Parse(r io.Reader) (geo.Transform, error) {
	var coeffs [coefficientCount]float64

	scanner := bufio.NewScanner(r)
	parsed := 0
	for parsed < coefficientCount && scanner.Scan() {
		value, err := parseCoefficientLine(scanner.Text(), parsed)
		if err != nil {
			return geo.Transform{}, err
		}
		coeffs[parsed] = value
		parsed++
	}

	if err := scanner.Err(); err != nil {
		return geo.Transform{}, fmt.Errorf("read world file: %w", err)
	}
	if parsed < coefficientCount {
		return geo.Transform{}, fmt.Errorf("%w: expected %d lines, got %d", ErrMalformed, coefficientCount, parsed)
	}

	return geo.Transform{
		PixelSizeX: coeffs[0],
		RotationX:  coeffs[1],
		RotationY:  coeffs[2],
		PixelSizeY: coeffs[3],
		OriginX:    coeffs[4],
		OriginY:    coeffs[5],
	}, nil
}

// Load reads the transform from the world file at path. A missing file
// surfaces the open error unchanged, so errors.Is(err, fs.ErrNotExist)
// distinguishes an absent artifact from a malformed one.
func Load(path string) (geo.Transform, error) {
	f, err := os.Open(path)
	if err != nil {
		return geo.Transform{}, err
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return geo.Transform{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func parseCoefficientLine(line string, index int) (float64, error) {
	trimmed := strings.TrimSpace(line)
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: %q is not a number", ErrMalformed, index+1, trimmed)
	}
	return value, nil
}
