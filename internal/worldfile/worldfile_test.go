package worldfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"geotag/internal/geo"
)

func TestParse(t *testing.T) {
	is := is.New(t)

	input := "0.5\n0.0\n0.0\n-0.5\n100.0\n200.0\n"
	tf, err := Parse(strings.NewReader(input))
	is.NoErr(err)
	is.Equal(tf, geo.Transform{
		PixelSizeX: 0.5,
		PixelSizeY: -0.5,
		OriginX:    100,
		OriginY:    200,
	})
}

func TestParseTolerance(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "surrounding whitespace",
			input: "  0.5 \n0\n0\n-0.5\n100\n200\n",
		},
		{
			name:  "no trailing newline",
			input: "0.5\n0\n0\n-0.5\n100\n200",
		},
		{
			name:  "extra trailing lines",
			input: "0.5\n0\n0\n-0.5\n100\n200\nnot a number\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			tf, err := Parse(strings.NewReader(tt.input))
			is.NoErr(err)
			is.Equal(tf.PixelSizeX, 0.5)
			is.Equal(tf.OriginY, 200.0)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "too few lines",
			input: "1\n2\n3\n",
		},
		{
			name:  "empty",
			input: "",
		},
		{
			name:  "non-numeric line",
			input: "0.5\n0\nabc\n-0.5\n100\n200\n",
		},
		{
			name:  "blank coefficient line",
			input: "0.5\n\n0\n-0.5\n100\n200\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "tile.tfw")
	err := os.WriteFile(path, []byte("2\n0\n0\n-2\n10\n20\n"), 0o644)
	is.NoErr(err)

	tf, err := Load(path)
	is.NoErr(err)

	got := tf.Apply(geo.Point{X: 1, Y: 1})
	is.Equal(got, geo.GeoPoint{X: 12, Y: 18})
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.tfw"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}
