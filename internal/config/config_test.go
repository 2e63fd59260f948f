package config

import (
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestLoadDefaults(t *testing.T) {
	is := is.New(t)

	cfg := Load()
	is.Equal(cfg.OutDir, "outputs")
	is.Equal(cfg.GISDir(), filepath.Join("outputs", "gis"))
}

func TestLoadEnvOverride(t *testing.T) {
	is := is.New(t)
	t.Setenv("GEOTAG_OUT_DIR", "/tmp/results")

	cfg := Load()
	is.Equal(cfg.OutDir, "/tmp/results")
	is.Equal(cfg.GISDir(), filepath.Join("/tmp/results", "gis"))
}
