package config

import (
	"os"
	"path/filepath"
)

const defaultOutDir = "outputs"

// Config carries the batch settings, including the output path, so no
// package holds process-wide filesystem state.
type Config struct {
	JSONDir   string
	TFWDir    string
	OutDir    string
	PrintOnly bool
	GeoJSON   bool
}

// Load builds a Config with environment-backed defaults. Flag values are
// layered on top by the caller.
func Load() Config {
	return Config{
		OutDir: getEnv("GEOTAG_OUT_DIR", defaultOutDir),
	}
}

// GISDir is the directory enriched records are written to.
func (c Config) GISDir() string {
	return filepath.Join(c.OutDir, "gis")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
