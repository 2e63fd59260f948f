package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"geotag/internal/config"
	"geotag/internal/geojson"
	"geotag/internal/record"
	"geotag/internal/worldfile"
)

const (
	recordExt    = ".json"
	worldfileExt = ".tfw"
	geojsonExt   = ".geojson"
)

type recordResult struct {
	name       string
	source     record.CenterSource
	points     int
	skipReason string
}

func parseFlags(cfg config.Config) (config.Config, error) {
	flag.StringVar(&cfg.JSONDir, "json-dir", "", "Directory of detection-record .json files")
	flag.StringVar(&cfg.TFWDir, "tfw-dir", "", "Directory of matching .tfw world files")
	flag.StringVar(&cfg.OutDir, "out", cfg.OutDir, "Output directory")
	flag.BoolVar(&cfg.PrintOnly, "print", false, "Print results instead of writing output files")
	flag.BoolVar(&cfg.GeoJSON, "geojson", false, "Also write a per-image GeoJSON sidecar")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: geotag --json-dir <dir> --tfw-dir <dir> [--out <dir>] [--print] [--geojson]\n\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if cfg.JSONDir == "" {
		return config.Config{}, fmt.Errorf("json-dir is required")
	}
	if cfg.TFWDir == "" {
		return config.Config{}, fmt.Errorf("tfw-dir is required")
	}
	return cfg, nil
}

func runProcess(out io.Writer, logger zerolog.Logger, cfg config.Config) error {
	files, err := findRecordFiles(cfg.JSONDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found in %s", recordExt, cfg.JSONDir)
	}

	if !cfg.PrintOnly {
		if err := os.MkdirAll(cfg.GISDir(), 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	results := make([]recordResult, 0, len(files))
	for _, path := range files {
		results = append(results, processRecord(out, logger, cfg, path))
	}

	return writeSummaryTable(out, results)
}

func processRecord(out io.Writer, logger zerolog.Logger, cfg config.Config, jsonPath string) recordResult {
	name := filepath.Base(jsonPath)
	res := recordResult{name: name}

	base := strings.TrimSuffix(name, recordExt)
	tfwPath := filepath.Join(cfg.TFWDir, base+worldfileExt)

	transform, err := worldfile.Load(tfwPath)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Str("record", name).Str("worldfile", tfwPath).Msg("no matching world file, skipping")
		res.skipReason = "missing world file"
		return res
	}
	if err != nil {
		logger.Error().Err(err).Str("record", name).Msg("unusable world file, skipping")
		res.skipReason = "malformed world file"
		return res
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		logger.Error().Err(err).Str("record", name).Msg("unreadable record, skipping")
		res.skipReason = "unreadable record"
		return res
	}

	rec, err := record.Decode(data)
	if err != nil {
		logger.Error().Err(err).Str("record", name).Msg("invalid record, skipping")
		res.skipReason = "invalid record"
		return res
	}

	res.source = rec.Source()
	if rec.Source() == record.SourceNone {
		logger.Warn().Str("record", name).Msg("record has no centers or bboxes, skipping")
		res.skipReason = "no center data"
		return res
	}

	refs := rec.Locate(transform)
	res.points = len(refs)

	if cfg.PrintOnly {
		if err := printRefs(out, name, refs); err != nil {
			res.skipReason = "print failed"
		}
		return res
	}

	outPath := filepath.Join(cfg.GISDir(), name)
	if err := writeRecord(rec, refs, outPath); err != nil {
		logger.Error().Err(err).Str("record", name).Msg("write failed, skipping")
		res.skipReason = "write failed"
		return res
	}

	if cfg.GeoJSON {
		sidecarPath := filepath.Join(cfg.GISDir(), base+geojsonExt)
		fc := geojson.BuildPointsFC(base, refs)
		if err := geojson.WriteFeatureCollection(sidecarPath, fc); err != nil {
			logger.Error().Err(err).Str("record", name).Msg("geojson sidecar write failed")
		}
	}

	logger.Info().Str("record", name).Int("points", res.points).Str("out", outPath).Msg("record geotagged")
	return res
}

func writeRecord(rec *record.Record, refs []record.GeoRef, outPath string) error {
	data, err := rec.WithGIS(refs)
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, data, 0o644)
}

func printRefs(out io.Writer, name string, refs []record.GeoRef) error {
	data, err := json.Marshal(refs)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s: %s\n", name, data)
	return err
}

func findRecordFiles(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat json-dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("json-dir must be a directory")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read json-dir: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), recordExt) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

func writeSummaryTable(w io.Writer, results []recordResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "record\tpoints\tsource\tstatus"); err != nil {
		return err
	}

	for _, res := range results {
		status := "ok"
		if res.skipReason != "" {
			status = "skipped: " + res.skipReason
		}
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", res.name, res.points, res.source, status); err != nil {
			return err
		}
	}

	return tw.Flush()
}
