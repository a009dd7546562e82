package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/growthdata/growthviz/internal/common"
	"github.com/growthdata/growthviz/internal/ingest"
	"github.com/growthdata/growthviz/internal/merge"
	"github.com/growthdata/growthviz/internal/model"
	"github.com/growthdata/growthviz/internal/percentiles"
	"github.com/growthdata/growthviz/internal/stats"
)

// resolvePath joins relative file arguments against the configured data
// directory. Absolute paths and paths that exist as given win.
func resolvePath(path string) string {
	dir := viper.GetString("data_dir")
	if dir == "" || filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return filepath.Join(dir, path)
}

func currentMode() (model.Mode, error) {
	mode := model.Mode(viper.GetString("mode"))
	if !mode.Valid() {
		return "", fmt.Errorf("%w: %q", common.ErrUnknownMode, viper.GetString("mode"))
	}
	return mode, nil
}

// loadObservations reads and normalizes an observation file, restricted
// to the mode's analysis age window.
func loadObservations(path string, mode model.Mode) ([]model.Observation, error) {
	obs, err := ingest.ReadObservations(resolvePath(path))
	if err != nil {
		return nil, common.NewUserError("could not load observations", err)
	}
	return ingest.KeepAgeRange(obs, mode)
}

// loadReference builds the percentile reference for the mode from the
// chart paths in the config. Missing paths produce a nil reference;
// z-score enrichment is then skipped.
func loadReference(mode model.Mode) (*percentiles.Reference, error) {
	ref := percentiles.NewReference()

	if mode == model.ModeAdults {
		path := viper.GetString("reference.adult")
		if path == "" {
			common.LogDebug("no adult reference configured, skipping z scores", common.Fields{"key": "reference.adult"})
			return nil, nil
		}
		rows, err := percentiles.LoadAdult(resolvePath(path))
		if err != nil {
			return nil, common.NewUserError("could not load adult reference", err)
		}
		for _, measure := range []model.Measure{model.MeasureHeight, model.MeasureWeight, model.MeasureBMI} {
			var subset []model.PercentileRow
			for _, row := range rows {
				if row.Measure == measure {
					subset = append(subset, row)
				}
			}
			ref.Add(measure, subset)
		}
		return ref, nil
	}

	charts := []struct {
		key     string
		measure model.Measure
	}{
		{"reference.weight", model.MeasureWeight},
		{"reference.height", model.MeasureHeight},
		{"reference.bmi", model.MeasureBMI},
	}
	loaded := false
	for _, c := range charts {
		path := viper.GetString(c.key)
		if path == "" {
			continue
		}
		rows, err := percentiles.LoadPediatric(resolvePath(path), c.measure)
		if err != nil {
			return nil, common.NewUserError("could not load pediatric chart", err)
		}
		ref.Add(c.measure, rows)
		loaded = true
	}
	if !loaded {
		common.LogDebug("no pediatric charts configured, skipping z scores", common.Fields{
			"keys": "reference.weight, reference.height, reference.bmi",
		})
		return nil, nil
	}
	return ref, nil
}

// loadMerged runs the front half of the pipeline: ingest, age
// restriction, merge, and z-score enrichment when a reference is
// configured.
func loadMerged(path string, mode model.Mode) ([]model.MergedRecord, error) {
	obs, err := loadObservations(path, mode)
	if err != nil {
		return nil, err
	}
	return mergeObservations(obs, mode)
}

// mergeObservations merges already-loaded observations and enriches
// them with z-scores when a reference is configured.
func mergeObservations(obs []model.Observation, mode model.Mode) ([]model.MergedRecord, error) {
	records := merge.Merge(obs)

	ref, err := loadReference(mode)
	if err != nil {
		return nil, err
	}
	if ref != nil {
		if mode == model.ModeAdults {
			records = stats.AddZScores(records, ref)
		} else {
			records = stats.AddModifiedZScores(records, ref)
		}
	}

	return records, nil
}
