// Package ingest reads cleaning-algorithm output files and normalizes
// them into the canonical observation schema.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/growthdata/growthviz/internal/common"
	"github.com/growthdata/growthviz/internal/model"
)

// Column-name variants seen across historical cleaning runs. The first
// name in each list is canonical.
var (
	cleanValueAliases = []string{"clean_value", "clean_res", "result"}
	ageDaysAliases    = []string{"agedays", "age_days"}
	ageYearsAliases   = []string{"age_years", "ageyears", "age"}
)

// header maps canonical column names to their index in the CSV header.
type header map[string]int

func (h header) lookup(aliases ...string) (int, bool) {
	for _, a := range aliases {
		if i, ok := h[a]; ok {
			return i, true
		}
	}
	return 0, false
}

// ReadObservations loads a cleaning-algorithm output CSV and returns
// normalized observations. Column-name variants (clean_res/result,
// age_days) are unified; age in fractional years is derived from agedays
// when the file carries days.
func ReadObservations(path string) ([]model.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open observation file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var reader io.Reader = f
	if fi, statErr := f.Stat(); statErr == nil && fi.Size() > 1<<20 {
		bar := progressbar.DefaultBytes(fi.Size(), "loading observations")
		reader = io.TeeReader(f, bar)
	}

	obs, err := readObservations(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	slog.Info("loaded observations", "path", path, "rows", len(obs))
	return obs, nil
}

func readObservations(r io.Reader) ([]model.Observation, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if err != nil {
		return nil, common.ErrEmptyFile
	}
	h := make(header, len(head))
	for i, name := range head {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}

	idIdx, hasID := h.lookup("id")
	subjIdx, ok := h.lookup("subjid")
	if !ok {
		return nil, fmt.Errorf("%w: subjid", common.ErrMissingColumn)
	}
	sexIdx, ok := h.lookup("sex")
	if !ok {
		return nil, fmt.Errorf("%w: sex", common.ErrMissingColumn)
	}
	paramIdx, ok := h.lookup("param")
	if !ok {
		return nil, fmt.Errorf("%w: param", common.ErrMissingColumn)
	}
	measIdx, ok := h.lookup("measurement")
	if !ok {
		return nil, fmt.Errorf("%w: measurement", common.ErrMissingColumn)
	}
	cleanIdx, ok := h.lookup(cleanValueAliases...)
	if !ok {
		return nil, fmt.Errorf("%w: clean_value", common.ErrMissingColumn)
	}
	ageDaysIdx, hasAgeDays := h.lookup(ageDaysAliases...)
	ageYearsIdx, hasAgeYears := h.lookup(ageYearsAliases...)
	if !hasAgeDays && !hasAgeYears {
		return nil, fmt.Errorf("%w: agedays or age_years", common.ErrMissingColumn)
	}

	var obs []model.Observation
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		line++

		o := model.Observation{
			SubjID:     strings.TrimSpace(rec[subjIdx]),
			Param:      model.Measure(strings.TrimSpace(rec[paramIdx])),
			CleanValue: model.Category(strings.TrimSpace(rec[cleanIdx])),
		}
		if hasID {
			o.ID = strings.TrimSpace(rec[idIdx])
		}

		sex, err := strconv.Atoi(strings.TrimSpace(rec[sexIdx]))
		if err != nil {
			return nil, fmt.Errorf("line %d sex: %w: %q", line, common.ErrBadNumeric, rec[sexIdx])
		}
		o.Sex = model.Sex(sex)

		o.Measurement, err = strconv.ParseFloat(strings.TrimSpace(rec[measIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d measurement: %w: %q", line, common.ErrBadNumeric, rec[measIdx])
		}

		if hasAgeDays {
			o.AgeDays, err = strconv.ParseFloat(strings.TrimSpace(rec[ageDaysIdx]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d agedays: %w: %q", line, common.ErrBadNumeric, rec[ageDaysIdx])
			}
		} else {
			o.Age, err = strconv.ParseFloat(strings.TrimSpace(rec[ageYearsIdx]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d age: %w: %q", line, common.ErrBadNumeric, rec[ageYearsIdx])
			}
			o.AgeDays = o.Age * model.DaysPerYear
		}

		obs = append(obs, o)
	}

	if len(obs) == 0 {
		return nil, common.ErrEmptyFile
	}

	return Normalize(obs), nil
}

// Normalize derives the age-in-years and inclusion fields on a copy of
// the input. Age already present (from an age_years file) is left alone;
// otherwise it is AgeDays / 365.25.
func Normalize(obs []model.Observation) []model.Observation {
	out := make([]model.Observation, len(obs))
	for i, o := range obs {
		if o.Age == 0 && o.AgeDays != 0 {
			o.Age = o.AgeDays / model.DaysPerYear
		}
		o.Include = o.CleanValue == model.CategoryInclude
		out[i] = o
	}
	return out
}

// KeepAgeRange restricts observations to the analysis window for the
// given mode: [18, 80] years for adults, [2, 25] for pediatrics. Both
// bounds are inclusive.
func KeepAgeRange(obs []model.Observation, mode model.Mode) ([]model.Observation, error) {
	var lo, hi float64
	switch mode {
	case model.ModeAdults:
		lo, hi = 18, 80
	case model.ModePediatrics:
		lo, hi = 2, 25
	default:
		return nil, fmt.Errorf("%w: %q (valid modes are %q and %q)",
			common.ErrUnknownMode, string(mode), model.ModeAdults, model.ModePediatrics)
	}

	out := make([]model.Observation, 0, len(obs))
	for _, o := range obs {
		if o.Age >= lo && o.Age <= hi {
			out = append(out, o)
		}
	}
	return out, nil
}
