package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/growthdata/growthviz/internal/model"
)

// BMIStatsOptions selects which aggregate columns BMIStats computes and
// which records it considers.
type BMIStatsOptions struct {
	IncludeMin       bool
	IncludeMean      bool
	IncludeMax       bool
	IncludeSD        bool
	IncludeCount     bool
	IncludeCountDiff bool

	// AgeRange is the closed [lo, hi] rounded-age window.
	AgeRange [2]int

	// IncludeMissing keeps rows with zero or missing height or weight
	// in the raw aggregates. Default false: a zero height produces an
	// infinite BMI that would corrupt min/max/mean.
	IncludeMissing bool
}

// DefaultBMIStatsOptions enables every column over the adult default age
// window.
func DefaultBMIStatsOptions() BMIStatsOptions {
	return BMIStatsOptions{
		IncludeMin:       true,
		IncludeMean:      true,
		IncludeMax:       true,
		IncludeSD:        true,
		IncludeCount:     true,
		IncludeCountDiff: true,
		AgeRange:         [2]int{20, 65},
	}
}

// DefaultBMIStatsOptionsForMode is DefaultBMIStatsOptions with the age
// window narrowed to the mode's analysis range. The adult default would
// drop nearly all pediatric data.
func DefaultBMIStatsOptionsForMode(mode model.Mode) BMIStatsOptions {
	opts := DefaultBMIStatsOptions()
	if mode == model.ModePediatrics {
		opts.AgeRange = [2]int{2, 25}
	}
	return opts
}

// BMIStatsRow is one (sex, age) aggregate row with side-by-side clean
// and raw columns. "Clean" restricts to records where both height and
// weight were accepted; "raw" covers all records in the window.
// Columns whose toggle was off are NaN (or zero for counts).
type BMIStatsRow struct {
	Sex        string
	RoundedAge int

	MinClean   float64
	MeanClean  float64
	MaxClean   float64
	SDClean    float64
	CountClean int

	MinRaw   float64
	MeanRaw  float64
	MaxRaw   float64
	SDRaw    float64
	CountRaw int

	CountDiff int
}

// BMIStats computes the clean/raw BMI summary grouped by sex and rounded
// age. Only groups with at least one clean record appear, matching the
// inner-join semantics of pairing the two aggregate tables. The input is
// not modified; output order is sex label then age.
func BMIStats(records []model.MergedRecord, opts BMIStatsOptions) []BMIStatsRow {
	type key struct {
		sex model.Sex
		age int
	}

	groups := make(map[key]*struct{ clean, raw []float64 })

	for i := range records {
		rec := &records[i]
		if rec.RoundedAge < opts.AgeRange[0] || rec.RoundedAge > opts.AgeRange[1] {
			continue
		}
		if !opts.IncludeMissing {
			// NaN comparisons are false, so missing sides drop out here
			// along with zero values.
			if !(rec.Weight > 0) || !(rec.Height > 0) {
				continue
			}
		}
		k := key{rec.Sex, rec.RoundedAge}
		g, ok := groups[k]
		if !ok {
			g = &struct{ clean, raw []float64 }{}
			groups[k] = g
		}
		g.raw = append(g.raw, rec.BMI)
		if rec.IncludeBoth {
			g.clean = append(g.clean, rec.BMI)
		}
	}

	rows := make([]BMIStatsRow, 0, len(groups))
	for k, g := range groups {
		if len(g.clean) == 0 {
			continue
		}
		row := BMIStatsRow{Sex: k.sex.Label(), RoundedAge: k.age}
		fillAggregates(&row, g.clean, g.raw, opts)
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Sex != rows[j].Sex {
			return rows[i].Sex < rows[j].Sex
		}
		return rows[i].RoundedAge < rows[j].RoundedAge
	})

	return rows
}

func fillAggregates(row *BMIStatsRow, clean, raw []float64, opts BMIStatsOptions) {
	nan := math.NaN()
	row.MinClean, row.MeanClean, row.MaxClean, row.SDClean = nan, nan, nan, nan
	row.MinRaw, row.MeanRaw, row.MaxRaw, row.SDRaw = nan, nan, nan, nan

	if opts.IncludeMin {
		row.MinClean = floats.Min(clean)
		row.MinRaw = floats.Min(raw)
	}
	if opts.IncludeMean {
		row.MeanClean = stat.Mean(clean, nil)
		row.MeanRaw = stat.Mean(raw, nil)
	}
	if opts.IncludeMax {
		row.MaxClean = floats.Max(clean)
		row.MaxRaw = floats.Max(raw)
	}
	if opts.IncludeSD {
		row.SDClean = stat.StdDev(clean, nil)
		row.SDRaw = stat.StdDev(raw, nil)
	}
	if opts.IncludeCount {
		row.CountClean = len(clean)
		row.CountRaw = len(raw)
	}
	if opts.IncludeMean && opts.IncludeCount && opts.IncludeCountDiff {
		row.CountDiff = row.CountRaw - row.CountClean
	}
}
