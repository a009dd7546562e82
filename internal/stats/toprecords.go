package stats

import (
	"math"
	"sort"
	"strings"

	"github.com/growthdata/growthviz/internal/model"
)

// SortField selects which merged-record value TopRecords orders by.
type SortField string

const (
	// SortByHeight orders by the stature value.
	SortByHeight SortField = "height"
	// SortByWeight orders by the mass value.
	SortByWeight SortField = "weight"
	// SortByBMI orders by the derived BMI.
	SortByBMI SortField = "bmi"
)

// TopRecordsOptions filters and orders the extreme-record view.
type TopRecordsOptions struct {
	Field SortField

	// AgeRange restricts by rounded age when non-nil (closed interval).
	AgeRange *[2]int
	// Sex restricts to one sex when non-nil.
	Sex *model.Sex
	// WeightExclusions / HeightExclusions keep only records whose
	// category is in the given set, when non-empty.
	WeightExclusions []model.Category
	HeightExclusions []model.Category

	// Smallest orders ascending instead of descending.
	Smallest bool
	// Limit caps the number of rows; 0 means 10.
	Limit int
}

// TopRecord is one display row of the extreme-record view, with values
// rounded for presentation and the Exclude- prefix stripped from
// category labels the way the analyst-facing tables show them.
type TopRecord struct {
	SubjID    string
	Sex       string
	Age       float64
	Height    float64
	HeightCat string
	HeightZ   float64
	Weight    float64
	WeightCat string
	WeightZ   float64
	BMI       float64
	BMIZ      float64
}

// TopRecords returns the most extreme merged records by the configured
// field. Records whose sort value is NaN are excluded.
func TopRecords(records []model.MergedRecord, opts TopRecordsOptions) []TopRecord {
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}

	working := make([]model.MergedRecord, 0, len(records))
	for i := range records {
		rec := records[i]
		if opts.AgeRange != nil && (rec.RoundedAge < opts.AgeRange[0] || rec.RoundedAge > opts.AgeRange[1]) {
			continue
		}
		if opts.Sex != nil && rec.Sex != *opts.Sex {
			continue
		}
		if len(opts.WeightExclusions) > 0 && !containsCategory(opts.WeightExclusions, rec.WeightCat) {
			continue
		}
		if len(opts.HeightExclusions) > 0 && !containsCategory(opts.HeightExclusions, rec.HeightCat) {
			continue
		}
		if math.IsNaN(sortValue(&rec, opts.Field)) {
			continue
		}
		working = append(working, rec)
	}

	sort.SliceStable(working, func(i, j int) bool {
		vi, vj := sortValue(&working[i], opts.Field), sortValue(&working[j], opts.Field)
		if opts.Smallest {
			return vi < vj
		}
		return vi > vj
	})

	if len(working) > limit {
		working = working[:limit]
	}

	out := make([]TopRecord, len(working))
	for i := range working {
		rec := &working[i]
		out[i] = TopRecord{
			SubjID:    rec.SubjID,
			Sex:       rec.Sex.Label(),
			Age:       round(rec.Age, 2),
			Height:    round(rec.Height, 1),
			HeightCat: strings.TrimPrefix(string(rec.HeightCat), "Exclude-"),
			HeightZ:   rec.HeightZ,
			Weight:    round(rec.Weight, 1),
			WeightCat: strings.TrimPrefix(string(rec.WeightCat), "Exclude-"),
			WeightZ:   rec.WeightZ,
			BMI:       rec.BMI,
			BMIZ:      rec.BMIZ,
		}
	}
	return out
}

func sortValue(rec *model.MergedRecord, field SortField) float64 {
	switch field {
	case SortByHeight:
		return rec.Height
	case SortByWeight:
		return rec.Weight
	default:
		return rec.BMI
	}
}

func containsCategory(set []model.Category, c model.Category) bool {
	for _, s := range set {
		if s == c {
			return true
		}
	}
	return false
}

func round(v float64, decimals int) float64 {
	if math.IsNaN(v) {
		return v
	}
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
