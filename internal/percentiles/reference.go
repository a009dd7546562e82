package percentiles

import (
	"math"

	"github.com/growthdata/growthviz/internal/model"
)

type monthKey struct {
	measure model.Measure
	sex     model.Sex
	agemos  float64
}

type yearKey struct {
	measure model.Measure
	sex     model.Sex
	age     int
}

// Reference holds the loaded percentile tables keyed by measure, with
// indexes for the two join conventions: pediatric lookups by (sex, age
// in months) and adult lookups by (sex, rounded age in years).
type Reference struct {
	byMeasure map[model.Measure][]model.PercentileRow
	byMonth   map[monthKey]model.PercentileRow
	byYear    map[yearKey]model.PercentileRow
}

// NewReference creates an empty reference set.
func NewReference() *Reference {
	return &Reference{
		byMeasure: make(map[model.Measure][]model.PercentileRow),
		byMonth:   make(map[monthKey]model.PercentileRow),
		byYear:    make(map[yearKey]model.PercentileRow),
	}
}

// Add registers a percentile table for a measure and indexes its rows.
// Within one reference set, (sex, age, measure) is unique; a duplicate
// row overwrites the earlier one.
func (r *Reference) Add(measure model.Measure, rows []model.PercentileRow) {
	r.byMeasure[measure] = rows
	for _, row := range rows {
		if row.AgeMonths != 0 {
			r.byMonth[monthKey{measure, row.Sex, row.AgeMonths}] = row
		}
		r.byYear[yearKey{measure, row.Sex, int(row.Age)}] = row
	}
}

// Rows returns the full table for a measure, or nil if none was loaded.
func (r *Reference) Rows(measure model.Measure) []model.PercentileRow {
	return r.byMeasure[measure]
}

// LookupMonths finds the pediatric chart row for (measure, sex, age in
// months). The chart convention keys rows at half-month offsets, so
// callers pass round(ageYears*12) + 0.5.
func (r *Reference) LookupMonths(measure model.Measure, sex model.Sex, agemos float64) (model.PercentileRow, bool) {
	row, ok := r.byMonth[monthKey{measure, sex, agemos}]
	return row, ok
}

// LookupYears finds the adult reference row for (measure, sex, rounded
// age).
func (r *Reference) LookupYears(measure model.Measure, sex model.Sex, age int) (model.PercentileRow, bool) {
	row, ok := r.byYear[yearKey{measure, sex, age}]
	return row, ok
}

// AgemosKey converts an age in fractional years to the pediatric chart
// join key: the age rounded to whole months plus the half-month offset
// the CDC files use.
func AgemosKey(ageYears float64) float64 {
	return math.Round(ageYears*12) + 0.5
}
