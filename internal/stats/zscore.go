// Package stats computes the statistical enrichment over merged
// height/weight records: modified z-scores against the growth-chart
// references and clean-versus-raw BMI summary tables.
package stats

import (
	"math"

	"github.com/growthdata/growthviz/internal/model"
	"github.com/growthdata/growthviz/internal/percentiles"
)

// AddModifiedZScores fills the HeightZ, WeightZ, and BMIZ columns on a
// copy of the records using the pediatric LMS charts. The modified
// z-score divides by the LMS half-distance at the median instead of a
// symmetric standard deviation, which keeps extreme values from being
// distorted by the skew of the fitted distribution. Records with no
// matching chart row keep NaN.
func AddModifiedZScores(records []model.MergedRecord, ref *percentiles.Reference) []model.MergedRecord {
	out := make([]model.MergedRecord, len(records))
	copy(out, records)

	for i := range out {
		rec := &out[i]
		agemos := percentiles.AgemosKey(rec.Age)
		rec.HeightZ = modifiedZ(ref, model.MeasureHeight, rec.Sex, agemos, rec.Height)
		rec.WeightZ = modifiedZ(ref, model.MeasureWeight, rec.Sex, agemos, rec.Weight)
		rec.BMIZ = modifiedZ(ref, model.MeasureBMI, rec.Sex, agemos, rec.BMI)
	}

	return out
}

func modifiedZ(ref *percentiles.Reference, measure model.Measure, sex model.Sex, agemos, value float64) float64 {
	row, ok := ref.LookupMonths(measure, sex, agemos)
	if !ok || math.IsNaN(value) {
		return math.NaN()
	}
	return (value - row.M) / row.HalfOfTwoZScores()
}

// AddZScores fills the z-score columns on a copy of the records using
// the adult reference, which supplies mean and standard deviation
// directly: z = (value - mean) / sd, joined on (sex, rounded age).
func AddZScores(records []model.MergedRecord, ref *percentiles.Reference) []model.MergedRecord {
	out := make([]model.MergedRecord, len(records))
	copy(out, records)

	for i := range out {
		rec := &out[i]
		rec.HeightZ = adultZ(ref, model.MeasureHeight, rec.Sex, rec.RoundedAge, rec.Height)
		rec.WeightZ = adultZ(ref, model.MeasureWeight, rec.Sex, rec.RoundedAge, rec.Weight)
		rec.BMIZ = adultZ(ref, model.MeasureBMI, rec.Sex, rec.RoundedAge, rec.BMI)
	}

	return out
}

func adultZ(ref *percentiles.Reference, measure model.Measure, sex model.Sex, age int, value float64) float64 {
	row, ok := ref.LookupYears(measure, sex, age)
	if !ok || math.IsNaN(value) || row.SD == 0 {
		return math.NaN()
	}
	return (value - row.Mean) / row.SD
}
