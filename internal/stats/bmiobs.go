package stats

import (
	"github.com/growthdata/growthviz/internal/model"
)

// CategoryOnlyOne labels a BMI pseudo-observation where only one of the
// height/weight pair was available or accepted, so no BMI judgment is
// possible.
const CategoryOnlyOne model.Category = "Only Wt or Ht"

// AppendBMIObservations relabels merged adult records as BMI
// pseudo-observations and appends them to the observation list, so BMI
// can be charted alongside the raw measurements. A record is "Include"
// when both sides were accepted, "Implausible" when either side was
// flagged implausible, and "Only Wt or Ht" otherwise. The inputs are not
// modified.
func AppendBMIObservations(obs []model.Observation, records []model.MergedRecord) []model.Observation {
	out := make([]model.Observation, 0, len(obs)+len(records))
	out = append(out, obs...)

	for i := range records {
		rec := &records[i]
		out = append(out, model.Observation{
			ID:          rec.ID,
			SubjID:      rec.SubjID,
			Sex:         rec.Sex,
			AgeDays:     rec.Age * model.DaysPerYear,
			Age:         rec.Age,
			Param:       model.MeasureBMI,
			Measurement: rec.BMI,
			CleanValue:  bmiLabel(rec),
			Include:     rec.IncludeBoth,
		})
	}

	return out
}

func bmiLabel(rec *model.MergedRecord) model.Category {
	switch {
	case rec.IncludeBoth:
		return model.CategoryInclude
	case rec.WeightCat == model.CategoryImplausible || rec.HeightCat == model.CategoryImplausible:
		return model.CategoryImplausible
	default:
		return CategoryOnlyOne
	}
}
