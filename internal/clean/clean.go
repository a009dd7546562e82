// Package clean applies the two post-processing correction passes to
// merged records: restoring swapped height/weight pairs and undoing
// cm/inch and kg/lb unit confusion. Both passes key purely off the
// original cleaning categories, so re-running either on its own output
// is a no-op, and both return new slices rather than mutating their
// input.
package clean

import (
	"github.com/growthdata/growthviz/internal/model"
)

// Unit conversion factors. A Low flag means the value was recorded in
// the customary unit (inches or pounds) and is too small in metric; a
// High flag means the metric value was read as customary and is too
// large.
const (
	cmPerInch = 2.54
	lbPerKg   = 2.2046
)

// SwappedValues returns a copy of the records with height and weight
// exchanged on every row where BOTH categories carry a swap flag, the
// postprocess categories set to Include-Fixed-Swap for those rows, and
// BMI recomputed throughout. Rows flagged as swapped on only one side
// are left untouched: correcting a swap requires agreement from both
// measurements.
func SwappedValues(records []model.MergedRecord) []model.MergedRecord {
	out := make([]model.MergedRecord, len(records))
	copy(out, records)

	for i := range out {
		rec := &out[i]
		rec.PostprocessHeightCat = rec.HeightCat
		rec.PostprocessWeightCat = rec.WeightCat

		if rec.HeightCat.IsSwap() && rec.WeightCat.IsSwap() {
			rec.Height, rec.Weight = rec.Weight, rec.Height
			rec.PostprocessHeightCat = model.CategoryFixedSwap
			rec.PostprocessWeightCat = model.CategoryFixedSwap
		}

		rec.BMI = model.ComputeBMI(rec.Height, rec.Weight)
	}

	return out
}

// UnitErrors returns a copy of the records with unit-error values
// converted back: Low values are multiplied by the unit factor, High
// values divided, independently per side (height uses the cm/inch
// factor, weight kg/lb). Corrected sides get the Include-UL/Include-UH
// postprocess categories; BMI is recomputed throughout.
//
// The adult algorithm only emits an undifferentiated unit-error label
// with no direction, so this correction applies to pediatric data.
func UnitErrors(records []model.MergedRecord) []model.MergedRecord {
	out := make([]model.MergedRecord, len(records))
	copy(out, records)

	for i := range out {
		rec := &out[i]
		rec.PostprocessHeightCat = rec.HeightCat
		rec.PostprocessWeightCat = rec.WeightCat

		switch rec.HeightCat {
		case model.CategoryUnitErrorLow:
			rec.Height *= cmPerInch
			rec.PostprocessHeightCat = model.CategoryFixedUnitLow
		case model.CategoryUnitErrorHigh:
			rec.Height /= cmPerInch
			rec.PostprocessHeightCat = model.CategoryFixedUnitHigh
		}

		switch rec.WeightCat {
		case model.CategoryUnitErrorLow:
			rec.Weight *= lbPerKg
			rec.PostprocessWeightCat = model.CategoryFixedUnitLow
		case model.CategoryUnitErrorHigh:
			rec.Weight /= lbPerKg
			rec.PostprocessWeightCat = model.CategoryFixedUnitHigh
		}

		rec.BMI = model.ComputeBMI(rec.Height, rec.Weight)
	}

	return out
}
