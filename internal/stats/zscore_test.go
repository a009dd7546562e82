package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthdata/growthviz/internal/model"
	"github.com/growthdata/growthviz/internal/percentiles"
)

func TestAddModifiedZScores(t *testing.T) {
	// At L=1 the half-distance reduces to 2*M*S, so a value one
	// half-distance above the median scores exactly 1.
	ref := percentiles.NewReference()
	ref.Add(model.MeasureBMI, []model.PercentileRow{
		{Sex: model.SexMale, AgeMonths: 120.5, Measure: model.MeasureBMI, L: 1, M: 16, S: 0.1},
	})
	ref.Add(model.MeasureHeight, []model.PercentileRow{
		{Sex: model.SexMale, AgeMonths: 120.5, Measure: model.MeasureHeight, L: 1, M: 140, S: 0.05},
	})

	records := []model.MergedRecord{
		{
			SubjID: "a", Sex: model.SexMale, Age: 10, RoundedAge: 10,
			Height: 154, Weight: math.NaN(), BMI: 19.2,
			HeightZ: math.NaN(), WeightZ: math.NaN(), BMIZ: math.NaN(),
		},
	}

	out := AddModifiedZScores(records, ref)
	require.Len(t, out, 1)

	// height: (154 - 140) / (2*140*0.05) = 14/14 = 1.
	assert.InDelta(t, 1.0, out[0].HeightZ, 1e-9)
	// bmi: (19.2 - 16) / (2*16*0.1) = 3.2/3.2 = 1.
	assert.InDelta(t, 1.0, out[0].BMIZ, 1e-9)
	// No weight value, so no weight z-score.
	assert.True(t, math.IsNaN(out[0].WeightZ))

	// Input untouched.
	assert.True(t, math.IsNaN(records[0].HeightZ))
}

func TestAddModifiedZScores_NoChartRow(t *testing.T) {
	ref := percentiles.NewReference()
	records := []model.MergedRecord{
		{SubjID: "a", Sex: model.SexMale, Age: 10, Height: 140, Weight: 35, BMI: 17.9},
	}

	out := AddModifiedZScores(records, ref)
	require.Len(t, out, 1)
	assert.True(t, math.IsNaN(out[0].HeightZ))
	assert.True(t, math.IsNaN(out[0].WeightZ))
	assert.True(t, math.IsNaN(out[0].BMIZ))
}

func TestAddZScores(t *testing.T) {
	ref := percentiles.NewReference()
	ref.Add(model.MeasureHeight, []model.PercentileRow{
		{Sex: model.SexMale, Age: 30, Measure: model.MeasureHeight, Mean: 176, SD: 7},
	})
	ref.Add(model.MeasureWeight, []model.PercentileRow{
		{Sex: model.SexMale, Age: 30, Measure: model.MeasureWeight, Mean: 80, SD: 10},
	})

	records := []model.MergedRecord{
		{
			SubjID: "a", Sex: model.SexMale, Age: 30.2, RoundedAge: 30,
			Height: 183, Weight: 75, BMI: 22.4,
			HeightZ: math.NaN(), WeightZ: math.NaN(), BMIZ: math.NaN(),
		},
		{
			SubjID: "b", Sex: model.SexFemale, Age: 30, RoundedAge: 30,
			Height: 165, Weight: 60, BMI: 22.0,
			HeightZ: math.NaN(), WeightZ: math.NaN(), BMIZ: math.NaN(),
		},
	}

	out := AddZScores(records, ref)
	require.Len(t, out, 2)

	assert.InDelta(t, 1.0, out[0].HeightZ, 1e-9)
	assert.InDelta(t, -0.5, out[0].WeightZ, 1e-9)
	// No BMI reference loaded.
	assert.True(t, math.IsNaN(out[0].BMIZ))

	// No female rows in the reference.
	assert.True(t, math.IsNaN(out[1].HeightZ))
}

func TestAddZScores_ZeroSD(t *testing.T) {
	ref := percentiles.NewReference()
	ref.Add(model.MeasureHeight, []model.PercentileRow{
		{Sex: model.SexMale, Age: 30, Measure: model.MeasureHeight, Mean: 176, SD: 0},
	})

	out := AddZScores([]model.MergedRecord{
		{SubjID: "a", Sex: model.SexMale, RoundedAge: 30, Height: 183},
	}, ref)
	require.Len(t, out, 1)
	assert.True(t, math.IsNaN(out[0].HeightZ))
}
