package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthdata/growthviz/internal/model"
)

func TestExclusionInformation(t *testing.T) {
	obs := []model.Observation{
		{SubjID: "a", Param: model.MeasureHeight, CleanValue: model.CategoryInclude},
		{SubjID: "a", Param: model.MeasureWeight, CleanValue: model.CategoryInclude},
		{SubjID: "b", Param: model.MeasureHeight, CleanValue: model.CategoryInclude},
		{SubjID: "b", Param: model.MeasureWeight, CleanValue: model.CategoryCarriedForward},
		{SubjID: "c", Param: model.MeasureWeight, CleanValue: model.CategoryImplausible},
	}

	rows := ExclusionInformation(obs)
	require.Len(t, rows, 3)

	// Sorted by total count descending.
	assert.Equal(t, model.CategoryInclude, rows[0].Category)
	assert.Equal(t, 2, rows[0].HeightCount)
	assert.Equal(t, 1, rows[0].WeightCount)
	assert.Equal(t, 3, rows[0].Total)
	assert.InDelta(t, 100.0, rows[0].HeightPercent, 1e-9)
	assert.InDelta(t, 100.0/3, rows[0].WeightPercent, 1e-9)

	// Ties break by category name.
	assert.Equal(t, model.CategoryCarriedForward, rows[1].Category)
	assert.Equal(t, model.CategoryImplausible, rows[2].Category)
	assert.Equal(t, 1, rows[1].Total)
	assert.Equal(t, 1, rows[2].Total)
}

func TestExclusionInformation_Empty(t *testing.T) {
	assert.Empty(t, ExclusionInformation(nil))
}
