package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthdata/growthviz/internal/model"
)

func TestTopRecords_OrderAndLimit(t *testing.T) {
	records := []model.MergedRecord{
		adultRecord("light", model.SexMale, 30, 175, 60, model.CategoryInclude, model.CategoryInclude),
		adultRecord("heavy", model.SexMale, 30, 175, 120, model.CategoryInclude, model.CategoryInclude),
		adultRecord("middle", model.SexMale, 30, 175, 80, model.CategoryInclude, model.CategoryInclude),
	}

	top := TopRecords(records, TopRecordsOptions{Field: SortByWeight, Limit: 2})
	require.Len(t, top, 2)
	assert.Equal(t, "heavy", top[0].SubjID)
	assert.Equal(t, "middle", top[1].SubjID)

	bottom := TopRecords(records, TopRecordsOptions{Field: SortByWeight, Smallest: true, Limit: 1})
	require.Len(t, bottom, 1)
	assert.Equal(t, "light", bottom[0].SubjID)
}

func TestTopRecords_Filters(t *testing.T) {
	female := model.SexFemale
	ageRange := [2]int{25, 35}

	records := []model.MergedRecord{
		adultRecord("in-window", model.SexFemale, 30, 165, 60, model.CategoryInclude, model.CategoryInclude),
		adultRecord("too-old", model.SexFemale, 50, 165, 70, model.CategoryInclude, model.CategoryInclude),
		adultRecord("wrong-sex", model.SexMale, 30, 175, 80, model.CategoryInclude, model.CategoryInclude),
	}

	top := TopRecords(records, TopRecordsOptions{
		Field:    SortByWeight,
		AgeRange: &ageRange,
		Sex:      &female,
	})
	require.Len(t, top, 1)
	assert.Equal(t, "in-window", top[0].SubjID)
}

func TestTopRecords_CategoryFilter(t *testing.T) {
	records := []model.MergedRecord{
		adultRecord("flagged", model.SexMale, 30, 175, 300, model.CategoryInclude, model.CategoryImplausible),
		adultRecord("clean", model.SexMale, 30, 175, 80, model.CategoryInclude, model.CategoryInclude),
	}

	top := TopRecords(records, TopRecordsOptions{
		Field:            SortByWeight,
		WeightExclusions: []model.Category{model.CategoryImplausible},
	})
	require.Len(t, top, 1)
	assert.Equal(t, "flagged", top[0].SubjID)
}

func TestTopRecords_Display(t *testing.T) {
	rec := adultRecord("a", model.SexFemale, 30.456, 165.34, 60.27, model.CategoryCarriedForward, model.CategoryInclude)

	top := TopRecords([]model.MergedRecord{rec}, TopRecordsOptions{Field: SortByWeight})
	require.Len(t, top, 1)

	assert.Equal(t, "F", top[0].Sex)
	assert.InDelta(t, 30.46, top[0].Age, 1e-9)
	assert.InDelta(t, 165.3, top[0].Height, 1e-9)
	assert.InDelta(t, 60.3, top[0].Weight, 1e-9)
	// The Exclude- prefix is stripped for display.
	assert.Equal(t, "Carried-Forward", top[0].HeightCat)
	assert.Equal(t, "Include", top[0].WeightCat)
}

func TestTopRecords_NaNSortValuesDropped(t *testing.T) {
	heightOnly := adultRecord("no-weight", model.SexMale, 30, 175, math.NaN(), model.CategoryInclude, "")
	full := adultRecord("full", model.SexMale, 30, 175, 80, model.CategoryInclude, model.CategoryInclude)

	top := TopRecords([]model.MergedRecord{heightOnly, full}, TopRecordsOptions{Field: SortByWeight})
	require.Len(t, top, 1)
	assert.Equal(t, "full", top[0].SubjID)
}
