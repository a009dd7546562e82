package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthdata/growthviz/internal/model"
)

func obs(subjID string, cat model.Category) model.Observation {
	return model.Observation{
		SubjID:     subjID,
		Sex:        model.SexMale,
		Age:        10,
		Param:      model.MeasureHeight,
		CleanValue: cat,
		Include:    cat == model.CategoryInclude,
	}
}

func twoRuns() []model.ComparisonRow {
	return Prepare(map[string][]model.Observation{
		"baseline": {
			obs("a", model.CategoryInclude),
			obs("a", model.CategoryInclude),
			obs("b", model.CategoryCarriedForward),
		},
		"tuned": {
			obs("a", model.CategoryInclude),
			obs("a", model.CategoryCarriedForward),
			obs("b", model.CategoryCarriedForward),
		},
	})
}

func TestPrepare(t *testing.T) {
	rows := twoRuns()
	require.Len(t, rows, 6)

	// Runs are flattened in name order.
	assert.Equal(t, "baseline", rows[0].RunName)
	assert.Equal(t, "tuned", rows[3].RunName)
	assert.Equal(t, []string{"baseline", "tuned"}, RunNames(rows))
}

func TestCountComparison_TwoRuns(t *testing.T) {
	counts := CountComparison(twoRuns())
	require.Len(t, counts, 2)

	byCat := make(map[model.Category]CategoryCountRow, len(counts))
	for _, c := range counts {
		byCat[c.Category] = c
	}

	include := byCat[model.CategoryInclude]
	assert.Equal(t, 2, include.Counts["baseline"])
	assert.Equal(t, 1, include.Counts["tuned"])
	assert.Equal(t, -1, include.Diff)

	carried := byCat[model.CategoryCarriedForward]
	assert.Equal(t, 1, carried.Counts["baseline"])
	assert.Equal(t, 2, carried.Counts["tuned"])
	assert.Equal(t, 1, carried.Diff)
	assert.InDelta(t, 100.0/3, carried.PercentChange, 1e-9)

	// Largest positive diff sorts first.
	assert.Equal(t, model.CategoryCarriedForward, counts[0].Category)
}

func TestCountComparison_ZeroDiffRowsSortLast(t *testing.T) {
	rows := Prepare(map[string][]model.Observation{
		"one": {
			obs("a", model.CategoryInclude),
			obs("b", model.CategoryImplausible),
		},
		"two": {
			obs("a", model.CategoryInclude),
			obs("b", model.CategoryCarriedForward),
		},
	})

	counts := CountComparison(rows)
	require.Len(t, counts, 3)
	// Include appears in both runs with identical counts; it sinks below
	// the categories that changed.
	assert.Equal(t, model.CategoryInclude, counts[2].Category)
	assert.Zero(t, counts[2].Diff)
}

func TestCountComparison_ThreeRunsSortByCategory(t *testing.T) {
	rows := Prepare(map[string][]model.Observation{
		"r1": {obs("a", model.CategoryInclude)},
		"r2": {obs("a", model.CategoryImplausible)},
		"r3": {obs("a", model.CategoryCarriedForward)},
	})

	counts := CountComparison(rows)
	require.Len(t, counts, 3)
	assert.Equal(t, model.CategoryCarriedForward, counts[0].Category)
	assert.Equal(t, model.CategoryImplausible, counts[1].Category)
	assert.Equal(t, model.CategoryInclude, counts[2].Category)
	// No diff column with three runs.
	assert.Zero(t, counts[0].Diff)
}

func TestSubjectCategoryCounts_DeduplicatesSubjects(t *testing.T) {
	counts := SubjectCategoryCounts(twoRuns())

	byCat := make(map[model.Category]CategoryCountRow, len(counts))
	for _, c := range counts {
		byCat[c.Category] = c
	}

	// Subject "a" has two Include observations in the baseline run but
	// counts once.
	assert.Equal(t, 1, byCat[model.CategoryInclude].Counts["baseline"])
	// Both subjects carry a carried-forward observation in the tuned
	// run, one each.
	assert.Equal(t, 2, byCat[model.CategoryCarriedForward].Counts["tuned"])
}

func TestSubjectCategoryCounts_RepeatObservationsCountOnce(t *testing.T) {
	rows := Prepare(map[string][]model.Observation{
		"run": {
			obs("a", model.CategoryCarriedForward),
			obs("a", model.CategoryCarriedForward),
			obs("a", model.CategoryCarriedForward),
		},
	})

	counts := SubjectCategoryCounts(rows)
	require.Len(t, counts, 1)
	assert.Equal(t, 1, counts[0].Counts["run"])
}

func TestSubjectPercentage(t *testing.T) {
	rows := twoRuns()
	pcts := SubjectPercentage(rows)

	byCat := make(map[model.Category]CategoryPercentRow, len(pcts))
	for _, p := range pcts {
		byCat[p.Category] = p
	}

	// Both runs have two subjects; one of two has a carried-forward
	// observation in the baseline, two of two in the tuned run.
	carried := byCat[model.CategoryCarriedForward]
	assert.InDelta(t, 50.0, carried.Percents["baseline"], 1e-9)
	assert.InDelta(t, 100.0, carried.Percents["tuned"], 1e-9)
	assert.InDelta(t, 50.0, carried.Diff, 1e-9)
}

func TestSubjectStats(t *testing.T) {
	stats := SubjectStats(twoRuns())
	require.Len(t, stats, 2)

	baseline := stats[0]
	assert.Equal(t, "baseline", baseline.RunName)
	// One of two subjects has an exclusion, one exclusion across two
	// subjects.
	assert.InDelta(t, 50.0, baseline.PercentWithExclusion, 1e-9)
	assert.InDelta(t, 0.5, baseline.ExclusionsPerSubject, 1e-9)

	tuned := stats[1]
	assert.Equal(t, "tuned", tuned.RunName)
	assert.InDelta(t, 100.0, tuned.PercentWithExclusion, 1e-9)
	assert.InDelta(t, 1.0, tuned.ExclusionsPerSubject, 1e-9)
}
