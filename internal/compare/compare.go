// Package compare builds the tables an analyst uses to judge one
// cleaning run against another: category counts, affected-subject
// counts and percentages, and per-subject exclusion rates.
package compare

import (
	"sort"

	"github.com/growthdata/growthviz/internal/model"
)

// Prepare tags each run's observations with its run name and flattens
// the result into one table, the format the comparison functions expect.
// Runs are ordered by name so output is deterministic regardless of map
// iteration order.
func Prepare(runs map[string][]model.Observation) []model.ComparisonRow {
	names := make([]string, 0, len(runs))
	for name := range runs {
		names = append(names, name)
	}
	sort.Strings(names)

	var rows []model.ComparisonRow
	for _, name := range names {
		for _, o := range runs[name] {
			rows = append(rows, model.ComparisonRow{Observation: o, RunName: name})
		}
	}
	return rows
}

// RunNames returns the distinct run names present, in sorted order.
func RunNames(rows []model.ComparisonRow) []string {
	seen := make(map[string]bool)
	var names []string
	for i := range rows {
		if !seen[rows[i].RunName] {
			seen[rows[i].RunName] = true
			names = append(names, rows[i].RunName)
		}
	}
	sort.Strings(names)
	return names
}

// CategoryCountRow is one category's per-run counts. Diff and
// PercentChange are only meaningful when exactly two runs were compared
// (second run minus first).
type CategoryCountRow struct {
	Category      model.Category
	Counts        map[string]int
	Diff          int
	PercentChange float64
}

// CountComparison counts observations per cleaning category for each
// run. With exactly two runs a diff column (second minus first) is
// filled and rows sort by diff descending, zero-diff rows last; with any
// other number of runs rows sort by category.
func CountComparison(rows []model.ComparisonRow) []CategoryCountRow {
	return countsBy(rows, func(seen map[string]bool, r *model.ComparisonRow) bool {
		return true
	})
}

// SubjectCategoryCounts counts, per run, the subjects with at least one
// observation in each category.
func SubjectCategoryCounts(rows []model.ComparisonRow) []CategoryCountRow {
	return countsBy(rows, func(seen map[string]bool, r *model.ComparisonRow) bool {
		k := r.RunName + "\x00" + string(r.CleanValue) + "\x00" + r.SubjID
		if seen[k] {
			return false
		}
		seen[k] = true
		return true
	})
}

func countsBy(rows []model.ComparisonRow, admit func(map[string]bool, *model.ComparisonRow) bool) []CategoryCountRow {
	names := RunNames(rows)
	seen := make(map[string]bool)
	byCat := make(map[model.Category]map[string]int)

	for i := range rows {
		r := &rows[i]
		if !admit(seen, r) {
			continue
		}
		counts, ok := byCat[r.CleanValue]
		if !ok {
			counts = make(map[string]int, len(names))
			byCat[r.CleanValue] = counts
		}
		counts[r.RunName]++
	}

	out := make([]CategoryCountRow, 0, len(byCat))
	for cat, counts := range byCat {
		out = append(out, CategoryCountRow{Category: cat, Counts: counts})
	}

	if len(names) == 2 {
		first, second := names[0], names[1]
		var secondTotal int
		for i := range out {
			secondTotal += out[i].Counts[second]
		}
		for i := range out {
			out[i].Diff = out[i].Counts[second] - out[i].Counts[first]
			if secondTotal > 0 {
				out[i].PercentChange = float64(out[i].Diff) / float64(secondTotal) * 100
			}
		}
		sort.Slice(out, func(i, j int) bool {
			di, dj := out[i].Diff, out[j].Diff
			// Unchanged categories sink to the bottom.
			if (di == 0) != (dj == 0) {
				return dj == 0
			}
			if di != dj {
				return di > dj
			}
			return out[i].Category < out[j].Category
		})
	} else {
		sort.Slice(out, func(i, j int) bool {
			return out[i].Category < out[j].Category
		})
	}

	return out
}

// CategoryPercentRow is one category's share of each run's subject
// population.
type CategoryPercentRow struct {
	Category model.Category
	Percents map[string]float64
	Diff     float64
}

// SubjectPercentage computes, per run, the percentage of that run's
// subjects with at least one observation in each category. With exactly
// two runs a diff column is filled and rows sort by diff descending.
func SubjectPercentage(rows []model.ComparisonRow) []CategoryPercentRow {
	names := RunNames(rows)

	subjectsPerRun := make(map[string]int, len(names))
	seenSubj := make(map[string]bool)
	for i := range rows {
		k := rows[i].RunName + "\x00" + rows[i].SubjID
		if !seenSubj[k] {
			seenSubj[k] = true
			subjectsPerRun[rows[i].RunName]++
		}
	}

	counts := SubjectCategoryCounts(rows)
	out := make([]CategoryPercentRow, 0, len(counts))
	for _, c := range counts {
		row := CategoryPercentRow{Category: c.Category, Percents: make(map[string]float64, len(names))}
		for _, name := range names {
			if total := subjectsPerRun[name]; total > 0 {
				row.Percents[name] = float64(c.Counts[name]) / float64(total) * 100
			}
		}
		out = append(out, row)
	}

	if len(names) == 2 {
		first, second := names[0], names[1]
		for i := range out {
			out[i].Diff = out[i].Percents[second] - out[i].Percents[first]
		}
		sort.Slice(out, func(i, j int) bool {
			di, dj := out[i].Diff, out[j].Diff
			if (di == 0) != (dj == 0) {
				return dj == 0
			}
			if di != dj {
				return di > dj
			}
			return out[i].Category < out[j].Category
		})
	}

	return out
}

// SubjectStatsRow summarizes one run's exclusion burden.
type SubjectStatsRow struct {
	RunName              string
	PercentWithExclusion float64
	ExclusionsPerSubject float64
}

// SubjectStats calculates, for each run, the percentage of subjects with
// at least one excluded observation and the average number of exclusions
// per subject.
func SubjectStats(rows []model.ComparisonRow) []SubjectStatsRow {
	names := RunNames(rows)

	out := make([]SubjectStatsRow, 0, len(names))
	for _, name := range names {
		subjects := make(map[string]bool)
		excludedSubjects := make(map[string]bool)
		var exclusions int

		for i := range rows {
			r := &rows[i]
			if r.RunName != name {
				continue
			}
			subjects[r.SubjID] = true
			if !r.Include {
				excludedSubjects[r.SubjID] = true
				exclusions++
			}
		}

		row := SubjectStatsRow{RunName: name}
		if total := len(subjects); total > 0 {
			row.PercentWithExclusion = float64(len(excludedSubjects)) / float64(total) * 100
			row.ExclusionsPerSubject = float64(exclusions) / float64(total)
		}
		out = append(out, row)
	}

	return out
}
