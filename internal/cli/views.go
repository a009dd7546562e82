package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/growthdata/growthviz/internal/compare"
	"github.com/growthdata/growthviz/internal/stats"
)

// RenderBMIStats draws the clean/raw BMI summary as one section per sex,
// Female first, the way the analyst-facing tables group it.
func RenderBMIStats(rows []stats.BMIStatsRow) string {
	var b strings.Builder
	for _, section := range []struct {
		label string
		title string
	}{
		{"F", "Female"},
		{"M", "Male"},
	} {
		t := Table{
			Title: section.title,
			Columns: []string{
				"age", "min_clean", "mean_clean", "max_clean", "sd_clean", "count_clean",
				"min_raw", "mean_raw", "max_raw", "sd_raw", "count_raw", "count_diff",
			},
		}
		for _, row := range rows {
			if row.Sex != section.label {
				continue
			}
			t.Rows = append(t.Rows, []string{
				strconv.Itoa(row.RoundedAge),
				FormatFloat(row.MinClean), FormatFloat(row.MeanClean),
				FormatFloat(row.MaxClean), FormatFloat(row.SDClean),
				strconv.Itoa(row.CountClean),
				FormatFloat(row.MinRaw), FormatFloat(row.MeanRaw),
				FormatFloat(row.MaxRaw), FormatFloat(row.SDRaw),
				strconv.Itoa(row.CountRaw),
				strconv.Itoa(row.CountDiff),
			})
		}
		if len(t.Rows) > 0 {
			b.WriteString(t.Render())
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderExclusions draws the per-category exclusion summary.
func RenderExclusions(rows []stats.ExclusionRow) string {
	t := Table{
		Title:   "Exclusions by category",
		Columns: []string{"category", "HEIGHTCM", "height %", "WEIGHTKG", "weight %", "total"},
	}
	for _, row := range rows {
		t.Rows = append(t.Rows, []string{
			string(row.Category),
			strconv.Itoa(row.HeightCount),
			FormatPercent(row.HeightPercent),
			strconv.Itoa(row.WeightCount),
			FormatPercent(row.WeightPercent),
			strconv.Itoa(row.Total),
		})
	}
	return t.Render()
}

// RenderCategoryCounts draws a per-run category count comparison.
func RenderCategoryCounts(title string, runNames []string, rows []compare.CategoryCountRow) string {
	cols := append([]string{"category"}, runNames...)
	twoRuns := len(runNames) == 2
	if twoRuns {
		cols = append(cols, "diff")
	}

	t := Table{Title: title, Columns: cols}
	for _, row := range rows {
		cells := []string{string(row.Category)}
		for _, name := range runNames {
			cells = append(cells, strconv.Itoa(row.Counts[name]))
		}
		if twoRuns {
			cells = append(cells, strconv.Itoa(row.Diff))
		}
		t.Rows = append(t.Rows, cells)
	}
	return t.Render()
}

// RenderSubjectPercentages draws the share of each run's subjects
// holding at least one observation per category.
func RenderSubjectPercentages(runNames []string, rows []compare.CategoryPercentRow) string {
	cols := append([]string{"category"}, runNames...)
	twoRuns := len(runNames) == 2
	if twoRuns {
		cols = append(cols, "diff")
	}

	t := Table{Title: "Percentage of subjects by category", Columns: cols}
	for _, row := range rows {
		cells := []string{string(row.Category)}
		for _, name := range runNames {
			cells = append(cells, FormatPercent(row.Percents[name]))
		}
		if twoRuns {
			cells = append(cells, fmt.Sprintf("%+.2f", row.Diff))
		}
		t.Rows = append(t.Rows, cells)
	}
	return t.Render()
}

// RenderSubjectStats draws the per-run exclusion burden summary.
func RenderSubjectStats(rows []compare.SubjectStatsRow) string {
	t := Table{
		Title:   "Exclusion burden by run",
		Columns: []string{"run name", "percent with exclusion", "exclusions per subject"},
	}
	for _, row := range rows {
		t.Rows = append(t.Rows, []string{
			row.RunName,
			FormatPercent(row.PercentWithExclusion),
			fmt.Sprintf("%.2f", row.ExclusionsPerSubject),
		})
	}
	return t.Render()
}

// RenderTopRecords draws the extreme-record view.
func RenderTopRecords(records []stats.TopRecord) string {
	t := Table{
		Columns: []string{
			"subjid", "sex", "age", "height", "height_cat", "htz",
			"weight", "weight_cat", "wtz", "bmi", "bmiz",
		},
	}
	for _, r := range records {
		t.Rows = append(t.Rows, []string{
			r.SubjID, r.Sex,
			FormatFloat(r.Age),
			FormatFloat(r.Height), r.HeightCat, FormatFloat(r.HeightZ),
			FormatFloat(r.Weight), r.WeightCat, FormatFloat(r.WeightZ),
			FormatFloat(r.BMI), FormatFloat(r.BMIZ),
		})
	}
	return t.Render()
}
