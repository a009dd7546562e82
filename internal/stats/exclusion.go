package stats

import (
	"sort"

	"github.com/growthdata/growthviz/internal/model"
)

// ExclusionRow is one cleaning-category row of the exclusion summary:
// how many height and weight observations landed in the category and
// what share of each measurement type that represents.
type ExclusionRow struct {
	Category      model.Category
	HeightCount   int
	HeightPercent float64
	WeightCount   int
	WeightPercent float64
	Total         int
}

// ExclusionInformation counts cleaning categories by measurement type.
// Rows are sorted by total count descending, ties broken by category
// name for determinism.
func ExclusionInformation(obs []model.Observation) []ExclusionRow {
	type counts struct {
		height int
		weight int
	}

	byCat := make(map[model.Category]*counts)
	var totalHeight, totalWeight int

	for i := range obs {
		o := &obs[i]
		c, ok := byCat[o.CleanValue]
		if !ok {
			c = &counts{}
			byCat[o.CleanValue] = c
		}
		switch o.Param {
		case model.MeasureHeight:
			c.height++
			totalHeight++
		case model.MeasureWeight:
			c.weight++
			totalWeight++
		}
	}

	rows := make([]ExclusionRow, 0, len(byCat))
	for cat, c := range byCat {
		row := ExclusionRow{
			Category:    cat,
			HeightCount: c.height,
			WeightCount: c.weight,
			Total:       c.height + c.weight,
		}
		if totalHeight > 0 {
			row.HeightPercent = float64(c.height) / float64(totalHeight) * 100
		}
		if totalWeight > 0 {
			row.WeightPercent = float64(c.weight) / float64(totalWeight) * 100
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].Category < rows[j].Category
	})

	return rows
}
