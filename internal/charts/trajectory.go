package charts

import (
	"fmt"
	"math"
	"sort"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/growthdata/growthviz/internal/common"
	"github.com/growthdata/growthviz/internal/model"
	"github.com/growthdata/growthviz/internal/percentiles"
)

// TrajectoryOptions controls the per-subject trajectory chart.
type TrajectoryOptions struct {
	// IncludeCarryForward treats carried-forward values as part of the
	// included trajectory and marks them distinctly, instead of lumping
	// them in with the excluded points.
	IncludeCarryForward bool
	// IncludePercentiles overlays the reference P5/P95 bands for the
	// subject's sex across the visible age window.
	IncludePercentiles bool
}

// SubjectTrajectory builds a line chart of one subject's measurements of
// one kind over age: the full series, the included-only series, and the
// excluded points marked separately. Returns ErrNoObservations when the
// subject has no measurements of that kind.
func SubjectTrajectory(obs []model.Observation, ref *percentiles.Reference, subjID string, param model.Measure, o TrajectoryOptions) (*echarts.Line, error) {
	var selected []model.Observation
	var sex model.Sex
	for i := range obs {
		if obs[i].SubjID == subjID && obs[i].Param == param {
			selected = append(selected, obs[i])
			sex = obs[i].Sex
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("subject %s has no %s observations: %w", subjID, param, common.ErrNoObservations)
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i].Age < selected[j].Age })

	var all, included []opts.LineData
	var excluded, carried []opts.ScatterData
	for i := range selected {
		ob := &selected[i]
		point := []interface{}{ob.Age, ob.Measurement}
		all = append(all, opts.LineData{Value: point})

		kept := ob.Include
		if o.IncludeCarryForward && ob.CleanValue == model.CategoryCarriedForward {
			kept = true
			carried = append(carried, opts.ScatterData{Value: point})
		}
		if kept {
			included = append(included, opts.LineData{Value: point})
		} else {
			excluded = append(excluded, opts.ScatterData{Value: point})
		}
	}

	xmin := math.Floor(selected[0].Age)
	xmax := math.Ceil(selected[len(selected)-1].Age)

	line := echarts.NewLine()
	line.SetGlobalOptions(
		echarts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Subject %s", subjID),
			Subtitle: string(param),
		}),
		echarts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Age (years)", Min: xmin, Max: xmax}),
		echarts.WithYAxisOpts(opts.YAxis{Type: "value", Name: measurementAxisName(param), Scale: opts.Bool(true)}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		echarts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	line.AddSeries("All Measurements", all)
	line.AddSeries("Included Only", included,
		echarts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}))

	if len(excluded) > 0 || len(carried) > 0 {
		scatter := echarts.NewScatter()
		if len(excluded) > 0 {
			scatter.AddSeries("Excluded", excluded,
				echarts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}))
		}
		if len(carried) > 0 {
			scatter.AddSeries("Carried Forward", carried,
				echarts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))
		}
		line.Overlap(scatter)
	}

	if o.IncludePercentiles {
		addPercentileBands(line, ref, param, sex, xmin, xmax)
	}

	return line, nil
}

func addPercentileBands(line *echarts.Line, ref *percentiles.Reference, param model.Measure, sex model.Sex, xmin, xmax float64) {
	if ref == nil {
		return
	}
	var p5, p95 []opts.LineData
	for _, row := range ref.Rows(param) {
		if row.Sex != sex || row.Age < xmin || row.Age > xmax {
			continue
		}
		p5 = append(p5, opts.LineData{Value: []interface{}{row.Age, row.P5}})
		p95 = append(p95, opts.LineData{Value: []interface{}{row.Age, row.P95}})
	}
	if len(p5) == 0 {
		return
	}
	style := echarts.WithLineStyleOpts(opts.LineStyle{Type: "dotted", Color: "grey"})
	line.AddSeries("5th Percentile", p5, style)
	line.AddSeries("95th Percentile", p95, style)
}

func measurementAxisName(param model.Measure) string {
	switch param {
	case model.MeasureHeight:
		return "Height (cm)"
	case model.MeasureWeight:
		return "Weight (kg)"
	default:
		return "BMI"
	}
}
