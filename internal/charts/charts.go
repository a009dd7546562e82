package charts

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/growthdata/growthviz/internal/common"
	"github.com/growthdata/growthviz/internal/model"
)

// highWeightThreshold is the cutoff for the "high weights only" view.
const highWeightThreshold = 135

// Renderer is any chart that can write itself as HTML.
type Renderer interface {
	Render(w io.Writer) error
}

// WriteHTML renders a chart to the given file.
func WriteHTML(c Renderer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := c.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// WeightDistribution builds a bar chart of included weight observations
// bucketed by rounded kilogram. With highOnly set, only weights at or
// above 135 kg are shown, which is the view used to hunt outliers the
// cleaning algorithm accepted. Returns ErrNoObservations when nothing
// matches the filter.
func WeightDistribution(obs []model.Observation, highOnly bool) (*echarts.Bar, error) {
	counts := make(map[int]int)
	for i := range obs {
		o := &obs[i]
		if o.Param != model.MeasureWeight || !o.Include {
			continue
		}
		if highOnly && o.Measurement < highWeightThreshold {
			continue
		}
		counts[int(math.Round(o.Measurement))]++
	}
	if len(counts) == 0 {
		return nil, common.ErrNoObservations
	}

	weights := make([]int, 0, len(counts))
	for w := range counts {
		weights = append(weights, w)
	}
	sort.Ints(weights)

	labels := make([]string, len(weights))
	data := make([]opts.BarData, len(weights))
	for i, w := range weights {
		labels[i] = fmt.Sprintf("%d", w)
		data[i] = opts.BarData{Value: counts[w]}
	}

	title := "All Weights"
	if highOnly {
		title = fmt.Sprintf("Weights At or Above %dkg", highWeightThreshold)
	}

	bar := echarts.NewBar()
	bar.SetGlobalOptions(
		echarts.WithTitleOpts(opts.Title{Title: title}),
		echarts.WithXAxisOpts(opts.XAxis{Name: "Recorded Weight (Kg)"}),
		echarts.WithYAxisOpts(opts.YAxis{Name: "Total Patient Observations"}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).AddSeries("observations", data)
	return bar, nil
}

// AgeDistribution builds a bar chart of distinct subjects per age band
// for the given mode. Bands outside the mode's analysis window are part
// of the chart so the analyst can see how much data the window drops.
func AgeDistribution(obs []model.Observation, mode model.Mode) (*echarts.Bar, error) {
	var bands []AgeBand
	switch mode {
	case model.ModeAdults:
		bands = adultAgeBands
	case model.ModePediatrics:
		bands = pediatricAgeBands
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownMode, string(mode))
	}

	subjects := make([]map[string]bool, len(bands))
	for i := range subjects {
		subjects[i] = make(map[string]bool)
	}
	for i := range obs {
		o := &obs[i]
		for bi, b := range bands {
			if o.Age >= b.Min && o.Age < b.Max {
				subjects[bi][o.SubjID] = true
				break
			}
		}
	}

	labels := make([]string, len(bands))
	data := make([]opts.BarData, len(bands))
	for i, b := range bands {
		labels[i] = b.Label
		item := opts.BarData{Value: len(subjects[i])}
		if b.Outside {
			item.ItemStyle = &opts.ItemStyle{Color: "#FF6B6B"}
		}
		data[i] = item
	}

	bar := echarts.NewBar()
	bar.SetGlobalOptions(
		echarts.WithTitleOpts(opts.Title{Title: "Age Distribution", Subtitle: string(mode)}),
		echarts.WithXAxisOpts(opts.XAxis{Name: "Age (years)"}),
		echarts.WithYAxisOpts(opts.YAxis{Name: "Subjects"}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).AddSeries("subjects", data)
	return bar, nil
}
