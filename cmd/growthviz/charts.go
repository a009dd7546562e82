package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/growthdata/growthviz/internal/charts"
	"github.com/growthdata/growthviz/internal/common"
	"github.com/growthdata/growthviz/internal/model"
)

func chartsCmd() *cobra.Command {
	var (
		outPath     string
		subjID      string
		param       string
		highOnly    bool
		carryFwd    bool
		percentiles bool
	)

	cmd := &cobra.Command{
		Use:   "charts <kind> <observation-file>",
		Short: "Render observation charts to an HTML file",
		Long: `Charts renders one of the interactive views to a standalone HTML
file. Kinds:

  weights      weight distribution by rounded kilogram
  ages         distinct subjects per age band
  trajectory   one subject's measurements over age (requires --subject)`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCharts(args[0], args[1], chartOptions{
				outPath:     outPath,
				subjID:      subjID,
				param:       param,
				highOnly:    highOnly,
				carryFwd:    carryFwd,
				percentiles: percentiles,
			})
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "chart.html", "path for the rendered HTML file")
	cmd.Flags().StringVar(&subjID, "subject", "", "subject id for trajectory charts")
	cmd.Flags().StringVar(&param, "param", string(model.MeasureHeight), "measurement kind for trajectory charts (HEIGHTCM or WEIGHTKG)")
	cmd.Flags().BoolVar(&highOnly, "high-only", false, "restrict the weight distribution to high weights")
	cmd.Flags().BoolVar(&carryFwd, "carried-forward", false, "mark carried-forward values separately on trajectories")
	cmd.Flags().BoolVar(&percentiles, "percentiles", false, "overlay P5/P95 reference bands on trajectories")

	return cmd
}

type chartOptions struct {
	outPath     string
	subjID      string
	param       string
	highOnly    bool
	carryFwd    bool
	percentiles bool
}

func runCharts(kind, path string, o chartOptions) error {
	mode, err := currentMode()
	if err != nil {
		return err
	}
	obs, err := loadObservations(path, mode)
	if err != nil {
		return err
	}

	var chart charts.Renderer
	switch kind {
	case "weights":
		chart, err = charts.WeightDistribution(obs, o.highOnly)
	case "ages":
		chart, err = charts.AgeDistribution(obs, mode)
	case "trajectory":
		if o.subjID == "" {
			return common.NewUserError(
				"Pass --subject with the subject id to chart",
				fmt.Errorf("%w: trajectory charts need a subject", common.ErrInvalidConfig),
			)
		}
		measure := model.Measure(o.param)
		if measure != model.MeasureHeight && measure != model.MeasureWeight {
			return common.NewUserError(
				"Use --param HEIGHTCM or --param WEIGHTKG",
				fmt.Errorf("%w: %q", common.ErrUnknownMeasure, o.param),
			)
		}
		ref, refErr := loadReference(mode)
		if refErr != nil {
			return refErr
		}
		if o.percentiles && ref == nil {
			return common.NewUserError(
				"Configure reference chart paths before using --percentiles",
				fmt.Errorf("%w: percentile bands need a reference", common.ErrMissingConfig),
			)
		}
		chart, err = charts.SubjectTrajectory(obs, ref, o.subjID, measure, charts.TrajectoryOptions{
			IncludeCarryForward: o.carryFwd,
			IncludePercentiles:  o.percentiles,
		})
	default:
		return common.NewUserError(
			"Chart kinds are weights, ages, and trajectory",
			fmt.Errorf("%w: unknown chart kind %q", common.ErrInvalidConfig, kind),
		)
	}
	if err != nil {
		return err
	}

	if err := charts.WriteHTML(chart, o.outPath); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", o.outPath)
	return nil
}
