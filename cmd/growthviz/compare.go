package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/growthdata/growthviz/internal/cli"
	"github.com/growthdata/growthviz/internal/common"
	"github.com/growthdata/growthviz/internal/compare"
	"github.com/growthdata/growthviz/internal/model"
)

func compareCmd() *cobra.Command {
	var (
		bySubject bool
		percent   bool
	)

	cmd := &cobra.Command{
		Use:   "compare <name>=<file> <name>=<file> [...]",
		Short: "Compare category assignments across cleaning runs",
		Long: `Compare loads two or more runs of the cleaning algorithm over the
same input and tabulates how their category assignments differ.
Each argument names a run and points at its observation file, for
example:

  growthviz compare baseline=run1.csv tuned=run2.csv

With exactly two runs a diff column is included and unchanged
categories sort to the bottom.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCompare(args, bySubject, percent)
		},
	}

	cmd.Flags().BoolVar(&bySubject, "by-subject", false, "count subjects rather than observations")
	cmd.Flags().BoolVar(&percent, "percent", false, "show per-category subject percentages")

	return cmd
}

func runCompare(args []string, bySubject, percent bool) error {
	mode, err := currentMode()
	if err != nil {
		return err
	}

	runs := make(map[string][]model.Observation, len(args))
	for _, arg := range args {
		name, path, ok := strings.Cut(arg, "=")
		if !ok || name == "" || path == "" {
			return common.NewUserError(
				"Run arguments must look like name=file.csv",
				fmt.Errorf("%w: bad run argument %q", common.ErrInvalidConfig, arg),
			)
		}
		if _, dup := runs[name]; dup {
			return common.NewUserError(
				"Each run needs a distinct name",
				fmt.Errorf("%w: duplicate run name %q", common.ErrInvalidConfig, name),
			)
		}
		obs, err := loadObservations(path, mode)
		if err != nil {
			return err
		}
		runs[name] = obs
	}

	rows := compare.Prepare(runs)
	names := compare.RunNames(rows)

	switch {
	case percent:
		fmt.Println(cli.RenderSubjectPercentages(names, compare.SubjectPercentage(rows)))
	case bySubject:
		counts := compare.SubjectCategoryCounts(rows)
		fmt.Println(cli.RenderCategoryCounts("Subjects by category", names, counts))
	default:
		counts := compare.CountComparison(rows)
		fmt.Println(cli.RenderCategoryCounts("Observations by category", names, counts))
	}

	fmt.Println(cli.RenderSubjectStats(compare.SubjectStats(rows)))
	return nil
}
