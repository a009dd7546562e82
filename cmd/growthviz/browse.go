package main

import (
	"github.com/spf13/cobra"

	"github.com/growthdata/growthviz/internal/stats"
	"github.com/growthdata/growthviz/internal/tui"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <observation-file>",
		Short: "Browse summary tables interactively",
		Long: `Browse opens a terminal viewer over the summary tables for an
observation file: the clean/raw BMI statistics and the exclusion
counts by category. Tab switches tables, arrow keys scroll, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runBrowse(args[0])
		},
	}
}

func runBrowse(path string) error {
	mode, err := currentMode()
	if err != nil {
		return err
	}
	obs, err := loadObservations(path, mode)
	if err != nil {
		return err
	}
	records, err := mergeObservations(obs, mode)
	if err != nil {
		return err
	}

	tables := []tui.TableView{
		tui.BMIStatsTable(stats.BMIStats(records, stats.DefaultBMIStatsOptionsForMode(mode))),
		tui.ExclusionsTable(stats.ExclusionInformation(obs)),
	}
	return tui.Run(tables)
}
