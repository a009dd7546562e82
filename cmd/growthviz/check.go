package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/growthdata/growthviz/internal/checkdata"
	"github.com/growthdata/growthviz/internal/cli"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <observation-file>",
		Short: "Run advisory data checks on a cleaning-run output file",
		Long: `Check scans an observation file for structural problems: missing
columns, sex codes outside 0/1, negative or non-numeric ages, unknown
measurement types, and negative measurements.

Findings are warnings, not errors; the analyst decides whether to
proceed.`,
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}
}

func runCheck(_ *cobra.Command, args []string) error {
	warnings, err := checkdata.CheckObservationFile(resolvePath(args[0]))
	if err != nil {
		return err
	}

	if len(warnings) == 0 {
		fmt.Println("No problems found.")
		return nil
	}

	for _, w := range warnings {
		fmt.Println(cli.WarningStyle.Render("warning: " + w))
	}
	return nil
}
