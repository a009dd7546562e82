package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/growthdata/growthviz/internal/clean"
	"github.com/growthdata/growthviz/internal/common"
	"github.com/growthdata/growthviz/internal/model"
)

func correctionsCmd() *cobra.Command {
	var (
		fixSwaps bool
		fixUnits bool
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "corrections <observation-file>",
		Short: "Apply swap and unit-error corrections to merged records",
		Long: `Corrections applies the post-processing passes to the merged
height/weight table: swapped-measurement pairs are exchanged where
both sides agree, and unit errors are converted back using the
cm/inch and kg/lb factors. Corrected rows are marked in the
postprocess category columns and BMI is recomputed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCorrections(args[0], fixSwaps, fixUnits, outPath)
		},
	}

	cmd.Flags().BoolVar(&fixSwaps, "swaps", true, "correct swapped measurements")
	cmd.Flags().BoolVar(&fixUnits, "units", true, "correct unit errors")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write the corrected table to this CSV file")

	return cmd
}

func runCorrections(path string, fixSwaps, fixUnits bool, outPath string) error {
	mode, err := currentMode()
	if err != nil {
		return err
	}
	records, err := loadMerged(path, mode)
	if err != nil {
		return err
	}

	if fixSwaps {
		before := countCategory(records, func(r *model.MergedRecord) bool {
			return r.HeightCat.IsSwap() && r.WeightCat.IsSwap()
		})
		records = clean.SwappedValues(records)
		common.LogInfo("swap correction applied", common.Fields{"corrected_rows": before})
	}
	if fixUnits {
		before := countCategory(records, func(r *model.MergedRecord) bool {
			return r.HeightCat.IsUnitError() || r.WeightCat.IsUnitError()
		})
		records = clean.UnitErrors(records)
		common.LogInfo("unit correction applied", common.Fields{"corrected_rows": before})
	}

	if outPath == "" {
		fmt.Printf("%d merged records processed.\n", len(records))
		return nil
	}

	if err := writeMergedCSV(outPath, records); err != nil {
		return err
	}
	fmt.Printf("Wrote %d records to %s\n", len(records), outPath)
	return nil
}

func countCategory(records []model.MergedRecord, match func(*model.MergedRecord) bool) int {
	var n int
	for i := range records {
		if match(&records[i]) {
			n++
		}
	}
	return n
}

var mergedCSVHeader = []string{
	"subjid", "sex", "age", "rounded_age",
	"height", "height_cat", "include_height",
	"weight", "weight_cat", "include_weight",
	"bmi", "include_both",
	"htz", "wtz", "bmiz",
	"postprocess_height_cat", "postprocess_weight_cat",
}

func writeMergedCSV(path string, records []model.MergedRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(mergedCSVHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range records {
		r := &records[i]
		row := []string{
			r.SubjID,
			strconv.Itoa(int(r.Sex)),
			formatFloat(r.Age),
			strconv.Itoa(r.RoundedAge),
			formatFloat(r.Height),
			string(r.HeightCat),
			strconv.FormatBool(r.IncludeHeight),
			formatFloat(r.Weight),
			string(r.WeightCat),
			strconv.FormatBool(r.IncludeWeight),
			formatFloat(r.BMI),
			strconv.FormatBool(r.IncludeBoth),
			formatFloat(r.HeightZ),
			formatFloat(r.WeightZ),
			formatFloat(r.BMIZ),
			string(r.PostprocessHeightCat),
			string(r.PostprocessWeightCat),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
