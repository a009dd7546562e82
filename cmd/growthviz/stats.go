package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/growthdata/growthviz/internal/cli"
	"github.com/growthdata/growthviz/internal/model"
	"github.com/growthdata/growthviz/internal/stats"
)

func statsCmd() *cobra.Command {
	opts := stats.DefaultBMIStatsOptions()

	cmd := &cobra.Command{
		Use:   "stats <observation-file>",
		Short: "Summarize clean versus raw BMI statistics by age and sex",
		Long: `Stats merges height and weight observations, computes BMI, and
reports min/mean/max/sd/count aggregates grouped by sex and rounded
age. Clean columns cover records where both measurements were
accepted; raw columns cover everything in the age window.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runStats(args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.AgeRange[0], "age-min", opts.AgeRange[0], "lowest rounded age to include")
	cmd.Flags().IntVar(&opts.AgeRange[1], "age-max", opts.AgeRange[1], "highest rounded age to include")
	cmd.Flags().BoolVar(&opts.IncludeMissing, "include-missing", false, "keep zero/missing heights and weights in the raw aggregates")
	cmd.Flags().BoolVar(&opts.IncludeMin, "min", true, "include the minimum column")
	cmd.Flags().BoolVar(&opts.IncludeMean, "mean", true, "include the mean column")
	cmd.Flags().BoolVar(&opts.IncludeMax, "max", true, "include the maximum column")
	cmd.Flags().BoolVar(&opts.IncludeSD, "sd", true, "include the standard deviation column")
	cmd.Flags().BoolVar(&opts.IncludeCount, "count", true, "include the count column")
	cmd.Flags().BoolVar(&opts.IncludeCountDiff, "count-diff", true, "include the raw-minus-clean count column")

	return cmd
}

func runStats(path string, opts stats.BMIStatsOptions) error {
	mode, err := currentMode()
	if err != nil {
		return err
	}
	if opts.AgeRange == stats.DefaultBMIStatsOptions().AgeRange {
		// Flags left at the default defer to the mode's analysis window.
		opts.AgeRange = stats.DefaultBMIStatsOptionsForMode(mode).AgeRange
	}

	records, err := loadMerged(path, mode)
	if err != nil {
		return err
	}

	rows := stats.BMIStats(records, opts)
	if len(rows) == 0 {
		fmt.Println("No records with both measurements accepted in the age window.")
		return nil
	}

	fmt.Print(cli.RenderBMIStats(rows))
	return nil
}

func exclusionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exclusions <observation-file>",
		Short: "Count cleaning categories by measurement type",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			mode, err := currentMode()
			if err != nil {
				return err
			}
			obs, err := loadObservations(args[0], mode)
			if err != nil {
				return err
			}
			fmt.Print(cli.RenderExclusions(stats.ExclusionInformation(obs)))
			return nil
		},
	}
}

func topCmd() *cobra.Command {
	var (
		field    string
		smallest bool
		limit    int
		sexFlag  string
		ageMin   int
		ageMax   int
	)

	cmd := &cobra.Command{
		Use:   "top <observation-file>",
		Short: "Show the most extreme merged records by height, weight, or BMI",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			mode, err := currentMode()
			if err != nil {
				return err
			}
			records, err := loadMerged(args[0], mode)
			if err != nil {
				return err
			}

			opts := stats.TopRecordsOptions{
				Field:    stats.SortField(field),
				Smallest: smallest,
				Limit:    limit,
			}
			if ageMin >= 0 && ageMax >= 0 {
				opts.AgeRange = &[2]int{ageMin, ageMax}
			}
			switch sexFlag {
			case "M":
				sex := model.SexMale
				opts.Sex = &sex
			case "F":
				sex := model.SexFemale
				opts.Sex = &sex
			}

			fmt.Print(cli.RenderTopRecords(stats.TopRecords(records, opts)))
			return nil
		},
	}

	cmd.Flags().StringVar(&field, "field", "bmi", "sort field (height, weight, bmi)")
	cmd.Flags().BoolVar(&smallest, "smallest", false, "show the smallest values instead of the largest")
	cmd.Flags().IntVar(&limit, "limit", 10, "number of records to show")
	cmd.Flags().StringVar(&sexFlag, "sex", "", "restrict to one sex (M or F)")
	cmd.Flags().IntVar(&ageMin, "age-min", -1, "lowest rounded age to include")
	cmd.Flags().IntVar(&ageMax, "age-max", -1, "highest rounded age to include")

	return cmd
}
