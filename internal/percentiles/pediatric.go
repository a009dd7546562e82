// Package percentiles builds usable growth-chart lookup tables from the
// raw CDC reference files. Pediatric charts carry LMS parameters per age
// in months; adult charts carry decade-banded moment statistics that are
// expanded to one row per year and smoothed at band boundaries.
package percentiles

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/growthdata/growthviz/internal/common"
	"github.com/growthdata/growthviz/internal/model"
)

// LoadPediatric reads a CDC pediatric chart file (one row per sex and
// age-in-months with L, M, S and percentile columns) for the given
// measure. The CDC files code sex as 1=male/2=female; rows are recoded
// to the cleaning algorithm's 0=male/1=female convention so downstream
// joins line up.
func LoadPediatric(path string, measure model.Measure) ([]model.PercentileRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pediatric chart: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := parsePediatric(f, measure)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return rows, nil
}

func parsePediatric(r io.Reader, measure model.Measure) ([]model.PercentileRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if err != nil {
		return nil, common.ErrEmptyFile
	}
	cols := headerIndex(head)

	sexIdx, ok := cols["sex"]
	if !ok {
		return nil, fmt.Errorf("%w: Sex", common.ErrMissingColumn)
	}
	ageIdx, ok := cols["agemos"]
	if !ok {
		return nil, fmt.Errorf("%w: Agemos", common.ErrMissingColumn)
	}
	for _, c := range []string{"l", "m", "s"} {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("%w: %s", common.ErrMissingColumn, strings.ToUpper(c))
		}
	}

	var rows []model.PercentileRow
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		line++

		sexCode, err := strconv.Atoi(strings.TrimSpace(rec[sexIdx]))
		if err != nil {
			return nil, fmt.Errorf("line %d sex: %w: %q", line, common.ErrBadNumeric, rec[sexIdx])
		}

		row := model.PercentileRow{
			// CDC codes 1=male, 2=female; shift to 0/1.
			Sex:     model.Sex(sexCode - 1),
			Measure: measure,
		}
		row.AgeMonths, err = parseFloat(rec[ageIdx])
		if err != nil {
			return nil, fmt.Errorf("line %d Agemos: %w", line, err)
		}
		row.Age = row.AgeMonths / 12

		row.L, _ = floatAt(rec, cols, "l")
		row.M, _ = floatAt(rec, cols, "m")
		row.S, _ = floatAt(rec, cols, "s")
		row.P5, _ = floatAt(rec, cols, "p5")
		row.P10, _ = floatAt(rec, cols, "p10")
		row.P25, _ = floatAt(rec, cols, "p25")
		row.P50, _ = floatAt(rec, cols, "p50")
		row.P75, _ = floatAt(rec, cols, "p75")
		row.P90, _ = floatAt(rec, cols, "p90")
		row.P95, _ = floatAt(rec, cols, "p95")

		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, common.ErrEmptyFile
	}
	return rows, nil
}

func headerIndex(head []string) map[string]int {
	cols := make(map[string]int, len(head))
	for i, name := range head {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", common.ErrBadNumeric, s)
	}
	return v, nil
}

// floatAt reads an optional numeric column; absent or blank cells return
// ok=false rather than an error.
func floatAt(rec []string, cols map[string]int, name string) (float64, bool) {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
