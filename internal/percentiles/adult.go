package percentiles

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/growthdata/growthviz/internal/common"
	"github.com/growthdata/growthviz/internal/model"
)

// adultBand is one decade-banded row of the raw adult reference file
// before expansion.
type adultBand struct {
	ageLabel string
	sex      model.Sex
	measure  model.Measure
	low      int
	high     int
	mean     float64
	stderr   float64
	examined float64
	pcts     map[string]float64
}

// openEndedBand is the aggregate "everyone" row in the adult reference
// file; it spans no usable age range and is dropped.
const openEndedBand = "20 and over"

// pediatricHandoffAge is where the adult reference takes over from the
// pediatric charts. The first adult band reports a low edge of 20; it is
// clamped down so 18- and 19-year-olds still get a reference row.
const pediatricHandoffAge = 18

// smoothingCeiling excludes the noisy oldest-age tail from boundary
// smoothing.
const smoothingCeiling = 110

var adultPctColumns = []string{"p5", "p10", "p15", "p25", "p50", "p75", "p85", "p90", "p95"}

// LoadAdult reads the adult reference file (decade age bands with mean,
// standard error, and examined-person counts) and expands it into one
// row per sex, measure, and integer year of age, with the per-row
// standard deviation recovered from the standard error and boundary
// discontinuities between adjacent decades smoothed away.
func LoadAdult(path string) ([]model.PercentileRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open adult reference: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := ParseAdult(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return rows, nil
}

// ParseAdult builds adult percentile rows from raw reference CSV data.
func ParseAdult(r io.Reader) ([]model.PercentileRow, error) {
	bands, err := parseAdultBands(r)
	if err != nil {
		return nil, err
	}
	return buildAdultRows(bands), nil
}

func parseAdultBands(r io.Reader) ([]adultBand, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if err != nil {
		return nil, common.ErrEmptyFile
	}
	cols := headerIndex(head)

	ageLabelIdx := -1
	for name, i := range cols {
		if strings.HasPrefix(name, "age (") || name == "age" {
			ageLabelIdx = i
			break
		}
	}
	required := []string{
		"sex", "measure", "age_low", "age_high", "mean",
		"standard error of the mean", "number of examined persons",
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s", common.ErrMissingColumn, name)
		}
	}

	var bands []adultBand
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

		b := adultBand{
			measure: model.Measure(strings.TrimSpace(rec[cols["measure"]])),
			pcts:    make(map[string]float64, len(adultPctColumns)),
		}
		if ageLabelIdx >= 0 {
			b.ageLabel = strings.TrimSpace(rec[ageLabelIdx])
		}

		switch sexLabel := strings.TrimSpace(rec[cols["sex"]]); sexLabel {
		case "Male":
			b.sex = model.SexMale
		case "Female":
			b.sex = model.SexFemale
		default:
			return nil, fmt.Errorf("line %d: unknown sex label %q", line, sexLabel)
		}

		low, err := parseFloat(rec[cols["age_low"]])
		if err != nil {
			return nil, fmt.Errorf("line %d Age_low: %w", line, err)
		}
		high, err := parseFloat(rec[cols["age_high"]])
		if err != nil {
			return nil, fmt.Errorf("line %d Age_high: %w", line, err)
		}
		b.low, b.high = int(low), int(high)

		if b.mean, err = parseFloat(rec[cols["mean"]]); err != nil {
			return nil, fmt.Errorf("line %d Mean: %w", line, err)
		}
		if b.stderr, err = parseFloat(rec[cols["standard error of the mean"]]); err != nil {
			return nil, fmt.Errorf("line %d standard error: %w", line, err)
		}
		if b.examined, err = parseFloat(rec[cols["number of examined persons"]]); err != nil {
			return nil, fmt.Errorf("line %d examined persons: %w", line, err)
		}
		for _, p := range adultPctColumns {
			if v, ok := floatAt(rec, cols, p); ok {
				b.pcts[p] = v
			}
		}

		bands = append(bands, b)
	}

	if len(bands) == 0 {
		return nil, common.ErrEmptyFile
	}
	return bands, nil
}

func buildAdultRows(bands []adultBand) []model.PercentileRow {
	var rows []model.PercentileRow
	for _, b := range bands {
		if b.ageLabel == openEndedBand {
			continue
		}
		low := b.low
		if low == 20 {
			low = pediatricHandoffAge
		}
		sd := b.stderr * math.Sqrt(b.examined)

		// One row per integer year covered by the band.
		for age := low; age <= b.high; age++ {
			row := model.PercentileRow{
				Sex:     b.sex,
				Age:     float64(age),
				Measure: b.measure,
				Mean:    b.mean,
				SD:      sd,
				P5:      b.pcts["p5"],
				P10:     b.pcts["p10"],
				P15:     b.pcts["p15"],
				P25:     b.pcts["p25"],
				P50:     b.pcts["p50"],
				P75:     b.pcts["p75"],
				P85:     b.pcts["p85"],
				P90:     b.pcts["p90"],
				P95:     b.pcts["p95"],
			}
			rows = append(rows, row)
		}
	}

	// Smoothing relies on rows being adjacent by age within one
	// (sex, measure) group, so the sort is not optional.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Sex != rows[j].Sex {
			return rows[i].Sex < rows[j].Sex
		}
		if rows[i].Measure != rows[j].Measure {
			return rows[i].Measure < rows[j].Measure
		}
		return rows[i].Age < rows[j].Age
	})

	return smoothDecadeBoundaries(rows)
}

// smoothDecadeBoundaries blends each statistic at exact decade ages with
// the preceding year's value, hiding the jump between adjacent decade
// bands. Every blend reads pre-smoothing values from the original slice.
func smoothDecadeBoundaries(rows []model.PercentileRow) []model.PercentileRow {
	out := make([]model.PercentileRow, len(rows))
	copy(out, rows)

	for i := 1; i < len(rows); i++ {
		cur, prev := rows[i], rows[i-1]
		if cur.Sex != prev.Sex || cur.Measure != prev.Measure {
			continue
		}
		age := int(cur.Age)
		if age%10 != 0 || age >= smoothingCeiling {
			continue
		}
		out[i].Mean = (cur.Mean + prev.Mean) / 2
		out[i].SD = (cur.SD + prev.SD) / 2
		out[i].P5 = (cur.P5 + prev.P5) / 2
		out[i].P10 = (cur.P10 + prev.P10) / 2
		out[i].P15 = (cur.P15 + prev.P15) / 2
		out[i].P25 = (cur.P25 + prev.P25) / 2
		out[i].P50 = (cur.P50 + prev.P50) / 2
		out[i].P75 = (cur.P75 + prev.P75) / 2
		out[i].P85 = (cur.P85 + prev.P85) / 2
		out[i].P90 = (cur.P90 + prev.P90) / 2
		out[i].P95 = (cur.P95 + prev.P95) / 2
	}

	return out
}
