// Package checkdata runs advisory structural checks over a raw
// cleaning-algorithm output file. Findings are returned as a list of
// human-readable warnings and never halt processing; callers decide
// whether to proceed.
package checkdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var requiredColumns = []string{"subjid", "param", "measurement", "age", "sex", "clean_value"}

// requiredColumnAliases accepts the historical variants for each
// canonical column.
var requiredColumnAliases = map[string][]string{
	"subjid":      {"subjid"},
	"param":       {"param"},
	"measurement": {"measurement"},
	"age":         {"age", "agedays", "age_days", "age_years", "ageyears"},
	"sex":         {"sex"},
	"clean_value": {"clean_value", "clean_res", "result"},
}

// CheckObservationFile runs the data checks against a CSV file and
// returns the warnings found. An unreadable file is the only fatal
// condition.
func CheckObservationFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open patient data file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return check(f)
}

func check(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(head))
	for i, name := range head {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var warnings []string

	index := make(map[string]int, len(requiredColumns))
	for _, canonical := range requiredColumns {
		found := false
		for _, alias := range requiredColumnAliases[canonical] {
			if i, ok := cols[alias]; ok {
				index[canonical] = i
				found = true
				break
			}
		}
		if !found {
			warnings = append(warnings, canonical+" column not included in patient data")
		}
	}

	var (
		sexOutOfRange   bool
		ageNegative     bool
		ageNotNumeric   bool
		paramUnknown    bool
		measureNegative bool
	)

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("malformed row: %v", err))
			continue
		}

		if i, ok := index["sex"]; ok && !sexOutOfRange {
			if v := strings.TrimSpace(rec[i]); v != "0" && v != "1" {
				sexOutOfRange = true
			}
		}
		if i, ok := index["age"]; ok {
			age, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
			if err != nil {
				ageNotNumeric = true
			} else if age < 0 {
				ageNegative = true
			}
		}
		if i, ok := index["param"]; ok && !paramUnknown {
			if v := strings.TrimSpace(rec[i]); v != "WEIGHTKG" && v != "HEIGHTCM" {
				paramUnknown = true
			}
		}
		if i, ok := index["measurement"]; ok && !measureNegative {
			if m, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64); err == nil && m < 0 {
				measureNegative = true
			}
		}
	}

	if sexOutOfRange {
		warnings = append(warnings, "'sex' contains values outside of 0 and 1")
	}
	if ageNegative {
		warnings = append(warnings, "age column contains values less than zero")
	}
	if ageNotNumeric {
		warnings = append(warnings, "age column is not numeric")
	}
	if paramUnknown {
		warnings = append(warnings, "'param' contains values other than WEIGHTKG and HEIGHTCM")
	}
	if measureNegative {
		warnings = append(warnings, "'measurement' contains values less than zero")
	}

	return warnings, nil
}
