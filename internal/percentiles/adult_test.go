package percentiles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthdata/growthviz/internal/common"
	"github.com/growthdata/growthviz/internal/model"
)

const adultFixture = `Age (years),Sex,Measure,Age_low,Age_high,Mean,Standard error of the mean,Number of examined persons,p5,p50,p95
20 and over,Male,HEIGHTCM,20,150,175.0,0.2,400,163.0,175.5,188.0
20-29,Male,HEIGHTCM,20,29,176.0,0.5,100,164.0,176.5,189.0
30-39,Male,HEIGHTCM,30,39,174.0,0.4,100,162.0,174.5,187.0
20-29,Female,HEIGHTCM,20,29,162.0,0.5,100,151.0,162.5,174.0
`

func TestParseAdult_Expansion(t *testing.T) {
	rows, err := ParseAdult(strings.NewReader(adultFixture))
	require.NoError(t, err)

	// Male: 18..29 (low clamped from 20) plus 30..39; female: 18..29.
	// The "20 and over" aggregate is dropped.
	require.Len(t, rows, 34)

	byAge := make(map[int]model.PercentileRow)
	for _, row := range rows {
		if row.Sex == model.SexMale {
			byAge[int(row.Age)] = row
		}
	}

	// First band covers down to the pediatric handoff.
	first, ok := byAge[18]
	require.True(t, ok, "expected a row at age 18")
	assert.InDelta(t, 176.0, first.Mean, 1e-9)

	// SD recovered from the standard error and sample size:
	// 0.5 * sqrt(100) = 5.
	assert.InDelta(t, 5.0, first.SD, 1e-9)
	assert.InDelta(t, 164.0, first.P5, 1e-9)
	assert.InDelta(t, 189.0, first.P95, 1e-9)

	// The aggregate band spans to age 150; none of its years survive.
	for age := range byAge {
		assert.LessOrEqual(t, age, 39, "aggregate band leaked into age %d", age)
	}
}

func TestParseAdult_DecadeSmoothing(t *testing.T) {
	rows, err := ParseAdult(strings.NewReader(adultFixture))
	require.NoError(t, err)

	var at29, at30, at31 model.PercentileRow
	for _, row := range rows {
		if row.Sex != model.SexMale {
			continue
		}
		switch int(row.Age) {
		case 29:
			at29 = row
		case 30:
			at30 = row
		case 31:
			at31 = row
		}
	}

	// Age 30 sits on the 20s/30s boundary and is blended with age 29's
	// pre-smoothing values. Age 29 and 31 keep their band statistics.
	assert.InDelta(t, 176.0, at29.Mean, 1e-9)
	assert.InDelta(t, (174.0+176.0)/2, at30.Mean, 1e-9)
	assert.InDelta(t, (4.0+5.0)/2, at30.SD, 1e-9)
	assert.InDelta(t, (162.0+164.0)/2, at30.P5, 1e-9)
	assert.InDelta(t, 174.0, at31.Mean, 1e-9)
}

func TestParseAdult_SmoothingRespectsGroups(t *testing.T) {
	rows, err := ParseAdult(strings.NewReader(adultFixture))
	require.NoError(t, err)

	// The female rows sort after the male rows; the female age-20 row
	// must blend only within its own sex, so it keeps its band mean
	// (its age-19 neighbor carries identical statistics).
	for _, row := range rows {
		if row.Sex == model.SexFemale && int(row.Age) == 20 {
			assert.InDelta(t, 162.0, row.Mean, 1e-9)
			return
		}
	}
	t.Fatal("no female age-20 row found")
}

func TestParseAdult_Errors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr error
	}{
		{
			name:    "empty input",
			csv:     "",
			wantErr: common.ErrEmptyFile,
		},
		{
			name:    "header only",
			csv:     "Age (years),Sex,Measure,Age_low,Age_high,Mean,Standard error of the mean,Number of examined persons\n",
			wantErr: common.ErrEmptyFile,
		},
		{
			name: "missing mean column",
			csv: `Age (years),Sex,Measure,Age_low,Age_high,Standard error of the mean,Number of examined persons
20-29,Male,HEIGHTCM,20,29,0.5,100
`,
			wantErr: common.ErrMissingColumn,
		},
		{
			name: "bad numeric age bound",
			csv: `Age (years),Sex,Measure,Age_low,Age_high,Mean,Standard error of the mean,Number of examined persons
20-29,Male,HEIGHTCM,twenty,29,176.0,0.5,100
`,
			wantErr: common.ErrBadNumeric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAdult(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseAdult_UnknownSexLabel(t *testing.T) {
	csv := `Age (years),Sex,Measure,Age_low,Age_high,Mean,Standard error of the mean,Number of examined persons
20-29,Other,HEIGHTCM,20,29,176.0,0.5,100
`
	_, err := ParseAdult(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sex label")
}
