package model

import (
	"math"
	"testing"
)

func TestObservation_Validate(t *testing.T) {
	tests := []struct {
		name    string
		obs     Observation
		wantErr bool
	}{
		{
			name: "valid height observation",
			obs: Observation{
				ID:          "1",
				SubjID:      "sub-1",
				Sex:         SexMale,
				AgeDays:     3650,
				Age:         3650 / DaysPerYear,
				Param:       MeasureHeight,
				Measurement: 140.5,
				CleanValue:  CategoryInclude,
				Include:     true,
			},
			wantErr: false,
		},
		{
			name: "valid derived bmi observation",
			obs: Observation{
				SubjID:      "sub-1",
				Sex:         SexFemale,
				Age:         30,
				Param:       MeasureBMI,
				Measurement: 22.1,
			},
			wantErr: false,
		},
		{
			name: "sex outside 0 and 1",
			obs: Observation{
				Sex:         Sex(2),
				Age:         10,
				Param:       MeasureHeight,
				Measurement: 140,
			},
			wantErr: true,
		},
		{
			name: "negative age",
			obs: Observation{
				Sex:         SexMale,
				Age:         -1,
				Param:       MeasureWeight,
				Measurement: 40,
			},
			wantErr: true,
		},
		{
			name: "nan age",
			obs: Observation{
				Sex:         SexMale,
				Age:         math.NaN(),
				Param:       MeasureWeight,
				Measurement: 40,
			},
			wantErr: true,
		},
		{
			name: "unknown measurement type",
			obs: Observation{
				Sex:         SexFemale,
				Age:         10,
				Param:       Measure("HEADCM"),
				Measurement: 50,
			},
			wantErr: true,
		},
		{
			name: "negative measurement",
			obs: Observation{
				Sex:         SexFemale,
				Age:         10,
				Param:       MeasureWeight,
				Measurement: -3,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.obs.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSex_Label(t *testing.T) {
	if got := SexMale.Label(); got != "M" {
		t.Errorf("SexMale.Label() = %q, want M", got)
	}
	if got := SexFemale.Label(); got != "F" {
		t.Errorf("SexFemale.Label() = %q, want F", got)
	}
}

func TestCategory_IsSwap(t *testing.T) {
	tests := []struct {
		cat  Category
		want bool
	}{
		{CategorySwapped, true},
		{CategoryAdultSwapped, true},
		{CategoryInclude, false},
		{CategoryCarriedForward, false},
		{CategoryFixedSwap, false},
		{Category("Exclude-Some-New-Label"), false},
	}
	for _, tt := range tests {
		if got := tt.cat.IsSwap(); got != tt.want {
			t.Errorf("IsSwap(%q) = %v, want %v", tt.cat, got, tt.want)
		}
	}
}

func TestCategory_IsUnitError(t *testing.T) {
	tests := []struct {
		cat  Category
		want bool
	}{
		{CategoryUnitErrorLow, true},
		{CategoryUnitErrorHigh, true},
		{CategoryInclude, false},
		{CategoryFixedUnitLow, false},
		{CategoryFixedUnitHigh, false},
		{CategorySwapped, false},
	}
	for _, tt := range tests {
		if got := tt.cat.IsUnitError(); got != tt.want {
			t.Errorf("IsUnitError(%q) = %v, want %v", tt.cat, got, tt.want)
		}
	}
}

func TestComputeBMI(t *testing.T) {
	tests := []struct {
		name   string
		height float64
		weight float64
		want   float64
	}{
		{"child values", 110, 20, 16.528925619834713},
		{"adult values", 175, 70, 22.857142857142858},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeBMI(tt.height, tt.weight)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ComputeBMI(%v, %v) = %v, want %v", tt.height, tt.weight, got, tt.want)
			}
		})
	}

	// Degenerate heights propagate through the divide unguarded.
	if got := ComputeBMI(0, 70); !math.IsInf(got, 1) {
		t.Errorf("ComputeBMI(0, 70) = %v, want +Inf", got)
	}
	if got := ComputeBMI(math.NaN(), 70); !math.IsNaN(got) {
		t.Errorf("ComputeBMI(NaN, 70) = %v, want NaN", got)
	}
}

func TestPercentileRow_HalfOfTwoZScores(t *testing.T) {
	// With L=1 the LMS formula reduces to M*(1+S*2) - M = 2*M*S.
	row := PercentileRow{L: 1, M: 16, S: 0.1}
	want := 3.2
	if got := row.HalfOfTwoZScores(); math.Abs(got-want) > 1e-9 {
		t.Errorf("HalfOfTwoZScores() = %v, want %v", got, want)
	}
}
