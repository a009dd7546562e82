// Package model defines the core data types shared across the growthviz
// pipeline: individual observations, merged height/weight records, and
// growth-chart percentile rows.
package model

import (
	"fmt"
	"math"
)

// DaysPerYear converts an age in days to fractional years. 365.25 matches
// calendar years across leap cycles and keeps z-score lookups aligned with
// the CDC chart convention.
const DaysPerYear = 365.25

// Sex is the binary sex code used by the cleaning algorithm: 0 is male,
// 1 is female.
type Sex int

const (
	// SexMale is the code for male subjects.
	SexMale Sex = 0
	// SexFemale is the code for female subjects.
	SexFemale Sex = 1
)

// Label returns the single-letter display label used in stats tables.
func (s Sex) Label() string {
	if s == SexFemale {
		return "F"
	}
	return "M"
}

// Valid reports whether the sex code is one of the two known values.
func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

// Measure identifies the kind of measurement an observation records.
type Measure string

const (
	// MeasureHeight is a stature measurement in centimeters.
	MeasureHeight Measure = "HEIGHTCM"
	// MeasureWeight is a mass measurement in kilograms.
	MeasureWeight Measure = "WEIGHTKG"
	// MeasureBMI is a derived body-mass-index value. It never appears in
	// raw observation files but is used for percentile lookups and the
	// BMI pseudo-observations appended for adult charting.
	MeasureBMI Measure = "BMI"
)

// Valid reports whether the measure is one of the raw observation kinds.
// MeasureBMI is derived and not valid in an input file.
func (m Measure) Valid() bool {
	return m == MeasureHeight || m == MeasureWeight
}

// Category is the cleaning-algorithm outcome label attached to each
// observation. The set is open: the external algorithm grows new labels
// over time, so any string is carried through, but the labels below have
// meaning to the post-processing transforms.
type Category string

const (
	// CategoryInclude marks an accepted measurement.
	CategoryInclude Category = "Include"
	// CategoryCarriedForward marks a repeated prior value rather than a
	// new independent measurement.
	CategoryCarriedForward Category = "Exclude-Carried-Forward"
	// CategoryImplausible marks a biologically implausible value.
	CategoryImplausible Category = "Implausible"
	// CategorySwapped marks a pediatric height/weight pair recorded in
	// each other's fields.
	CategorySwapped Category = "Swapped-Measurements"
	// CategoryAdultSwapped is the adult algorithm's label for the same
	// swap condition.
	CategoryAdultSwapped Category = "Exclude-Adult-Swapped-Measurements"
	// CategoryUnitErrorLow marks a value recorded in the wrong unit and
	// therefore too small (inches as cm, pounds as kg).
	CategoryUnitErrorLow Category = "Unit-Error-Low"
	// CategoryUnitErrorHigh marks a value recorded in the wrong unit and
	// therefore too large.
	CategoryUnitErrorHigh Category = "Unit-Error-High"

	// CategoryFixedSwap is the post-processing label recorded after a
	// swap correction restores a pair of measurements.
	CategoryFixedSwap Category = "Include-Fixed-Swap"
	// CategoryFixedUnitLow is the post-processing label after a low
	// unit error is corrected.
	CategoryFixedUnitLow Category = "Include-UL"
	// CategoryFixedUnitHigh is the post-processing label after a high
	// unit error is corrected.
	CategoryFixedUnitHigh Category = "Include-UH"
)

// IsSwap reports whether the category is one of the two swap labels.
func (c Category) IsSwap() bool {
	return c == CategorySwapped || c == CategoryAdultSwapped
}

// IsUnitError reports whether the category is one of the two
// unit-error labels.
func (c Category) IsUnitError() bool {
	return c == CategoryUnitErrorLow || c == CategoryUnitErrorHigh
}

// Observation is one measurement event as emitted by the external
// cleaning algorithm, after normalization. Immutable once created; the
// derived fields (Age, Include) are filled during ingestion.
type Observation struct {
	ID          string
	SubjID      string
	Sex         Sex
	AgeDays     float64
	Age         float64 // fractional years, AgeDays / DaysPerYear
	Param       Measure
	Measurement float64
	CleanValue  Category
	Include     bool // CleanValue == CategoryInclude
}

// Validate checks the structural invariants on a normalized observation.
func (o *Observation) Validate() error {
	if !o.Sex.Valid() {
		return fmt.Errorf("sex must be 0 or 1, got %d", int(o.Sex))
	}
	if o.Age < 0 || math.IsNaN(o.Age) {
		return fmt.Errorf("age must be non-negative, got %v", o.Age)
	}
	if !o.Param.Valid() && o.Param != MeasureBMI {
		return fmt.Errorf("unknown measurement type %q", string(o.Param))
	}
	if o.Measurement < 0 {
		return fmt.Errorf("measurement must be non-negative, got %v", o.Measurement)
	}
	return nil
}

// ComparisonRow is an observation tagged with the name of the cleaning
// run that produced it, used when comparing multiple runs.
type ComparisonRow struct {
	Observation
	RunName string
}
