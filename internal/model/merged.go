package model

import "math"

// MergedRecord combines a subject's stature and mass observations taken
// at the same age into one row. Either side may be absent (NaN value and
// empty category) because the merge is a full outer join.
type MergedRecord struct {
	ID         string
	SubjID     string
	Sex        Sex
	Age        float64
	RoundedAge int

	Height        float64 // cm; NaN when no stature observation
	HeightCat     Category
	IncludeHeight bool

	Weight        float64 // kg; NaN when no mass observation
	WeightCat     Category
	IncludeWeight bool

	// BMI is weight / (height/100)^2. NaN or +Inf when height is
	// missing or zero; consumers must filter or document inclusion.
	BMI         float64
	IncludeBoth bool

	// Unified z-score columns, NaN until an enrichment pass fills them.
	HeightZ float64
	WeightZ float64
	BMIZ    float64

	// Post-processing category columns, set by the correction
	// transforms. Empty until a correction pass runs; afterwards they
	// default to the original categories and differ only on corrected
	// rows.
	PostprocessHeightCat Category
	PostprocessWeightCat Category
}

// ComputeBMI returns weight / (height/100)^2 without guarding the
// divide: a zero or NaN height propagates as +Inf or NaN per the
// numeric-edge-case contract.
func ComputeBMI(height, weight float64) float64 {
	h := height / 100
	return weight / (h * h)
}

// HasHeight reports whether the record carries a stature value.
func (r *MergedRecord) HasHeight() bool { return !math.IsNaN(r.Height) }

// HasWeight reports whether the record carries a mass value.
func (r *MergedRecord) HasWeight() bool { return !math.IsNaN(r.Weight) }
