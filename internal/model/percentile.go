package model

import "math"

// PercentileRow is one (sex, age, measure) population reference entry.
// Pediatric rows carry LMS parameters keyed by age in months; adult rows
// carry mean/sd and the percentile spread keyed by integer age in years.
// Unused parameters are zero.
type PercentileRow struct {
	Sex       Sex
	Age       float64 // years, possibly fractional
	AgeMonths float64 // pediatric chart key (Agemos); 0 for adult rows
	Measure   Measure

	// LMS parameters (pediatric).
	L float64
	M float64
	S float64

	// Moment statistics (adult).
	Mean float64
	SD   float64

	// Percentile spread. Pediatric CDC files omit P15 and P85; those
	// stay zero there.
	P5  float64
	P10 float64
	P15 float64
	P25 float64
	P50 float64
	P75 float64
	P85 float64
	P90 float64
	P95 float64
}

// HalfOfTwoZScores is the LMS-derived half distance between the median
// and the value two modified z-scores above it. The modified z-score for
// a value v is (v - M) / HalfOfTwoZScores.
func (p *PercentileRow) HalfOfTwoZScores() float64 {
	return p.M*math.Pow(1+p.L*p.S*2, 1/p.L) - p.M
}
