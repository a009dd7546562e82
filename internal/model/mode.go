package model

// Mode selects the population variant the pipeline operates on. The
// pediatric and adult cleaning algorithms emit different category labels
// and use different reference tables and age ranges.
type Mode string

const (
	// ModeAdults processes adult (18+) observations.
	ModeAdults Mode = "adults"
	// ModePediatrics processes pediatric (0-25) observations.
	ModePediatrics Mode = "pediatrics"
)

// Valid reports whether the mode is a known population variant.
func (m Mode) Valid() bool {
	return m == ModeAdults || m == ModePediatrics
}
