// Package charts renders the exploratory HTML charts: weight
// distributions, age-range histograms, and per-subject measurement
// trajectories with optional percentile bands.
package charts

// AgeBand is one half-open [Min, Max) bucket of the age histogram.
// Flagged bands mark ages outside the mode's analysis window.
type AgeBand struct {
	Min     float64
	Max     float64
	Label   string
	Outside bool
}

// Age buckets mirror the analysis windows: adults cover 18-80, so the
// under-18 and 80+ buckets are flagged; pediatrics cover 2-25.
var (
	adultAgeBands = []AgeBand{
		{0, 18, "<18", true},
		{18, 30, "18-30", false},
		{30, 40, "30-40", false},
		{40, 50, "40-50", false},
		{50, 60, "50-60", false},
		{60, 65, "60-65", false},
		{65, 80, "65-80", false},
		{80, 150, "80-", true},
	}

	pediatricAgeBands = []AgeBand{
		{0, 2, "0-2", false},
		{2, 5, "2-5", false},
		{5, 8, "5-8", false},
		{8, 11, "8-11", false},
		{11, 14, "11-14", false},
		{14, 17, "14-17", false},
		{17, 20, "17-20", false},
		{20, 25, "20-25", false},
		{25, 150, "25-", true},
	}
)
