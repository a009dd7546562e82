// Package merge pivots the long observation table (one row per height-
// or-weight measurement) into a wide table with one row per subject and
// age carrying both sides, plus the derived BMI.
package merge

import (
	"math"
	"sort"

	"github.com/growthdata/growthviz/internal/model"
)

// joinKey identifies one subject at one age. A full outer join on this
// key keeps subjects that have only one of the two measurements.
type joinKey struct {
	subjID string
	age    float64
	sex    model.Sex
}

// Merge combines stature and mass observations into merged records via a
// full outer join on (subject, age, sex). A record whose counterpart is
// missing keeps NaN for the absent value and an empty category. The
// input is not modified. Output order is deterministic: by subject, then
// age, then sex.
func Merge(obs []model.Observation) []model.MergedRecord {
	type pair struct {
		height *model.Observation
		weight *model.Observation
	}

	pairs := make(map[joinKey]*pair)
	order := make([]joinKey, 0, len(obs))

	for i := range obs {
		o := &obs[i]
		if !o.Param.Valid() {
			continue
		}
		k := joinKey{o.SubjID, o.Age, o.Sex}
		p, ok := pairs[k]
		if !ok {
			p = &pair{}
			pairs[k] = p
			order = append(order, k)
		}
		if o.Param == model.MeasureHeight {
			p.height = o
		} else {
			p.weight = o
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].subjID != order[j].subjID {
			return order[i].subjID < order[j].subjID
		}
		if order[i].age != order[j].age {
			return order[i].age < order[j].age
		}
		return order[i].sex < order[j].sex
	})

	records := make([]model.MergedRecord, 0, len(order))
	for _, k := range order {
		p := pairs[k]
		rec := model.MergedRecord{
			SubjID:     k.subjID,
			Sex:        k.sex,
			Age:        k.age,
			RoundedAge: int(math.Round(k.age)),
			Height:     math.NaN(),
			Weight:     math.NaN(),
			HeightZ:    math.NaN(),
			WeightZ:    math.NaN(),
			BMIZ:       math.NaN(),
		}
		if p.height != nil {
			rec.ID = p.height.ID
			rec.Height = p.height.Measurement
			rec.HeightCat = p.height.CleanValue
			rec.IncludeHeight = p.height.Include
		}
		if p.weight != nil {
			if rec.ID == "" {
				rec.ID = p.weight.ID
			}
			rec.Weight = p.weight.Measurement
			rec.WeightCat = p.weight.CleanValue
			rec.IncludeWeight = p.weight.Include
		}
		rec.BMI = model.ComputeBMI(rec.Height, rec.Weight)
		rec.IncludeBoth = rec.IncludeHeight && rec.IncludeWeight
		records = append(records, rec)
	}

	return records
}
