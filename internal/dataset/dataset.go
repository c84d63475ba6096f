// Package dataset loads and exposes the yearly observations every scene
// draws from. The dataset is loaded once at startup and read-only after
// that; malformed numeric cells are kept as NaN so each consumer filters
// them explicitly before computing scales or lines.
package dataset

import (
	"math"
)

// Record is one observation per year. Any field can be NaN when the
// source cell failed numeric coercion, including Year.
type Record struct {
	Year   float64
	Urban  float64
	Rural  float64
	Energy float64
	CO2    float64
}

// Valid reports whether the record has a usable year.
func (r Record) Valid() bool {
	return !math.IsNaN(r.Year)
}

type Dataset struct {
	records []Record
}

func New(records []Record) *Dataset {
	return &Dataset{
		records: records,
	}
}

func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns the observations in chronological (insertion) order.
// Callers must not mutate the returned slice.
func (d *Dataset) Records() []Record {
	return d.records
}

// Years returns the valid years in insertion order.
func (d *Dataset) Years() []float64 {
	var years []float64
	for _, r := range d.records {
		if r.Valid() {
			years = append(years, r.Year)
		}
	}
	return years
}

// YearExtent returns the min and max valid year. ok is false when the
// dataset holds no valid year at all.
func (d *Dataset) YearExtent() (float64, float64, bool) {
	return extent(d.records, func(r Record) float64 { return r.Year })
}

// Extent returns the min and max of the metric over records where both
// the year and the value are numeric.
func (d *Dataset) Extent(m Metric) (float64, float64, bool) {
	return extent(d.records, func(r Record) float64 {
		if !r.Valid() {
			return math.NaN()
		}
		return m.Value(r)
	})
}

// ByYear returns the first record matching the given year.
func (d *Dataset) ByYear(year float64) (Record, bool) {
	for _, r := range d.records {
		if r.Valid() && r.Year == year {
			return r, true
		}
	}
	return Record{}, false
}

func extent(records []Record, get func(Record) float64) (float64, float64, bool) {
	var (
		min, max float64
		found    bool
	)
	for _, r := range records {
		v := get(r)
		if math.IsNaN(v) {
			continue
		}
		if !found || v < min {
			min = v
		}
		if !found || v > max {
			max = v
		}
		found = true
	}
	return min, max, found
}
