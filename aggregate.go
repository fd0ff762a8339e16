package jitbench

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

const (
	ImageConstruction = "construction"
	ImageCompilation  = "compilation"
)

var ErrEmptyGroup = errors.New("no records to average")

type Predicate func(Record) bool

func IsImage(name string) Predicate {
	return func(r Record) bool { return r.Image == name }
}

// IsOverhead matches the one-time JIT rows that are not runtime samples.
func IsOverhead(r Record) bool {
	return r.Image == ImageConstruction || r.Image == ImageCompilation
}

func IsRuntime(r Record) bool {
	return !IsOverhead(r)
}

// Mean is the flat arithmetic mean of xs, NaN when xs is empty.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return stat.Mean(xs, nil)
}

func GroupByImage(t Table) map[string][]float64 {
	groups := map[string][]float64{}
	for _, r := range t.Records {
		groups[r.Image] = append(groups[r.Image], r.Time)
	}
	return groups
}

type Summary struct {
	Count       int
	Images      map[string]float64
	MeanOfMeans float64
}

// Summarize averages each image's times, then averages those per-image
// means with equal weight. Count covers the whole table, not just the rows
// kept by keep.
func Summarize(t Table, keep Predicate) (Summary, error) {
	groups := GroupByImage(t.Filter(keep))
	if len(groups) == 0 {
		return Summary{}, ErrEmptyGroup
	}
	s := Summary{
		Count:  t.Len(),
		Images: make(map[string]float64, len(groups)),
	}
	means := make([]float64, 0, len(groups))
	// sorted so the floating point sum does not depend on map order
	for _, name := range sortedKeys(groups) {
		m := Mean(groups[name])
		s.Images[name] = m
		means = append(means, m)
	}
	s.MeanOfMeans = Mean(means)
	return s, nil
}

func sortedKeys(m map[string][]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
