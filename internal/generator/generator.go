// Package generator picks the labels of spawned words.
package generator

import (
	"math/rand"
	"time"
)

// Generator produces randomized label choices.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Pick selects a label uniformly.
func (g *Generator) Pick(labels []string) string {
	return labels[g.rnd.Intn(len(labels))]
}

// Weighted returns a picker biased toward the weak labels.
func (g *Generator) Weighted(weak map[string]struct{}, factor float64) *Weighted {
	return &Weighted{gen: g, weak: weak, factor: factor}
}

// Weighted picks weak labels 1+factor times as often as the rest.
type Weighted struct {
	gen    *Generator
	weak   map[string]struct{}
	factor float64
}

// Pick selects a label with a bias toward weak labels.
func (w *Weighted) Pick(labels []string) string {
	weights := make([]float64, len(labels))
	total := 0.0
	for i, label := range labels {
		weight := 1.0
		if _, ok := w.weak[label]; ok {
			weight += w.factor
		}
		weights[i] = weight
		total += weight
	}

	r := w.gen.rnd.Float64() * total
	acc := 0.0
	for i, weight := range weights {
		acc += weight
		if r <= acc {
			return labels[i]
		}
	}
	return labels[len(labels)-1]
}

// SetWeak replaces the weak label set.
func (w *Weighted) SetWeak(weak map[string]struct{}) {
	w.weak = weak
}
