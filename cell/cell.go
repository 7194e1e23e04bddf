// Copyright (c) 2024, The EvoDevo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cell

import (
	"github.com/rs/zerolog"

	"github.com/mdhelgen/EvoDevo/internal/rng"
	"github.com/mdhelgen/EvoDevo/reactome"
)

// category is one of the three mutation-category buckets a Cell
// samples from on every generation (component design §4.8).
type category int

const (
	categorySmall category = iota
	categoryLarge
	categoryNull
)

// categoryWeight pairs a category with its relative sampling weight.
// Weights need not sum to any particular total; pickCategory normalizes
// against their sum.
type categoryWeight struct {
	cat    category
	weight float64
}

var categoryWeights = []categoryWeight{
	{categorySmall, 40},
	{categoryLarge, 30},
	{categoryNull, 30},
}

// pickCategory draws a category from categoryWeights using r directly,
// so the draw consumes from the same per-cell stream as every other
// mutation decision rather than a package-global source.
func pickCategory(r rng.Source) category {
	total := 0.0
	for _, cw := range categoryWeights {
		total += cw.weight
	}
	x := r.Float64() * total
	acc := 0.0
	for _, cw := range categoryWeights {
		acc += cw.weight
		if x < acc {
			return cw.cat
		}
	}
	return categoryWeights[len(categoryWeights)-1].cat
}

// Cell owns one reactome.Network and its own RNG stream, so a
// population of cells can be mutated independently (see the
// concurrency design note). Every mutation decision -- category and
// within-category operator alike -- draws from this one stream.
type Cell struct {
	ID         int
	Net        *reactome.Network
	Generation int

	rng rng.Source
	log zerolog.Logger
}

// NewCell returns a cell seeded with a single addBasic cassette, per
// the component design's "each cell begins its life with a single
// addBasic() applied."
func NewCell(id int, limits reactome.Limits, seed int64, log zerolog.Logger) *Cell {
	r := rng.NewDefault(seed)
	c := &Cell{
		ID:  id,
		Net: reactome.New(limits, r, log),
		rng: r,
		log: log.With().Int("cell", id).Logger(),
	}
	c.Net.AddBasic()
	return c
}

var smallOps = []string{"perturbForwardRate", "perturbReverseRate", "perturbDegradationRate", "addPTM", "perturbHistone"}
var largeOps = []string{"addComplex", "addBasic", "addPromoter"}

// Mutate samples a mutation category, then samples uniformly within
// that category's operator list and applies it. Category Null is a
// deliberate no-op generation.
func (c *Cell) Mutate() {
	c.Generation++
	cat := pickCategory(c.rng)
	switch cat {
	case categorySmall:
		c.applySmall(smallOps[c.rng.Intn(len(smallOps))])
	case categoryLarge:
		c.applyLarge(largeOps[c.rng.Intn(len(largeOps))])
	case categoryNull:
		c.log.Debug().Str("category", "mutate").Str("op", "null").Msg("no-op generation")
	}
}

func (c *Cell) applySmall(op string) {
	switch op {
	case "perturbForwardRate":
		c.Net.PerturbForwardRate()
	case "perturbReverseRate":
		c.Net.PerturbReverseRate()
	case "perturbDegradationRate":
		c.Net.PerturbDegradationRate()
	case "addPTM":
		c.Net.AddPTM()
	case "perturbHistone":
		c.Net.PerturbHistone()
	}
}

func (c *Cell) applyLarge(op string) {
	switch op {
	case "addComplex":
		c.Net.AddComplex()
	case "addBasic":
		c.Net.AddBasic()
	case "addPromoter":
		c.Net.AddPromoter()
	}
}

// Score returns the cell's current best-species oscillation score.
func (c *Cell) Score() int { return c.Net.BestSpeciesScore() }
