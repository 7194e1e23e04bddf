// Copyright (c) 2024, The EvoDevo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reactome

import (
	"github.com/mdhelgen/EvoDevo/graph"
	"github.com/mdhelgen/EvoDevo/interaction"
	"github.com/mdhelgen/EvoDevo/internal/rng"
	"github.com/mdhelgen/EvoDevo/species"
)

// AddBasic creates a new DNA -> mRNA -> Protein cassette with
// transcription, translation and a degradation arc for each of the
// DNA, mRNA and Protein, each at an independently sampled rate. It declines (returns false) once
// MaxBasic DNA species already exist.
func (n *Network) AddBasic() bool {
	if len(n.dna) >= n.limits.MaxBasic {
		n.log.Debug().Str("category", "mutate").Str("op", "addBasic").Msg("cap reached")
		return false
	}
	id := n.allocDomainID()
	dnaNode, _ := n.addSpecies(species.DNA, id)
	mrnaNode, _ := n.addSpecies(species.MRNA, id)
	proteinNode, _ := n.addSpecies(species.Protein, id)

	ti := n.addArc(interaction.Transcription, dnaNode, mrnaNode, n.randomRate())
	n.transcription = append(n.transcription, ti.Arc)
	tl := n.addArc(interaction.Translation, mrnaNode, proteinNode, n.randomRate())
	n.translation = append(n.translation, tl.Arc)
	n.addDegradation(dnaNode)
	n.addDegradation(mrnaNode)
	n.addDegradation(proteinNode)

	n.dna = append(n.dna, dnaNode)
	n.mrna = append(n.mrna, mrnaNode)
	n.protein = append(n.protein, proteinNode)
	n.log.Debug().Str("category", "mutate").Str("op", "addBasic").Int("id", id).Msg("applied")
	return true
}

// AddPTM creates a PTM variant of a uniformly chosen Protein or
// PTMProtein parent: the new species' modification vector equals the
// parent's with one randomly chosen slot incremented. It declines once
// MaxPTM PTM species already exist, or if there is no eligible parent.
func (n *Network) AddPTM() bool {
	if len(n.ptmProtein) >= n.limits.MaxPTM {
		n.log.Debug().Str("category", "mutate").Str("op", "addPTM").Msg("cap reached")
		return false
	}
	candidates := append(append([]graph.NodeID{}, n.protein...), n.ptmProtein...)
	if len(candidates) == 0 {
		n.log.Debug().Str("category", "mutate").Str("op", "addPTM").Msg("no eligible parent")
		return false
	}
	parentNode := candidates[n.rng.Intn(len(candidates))]
	parent := n.speciesByID[parentNode]

	id := n.allocDomainID()
	newNode, newSpecies := n.addSpecies(species.PTMProtein, id)
	newSpecies.Modifications = parent.Modifications
	slot := n.rng.Intn(len(newSpecies.Modifications))
	newSpecies.Modifications[slot]++

	fwd := n.addArc(interaction.ForwardPTM, parentNode, newNode, n.randomRate())
	n.forwardPTM = append(n.forwardPTM, fwd.Arc)
	rev := n.addArc(interaction.ReversePTM, newNode, parentNode, n.randomRate())
	n.reversePTM = append(n.reversePTM, rev.Arc)
	n.addDegradation(newNode)

	n.ptmProtein = append(n.ptmProtein, newNode)
	n.log.Debug().Str("category", "mutate").Str("op", "addPTM").Int("id", id).Msg("applied")
	return true
}

// AddComplex creates a complex between two distinct, uniformly chosen
// candidates drawn from Protein and Complex species, with a single
// sampled forward rate shared by both forward arcs and a single
// sampled reverse rate shared by both reverse arcs. It declines if the
// cap is reached, if fewer than two candidates exist, or if every
// candidate pair is already complexed (invariant 4).
func (n *Network) AddComplex() bool {
	if len(n.complex) >= n.limits.MaxComplex {
		n.log.Debug().Str("category", "mutate").Str("op", "addComplex").Msg("cap reached")
		return false
	}
	candidates := append(append([]graph.NodeID{}, n.protein...), n.complex...)
	if len(candidates) < 2 {
		n.log.Debug().Str("category", "mutate").Str("op", "addComplex").Msg("fewer than two candidates")
		return false
	}

	a, b, ok := n.pickDistinctUncomplexed(candidates)
	if !ok {
		n.log.Debug().Str("category", "mutate").Str("op", "addComplex").Msg("no uncomplexed pair available")
		return false
	}

	id := n.allocDomainID()
	cNode, cSpecies := n.addSpecies(species.Complex, id)
	cSpecies.ComponentA, cSpecies.ComponentB = a, b

	fwdRate := n.randomRate()
	revRate := n.randomRate()

	fwdA := n.addArc(interaction.ForwardComplexation, a, cNode, fwdRate)
	fwdB := n.addArc(interaction.ForwardComplexation, b, cNode, fwdRate)
	fwdA.PairArc, fwdB.PairArc = fwdB.Arc, fwdA.Arc
	n.forwardComplexation = append(n.forwardComplexation, fwdA.Arc, fwdB.Arc)

	revA := n.addArc(interaction.ReverseComplexation, cNode, a, revRate)
	revB := n.addArc(interaction.ReverseComplexation, cNode, b, revRate)
	revA.PairArc, revB.PairArc = revB.Arc, revA.Arc
	n.reverseComplexation = append(n.reverseComplexation, revA.Arc, revB.Arc)

	n.addDegradation(cNode)
	n.complex = append(n.complex, cNode)
	n.log.Debug().Str("category", "mutate").Str("op", "addComplex").Int("id", id).Msg("applied")
	return true
}

// pickDistinctUncomplexed tries a bounded number of random distinct
// pairs from candidates and returns the first one that is not already
// a complex's component pair. This is rejection sampling, not an
// exhaustive search: with a small candidate pool the original
// implementation accepts an occasional decline rather than guaranteeing
// it finds an available pair if one exists.
func (n *Network) pickDistinctUncomplexed(candidates []graph.NodeID) (graph.NodeID, graph.NodeID, bool) {
	const attempts = 20
	for try := 0; try < attempts; try++ {
		i := n.rng.Intn(len(candidates))
		j := n.rng.Intn(len(candidates))
		if i == j {
			continue
		}
		a, b := candidates[i], candidates[j]
		if n.alreadyComplexed(a, b) {
			continue
		}
		return a, b, true
	}
	return 0, 0, false
}

func (n *Network) alreadyComplexed(a, b graph.NodeID) bool {
	for _, cNode := range n.complex {
		c := n.speciesByID[cNode]
		if (c.ComponentA == a && c.ComponentB == b) || (c.ComponentA == b && c.ComponentB == a) {
			return true
		}
	}
	return false
}

// AddPromoter binds a uniformly chosen unbound DNA to a uniformly
// chosen Protein or PTMProtein regulator, with kf, kr sampled so that
// kf > kr. It declines once MaxPromoter promoter arcs exist, or if no
// unbound DNA or no regulator candidate exists.
func (n *Network) AddPromoter() bool {
	if len(n.promoterBind) >= n.limits.MaxPromoter {
		n.log.Debug().Str("category", "mutate").Str("op", "addPromoter").Msg("cap reached")
		return false
	}
	var unbound []graph.NodeID
	for _, d := range n.dna {
		if !n.speciesByID[d].Bound() {
			unbound = append(unbound, d)
		}
	}
	if len(unbound) == 0 {
		n.log.Debug().Str("category", "mutate").Str("op", "addPromoter").Msg("no unbound DNA")
		return false
	}
	candidates := append(append([]graph.NodeID{}, n.protein...), n.ptmProtein...)
	if len(candidates) == 0 {
		n.log.Debug().Str("category", "mutate").Str("op", "addPromoter").Msg("no regulator candidate")
		return false
	}

	dnaNode := unbound[n.rng.Intn(len(unbound))]
	regulatorNode := candidates[n.rng.Intn(len(candidates))]

	kf, kr := n.randomRate(), n.randomRate()
	for kf <= kr {
		kf, kr = n.randomRate(), n.randomRate()
	}

	pb := n.g.AddArc(regulatorNode, dnaNode)
	i := interaction.NewPromoterBind(pb, kf, kr)
	n.arcsByID[pb] = i
	n.promoterBind = append(n.promoterBind, pb)
	n.speciesByID[dnaNode].PromoterArc = pb

	n.log.Debug().Str("category", "mutate").Str("op", "addPromoter").Msg("applied")
	return true
}

// PerturbForwardRate resamples the rate of a uniformly chosen
// Translation, ForwardComplexation or ForwardPTM arc. When the chosen
// arc is a ForwardComplexation, its pair's rate is set to match.
func (n *Network) PerturbForwardRate() bool {
	pool := append(append(append([]graph.ArcID{}, n.translation...), n.forwardComplexation...), n.forwardPTM...)
	return n.perturbRatePool(pool, "perturbForwardRate")
}

// PerturbReverseRate resamples the rate of a uniformly chosen
// ReverseComplexation or ReversePTM arc, keeping paired rates in sync.
func (n *Network) PerturbReverseRate() bool {
	pool := append(append([]graph.ArcID{}, n.reverseComplexation...), n.reversePTM...)
	return n.perturbRatePool(pool, "perturbReverseRate")
}

// PerturbDegradationRate resamples the rate of a uniformly chosen
// Degradation arc.
func (n *Network) PerturbDegradationRate() bool {
	return n.perturbRatePool(append([]graph.ArcID{}, n.degradation...), "perturbDegradationRate")
}

func (n *Network) perturbRatePool(pool []graph.ArcID, op string) bool {
	if len(pool) == 0 {
		n.log.Debug().Str("category", "mutate").Str("op", op).Msg("no eligible arc")
		return false
	}
	arc := pool[n.rng.Intn(len(pool))]
	i := n.arcsByID[arc]
	i.Rate = n.randomRate()
	if i.Paired() {
		n.arcsByID[i.PairArc].Rate = i.Rate
	}
	n.log.Debug().Str("category", "mutate").Str("op", op).Int64("arc", int64(arc)).Msg("applied")
	return true
}

// PerturbHistone resamples the histone factor of a uniformly chosen
// DNA species to a fresh value in [0, 2].
func (n *Network) PerturbHistone() bool {
	if len(n.dna) == 0 {
		n.log.Debug().Str("category", "mutate").Str("op", "perturbHistone").Msg("no DNA present")
		return false
	}
	d := n.dna[n.rng.Intn(len(n.dna))]
	n.speciesByID[d].HistoneFactor = rng.Range(n.rng, 0, 2)
	n.log.Debug().Str("category", "mutate").Str("op", "perturbHistone").Msg("applied")
	return true
}
