// Copyright (c) 2024, The EvoDevo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package integrate implements the two numerical kernels that turn a
// reaction network into concentration (or molecule-count)
// trajectories: a four-stage explicit Runge-Kutta integrator and a
// Gillespie stochastic simulator. Both walk the same arc list
// produced by the reactome package; this package depends on reactome,
// never the reverse.
package integrate

import (
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/mdhelgen/EvoDevo/reactome"
)

// RK4 runs the classical fourth-order Runge-Kutta method over a
// reactome.Network's current arc set.
type RK4 struct {
	Net *reactome.Network
	Log zerolog.Logger
}

// NewRK4 returns an integrator bound to net.
func NewRK4(net *reactome.Network, log zerolog.Logger) *RK4 {
	return &RK4{Net: net, Log: log}
}

// Integrate resets every species and advances the network from t=0 to
// t=limit in fixed steps of h, committing one trajectory point per
// species per step. It returns a NumericDomain error for a
// non-positive step or a negative limit (a zero limit leaves only the
// single point seeded by the reset), and a GraphShape error if any arc's contribution fails (kind precondition
// violated, dangling pair, etc).
//
// Each of the four stages walks every arc once, looks up its endpoints,
// and accumulates that arc's contribution into both the source and the
// target species before the step is committed.
func (r *RK4) Integrate(h, limit float64) error {
	if h <= 0 || limit < 0 {
		return &reactome.Error{Kind: reactome.NumericDomain, Msg: "RK4 step/limit out of range"}
	}

	r.Net.ResetAll()

	arcs := r.Net.AllInteractions()

	for t := 0.0; t < limit; t += h {
		for stage := 0; stage < 4; stage++ {
			for _, i := range arcs {
				src := r.Net.Source(i.Arc)
				tgt := r.Net.Target(i.Arc)

				dSrc, err := i.Contribution(r.Net, src, stage, h)
				if err != nil {
					r.Log.Error().Err(err).Int64("arc", int64(i.Arc)).Msg("rk4 contribution failed")
					return &reactome.Error{Kind: reactome.GraphShape, Msg: "rk4 contribution", Cause: err}
				}
				dTgt, err := i.Contribution(r.Net, tgt, stage, h)
				if err != nil {
					r.Log.Error().Err(err).Int64("arc", int64(i.Arc)).Msg("rk4 contribution failed")
					return &reactome.Error{Kind: reactome.GraphShape, Msg: "rk4 contribution", Cause: err}
				}
				r.Net.Species(src).Accumulate(stage, dSrc)
				r.Net.Species(tgt).Accumulate(stage, dTgt)
			}
		}
		for _, s := range r.Net.AllSpecies() {
			s.Commit(h)
		}
	}
	return nil
}

// IntegratePrecise re-runs Integrate at a finer step/limit than the
// generation's coarse run and returns the refined best-species score.
// It resets and overwrites every species' trajectory and score, since
// all runs over one network share its species state -- callers that
// want to keep the coarse trajectory for output must copy it out
// before calling IntegratePrecise and restore it afterwards.
func (r *RK4) IntegratePrecise(step, limit float64) (int, error) {
	if err := r.Integrate(step, limit); err != nil {
		return 0, err
	}
	return r.Net.BestSpeciesScore(), nil
}

// weightedSum is a thin convenience wrapper over gonum/floats' stage
// arithmetic, used by tests that want to cross-check a commit's
// h/6*(k0+2k1+2k2+k3) by hand against the same formula gonum's own
// RK4 helper (floats.AddScaled) would produce.
func weightedSum(k [4]float64, h float64) float64 {
	weights := []float64{1, 2, 2, 1}
	ks := []float64{k[0], k[1], k[2], k[3]}
	weighted := make([]float64, 4)
	floats.AddScaledTo(weighted, make([]float64, 4), 1, ks)
	sum := floats.Dot(weights, weighted)
	return h / 6 * sum
}
