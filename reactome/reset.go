// Copyright (c) 2024, The EvoDevo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reactome

// ResetAll reseeds every species to its initial concentration and
// clears trajectory and staging state, in preparation for a fresh
// integration run.
func (n *Network) ResetAll() {
	for _, s := range n.speciesByID {
		s.Reset()
	}
}

// Validate reports a NumericDomain error if the limits are internally
// inconsistent (e.g. MaxRate <= MinRate).
func (l Limits) Validate() error {
	if l.MaxRate <= l.MinRate {
		return newErr(NumericDomain, "maxRate must be greater than minRate")
	}
	if l.MinRate < 0 {
		return newErr(NumericDomain, "minRate must be non-negative")
	}
	if l.Hill < 1 {
		return newErr(NumericDomain, "hill must be at least 1")
	}
	return nil
}
