// Copyright (c) 2024, The EvoDevo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package emit

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/mdhelgen/EvoDevo/cell"
	"github.com/mdhelgen/EvoDevo/reactome"
	"github.com/mdhelgen/EvoDevo/species"
)

// gnuplotPNGs renders one concentration-vs-time plot per non-Null
// species in c.Net, piping an inline data block to the external
// gnuplot binary. Its absence or failure is a soft IoEmission, never
// propagated into the population loop.
func (e *Emitter) gnuplotPNGs(dir string, gen int, c *cell.Cell) error {
	var firstErr error
	for _, s := range c.Net.AllSpecies() {
		if s.Kind == species.Null {
			continue
		}
		name := fmt.Sprintf("%sc%dg%d.plot", s.ShortName(), c.ID, gen)
		out := filepath.Join(dir, name+".png")
		if err := plotTrajectory(out, s, e.Cfg.RKStep); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// buildGnuplotScript renders the inline-data script gnuplot needs to
// produce outPath from s's trajectory, sampled at a fixed step per
// committed point. Kept separate from plotTrajectory so the script
// text itself is testable without spawning gnuplot.
func buildGnuplotScript(outPath string, s *species.Species, step float64) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "set terminal pngcairo\n")
	fmt.Fprintf(&buf, "set output %q\n", outPath)
	fmt.Fprintf(&buf, "set title %q\n", s.ShortName())
	fmt.Fprintf(&buf, "set xlabel \"t\"\n")
	fmt.Fprintf(&buf, "set ylabel \"concentration\"\n")
	fmt.Fprintln(&buf, "plot '-' using 1:2 with lines notitle")
	for i, v := range s.Trajectory {
		fmt.Fprintf(&buf, "%g %g\n", float64(i)*step, v)
	}
	fmt.Fprintln(&buf, "e")
	return buf.Bytes()
}

func plotTrajectory(outPath string, s *species.Species, step float64) error {
	script := buildGnuplotScript(outPath, s, step)

	cmd := exec.Command("gnuplot")
	cmd.Stdin = bytes.NewReader(script)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &reactome.Error{Kind: reactome.IoEmission, Msg: "gnuplot subprocess: " + stderr.String(), Cause: err}
	}
	return nil
}
