// Copyright (c) 2024, The EvoDevo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package emit

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mdhelgen/EvoDevo/cell"
	"github.com/mdhelgen/EvoDevo/interaction"
	"github.com/mdhelgen/EvoDevo/reactome"
	"github.com/mdhelgen/EvoDevo/species"
)

// subsample keeps only every subsample-th committed point of a
// trajectory CSV, matching the external-interfaces output tree spec.
const subsample = 5

func ftoa(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// csvData writes csv/<shortName>c<c>g<g>.csv for every non-Null
// species: t, value rows subsampled every 5th committed point.
func (e *Emitter) csvData(dir string, gen int, c *cell.Cell) error {
	csvDir := filepath.Join(dir, "csv")
	if err := os.MkdirAll(csvDir, 0o755); err != nil {
		return &reactome.Error{Kind: reactome.IoEmission, Msg: "csv directory", Cause: err}
	}

	var firstErr error
	for _, s := range c.Net.AllSpecies() {
		if s.Kind == species.Null {
			continue
		}
		path := filepath.Join(csvDir, fmt.Sprintf("%sc%dg%d.csv", s.ShortName(), c.ID, gen))
		if err := writeConcentrationCSV(path, s, e.Cfg.RKStep); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func writeConcentrationCSV(path string, s *species.Species, step float64) error {
	f, err := os.Create(path)
	if err != nil {
		return &reactome.Error{Kind: reactome.IoEmission, Msg: "create concentration csv", Cause: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()
	for i, v := range s.Trajectory {
		if i%subsample != 0 {
			continue
		}
		t := float64(i) * step
		if err := w.Write([]string{ftoa(t), ftoa(v)}); err != nil {
			return &reactome.Error{Kind: reactome.IoEmission, Msg: "write concentration csv row", Cause: err}
		}
	}
	return nil
}

// csvInteractions writes csv/Cell<c>Gen<g>.csv: one row per
// interaction arc, plus an occupancy column populated only for
// PromoterBind rows (the promoter-occupancy diagnostic).
func (e *Emitter) csvInteractions(dir string, gen int, c *cell.Cell) error {
	csvDir := filepath.Join(dir, "csv")
	if err := os.MkdirAll(csvDir, 0o755); err != nil {
		return &reactome.Error{Kind: reactome.IoEmission, Msg: "csv directory", Cause: err}
	}

	path := filepath.Join(csvDir, fmt.Sprintf("Cell%dGen%d.csv", c.ID, gen))
	f, err := os.Create(path)
	if err != nil {
		return &reactome.Error{Kind: reactome.IoEmission, Msg: "create interaction csv", Cause: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"interactionKind", "sourceShortName", "targetShortName", "rate", "occupancy"}); err != nil {
		return &reactome.Error{Kind: reactome.IoEmission, Msg: "write interaction csv header", Cause: err}
	}

	for _, i := range c.Net.AllInteractions() {
		src := c.Net.Species(c.Net.Source(i.Arc))
		tgt := c.Net.Species(c.Net.Target(i.Arc))
		occupancy := ""
		if i.Kind == interaction.PromoterBind {
			occupancy = ftoa(c.Net.PromoterOccupancy(tgt))
		}
		row := []string{i.Kind.String(), src.ShortName(), tgt.ShortName(), ftoa(i.Rate), occupancy}
		if err := w.Write(row); err != nil {
			return &reactome.Error{Kind: reactome.IoEmission, Msg: "write interaction csv row", Cause: err}
		}
	}
	return nil
}
