/*
 * pocketfinder.go, part of gocavity.
 *
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package pocket

import (
	"fmt"
	"image/color"
	"math"

	chem "github.com/rmera/gocavity"
	"github.com/rmera/gocavity/grid"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	//BoxHalfWidth is the half-width of the box around each atom where its potential is evaluated.
	BoxHalfWidth = 10.0
	//MaxDist2 is the squared distance beyond which an atom doesn't contribute.
	MaxDist2 = 160.0
	//MinDist2 is the smallest squared distance used in the potential.
	MinDist2 = 0.01
)

//lj6 returns eps*((R/d)^12 - 2*(R/d)^6) for the squared distance d2.
func lj6(l LJ, d2 float64) float64 {
	r6 := l.R * l.R * l.R * l.R * l.R * l.R
	d6 := d2 * d2 * d2
	x := r6 / d6
	return l.Eps * (x*x - 2*x)
}

//pocketFinder builds the smoothed probe-potential field.
func pocketFinder(atoms chem.AtomSet, types TypeResolver, params Params, dst *grid.Field, opts Options) (*grid.Field, error) {
	log := opts.logger()
	if params == nil {
		return nil, chem.NewError("no Lennard-Jones parameters", "pocket.pocketFinder", chem.ErrMissingTable)
	}
	probe, ok := params.LJ(opts.ProbeType)
	if !ok {
		log.Error("pocketfinder: no parameters for probe", zap.String("probe", opts.ProbeType))
		return nil, chem.NewError(fmt.Sprintf("no Lennard-Jones parameters for probe type %s", opts.ProbeType), "pocket.pocketFinder", chem.ErrMissingTable)
	}
	//combined parameters for each atom, before touching the field.
	pairs := make([]LJ, atoms.Len())
	for i := range pairs {
		at := atoms.Atom(i)
		t := opts.ProbeType
		if types != nil {
			t = types.Resolve(at.Molname, at.Name, opts.ProbeType)
		}
		a, ok := params.LJ(t)
		if !ok {
			log.Error("pocketfinder: no parameters for atom type", zap.String("type", t), zap.String("atom", at.ResKey()))
			return nil, chem.NewError(fmt.Sprintf("no Lennard-Jones parameters for type %s (atom %s)", t, at.ResKey()), "pocket.pocketFinder", chem.ErrMissingTable)
		}
		pairs[i] = LJ{R: a.R + probe.R, Eps: math.Sqrt(a.Eps * probe.Eps)}
	}
	f, err := grid.ForAtoms(dst, "pocketfinder", atoms, opts.Border, opts.Spacing)
	if err != nil {
		return nil, err
	}
	log.Info("pocketfinder: grid allocated", zap.Ints("extents", f.N[:]), zap.Int("atoms", atoms.Len()))
	pos := chem.Positions(atoms)
	err = grid.Slabs(f.N[2], opts.Workers, func(k0, k1 int) error {
		for a, p := range pos {
			b := f.SphereRange(p, BoxHalfWidth)
			if b.Min[2] < k0 {
				b.Min[2] = k0
			}
			if b.Max[2] > k1 {
				b.Max[2] = k1
			}
			b.Each(func(i, j, k int) {
				d2 := r3.Norm2(r3.Sub(f.IndexToWorld(i, j, k), p))
				if d2 > MaxDist2 {
					return
				}
				f.Add(i, j, k, float32(lj6(pairs[a], math.Max(d2, MinDist2))))
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	f.Clip(float32(opts.Cutoff))
	if err := grid.Smooth(f, opts.Iterations, opts.Workers); err != nil {
		return nil, chem.ErrDecorate(err, "pocket.pocketFinder")
	}
	mean, rms := grid.Stats(f)
	level := mean - opts.Sigma*rms
	f.SetLevels(grid.Contour{Value: level, Shown: true, Style: grid.Solid, Color: color.RGBA{R: 0x40, G: 0xa0, B: 0xff, A: 0xff}})
	log.Info("pocketfinder: done", zap.Float64("mean", mean), zap.Float64("rms", rms), zap.Float64("level", level))
	return f, nil
}
