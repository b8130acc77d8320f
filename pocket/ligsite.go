/*
 * ligsite.go, part of gocavity.
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
	"image/color"

	chem "github.com/rmera/gocavity"
	"github.com/rmera/gocavity/grid"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

//occupied marks the grid points inside the molecule.
const occupied = -1

//Directions are the grid directions scanned by ligsite: the 3 axes and the 4 cube diagonals.
var Directions = [7][3]int{
	{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	{1, 1, 1}, {1, 1, -1}, {1, -1, 1}, {-1, 1, 1},
}

//ligsite builds a field where each point outside the molecule counts the directions
//along which it is enclosed by the molecule on both sides.
func ligsite(atoms chem.AtomSet, dst *grid.Field, opts Options) (*grid.Field, error) {
	log := opts.logger()
	f, err := grid.ForAtoms(dst, "ligsite", atoms, opts.Border, opts.Spacing)
	if err != nil {
		return nil, err
	}
	log.Info("ligsite: grid allocated", zap.Ints("extents", f.N[:]), zap.Int("atoms", atoms.Len()))
	mask := make([]int32, f.Len())
	for a := 0; a < atoms.Len(); a++ {
		at := atoms.Atom(a)
		r := at.Vdw
		if r <= 0 {
			r, _ = chem.VdwRadius(at.Symbol)
		}
		r += opts.ProbeRadius
		r2 := r * r
		p := atoms.Pos(a)
		f.SphereRange(p, r).Each(func(i, j, k int) {
			if r3.Norm2(r3.Sub(f.IndexToWorld(i, j, k), p)) <= r2 {
				mask[f.Index(i, j, k)] = occupied
			}
		})
	}
	scores := make([]int32, len(mask))
	err = grid.Slabs(f.N[2], opts.Workers, func(k0, k1 int) error {
		for k := k0; k < k1; k++ {
			for j := 0; j < f.N[1]; j++ {
				for i := 0; i < f.N[0]; i++ {
					idx := f.Index(i, j, k)
					if mask[idx] == occupied {
						continue
					}
					for _, d := range Directions {
						if hits(f, mask, i, j, k, d[0], d[1], d[2]) && hits(f, mask, i, j, k, -d[0], -d[1], -d[2]) {
							scores[idx]++
						}
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	buried := 0
	for i, s := range scores {
		f.Data[i] = float32(s)
		if float64(s) >= opts.Contour {
			buried++
		}
	}
	f.SetLevels(grid.Contour{Value: opts.Contour, Shown: true, Style: grid.Solid, Color: color.RGBA{R: 0xff, G: 0x80, B: 0x20, A: 0xff}})
	log.Info("ligsite: done", zap.Int("points", len(scores)), zap.Int("aboveContour", buried))
	return f, nil
}

//hits returns true if walking from (i,j,k) in steps of (di,dj,dk) reaches an occupied
//point before leaving the grid.
func hits(f *grid.Field, mask []int32, i, j, k, di, dj, dk int) bool {
	for {
		i, j, k = i+di, j+dj, k+dk
		if !f.InGrid(i, j, k) {
			return false
		}
		if mask[f.Index(i, j, k)] == occupied {
			return true
		}
	}
}
