/*
 * clash.go, part of gocavity.
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

//Package clash tests points against a set of atoms for steric overlap.
package clash

import (
	"math"

	chem "github.com/rmera/gocavity"
	"github.com/rmera/gocavity/lattice"
	"gonum.org/v1/gonum/spatial/r3"
)

//Checker answers overlap queries against a fixed atom set.
type Checker struct {
	set    chem.AtomSet
	lat    *lattice.Lattice
	radii  []float64
	maxVdw float64
	buf    []int
}

//New returns a Checker over the atoms in set. maxRadius is the largest probe
//radius that will be queried, and is only used to size the lattice.
//A Checker is not safe for concurrent use.
func New(set chem.AtomSet, maxRadius float64) (*Checker, error) {
	c := &Checker{set: set, radii: make([]float64, set.Len())}
	for i := range c.radii {
		at := set.Atom(i)
		r := at.Vdw
		if r <= 0 {
			r, _ = chem.VdwRadius(at.Symbol)
		}
		c.radii[i] = r
		c.maxVdw = math.Max(c.maxVdw, r)
	}
	var err error
	c.lat, err = lattice.FromAtoms(set, math.Max(c.maxVdw+maxRadius, 1))
	if err != nil {
		return nil, chem.ErrDecorate(err, "clash.New")
	}
	return c, nil
}

//Clashes returns true if some atom of the set, for which skip (if not nil) returns false,
//is closer to p than radius plus its vdW radius minus tolerance.
func (c *Checker) Clashes(p r3.Vec, radius, tolerance float64, skip func(*chem.Atom) bool) bool {
	_, found := c.closest(p, radius, tolerance, skip, true)
	return found
}

//Overlap returns the index of the atom that overlaps the most with a sphere of the
//given radius at p, and the overlap (radius+vdw-distance). It returns -1 and 0 if
//no atom overlaps it.
func (c *Checker) Overlap(p r3.Vec, radius float64, skip func(*chem.Atom) bool) (int, float64) {
	best, found := c.closest(p, radius, 0, skip, false)
	if !found {
		return -1, 0
	}
	return best, radius + c.radii[best] - r3.Norm(r3.Sub(c.set.Pos(best), p))
}

//closest returns the atom with the largest overlap with the sphere, or the first
//one found, if first is true.
func (c *Checker) closest(p r3.Vec, radius, tolerance float64, skip func(*chem.Atom) bool, first bool) (int, bool) {
	c.buf = c.lat.Within(lattice.NoExclude, p, c.maxVdw+radius, c.buf[:0])
	best, over := -1, 0.0
	for _, i := range c.buf {
		if skip != nil && skip(c.set.Atom(i)) {
			continue
		}
		o := radius + c.radii[i] - tolerance - r3.Norm(r3.Sub(c.set.Pos(i), p))
		if o <= 0 {
			continue
		}
		if first {
			return i, true
		}
		if o > over {
			best, over = i, o
		}
	}
	return best, best >= 0
}
