/*
 * tangent.go, part of gocavity.
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

package pass

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

//degenerate is the tolerance below which distances and squared heights are
//considered zero by Tangent.
const degenerate = 1e-9

//Tangent returns the points at distance ra, rb and rc from c1, c2 and c3 respectively.
//For spheres of radius a1, a2, a3 and a probe of radius p, call it with ra=a1+p etc. to
//get the centers of the probes touching the three spheres externally.
//There can be 0, 1 or 2 solutions. Coincident or collinear centers give no solutions.
func Tangent(c1, c2, c3 r3.Vec, ra, rb, rc float64) []r3.Vec {
	e := r3.Sub(c2, c1)
	d := r3.Norm(e)
	if d < degenerate {
		return nil
	}
	ex := r3.Scale(1/d, e)
	v := r3.Sub(c3, c1)
	i := r3.Dot(ex, v)
	w := r3.Sub(v, r3.Scale(i, ex))
	wn := r3.Norm(w)
	if wn < degenerate {
		return nil //collinear
	}
	ey := r3.Scale(1/wn, w)
	ez := r3.Cross(ex, ey)
	j := r3.Dot(ey, v)
	x := (ra*ra - rb*rb + d*d) / (2 * d)
	y := (ra*ra-rc*rc+i*i+j*j)/(2*j) - (i/j)*x
	z2 := ra*ra - x*x - y*y
	base := r3.Add(c1, r3.Add(r3.Scale(x, ex), r3.Scale(y, ey)))
	switch {
	case z2 < -degenerate:
		return nil
	case z2 <= degenerate:
		return []r3.Vec{base}
	}
	z := math.Sqrt(z2)
	return []r3.Vec{
		r3.Add(base, r3.Scale(z, ez)),
		r3.Sub(base, r3.Scale(z, ez)),
	}
}
