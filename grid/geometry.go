/*
 * geometry.go, part of gocavity.
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

package grid

import (
	"fmt"
	"math"

	chem "github.com/rmera/gocavity"
	"gonum.org/v1/gonum/spatial/r3"
)

//SphereMargin is the number of extra grid points added on each side of the
//index range of a sphere, to tolerate rounding.
const SphereMargin = 2

//Bounds returns the smallest box containing every atom of set, expanded by border on every side.
func Bounds(set chem.AtomSet, border float64) (min, max r3.Vec, err error) {
	if set == nil || set.Len() == 0 {
		return min, max, chem.NewError("can't compute the bounds of an empty atom set", "grid.Bounds", chem.ErrNoAtoms)
	}
	min = set.Pos(0)
	max = min
	for i := 1; i < set.Len(); i++ {
		p := set.Pos(i)
		min = r3.Vec{X: math.Min(min.X, p.X), Y: math.Min(min.Y, p.Y), Z: math.Min(min.Z, p.Z)}
		max = r3.Vec{X: math.Max(max.X, p.X), Y: math.Max(max.Y, p.Y), Z: math.Max(max.Z, p.Z)}
	}
	b := r3.Vec{X: border, Y: border, Z: border}
	return r3.Sub(min, b), r3.Add(max, b), nil
}

//Extents returns the number of grid points needed along each axis to cover the box
//from min to max with the given spacing. The division is rounded to nearest, not
//floored.
func Extents(min, max, spacing r3.Vec) [3]int {
	return [3]int{
		1 + int(math.Floor(0.5+(max.X-min.X)/spacing.X)),
		1 + int(math.Floor(0.5+(max.Y-min.Y)/spacing.Y)),
		1 + int(math.Floor(0.5+(max.Z-min.Z)/spacing.Z)),
	}
}

//ForAtoms allocates dst (or a new field named name, if dst is nil) to cover set plus border.
//It is the allocation step every field builder shares.
func ForAtoms(dst *Field, name string, set chem.AtomSet, border, spacing float64) (*Field, error) {
	min, max, err := Bounds(set, border)
	if err != nil {
		return nil, chem.ErrDecorate(err, "grid.ForAtoms")
	}
	if dst == nil {
		dst = &Field{Name: name}
	}
	if err := dst.Allocate(min, max, r3.Vec{X: spacing, Y: spacing, Z: spacing}); err != nil {
		return nil, chem.ErrDecorate(err, "grid.ForAtoms")
	}
	return dst, nil
}

//Box is a half-open range of grid indexes, [Min, Max) on each axis.
type Box struct {
	Min, Max [3]int
}

//Empty returns true if the box contains no grid point.
func (b Box) Empty() bool {
	return b.Max[0] <= b.Min[0] || b.Max[1] <= b.Min[1] || b.Max[2] <= b.Min[2]
}

//Len returns the number of grid points in the box.
func (b Box) Len() int {
	if b.Empty() {
		return 0
	}
	return (b.Max[0] - b.Min[0]) * (b.Max[1] - b.Min[1]) * (b.Max[2] - b.Min[2])
}

func (b Box) String() string {
	return fmt.Sprintf("[%v,%v)", b.Min, b.Max)
}

//Each calls fn for every grid point in the box, x fastest.
func (b Box) Each(fn func(i, j, k int)) {
	for k := b.Min[2]; k < b.Max[2]; k++ {
		for j := b.Min[1]; j < b.Max[1]; j++ {
			for i := b.Min[0]; i < b.Max[0]; i++ {
				fn(i, j, k)
			}
		}
	}
}

//Full returns the box covering the whole grid.
func (f *Field) Full() Box {
	return Box{Max: f.N}
}

//Clamp returns the intersection of b with the grid.
func (f *Field) Clamp(b Box) Box {
	for a := 0; a < 3; a++ {
		if b.Min[a] < 0 {
			b.Min[a] = 0
		}
		if b.Max[a] > f.N[a] {
			b.Max[a] = f.N[a]
		}
	}
	return b
}

//SphereRange returns the box of grid indexes, clamped to the grid, that covers
//every grid point within radius of center.
func (f *Field) SphereRange(center r3.Vec, radius float64) Box {
	i, j, k := f.WorldToIndex(center)
	c := [3]int{i, j, k}
	s := [3]float64{f.Spacing.X, f.Spacing.Y, f.Spacing.Z}
	var b Box
	for a := 0; a < 3; a++ {
		r := int(math.Floor(0.5+radius/s[a])) + SphereMargin
		b.Min[a] = c[a] - r
		b.Max[a] = c[a] + r + 1
	}
	return f.Clamp(b)
}

//Window returns the box of half-width w grid points around the grid point nearest to p,
//clamped to the grid.
func (f *Field) Window(p r3.Vec, w int) Box {
	i, j, k := f.WorldToIndex(p)
	return f.Clamp(Box{Min: [3]int{i - w, j - w, k - w}, Max: [3]int{i + w + 1, j + w + 1, k + w + 1}})
}
