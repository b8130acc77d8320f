/*
 * field.go, part of gocavity.
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

//Package grid implements scalar fields sampled on axis-aligned 3D grids, the
//geometry helpers used to build them around atom sets, and the filters
//shared by the field builders.
package grid

import (
	"fmt"
	"image/color"
	"math"

	chem "github.com/rmera/gocavity"
	"gonum.org/v1/gonum/spatial/r3"
)

//MaxLevels is the number of contour levels a field carries.
const MaxLevels = 3

//Style is the rendering style of a contour level. It is carried data only.
type Style int

const (
	Lines Style = iota
	Solid
	Dots
)

func (s Style) String() string {
	switch s {
	case Lines:
		return "lines"
	case Solid:
		return "solid"
	case Dots:
		return "dots"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

//Contour is the metadata for one contour level of a field.
type Contour struct {
	Value float64
	Shown bool
	Style Style
	Color color.RGBA
}

//Field is a scalar field on a regular grid. The samples are stored x-fastest, then y, then z:
//the sample for the grid point (i,j,k) is Data[i+j*N[0]+k*N[0]*N[1]].
type Field struct {
	Name    string
	Origin  r3.Vec
	Spacing r3.Vec
	N       [3]int
	Data    []float32
	Levels  [MaxLevels]Contour
}

//Len returns the number of grid points.
func (f *Field) Len() int {
	return f.N[0] * f.N[1] * f.N[2]
}

//InGrid returns true if (i,j,k) is a point of the grid.
func (f *Field) InGrid(i, j, k int) bool {
	return i >= 0 && j >= 0 && k >= 0 && i < f.N[0] && j < f.N[1] && k < f.N[2]
}

//Index returns the position in Data of the grid point (i,j,k).
func (f *Field) Index(i, j, k int) int {
	if checked && !f.InGrid(i, j, k) {
		panic(fmt.Sprintf("grid: index (%d,%d,%d) out of %v", i, j, k, f.N))
	}
	return i + j*f.N[0] + k*f.N[0]*f.N[1]
}

//At returns the sample at (i,j,k).
func (f *Field) At(i, j, k int) float32 {
	return f.Data[f.Index(i, j, k)]
}

//Set sets the sample at (i,j,k) to v.
func (f *Field) Set(i, j, k int, v float32) {
	f.Data[f.Index(i, j, k)] = v
}

//Add adds v to the sample at (i,j,k).
func (f *Field) Add(i, j, k int, v float32) {
	f.Data[f.Index(i, j, k)] += v
}

//WorldToIndex returns the grid point nearest to p. The result can be
//outside the grid.
func (f *Field) WorldToIndex(p r3.Vec) (int, int, int) {
	return int(math.Floor(0.5 + (p.X-f.Origin.X)/f.Spacing.X)),
		int(math.Floor(0.5 + (p.Y-f.Origin.Y)/f.Spacing.Y)),
		int(math.Floor(0.5 + (p.Z-f.Origin.Z)/f.Spacing.Z))
}

//IndexToWorld returns the position of the grid point (i,j,k).
func (f *Field) IndexToWorld(i, j, k int) r3.Vec {
	return r3.Vec{
		X: f.Origin.X + float64(i)*f.Spacing.X,
		Y: f.Origin.Y + float64(j)*f.Spacing.Y,
		Z: f.Origin.Z + float64(k)*f.Spacing.Z,
	}
}

//Fill sets every sample to v.
func (f *Field) Fill(v float32) {
	for i := range f.Data {
		f.Data[i] = v
	}
}

//Clip sets every sample above max to max.
func (f *Field) Clip(max float32) {
	for i, v := range f.Data {
		if v > max {
			f.Data[i] = max
		}
	}
}

//Negate changes the sign of every sample.
func (f *Field) Negate() {
	for i, v := range f.Data {
		f.Data[i] = -v
	}
}

//Range returns the smallest and largest samples.
func (f *Field) Range() (min, max float32) {
	if len(f.Data) == 0 {
		return 0, 0
	}
	min, max = f.Data[0], f.Data[0]
	for _, v := range f.Data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

//Values returns a float64 copy of the samples.
func (f *Field) Values() []float64 {
	ret := make([]float64, len(f.Data))
	for i, v := range f.Data {
		ret[i] = float64(v)
	}
	return ret
}

//SetLevels replaces the contour levels of the field with levels. Levels
//not given are hidden.
func (f *Field) SetLevels(levels ...Contour) {
	for i := range f.Levels {
		if i < len(levels) {
			f.Levels[i] = levels[i]
		} else {
			f.Levels[i] = Contour{}
		}
	}
}

//Allocate sizes the field to cover the box from min to max with the given spacing, and
//allocates a zeroed Data slice. The origin of the field is min.
func (f *Field) Allocate(min, max, spacing r3.Vec) error {
	if !(spacing.X > 0 && spacing.Y > 0 && spacing.Z > 0) {
		return chem.NewError(fmt.Sprintf("grid spacing must be positive, got %v", spacing), "grid.Allocate", chem.ErrBadOption)
	}
	if max.X < min.X || max.Y < min.Y || max.Z < min.Z {
		return chem.NewError(fmt.Sprintf("empty box %v-%v", min, max), "grid.Allocate", chem.ErrShape)
	}
	f.Origin = min
	f.Spacing = spacing
	f.N = Extents(min, max, spacing)
	f.Data = make([]float32, f.Len())
	return nil
}

//New returns a field named name, allocated to cover the box from min to max.
func New(name string, min, max, spacing r3.Vec) (*Field, error) {
	f := &Field{Name: name}
	if err := f.Allocate(min, max, spacing); err != nil {
		return nil, chem.ErrDecorate(err, "grid.New")
	}
	return f, nil
}
