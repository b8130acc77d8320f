/*
 * lattice.go, part of gocavity.
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

//Package lattice implements a uniform-grid spatial hash over 3D points. Each
//stored point carries an integer identifier. Queries return the ids stored in the
//27 cells around a point, optionally filtered by exact distance.
package lattice

import (
	"fmt"
	"math"

	chem "github.com/rmera/gocavity"
	"gonum.org/v1/gonum/spatial/r3"
)

//NoExclude is the exclude value that doesn't filter out any id.
const NoExclude = -1

type cell struct {
	x, y, z int
}

type entry struct {
	id  int
	pos r3.Vec
}

//Lattice is a spatial hash with a fixed cell size. It is append-only:
//entries can't be moved or deleted. Build a new one for every run.
//The cell size should be at least the largest radius that will be queried,
//so the 27 cells around a point hold every neighbor within that radius.
type Lattice struct {
	size  float64
	cells map[cell][]entry
	n     int
}

//New returns an empty lattice with cells of size cellSize.
func New(cellSize float64) (*Lattice, error) {
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return nil, chem.NewError(fmt.Sprintf("cell size must be positive and finite, got %g", cellSize), "lattice.New", chem.ErrBadOption)
	}
	return &Lattice{size: cellSize, cells: make(map[cell][]entry)}, nil
}

//FromAtoms returns a lattice holding every atom of set, with the atom index as id.
func FromAtoms(set chem.AtomSet, cellSize float64) (*Lattice, error) {
	L, err := New(cellSize)
	if err != nil {
		return nil, chem.ErrDecorate(err, "lattice.FromAtoms")
	}
	for i := 0; i < set.Len(); i++ {
		L.Insert(i, set.Pos(i))
	}
	return L, nil
}

//FromPoints is like FromAtoms for a slice of points.
func FromPoints(pts []r3.Vec, cellSize float64) (*Lattice, error) {
	L, err := New(cellSize)
	if err != nil {
		return nil, chem.ErrDecorate(err, "lattice.FromPoints")
	}
	for i, p := range pts {
		L.Insert(i, p)
	}
	return L, nil
}

//CellSize returns the size of the lattice cells.
func (L *Lattice) CellSize() float64 {
	return L.size
}

//Len returns the number of entries in the lattice.
func (L *Lattice) Len() int {
	return L.n
}

func (L *Lattice) cellOf(p r3.Vec) cell {
	return cell{
		x: int(math.Floor(p.X / L.size)),
		y: int(math.Floor(p.Y / L.size)),
		z: int(math.Floor(p.Z / L.size)),
	}
}

//Insert adds the point p with identifier id. The same id can be inserted
//more than once, e.g. at a new position, in which case queries can
//return it more than once.
func (L *Lattice) Insert(id int, p r3.Vec) {
	c := L.cellOf(p)
	L.cells[c] = append(L.cells[c], entry{id: id, pos: p})
	L.n++
}

//visit calls f for every entry in the cells within rings cells of the one containing p.
func (L *Lattice) visit(p r3.Vec, rings int, f func(e entry)) {
	if L.n == 0 {
		return
	}
	c := L.cellOf(p)
	for i := c.x - rings; i <= c.x+rings; i++ {
		for j := c.y - rings; j <= c.y+rings; j++ {
			for k := c.z - rings; k <= c.z+rings; k++ {
				for _, e := range L.cells[cell{i, j, k}] {
					f(e)
				}
			}
		}
	}
}

//Neighbors appends to dst the ids of every entry in the 3x3x3 block of cells centered on
//the cell containing p, except those with id exclude, and returns the extended slice.
//The result is a superset of the entries within CellSize of p; callers
//filter by exact distance themselves.
func (L *Lattice) Neighbors(exclude int, p r3.Vec, dst []int) []int {
	L.visit(p, 1, func(e entry) {
		if e.id != exclude {
			dst = append(dst, e.id)
		}
	})
	return dst
}

func (L *Lattice) rings(radius float64) int {
	if radius <= L.size {
		return 1
	}
	return int(math.Ceil(radius / L.size))
}

//Within appends to dst the ids of the entries strictly closer than radius to p,
//except those with id exclude. Distances are the ones of the stored positions.
func (L *Lattice) Within(exclude int, p r3.Vec, radius float64, dst []int) []int {
	r2 := radius * radius
	L.visit(p, L.rings(radius), func(e entry) {
		if e.id != exclude && r3.Norm2(r3.Sub(e.pos, p)) < r2 {
			dst = append(dst, e.id)
		}
	})
	return dst
}

//Count returns how many entries, other than exclude, are strictly closer than radius to p.
func (L *Lattice) Count(exclude int, p r3.Vec, radius float64) int {
	r2 := radius * radius
	n := 0
	L.visit(p, L.rings(radius), func(e entry) {
		if e.id != exclude && r3.Norm2(r3.Sub(e.pos, p)) < r2 {
			n++
		}
	})
	return n
}
