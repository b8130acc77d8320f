/*
 * lattice_test.go, part of gocavity.
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

package lattice

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	chem "github.com/rmera/gocavity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func randomPoints(n int, side float64, seed int64) []r3.Vec {
	rnd := rand.New(rand.NewSource(seed))
	pts := make([]r3.Vec, n)
	for i := range pts {
		pts[i] = r3.Vec{X: (rnd.Float64() - 0.5) * side, Y: (rnd.Float64() - 0.5) * side, Z: (rnd.Float64() - 0.5) * side}
	}
	return pts
}

func bruteForce(pts []r3.Vec, exclude int, p r3.Vec, radius float64) []int {
	var ret []int
	for i, q := range pts {
		if i != exclude && r3.Norm2(r3.Sub(q, p)) < radius*radius {
			ret = append(ret, i)
		}
	}
	return ret
}

//exact filter applied on the approximate result must give the brute-force result.
func TestNeighborsMatchBruteForce(Te *testing.T) {
	const cellSize = 2.5
	pts := randomPoints(600, 20, 1)
	L, err := FromPoints(pts, cellSize)
	require.NoError(Te, err)
	assert.Equal(Te, len(pts), L.Len())
	queries := randomPoints(50, 24, 2)
	for qi, q := range queries {
		for _, radius := range []float64{0.5, 1.7, cellSize} {
			var filtered []int
			for _, id := range L.Neighbors(NoExclude, q, nil) {
				if r3.Norm2(r3.Sub(pts[id], q)) < radius*radius {
					filtered = append(filtered, id)
				}
			}
			sort.Ints(filtered)
			assert.Equal(Te, bruteForce(pts, NoExclude, q, radius), filtered, "query %d radius %g", qi, radius)
			exact := L.Within(NoExclude, q, radius, nil)
			sort.Ints(exact)
			assert.Equal(Te, bruteForce(pts, NoExclude, q, radius), exact)
		}
	}
}

func TestWithinWideRadius(Te *testing.T) {
	pts := randomPoints(300, 15, 3)
	L, err := FromPoints(pts, 1.0)
	require.NoError(Te, err)
	q := r3.Vec{X: 0.3, Y: -0.2, Z: 1}
	got := L.Within(NoExclude, q, 4.2, nil)
	sort.Ints(got)
	assert.Equal(Te, bruteForce(pts, NoExclude, q, 4.2), got)
	assert.Equal(Te, len(got), L.Count(NoExclude, q, 4.2))
}

func TestExclude(Te *testing.T) {
	L, err := New(3)
	require.NoError(Te, err)
	L.Insert(0, r3.Vec{})
	L.Insert(1, r3.Vec{X: 1})
	assert.ElementsMatch(Te, []int{1}, L.Neighbors(0, r3.Vec{}, nil))
	assert.ElementsMatch(Te, []int{0, 1}, L.Neighbors(NoExclude, r3.Vec{}, nil))
	assert.Equal(Te, 1, L.Count(0, r3.Vec{}, 2))
}

func TestEmptyAndBadCell(Te *testing.T) {
	L, err := New(1)
	require.NoError(Te, err)
	assert.Empty(Te, L.Neighbors(NoExclude, r3.Vec{}, nil))
	assert.Empty(Te, L.Within(NoExclude, r3.Vec{}, 1, nil))
	for _, bad := range []float64{0, -1} {
		_, err := New(bad)
		require.Error(Te, err)
		assert.True(Te, errors.Is(err, chem.ErrBadOption))
	}
}

func TestNegativeCoordinates(Te *testing.T) {
	L, err := New(1)
	require.NoError(Te, err)
	//-0.1 and 0.1 fall in different cells but are neighbors.
	L.Insert(7, r3.Vec{X: -0.1, Y: -0.1, Z: -0.1})
	assert.Equal(Te, []int{7}, L.Within(NoExclude, r3.Vec{X: 0.1, Y: 0.1, Z: 0.1}, 0.5, nil))
}
