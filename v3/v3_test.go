/*
 * v3_test.go, part of gocavity.
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

package v3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewMatrix(Te *testing.T) {
	_, err := NewMatrix([]float64{1, 2, 3, 4})
	require.Error(Te, err)
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.NoError(Te, err)
	assert.Equal(Te, 3, A.NVecs())
	assert.Equal(Te, r3.Vec{X: 4, Y: 5, Z: 6}, A.Vec(1))
}

func TestViews(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.NoError(Te, err)
	View := A.View(1, 2)
	assert.Equal(Te, 2, View.NVecs())
	View.SetVec(0, r3.Vec{X: 100})
	assert.Equal(Te, 100.0, A.At(1, 0), "changes in a view must reach the parent")
	assert.Equal(Te, r3.Vec{X: 7, Y: 8, Z: 9}, View.Vec(1))
}

func TestSomeVecs(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	A, err := NewMatrix(a)
	require.NoError(Te, err)
	B := Zeros(3)
	cind := []int{1, 3, 5}
	require.NoError(Te, B.SomeVecsSafe(A, cind))
	assert.Equal(Te, r3.Vec{X: 10, Y: 11, Z: 12}, B.Vec(1))
	C := Zeros(2)
	assert.Error(Te, C.SomeVecsSafe(A, cind))
	assert.Error(Te, B.SomeVecsSafe(A, []int{0, 1, 6}))
}

func TestCentroidAndShift(Te *testing.T) {
	A, err := FromVecs([]r3.Vec{{X: 1}, {X: -1}, {Y: 3}, {Y: -3}})
	require.NoError(Te, err)
	assert.Equal(Te, r3.Vec{}, A.Centroid())
	B := Zeros(A.NVecs())
	B.AddVec(A, r3.Vec{Z: 2})
	assert.Equal(Te, r3.Vec{Z: 2}, B.Centroid())
	B.SubVec(B, r3.Vec{Z: 2})
	assert.True(Te, mat.Equal(A, B))
}

func TestSVD(Te *testing.T) {
	A := mat.NewDense(3, 3, []float64{2, 0, 0, 0, 3, 0, 0, 0, 1})
	U, s, V, err := SVD(A)
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{3, 2, 1}, s, 1e-12)
	var R mat.Dense
	R.Mul(U, V.T())
	assert.InDelta(Te, 1.0, Det(&R), 1e-12)
}
