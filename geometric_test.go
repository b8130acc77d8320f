/*
 * geometric_test.go, part of gocavity.
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

package chem

import (
	"errors"
	"math"
	"testing"

	v3 "github.com/rmera/gocavity/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

func rotZ(angle float64) *mat.Dense {
	c, s := math.Cos(angle), math.Sin(angle)
	return mat.NewDense(3, 3, []float64{c, -s, 0, s, c, 0, 0, 0, 1})
}

func TestSuper(Te *testing.T) {
	pts := []r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1.5, Y: 0, Z: 0}, {X: 0, Y: 1.2, Z: 0.3}, {X: -0.7, Y: 0.4, Z: 1.1}}
	templa, err := v3.FromVecs(pts)
	require.NoError(Te, err)
	known := &Transform{Rotation: rotZ(0.7), From: r3.Vec{}, To: r3.Vec{X: 3, Y: -2, Z: 5}}
	test := known.ApplyMatrix(templa)
	T, rmsd, err := SuperRMSD(test, templa)
	require.NoError(Te, err)
	assert.InDelta(Te, 0.0, rmsd, 1e-9)
	for i, p := range pts {
		got := T.Apply(test.Vec(i))
		assert.InDelta(Te, 0.0, r3.Norm(r3.Sub(got, p)), 1e-9, "point %d", i)
	}
	assert.InDelta(Te, 1.0, mat.Det(T.Rotation), 1e-9)
	//the matrix form agrees with the one applied vector by vector.
	moved := known.ApplyMatrix(templa)
	for i, p := range pts {
		assert.InDelta(Te, 0.0, r3.Norm(r3.Sub(known.Apply(p), moved.Vec(i))), 1e-12)
	}
	assert.InDelta(Te, 0.0, r3.Norm(r3.Sub(test.Centroid(), known.Apply(templa.Centroid()))), 1e-12)
}

func TestSuperErrors(Te *testing.T) {
	a, _ := v3.FromVecs([]r3.Vec{{X: 1}, {Y: 1}})
	b, _ := v3.FromVecs([]r3.Vec{{X: 1}, {Y: 1}, {Z: 1}})
	_, err := Super(a, b)
	require.Error(Te, err)
	assert.True(Te, errors.Is(err, ErrShape))
	_, err = Super(a, a)
	assert.True(Te, errors.Is(err, ErrShape), "two points are not enough")
}

func TestRMSD(Te *testing.T) {
	a, _ := v3.FromVecs([]r3.Vec{{X: 1}, {Y: 1}})
	b, _ := v3.FromVecs([]r3.Vec{{X: 2}, {Y: 2}})
	r, err := RMSD(a, b)
	require.NoError(Te, err)
	assert.InDelta(Te, 1.0, r, 1e-12)
}

func TestMoleculeAppendAndVdw(Te *testing.T) {
	ats := []*Atom{{Name: "CA", Symbol: "C", Molname: "ALA", Molid: 1}, {Name: "ZZ", Symbol: "Xx", Molname: "ALA", Molid: 1}}
	mol, err := NewMoleculeFromVecs(ats, []r3.Vec{{X: 1}, {X: 2}})
	require.NoError(Te, err)
	assert.Equal(Te, 1, mol.FillVdw(), "one unknown element")
	assert.Equal(Te, 1.70, mol.Atom(0).Vdw)
	assert.Equal(Te, DefaultVdw, mol.Atom(1).Vdw)
	mol.Append(&Atom{Name: "PB", Symbol: "X"}, r3.Vec{Z: 9})
	assert.Equal(Te, 3, mol.Len())
	assert.Equal(Te, r3.Vec{Z: 9}, mol.Pos(2))
	empty, err := NewMolecule(nil, nil)
	require.Error(Te, err)
	assert.Nil(Te, empty)
	out, err := NewMolecule([]*Atom{}, nil)
	require.NoError(Te, err)
	out.Append(&Atom{Name: "PB"}, r3.Vec{X: 1})
	assert.Equal(Te, r3.Vec{X: 1}, out.Pos(0))
	assert.Equal(Te, 6, AtomicNumber("C"))
	assert.Equal(Te, 0, AtomicNumber("X"))
}

func TestMoleculeAppendMany(Te *testing.T) {
	mol, err := NewMoleculeFromVecs([]*Atom{{Name: "CA", Symbol: "C"}}, []r3.Vec{{X: 1}})
	require.NoError(Te, err)
	var ats []*Atom
	var pos []r3.Vec
	for i := 0; i < 500; i++ {
		ats = append(ats, &Atom{Name: "PB", Symbol: "X", ID: i + 2})
		pos = append(pos, r3.Vec{X: float64(i), Y: 1, Z: -2})
	}
	coords := mol.Coords
	require.NoError(Te, mol.AppendMany(ats, pos))
	require.Equal(Te, 501, mol.Len())
	assert.Equal(Te, 501, mol.Coords.NVecs())
	assert.Equal(Te, r3.Vec{X: 1}, mol.Pos(0))
	assert.Equal(Te, r3.Vec{X: 499, Y: 1, Z: -2}, mol.Pos(500))
	assert.Same(Te, ats[10], mol.Atom(11))
	//the old coordinates are not written to.
	assert.Equal(Te, 1, coords.NVecs())

	require.NoError(Te, mol.AppendMany(nil, nil))
	assert.Equal(Te, 501, mol.Len())
	err = mol.AppendMany(ats[:2], pos[:1])
	assert.True(Te, errors.Is(err, ErrShape))
	assert.Equal(Te, 501, mol.Len())

	out, err := NewMolecule([]*Atom{}, nil)
	require.NoError(Te, err)
	require.NoError(Te, out.AppendMany(ats[:3], pos[:3]))
	assert.Equal(Te, 3, out.Len())
	assert.Equal(Te, r3.Vec{X: 2, Y: 1, Z: -2}, out.Pos(2))
}

func TestResidues(Te *testing.T) {
	ats := []*Atom{
		{Name: "N", Molname: "SER", Molid: 1, Chain: "A"},
		{Name: "OG", Molname: "SER", Molid: 1, Chain: "A"},
		{Name: "N", Molname: "THR", Molid: 2, Chain: "A"},
		{Name: "CB", Molname: "SER", Molid: 1, Chain: "A"},
	}
	top, err := NewTopology(ats, 0)
	require.NoError(Te, err)
	res := Residues(top)
	require.Len(Te, res, 2)
	assert.Equal(Te, []int{0, 1, 3}, res[0])
	idx, ok := FindNames(top, res[0], []string{"OG", "CB"})
	require.True(Te, ok)
	assert.Equal(Te, []int{1, 3}, idx)
	_, ok = FindNames(top, res[1], []string{"OG"})
	assert.False(Te, ok)
	assert.True(Te, MatchResidue("*", "SER"))
	assert.True(Te, MatchResidue("SER,THR", "THR"))
	assert.False(Te, MatchResidue("SER", "THR"))
}
