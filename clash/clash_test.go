/*
 * clash_test.go, part of gocavity.
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

package clash

import (
	"testing"

	chem "github.com/rmera/gocavity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func testSet(Te *testing.T) *chem.Molecule {
	ats := []*chem.Atom{
		{Name: "N", Symbol: "N", Vdw: 1.55},
		{Name: "CA", Symbol: "C", Vdw: 1.7},
		{Name: "O", Symbol: "O"}, //no radius, the element one is used.
	}
	pos := []r3.Vec{{}, {X: 1.5}, {X: 3, Y: 1}}
	mol, err := chem.NewMoleculeFromVecs(ats, pos)
	require.NoError(Te, err)
	return mol
}

func TestClashes(Te *testing.T) {
	mol := testSet(Te)
	c, err := New(mol, 1.5)
	require.NoError(Te, err)
	assert.True(Te, c.Clashes(r3.Vec{X: 0.7}, 1.0, 0.5, nil))
	assert.False(Te, c.Clashes(r3.Vec{Z: 10}, 1.0, 0.5, nil))
	//3.0 from N only: 1.55+1.5-0.5 = 2.55 < 3
	p := r3.Vec{X: -3}
	assert.False(Te, c.Clashes(p, 1.5, 0.5, nil))
	assert.True(Te, c.Clashes(p, 1.5, 0, func(*chem.Atom) bool { return false }))
	//skipping every atom that would clash.
	q := r3.Vec{X: 0.75, Y: 0.5}
	assert.True(Te, c.Clashes(q, 1, 0.5, nil))
	assert.False(Te, c.Clashes(q, 1, 0.5, func(a *chem.Atom) bool { return a.Name == "N" || a.Name == "CA" }))
}

func TestOverlap(Te *testing.T) {
	mol := testSet(Te)
	c, err := New(mol, 2)
	require.NoError(Te, err)
	i, o := c.Overlap(r3.Vec{X: 1.6}, 1.0, nil)
	assert.Equal(Te, 1, i)
	assert.InDelta(Te, 1.0+1.7-0.1, o, 1e-9)
	i, o = c.Overlap(r3.Vec{Y: 20}, 1.0, nil)
	assert.Equal(Te, -1, i)
	assert.Zero(Te, o)
}
