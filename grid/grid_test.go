/*
 * grid_test.go, part of gocavity.
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
	"errors"
	"math"
	"math/rand"
	"testing"

	chem "github.com/rmera/gocavity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func molecule(Te *testing.T, pts ...r3.Vec) *chem.Molecule {
	ats := make([]*chem.Atom, len(pts))
	for i := range ats {
		ats[i] = &chem.Atom{Name: "C", Symbol: "C", Vdw: 1.7}
	}
	mol, err := chem.NewMoleculeFromVecs(ats, pts)
	require.NoError(Te, err)
	return mol
}

func TestBounds(Te *testing.T) {
	mol := molecule(Te, r3.Vec{X: 1, Y: -2, Z: 3}, r3.Vec{X: -1, Y: 4, Z: 0})
	min, max, err := Bounds(mol, 2)
	require.NoError(Te, err)
	assert.Equal(Te, r3.Vec{X: -3, Y: -4, Z: -2}, min)
	assert.Equal(Te, r3.Vec{X: 3, Y: 6, Z: 5}, max)
	empty, err := chem.NewMolecule([]*chem.Atom{}, nil)
	require.NoError(Te, err)
	_, _, err = Bounds(empty, 1)
	assert.True(Te, errors.Is(err, chem.ErrNoAtoms))
}

func TestExtents(Te *testing.T) {
	tests := []struct {
		span, spacing float64
		want          int
	}{
		{10, 1, 11},
		{2.5, 1, 4}, //round to nearest, not floor
		{2.4, 1, 3},
		{0, 0.5, 1},
		{7.3, 0.375, 20},
	}
	for _, t := range tests {
		s := r3.Vec{X: t.spacing, Y: t.spacing, Z: t.spacing}
		max := r3.Vec{X: t.span, Y: t.span, Z: t.span}
		n := Extents(r3.Vec{}, max, s)
		assert.Equal(Te, [3]int{t.want, t.want, t.want}, n, "span %g spacing %g", t.span, t.spacing)
		assert.Equal(Te, n, Extents(r3.Vec{}, max, s), "deterministic")
		assert.GreaterOrEqual(Te, float64(n[0])*t.spacing, t.span, "coverage")
	}
}

func TestAllocateErrors(Te *testing.T) {
	_, err := New("x", r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{X: 0, Y: 1, Z: 1})
	assert.True(Te, errors.Is(err, chem.ErrBadOption))
	_, err = New("x", r3.Vec{X: 2}, r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{X: 1, Y: 1, Z: 1})
	assert.True(Te, errors.Is(err, chem.ErrShape))
	f, err := New("x", r3.Vec{}, r3.Vec{X: 1, Y: 2, Z: 3}, r3.Vec{X: 0.5, Y: 0.5, Z: 0.5})
	require.NoError(Te, err)
	assert.Equal(Te, [3]int{3, 5, 7}, f.N)
	assert.Len(Te, f.Data, f.Len())
}

func TestRoundTrip(Te *testing.T) {
	f, err := New("rt", r3.Vec{X: -3.3, Y: 1.1, Z: 0.7}, r3.Vec{X: 4, Y: 5, Z: 6}, r3.Vec{X: 0.4, Y: 0.55, Z: 0.3})
	require.NoError(Te, err)
	f.Full().Each(func(i, j, k int) {
		a, b, c := f.WorldToIndex(f.IndexToWorld(i, j, k))
		if a != i || b != j || c != k {
			Te.Fatalf("round trip failed for (%d,%d,%d): got (%d,%d,%d)", i, j, k, a, b, c)
		}
	})
	//x fastest
	assert.Equal(Te, 1, f.Index(1, 0, 0))
	assert.Equal(Te, f.N[0], f.Index(0, 1, 0))
	assert.Equal(Te, f.N[0]*f.N[1], f.Index(0, 0, 1))
}

func TestSphereRangeCovers(Te *testing.T) {
	f, err := New("s", r3.Vec{X: -5, Y: -5, Z: -5}, r3.Vec{X: 5, Y: 5, Z: 5}, r3.Vec{X: 0.7, Y: 0.7, Z: 0.7})
	require.NoError(Te, err)
	rnd := rand.New(rand.NewSource(4))
	for n := 0; n < 30; n++ {
		c := r3.Vec{X: rnd.Float64()*12 - 6, Y: rnd.Float64()*12 - 6, Z: rnd.Float64()*12 - 6}
		radius := rnd.Float64() * 3
		b := f.SphereRange(c, radius)
		f.Full().Each(func(i, j, k int) {
			if r3.Norm(r3.Sub(f.IndexToWorld(i, j, k), c)) > radius {
				return
			}
			inside := i >= b.Min[0] && i < b.Max[0] && j >= b.Min[1] && j < b.Max[1] && k >= b.Min[2] && k < b.Max[2]
			if !inside {
				Te.Fatalf("point (%d,%d,%d) within %g of %v not in %v", i, j, k, radius, c, b)
			}
		})
	}
	far := f.SphereRange(r3.Vec{X: 100}, 1)
	assert.True(Te, far.Empty())
	assert.Equal(Te, 0, far.Len())
}

func TestSmoothUniform(Te *testing.T) {
	for _, it := range []int{1, 2, 3, 10} {
		f, err := New("u", r3.Vec{}, r3.Vec{X: 3, Y: 4, Z: 2}, r3.Vec{X: 1, Y: 1, Z: 1})
		require.NoError(Te, err)
		f.Fill(0.1)
		require.NoError(Te, Smooth(f, it, 3))
		for _, v := range f.Data {
			assert.Equal(Te, float32(0.1), v)
		}
	}
}

func TestSmoothSpike(Te *testing.T) {
	f, err := New("spike", r3.Vec{}, r3.Vec{X: 4, Y: 4, Z: 4}, r3.Vec{X: 1, Y: 1, Z: 1})
	require.NoError(Te, err)
	f.Set(2, 2, 2, 6)
	require.NoError(Te, Smooth(f, 1, 1))
	assert.InDelta(Te, 3.0, f.At(2, 2, 2), 1e-6)
	assert.InDelta(Te, 0.5, f.At(1, 2, 2), 1e-6) //(0+6/6)/2
	assert.InDelta(Te, 0.0, f.At(0, 0, 0), 1e-6)
	//the order of the cells must not matter: serial and parallel runs agree.
	g, _ := New("a", r3.Vec{}, r3.Vec{X: 6, Y: 5, Z: 9}, r3.Vec{X: 1, Y: 1, Z: 1})
	h, _ := New("b", r3.Vec{}, r3.Vec{X: 6, Y: 5, Z: 9}, r3.Vec{X: 1, Y: 1, Z: 1})
	rnd := rand.New(rand.NewSource(9))
	for i := range g.Data {
		g.Data[i] = rnd.Float32()
	}
	copy(h.Data, g.Data)
	require.NoError(Te, Smooth(g, 3, 1))
	require.NoError(Te, Smooth(h, 3, 4))
	assert.Equal(Te, g.Data, h.Data)
}

func TestSmoothErrors(Te *testing.T) {
	f, err := New("s", r3.Vec{}, r3.Vec{X: 3, Y: 3, Z: 3}, r3.Vec{X: 1, Y: 1, Z: 1})
	require.NoError(Te, err)
	f.Fill(1)
	assert.NoError(Te, Smooth(f, 0, 2))
	assert.NoError(Te, Smooth(&Field{}, 3, 2))
	f.Data = f.Data[:len(f.Data)-1]
	for _, w := range []int{1, 4} {
		err = Smooth(f, 2, w)
		assert.True(Te, errors.Is(err, chem.ErrShape))
	}
	for _, v := range f.Data {
		assert.Equal(Te, float32(1), v)
	}
}

func TestStats(Te *testing.T) {
	f, err := New("st", r3.Vec{}, r3.Vec{X: 3}, r3.Vec{X: 1, Y: 1, Z: 1})
	require.NoError(Te, err)
	copy(f.Data, []float32{1, 2, 3, 4})
	mean, rms := Stats(f)
	assert.InDelta(Te, 2.5, mean, 1e-12)
	assert.InDelta(Te, math.Sqrt(1.25), rms, 1e-12)
	min, max := f.Range()
	assert.Equal(Te, float32(1), min)
	assert.Equal(Te, float32(4), max)
	f.Clip(2.5)
	assert.Equal(Te, []float32{1, 2, 2.5, 2.5}, f.Data)
	f.Negate()
	assert.Equal(Te, float32(-1), f.Data[0])
}

func TestForAtomsReusesField(Te *testing.T) {
	mol := molecule(Te, r3.Vec{}, r3.Vec{X: 2})
	old := &Field{Name: "keep"}
	f, err := ForAtoms(old, "ignored", mol, 1, 0.5)
	require.NoError(Te, err)
	assert.Same(Te, old, f)
	assert.Equal(Te, "keep", f.Name)
	assert.Equal(Te, [3]int{9, 5, 5}, f.N)
	f.SetLevels(Contour{Value: 1, Shown: true})
	assert.True(Te, f.Levels[0].Shown)
	assert.False(Te, f.Levels[1].Shown)
}

func TestSlabsError(Te *testing.T) {
	boom := errors.New("boom")
	seen := make([]bool, 10)
	err := Slabs(10, 3, func(k0, k1 int) error {
		for k := k0; k < k1; k++ {
			seen[k] = true
		}
		if k0 == 0 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(Te, err, boom)
	for k, s := range seen {
		assert.True(Te, s, "slab containing %d not run", k)
	}
}
