/*
 * pocket_test.go, part of gocavity.
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

package pocket

import (
	"errors"
	"math"
	"testing"

	chem "github.com/rmera/gocavity"
	"github.com/rmera/gocavity/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func atomsAt(Te *testing.T, vdw float64, pts ...r3.Vec) *chem.Molecule {
	ats := make([]*chem.Atom, len(pts))
	for i := range ats {
		ats[i] = &chem.Atom{Name: "CA", Symbol: "C", Molname: "ALA", Molid: i + 1, Vdw: vdw}
	}
	mol, err := chem.NewMoleculeFromVecs(ats, pts)
	require.NoError(Te, err)
	return mol
}

func TestParseAlgorithm(Te *testing.T) {
	tests := []struct {
		in   string
		want Algorithm
		err  bool
	}{
		{"pocketfinder", PocketFinder, false},
		{"LigSite", Ligsite, false},
		{" ligsite ", Ligsite, false},
		{"", PocketFinder, false},
		{"voronoi", 0, true},
	}
	for _, t := range tests {
		a, err := ParseAlgorithm(t.in)
		if t.err {
			assert.True(Te, errors.Is(err, chem.ErrBadOption), t.in)
			continue
		}
		require.NoError(Te, err, t.in)
		assert.Equal(Te, t.want, a, t.in)
	}
	var a Algorithm
	require.NoError(Te, a.UnmarshalText([]byte("ligsite")))
	assert.Equal(Te, "ligsite", a.String())
}

func TestLJ(Te *testing.T) {
	l := LJ{R: 2, Eps: 0.5}
	//minimum at d=R with depth -eps
	assert.InDelta(Te, -0.5, lj6(l, 4), 1e-12)
	assert.Greater(Te, lj6(l, 1), 0.0)
	assert.InDelta(Te, 0, lj6(l, 1e6), 1e-9)
}

var params = MapParams{"C.3": {R: 1.9, Eps: 0.1}, "O.2": {R: 1.7, Eps: 0.2}}

func TestPocketFinderIsotropic(Te *testing.T) {
	mol := atomsAt(Te, 1.5, r3.Vec{})
	opts := DefaultOptions(PocketFinder)
	f, err := Build(mol, nil, params, nil, opts)
	require.NoError(Te, err)
	require.Equal(Te, [3]int{11, 11, 11}, f.N)
	c, _, _ := f.WorldToIndex(r3.Vec{})
	require.Equal(Te, 5, c)
	for d := 1; d <= 5; d++ {
		x := f.At(c+d, c, c)
		assert.InDelta(Te, x, f.At(c, c+d, c), 1e-5, "d=%d", d)
		assert.InDelta(Te, x, f.At(c, c, c+d), 1e-5, "d=%d", d)
		assert.InDelta(Te, x, f.At(c-d, c, c), 1e-5, "d=%d", d)
		assert.InDelta(Te, f.At(c+d, c+d, c), f.At(c, c+d, c+d), 1e-5, "d=%d", d)
	}
	_, max := f.Range()
	assert.LessOrEqual(Te, max, float32(opts.Cutoff))
	mean, rms := grid.Stats(f)
	assert.InDelta(Te, mean-opts.Sigma*rms, f.Levels[0].Value, 1e-9)
	assert.True(Te, f.Levels[0].Shown)
}

func TestPocketFinderWorkers(Te *testing.T) {
	mol := atomsAt(Te, 1.7, r3.Vec{}, r3.Vec{X: 3.1, Y: 0.4}, r3.Vec{X: 1, Y: 2.5, Z: -1})
	opts := DefaultOptions(PocketFinder)
	opts.Workers = 1
	f, err := Build(mol, nil, params, nil, opts)
	require.NoError(Te, err)
	opts.Workers = 3
	g, err := Build(mol, nil, params, nil, opts)
	require.NoError(Te, err)
	assert.Equal(Te, f.Data, g.Data)
}

type typeMap map[string]string

func (t typeMap) Resolve(residue, label, def string) string {
	if v, ok := t[residue+"."+label]; ok {
		return v
	}
	return def
}

func TestPocketFinderMissingParams(Te *testing.T) {
	mol := atomsAt(Te, 1.5, r3.Vec{})
	dst := &grid.Field{Data: []float32{3}}
	_, err := Build(mol, typeMap{"ALA.CA": "S.3"}, params, dst, DefaultOptions(PocketFinder))
	assert.True(Te, errors.Is(err, chem.ErrMissingTable))
	assert.Equal(Te, []float32{3}, dst.Data)
	opts := DefaultOptions(PocketFinder)
	opts.ProbeType = "Xx"
	_, err = Build(mol, nil, params, dst, opts)
	assert.True(Te, errors.Is(err, chem.ErrMissingTable))
	//types that resolve get their own parameters.
	_, err = Build(mol, typeMap{"ALA.CA": "O.2"}, params, dst, DefaultOptions(PocketFinder))
	require.NoError(Te, err)
	assert.Equal(Te, [3]int{11, 11, 11}, dst.N)
}

func TestLigsiteOccupancy(Te *testing.T) {
	mol := atomsAt(Te, 1.5, r3.Vec{X: 0.2, Y: -0.1, Z: 0.3})
	opts := DefaultOptions(Ligsite)
	opts.Spacing = 0.5
	f, err := Build(mol, nil, nil, nil, opts)
	require.NoError(Te, err)
	r := 1.5 + opts.ProbeRadius
	inside := 0
	f.Full().Each(func(i, j, k int) {
		if r3.Norm(r3.Sub(f.IndexToWorld(i, j, k), mol.Pos(0))) < r {
			inside++
			assert.Equal(Te, float32(0), f.At(i, j, k))
		}
	})
	assert.Greater(Te, inside, 0)
	assert.Equal(Te, opts.Contour, f.Levels[0].Value)
}

//hollowBox returns atoms on the faces of the cube [-n,n]^3, 1 A apart.
func hollowBox(Te *testing.T, n int) *chem.Molecule {
	var pts []r3.Vec
	for i := -n; i <= n; i++ {
		for j := -n; j <= n; j++ {
			for k := -n; k <= n; k++ {
				if abs(i) == n || abs(j) == n || abs(k) == n {
					pts = append(pts, r3.Vec{X: float64(i), Y: float64(j), Z: float64(k)})
				}
			}
		}
	}
	return atomsAt(Te, 0.1, pts...)
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

func TestLigsiteEnclosed(Te *testing.T) {
	mol := hollowBox(Te, 4)
	opts := DefaultOptions(Ligsite)
	opts.Spacing = 0.5
	opts.Border = 1
	opts.ProbeRadius = 0.4
	opts.Workers = 2
	f, err := Build(mol, nil, nil, nil, opts)
	require.NoError(Te, err)
	i, j, k := f.WorldToIndex(r3.Vec{})
	assert.Equal(Te, float32(len(Directions)), f.At(i, j, k))
	assert.Equal(Te, float32(0), f.At(0, 0, 0))
	//on the walls
	i, j, k = f.WorldToIndex(r3.Vec{X: 4})
	assert.Equal(Te, float32(0), f.At(i, j, k))
	_, max := f.Range()
	assert.Equal(Te, float32(7), max)
	assert.False(Te, math.IsNaN(float64(max)))
}

func TestBuildErrors(Te *testing.T) {
	empty, err := chem.NewMolecule([]*chem.Atom{}, nil)
	require.NoError(Te, err)
	_, err = Build(empty, nil, params, nil, DefaultOptions(Ligsite))
	assert.True(Te, errors.Is(err, chem.ErrNoAtoms))
	opts := DefaultOptions(Ligsite)
	opts.Spacing = -1
	_, err = Build(atomsAt(Te, 1, r3.Vec{}), nil, nil, nil, opts)
	assert.True(Te, errors.Is(err, chem.ErrBadOption))
	opts = DefaultOptions(PocketFinder)
	opts.Algorithm = Algorithm(7)
	assert.Error(Te, opts.Validate())
}
