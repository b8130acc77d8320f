/*
 * pass.go, part of gocavity.
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

//Package pass finds buried cavities on a molecular surface by placing probe spheres
//(the PASS method). Probes are placed tangent to triplets of atoms, filtered by
//burial, grown in accretion layers over the kept probes, and finally filtered to
//keep only probes in dense patches.
package pass

import (
	"math"
	"sort"

	chem "github.com/rmera/gocavity"
	"github.com/rmera/gocavity/lattice"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

//Probe is a candidate or kept probe sphere.
type Probe struct {
	Pos    r3.Vec
	Radius float64
	Burial int
	Layer  int //0 for the first layer, n for the nth accretion round.
}

//Result is the outcome of a PASS run.
type Result struct {
	//Probes are the probes that passed the surface filter, i.e. the output of the method.
	Probes []Probe
	//Kept are all the probes kept before the surface filter.
	Kept []Probe
	//Layers holds the number of probes added in the first layer and in each accretion round.
	Layers []int
	//ProbeRadius is the first-layer probe radius actually used.
	ProbeRadius float64
}

//run holds the state of one PASS run.
type run struct {
	o      Options
	log    *zap.Logger
	atoms  chem.AtomSet
	pos    []r3.Vec
	radii  []float64
	maxVdw float64
	burial *lattice.Lattice //over the atoms, cell size BurialRadius

	probes []Probe
	dead   []bool
	plat   *lattice.Lattice //over the kept probes
	buf    []int
}

//Run executes the PASS method on atoms. It returns an error only for invalid options or an empty atom set.
func Run(atoms chem.AtomSet, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, chem.ErrDecorate(err, "pass.Run")
	}
	if atoms == nil || atoms.Len() == 0 {
		return nil, chem.NewError("no atoms to place probes on", "pass.Run", chem.ErrNoAtoms)
	}
	r := &run{o: opts, log: opts.logger(), atoms: atoms}
	r.pos = chem.Positions(atoms)
	r.radii = make([]float64, atoms.Len())
	for i := range r.radii {
		r.radii[i] = radius(atoms.Atom(i))
		r.maxVdw = math.Max(r.maxVdw, r.radii[i])
	}
	var err error
	r.burial, err = lattice.FromPoints(r.pos, opts.BurialRadius)
	if err != nil {
		return nil, chem.ErrDecorate(err, "pass.Run")
	}
	res := &Result{ProbeRadius: opts.ProbeRadius}
	n, err := r.firstLayer(opts.ProbeRadius)
	if err != nil {
		return nil, chem.ErrDecorate(err, "pass.Run")
	}
	if n == 0 && opts.RetryRadius > 0 && opts.RetryRadius != opts.ProbeRadius {
		r.log.Info("pass: no probes kept, retrying", zap.Float64("probeRadius", opts.ProbeRadius), zap.Float64("retryRadius", opts.RetryRadius))
		res.ProbeRadius = opts.RetryRadius
		if n, err = r.firstLayer(opts.RetryRadius); err != nil {
			return nil, chem.ErrDecorate(err, "pass.Run")
		}
	}
	res.Layers = append(res.Layers, n)
	r.log.Info("pass: first layer placed", zap.Int("atoms", atoms.Len()), zap.Int("probes", n))
	for round := 1; n > 0; round++ {
		if round > opts.MaxRounds {
			r.log.Warn("pass: accretion stopped before convergence", zap.Int("rounds", opts.MaxRounds))
			break
		}
		n = r.accrete(round)
		if n > 0 {
			res.Layers = append(res.Layers, n)
		}
		r.log.Debug("pass: accretion round", zap.Int("round", round), zap.Int("added", n))
	}
	res.Kept = r.alive()
	res.Probes = surface(res.Kept)
	r.log.Info("pass: done", zap.Int("kept", len(res.Kept)), zap.Int("output", len(res.Probes)), zap.Int("layers", len(res.Layers)))
	return res, nil
}

//Place runs PASS on atoms and appends every output probe to out, as an atom with
//the burial count as B-factor.
func Place(atoms chem.AtomSet, out *chem.Molecule, opts Options) (*Result, error) {
	res, err := Run(atoms, opts)
	if err != nil {
		return nil, chem.ErrDecorate(err, "pass.Place")
	}
	ats := make([]*chem.Atom, len(res.Probes))
	pos := make([]r3.Vec, len(res.Probes))
	for i, p := range res.Probes {
		ats[i] = &chem.Atom{
			Name:    "PB",
			ID:      out.Len() + i + 1,
			Symbol:  "X",
			Molname: "PAS",
			Molid:   i + 1,
			Vdw:     p.Radius,
			Bfactor: float64(p.Burial),
			Tag:     p.Layer,
		}
		pos[i] = p.Pos
	}
	if err := out.AppendMany(ats, pos); err != nil {
		return nil, chem.ErrDecorate(err, "pass.Place")
	}
	return res, nil
}

//radius returns the radius to use for the atom at.
func radius(at *chem.Atom) float64 {
	if at.Vdw > 0 {
		return at.Vdw
	}
	r, _ := chem.VdwRadius(at.Symbol)
	return r
}

//Burial returns the number of entries of lat strictly closer than radius to p.
func Burial(lat *lattice.Lattice, p r3.Vec, radius float64) int {
	return lat.Count(lattice.NoExclude, p, radius)
}

//neighborLists returns, for every atom i, the sorted indexes of the atoms j with
//d(i,j) < ri+2*probe+rj.
func (r *run) neighborLists(probe float64) ([][]int, error) {
	lat, err := lattice.FromPoints(r.pos, 2*r.maxVdw+2*probe)
	if err != nil {
		return nil, err
	}
	nl := make([][]int, len(r.pos))
	for i, p := range r.pos {
		r.buf = lat.Neighbors(i, p, r.buf[:0])
		for _, j := range r.buf {
			cut := r.radii[i] + 2*probe + r.radii[j]
			if r3.Norm2(r3.Sub(r.pos[j], p)) < cut*cut {
				nl[i] = append(nl[i], j)
			}
		}
		sort.Ints(nl[i])
	}
	return nl, nil
}

//intersect appends to dst the elements of the sorted slices a and b that are
//present in both and larger than above.
func intersect(a, b []int, above int, dst []int) []int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			if a[i] > above {
				dst = append(dst, a[i])
			}
			i++
			j++
		}
	}
	return dst
}

//obscured returns true if some atom in the list nl, other than skip1 and skip2, is closer
//than its radius plus probe to p.
func (r *run) obscured(p r3.Vec, probe float64, nl []int, skip1, skip2 int) bool {
	for _, n := range nl {
		if n == skip1 || n == skip2 {
			continue
		}
		cut := r.radii[n] + probe
		if r3.Norm2(r3.Sub(r.pos[n], p)) < cut*cut {
			return true
		}
	}
	return false
}

//resetProbes starts an empty kept-probe set.
func (r *run) resetProbes(probe float64) error {
	cell := math.Max(ContactRadius, math.Max(2*r.o.AccretionRadius, r.o.AccretionRadius+probe))
	var err error
	r.plat, err = lattice.New(cell)
	r.probes = r.probes[:0]
	r.dead = r.dead[:0]
	return err
}

//firstLayer places probes of radius probe tangent to every triplet of mutually
//neighboring atoms and returns the number of probes kept.
func (r *run) firstLayer(probe float64) (int, error) {
	if err := r.resetProbes(probe); err != nil {
		return 0, err
	}
	nl, err := r.neighborLists(probe)
	if err != nil {
		return 0, err
	}
	var ks []int
	for i := range r.pos {
		for _, j := range nl[i] {
			if j <= i {
				continue
			}
			ks = intersect(nl[i], nl[j], j, ks[:0])
			for _, k := range ks {
				sols := Tangent(r.pos[i], r.pos[j], r.pos[k], r.radii[i]+probe, r.radii[j]+probe, r.radii[k]+probe)
				for _, p := range sols {
					//an atom overlapping p is always a neighbor of i.
					if r.obscured(p, probe, nl[i], j, k) {
						continue
					}
					b := Burial(r.burial, p, r.o.BurialRadius)
					if b < r.o.BurialThreshold {
						continue
					}
					r.weed(Probe{Pos: p, Radius: probe, Burial: b})
				}
			}
		}
	}
	return len(r.alive()), nil
}

//weed adds c to the kept probes unless a kept probe closer than WeedDistance has a burial
//count at least as high. If c wins, it takes the place of the first such probe, and the
//rest of them are dropped.
func (r *run) weed(c Probe) {
	const w2 = WeedDistance * WeedDistance
	r.buf = r.plat.Within(lattice.NoExclude, c.Pos, WeedDistance, r.buf[:0])
	near := r.buf[:0]
	for _, id := range r.buf {
		//the lattice may hold old positions of probes that were replaced.
		if r.dead[id] || r3.Norm2(r3.Sub(r.probes[id].Pos, c.Pos)) >= w2 || containsInt(near, id) {
			continue
		}
		near = append(near, id)
	}
	if len(near) == 0 {
		r.add(c)
		return
	}
	for _, id := range near {
		if r.probes[id].Burial >= c.Burial {
			return
		}
	}
	sort.Ints(near)
	r.probes[near[0]] = c
	r.plat.Insert(near[0], c.Pos)
	for _, id := range near[1:] {
		r.dead[id] = true
	}
}

func (r *run) add(c Probe) {
	r.probes = append(r.probes, c)
	r.dead = append(r.dead, false)
	r.plat.Insert(len(r.probes)-1, c.Pos)
}

func containsInt(s []int, v int) bool {
	for _, i := range s {
		if i == v {
			return true
		}
	}
	return false
}

//aliveIDs returns the indexes of the probes that are kept.
func (r *run) aliveIDs() []int {
	ids := make([]int, 0, len(r.probes))
	for i := range r.probes {
		if !r.dead[i] {
			ids = append(ids, i)
		}
	}
	return ids
}

func (r *run) alive() []Probe {
	ids := r.aliveIDs()
	ret := make([]Probe, len(ids))
	for i, id := range ids {
		ret[i] = r.probes[id]
	}
	return ret
}

//clashTol keeps a candidate that touches its parent probes exactly from being
//rejected by rounding.
const clashTol = 1e-6

//probeNear returns true if a live probe is closer than cut to p.
func (r *run) probeNear(p r3.Vec, cut float64) bool {
	r.buf = r.plat.Neighbors(lattice.NoExclude, p, r.buf[:0])
	cut -= clashTol
	for _, id := range r.buf {
		if r.dead[id] {
			continue
		}
		if r3.Norm2(r3.Sub(r.probes[id].Pos, p)) < cut*cut {
			return true
		}
	}
	return false
}

//atomClash returns true if an atom overlaps a probe of radius rad at p.
func (r *run) atomClash(p r3.Vec, rad float64) bool {
	ids := r.burial.Within(lattice.NoExclude, p, r.maxVdw+rad, nil)
	for _, i := range ids {
		cut := r.radii[i] + rad
		if r3.Norm2(r3.Sub(r.pos[i], p)) < cut*cut {
			return true
		}
	}
	return false
}

//accrete runs one accretion round over the probes kept so far and returns the number of
//probes added.
func (r *run) accrete(round int) int {
	racc := r.o.AccretionRadius
	adj := 2 * racc
	ids := r.aliveIDs()
	//adjacency among the probes alive at the start of the round, as indexes into r.probes.
	nl := make(map[int][]int, len(ids))
	for _, a := range ids {
		pa := r.probes[a].Pos
		r.buf = r.plat.Within(a, pa, adj, r.buf[:0])
		var l []int
		for _, b := range r.buf {
			if r.dead[b] || containsInt(l, b) || r3.Norm2(r3.Sub(r.probes[b].Pos, pa)) >= adj*adj {
				continue
			}
			l = append(l, b)
		}
		sort.Ints(l)
		nl[a] = l
	}
	added := 0
	var cs []int
	for _, a := range ids {
		for _, b := range nl[a] {
			if b <= a {
				continue
			}
			cs = intersect(nl[a], nl[b], b, cs[:0])
			for _, c := range cs {
				sols := Tangent(r.probes[a].Pos, r.probes[b].Pos, r.probes[c].Pos, 2*racc, 2*racc, 2*racc)
				for _, p := range sols {
					//accretion probes are all of radius racc, so the clash distance is 2*racc
					//against every kept probe, parents included.
					if r.probeNear(p, 2*racc) {
						continue
					}
					if r.o.AtomClash && r.atomClash(p, racc) {
						continue
					}
					bc := Burial(r.burial, p, r.o.BurialRadius)
					if bc < r.o.BurialThreshold {
						continue
					}
					r.add(Probe{Pos: p, Radius: racc, Burial: bc, Layer: round})
					added++
				}
			}
		}
	}
	return added
}

//surface returns the probes with at least MinContacts neighbors (within ContactRadius)
//that themselves have at least MinContacts neighbors.
func surface(kept []Probe) []Probe {
	if len(kept) == 0 {
		return nil
	}
	pts := make([]r3.Vec, len(kept))
	for i, p := range kept {
		pts[i] = p.Pos
	}
	lat, err := lattice.FromPoints(pts, ContactRadius)
	if err != nil {
		panic(err) //ContactRadius is a positive constant.
	}
	neigh := make([][]int, len(kept))
	first := make([]int, len(kept))
	for i, p := range pts {
		neigh[i] = lat.Within(i, p, ContactRadius, nil)
		first[i] = len(neigh[i])
	}
	var ret []Probe
	for i := range kept {
		second := 0
		for _, j := range neigh[i] {
			if first[j] >= MinContacts {
				second++
			}
		}
		if second >= MinContacts {
			ret = append(ret, kept[i])
		}
	}
	return ret
}
