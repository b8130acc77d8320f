/*
 * superstar.go, part of gocavity.
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

package statpot

import (
	"fmt"
	"math"

	chem "github.com/rmera/gocavity"
	"github.com/rmera/gocavity/clash"
	"github.com/rmera/gocavity/grid"
	v3 "github.com/rmera/gocavity/v3"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

//Window is the half-width, in grid points, of the box that receives the contribution
//of one probe atom.
const Window = 2

//SuperstarOptions are the parameters of a Superstar field.
type SuperstarOptions struct {
	//FieldType selects the groups that contribute to the field.
	FieldType string
	Spacing   float64
	Border    float64
	//ExcludeCarbon drops the carbon atoms of the templates.
	ExcludeCarbon bool
	//BondCutoff is the distance to a central atom under which a template atom
	//is considered part of the central group.
	BondCutoff float64
	//Fits with an RMSD above WarnRMSD are logged, above FailRMSD they are discarded.
	WarnRMSD float64
	FailRMSD float64
	//Width of the Gaussian that spreads each contribution over the grid.
	Width float64
	//ClashTolerance is subtracted from the sum of radii in the clash test.
	ClashTolerance float64
	Log            *zap.Logger
}

//DefaultSuperstarOptions returns the default options for a field of type fieldType.
func DefaultSuperstarOptions(fieldType string) SuperstarOptions {
	return SuperstarOptions{
		FieldType:      fieldType,
		Spacing:        0.5,
		Border:         5.0,
		BondCutoff:     1.9,
		WarnRMSD:       0.2,
		FailRMSD:       0.5,
		Width:          1.0,
		ClashTolerance: 0.5,
	}
}

//Validate returns an error if some option has an invalid value.
func (o SuperstarOptions) Validate() error {
	var msg string
	switch {
	case o.FieldType == "":
		msg = "empty field type"
	case !(o.Spacing > 0):
		msg = fmt.Sprintf("spacing can't be %g", o.Spacing)
	case o.Border < 0:
		msg = fmt.Sprintf("border can't be %g", o.Border)
	case !(o.Width > 0):
		msg = fmt.Sprintf("width can't be %g", o.Width)
	case o.FailRMSD < o.WarnRMSD:
		msg = fmt.Sprintf("failure RMSD (%g) below warning RMSD (%g)", o.FailRMSD, o.WarnRMSD)
	default:
		return nil
	}
	return chem.NewError(msg, "statpot.SuperstarOptions.Validate", chem.ErrBadOption)
}

func logger(l *zap.Logger) *zap.Logger {
	if l != nil {
		return l
	}
	return zap.L()
}

//template is a probe template prepared for fitting.
type template struct {
	mol     *chem.Molecule
	central *v3.Matrix
	wanted  []int
	radii   []float64
}

//superstar holds the state of one Superstar run.
type superstar struct {
	o         SuperstarOptions
	log       *zap.Logger
	loader    TemplateLoader
	mols      map[string]*chem.Molecule //loaded templates, by name
	templates map[string]*template      //by name and central atoms
	field     *grid.Field
	buf       []float32 //contributions of the current group
	touched   grid.Box
	fits      int
	probes    int
}

//Superstar builds the Superstar field of type opts.FieldType around atoms. Each group
//of that type is fitted onto its occurrences in atoms, and the wanted atoms of its
//template that don't clash with exclusion (atoms, if nil) add to the field.
//The field is written to dst, which is reallocated, or to a new field if dst is nil.
//Configuration errors are returned before dst is modified.
func Superstar(atoms, exclusion chem.AtomSet, groups []Group, loader TemplateLoader, dst *grid.Field, opts SuperstarOptions) (*grid.Field, error) {
	s := &superstar{o: opts, log: logger(opts.Log), loader: loader, mols: make(map[string]*chem.Molecule), templates: make(map[string]*template)}
	if err := opts.Validate(); err != nil {
		return nil, chem.ErrDecorate(err, "statpot.Superstar")
	}
	if atoms == nil || atoms.Len() == 0 {
		return nil, chem.NewError("no atoms", "statpot.Superstar", chem.ErrNoAtoms)
	}
	if exclusion == nil {
		exclusion = atoms
	}
	var sel []Group
	for _, g := range groups {
		if g.FieldType == opts.FieldType {
			sel = append(sel, g)
		}
	}
	if len(sel) == 0 {
		s.log.Error("superstar: no groups for field type", zap.String("type", opts.FieldType))
		return nil, chem.NewError(fmt.Sprintf("no groups for field type %q", opts.FieldType), "statpot.Superstar", chem.ErrMissingType)
	}
	maxr := 0.0
	for _, g := range sel {
		t, err := s.template(g)
		if err != nil {
			s.log.Error("superstar: can't use group", zap.String("group", g.Name), zap.Error(err))
			return nil, chem.ErrDecorate(err, "statpot.Superstar")
		}
		for _, r := range t.radii {
			maxr = math.Max(maxr, r)
		}
	}
	checker, err := clash.New(exclusion, maxr)
	if err != nil {
		return nil, chem.ErrDecorate(err, "statpot.Superstar")
	}
	s.field, err = grid.ForAtoms(dst, "superstar."+opts.FieldType, atoms, opts.Border, opts.Spacing)
	if err != nil {
		return nil, chem.ErrDecorate(err, "statpot.Superstar")
	}
	s.log.Info("superstar: grid allocated", zap.String("type", opts.FieldType), zap.Ints("extents", s.field.N[:]), zap.Int("groups", len(sel)))
	s.field.Fill(1)
	s.buf = make([]float32, s.field.Len())
	residues := chem.Residues(atoms)
	for _, g := range sel {
		s.group(atoms, residues, g, checker)
	}
	s.finalize()
	s.field.SetLevels(KindOf(opts.FieldType).Ladder()...)
	s.log.Info("superstar: done", zap.String("type", opts.FieldType), zap.Int("fits", s.fits), zap.Int("probes", s.probes))
	return s.field, nil
}

func templateKey(g Group) string {
	return fmt.Sprintf("%s%v", g.Template, g.Central)
}

//template returns the prepared template for g, loading it the first time it is needed.
func (s *superstar) template(g Group) (*template, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if t, ok := s.templates[templateKey(g)]; ok {
		return t, nil
	}
	mol, ok := s.mols[g.Template]
	if !ok {
		if s.loader == nil {
			return nil, chem.NewError("no template loader", "statpot.template", chem.ErrMissingTemplate)
		}
		var err error
		if mol, err = s.loader.Template(g.Template); err != nil {
			return nil, err
		}
		s.mols[g.Template] = mol
	}
	if err := checkCentral(g, mol); err != nil {
		return nil, err
	}
	var err error
	t := &template{mol: mol, radii: make([]float64, mol.Len())}
	t.central = v3.Zeros(len(g.Central))
	if err = t.central.SomeVecsSafe(mol.Coords, g.Central); err != nil {
		return nil, chem.NewError(fmt.Sprintf("template %q: %v", g.Template, err), "statpot.template", chem.ErrShape)
	}
	cpos := make([]r3.Vec, len(g.Central))
	isCentral := make([]bool, mol.Len())
	for i, c := range g.Central {
		cpos[i] = t.central.Vec(i)
		isCentral[c] = true
	}
	bc2 := s.o.BondCutoff * s.o.BondCutoff
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		t.radii[i] = at.Vdw
		if t.radii[i] <= 0 {
			t.radii[i], _ = chem.VdwRadius(at.Symbol)
		}
		if isCentral[i] || (s.o.ExcludeCarbon && at.Symbol == "C") {
			continue
		}
		bonded := false
		for _, c := range cpos {
			if r3.Norm2(r3.Sub(mol.Pos(i), c)) < bc2 {
				bonded = true
				break
			}
		}
		if !bonded {
			t.wanted = append(t.wanted, i)
		}
	}
	if len(t.wanted) == 0 {
		s.log.Warn("superstar: template has no probe atoms", zap.String("template", g.Template))
	}
	s.templates[templateKey(g)] = t
	return t, nil
}

func checkCentral(g Group, mol *chem.Molecule) error {
	for _, c := range g.Central {
		if c < 0 || c >= mol.Len() {
			return chem.NewError(fmt.Sprintf("group %q: central atom %d out of template %q (%d atoms)", g.Name, c, g.Template, mol.Len()), "statpot.checkCentral", chem.ErrBadOption)
		}
	}
	return nil
}

//group adds the contributions of every occurrence of g to the field.
func (s *superstar) group(atoms chem.AtomSet, residues [][]int, g Group, checker *clash.Checker) {
	t := s.templates[templateKey(g)]
	s.touched = grid.Box{}
	found := 0
	for _, res := range residues {
		if !chem.MatchResidue(g.Residue, atoms.Atom(res[0]).Molname) {
			continue
		}
		idx, ok := chem.FindNames(atoms, res, g.Labels)
		if !ok {
			continue
		}
		found++
		pos := make([]r3.Vec, len(idx))
		fit := make(map[*chem.Atom]bool, len(idx))
		for i, j := range idx {
			pos[i] = atoms.Pos(j)
			fit[atoms.Atom(j)] = true
		}
		local, err := v3.FromVecs(pos)
		if err != nil {
			continue
		}
		T, rmsd, err := chem.SuperRMSD(t.central, local)
		if err != nil {
			s.log.Warn("superstar: fit failed", zap.String("group", g.Name), zap.Int("residue", atoms.Atom(res[0]).Molid), zap.Error(err))
			continue
		}
		if rmsd > s.o.FailRMSD {
			s.log.Info("superstar: fit rejected", zap.String("group", g.Name), zap.Int("residue", atoms.Atom(res[0]).Molid), zap.Float64("rmsd", rmsd))
			continue
		}
		if rmsd > s.o.WarnRMSD {
			s.log.Warn("superstar: poor fit", zap.String("group", g.Name), zap.Int("residue", atoms.Atom(res[0]).Molid), zap.Float64("rmsd", rmsd))
		}
		s.fits++
		skip := func(a *chem.Atom) bool { return fit[a] }
		for _, w := range t.wanted {
			p := T.Apply(t.mol.Pos(w))
			if checker.Clashes(p, t.radii[w], s.o.ClashTolerance, skip) {
				continue
			}
			s.deposit(p, t.mol.Atom(w).Bfactor)
		}
	}
	s.log.Debug("superstar: group processed", zap.String("group", g.Name), zap.Int("occurrences", found))
	s.merge()
}

//deposit spreads a contribution of weight scale at p over the grid points around it.
//The weights are normalized so their squares add up to 1.
func (s *superstar) deposit(p r3.Vec, scale float64) {
	f := s.field
	box := f.Window(p, Window)
	if box.Empty() {
		return
	}
	w2 := s.o.Width * s.o.Width
	var norm float64
	box.Each(func(i, j, k int) {
		w := math.Exp(-r3.Norm2(r3.Sub(f.IndexToWorld(i, j, k), p)) / w2)
		norm += w * w
	})
	if norm == 0 {
		return
	}
	norm = math.Sqrt(norm)
	box.Each(func(i, j, k int) {
		w := math.Exp(-r3.Norm2(r3.Sub(f.IndexToWorld(i, j, k), p)) / w2)
		s.buf[f.Index(i, j, k)] += float32(scale * w / norm)
	})
	s.probes++
	s.touched = union(s.touched, box)
}

func union(a, b grid.Box) grid.Box {
	if a.Empty() {
		return b
	}
	for i := 0; i < 3; i++ {
		if b.Min[i] < a.Min[i] {
			a.Min[i] = b.Min[i]
		}
		if b.Max[i] > a.Max[i] {
			a.Max[i] = b.Max[i]
		}
	}
	return a
}

//merge multiplies the contributions of the current group into the field, and clears them.
func (s *superstar) merge() {
	f := s.field
	s.touched.Each(func(i, j, k int) {
		idx := f.Index(i, j, k)
		if c := s.buf[idx]; c != 0 {
			f.Data[idx] *= 1 + c
			s.buf[idx] = 0
		}
	})
	s.touched = grid.Box{}
}

//finalize turns the product field into a log field. Points never reached are set to 0,
//points where the product vanished get the smallest log in the field.
func (s *superstar) finalize() {
	min := math.Inf(1)
	vanished := []int{}
	for i, v := range s.field.Data {
		switch {
		case v == 1:
			s.field.Data[i] = 0
		case v <= 0:
			vanished = append(vanished, i)
		default:
			l := math.Log(float64(v))
			s.field.Data[i] = float32(l)
			min = math.Min(min, l)
		}
	}
	if math.IsInf(min, 1) {
		min = 0
	}
	for _, i := range vanished {
		s.field.Data[i] = float32(min)
	}
}
