/*
 * asp.go, part of gocavity.
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
	"github.com/rmera/gocavity/grid"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

//TypeResolver gives the type of the atom with the given label in the given residue,
//or def if it has none.
type TypeResolver interface {
	Resolve(residue, label, def string) string
}

//ASPOptions are the parameters of an ASP field.
type ASPOptions struct {
	ProbeType string
	Spacing   float64
	Border    float64
	//Cutoff is the distance beyond which an atom doesn't contribute.
	Cutoff float64
	//DefaultType is the type of the atoms the resolver doesn't know.
	DefaultType string
	Workers     int
	Log         *zap.Logger
}

//DefaultASPOptions returns the default options for an ASP field with a probe of type probeType.
func DefaultASPOptions(probeType string) ASPOptions {
	return ASPOptions{
		ProbeType:   probeType,
		Spacing:     0.5,
		Border:      5.0,
		Cutoff:      6.0,
		DefaultType: "C.3",
	}
}

//Validate returns an error if some option has an invalid value.
func (o ASPOptions) Validate() error {
	var msg string
	switch {
	case o.ProbeType == "":
		msg = "empty probe type"
	case !(o.Spacing > 0):
		msg = fmt.Sprintf("spacing can't be %g", o.Spacing)
	case o.Border < 0:
		msg = fmt.Sprintf("border can't be %g", o.Border)
	case !(o.Cutoff > 0):
		msg = fmt.Sprintf("cutoff can't be %g", o.Cutoff)
	default:
		return nil
	}
	return chem.NewError(msg, "statpot.ASPOptions.Validate", chem.ErrBadOption)
}

//ASP builds the ASP field for opts.ProbeType around atoms: every atom of exclusion
//(atoms, if nil) adds the value of its PMF table to the grid points within opts.Cutoff.
//The field is then negated, so favorable regions are maxima. Tables are loaded once per
//type. Configuration errors are returned before dst is modified.
func ASP(atoms, exclusion chem.AtomSet, types TypeResolver, tables TableLoader, dst *grid.Field, opts ASPOptions) (*grid.Field, error) {
	log := logger(opts.Log)
	if err := opts.Validate(); err != nil {
		return nil, chem.ErrDecorate(err, "statpot.ASP")
	}
	if atoms == nil || atoms.Len() == 0 {
		return nil, chem.NewError("no atoms", "statpot.ASP", chem.ErrNoAtoms)
	}
	if exclusion == nil {
		exclusion = atoms
	}
	//the table of every atom, loaded before touching the field.
	cache := make(map[string]*PMF)
	pmfs := make([]*PMF, exclusion.Len())
	for i := range pmfs {
		at := exclusion.Atom(i)
		t := opts.DefaultType
		if types != nil {
			t = types.Resolve(at.Molname, at.Name, opts.DefaultType)
		}
		if t == "" {
			log.Error("asp: atom without type", zap.String("atom", at.ResKey()))
			return nil, chem.NewError(fmt.Sprintf("no type for atom %s", at.ResKey()), "statpot.ASP", chem.ErrMissingType)
		}
		p, ok := cache[t]
		if !ok {
			var err error
			if tables == nil {
				err = chem.NewError("no table loader", "statpot.ASP", chem.ErrMissingTable)
			} else {
				p, err = tables.Table(t, opts.ProbeType)
			}
			if err != nil {
				log.Error("asp: missing table", zap.String("type", t), zap.String("probe", opts.ProbeType), zap.Error(err))
				return nil, chem.ErrDecorate(err, "statpot.ASP")
			}
			cache[t] = p
		}
		pmfs[i] = p
	}
	f, err := grid.ForAtoms(dst, "asp."+opts.ProbeType, atoms, opts.Border, opts.Spacing)
	if err != nil {
		return nil, chem.ErrDecorate(err, "statpot.ASP")
	}
	log.Info("asp: grid allocated", zap.String("probe", opts.ProbeType), zap.Ints("extents", f.N[:]), zap.Int("atoms", exclusion.Len()), zap.Int("tables", len(cache)))
	pos := chem.Positions(exclusion)
	c2 := opts.Cutoff * opts.Cutoff
	err = grid.Slabs(f.N[2], opts.Workers, func(k0, k1 int) error {
		for i, p := range pos {
			b := f.SphereRange(p, opts.Cutoff)
			if b.Min[2] < k0 {
				b.Min[2] = k0
			}
			if b.Max[2] > k1 {
				b.Max[2] = k1
			}
			b.Each(func(i0, j0, k int) {
				d2 := r3.Norm2(r3.Sub(f.IndexToWorld(i0, j0, k), p))
				if d2 >= c2 {
					return
				}
				if v, ok := pmfs[i].At(math.Sqrt(d2)); ok {
					f.Add(i0, j0, k, float32(v))
				}
			})
		}
		return nil
	})
	if err != nil {
		return nil, chem.ErrDecorate(err, "statpot.ASP")
	}
	f.Negate()
	_, max := f.Range()
	f.SetLevels(aspLadder(float64(max))...)
	log.Info("asp: done", zap.String("probe", opts.ProbeType), zap.Float32("max", max))
	return f, nil
}
