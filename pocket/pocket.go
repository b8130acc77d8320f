/*
 * pocket.go, part of gocavity.
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

//Package pocket builds fields that highlight pockets on molecular surfaces, either from
//a smoothed Lennard-Jones probe potential (pocketfinder) or from how enclosed each
//grid point is by the molecule (ligsite).
package pocket

import (
	"fmt"
	"strings"

	chem "github.com/rmera/gocavity"
	"github.com/rmera/gocavity/grid"
	"go.uber.org/zap"
)

//Algorithm selects the method used to build a pocket field.
type Algorithm int

const (
	PocketFinder Algorithm = iota
	Ligsite
)

func (a Algorithm) String() string {
	switch a {
	case PocketFinder:
		return "pocketfinder"
	case Ligsite:
		return "ligsite"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

//ParseAlgorithm returns the algorithm called name (case-insensitive).
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pocketfinder", "":
		return PocketFinder, nil
	case "ligsite":
		return Ligsite, nil
	}
	return 0, chem.NewError(fmt.Sprintf("unknown pocket algorithm %q", name), "pocket.ParseAlgorithm", chem.ErrBadOption)
}

//UnmarshalText allows using an Algorithm directly in configuration structs.
func (a *Algorithm) UnmarshalText(text []byte) error {
	v, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

//Options are the parameters of a pocket field.
type Options struct {
	Algorithm Algorithm
	Spacing   float64
	Border    float64
	//Iterations of the smoothing filter (pocketfinder).
	Iterations int
	//Cutoff is the largest potential kept before smoothing (pocketfinder).
	Cutoff float64
	//Sigma sets the contour level, in RMS deviations below the mean (pocketfinder).
	Sigma float64
	//ProbeType is the Lennard-Jones type of the probe, and the type of the atoms
	//with no type of their own (pocketfinder).
	ProbeType string
	//Contour is the contour level of ligsite fields.
	Contour float64
	//ProbeRadius is added to the atomic radii to mark occupied points (ligsite).
	ProbeRadius float64
	//Workers is the number of goroutines used on the grid loops. Non-positive
	//values mean one per CPU.
	Workers int
	Log     *zap.Logger
}

//DefaultOptions returns the default options for algorithm alg.
func DefaultOptions(alg Algorithm) Options {
	return Options{
		Algorithm:   alg,
		Spacing:     1.0,
		Border:      5.0,
		Iterations:  2,
		Cutoff:      1.0,
		Sigma:       4.0,
		ProbeType:   "C.3",
		Contour:     6.0,
		ProbeRadius: 1.4,
	}
}

//Validate returns an error if some option has an invalid value.
func (o Options) Validate() error {
	var msg string
	switch {
	case o.Algorithm != PocketFinder && o.Algorithm != Ligsite:
		msg = fmt.Sprintf("unknown algorithm %v", o.Algorithm)
	case !(o.Spacing > 0):
		msg = fmt.Sprintf("spacing can't be %g", o.Spacing)
	case o.Border < 0:
		msg = fmt.Sprintf("border can't be %g", o.Border)
	case o.Iterations < 0:
		msg = fmt.Sprintf("iterations can't be %d", o.Iterations)
	case o.Algorithm == PocketFinder && o.ProbeType == "":
		msg = "empty probe type"
	case o.ProbeRadius < 0:
		msg = fmt.Sprintf("probe radius can't be %g", o.ProbeRadius)
	default:
		return nil
	}
	return chem.NewError(msg, "pocket.Options.Validate", chem.ErrBadOption)
}

func (o Options) logger() *zap.Logger {
	if o.Log != nil {
		return o.Log
	}
	return zap.L()
}

//LJ are the Lennard-Jones parameters of an atom type: the minimum-energy
//distance R and the well depth Eps.
type LJ struct {
	R, Eps float64
}

//Params provides Lennard-Jones parameters by atom type.
type Params interface {
	LJ(atomType string) (LJ, bool)
}

//MapParams is a Params backed by a map.
type MapParams map[string]LJ

//LJ returns the parameters of atomType.
func (m MapParams) LJ(atomType string) (LJ, bool) {
	l, ok := m[atomType]
	return l, ok
}

//TypeResolver gives the type of the atom with the given label in the given residue,
//or def if it has none.
type TypeResolver interface {
	Resolve(residue, label, def string) string
}

//Build builds the pocket field around atoms with the algorithm in opts, writing it to dst,
//which is reallocated, or to a new field if dst is nil. types and params are only used
//by pocketfinder. Configuration errors are returned before dst is modified.
func Build(atoms chem.AtomSet, types TypeResolver, params Params, dst *grid.Field, opts Options) (*grid.Field, error) {
	if err := opts.Validate(); err != nil {
		return nil, chem.ErrDecorate(err, "pocket.Build")
	}
	if atoms == nil || atoms.Len() == 0 {
		return nil, chem.NewError("no atoms", "pocket.Build", chem.ErrNoAtoms)
	}
	var f *grid.Field
	var err error
	switch opts.Algorithm {
	case Ligsite:
		f, err = ligsite(atoms, dst, opts)
	default:
		f, err = pocketFinder(atoms, types, params, dst, opts)
	}
	if err != nil {
		return nil, chem.ErrDecorate(err, "pocket.Build")
	}
	return f, nil
}
