/*
 * chem.go, part of gocavity.
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
	"fmt"

	v3 "github.com/rmera/gocavity/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

/**Note: Some funcitons here panic instead of returning errors. This is because they are "fundamental"
 * functions. If something goes wrong here, the program is most likely wrong and should
 * crash. Most panics are related to using the funciton on a nil object or trying to access out-of bounds
 * fields**/

//Atom contains the atoms read except for the coordinates, which will be in a matrix.
//The last fields are scratch values some algorithms read or write.
type Atom struct {
	Name      string
	ID        int
	Tag       int //batch tag, not a float.
	Molname   string
	Molid     int
	Chain     string
	Symbol    string
	Vdw       float64
	Charge    float64
	Occupancy float64 //used as an inclusion flag by some callers
	Bfactor   float64 //weighting value, and the burial count for generated probes
}

//ResKey returns the "RES.LABEL" key used to look up the atom in type tables.
func (A *Atom) ResKey() string {
	return A.Molname + "." + A.Name
}

/*****Topology type***/

//Topology contains information about a molecule which is not expected to change in time (i.e. everything except for coordinates)
type Topology struct {
	Atoms  []*Atom
	charge int
}

//NewTopology makes a topology with atoms ats and total charge charge.
//It returns error if ats is nil.
func NewTopology(ats []*Atom, charge int) (*Topology, error) {
	if ats == nil {
		return nil, Error{"Supplied a nil atom slice", []string{"NewTopology"}, true, ErrNoAtoms}
	}
	return &Topology{Atoms: ats, charge: charge}, nil
}

//Charge gets the total charge of the topology
func (T *Topology) Charge() int {
	return T.charge
}

//Atom returns the Atom corresponding to the index i
//of the Atom slice in the Topology. Panics if
//out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() || i < 0 {
		panic("Topology: Requested Atom out of bounds")
	}
	return T.Atoms[i]
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

//FillVdw assigns the element van der Waals radius to every atom without one.
//It returns the number of atoms for which no radius could be found.
func (T *Topology) FillVdw() int {
	missing := 0
	for _, at := range T.Atoms {
		if at.Vdw > 0 {
			continue
		}
		r, ok := VdwRadius(at.Symbol)
		if !ok {
			missing++
		}
		at.Vdw = r
	}
	return missing
}

/**Molecule type**/

//Molecule contains a topology and one set of coordinates. It implements AtomSet.
type Molecule struct {
	*Topology
	Coords *v3.Matrix
}

//NewMolecule makes a molecule with the atoms ats and the coordinates coords. It
//returns an error if the number of atoms and coordinates don't match.
func NewMolecule(ats []*Atom, coords *v3.Matrix) (*Molecule, error) {
	top, err := NewTopology(ats, 0)
	if err != nil {
		return nil, errDecorate(err, "NewMolecule")
	}
	if coords == nil {
		if len(ats) != 0 {
			return nil, Error{"nil coordinates for a non-empty atom set", []string{"NewMolecule"}, true, ErrShape}
		}
		return &Molecule{Topology: top}, nil
	}
	if coords.NVecs() != len(ats) {
		return nil, Error{fmt.Sprintf("Inconsistent coordinates(%d)/atoms(%d)", coords.NVecs(), len(ats)), []string{"NewMolecule"}, true, ErrShape}
	}
	return &Molecule{Topology: top, Coords: coords}, nil
}

//NewMoleculeFromVecs is like NewMolecule but takes the coordinates as a slice of vectors.
func NewMoleculeFromVecs(ats []*Atom, pos []r3.Vec) (*Molecule, error) {
	if len(pos) == 0 {
		return NewMolecule(ats, nil)
	}
	coords, err := v3.FromVecs(pos)
	if err != nil {
		return nil, Error{err.Error(), []string{"NewMoleculeFromVecs"}, true, ErrShape}
	}
	return NewMolecule(ats, coords)
}

//Pos returns the position of the ith atom.
func (M *Molecule) Pos(i int) r3.Vec {
	return M.Coords.Vec(i)
}

//Append adds at, placed at pos, at the end of the molecule.
//This is how the engines hand generated atoms back to the caller.
func (M *Molecule) Append(at *Atom, pos r3.Vec) {
	//can't fail with one atom and one position.
	_ = M.AppendMany([]*Atom{at}, []r3.Vec{pos})
}

//AppendMany adds the atoms in ats, placed at the positions in pos, at the end of the
//molecule. The coordinates are copied once for the whole batch.
func (M *Molecule) AppendMany(ats []*Atom, pos []r3.Vec) error {
	if len(ats) != len(pos) {
		return NewError(fmt.Sprintf("%d atoms but %d positions", len(ats), len(pos)), "chem.Molecule.AppendMany", ErrShape)
	}
	if len(ats) == 0 {
		return nil
	}
	p, err := v3.FromVecs(pos)
	if err != nil {
		return errDecorate(err, "chem.Molecule.AppendMany")
	}
	M.Atoms = append(M.Atoms, ats...)
	if M.Coords == nil || M.Coords.Dense == nil {
		M.Coords = p
		return nil
	}
	M.Coords = v3.Stack(M.Coords, p)
	return nil
}

//Positions returns a copy of all the atomic positions.
func Positions(set AtomSet) []r3.Vec {
	ret := make([]r3.Vec, set.Len())
	for i := range ret {
		ret[i] = set.Pos(i)
	}
	return ret
}
