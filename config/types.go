/*
 * types.go, part of gocavity.
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

package config

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/gocarina/gocsv"
	chem "github.com/rmera/gocavity"
)

//TypeRow is one line of an atom-type table.
type TypeRow struct {
	Residue string `csv:"residue"`
	Atom    string `csv:"atom"`
	Type    string `csv:"type"`
}

//TypeTable maps residue and atom labels to atom types.
type TypeTable struct {
	types map[string]string
}

//NewTypeTable returns an empty table.
func NewTypeTable() *TypeTable {
	return &TypeTable{types: make(map[string]string)}
}

//Add sets the type of atom label in residue. residue can be chem.WildcardResidue.
func (t *TypeTable) Add(residue, label, typ string) {
	t.types[residue+"."+label] = typ
}

//Len returns the number of entries in the table.
func (t *TypeTable) Len() int {
	return len(t.types)
}

//Resolve returns the type of atom label in residue: the "RES.LABEL" entry if there is one,
//then the "*.LABEL" one, then def.
func (t *TypeTable) Resolve(residue, label, def string) string {
	if v, ok := t.types[residue+"."+label]; ok {
		return v
	}
	if v, ok := t.types[chem.WildcardResidue+"."+label]; ok {
		return v
	}
	return def
}

//Merge adds every entry of o to t, replacing the existing ones.
func (t *TypeTable) Merge(o *TypeTable) {
	for k, v := range o.types {
		t.types[k] = v
	}
}

//ReadTypes reads a CSV table with the header "residue,atom,type".
func ReadTypes(r io.Reader) (*TypeTable, error) {
	var rows []*TypeRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, chem.NewError(fmt.Sprintf("reading type table: %v", err), "config.ReadTypes", chem.ErrShape)
	}
	t := NewTypeTable()
	for i, row := range rows {
		if row.Atom == "" || row.Type == "" {
			return nil, chem.NewError(fmt.Sprintf("type table row %d: empty atom or type", i+1), "config.ReadTypes", chem.ErrShape)
		}
		res := row.Residue
		if res == "" {
			res = chem.WildcardResidue
		}
		t.Add(res, row.Atom, row.Type)
	}
	return t, nil
}

//ReadTypesFile is ReadTypes on the file name.
func ReadTypesFile(name string) (*TypeTable, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, chem.NewError(err.Error(), "config.ReadTypesFile", nil)
	}
	defer f.Close()
	t, err := ReadTypes(f)
	if err != nil {
		return nil, chem.ErrDecorate(err, name)
	}
	return t, nil
}

//Rows returns the entries of the table sorted by residue and atom.
func (t *TypeTable) Rows() []*TypeRow {
	rows := make([]*TypeRow, 0, len(t.types))
	for k, v := range t.types {
		//labels can't contain dots, residue names could.
		i := len(k) - 1
		for i >= 0 && k[i] != '.' {
			i--
		}
		rows = append(rows, &TypeRow{Residue: k[:i], Atom: k[i+1:], Type: v})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Residue != rows[j].Residue {
			return rows[i].Residue < rows[j].Residue
		}
		return rows[i].Atom < rows[j].Atom
	})
	return rows
}

//WriteTypes writes t as a CSV table that ReadTypes can read.
func WriteTypes(w io.Writer, t *TypeTable) error {
	return gocsv.Marshal(t.Rows(), w)
}
