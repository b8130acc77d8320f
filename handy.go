/*
 * handy.go, part of gocavity.
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

import "strings"

type resid struct {
	chain string
	molid int
	name  string
}

//Residues groups the atoms of set by residue (chain, residue number and residue name)
//and returns the indexes of the atoms of each residue, in order of first appearance.
func Residues(set Atomer) [][]int {
	index := make(map[resid]int)
	var ret [][]int
	for i := 0; i < set.Len(); i++ {
		at := set.Atom(i)
		k := resid{at.Chain, at.Molid, at.Molname}
		r, ok := index[k]
		if !ok {
			r = len(ret)
			index[k] = r
			ret = append(ret, nil)
		}
		ret[r] = append(ret[r], i)
	}
	return ret
}

//FindNames returns, for each name in names, the index of the first atom in atoms (indexes into set)
//with that name. The second value is false if some name was not found.
func FindNames(set Atomer, atoms []int, names []string) ([]int, bool) {
	ret := make([]int, len(names))
	for j, name := range names {
		ret[j] = -1
		for _, i := range atoms {
			if set.Atom(i).Name == name {
				ret[j] = i
				break
			}
		}
		if ret[j] < 0 {
			return nil, false
		}
	}
	return ret, true
}

//WildcardResidue matches any residue name in MatchResidue.
const WildcardResidue = "*"

//MatchResidue returns true if name matches the pattern pattern, which can be
//a residue name or the wildcard. Several names can be given separated by commas.
func MatchResidue(pattern, name string) bool {
	if pattern == WildcardResidue || pattern == "" {
		return true
	}
	return isInString(strings.Split(pattern, ","), name)
}

//isInString returns true if test is in container, false otherwise.
func isInString(container []string, test string) bool {
	for _, i := range container {
		if strings.TrimSpace(i) == test {
			return true
		}
	}
	return false
}
