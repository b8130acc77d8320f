/*
 * kind.go, part of gocavity.
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

//Package statpot builds statistical-potential fields around molecules: Superstar
//fields, from probe templates fitted onto functional groups, and ASP fields, from
//tabulated pairwise potentials of mean force.
package statpot

import (
	"image/color"
	"strings"

	"github.com/rmera/gocavity/grid"
)

//Kind is the family of a field type. It decides the contour levels of Superstar fields.
type Kind int

const (
	KindOther Kind = iota
	KindDonor
	KindAliphatic
	KindAromatic
)

func (k Kind) String() string {
	switch k {
	case KindDonor:
		return "donor"
	case KindAliphatic:
		return "aliphatic"
	case KindAromatic:
		return "aromatic"
	}
	return "other"
}

//KindOf returns the kind of the field type fieldType, chosen by the substrings
//"donor", "ali" and "aro", in that order.
func KindOf(fieldType string) Kind {
	t := strings.ToLower(fieldType)
	switch {
	case strings.Contains(t, "donor"):
		return KindDonor
	case strings.Contains(t, "ali"):
		return KindAliphatic
	case strings.Contains(t, "aro"):
		return KindAromatic
	}
	return KindOther
}

var (
	blue   = color.RGBA{R: 0x30, G: 0x60, B: 0xff, A: 0xff}
	red    = color.RGBA{R: 0xff, G: 0x30, B: 0x30, A: 0xff}
	yellow = color.RGBA{R: 0xff, G: 0xd0, B: 0x20, A: 0xff}
	green  = color.RGBA{R: 0x30, G: 0xc0, B: 0x50, A: 0xff}
	grey   = color.RGBA{R: 0xa0, G: 0xa0, B: 0xa0, A: 0xff}
)

//Ladder returns the contour levels of a Superstar field of kind k.
func (k Kind) Ladder() []grid.Contour {
	var base, step float64
	var col color.RGBA
	switch k {
	case KindDonor:
		base, step, col = 2, 1, blue
	case KindAliphatic:
		base, step, col = 1, 0.5, yellow
	case KindAromatic:
		base, step, col = 1.5, 0.5, green
	default:
		base, step, col = 1, 1, red
	}
	ret := make([]grid.Contour, grid.MaxLevels)
	for i := range ret {
		ret[i] = grid.Contour{Value: base + float64(i)*step, Shown: i == 0, Style: grid.Lines, Color: col}
	}
	return ret
}

//aspLadder returns the contour levels of an ASP field with maximum max.
func aspLadder(max float64) []grid.Contour {
	ret := make([]grid.Contour, grid.MaxLevels)
	for i := range ret {
		ret[i] = grid.Contour{Value: max - 3 - float64(i), Shown: i == 0, Style: grid.Lines, Color: grey}
	}
	return ret
}
