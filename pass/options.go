/*
 * options.go, part of gocavity.
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

package pass

import (
	"fmt"

	chem "github.com/rmera/gocavity"
	"go.uber.org/zap"
)

const (
	//WeedDistance is the minimum separation between two kept probes.
	WeedDistance = 1.0
	//ContactRadius is the radius used to count probe neighbors in the surface filter.
	ContactRadius = 2.5
	//MinContacts is the neighbor count a probe needs to pass the surface filter.
	MinContacts = 4
)

//Options for a PASS run.
type Options struct {
	//ProbeRadius is the radius of the first-layer probes.
	ProbeRadius float64
	//BurialThreshold is the minimum burial count a probe needs to be kept.
	BurialThreshold int
	//BurialRadius is the radius within which atoms count towards the burial of a point.
	BurialRadius float64
	//AccretionRadius is the radius of the probes added in accretion layers.
	AccretionRadius float64
	//RetryRadius, if positive, is the probe radius used for a second attempt when the
	//first layer keeps no probes.
	RetryRadius float64
	//MaxRounds caps the number of accretion rounds.
	MaxRounds int
	//AtomClash rejects accretion probes that overlap an atom.
	AtomClash bool
	Log       *zap.Logger
}

//DefaultOptions returns the default PASS parameters.
func DefaultOptions() Options {
	return Options{
		ProbeRadius:     1.8,
		BurialThreshold: 55,
		BurialRadius:    8.0,
		AccretionRadius: 0.7,
		MaxRounds:       100,
		AtomClash:       true,
	}
}

//Validate returns an error if some option has an invalid value.
func (o Options) Validate() error {
	bad := func(name string, v interface{}) error {
		return chem.NewError(fmt.Sprintf("%s can't be %v", name, v), "pass.Options.Validate", chem.ErrBadOption)
	}
	switch {
	case !(o.ProbeRadius > 0):
		return bad("ProbeRadius", o.ProbeRadius)
	case o.BurialThreshold < 0:
		return bad("BurialThreshold", o.BurialThreshold)
	case !(o.BurialRadius > 0):
		return bad("BurialRadius", o.BurialRadius)
	case !(o.AccretionRadius > 0):
		return bad("AccretionRadius", o.AccretionRadius)
	case o.RetryRadius < 0:
		return bad("RetryRadius", o.RetryRadius)
	case o.MaxRounds < 0:
		return bad("MaxRounds", o.MaxRounds)
	}
	return nil
}

func (o Options) logger() *zap.Logger {
	if o.Log != nil {
		return o.Log
	}
	return zap.L()
}
