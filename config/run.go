/*
 * run.go, part of gocavity.
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

	chem "github.com/rmera/gocavity"
	"github.com/rmera/gocavity/pass"
	"github.com/rmera/gocavity/pocket"
	"github.com/rmera/gocavity/statpot"
	"go.uber.org/zap"
	"gopkg.in/gcfg.v1"
)

//ExampleRunFile is a run file with every option set to its default value.
const ExampleRunFile = `# gocavity run file. Every option is optional.

[Grid]
# Goroutines used on the grid loops. 0 means one per CPU.
Workers = 0

[Pass]
ProbeRadius = 1.8
BurialThreshold = 55
BurialRadius = 8.0
AccretionRadius = 0.7
# Probe radius for a second attempt if no probe is kept. 0 means no retry.
RetryRadius = 0
MaxRounds = 100
AtomClash = true

[Pocket]
# pocketfinder or ligsite
Algorithm = pocketfinder
Spacing = 1.0
Border = 5.0
Iterations = 2
Cutoff = 1.0
Sigma = 4.0
ProbeType = C.3
Contour = 6.0
ProbeRadius = 1.4

[Superstar]
FieldType = donor
Spacing = 0.5
Border = 5.0
ExcludeCarbon = false
BondCutoff = 1.9
WarnRMSD = 0.2
FailRMSD = 0.5
Width = 1.0
ClashTolerance = 0.5

[Asp]
ProbeType = O.w
Spacing = 0.5
Border = 5.0
Cutoff = 6.0
DefaultType = C.3

[Log]
# debug, info, warn or error
Level = info
`

//Run holds the options of a run, as read from an INI run file.
type Run struct {
	Grid struct {
		Workers int
	}
	Pass struct {
		ProbeRadius     float64
		BurialThreshold int
		BurialRadius    float64
		AccretionRadius float64
		RetryRadius     float64
		MaxRounds       int
		AtomClash       bool
	}
	Pocket struct {
		Algorithm   pocket.Algorithm
		Spacing     float64
		Border      float64
		Iterations  int
		Cutoff      float64
		Sigma       float64
		ProbeType   string
		Contour     float64
		ProbeRadius float64
	}
	Superstar struct {
		FieldType      string
		Spacing        float64
		Border         float64
		ExcludeCarbon  bool
		BondCutoff     float64
		WarnRMSD       float64
		FailRMSD       float64
		Width          float64
		ClashTolerance float64
	}
	Asp struct {
		ProbeType   string
		Spacing     float64
		Border      float64
		Cutoff      float64
		DefaultType string
	}
	Log struct {
		Level string
	}
}

//DefaultRun returns a Run with the default options of every engine.
func DefaultRun() *Run {
	r := &Run{}
	po := pass.DefaultOptions()
	r.Pass.ProbeRadius = po.ProbeRadius
	r.Pass.BurialThreshold = po.BurialThreshold
	r.Pass.BurialRadius = po.BurialRadius
	r.Pass.AccretionRadius = po.AccretionRadius
	r.Pass.RetryRadius = po.RetryRadius
	r.Pass.MaxRounds = po.MaxRounds
	r.Pass.AtomClash = po.AtomClash

	pk := pocket.DefaultOptions(pocket.PocketFinder)
	r.Pocket.Algorithm = pk.Algorithm
	r.Pocket.Spacing = pk.Spacing
	r.Pocket.Border = pk.Border
	r.Pocket.Iterations = pk.Iterations
	r.Pocket.Cutoff = pk.Cutoff
	r.Pocket.Sigma = pk.Sigma
	r.Pocket.ProbeType = pk.ProbeType
	r.Pocket.Contour = pk.Contour
	r.Pocket.ProbeRadius = pk.ProbeRadius

	ss := statpot.DefaultSuperstarOptions("donor")
	r.Superstar.FieldType = ss.FieldType
	r.Superstar.Spacing = ss.Spacing
	r.Superstar.Border = ss.Border
	r.Superstar.ExcludeCarbon = ss.ExcludeCarbon
	r.Superstar.BondCutoff = ss.BondCutoff
	r.Superstar.WarnRMSD = ss.WarnRMSD
	r.Superstar.FailRMSD = ss.FailRMSD
	r.Superstar.Width = ss.Width
	r.Superstar.ClashTolerance = ss.ClashTolerance

	as := statpot.DefaultASPOptions("O.w")
	r.Asp.ProbeType = as.ProbeType
	r.Asp.Spacing = as.Spacing
	r.Asp.Border = as.Border
	r.Asp.Cutoff = as.Cutoff
	r.Asp.DefaultType = as.DefaultType

	r.Log.Level = "info"
	return r
}

//ReadRun reads the run file name. Options not in the file keep their default values.
func ReadRun(name string) (*Run, error) {
	r := DefaultRun()
	if err := gcfg.ReadFileInto(r, name); err != nil {
		return nil, chem.NewError(fmt.Sprintf("reading run file %s: %v", name, err), "config.ReadRun", chem.ErrBadOption)
	}
	return r, nil
}

//ParseRun is like ReadRun, with the run file contents given as text.
func ParseRun(text string) (*Run, error) {
	r := DefaultRun()
	if err := gcfg.ReadStringInto(r, text); err != nil {
		return nil, chem.NewError(fmt.Sprintf("parsing run file: %v", err), "config.ParseRun", chem.ErrBadOption)
	}
	return r, nil
}

//The options returned by the conversion methods have a nil logger, so the engines
//log to the global zap logger. Install Run.Logger with zap.ReplaceGlobals to
//use the level in the run file.

//PassOptions returns the validated PASS options.
func (r *Run) PassOptions() (pass.Options, error) {
	o := pass.Options{
		ProbeRadius:     r.Pass.ProbeRadius,
		BurialThreshold: r.Pass.BurialThreshold,
		BurialRadius:    r.Pass.BurialRadius,
		AccretionRadius: r.Pass.AccretionRadius,
		RetryRadius:     r.Pass.RetryRadius,
		MaxRounds:       r.Pass.MaxRounds,
		AtomClash:       r.Pass.AtomClash,
	}
	if err := o.Validate(); err != nil {
		return o, chem.ErrDecorate(err, "config.Run.PassOptions")
	}
	return o, nil
}

//PocketOptions returns the validated pocket-field options.
func (r *Run) PocketOptions() (pocket.Options, error) {
	o := pocket.Options{
		Algorithm:   r.Pocket.Algorithm,
		Spacing:     r.Pocket.Spacing,
		Border:      r.Pocket.Border,
		Iterations:  r.Pocket.Iterations,
		Cutoff:      r.Pocket.Cutoff,
		Sigma:       r.Pocket.Sigma,
		ProbeType:   r.Pocket.ProbeType,
		Contour:     r.Pocket.Contour,
		ProbeRadius: r.Pocket.ProbeRadius,
		Workers:     r.Grid.Workers,
	}
	if err := o.Validate(); err != nil {
		return o, chem.ErrDecorate(err, "config.Run.PocketOptions")
	}
	return o, nil
}

//SuperstarOptions returns the validated Superstar options.
func (r *Run) SuperstarOptions() (statpot.SuperstarOptions, error) {
	o := statpot.SuperstarOptions{
		FieldType:      r.Superstar.FieldType,
		Spacing:        r.Superstar.Spacing,
		Border:         r.Superstar.Border,
		ExcludeCarbon:  r.Superstar.ExcludeCarbon,
		BondCutoff:     r.Superstar.BondCutoff,
		WarnRMSD:       r.Superstar.WarnRMSD,
		FailRMSD:       r.Superstar.FailRMSD,
		Width:          r.Superstar.Width,
		ClashTolerance: r.Superstar.ClashTolerance,
	}
	if err := o.Validate(); err != nil {
		return o, chem.ErrDecorate(err, "config.Run.SuperstarOptions")
	}
	return o, nil
}

//ASPOptions returns the validated ASP options.
func (r *Run) ASPOptions() (statpot.ASPOptions, error) {
	o := statpot.ASPOptions{
		ProbeType:   r.Asp.ProbeType,
		Spacing:     r.Asp.Spacing,
		Border:      r.Asp.Border,
		Cutoff:      r.Asp.Cutoff,
		DefaultType: r.Asp.DefaultType,
		Workers:     r.Grid.Workers,
	}
	if err := o.Validate(); err != nil {
		return o, chem.ErrDecorate(err, "config.Run.ASPOptions")
	}
	return o, nil
}

//Logger returns a console logger at the level set in the run file.
func (r *Run) Logger() *zap.Logger {
	return NewLogger(r.Log.Level, nil)
}
