/*
 * properties.go, part of gocavity.
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

//Package config reads the data and parameters the field builders and PASS need: a keyed
//property store with built-in defaults (YAML), run files (INI) and atom-type
//tables (CSV). It also builds the library logger.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	chem "github.com/rmera/gocavity"
	"github.com/rmera/gocavity/pocket"
	"github.com/rmera/gocavity/statpot"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

//Section names used by the library.
const (
	SectionLJ      = "lj"
	SectionTypes   = "types"
	SectionASP     = "asp"
	TemplatePrefix = "template."
)

//Properties is a two-level store of scalar values: section -> key -> value.
type Properties struct {
	sections map[string]map[string]string
}

//Load returns the built-in properties, with the ones in the YAML file path on top.
//If path is empty, only the built-in properties are used.
func Load(path string) (*Properties, error) {
	p := &Properties{sections: make(map[string]map[string]string)}
	if err := p.merge(defaultsYAML); err != nil {
		return nil, chem.NewError(fmt.Sprintf("parsing embedded defaults: %v", err), "config.Load", nil)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, chem.NewError(fmt.Sprintf("reading properties file: %v", err), "config.Load", chem.ErrBadOption)
		}
		if err := p.merge(data); err != nil {
			return nil, chem.NewError(fmt.Sprintf("parsing properties file %s: %v", path, err), "config.Load", chem.ErrBadOption)
		}
	}
	return p, nil
}

//Parse is like Load, but reads the user properties from data.
func Parse(data []byte) (*Properties, error) {
	p, err := Load("")
	if err != nil {
		return nil, chem.ErrDecorate(err, "config.Parse")
	}
	if err := p.merge(data); err != nil {
		return nil, chem.NewError(fmt.Sprintf("parsing properties: %v", err), "config.Parse", chem.ErrBadOption)
	}
	return p, nil
}

//merge adds the values in the YAML document data, replacing existing keys.
func (p *Properties) merge(data []byte) error {
	var doc map[string]map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	for sec, keys := range doc {
		if p.sections[sec] == nil {
			p.sections[sec] = make(map[string]string, len(keys))
		}
		for k, n := range keys {
			if n.Kind != yaml.ScalarNode {
				return fmt.Errorf("%s.%s: expected a scalar at line %d", sec, k, n.Line)
			}
			p.sections[sec][k] = n.Value
		}
	}
	return nil
}

//Has returns true if key is defined in section.
func (p *Properties) Has(section, key string) bool {
	_, ok := p.sections[section][key]
	return ok
}

//Set sets the value of key in section.
func (p *Properties) Set(section, key, value string) {
	if p.sections[section] == nil {
		p.sections[section] = make(map[string]string)
	}
	p.sections[section][key] = value
}

//String returns the value of key in section, or def if it is not defined.
func (p *Properties) String(section, key, def string) string {
	if v, ok := p.sections[section][key]; ok {
		return v
	}
	return def
}

//Float returns the value of key in section, or def if it is not defined or is not a number.
func (p *Properties) Float(section, key string, def float64) float64 {
	v, err := strconv.ParseFloat(p.String(section, key, ""), 64)
	if err != nil {
		return def
	}
	return v
}

//Int is like Float for integers.
func (p *Properties) Int(section, key string, def int) int {
	v, err := strconv.Atoi(p.String(section, key, ""))
	if err != nil {
		return def
	}
	return v
}

//Bool is like Float for booleans.
func (p *Properties) Bool(section, key string, def bool) bool {
	v, err := strconv.ParseBool(p.String(section, key, ""))
	if err != nil {
		return def
	}
	return v
}

//LJ returns the Lennard-Jones parameters of atomType, given in the lj section as "R eps".
func (p *Properties) LJ(atomType string) (pocket.LJ, bool) {
	f := strings.Fields(p.String(SectionLJ, atomType, ""))
	if len(f) != 2 {
		return pocket.LJ{}, false
	}
	r, err1 := strconv.ParseFloat(f[0], 64)
	e, err2 := strconv.ParseFloat(f[1], 64)
	if err1 != nil || err2 != nil {
		return pocket.LJ{}, false
	}
	return pocket.LJ{R: r, Eps: e}, true
}

//Resolve returns the type of the atom label in residue from the types section:
//the key "RES.LABEL", then "*.LABEL", then def.
func (p *Properties) Resolve(residue, label, def string) string {
	if v, ok := p.sections[SectionTypes][residue+"."+label]; ok {
		return v
	}
	if v, ok := p.sections[SectionTypes][chem.WildcardResidue+"."+label]; ok {
		return v
	}
	return def
}

//Types returns the types section as a TypeTable.
func (p *Properties) Types() *TypeTable {
	t := NewTypeTable()
	for k, v := range p.sections[SectionTypes] {
		res, label, ok := strings.Cut(k, ".")
		if !ok {
			continue
		}
		t.Add(res, label, v)
	}
	return t
}

//Groups returns the Superstar groups defined in the properties.
func (p *Properties) Groups() ([]statpot.Group, error) {
	return statpot.GroupsFromProperties(p)
}

//Tables returns the loader for the PMF tables in the directory set as asp.tables.
func (p *Properties) Tables() statpot.DirTables {
	return statpot.DirTables{Dir: p.String(SectionASP, "tables", "")}
}

//Template returns the Superstar template name, defined in the section "template.name" by the
//keys atom.1, atom.2... each with the value "label symbol x y z [scale]". The scale,
//stored as the B-factor of the atom, is 1 if not given.
func (p *Properties) Template(name string) (*chem.Molecule, error) {
	sec := TemplatePrefix + name
	if _, ok := p.sections[sec]; !ok {
		return nil, chem.NewError(fmt.Sprintf("no template %q", name), "config.Properties.Template", chem.ErrMissingTemplate)
	}
	var ats []*chem.Atom
	var pos []r3.Vec
	for n := 1; ; n++ {
		line := p.String(sec, fmt.Sprintf("atom.%d", n), "")
		if line == "" {
			break
		}
		f := strings.Fields(line)
		if len(f) != 5 && len(f) != 6 {
			return nil, chem.NewError(fmt.Sprintf("template %q atom %d: bad line %q", name, n, line), "config.Properties.Template", chem.ErrShape)
		}
		var c [4]float64
		c[3] = 1
		for i, s := range f[2:] {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, chem.NewError(fmt.Sprintf("template %q atom %d: bad number %q", name, n, s), "config.Properties.Template", chem.ErrShape)
			}
			c[i] = v
		}
		r, _ := chem.VdwRadius(f[1])
		ats = append(ats, &chem.Atom{Name: f[0], Symbol: f[1], ID: n, Molname: name, Vdw: r, Bfactor: c[3]})
		pos = append(pos, r3.Vec{X: c[0], Y: c[1], Z: c[2]})
	}
	if len(ats) == 0 {
		return nil, chem.NewError(fmt.Sprintf("template %q has no atoms", name), "config.Properties.Template", chem.ErrMissingTemplate)
	}
	mol, err := chem.NewMoleculeFromVecs(ats, pos)
	if err != nil {
		return nil, chem.ErrDecorate(err, "config.Properties.Template")
	}
	return mol, nil
}
