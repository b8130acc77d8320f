/*
 * groups.go, part of gocavity.
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
	"strconv"
	"strings"

	chem "github.com/rmera/gocavity"
)

//Group is a functional group that a Superstar probe template is fitted onto.
//Every residue matching Residue that contains atoms named Labels is an occurrence of
//the group. The template atoms with indexes Central are fitted onto those atoms, in order.
type Group struct {
	Name      string
	FieldType string
	Template  string
	Residue   string //a residue name, a comma-separated list or chem.WildcardResidue
	Labels    []string
	Central   []int
}

//Validate returns an error if g can't be fitted.
func (g Group) Validate() error {
	switch {
	case len(g.Labels) < 3:
		return chem.NewError(fmt.Sprintf("group %q needs at least 3 labels, got %d", g.Name, len(g.Labels)), "statpot.Group.Validate", chem.ErrBadOption)
	case len(g.Labels) != len(g.Central):
		return chem.NewError(fmt.Sprintf("group %q: %d labels but %d central atoms", g.Name, len(g.Labels), len(g.Central)), "statpot.Group.Validate", chem.ErrBadOption)
	case g.Template == "":
		return chem.NewError(fmt.Sprintf("group %q has no template", g.Name), "statpot.Group.Validate", chem.ErrMissingTemplate)
	}
	return nil
}

//PropertySource is a keyed property store.
type PropertySource interface {
	String(section, key, def string) string
}

//GroupSection is the property section with the group definitions.
const GroupSection = "superstar"

//GroupsFromProperties reads the groups group.1, group.2... from the superstar section
//of props, stopping at the first N for which group.N.name is not defined. Each group
//has the keys name, type, template, residue (default "*"), labels and central. The last two
//are whitespace-separated lists.
func GroupsFromProperties(props PropertySource) ([]Group, error) {
	var ret []Group
	for n := 1; ; n++ {
		key := func(s string) string { return fmt.Sprintf("group.%d.%s", n, s) }
		name := props.String(GroupSection, key("name"), "")
		if name == "" {
			break
		}
		g := Group{
			Name:      name,
			FieldType: props.String(GroupSection, key("type"), ""),
			Template:  props.String(GroupSection, key("template"), name),
			Residue:   props.String(GroupSection, key("residue"), chem.WildcardResidue),
			Labels:    strings.Fields(props.String(GroupSection, key("labels"), "")),
		}
		for _, f := range strings.Fields(props.String(GroupSection, key("central"), "")) {
			c, err := strconv.Atoi(f)
			if err != nil {
				return nil, chem.NewError(fmt.Sprintf("bad central atom %q in group %q", f, name), "statpot.GroupsFromProperties", chem.ErrBadOption)
			}
			g.Central = append(g.Central, c)
		}
		ret = append(ret, g)
	}
	return ret, nil
}

//TemplateLoader provides probe templates by name. The Bfactor of each template atom
//is the weight of its contributions.
type TemplateLoader interface {
	Template(name string) (*chem.Molecule, error)
}

//MapTemplates is a TemplateLoader backed by a map.
type MapTemplates map[string]*chem.Molecule

//Template returns the template called name.
func (m MapTemplates) Template(name string) (*chem.Molecule, error) {
	t, ok := m[name]
	if !ok || t == nil {
		return nil, chem.NewError(fmt.Sprintf("no template %q", name), "statpot.MapTemplates.Template", chem.ErrMissingTemplate)
	}
	return t, nil
}
