/*
 * doc.go, part of gocavity.
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

/*Package chem is the main package of the gocavity library. It provides atom and molecule structures,
element data and the rigid-body superposition used by the cavity and surface engines.



	**gocavity Capabilities**


    A spatial hash (package lattice) for fast neighbor queries over 3D points.

    Scalar fields over axis-aligned grids built around an atom set (package grid),
	with contour-level metadata and a smoothing filter.

    Cavity detection by probe placement, the PASS method (package pass).

    Statistical-potential fields: Superstar-like propensity maps and ASP
	potential-of-mean-force maps (package statpot).

    Pocket fields: pocketfinder (Lennard-Jones probe energy) and ligsite
	(buriedness along lattice directions) (package pocket).

    Superimposes sets of coordinates and calculates RMSD (this package).

    Property files, run files and atom-type tables, and logger setup (package config).

    Diagnostic plots of fields, potential tables and probes (package chemplot).

gocavity doesn't read molecule or map files, and doesn't render anything. It takes atom sets
(anything implementing AtomSet) and hands back populated fields or generated atoms.

*/
package chem
