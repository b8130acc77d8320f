/*
 * slabs.go, part of gocavity.
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

package grid

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

//Workers returns n if it is positive, and the number of logical CPUs otherwise.
func Workers(n int) int {
	if n > 0 {
		return n
	}
	return runtime.NumCPU()
}

//Slabs splits the z range [0,nz) into contiguous slabs and calls fn once per slab,
//concurrently, with at most workers calls running at once. fn must only write
//grid points with k in [k0,k1). The first error returned by fn is returned.
func Slabs(nz, workers int, fn func(k0, k1 int) error) error {
	workers = Workers(workers)
	if workers > nz {
		workers = nz
	}
	if workers <= 1 {
		return fn(0, nz)
	}
	size := (nz + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for k0 := 0; k0 < nz; k0 += size {
		k0 := k0
		k1 := k0 + size
		if k1 > nz {
			k1 = nz
		}
		g.Go(func() error {
			return fn(k0, k1)
		})
	}
	return g.Wait()
}
