/*
 * filters.go, part of gocavity.
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
	"fmt"
	"math"

	chem "github.com/rmera/gocavity"
	"gonum.org/v1/gonum/stat"
)

//Smooth applies iterations rounds of the smoothing filter to f: every sample is
//replaced by the average of itself and the mean of its face neighbors that exist
//(between 2 and 6 of them, depending on the position in the grid).
//Each round reads only values from the previous round. Sums are taken in float64,
//so a uniform field is left exactly unchanged.
func Smooth(f *Field, iterations, workers int) error {
	if iterations <= 0 || len(f.Data) == 0 {
		return nil
	}
	nx, ny, nz := f.N[0], f.N[1], f.N[2]
	if nx*ny*nz != len(f.Data) {
		return chem.NewError(fmt.Sprintf("%dx%dx%d grid with %d samples", nx, ny, nz, len(f.Data)), "grid.Smooth", chem.ErrShape)
	}
	plane := nx * ny
	src := f.Data
	dst := make([]float32, len(src))
	for it := 0; it < iterations; it++ {
		err := Slabs(nz, workers, func(k0, k1 int) error {
			for k := k0; k < k1; k++ {
				for j := 0; j < ny; j++ {
					for i := 0; i < nx; i++ {
						idx := i + j*nx + k*plane
						var sum float64
						n := 0
						if i > 0 {
							sum += float64(src[idx-1])
							n++
						}
						if i < nx-1 {
							sum += float64(src[idx+1])
							n++
						}
						if j > 0 {
							sum += float64(src[idx-nx])
							n++
						}
						if j < ny-1 {
							sum += float64(src[idx+nx])
							n++
						}
						if k > 0 {
							sum += float64(src[idx-plane])
							n++
						}
						if k < nz-1 {
							sum += float64(src[idx+plane])
							n++
						}
						if n == 0 {
							dst[idx] = src[idx]
							continue
						}
						dst[idx] = float32((float64(src[idx]) + sum/float64(n)) / 2)
					}
				}
			}
			return nil
		})
		if err != nil {
			return chem.ErrDecorate(err, "grid.Smooth")
		}
		src, dst = dst, src
	}
	//after an odd number of rounds the result is in the scratch slice.
	if &src[0] != &f.Data[0] {
		copy(f.Data, src)
	}
	return nil
}

//Stats returns the mean of the samples of f and their population RMS deviation
//from that mean. Every grid point counts, including the border.
func Stats(f *Field) (mean, rms float64) {
	n := len(f.Data)
	if n == 0 {
		return 0, 0
	}
	if n == 1 {
		return float64(f.Data[0]), 0
	}
	mean, variance := stat.MeanVariance(f.Values(), nil)
	//MeanVariance gives the unbiased estimate, we want the population one.
	return mean, math.Sqrt(variance * float64(n-1) / float64(n))
}
