/*
 * geometric.go, part of gocavity.
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

import (
	"fmt"
	"math"

	v3 "github.com/rmera/gocavity/v3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

//Transform is a rigid-body transformation: a point p is moved to
//Rotation*(p-From)+To.
type Transform struct {
	Rotation *mat.Dense //3x3, proper rotation.
	From     r3.Vec
	To       r3.Vec
}

//Apply returns p transformed by T.
func (T *Transform) Apply(p r3.Vec) r3.Vec {
	d := r3.Sub(p, T.From)
	R := T.Rotation
	rot := r3.Vec{
		X: R.At(0, 0)*d.X + R.At(0, 1)*d.Y + R.At(0, 2)*d.Z,
		Y: R.At(1, 0)*d.X + R.At(1, 1)*d.Y + R.At(1, 2)*d.Z,
		Z: R.At(2, 0)*d.X + R.At(2, 1)*d.Y + R.At(2, 2)*d.Z,
	}
	return r3.Add(rot, T.To)
}

//ApplyMatrix returns a new matrix with all the vectors of A transformed by T.
func (T *Transform) ApplyMatrix(A *v3.Matrix) *v3.Matrix {
	c := v3.Zeros(A.NVecs())
	c.SubVec(A, T.From)
	ret := v3.Zeros(A.NVecs())
	//the vectors are rows, so they are rotated by the transpose.
	ret.Mul(c, T.Rotation.T())
	ret.AddVec(ret, T.To)
	return ret
}

//Super obtains the rigid-body transformation that superimposes the set of cartesian coordinates
//given as the rows of the matrix test on the corresponding rows of the matrix templa, minimizing the RMSD
//(Kabsch algorithm). Reflections are never returned. At least 3 points are needed.
func Super(test, templa *v3.Matrix) (*Transform, error) {
	tmr := templa.NVecs()
	tsr := test.NVecs()
	if tmr != tsr {
		return nil, Error{fmt.Sprintf("Ill-formed matrices: %d vs %d vectors", tsr, tmr), []string{"Super"}, true, ErrShape}
	}
	if tmr < 3 {
		return nil, Error{fmt.Sprintf("At least 3 points needed for a superposition, got %d", tmr), []string{"Super"}, true, ErrShape}
	}
	ctest := test.Centroid()
	ctempla := templa.Centroid()
	P := v3.Zeros(tsr)
	P.SubVec(test, ctest)
	Q := v3.Zeros(tmr)
	Q.SubVec(templa, ctempla)
	//H is the covariance matrix of the centered sets.
	H := mat.NewDense(3, 3, nil)
	H.Mul(P.T(), Q)
	U, _, V, err := v3.SVD(H)
	if err != nil {
		return nil, Error{err.Error(), []string{"Super"}, true, nil}
	}
	var VUt mat.Dense
	VUt.Mul(V, U.T())
	d := 1.0
	if v3.Det(&VUt) < 0 {
		d = -1.0
	}
	D := mat.NewDiagDense(3, []float64{1, 1, d})
	var VD mat.Dense
	VD.Mul(V, D)
	R := mat.NewDense(3, 3, nil)
	R.Mul(&VD, U.T())
	return &Transform{Rotation: R, From: ctest, To: ctempla}, nil
}

//RMSD returns the RSMD (root of the mean square deviation) for the sets of cartesian
//coordinates in test and template.
func RMSD(test, template *v3.Matrix) (float64, error) {
	tmr := template.NVecs()
	if tmr != test.NVecs() {
		return 0, Error{"Ill formed matrices for RMSD calculation", []string{"RMSD"}, true, ErrShape}
	}
	var RMSD float64
	for i := 0; i < tmr; i++ {
		RMSD += r3.Norm2(r3.Sub(template.Vec(i), test.Vec(i)))
	}
	RMSD = RMSD / float64(tmr)
	return math.Sqrt(RMSD), nil
}

//SuperRMSD superimposes test onto templa and returns the transformation and the
//RMSD of the superimposed test with respect to templa.
func SuperRMSD(test, templa *v3.Matrix) (*Transform, float64, error) {
	T, err := Super(test, templa)
	if err != nil {
		return nil, 0, errDecorate(err, "SuperRMSD")
	}
	rmsd, err := RMSD(T.ApplyMatrix(test), templa)
	if err != nil {
		return nil, 0, errDecorate(err, "SuperRMSD")
	}
	return T, rmsd, nil
}
