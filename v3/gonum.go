/*
 * gonum.go, part of gocavity.
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

//gonum.go contains the Matrix type and the pieces of gonum's mat package
//that the rest of the library needs.

package v3

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

//Matrix is a set of vectors in 3D space, i.e. a row-major Nx3 matrix.
//Within the package it is understood that a "vector" is a row vector, i.e. the
//cartesian coordinates of a point in 3D space.
type Matrix struct {
	*mat.Dense
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
//data is used as the backing slice, it is not copied.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice lenght %d not divisible by %d: %d", l, cols, l%cols), []string{"NewMatrix"}, true}
	}
	if rows == 0 {
		return nil, Error{"Empty input slice", []string{"NewMatrix"}, true}
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

//FromVecs builds a Matrix with one row per vector in vecs.
func FromVecs(vecs []r3.Vec) (*Matrix, error) {
	data := make([]float64, 0, 3*len(vecs))
	for _, v := range vecs {
		data = append(data, v.X, v.Y, v.Z)
	}
	M, err := NewMatrix(data)
	if err != nil {
		return nil, errDecorate(err, "FromVecs")
	}
	return M, nil
}

//View returns a view of r vectors of F starting from the ith.
//Changes in the view are reflected in F and vice-versa.
func (F *Matrix) View(i, r int) *Matrix {
	ret := F.Dense.Slice(i, i+r, 0, 3).(*mat.Dense)
	return &Matrix{ret}
}

//SVD returns the U, singular values and V of the full SVD of A.
//It returns an error if the factorization fails.
func SVD(A mat.Matrix) (*mat.Dense, []float64, *mat.Dense, error) {
	var svd mat.SVD
	if ok := svd.Factorize(A, mat.SVDFull); !ok {
		return nil, nil, nil, Error{"SVD factorization failed", []string{"SVD"}, true}
	}
	U := new(mat.Dense)
	V := new(mat.Dense)
	svd.UTo(U)
	svd.VTo(V)
	return U, svd.Values(nil), V, nil
}

//Det returns the determinant of the square matrix A.
func Det(A mat.Matrix) float64 {
	return mat.Det(A)
}

//Error is the error type for the v3 package. The Decorate method allows
//adding the name of functions in the calling stack as the error is passed up.
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

//errDecorate adds the caller's name to a v3 Error. Other errors are returned untouched.
func errDecorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.deco = append(e.deco, caller)
		return e
	}
	return err
}

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("gocavity/v3: A VecMatrix should have 3 columns")
	ErrShape           = PanicMsg("gocavity/v3: Dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("gocavity/v3: Index out of range")
)
