/*
 * gocoords.go, part of gowannier.
 *
 * Copyright 2024 gowannier contributors
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
 */

package v3

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//METHODS

//NVecs return the number of vecs in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r

}

//Vec returns a copy of the ith vector of F.
func (F *Matrix) Vec(i int) [3]float64 {
	if i >= F.NVecs() || i < 0 {
		panic(ErrIndexOutOfRange)
	}
	var ret [3]float64
	copy(ret[:], F.RawRowView(i))
	return ret
}

//SetVec sets the ith vector of F to v.
func (F *Matrix) SetVec(i int, v [3]float64) {
	if i >= F.NVecs() || i < 0 {
		panic(ErrIndexOutOfRange)
	}
	copy(F.RawRowView(i), v[:])
}

//Vecs returns a copy of all the vectors in F.
func (F *Matrix) Vecs() [][3]float64 {
	ret := make([][3]float64, F.NVecs())
	for i := range ret {
		ret[i] = F.Vec(i)
	}
	return ret
}

//SomeVecs puts in the received all the ith vectors of matrix A,
//where i are the numbers in clist. The vectors are in the same order
//than the clist.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	ar, ac := A.Dims()
	fr, fc := F.Dims()
	if ac != fc || fr != len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		if val >= ar || val < 0 {
			panic(ErrIndexOutOfRange)
		}
		for j := 0; j < ac; j++ {
			F.Set(key, j, A.At(val, j))
		}
	}
}

//VecApprox returns true if every component of the ith vector of F is
//within the absolute tolerance tol from the corresponding component of v.
func (F *Matrix) VecApprox(i int, v [3]float64, tol float64) bool {
	if tol < 0 {
		tol = appzero
	}
	return floats.EqualFunc(F.RawRowView(i), v[:], func(a, b float64) bool {
		return scalar.EqualWithinAbs(a, b, tol)
	})
}

//PathLengths returns, for each vector in F, the accumulated euclidean
//distance walked from the first vector, visiting all vectors in order.
func (F *Matrix) PathLengths() []float64 {
	n := F.NVecs()
	ret := make([]float64, n)
	for i := 1; i < n; i++ {
		ret[i] = ret[i-1] + floats.Distance(F.RawRowView(i-1), F.RawRowView(i), 2)
	}
	return ret
}

//Returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r, c := F.Dims()
	v := make([]string, r+2)
	v[0] = "\n["
	v[len(v)-1] = " ]"
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, F.Dense)
		if i == 0 {
			v[i+1] = fmt.Sprintf("%6.2f %6.2f %6.2f\n", row[0], row[1], row[2])
			continue
		}
		v[i+1] = fmt.Sprintf(" %6.2f %6.2f %6.2f\n", row[0], row[1], row[2])
	}
	v[len(v)-2] = strings.Replace(v[len(v)-2], "\n", "", 1)
	return strings.Join(v, "")
}
