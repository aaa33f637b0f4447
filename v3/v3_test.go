/*
 * v3_test.go, part of gowannier.
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
	"math"
	"testing"
)

func TestNewMatrix(Te *testing.T) {
	if _, err := NewMatrix([]float64{1, 2, 3, 4}); err == nil {
		Te.Error("a slice of 4 elements should not make a v3.Matrix")
	}
	if _, err := NewMatrix(nil); err == nil {
		Te.Error("an empty slice should not make a v3.Matrix")
	}
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 2 {
		Te.Errorf("expected 2 vectors, got %d", A.NVecs())
	}
	if A.Vec(1) != [3]float64{4, 5, 6} {
		Te.Errorf("wrong second vector %v", A.Vec(1))
	}
	A.SetVec(1, [3]float64{100, 5, 6})
	if A.At(1, 0) != 100 {
		Te.Error("SetVec did not change the matrix")
	}
}

func TestSomeVecs(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Fatal(err)
	}
	B := Zeros(3)
	cind := []int{5, 1, 3}
	B.SomeVecs(A, cind)
	if B.Vec(0) != [3]float64{16, 17, 18} || B.Vec(1) != [3]float64{4, 5, 6} {
		Te.Errorf("wrong vectors selected: %v", B)
	}
	defer func() {
		if r := recover(); r != ErrShape {
			Te.Errorf("expected a %q panic, got %v", ErrShape, r)
		}
	}()
	C := Zeros(2)
	C.SomeVecs(A, cind)
}

func TestVecApprox(Te *testing.T) {
	A, err := FromVecs([][3]float64{{0.5, 0, 0}, {0.5, 0.5, 0.5}})
	if err != nil {
		Te.Fatal(err)
	}
	if !A.VecApprox(0, [3]float64{0.500001, 0, -0.000004}, 1e-5) {
		Te.Error("vectors within tolerance reported as different")
	}
	if A.VecApprox(1, [3]float64{0.5, 0.5, 0.5001}, 1e-5) {
		Te.Error("vectors out of tolerance reported as equal")
	}
}

func TestPathLengths(Te *testing.T) {
	A, err := FromVecs([][3]float64{{0, 0, 0}, {3, 4, 0}, {3, 4, 1}})
	if err != nil {
		Te.Fatal(err)
	}
	l := A.PathLengths()
	want := []float64{0, 5, 6}
	for i := range want {
		if math.Abs(l[i]-want[i]) > 1e-12 {
			Te.Errorf("path length %d: got %f want %f", i, l[i], want[i])
		}
	}
}
