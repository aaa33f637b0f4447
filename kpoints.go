/*
 * kpoints.go, part of gowannier.
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

package gowannier

import (
	"fmt"

	"github.com/rmera/gowannier/v3"
)

//KPoints is either a Monkhorst-Pack style mesh or an explicit list
//of k-points in fractional (crystal) coordinates.
//If Mesh is not nil, it takes precedence over Points.
type KPoints struct {
	Mesh   *[3]int
	Offset [3]float64 //in units of the mesh spacing. Only used with Mesh.
	Points *v3.Matrix
}

//NewMesh returns a k-point mesh with no offset.
func NewMesh(n1, n2, n3 int) *KPoints {
	return &KPoints{Mesh: &[3]int{n1, n2, n3}}
}

//NewKPointList returns an explicit list of k-points. It returns an error
//if points is empty.
func NewKPointList(points [][3]float64) (*KPoints, error) {
	m, err := v3.FromVecs(points)
	if err != nil {
		return nil, NewError(Specification, "no k-points given", "", "NewKPointList").Wrap(err)
	}
	return &KPoints{Points: m}, nil
}

//IsMesh returns true if K is defined by a mesh.
func (K *KPoints) IsMesh() bool {
	return K.Mesh != nil
}

//List returns the explicit k-points. A mesh is expanded, with point (i,j,k) at
//((i+o1)/n1, (j+o2)/n2, (k+o3)/n3), the last index running fastest.
func (K *KPoints) List() (*v3.Matrix, error) {
	if K.Mesh == nil {
		if K.Points == nil || K.Points.NVecs() == 0 {
			return nil, NewError(Specification, "no k-points given", "", "KPoints.List")
		}
		return K.Points, nil
	}
	m := *K.Mesh
	for _, v := range m {
		if v <= 0 {
			return nil, NewError(Specification, fmt.Sprintf("invalid k-point mesh %v", m), "", "KPoints.List")
		}
	}
	ret := v3.Zeros(m[0] * m[1] * m[2])
	n := 0
	for i := 0; i < m[0]; i++ {
		for j := 0; j < m[1]; j++ {
			for k := 0; k < m[2]; k++ {
				ret.SetVec(n, [3]float64{
					(float64(i) + K.Offset[0]) / float64(m[0]),
					(float64(j) + K.Offset[1]) / float64(m[1]),
					(float64(k) + K.Offset[2]) / float64(m[2]),
				})
				n++
			}
		}
	}
	return ret, nil
}

//Label assigns a name to the k-point with the given (0-based) index.
type Label struct {
	Index int
	Name  string
}

//Segment is a straight line in reciprocal space between two special points.
type Segment struct {
	Start string
	End   string
}

//KPath is a path along special points in reciprocal space, given as an ordered list of
//segments and the fractional coordinates of each special point.
type KPath struct {
	Segments []Segment
	Coords   map[string][3]float64
}

//NewKPath returns a path built from the given segments and point coordinates.
func NewKPath(coords map[string][3]float64, segments ...Segment) *KPath {
	return &KPath{Segments: segments, Coords: coords}
}

//Check returns an error if any point in the path lacks coordinates.
func (P *KPath) Check() error {
	if len(P.Segments) == 0 {
		return NewError(Specification, "empty k-point path", "", "KPath.Check")
	}
	for _, s := range P.Segments {
		for _, l := range []string{s.Start, s.End} {
			if _, ok := P.Coords[l]; !ok {
				return NewError(Specification, fmt.Sprintf("no coordinates for point %q of the k-point path", l), "", "KPath.Check")
			}
		}
	}
	return nil
}

//LabeledKPoints is an explicit list of k-points with some of them labeled.
type LabeledKPoints struct {
	Points *v3.Matrix
	Labels []Label
}

//Check returns an error if L has no labels, or if a label points outside the list.
func (L *LabeledKPoints) Check() error {
	if L.Points == nil || L.Points.NVecs() == 0 {
		return NewError(Specification, "no band k-points given", "", "LabeledKPoints.Check")
	}
	if len(L.Labels) == 0 {
		return NewError(Specification, "the band k-points must be labeled", "", "LabeledKPoints.Check")
	}
	for _, l := range L.Labels {
		if l.Index < 0 || l.Index >= L.Points.NVecs() {
			return NewError(Specification, fmt.Sprintf("label %q points to k-point %d, out of range", l.Name, l.Index), "", "LabeledKPoints.Check")
		}
	}
	return nil
}
