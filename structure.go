/*
 * structure.go, part of gowannier.
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

//Site is an atomic site of a crystal structure, in Cartesian coordinates (A).
type Site struct {
	Kind     string
	Position [3]float64
}

//Structure is a periodic crystal structure. Cell contains the three
//lattice vectors (A) as rows.
type Structure struct {
	Cell  *v3.Matrix
	Sites []Site
}

//NewStructure returns a structure with the given lattice vectors and no sites.
func NewStructure(cell [3][3]float64) *Structure {
	c, _ := v3.FromVecs(cell[:]) //never empty
	return &Structure{Cell: c}
}

//AddSite appends a site of the given kind to the structure, and returns the structure.
func (S *Structure) AddSite(kind string, position [3]float64) *Structure {
	S.Sites = append(S.Sites, Site{Kind: kind, Position: position})
	return S
}

//SitesOfKind returns the positions of all the sites with the given kind name,
//in the order they were added.
func (S *Structure) SitesOfKind(kind string) [][3]float64 {
	ret := make([][3]float64, 0, 2)
	for _, v := range S.Sites {
		if v.Kind == kind {
			ret = append(ret, v.Position)
		}
	}
	return ret
}

//Kinds returns the distinct kind names in the structure, in order of first appearance.
func (S *Structure) Kinds() []string {
	seen := make(map[string]bool)
	ret := make([]string, 0, len(S.Sites))
	for _, v := range S.Sites {
		if !seen[v.Kind] {
			seen[v.Kind] = true
			ret = append(ret, v.Kind)
		}
	}
	return ret
}

//Check returns an error if the structure can't be written to an input file.
func (S *Structure) Check() error {
	if S.Cell == nil || S.Cell.NVecs() != 3 {
		return NewError(Specification, "the cell must contain exactly 3 lattice vectors", "", "Structure.Check")
	}
	for i, v := range S.Sites {
		if v.Kind == "" {
			return NewError(Specification, fmt.Sprintf("site %d has no kind name", i), "", "Structure.Check")
		}
	}
	return nil
}
