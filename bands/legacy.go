/*
 * legacy.go, part of gowannier.
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

package bands

import (
	"fmt"
	"sort"

	"github.com/rmera/gowannier"
)

//insertion is a label to be inserted at position pos of the label list.
type insertion struct {
	pos   int
	label gowannier.Label
}

//Legacy builds a band structure from the lines of the _band.kpt and _band.dat files
//written by Wannier90 versions older than 3.0, which lack the labelinfo file.
//Labels are assigned to the k-points that match the coordinates of the special points
//of path within tol (DefaultTolerance if not given). Where the path is discontinuous, a
//missing label is guessed next to the jump. The assignment is a heuristic, which can be
//wrong for consecutive discontinuities, and HeuristicWarning is always the first warning returned.
func Legacy(kpt, dat []string, path *gowannier.KPath, tol ...float64) (*Structure, []string, error) {
	warnings := []string{HeuristicWarning}
	s, w, err := read(kpt, dat)
	warnings = append(warnings, w...)
	if err != nil {
		return nil, warnings, gowannier.ErrDecorate(err, "Legacy")
	}
	if path == nil {
		return nil, warnings, gowannier.NewError(gowannier.Specification, "a k-point path is needed to assign labels", "", "Legacy")
	}
	t := DefaultTolerance
	if len(tol) > 0 {
		t = tol[0]
	}
	labels := Matches(s, path.Coords, t)
	appends := make([]insertion, 0, 2)
	nk := s.KPoints.NVecs()
	for i := 1; i < len(path.Segments); i++ {
		before := path.Segments[i-1].End
		after := path.Segments[i].Start
		if before == after {
			continue
		}
		if i >= len(labels) {
			warnings = append(warnings, fmt.Sprintf("Can't assign labels around the discontinuity %s|%s: only %d special points found", before, after, len(labels)))
			continue
		}
		cur := labels[i]
		if cur.Name != before && labels[i-1].Name != before {
			appends = append(appends, insertion{i, gowannier.Label{Index: cur.Index - 1, Name: before}})
		}
		if cur.Name != after && (i+1 >= len(labels) || labels[i+1].Name != after) {
			appends = append(appends, insertion{i + 1, gowannier.Label{Index: cur.Index + 1, Name: after}})
		}
	}
	sort.Slice(appends, func(i, j int) bool {
		a, b := appends[i], appends[j]
		if a.pos != b.pos {
			return a.pos < b.pos
		}
		if a.label.Name != b.label.Name {
			return a.label.Name < b.label.Name
		}
		return a.label.Index < b.label.Index
	})
	for n, a := range appends {
		if a.label.Index < 0 || a.label.Index >= nk {
			warnings = append(warnings, fmt.Sprintf("Guessed label %s at k-point %d is out of range, not assigned", a.label.Name, a.label.Index))
		}
		p := a.pos + n
		labels = append(labels, gowannier.Label{})
		copy(labels[p+1:], labels[p:])
		labels[p] = a.label
	}
	s.Labels = make([]gowannier.Label, 0, len(labels))
	for _, l := range labels {
		if l.Index >= 0 && l.Index < nk {
			s.Labels = append(s.Labels, l)
		}
	}
	return s, warnings, nil
}

//Matches returns the k-points of s that are within tol of the special points in coords,
//sorted by index and then by name.
func Matches(s *Structure, coords map[string][3]float64, tol float64) []gowannier.Label {
	ret := make([]gowannier.Label, 0, len(coords))
	for name, c := range coords {
		for i := 0; i < s.KPoints.NVecs(); i++ {
			if s.KPoints.VecApprox(i, c, tol) {
				ret = append(ret, gowannier.Label{Index: i, Name: name})
			}
		}
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Index != ret[j].Index {
			return ret[i].Index < ret[j].Index
		}
		return ret[i].Name < ret[j].Name
	})
	return ret
}
