/*
 * table.go, part of gowannier.
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

package orbital

import (
	"fmt"
	"strings"

	"github.com/rmera/gowannier"
)

//LM is an angular momentum/magnetic number pair. MR is 0-based.
type LM struct {
	L  int
	MR int
}

//Table resolves orbital names into angular momentum/magnetic number pairs.
type Table interface {
	QuantumNumbers(name string) ([]LM, error)
}

//MapTable is a Table backed by a map with lower-case keys. Look-ups are case-insensitive.
type MapTable map[string][]LM

func (M MapTable) QuantumNumbers(name string) ([]LM, error) {
	lm, ok := M[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, gowannier.NewError(gowannier.Specification, fmt.Sprintf("unknown orbital name %q", name), "", "MapTable.QuantumNumbers")
	}
	ret := make([]LM, len(lm))
	copy(ret, lm)
	return ret, nil
}

//DefaultTable contains the orbital names of the Wannier90 user guide
//(chapter 3, "projections").
var DefaultTable Table = defaultTable()

func defaultTable() MapTable {
	t := MapTable{}
	shell := func(name string, l int, members ...string) {
		all := make([]LM, 0, len(members))
		for i, m := range members {
			t[m] = []LM{{L: l, MR: i}}
			all = append(all, LM{L: l, MR: i})
		}
		t[name] = all
	}
	shell("s", 0, "s")
	shell("p", 1, "pz", "px", "py")
	shell("d", 2, "dz2", "dxz", "dyz", "dx2-y2", "dxy")
	shell("f", 3, "fz3", "fxz2", "fyz2", "fz(x2-y2)", "fxyz", "fx(x2-3y2)", "fy(3x2-y2)")
	shell("sp", -1, "sp-1", "sp-2")
	shell("sp2", -2, "sp2-1", "sp2-2", "sp2-3")
	shell("sp3", -3, "sp3-1", "sp3-2", "sp3-3", "sp3-4")
	shell("sp3d", -4, "sp3d-1", "sp3d-2", "sp3d-3", "sp3d-4", "sp3d-5")
	shell("sp3d2", -5, "sp3d2-1", "sp3d2-2", "sp3d2-3", "sp3d2-4", "sp3d2-5", "sp3d2-6")
	return t
}
