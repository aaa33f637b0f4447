/*
 * xsf.go, part of gowannier.
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

package wout

import (
	"fmt"
	"io"
	"strings"

	"github.com/rmera/gowannier"
)

//CentreSymbol is the element symbol given to the Wannier centres in an XSF file.
const CentreSymbol = "X"

const bohr2A = 0.529177210903

//WriteCentresXSF writes to w the structure S, plus the final Wannier centres in out
//as dummy atoms of kind CentreSymbol, in XCrySDen (XSF) format. The centres are
//converted to A if the output is in bohr.
func WriteCentresXSF(w io.Writer, S *gowannier.Structure, out *Output) error {
	if S == nil || S.Cell == nil {
		return gowannier.NewError(gowannier.Specification, "a structure is needed", "", "WriteCentresXSF")
	}
	if out == nil || len(out.Final) == 0 {
		return gowannier.NewError(gowannier.Specification, "no final Wannier centres in the output", "", "WriteCentresXSF")
	}
	factor := 1.0
	if strings.EqualFold(out.LengthUnits, "bohr") {
		factor = bohr2A
	}
	lines := make([]string, 0, 8+len(S.Sites)+len(out.Final))
	lines = append(lines, "CRYSTAL", "PRIMVEC")
	for _, v := range S.Cell.Vecs() {
		lines = append(lines, fmt.Sprintf(" %15.8f %15.8f %15.8f", v[0], v[1], v[2]))
	}
	lines = append(lines, "PRIMCOORD", fmt.Sprintf(" %d 1", len(S.Sites)+len(out.Final)))
	for _, s := range S.Sites {
		p := s.Position
		lines = append(lines, fmt.Sprintf("%-2s %15.8f %15.8f %15.8f", s.Kind, p[0], p[1], p[2]))
	}
	for _, f := range out.Final {
		var c [3]float64
		for i, v := range f.Centre {
			if v == nil {
				return gowannier.NewError(gowannier.Structural, fmt.Sprintf("the centre of Wannier function %d could not be read", f.ID), "", "WriteCentresXSF")
			}
			c[i] = *v * factor
		}
		lines = append(lines, fmt.Sprintf("%-2s %15.8f %15.8f %15.8f", CentreSymbol, c[0], c[1], c[2]))
	}
	if _, err := io.WriteString(w, strings.Join(lines, "\n")+"\n"); err != nil {
		return gowannier.NewError(gowannier.IO, "can't write XSF file", "", "WriteCentresXSF").Wrap(err)
	}
	return nil
}
