/*
 * bands.go, part of gowannier.
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

//Package bands rebuilds labeled band structures from the files written by Wannier90
//when bands_plot is set: SEEDNAME_band.kpt, SEEDNAME_band.dat and, for Wannier90 3.0 or
//newer, SEEDNAME_band.labelinfo.dat.
//
//Malformed values and lines are recorded as warnings, never as errors, as these
//files may come from crashed runs.
package bands

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/rmera/gowannier"
	"github.com/rmera/gowannier/v3"
	"gonum.org/v1/gonum/mat"
)

//Structure is a band structure: N k-points, the energies (eV) of M bands
//at each of them, as an NxM matrix, and labels for some k-points, sorted by index.
type Structure struct {
	KPoints *v3.Matrix
	Bands   *mat.Dense
	Labels  []gowannier.Label
}

//NBands returns the number of bands in S.
func (S *Structure) NBands() int {
	_, c := S.Bands.Dims()
	return c
}

//Band returns a copy of the energies of the band b along the path.
func (S *Structure) Band(b int) []float64 {
	return mat.Col(nil, b, S.Bands)
}

//HeuristicWarning is prepended to the warnings when labels have to be guessed from
//the k-point coordinates.
const HeuristicWarning = "Note: no file named SEEDNAME_band.labelinfo.dat found. " +
	"You are probably using a version of Wannier90 before 3.0. " +
	"There, the labels associated with each k-points were not printed in output " +
	"and there were also cases in which points were not calculated " +
	"(see issue #195 on the Wannier90 GitHub page). " +
	"I will anyway try to do my best to assign labels, " +
	"but the assignment might be wrong " +
	"(especially if there are path discontinuities)."

//DefaultTolerance is the absolute tolerance for matching k-point coordinates to special points.
//The coordinates in the .kpt file are printed with fixed precision.
const DefaultTolerance = 1e-5

func fields(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool { return unicode.IsSpace(r) || r == ',' })
}

func parse(token string, lineno int, warnings *[]string) float64 {
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("Invalid number %q in line %d, set to NaN", token, lineno))
		return math.NaN()
	}
	return f
}

//ReadKPoints reads the lines of a _band.kpt file: a header line, and then
//the three fractional coordinates of one k-point per line.
func ReadKPoints(lines []string) (*v3.Matrix, []string, error) {
	warnings := make([]string, 0)
	data := make([]float64, 0, 3*len(lines))
	for i := 1; i < len(lines); i++ {
		f := fields(lines[i])
		if len(f) == 0 {
			continue
		}
		if len(f) < 3 {
			warnings = append(warnings, fmt.Sprintf("Wrong number of items in line %d of the k-point file, line skipped", i+1))
			continue
		}
		for _, t := range f[:3] {
			data = append(data, parse(t, i+1, &warnings))
		}
	}
	if len(data) == 0 {
		return nil, warnings, gowannier.NewError(gowannier.Structural, "no k-points found", "", "ReadKPoints")
	}
	m, err := v3.NewMatrix(data)
	if err != nil {
		return nil, warnings, gowannier.NewError(gowannier.Structural, "can't build k-point matrix", "", "ReadKPoints").Wrap(err)
	}
	return m, warnings, nil
}

//ReadEnergies reads the lines of a _band.dat file. Each non-blank line contains
//the path length and the energy; the energy is the last of the two first columns.
func ReadEnergies(lines []string) ([]float64, []string, error) {
	warnings := make([]string, 0)
	ret := make([]float64, 0, len(lines))
	for i, line := range lines {
		f := fields(line)
		switch len(f) {
		case 0:
			continue
		case 1:
			ret = append(ret, parse(f[0], i+1, &warnings))
		default:
			ret = append(ret, parse(f[1], i+1, &warnings))
		}
	}
	if len(ret) == 0 {
		return nil, warnings, gowannier.NewError(gowannier.Structural, "no energies found", "", "ReadEnergies")
	}
	return ret, warnings, nil
}

//Reshape returns the nkpoints x (len(energies)/nkpoints) matrix of energies. Wannier90
//writes the whole path for one band before the next band, so the matrix is filled column by column.
func Reshape(nkpoints int, energies []float64) (*mat.Dense, error) {
	if nkpoints <= 0 || len(energies) == 0 || len(energies)%nkpoints != 0 {
		return nil, gowannier.NewError(gowannier.Structural, fmt.Sprintf("%d energies can't be distributed among %d k-points", len(energies), nkpoints), "", "Reshape")
	}
	nbands := len(energies) / nkpoints
	//column-major data is the row-major data of the transpose.
	t := mat.NewDense(nbands, nkpoints, append([]float64(nil), energies...))
	return mat.DenseCopyOf(t.T()), nil
}

//read parses the k-point and energy files into an unlabeled structure.
func read(kpt, dat []string) (*Structure, []string, error) {
	k, warnings, err := ReadKPoints(kpt)
	if err != nil {
		return nil, warnings, err
	}
	e, w, err := ReadEnergies(dat)
	warnings = append(warnings, w...)
	if err != nil {
		return nil, warnings, err
	}
	b, err := Reshape(k.NVecs(), e)
	if err != nil {
		return nil, warnings, err
	}
	return &Structure{KPoints: k, Bands: b, Labels: []gowannier.Label{}}, warnings, nil
}

//Direct builds a band structure from the lines of the _band.kpt, _band.dat and
//_band.labelinfo.dat files. Each labelinfo line contains a label, the 1-based index of
//its k-point, its path length and its coordinates. Lines that can't be read are skipped
//with a warning. If an index is labeled more than once, the first label is kept.
func Direct(kpt, dat, labelinfo []string) (*Structure, []string, error) {
	s, warnings, err := read(kpt, dat)
	if err != nil {
		return nil, warnings, gowannier.ErrDecorate(err, "Direct")
	}
	labels := make(map[int]string)
	for i, line := range labelinfo {
		f := fields(line)
		if len(f) == 0 {
			continue
		}
		if len(f) != 6 {
			warnings = append(warnings, fmt.Sprintf("Wrong number of items in line %d of the labelinfo file - I will not assign that label", i+1))
			continue
		}
		idx, err := strconv.Atoi(f[1])
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Invalid value for the index in line %d of the labelinfo file, it's not an integer - I will not assign that label", i+1))
			continue
		}
		if idx < 1 || idx > s.KPoints.NVecs() {
			warnings = append(warnings, fmt.Sprintf("Index %d in line %d of the labelinfo file is out of range - I will not assign that label", idx, i+1))
			continue
		}
		if _, ok := labels[idx-1]; !ok {
			labels[idx-1] = f[0]
		}
	}
	for k, v := range labels {
		s.Labels = append(s.Labels, gowannier.Label{Index: k, Name: v})
	}
	sort.Slice(s.Labels, func(i, j int) bool { return s.Labels[i].Index < s.Labels[j].Index })
	return s, warnings, nil
}
