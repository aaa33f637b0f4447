/*
 * win.go, part of gowannier.
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

//Package win writes Wannier90 input (.win) files.
//
//The document is built completely in memory before anything is written, and the same
//input always produces the same bytes: parameters and blocks are written in
//lexicographic order, and all numbers use fixed formats.
package win

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rmera/gowannier"
	"github.com/rmera/gowannier/v3"
)

//BlockedKeys are the parameters that can't be given directly, as they are
//written from other fields of an Input.
var BlockedKeys = []string{"length_unit", "unit_cell_cart", "atoms_cart", "projections", "postproc_setup"}

//Input is everything needed to write a .win file. Only one of KPath and BandsKPoints can be given.
type Input struct {
	Structure    *gowannier.Structure
	KPoints      *gowannier.KPoints
	KPath        *gowannier.KPath
	BandsKPoints *gowannier.LabeledKPoints
	Params       Params
	Projections  Projections
	//Ask Wannier90 to complete the projections with random ones.
	RandomProjections bool
	//Run Wannier90 in post-processing setup mode (wannier90 -pp), which writes the .nnkp file.
	PostprocSetup bool
	//The input is for postw90.x, which has no post-processing setup mode.
	Postw90 bool
}

func specError(caller, format string, args ...interface{}) error {
	return gowannier.NewError(gowannier.Specification, fmt.Sprintf(format, args...), "", caller)
}

//Validate returns an error if I can't be written.
func (I *Input) Validate() error {
	params, err := I.Params.Lower()
	if err != nil {
		return gowannier.ErrDecorate(err, "Input.Validate")
	}
	blocked := make([]string, 0, 1)
	for _, k := range BlockedKeys {
		if _, ok := params[k]; ok {
			blocked = append(blocked, k)
		}
	}
	if len(blocked) > 0 {
		return specError("Input.Validate", "the following blocked keys were found in the parameters: %s", strings.Join(blocked, ", "))
	}
	if I.Postw90 && I.PostprocSetup {
		return specError("Input.Validate", "postw90.x can't be run with postproc_setup")
	}
	if I.KPath != nil && I.BandsKPoints != nil {
		return specError("Input.Validate", "a k-point path and explicit band k-points can't be given together")
	}
	if I.KPath != nil {
		if err := I.KPath.Check(); err != nil {
			return gowannier.ErrDecorate(err, "Input.Validate")
		}
	}
	if I.BandsKPoints != nil {
		if err := I.BandsKPoints.Check(); err != nil {
			return gowannier.ErrDecorate(err, "Input.Validate")
		}
	}
	if bp, ok := I.Params.Get("bands_plot"); ok {
		if b, isbool := bp.(bool); isbool && b && I.KPath == nil && I.BandsKPoints == nil {
			return specError("Input.Validate", "bands_plot is true but no k-point path or band k-points were given")
		}
	}
	if I.Structure != nil {
		if err := I.Structure.Check(); err != nil {
			return gowannier.ErrDecorate(err, "Input.Validate")
		}
	}
	if I.Projections.Kind() == RawProjections && I.RandomProjections {
		return specError("Input.Validate", `random completion can't be requested together with raw projections, use "random" as their first line instead`)
	}
	return nil
}

func vecLine(v [3]float64, format string) string {
	return fmt.Sprintf(format+" "+format+" "+format, v[0], v[1], v[2])
}

func unitCell(s *gowannier.Structure) []string {
	ret := []string{"ang"}
	for _, v := range s.Cell.Vecs() {
		ret = append(ret, vecLine(v, "%18.10f"))
	}
	return ret
}

func atomsCart(s *gowannier.Structure) []string {
	ret := []string{"ang"}
	for _, site := range s.Sites {
		ret = append(ret, fmt.Sprintf("%s   %s ", site.Kind, vecLine(site.Position, "%18.10f")))
	}
	return ret
}

func kpointLines(m *v3.Matrix) []string {
	ret := make([]string, 0, m.NVecs())
	for _, v := range m.Vecs() {
		ret = append(ret, vecLine(v, "%18.10f"))
	}
	return ret
}

func kpathLines(p *gowannier.KPath) []string {
	ret := make([]string, 0, len(p.Segments))
	for _, s := range p.Segments {
		c1 := p.Coords[s.Start]
		c2 := p.Coords[s.End]
		ret = append(ret, fmt.Sprintf("%s %s  %s %s", s.Start, vecLine(c1, "%14.10f"), s.End, vecLine(c2, "%14.10f")))
	}
	return ret
}

func explicitKPath(b *gowannier.LabeledKPoints) ([]string, []string) {
	path := kpointLines(b.Points)
	idx := make([]int, len(b.Labels))
	for i, l := range b.Labels {
		idx[i] = l.Index
	}
	special := v3.Zeros(len(idx))
	special.SomeVecs(b.Points, idx)
	labels := make([]string, 0, len(b.Labels))
	for i, l := range b.Labels {
		labels = append(labels, fmt.Sprintf("%s %s", l.Name, vecLine(special.Vec(i), "%18.10f")))
	}
	return path, labels
}

//Build returns the content of the .win file for in.
func Build(in *Input) (string, error) {
	if err := in.Validate(); err != nil {
		return "", gowannier.ErrDecorate(err, "Build")
	}
	params, err := in.Params.Lower()
	if err != nil {
		return "", gowannier.ErrDecorate(err, "Build")
	}
	if in.PostprocSetup {
		params["postproc_setup"] = true
	}
	if in.KPoints != nil && in.KPoints.IsMesh() {
		if _, ok := params["mp_grid"]; !ok {
			params["mp_grid"] = *in.KPoints.Mesh
		}
	}
	lines, err := params.lines()
	if err != nil {
		return "", gowannier.ErrDecorate(err, "Build")
	}
	blocks := make(map[string][]string)
	if blocks["projections"], err = in.Projections.lines(in.RandomProjections); err != nil {
		return "", gowannier.ErrDecorate(err, "Build")
	}
	if in.Structure != nil {
		blocks["unit_cell_cart"] = unitCell(in.Structure)
		blocks["atoms_cart"] = atomsCart(in.Structure)
	}
	if in.KPoints != nil {
		kp, err := in.KPoints.List()
		if err != nil {
			return "", gowannier.ErrDecorate(err, "Build")
		}
		blocks["kpoints"] = kpointLines(kp)
	}
	if in.KPath != nil {
		blocks["kpoint_path"] = kpathLines(in.KPath)
	} else if in.BandsKPoints != nil {
		blocks["explicit_kpath"], blocks["explicit_kpath_labels"] = explicitKPath(in.BandsKPoints)
	}
	names := make([]string, 0, len(blocks))
	for k := range blocks {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, name := range names {
		lines = append(lines, "", "begin "+name)
		lines = append(lines, blocks[name]...)
		lines = append(lines, "end "+name)
	}
	return strings.Join(lines, "\n") + "\n", nil
}

//Write builds the .win file for in and writes it to w. Nothing is written if the build fails.
func Write(w io.Writer, in *Input) error {
	doc, err := Build(in)
	if err != nil {
		return gowannier.ErrDecorate(err, "Write")
	}
	if _, err = io.WriteString(w, doc); err != nil {
		return gowannier.NewError(gowannier.IO, "can't write input", "", "Write").Wrap(err)
	}
	return nil
}

//WriteFile builds the .win file for in and writes it to the file name.
//The file is replaced only if the whole document could be built and written.
func WriteFile(name string, in *Input) error {
	if !strings.HasSuffix(name, ".win") {
		return specError("WriteFile", "the input file name must end with .win, not %q", name)
	}
	doc, err := Build(in)
	if err != nil {
		return gowannier.ErrDecorate(err, "WriteFile")
	}
	//an existing file keeps its permissions.
	mode := os.FileMode(0644)
	if info, serr := os.Stat(name); serr == nil {
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*")
	if err != nil {
		return gowannier.NewError(gowannier.IO, "can't create temporary file", name, "WriteFile").Wrap(err)
	}
	_, err = tmp.WriteString(doc)
	if err == nil {
		err = tmp.Chmod(mode)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), name)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return gowannier.NewError(gowannier.IO, "can't write input file", name, "WriteFile").Wrap(err)
	}
	return nil
}
