/*
 * win_test.go, part of gowannier.
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

package win

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rmera/gowannier"
	"github.com/rmera/gowannier/orbital"
	"github.com/rmera/gowannier/v3"
)

func simpleInput(Te *testing.T) *Input {
	s := gowannier.NewStructure([3][3]float64{{1, 0, 0}, {0, 2, 0}, {-2.8, 0, 3}})
	s.AddSite("Ga", [3]float64{0, 0, 0}).AddSite("As", [3]float64{0.25, 0.5, 0.75})
	zero := [3]float64{}
	pos := [3]float64{0.25, 0.5, 0.75}
	z := [3]float64{0, 0, 1}
	radial := 2
	zona := 1.5
	orbs, err := orbital.ExpandAll([]orbital.Spec{
		{Position: &zero, Names: []string{"s"}},
		{Position: &pos, L: []int{-3}, MR: []int{2}, ZAxis: &z, Radial: &radial, Zona: &zona, Spin: []string{"U"}, SpinAxis: &z},
	}, s, nil)
	if err != nil {
		Te.Fatal(err)
	}
	return &Input{
		Structure: s,
		KPoints:   gowannier.NewMesh(1, 1, 2),
		KPath: gowannier.NewKPath(map[string][3]float64{"G": {0, 0, 0}, "X": {0.5, 0, 0}, "L": {0.5, 0.5, 0.5}},
			gowannier.Segment{Start: "G", End: "X"}, gowannier.Segment{Start: "X", End: "L"}),
		Params: Params{
			"num_wann":      4,
			"Num_Iter":      int64(12),
			"dis_win_max":   10.0,
			"write_hr":      true,
			"conv_tol":      1e-7,
			"restart":       "plot",
			"exclude_bands": []int{8, 1, 2, 3, 5, 6},
		},
		Projections:       Orbitals(orbs),
		RandomProjections: true,
	}
}

func TestBuild(Te *testing.T) {
	expected, err := os.ReadFile("../test/simple.win")
	if err != nil {
		Te.Fatal(err)
	}
	doc, err := Build(simpleInput(Te))
	if err != nil {
		Te.Fatal(err)
	}
	if diff := cmp.Diff(strings.Split(string(expected), "\n"), strings.Split(doc, "\n")); diff != "" {
		Te.Errorf("win document mismatch (-want +got):\n%s", diff)
	}
}

func TestDeterminism(Te *testing.T) {
	in1 := &Input{Params: Params{}, KPoints: gowannier.NewMesh(2, 2, 2)}
	in2 := &Input{Params: Params{}, KPoints: gowannier.NewMesh(2, 2, 2)}
	keys := []string{"num_wann", "num_bands", "dis_froz_max", "guiding_centres", "iprint"}
	vals := []interface{}{8, 12, 3.5, false, 1}
	for i := range keys {
		in1.Params[keys[i]] = vals[i]
		j := len(keys) - 1 - i
		in2.Params[keys[j]] = vals[j]
	}
	d1, err := Build(in1)
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		d2, err := Build(in2)
		if err != nil {
			Te.Fatal(err)
		}
		if d1 != d2 {
			Te.Fatalf("documents differ:\n%s\n%s", d1, d2)
		}
	}
	if !strings.Contains(d1, "mp_grid = 2, 2, 2\n") {
		Te.Errorf("mp_grid should default to the k-point mesh:\n%s", d1)
	}
	in1.Params["MP_GRID"] = []int{4, 4, 4}
	d1, _ = Build(in1)
	if !strings.Contains(d1, "mp_grid = 4, 4, 4\n") {
		Te.Errorf("a given mp_grid should not be replaced:\n%s", d1)
	}
}

func TestFormatValue(Te *testing.T) {
	cases := []struct {
		v        interface{}
		quote    bool
		expected string
	}{
		{true, false, ".true."},
		{false, true, ".false."},
		{int32(-3), false, "-3"},
		{uint(7), false, "7"},
		{0.5, false, "  5.0000000000d-01"},
		{-1.25e-12, false, " -1.2500000000d-12"},
		{"ang", false, "ang"},
		{"ang", true, "'ang'"},
		{[]int{1, 2, 3}, false, "1, 2, 3"},
		{[]interface{}{"a", 1.0, true}, true, "'a',   1.0000000000d+00, .true."},
	}
	for _, c := range cases {
		s, err := FormatValue(c.v, c.quote)
		if err != nil {
			Te.Errorf("%v: %v", c.v, err)
			continue
		}
		if s != c.expected {
			Te.Errorf("%v: expected %q, got %q", c.v, c.expected, s)
		}
	}
	for _, v := range []interface{}{nil, map[string]int{}, []interface{}{[]int{1}}, struct{}{}} {
		if _, err := FormatValue(v, false); !gowannier.IsKind(err, gowannier.Specification) {
			Te.Errorf("%v should be rejected, got %v", v, err)
		}
	}
}

func TestRanges(Te *testing.T) {
	cases := map[string][]int{
		"":          nil,
		"4":         {4},
		"1-3,5-6,8": {1, 2, 3, 5, 6, 8},
		"2-4,10":    {10, 4, 3, 2},
		"7":         {7, 7},
	}
	for expected, in := range cases {
		if s := CompressRanges(in); s != expected {
			Te.Errorf("%v: expected %q, got %q", in, expected, s)
		}
	}
	if diff := cmp.Diff([][]int{{1, 3}, {5, 6}, {8}}, GroupRanges([]int{6, 5, 8, 3, 2, 1})); diff != "" {
		Te.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestExcludeBands(Te *testing.T) {
	for _, bad := range []interface{}{[]int{1, 1}, []int{-1, 0}, []int{0}, "1-3", []float64{1}} {
		in := &Input{Params: Params{"exclude_bands": bad}}
		if _, err := Build(in); !gowannier.IsKind(err, gowannier.Specification) {
			Te.Errorf("exclude_bands %v should be rejected, got %v", bad, err)
		}
	}
	doc, err := Build(&Input{Params: Params{"exclude_bands": []interface{}{int64(1)}}})
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.HasPrefix(doc, "exclude_bands = 1\n") {
		Te.Errorf("unexpected document %q", doc)
	}
}

func TestProjections(Te *testing.T) {
	doc, err := Build(&Input{})
	if err != nil {
		Te.Fatal(err)
	}
	if doc != "\nbegin projections\nend projections\n" {
		Te.Errorf("unexpected empty document %q", doc)
	}
	doc, _ = Build(&Input{RandomProjections: true})
	if doc != "\nbegin projections\nrandom\nend projections\n" {
		Te.Errorf("unexpected random document %q", doc)
	}
	doc, _ = Build(&Input{Projections: Random()})
	if doc != "\nbegin projections\nrandom\nend projections\n" {
		Te.Errorf("unexpected random document %q", doc)
	}
	doc, _ = Build(&Input{Projections: Raw("Ga:sp3", "As:s")})
	if doc != "\nbegin projections\nGa:sp3\nAs:s\nend projections\n" {
		Te.Errorf("unexpected raw document %q", doc)
	}
	if _, err = Build(&Input{Projections: Raw("Ga:sp3"), RandomProjections: true}); !gowannier.IsKind(err, gowannier.Specification) {
		Te.Errorf("raw projections with random completion should be rejected, got %v", err)
	}
	p := Orbitals([]orbital.Record{{Position: [3]float64{1, 0, 0}, AngularMomentum: 1, MagneticNumber: 2, Spin: -1}})
	if p.Kind() != OrbitalProjections || p.Len() != 1 {
		Te.Errorf("unexpected projections %v %d", p.Kind(), p.Len())
	}
	doc, _ = Build(&Input{Projections: p})
	if !strings.Contains(doc, "\nc=1.0000000000,0.0000000000,0.0000000000:l=1,mr=3(d)\n") {
		Te.Errorf("unexpected orbital line in %q", doc)
	}
}

func TestValidate(Te *testing.T) {
	points, err := v3.FromVecs([][3]float64{{0, 0, 0}, {0.5, 0, 0}, {0.5, 0.5, 0}})
	if err != nil {
		Te.Fatal(err)
	}
	kp := &gowannier.LabeledKPoints{Points: points, Labels: []gowannier.Label{{Index: 0, Name: "G"}}}
	path := gowannier.NewKPath(map[string][3]float64{"G": {}, "X": {0.5, 0, 0}}, gowannier.Segment{Start: "G", End: "X"})
	bad := map[string]*Input{
		"blocked":         {Params: Params{"Length_Unit": "bohr"}},
		"blocked pp":      {Params: Params{"postproc_setup": true}},
		"collision":       {Params: Params{"num_wann": 1, "NUM_WANN": 2}},
		"both paths":      {KPath: path, BandsKPoints: kp},
		"bands_plot":      {Params: Params{"bands_plot": true}},
		"Bands_Plot":      {Params: Params{"Bands_Plot": true}},
		"postw90 pp":      {Postw90: true, PostprocSetup: true},
		"unlabeled bands": {BandsKPoints: &gowannier.LabeledKPoints{Points: kp.Points}},
		"bad label":       {BandsKPoints: &gowannier.LabeledKPoints{Points: kp.Points, Labels: []gowannier.Label{{Index: 3, Name: "X"}}}},
	}
	for name, in := range bad {
		if err := in.Validate(); !gowannier.IsKind(err, gowannier.Specification) {
			Te.Errorf("%s: expected a specification error, got %v", name, err)
		}
		var b bytes.Buffer
		if err := Write(&b, in); err == nil || b.Len() != 0 {
			Te.Errorf("%s: nothing should be written for an invalid input", name)
		}
	}
	doc, err := Build(&Input{BandsKPoints: kp, Params: Params{"bands_plot": true}, PostprocSetup: true})
	if err != nil {
		Te.Fatal(err)
	}
	for _, s := range []string{"bands_plot = .true.\npostproc_setup = .true.\n", "begin explicit_kpath\n", "\nbegin explicit_kpath_labels\nG       0.0000000000       0.0000000000       0.0000000000\nend explicit_kpath_labels\n"} {
		if !strings.Contains(doc, s) {
			Te.Errorf("%q not found in document:\n%s", s, doc)
		}
	}
	if _, err = Build(&Input{BandsKPoints: kp, Postw90: true}); err != nil {
		Te.Errorf("a postw90 input without postproc_setup should be accepted: %v", err)
	}
	//labels keep their order, not the order of the points.
	kp.Labels = []gowannier.Label{{Index: 2, Name: "M"}, {Index: 0, Name: "G"}, {Index: 1, Name: "X"}}
	doc, err = Build(&Input{BandsKPoints: kp, Params: Params{"BANDS_PLOT": true}})
	if err != nil {
		Te.Fatal(err)
	}
	labels := "\nbegin explicit_kpath_labels\n" +
		"M       0.5000000000       0.5000000000       0.0000000000\n" +
		"G       0.0000000000       0.0000000000       0.0000000000\n" +
		"X       0.5000000000       0.0000000000       0.0000000000\n" +
		"end explicit_kpath_labels\n"
	if !strings.Contains(doc, labels) {
		Te.Errorf("%q not found in document:\n%s", labels, doc)
	}
}

func TestWriteFile(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "aiida.win")
	if err := WriteFile(name, simpleInput(Te)); err != nil {
		Te.Fatal(err)
	}
	written, err := os.ReadFile(name)
	if err != nil {
		Te.Fatal(err)
	}
	expected, _ := os.ReadFile("../test/simple.win")
	if string(written) != string(expected) {
		Te.Error("written file differs from the expected document")
	}
	in := simpleInput(Te)
	in.Params["atoms_cart"] = 1
	if err := WriteFile(name, in); err == nil {
		Te.Error("an invalid input should not be written")
	}
	written2, _ := os.ReadFile(name)
	if string(written2) != string(written) {
		Te.Error("a failed build should leave the previous file untouched")
	}
	info, err := os.Stat(name)
	if err != nil {
		Te.Fatal(err)
	}
	if info.Mode().Perm() != 0644 {
		Te.Errorf("expected mode 0644 for a new file, got %v", info.Mode().Perm())
	}
	if err := os.Chmod(name, 0640); err != nil {
		Te.Fatal(err)
	}
	if err := WriteFile(name, simpleInput(Te)); err != nil {
		Te.Fatal(err)
	}
	if info, _ = os.Stat(name); info.Mode().Perm() != 0640 {
		Te.Errorf("an overwritten file should keep its mode 0640, got %v", info.Mode().Perm())
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		Te.Errorf("temporary files left behind: %v", entries)
	}
	if err := WriteFile(filepath.Join(dir, "aiida.in"), simpleInput(Te)); err == nil {
		Te.Error("file names not ending in .win should be rejected")
	}
}
