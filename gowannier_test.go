/*
 * gowannier_test.go, part of gowannier.
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
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMesh(Te *testing.T) {
	k := NewMesh(2, 1, 2)
	l, err := k.List()
	if err != nil {
		Te.Fatal(err)
	}
	expected := [][3]float64{
		{0, 0, 0},
		{0, 0, 0.5},
		{0.5, 0, 0},
		{0.5, 0, 0.5},
	}
	if diff := cmp.Diff(expected, l.Vecs()); diff != "" {
		Te.Errorf("mesh expansion mismatch (-want +got):\n%s", diff)
	}
	k.Offset = [3]float64{0.5, 0, 0}
	l, err = k.List()
	if err != nil {
		Te.Fatal(err)
	}
	if v := l.Vec(3); math.Abs(v[0]-0.75) > 1e-12 || math.Abs(v[2]-0.5) > 1e-12 {
		Te.Errorf("unexpected shifted point %v", v)
	}
	bad := NewMesh(2, 0, 2)
	if _, err := bad.List(); !IsKind(err, Specification) {
		Te.Errorf("expected a specification error for an invalid mesh, got %v", err)
	}
}

func TestKPointList(Te *testing.T) {
	if _, err := NewKPointList(nil); err == nil {
		Te.Error("an empty k-point list should be rejected")
	}
	k, err := NewKPointList([][3]float64{{0, 0, 0}, {0.5, 0.5, 0.5}})
	if err != nil {
		Te.Fatal(err)
	}
	if k.IsMesh() {
		Te.Error("an explicit list is not a mesh")
	}
	l, err := k.List()
	if err != nil {
		Te.Fatal(err)
	}
	if l.NVecs() != 2 {
		Te.Errorf("expected 2 k-points, got %d", l.NVecs())
	}
}

func TestSitesOfKind(Te *testing.T) {
	s := NewStructure([3][3]float64{{0, 2.8, 2.8}, {2.8, 0, 2.8}, {2.8, 2.8, 0}})
	s.AddSite("Ga", [3]float64{0, 0, 0}).AddSite("As", [3]float64{1.4, 1.4, 1.4}).AddSite("Ga", [3]float64{1, 1, 1})
	ga := s.SitesOfKind("Ga")
	if diff := cmp.Diff([][3]float64{{0, 0, 0}, {1, 1, 1}}, ga); diff != "" {
		Te.Errorf("Ga sites mismatch (-want +got):\n%s", diff)
	}
	if len(s.SitesOfKind("N")) != 0 {
		Te.Error("no N sites expected")
	}
	if diff := cmp.Diff([]string{"Ga", "As"}, s.Kinds()); diff != "" {
		Te.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
	if err := s.Check(); err != nil {
		Te.Error(err)
	}
	s.AddSite("", [3]float64{})
	if err := s.Check(); err == nil {
		Te.Error("a site without kind should be rejected")
	}
}

func TestKPath(Te *testing.T) {
	p := NewKPath(map[string][3]float64{"G": {0, 0, 0}, "X": {0.5, 0, 0.5}}, Segment{"G", "X"})
	if err := p.Check(); err != nil {
		Te.Error(err)
	}
	p.Segments = append(p.Segments, Segment{"X", "L"})
	if err := p.Check(); !IsKind(err, Specification) {
		Te.Errorf("expected a specification error for a point without coordinates, got %v", err)
	}
}

func TestTextFiles(Te *testing.T) {
	dir := Te.TempDir()
	text := "line one\r\nline two\n\nline four\n"
	for _, name := range []string{"plain.wout", "comp.wout.gz", "comp.wout.zst"} {
		name = filepath.Join(dir, name)
		if err := WriteText(name, text); err != nil {
			Te.Fatal(err)
		}
		lines, err := ReadText(name)
		if err != nil {
			Te.Fatal(err)
		}
		if diff := cmp.Diff([]string{"line one", "line two", "", "line four"}, lines); diff != "" {
			Te.Errorf("%s: lines mismatch (-want +got):\n%s", name, diff)
		}
	}
	_, err := ReadText(filepath.Join(dir, "missing.wout"))
	if !IsKind(err, IO) {
		Te.Errorf("expected an I/O error, got %v", err)
	}
}

func TestError(Te *testing.T) {
	base := fmt.Errorf("underlying")
	err := NewError(Structural, "bad file", "a.wout", "Scan").Wrap(base)
	err.Decorate("ScanFile")
	var e error = ErrDecorate(err, "main")
	if !errors.Is(e, base) {
		Te.Error("the wrapped error should be reachable")
	}
	var ge *Error
	if !errors.As(e, &ge) {
		Te.Fatal("expected a *Error")
	}
	if ge.Trace() != "Scan <- ScanFile <- main" {
		Te.Errorf("unexpected trace %q", ge.Trace())
	}
	if ge.FileName() != "a.wout" || !ge.Critical() {
		Te.Error("unexpected error fields")
	}
	if ge.Error() != "gowannier structural error in a.wout: bad file: underlying" {
		Te.Errorf("unexpected message %q", ge.Error())
	}
	if IsKind(fmt.Errorf("x"), IO) {
		Te.Error("plain errors have no kind")
	}
}
