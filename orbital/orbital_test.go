/*
 * orbital_test.go, part of gowannier.
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
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rmera/gowannier"
)

func gaas() *gowannier.Structure {
	s := gowannier.NewStructure([3][3]float64{{-2.8, 0, 2.8}, {0, 2.8, 2.8}, {-2.8, 2.8, 0}})
	s.AddSite("Ga", [3]float64{0, 0, 0})
	s.AddSite("As", [3]float64{-1.4, 1.4, 1.4})
	s.AddSite("Ga", [3]float64{1, 2, 3})
	return s
}

func ip(i int) *int { return &i }

func TestKindExpansion(Te *testing.T) {
	s := gaas()
	recs, err := Expand(Spec{KindName: "Ga", L: []int{0}}, s, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if len(recs) != 2 {
		Te.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[1].Position != [3]float64{1, 2, 3} || recs[1].KindName != "Ga" {
		Te.Errorf("unexpected second record %+v", recs[1])
	}
	if recs[0].RadialNodes == nil || *recs[0].RadialNodes != 0 {
		Te.Error("the default radial should give 0 radial nodes")
	}
	//aliasing
	*recs[0].RadialNodes = 5
	if *recs[1].RadialNodes != 0 {
		Te.Error("records should not share their fields")
	}
	recs, err = Expand(Spec{KindName: "Ga", L: []int{1}}, s, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if len(recs) != 6 {
		Te.Fatalf("expected 6 records, got %d", len(recs))
	}
	for i, r := range recs[:3] {
		if r.MagneticNumber != i || r.AngularMomentum != 1 || r.Position != [3]float64{0, 0, 0} {
			Te.Errorf("unexpected record %d: %+v", i, r)
		}
	}
}

func TestHybridAndMR(Te *testing.T) {
	pos := [3]float64{0.5, 0.5, 0.5}
	recs, err := Expand(Spec{Position: &pos, L: []int{-3}, Radial: ip(2)}, nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if len(recs) != 4 {
		Te.Errorf("sp3 should give 4 records, got %d", len(recs))
	}
	if *recs[3].RadialNodes != 1 {
		Te.Errorf("radial 2 should give 1 radial node, got %d", *recs[3].RadialNodes)
	}
	recs, err = Expand(Spec{Position: &pos, L: []int{2}, MR: []int{1, 5}, Radial: ip(0)}, nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	expected := []Record{
		{Position: pos, AngularMomentum: 2, MagneticNumber: 0},
		{Position: pos, AngularMomentum: 2, MagneticNumber: 4},
	}
	if diff := cmp.Diff(expected, recs); diff != "" {
		Te.Errorf("explicit mr mismatch (-want +got):\n%s", diff)
	}
	if _, err = Expand(Spec{Position: &pos, L: []int{1}, MR: []int{4}}, nil, nil); err == nil {
		Te.Error("mr=4 is out of range for l=1")
	}
}

func TestNamesAndSpin(Te *testing.T) {
	pos := [3]float64{0, 0, 0}
	zona := 1.5
	z := [3]float64{0, 0, 1}
	recs, err := Expand(Spec{Position: &pos, Names: []string{"S", "px"}, Spin: []string{"u", "-1"}, Zona: &zona, ZAxis: &z}, nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if len(recs) != 4 {
		Te.Fatalf("expected 4 records, got %d", len(recs))
	}
	got := make([][3]int, len(recs))
	for i, r := range recs {
		got[i] = [3]int{r.AngularMomentum, r.MagneticNumber, r.Spin}
		if r.Diffusivity == nil || *r.Diffusivity != 1.5 || r.ZOrientation == nil || *r.ZOrientation != z {
			Te.Errorf("record %d lacks the shared fields: %+v", i, r)
		}
	}
	if diff := cmp.Diff([][3]int{{0, 0, 1}, {0, 0, -1}, {1, 1, 1}, {1, 1, -1}}, got); diff != "" {
		Te.Errorf("name/spin expansion mismatch (-want +got):\n%s", diff)
	}
	if _, err := Expand(Spec{Position: &pos, Names: []string{"s"}, Spin: []string{"x"}}, nil, nil); !gowannier.IsKind(err, gowannier.Specification) {
		Te.Errorf("expected a specification error for an unknown spin, got %v", err)
	}
	if _, err := Expand(Spec{Position: &pos, Names: []string{"dz3"}}, nil, nil); err == nil {
		Te.Error("unknown orbital names should be rejected")
	}
}

func TestInvalidSpecs(Te *testing.T) {
	pos := [3]float64{}
	s := gaas()
	bad := map[string]Spec{
		"no position":         {L: []int{0}},
		"position and kind":   {Position: &pos, KindName: "Ga", L: []int{0}},
		"no orbital":          {Position: &pos},
		"names and l":         {Position: &pos, Names: []string{"s"}, L: []int{0}},
		"mr without l":        {Position: &pos, Names: []string{"s"}, MR: []int{1}},
		"mr with several l":   {Position: &pos, L: []int{0, 1}, MR: []int{1}},
		"kind not present":    {KindName: "N", L: []int{0}},
		"unsupported l":       {Position: &pos, L: []int{4}},
		"kind without struct": {KindName: "Ga", L: []int{0}},
	}
	for name, spec := range bad {
		var sites gowannier.SiteLister = s
		if name == "kind without struct" {
			sites = nil
		}
		_, err := Expand(spec, sites, nil)
		if !gowannier.IsKind(err, gowannier.Specification) {
			Te.Errorf("%s: expected a specification error, got %v", name, err)
		}
	}
}

func TestCombine(Te *testing.T) {
	if _, err := combine([]partial{{}}, nil); err == nil {
		Te.Error("combining two empty lists should fail")
	}
	one := []partial{{func(r *Record) { r.Spin = 1 }}}
	r, err := combine(nil, one)
	if err != nil || len(r) != 1 {
		Te.Errorf("an empty side should yield the other side, got %d, %v", len(r), err)
	}
	r, err = combine(one, []partial{{}})
	if err != nil || len(r) != 1 {
		Te.Errorf("an empty side should yield the other side, got %d, %v", len(r), err)
	}
}

func TestExpandAll(Te *testing.T) {
	s := gaas()
	recs, err := ExpandAll([]Spec{{KindName: "As", Names: []string{"sp3"}}, {KindName: "Ga", Names: []string{"s"}}}, s, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if len(recs) != 6 || recs[0].KindName != "As" || recs[5].KindName != "Ga" {
		Te.Errorf("unexpected expansion %+v", recs)
	}
	b, err := json.Marshal(recs[0])
	if err != nil {
		Te.Fatal(err)
	}
	var back Record
	if err := json.Unmarshal(b, &back); err != nil {
		Te.Fatal(err)
	}
	if diff := cmp.Diff(recs[0], back); diff != "" {
		Te.Errorf("json round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestTable(Te *testing.T) {
	lm, err := DefaultTable.QuantumNumbers("SP3D2")
	if err != nil {
		Te.Fatal(err)
	}
	if len(lm) != 6 || lm[5] != (LM{L: -5, MR: 5}) {
		Te.Errorf("unexpected sp3d2 numbers %v", lm)
	}
	lm, _ = DefaultTable.QuantumNumbers("dx2-y2")
	if diff := cmp.Diff([]LM{{L: 2, MR: 3}}, lm); diff != "" {
		Te.Errorf("dx2-y2 mismatch (-want +got):\n%s", diff)
	}
	custom := MapTable{"lone": {{L: 0, MR: 0}}}
	pos := [3]float64{}
	recs, err := Expand(Spec{Position: &pos, Names: []string{"Lone"}}, nil, custom)
	if err != nil || len(recs) != 1 {
		Te.Errorf("custom table not used: %v", err)
	}
}
