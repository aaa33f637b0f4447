/*
 * orbital.go, part of gowannier.
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

//Package orbital expands compact, user-facing orbital projection specifications
//into the explicit list of projections that seed a Wannierisation.
package orbital

import (
	"fmt"

	"github.com/rmera/gowannier"
)

//Spec is a compact projection specification, in the style of the projections
//block of the Wannier90 user guide. Exactly one of Position and KindName must be given,
//and exactly one of Names and L.
type Spec struct {
	Position *[3]float64 `json:"position_cart,omitempty" toml:"position_cart,omitempty" yaml:"position_cart,omitempty"`
	KindName string      `json:"kind_name,omitempty" toml:"kind_name,omitempty" yaml:"kind_name,omitempty"`
	//orbital names, such as "s", "pz" or "sp3".
	Names []string `json:"ang_mtm_name,omitempty" toml:"ang_mtm_name,omitempty" yaml:"ang_mtm_name,omitempty"`
	L     []int    `json:"ang_mtm_l,omitempty" toml:"ang_mtm_l,omitempty" yaml:"ang_mtm_l,omitempty"`
	//1-based magnetic numbers. They require exactly one value in L.
	MR []int `json:"ang_mtm_mr,omitempty" toml:"ang_mtm_mr,omitempty" yaml:"ang_mtm_mr,omitempty"`
	//U, u or 1 for spin up; D, d or -1 for spin down.
	Spin  []string    `json:"spin,omitempty" toml:"spin,omitempty" yaml:"spin,omitempty"`
	ZAxis *[3]float64 `json:"zaxis,omitempty" toml:"zaxis,omitempty" yaml:"zaxis,omitempty"`
	XAxis *[3]float64 `json:"xaxis,omitempty" toml:"xaxis,omitempty" yaml:"xaxis,omitempty"`
	//1-based, as in Wannier90 (the number of radial nodes plus one). Defaults to 1.
	//Values smaller than 1 leave the radial nodes unset.
	Radial   *int        `json:"radial,omitempty" toml:"radial,omitempty" yaml:"radial,omitempty"`
	Zona     *float64    `json:"zona,omitempty" toml:"zona,omitempty" yaml:"zona,omitempty"`
	SpinAxis *[3]float64 `json:"spin_axis,omitempty" toml:"spin_axis,omitempty" yaml:"spin_axis,omitempty"`
}

//Record is a single projection: a real-hydrogen orbital at a position.
//The magnetic number and radial nodes are 0-based.
type Record struct {
	KindName        string      `json:"kind_name,omitempty"`
	Position        [3]float64  `json:"position"`
	AngularMomentum int         `json:"angular_momentum"`
	MagneticNumber  int         `json:"magnetic_number"`
	Spin            int         `json:"spin,omitempty"` //1 up, -1 down, 0 none.
	ZOrientation    *[3]float64 `json:"z_orientation,omitempty"`
	XOrientation    *[3]float64 `json:"x_orientation,omitempty"`
	RadialNodes     *int        `json:"radial_nodes,omitempty"`
	Diffusivity     *float64    `json:"diffusivity,omitempty"`
	SpinOrientation *[3]float64 `json:"spin_orientation,omitempty"`
}

var spinCodes = map[string]int{"U": 1, "u": 1, "1": 1, "D": -1, "d": -1, "-1": -1}

//setter sets one or more fields of a record. A partial is the
//set of fields contributed by one choice along each axis of the expansion.
type setter func(*Record)
type partial []setter

//combine returns every partial of a followed by every partial of b.
//If one of the lists is empty, the other is returned.
func combine(a, b []partial) ([]partial, error) {
	aempty := emptyPartials(a)
	bempty := emptyPartials(b)
	if aempty && bempty {
		return nil, specError("nothing to combine in projection expansion")
	}
	if aempty {
		return b, nil
	}
	if bempty {
		return a, nil
	}
	ret := make([]partial, 0, len(a)*len(b))
	for _, p := range a {
		for _, q := range b {
			n := make(partial, 0, len(p)+len(q))
			n = append(n, p...)
			n = append(n, q...)
			ret = append(ret, n)
		}
	}
	return ret, nil
}

func emptyPartials(p []partial) bool {
	for _, v := range p {
		if len(v) > 0 {
			return false
		}
	}
	return true
}

func specError(format string, args ...interface{}) error {
	return gowannier.NewError(gowannier.Specification, fmt.Sprintf(format, args...), "", "orbital.Expand")
}

func copyVec(v *[3]float64) *[3]float64 {
	if v == nil {
		return nil
	}
	r := *v
	return &r
}

//Check returns an error if the mutually exclusive fields of S are not used correctly.
func (S *Spec) Check() error {
	if S.Position == nil && S.KindName == "" {
		return specError("a kind name or a position must be given")
	}
	if S.Position != nil && S.KindName != "" {
		return specError("a position or a kind name must be given, not both")
	}
	if len(S.Names) == 0 && len(S.L) == 0 {
		return specError("orbital names or angular momenta must be given")
	}
	if len(S.Names) > 0 && (len(S.L) > 0 || len(S.MR) > 0) {
		return specError("orbital names can't be given together with angular or magnetic numbers")
	}
	if len(S.L) == 0 && len(S.MR) > 0 {
		return specError("magnetic numbers can't be given without an angular momentum")
	}
	if len(S.MR) > 0 && len(S.L) > 1 {
		return specError("if magnetic numbers are given, only one angular momentum can be given, not %d", len(S.L))
	}
	return nil
}

//Expand returns the projections described by S. The positions for a spec given by kind
//name are taken from sites, and orbital names are resolved with table (DefaultTable if nil).
//Every position is combined with every orbital and every spin.
func Expand(S Spec, sites gowannier.SiteLister, table Table) ([]Record, error) {
	if err := S.Check(); err != nil {
		return nil, err
	}
	if table == nil {
		table = DefaultTable
	}
	//fields shared by all the records
	var base partial
	radial := 1
	if S.Radial != nil {
		radial = *S.Radial
	}
	if radial > 0 {
		nodes := radial - 1
		base = append(base, func(r *Record) { n := nodes; r.RadialNodes = &n })
	}
	if S.XAxis != nil {
		v := *S.XAxis
		base = append(base, func(r *Record) { r.XOrientation = copyVec(&v) })
	}
	if S.ZAxis != nil {
		v := *S.ZAxis
		base = append(base, func(r *Record) { r.ZOrientation = copyVec(&v) })
	}
	if S.KindName != "" {
		k := S.KindName
		base = append(base, func(r *Record) { r.KindName = k })
	}
	if S.SpinAxis != nil {
		v := *S.SpinAxis
		base = append(base, func(r *Record) { r.SpinOrientation = copyVec(&v) })
	}
	if S.Zona != nil {
		z := *S.Zona
		base = append(base, func(r *Record) { d := z; r.Diffusivity = &d })
	}
	partials := []partial{base}

	//positions
	var positions [][3]float64
	if S.KindName != "" {
		if sites == nil {
			return nil, specError("a structure is needed to find the sites of kind %q", S.KindName)
		}
		positions = sites.SitesOfKind(S.KindName)
		if len(positions) == 0 {
			return nil, specError("no sites of kind %q found in the structure", S.KindName)
		}
	} else {
		positions = [][3]float64{*S.Position}
	}
	pospartials := make([]partial, 0, len(positions))
	for _, v := range positions {
		p := v
		pospartials = append(pospartials, partial{func(r *Record) { r.Position = p }})
	}
	var err error
	if partials, err = combine(partials, pospartials); err != nil {
		return nil, err
	}

	//angular and magnetic numbers
	lms, err := angular(S, table)
	if err != nil {
		return nil, err
	}
	lmpartials := make([]partial, 0, len(lms))
	for _, v := range lms {
		lm := v
		lmpartials = append(lmpartials, partial{func(r *Record) { r.AngularMomentum = lm.L; r.MagneticNumber = lm.MR }})
	}
	if partials, err = combine(partials, lmpartials); err != nil {
		return nil, err
	}

	//spin
	if len(S.Spin) > 0 {
		spinpartials := make([]partial, 0, len(S.Spin))
		for _, v := range S.Spin {
			s, ok := spinCodes[v]
			if !ok {
				return nil, specError("unknown spin code %q", v)
			}
			spinpartials = append(spinpartials, partial{func(r *Record) { r.Spin = s }})
		}
		if partials, err = combine(partials, spinpartials); err != nil {
			return nil, err
		}
	}
	ret := make([]Record, len(partials))
	for i, p := range partials {
		for _, set := range p {
			set(&ret[i])
		}
	}
	return ret, nil
}

//angular returns the angular momentum/magnetic number pairs requested by S.
//The magnetic numbers returned are 0-based.
func angular(S Spec, table Table) ([]LM, error) {
	if len(S.Names) > 0 {
		ret := make([]LM, 0, len(S.Names))
		for _, name := range S.Names {
			lm, err := table.QuantumNumbers(name)
			if err != nil {
				return nil, gowannier.ErrDecorate(err, "orbital.Expand")
			}
			ret = append(ret, lm...)
		}
		return ret, nil
	}
	if len(S.MR) > 0 {
		l := S.L[0]
		if l < -5 || l > 3 {
			return nil, specError("angular momentum %d not supported", l)
		}
		ret := make([]LM, 0, len(S.MR))
		for _, mr := range S.MR {
			if mr < 1 || mr > nMR(l) {
				return nil, specError("magnetic number %d out of range for angular momentum %d", mr, l)
			}
			ret = append(ret, LM{L: l, MR: mr - 1})
		}
		return ret, nil
	}
	ret := make([]LM, 0, 2*len(S.L))
	for _, l := range S.L {
		if l < -5 || l > 3 {
			return nil, specError("angular momentum %d not supported", l)
		}
		for i := 0; i < nMR(l); i++ {
			ret = append(ret, LM{L: l, MR: i})
		}
	}
	return ret, nil
}

//nMR returns the number of magnetic numbers for the angular momentum l.
//Negative l values denote hybrid orbitals.
func nMR(l int) int {
	if l >= 0 {
		return 2*l + 1
	}
	return -l + 1
}

//ExpandAll expands every spec in specs, in order, and returns all the
//resulting projections.
func ExpandAll(specs []Spec, sites gowannier.SiteLister, table Table) ([]Record, error) {
	ret := make([]Record, 0, len(specs)*4)
	for i, s := range specs {
		r, err := Expand(s, sites, table)
		if err != nil {
			return nil, gowannier.ErrDecorate(err, fmt.Sprintf("orbital.ExpandAll: spec %d", i))
		}
		ret = append(ret, r...)
	}
	return ret, nil
}
