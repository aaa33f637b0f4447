/*
 * projections.go, part of gowannier.
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
	"fmt"
	"strings"

	"github.com/rmera/gowannier"
	"github.com/rmera/gowannier/orbital"
)

//ProjectionKind tells which of its possible forms a Projections value has.
type ProjectionKind int

const (
	//NoProjections leaves the projections block empty, or with only the random
	//keyword if random completion is requested.
	NoProjections ProjectionKind = iota
	//RandomProjections asks for random projections only.
	RandomProjections
	//RawProjections are lines already in the Wannier90 format, written verbatim.
	RawProjections
	//OrbitalProjections are expanded orbital records.
	OrbitalProjections
)

func (K ProjectionKind) String() string {
	switch K {
	case NoProjections:
		return "empty"
	case RandomProjections:
		return "random"
	case RawProjections:
		return "raw"
	case OrbitalProjections:
		return "orbitals"
	}
	return fmt.Sprintf("ProjectionKind(%d)", int(K))
}

//Projections is the content of the projections block. The zero value is NoProjections.
//Use the constructor functions to obtain the other kinds.
type Projections struct {
	kind     ProjectionKind
	raw      []string
	orbitals []orbital.Record
}

//Random returns projections that consist only of the random keyword.
func Random() Projections {
	return Projections{kind: RandomProjections}
}

//Raw returns projections given as lines in the Wannier90 format.
func Raw(lines ...string) Projections {
	l := make([]string, len(lines))
	copy(l, lines)
	return Projections{kind: RawProjections, raw: l}
}

//Orbitals returns projections given as orbital records.
func Orbitals(records []orbital.Record) Projections {
	r := make([]orbital.Record, len(records))
	copy(r, records)
	return Projections{kind: OrbitalProjections, orbitals: r}
}

//Kind returns the kind of projections in P.
func (P Projections) Kind() ProjectionKind { return P.kind }

//Len returns the number of lines or records in P.
func (P Projections) Len() int {
	if P.kind == OrbitalProjections {
		return len(P.orbitals)
	}
	return len(P.raw)
}

//lines returns the body of the projections block. If random is true,
//Wannier90 is asked to complete the given projections with random ones.
func (P Projections) lines(random bool) ([]string, error) {
	switch P.kind {
	case NoProjections:
		if random {
			return []string{"random"}, nil
		}
		return []string{}, nil
	case RandomProjections:
		return []string{"random"}, nil
	case RawProjections:
		if random {
			return nil, gowannier.NewError(gowannier.Specification, `random completion can't be requested together with raw projections, use "random" as their first line instead`, "", "Projections.lines")
		}
		ret := make([]string, len(P.raw))
		copy(ret, P.raw)
		return ret, nil
	case OrbitalProjections:
		ret := make([]string, 0, len(P.orbitals)+1)
		if random {
			ret = append(ret, "random")
		}
		for _, o := range P.orbitals {
			ret = append(ret, FormatOrbital(o))
		}
		return ret, nil
	}
	panic(fmt.Sprintf("win: unknown projection kind %d", int(P.kind)))
}

func joinFloats(v []float64, format, sep string) string {
	s := make([]string, len(v))
	for i, f := range v {
		s[i] = fmt.Sprintf(format, f)
	}
	return strings.Join(s, sep)
}

func vecField(name string, v *[3]float64) string {
	if v == nil {
		return ""
	}
	return name + "=" + joinFloats(v[:], "%.10f", ",")
}

//FormatOrbital returns the projections-block line for the orbital o, such as
//"c=0.0000000000,0.0000000000,0.0000000000:l=1,mr=2".
func FormatOrbital(o orbital.Record) string {
	var b strings.Builder
	b.WriteString(vecField("c", &o.Position))
	fmt.Fprintf(&b, ":l=%d,mr=%d", o.AngularMomentum, o.MagneticNumber+1)
	if o.ZOrientation != nil || o.XOrientation != nil || o.RadialNodes != nil || o.Diffusivity != nil {
		var r, zona string
		if o.RadialNodes != nil {
			r = fmt.Sprintf("r=%d", *o.RadialNodes+1)
		}
		if o.Diffusivity != nil {
			zona = fmt.Sprintf("zona=%.10f", *o.Diffusivity)
		}
		fmt.Fprintf(&b, ":%s:%s:%s:%s", vecField("z", o.ZOrientation), vecField("x", o.XOrientation), r, zona)
	}
	switch o.Spin {
	case 1:
		b.WriteString("(u)")
	case -1:
		b.WriteString("(d)")
	}
	if o.SpinOrientation != nil {
		b.WriteString("[" + joinFloats(o.SpinOrientation[:], "%18.10f", ",") + "]")
	}
	return b.String()
}
