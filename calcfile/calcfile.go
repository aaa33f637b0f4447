/*
 * calcfile.go, part of gowannier.
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

//Package calcfile reads descriptions of Wannier90 calculations written in TOML or YAML
//and turns them into win.Input values.
//
//A minimal TOML file:
//
//	random_projections = true
//
//	[parameters]
//	num_wann = 4
//
//	[structure]
//	cell = [[5.6, 0, 0], [0, 5.6, 0], [0, 0, 5.6]]
//	sites = [{kind = "Ga", position = [0, 0, 0]}]
//
//	[kpoints]
//	mesh = [2, 2, 2]
package calcfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/rmera/gowannier"
	"github.com/rmera/gowannier/orbital"
	"github.com/rmera/gowannier/win"
)

//Format is the syntax of a calculation file.
type Format int

const (
	TOML Format = iota
	YAML
)

func (F Format) String() string {
	if F == YAML {
		return "YAML"
	}
	return "TOML"
}

//FormatOf guesses the format of a file from its name. Compression suffixes are ignored.
func FormatOf(name string) (Format, error) {
	for _, c := range []string{".gz", ".zst"} {
		name = strings.TrimSuffix(name, c)
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return TOML, gowannier.NewError(gowannier.Specification, "unknown calculation file format, use .toml, .yaml or .yml", name, "FormatOf")
}

type Site struct {
	Kind     string     `toml:"kind" yaml:"kind"`
	Position [3]float64 `toml:"position" yaml:"position"`
}

type Structure struct {
	Cell  [3][3]float64 `toml:"cell" yaml:"cell"`
	Sites []Site        `toml:"sites" yaml:"sites"`
}

//KPoints is either a mesh, with an optional offset, or an explicit list of points.
type KPoints struct {
	Mesh   *[3]int      `toml:"mesh,omitempty" yaml:"mesh,omitempty"`
	Offset [3]float64   `toml:"offset,omitempty" yaml:"offset,omitempty"`
	Points [][3]float64 `toml:"points,omitempty" yaml:"points,omitempty"`
}

//KPath gives the coordinates of the special points and the segments joining them.
type KPath struct {
	Points   map[string][3]float64 `toml:"points" yaml:"points"`
	Segments [][2]string           `toml:"segments" yaml:"segments"`
}

type Label struct {
	Index int    `toml:"index" yaml:"index"`
	Name  string `toml:"name" yaml:"name"`
}

type BandsKPoints struct {
	Points [][3]float64 `toml:"points" yaml:"points"`
	Labels []Label      `toml:"labels" yaml:"labels"`
}

//Projections are either raw lines for the projections block, or orbital
//specifications to be expanded.
type Projections struct {
	Raw      []string       `toml:"raw,omitempty" yaml:"raw,omitempty"`
	Orbitals []orbital.Spec `toml:"orbitals,omitempty" yaml:"orbitals,omitempty"`
}

//File is the content of a calculation file.
type File struct {
	Parameters        map[string]interface{} `toml:"parameters" yaml:"parameters"`
	Structure         *Structure             `toml:"structure,omitempty" yaml:"structure,omitempty"`
	KPoints           *KPoints               `toml:"kpoints,omitempty" yaml:"kpoints,omitempty"`
	KPointPath        *KPath                 `toml:"kpoint_path,omitempty" yaml:"kpoint_path,omitempty"`
	BandsKPoints      *BandsKPoints          `toml:"bands_kpoints,omitempty" yaml:"bands_kpoints,omitempty"`
	Projections       *Projections           `toml:"projections,omitempty" yaml:"projections,omitempty"`
	RandomProjections bool                   `toml:"random_projections" yaml:"random_projections"`
	PostprocSetup     bool                   `toml:"postproc_setup" yaml:"postproc_setup"`
}

//Parse decodes data in the given format. Unknown fields are errors.
func Parse(data []byte, format Format) (*File, error) {
	F := new(File)
	var err error
	switch format {
	case TOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(F)
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(F); errors.Is(err, io.EOF) {
			err = nil //empty document
		}
	default:
		return nil, gowannier.NewError(gowannier.Specification, fmt.Sprintf("unknown format %d", int(format)), "", "Parse")
	}
	if err != nil {
		return nil, gowannier.NewError(gowannier.Specification, "can't decode "+format.String()+" calculation file", "", "Parse").Wrap(err)
	}
	return F, nil
}

//Load reads and decodes the file name, which can be compressed.
func Load(name string) (*File, error) {
	format, err := FormatOf(name)
	if err != nil {
		return nil, err
	}
	lines, err := gowannier.ReadText(name)
	if err != nil {
		return nil, gowannier.ErrDecorate(err, "Load")
	}
	F, err := Parse([]byte(strings.Join(lines, "\n")), format)
	if err != nil {
		e := gowannier.NewError(gowannier.Specification, "invalid calculation file", name, "Load").Wrap(err)
		return nil, e
	}
	return F, nil
}

//Path returns the k-point path in the file, or nil if there is none.
func (F *File) Path() *gowannier.KPath {
	if F.KPointPath == nil {
		return nil
	}
	segs := make([]gowannier.Segment, len(F.KPointPath.Segments))
	for i, s := range F.KPointPath.Segments {
		segs[i] = gowannier.Segment{Start: s[0], End: s[1]}
	}
	return gowannier.NewKPath(F.KPointPath.Points, segs...)
}

func (F *File) structure() *gowannier.Structure {
	if F.Structure == nil {
		return nil
	}
	s := gowannier.NewStructure(F.Structure.Cell)
	for _, v := range F.Structure.Sites {
		s.AddSite(v.Kind, v.Position)
	}
	return s
}

func (F *File) kpoints() (*gowannier.KPoints, error) {
	k := F.KPoints
	switch {
	case k == nil:
		return nil, nil
	case k.Mesh != nil && len(k.Points) > 0:
		return nil, gowannier.NewError(gowannier.Specification, "only one of a k-point mesh and a k-point list can be given", "", "File.kpoints")
	case k.Mesh != nil:
		ret := gowannier.NewMesh(k.Mesh[0], k.Mesh[1], k.Mesh[2])
		ret.Offset = k.Offset
		return ret, nil
	}
	return gowannier.NewKPointList(k.Points)
}

func (F *File) bandsKPoints() (*gowannier.LabeledKPoints, error) {
	if F.BandsKPoints == nil {
		return nil, nil
	}
	points, err := gowannier.NewKPointList(F.BandsKPoints.Points)
	if err != nil {
		return nil, err
	}
	labels := make([]gowannier.Label, len(F.BandsKPoints.Labels))
	for i, l := range F.BandsKPoints.Labels {
		labels[i] = gowannier.Label{Index: l.Index, Name: l.Name}
	}
	return &gowannier.LabeledKPoints{Points: points.Points, Labels: labels}, nil
}

func (F *File) projections(s *gowannier.Structure, table orbital.Table) (win.Projections, error) {
	p := F.Projections
	if p == nil {
		return win.Projections{}, nil
	}
	if len(p.Raw) > 0 && len(p.Orbitals) > 0 {
		return win.Projections{}, gowannier.NewError(gowannier.Specification, "only one of raw and orbital projections can be given", "", "File.projections")
	}
	if len(p.Raw) > 0 {
		return win.Raw(p.Raw...), nil
	}
	if len(p.Orbitals) == 0 {
		return win.Projections{}, nil
	}
	var sites gowannier.SiteLister
	if s != nil {
		sites = s
	}
	records, err := orbital.ExpandAll(p.Orbitals, sites, table)
	if err != nil {
		return win.Projections{}, err
	}
	return win.Orbitals(records), nil
}

//Input returns the calculation described by F. Orbital names are
//resolved with table, or with orbital.DefaultTable if table is nil.
//The input is validated before being returned.
func (F *File) Input(table ...orbital.Table) (*win.Input, error) {
	var t orbital.Table
	if len(table) > 0 {
		t = table[0]
	}
	in := &win.Input{
		Structure:         F.structure(),
		KPath:             F.Path(),
		Params:            win.Params(F.Parameters),
		RandomProjections: F.RandomProjections,
		PostprocSetup:     F.PostprocSetup,
	}
	if in.Params == nil {
		in.Params = win.Params{}
	}
	var err error
	if in.KPoints, err = F.kpoints(); err != nil {
		return nil, gowannier.ErrDecorate(err, "File.Input")
	}
	if in.BandsKPoints, err = F.bandsKPoints(); err != nil {
		return nil, gowannier.ErrDecorate(err, "File.Input")
	}
	if in.Projections, err = F.projections(in.Structure, t); err != nil {
		return nil, gowannier.ErrDecorate(err, "File.Input")
	}
	if err = in.Validate(); err != nil {
		return nil, gowannier.ErrDecorate(err, "File.Input")
	}
	return in, nil
}
