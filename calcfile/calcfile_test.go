/*
 * calcfile_test.go, part of gowannier.
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

package calcfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmera/gowannier"
	"github.com/rmera/gowannier/win"
)

func TestFormats(Te *testing.T) {
	expected, err := os.ReadFile("../test/simple.win")
	require.NoError(Te, err)
	for _, name := range []string{"../test/simple.toml", "../test/simple.yaml"} {
		F, err := Load(name)
		require.NoError(Te, err, name)
		in, err := F.Input()
		require.NoError(Te, err, name)
		doc, err := win.Build(in)
		require.NoError(Te, err, name)
		assert.Equal(Te, string(expected), doc, name)
	}
}

func TestFormatOf(Te *testing.T) {
	cases := map[string]Format{"a.toml": TOML, "a.yaml": YAML, "a.YML": YAML, "a.toml.gz": TOML, "a.yaml.zst": YAML}
	for name, f := range cases {
		got, err := FormatOf(name)
		require.NoError(Te, err, name)
		assert.Equal(Te, f, got, name)
	}
	_, err := FormatOf("a.json")
	assert.True(Te, gowannier.IsKind(err, gowannier.Specification))
}

func TestCompressed(Te *testing.T) {
	data, err := os.ReadFile("../test/simple.yaml")
	require.NoError(Te, err)
	name := filepath.Join(Te.TempDir(), "simple.yaml.gz")
	require.NoError(Te, gowannier.WriteText(name, string(data)))
	F, err := Load(name)
	require.NoError(Te, err)
	assert.Equal(Te, [3]int{1, 1, 2}, *F.KPoints.Mesh)
	assert.Len(Te, F.Projections.Orbitals, 2)
}

func TestInput(Te *testing.T) {
	F, err := Parse([]byte(`
random_projections = true
[parameters]
num_wann = 8
[structure]
cell = [[5.6, 0.0, 0.0], [0.0, 5.6, 0.0], [0.0, 0.0, 5.6]]
sites = [{kind = "Ga", position = [0.0, 0.0, 0.0]}, {kind = "As", position = [1.4, 1.4, 1.4]}]
[kpoints]
points = [[0.0, 0.0, 0.0], [0.5, 0.5, 0.5]]
[bands_kpoints]
points = [[0.0, 0.0, 0.0], [0.25, 0.0, 0.0], [0.5, 0.0, 0.0]]
labels = [{index = 0, name = "G"}, {index = 2, name = "X"}]
[[projections.orbitals]]
kind_name = "As"
ang_mtm_name = ["sp3"]
`), TOML)
	require.NoError(Te, err)
	in, err := F.Input()
	require.NoError(Te, err)
	assert.False(Te, in.KPoints.IsMesh())
	assert.Equal(Te, 2, in.KPoints.Points.NVecs())
	assert.Nil(Te, in.KPath)
	assert.Nil(Te, F.Path())
	assert.Equal(Te, []gowannier.Label{{Index: 0, Name: "G"}, {Index: 2, Name: "X"}}, in.BandsKPoints.Labels)
	assert.Equal(Te, win.OrbitalProjections, in.Projections.Kind())
	assert.Equal(Te, 4, in.Projections.Len())
	doc, err := win.Build(in)
	require.NoError(Te, err)
	assert.Contains(Te, doc, "begin explicit_kpath_labels")
	assert.Contains(Te, doc, "random\nc=1.4000000000,1.4000000000,1.4000000000:l=-3,mr=1:")
}

func TestRaw(Te *testing.T) {
	F, err := Parse([]byte("projections:\n  raw: [\"As:sp3\", \"Ga:s\"]\n"), YAML)
	require.NoError(Te, err)
	in, err := F.Input()
	require.NoError(Te, err)
	assert.Equal(Te, win.RawProjections, in.Projections.Kind())
	assert.Equal(Te, 2, in.Projections.Len())
}

func TestInvalid(Te *testing.T) {
	cases := []struct {
		data   string
		format Format
	}{
		{"unknown_field = 3\n", TOML},
		{"unknown_field: 3\n", YAML},
		{"[parameters\n", TOML},
		{"kpoints:\n  mesh: [2, 2, 2]\n  points: [[0.0, 0.0, 0.0]]\n", YAML},
		{"projections:\n  raw: [\"As:sp3\"]\n  orbitals:\n    - kind_name: As\n      ang_mtm_name: [s]\n", YAML},
		//kind names need a structure.
		{"projections:\n  orbitals:\n    - kind_name: As\n      ang_mtm_name: [s]\n", YAML},
		{"parameters:\n  unit_cell_cart: 3\n", YAML},
		{"random_projections: true\nprojections:\n  raw: [\"As:sp3\"]\n", YAML},
	}
	for i, c := range cases {
		F, err := Parse([]byte(c.data), c.format)
		if err == nil {
			_, err = F.Input()
		}
		assert.Error(Te, err, "case %d", i)
		assert.True(Te, gowannier.IsKind(err, gowannier.Specification), "case %d: %v", i, err)
	}
}
