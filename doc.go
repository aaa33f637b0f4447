/*
 * doc.go, part of gowannier.
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

/*Package gowannier is the main package of the gowannier library. It provides the
crystal structure, k-point and k-path types shared by the rest of the library, the
error type used by all its packages, and facilities for loading the (possibly compressed)
plaintext files that Wannier90 reads and writes.



	**gowannier Capabilities**


    Expands compact orbital specifications (positions or site kinds, orbital names
	or explicit angular momentum/magnetic numbers, spins) into the normalized
	projections that seed a Wannierisation (package orbital).

    Writes Wannier90 .win input files from a calculation specification: parameters,
	unit cell, atomic sites, k-points, k-paths and projections (package win). The output
	is deterministic, so it can be compared against golden files.

    Reads the .wout log of a run and returns the Wannier function centres and spreads,
	the spread functional, the Im/Re ratios and the warnings found (package wout).
	It also classifies failed runs.

    Rebuilds labeled band structures from the _band.dat, _band.kpt and
	_band.labelinfo.dat files, with a heuristic fallback for Wannier90 versions
	older than 3.0 and a plotting facility (package bands).

    Prepares and collects a whole calculation by its seedname (package w90), and reads
	calculation descriptions from TOML or YAML files (package calcfile).

    A command line program, gowannier, exposes the above (cmd/gowannier).


*/
package gowannier
