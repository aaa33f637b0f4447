/*
 * files.go, part of gowannier.
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

package bands

import (
	"os"
	"path/filepath"

	"github.com/rmera/gowannier"
)

//NoLabelsWarning is returned when neither a labelinfo file nor a k-point path are available.
const NoLabelsWarning = "No labelinfo file and no k-point path given, the band structure is not labeled."

//FileNames returns the names of the k-point, energy and labelinfo files for seedname.
func FileNames(seedname string) (kpt, dat, labelinfo string) {
	return seedname + "_band.kpt", seedname + "_band.dat", seedname + "_band.labelinfo.dat"
}

//Available returns true if the band files for seedname are in dir.
func Available(dir, seedname string) bool {
	kpt, dat, _ := FileNames(seedname)
	for _, n := range []string{kpt, dat} {
		if _, err := os.Stat(filepath.Join(dir, n)); err != nil {
			return false
		}
	}
	return true
}

//ReadFiles reads the band files for seedname in dir. If the labelinfo file is present
//labels are read from it, otherwise they are guessed from path with Legacy. If path
//is also nil, the structure is returned without labels, and a warning.
func ReadFiles(dir, seedname string, path *gowannier.KPath, tol ...float64) (*Structure, []string, error) {
	kname, dname, lname := FileNames(seedname)
	kpt, err := gowannier.ReadText(filepath.Join(dir, kname))
	if err != nil {
		return nil, nil, gowannier.ErrDecorate(err, "bands.ReadFiles")
	}
	dat, err := gowannier.ReadText(filepath.Join(dir, dname))
	if err != nil {
		return nil, nil, gowannier.ErrDecorate(err, "bands.ReadFiles")
	}
	if _, err := os.Stat(filepath.Join(dir, lname)); err == nil {
		labelinfo, err := gowannier.ReadText(filepath.Join(dir, lname))
		if err != nil {
			return nil, nil, gowannier.ErrDecorate(err, "bands.ReadFiles")
		}
		s, w, err := Direct(kpt, dat, labelinfo)
		return s, w, gowannier.ErrDecorate(err, "bands.ReadFiles")
	}
	if path != nil {
		s, w, err := Legacy(kpt, dat, path, tol...)
		return s, w, gowannier.ErrDecorate(err, "bands.ReadFiles")
	}
	s, w, err := read(kpt, dat)
	if err != nil {
		return nil, w, gowannier.ErrDecorate(err, "bands.ReadFiles")
	}
	return s, append(w, NoLabelsWarning), nil
}
