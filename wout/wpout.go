/*
 * wpout.go, part of gowannier.
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

package wout

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rmera/gowannier"
)

//Postw90Output contains the information read from the .wpout file of postw90.x.
type Postw90Output struct {
	Warnings []string `json:"warnings"`
	//Time spent in the BoltzWann module, nil if it didn't run.
	WallclockBoltzWann *float64 `json:"wallclock_seconds_boltzwann,omitempty"`
}

var boltzWannTime = regexp.MustCompile(`^Time for BoltzWann \(Boltzmann transport\) *([+-]?(?:[0-9]*[.])?[0-9]+) \(sec\)`)

//ScanPostw90 reads the lines of a .wpout file. If the BoltzWann time is
//printed more than once, the last value is kept.
func ScanPostw90(lines []string) *Postw90Output {
	out := &Postw90Output{Warnings: make([]string, 0, 2)}
	for _, line := range lines {
		if strings.Contains(line, warningMarker) {
			out.Warnings = append(out.Warnings, line)
		}
		m := boltzWannTime.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		t, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		out.WallclockBoltzWann = &t
	}
	return out
}

//ScanPostw90File reads and scans the .wpout file name, which can be compressed with zstd or gzip.
func ScanPostw90File(name string) (*Postw90Output, error) {
	lines, err := gowannier.ReadText(name)
	if err != nil {
		return nil, gowannier.ErrDecorate(err, "ScanPostw90File")
	}
	return ScanPostw90(lines), nil
}
