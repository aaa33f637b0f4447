/*
 * wout.go, part of gowannier.
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

//Package wout reads the main output (.wout) file of Wannier90.
//
//The scan is tolerant: malformed numbers are recorded as warnings and the scan goes on,
//so as much information as possible is recovered from crashed runs. Only a missing
//anchor, such as a state table before the number of Wannier functions is known, is an error.
package wout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rmera/gowannier"
)

//WF is a Wannier function as reported in the output. A nil centre component
//or spread means the value could not be parsed.
type WF struct {
	ID        int         `json:"wf_ids"`
	Centre    [3]*float64 `json:"wf_centres"`
	Spread    *float64    `json:"wf_spreads"`
	ImReRatio *float64    `json:"im_re_ratio,omitempty"`
}

//Output contains the information read from a .wout file.
type Output struct {
	NumberWFs            int      `json:"number_wfs,omitempty"`
	LengthUnits          string   `json:"length_units,omitempty"`
	OutputVerbosity      int      `json:"output_verbosity,omitempty"`
	PreprocessOnly       string   `json:"preprocess_only,omitempty"`
	ConvergenceTolerance *float64 `json:"convergence_tolerance,omitempty"`
	R2mnWriteout         string   `json:"r2mn_writeout,omitempty"`
	XYZWriteout          string   `json:"xyz_writeout,omitempty"`
	Warnings             []string `json:"warnings"`
	Final                []WF     `json:"wannier_functions_output,omitempty"`
	Initial              []WF     `json:"wannier_functions_initial,omitempty"`
	OmegaI               *float64 `json:"Omega_I,omitempty"`
	OmegaD               *float64 `json:"Omega_D,omitempty"`
	OmegaOD              *float64 `json:"Omega_OD,omitempty"`
	OmegaTotal           *float64 `json:"Omega_total,omitempty"`
	Converged            bool     `json:"converged"`
	Restart              bool     `json:"restart"`
}

//Markers
const (
	mainMarker       = "MAIN"
	wannieriseMarker = "WANNIERISE"
	sectionEnd       = "-----"
	warningMarker    = "Warning"
	convergedMarker  = "Wannierisation convergence criteria satisfied"
	finalMarker      = "Final State"
	initialMarker    = "Initial State"
	restartMarker    = "Reading restart information from file"
	imReMarker       = " Maximum Im/Re Ratio"
)

//lines after the final state table where the spread functional is printed.
const omegaWindow = 6

//Warnings added by the scan.
const (
	NotConvergedWarn = "Wannierisation finished because num_iter was reached."
	UnitsWarn        = "Units not Ang, be sure this is OK!"
	VerbosityWarn    = "Parsing is only supported if output verbosity is set to 1"
	R2mnWarn         = "The r^2_nm file has been selected to be written, but this is not yet supported!"
	XYZWarn          = "The xyz_WF_center file has been selected to be written, but this is not yet supported!"
)

type imre struct {
	id    int
	ratio float64
}

type scanner struct {
	lines     []string
	out       *Output
	converged bool
	restart   bool
	buffer    []imre
}

func structural(format string, args ...interface{}) error {
	return gowannier.NewError(gowannier.Structural, fmt.Sprintf(format, args...), "", "wout.Scan")
}

func (s *scanner) warn(format string, args ...interface{}) {
	s.out.Warnings = append(s.out.Warnings, fmt.Sprintf(format, args...))
}

//value returns the second-to-last field of line, which is where
//the values are printed in the parameter sections.
func value(line string) (string, bool) {
	f := strings.Fields(line)
	if len(f) < 2 {
		return "", false
	}
	return f[len(f)-2], true
}

func (s *scanner) intValue(line, name string) (int, bool) {
	v, ok := value(line)
	if !ok {
		s.warn("Can't read the value of %q", name)
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		s.warn("Invalid value %q for %q", v, name)
		return 0, false
	}
	return i, true
}

//section calls parse on each line after line i, up to and including the
//first one that contains sectionEnd, or until the end of the file.
func (s *scanner) section(i int, parse func(string)) {
	for j := i + 1; j < len(s.lines); j++ {
		parse(s.lines[j])
		if strings.Contains(s.lines[j], sectionEnd) {
			return
		}
	}
}

func (s *scanner) mainSection(line string) {
	switch {
	case strings.Contains(line, "Number of Wannier Functions"):
		if n, ok := s.intValue(line, "Number of Wannier Functions"); ok {
			s.out.NumberWFs = n
		}
	case strings.Contains(line, "Length Unit"):
		if v, ok := value(line); ok {
			s.out.LengthUnits = v
			if v != "Ang" {
				s.warn(UnitsWarn)
			}
		}
	case strings.Contains(line, "Output verbosity (1=low, 5=high)"):
		if n, ok := s.intValue(line, "Output verbosity"); ok {
			s.out.OutputVerbosity = n
			if n != 1 {
				s.warn(VerbosityWarn)
			}
		}
	case strings.Contains(line, "Post-processing"):
		if v, ok := value(line); ok {
			s.out.PreprocessOnly = v
		}
	}
}

func (s *scanner) wannieriseSection(line string) {
	switch {
	case strings.Contains(line, "Convergence tolerence"):
		v, _ := value(line)
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.warn("Invalid value %q for the convergence tolerance", v)
			return
		}
		s.out.ConvergenceTolerance = &f
	case strings.Contains(line, "Write r^2_nm to file"):
		if v, ok := value(line); ok {
			s.out.R2mnWriteout = v
			if v != "F" {
				s.warn(R2mnWarn)
			}
		}
	case strings.Contains(line, "Write xyz WF centres to file"):
		if v, ok := value(line); ok {
			s.out.XYZWriteout = v
			if v != "F" {
				s.warn(XYZWarn)
			}
		}
	}
}

//parseWF reads a line such as
//  WF centre and spread    1  (  0.000000,  1.000000,  2.000000 )     1.12345678
func (s *scanner) parseWF(line string, lineno int) (WF, error) {
	var wf WF
	open := strings.Index(line, "(")
	closing := strings.Index(line, ")")
	if open < 0 || closing < open {
		return wf, structural("line %d is not a Wannier function centre and spread", lineno+1)
	}
	head := strings.Fields(line[:open])
	if len(head) == 0 {
		return wf, structural("no Wannier function number in line %d", lineno+1)
	}
	id, err := strconv.Atoi(head[len(head)-1])
	if err != nil {
		return wf, structural("invalid Wannier function number %q in line %d", head[len(head)-1], lineno+1)
	}
	wf.ID = id
	coords := strings.Split(line[open+1:closing], ",")
	bad := false
	for k := 0; k < 3; k++ {
		if k >= len(coords) {
			bad = true
			continue
		}
		c, err := strconv.ParseFloat(strings.TrimSpace(coords[k]), 64)
		if err != nil {
			bad = true
			continue
		}
		wf.Centre[k] = &c
	}
	if bad {
		s.warn("Can't read some coordinates of the centre of Wannier function %d in line %d", id, lineno+1)
	}
	tail := line[closing+1:]
	if i := strings.Index(tail, ")"); i >= 0 {
		tail = tail[:i]
	}
	spread, err := strconv.ParseFloat(strings.TrimSpace(tail), 64)
	if err != nil {
		s.warn("Can't read the spread of Wannier function %d in line %d", id, lineno+1)
	} else {
		wf.Spread = &spread
	}
	return wf, nil
}

//table reads the NumberWFs lines after line i. It returns the functions read
//and the index of the last line of the table.
func (s *scanner) table(i int, name string) ([]WF, int, error) {
	n := s.out.NumberWFs
	if n <= 0 {
		return nil, i, structural("%s table found in line %d before the number of Wannier functions", name, i+1)
	}
	if i+n >= len(s.lines) {
		return nil, i, structural("truncated %s table in line %d", name, i+1)
	}
	ret := make([]WF, n)
	for j := 0; j < n; j++ {
		wf, err := s.parseWF(s.lines[i+1+j], i+1+j)
		if err != nil {
			return nil, i, gowannier.ErrDecorate(err, name)
		}
		ret[j] = wf
	}
	return ret, i + n, nil
}

//omegas reads the spread functional printed in the lines after the final state table.
func (s *scanner) omegas(last int) {
	for j := last + 1; j <= last+omegaWindow && j < len(s.lines); j++ {
		line := s.lines[j]
		var target **float64
		switch {
		case strings.Contains(line, "Omega I"):
			target = &s.out.OmegaI
		case strings.Contains(line, "Omega D"):
			target = &s.out.OmegaD
		case strings.Contains(line, "Omega OD"):
			target = &s.out.OmegaOD
		case strings.Contains(line, "Omega Total"):
			target = &s.out.OmegaTotal
		default:
			continue
		}
		f := strings.Fields(line)
		v, err := strconv.ParseFloat(f[len(f)-1], 64)
		if err != nil {
			s.warn("Can't read the spread functional in line %d", j+1)
			continue
		}
		*target = &v
	}
}

func (s *scanner) imRe(line string, lineno int) error {
	f := strings.Fields(line)
	if len(f) < 5 {
		s.warn("Can't read the Im/Re ratio in line %d", lineno+1)
		return nil
	}
	id, err := strconv.Atoi(f[3])
	if err != nil {
		s.warn("Can't read the Wannier function number of the Im/Re ratio in line %d", lineno+1)
		return nil
	}
	ratio, err := strconv.ParseFloat(f[len(f)-1], 64)
	if err != nil {
		s.warn("Can't read the Im/Re ratio of Wannier function %d in line %d", id, lineno+1)
		return nil
	}
	if s.restart {
		s.buffer = append(s.buffer, imre{id, ratio})
		return nil
	}
	if id < 1 || id > len(s.out.Final) {
		return structural("Im/Re ratio for Wannier function %d in line %d, which is not in the final state", id, lineno+1)
	}
	s.out.Final[id-1].ImReRatio = &ratio
	return nil
}

//reconcile applies the Im/Re ratios read in restart mode to the final state.
func (s *scanner) reconcile() error {
	if len(s.out.Final) == 0 {
		if len(s.buffer) > 0 {
			s.out.Final = make([]WF, len(s.buffer))
			for i, v := range s.buffer {
				r := v.ratio
				s.out.Final[i] = WF{ID: v.id, ImReRatio: &r}
			}
		}
		return nil
	}
	for _, v := range s.buffer {
		if v.id < 1 || v.id > len(s.out.Final) || s.out.Final[v.id-1].ID != v.id {
			return structural("Im/Re ratio for Wannier function %d doesn't match the final state", v.id)
		}
		r := v.ratio
		s.out.Final[v.id-1].ImReRatio = &r
	}
	return nil
}

//Scan reads the lines of a .wout file and returns the information in them.
//It returns a structural error only if the file lacks some required anchor.
func Scan(lines []string) (*Output, error) {
	s := &scanner{lines: lines, out: &Output{Warnings: make([]string, 0, 2)}}
	var err error
	for i, line := range lines {
		if strings.Contains(line, warningMarker) {
			s.out.Warnings = append(s.out.Warnings, line)
		}
		if strings.Contains(line, mainMarker) {
			s.section(i, s.mainSection)
		}
		if strings.Contains(line, wannieriseMarker) {
			s.section(i, s.wannieriseSection)
		}
		if strings.Contains(line, convergedMarker) {
			s.converged = true
		}
		if strings.Contains(line, finalMarker) {
			var last int
			if s.out.Final, last, err = s.table(i, "final state"); err != nil {
				return nil, err
			}
			s.omegas(last)
		}
		if strings.Contains(line, initialMarker) {
			if s.out.Initial, _, err = s.table(i, "initial state"); err != nil {
				return nil, err
			}
		}
		if strings.Contains(line, restartMarker) {
			s.restart = true
			s.buffer = s.buffer[:0]
		}
		if strings.Contains(line, imReMarker) {
			if err = s.imRe(line, i); err != nil {
				return nil, err
			}
		}
	}
	if s.restart {
		if err = s.reconcile(); err != nil {
			return nil, err
		}
	}
	if !s.restart && !s.converged {
		s.warn(NotConvergedWarn)
	}
	s.out.Converged = s.converged
	s.out.Restart = s.restart
	return s.out, nil
}

//ScanFile reads and scans the .wout file name, which can be compressed with zstd or gzip.
func ScanFile(name string) (*Output, error) {
	lines, err := gowannier.ReadText(name)
	if err != nil {
		return nil, gowannier.ErrDecorate(err, "ScanFile")
	}
	out, err := Scan(lines)
	if err != nil {
		if e, ok := err.(*gowannier.Error); ok {
			return nil, gowannier.NewError(e.Kind(), "can't scan output", name, "ScanFile").Wrap(err)
		}
		return nil, err
	}
	return out, nil
}
