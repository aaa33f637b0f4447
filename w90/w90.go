/*
 * w90.go, part of gowannier.
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

//Package w90 prepares and collects Wannier90 calculations identified by their seedname,
//in the manner of the program handles of a QM interface: set the name and directory,
//build the input, and, once the program has run, read its results.
package w90

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/rmera/gowannier"
	"github.com/rmera/gowannier/bands"
	"github.com/rmera/gowannier/win"
	"github.com/rmera/gowannier/wout"
)

//OutputSuffixes are the suffixes, after the seedname, of the files that Wannier90
//can write in a run. The .nnkp file is written only in post-processing setup mode.
var OutputSuffixes = []string{
	".wout", ".werr", ".r2mn", "_band.dat", "_band.agr", "_band.kpt", ".bxsf",
	"_w.xsf", "_w.cube", "_centres.xyz", "_hr.dat", "_tb.dat", "_r.dat", ".bvec",
	"_wsvec.dat", "_qc.dat", "_dos.dat", "_htB.dat", "_u.mat", "_u_dis.mat", ".vdw",
	"_band_proj.dat", "_band.labelinfo.dat", ".nnkp",
}

//Postw90Suffixes are like OutputSuffixes, for postw90.x. The last ones are
//written by the BoltzWann module.
var Postw90Suffixes = []string{
	".wpout", ".werr", ".r2mn", "_band.dat", "_band.agr", "_band.kpt", ".bxsf",
	"_r.dat", ".bvec", "_qc.dat", "_dos.dat", "_htB.dat", "_u.mat", "_u_dis.mat",
	".vdw", "_band_proj.dat", "_band.labelinfo.dat", "_boltzdos.dat", "_elcond.dat",
	"_kappa.dat", "_seebeck.dat", "_sigmas.dat", "_tdf.dat",
}

//Program is the executable whose run a Handle represents.
type Program int

const (
	Wannier90 Program = iota
	Postw90
)

func (P Program) String() string {
	if P == Postw90 {
		return "postw90"
	}
	return "wannier90"
}

//Stdout returns the suffix of the main output file of P.
func (P Program) Stdout() string {
	if P == Postw90 {
		return ".wpout"
	}
	return ".wout"
}

func (P Program) suffixes() []string {
	if P == Postw90 {
		return Postw90Suffixes
	}
	return OutputSuffixes
}

//Handle represents a Wannier90 calculation in a directory.
//Note that the defaults are NOT considered part of the API, so they can change.
type Handle struct {
	seedname string
	program  Program
	dir      string
	labeltol float64
	logger   *zap.Logger
}

func NewHandle() *Handle {
	run := new(Handle)
	run.SetDefaults()
	return run
}

//SetDefaults sets the seedname to "aiida", the program to Wannier90, the directory to the current one,
//the tolerance for k-point label matching to bands.DefaultTolerance and
//a logger that discards everything.
func (O *Handle) SetDefaults() {
	O.seedname = "aiida"
	O.program = Wannier90
	O.dir = "."
	O.labeltol = bands.DefaultTolerance
	O.logger = zap.NewNop()
}

func (O *Handle) SetName(seedname string) {
	O.seedname = seedname
}

//SetProgram sets the program that runs on the input. Status, Results and OutputFiles
//look for the files written by that program.
func (O *Handle) SetProgram(p Program) {
	O.program = p
}

func (O *Handle) Program() Program { return O.program }

func (O *Handle) SetDir(dir string) {
	O.dir = dir
}

//SetLabelTolerance sets the tolerance used to match k-points to special points, when
//labels have to be guessed.
func (O *Handle) SetLabelTolerance(tol float64) {
	O.labeltol = tol
}

//SetLogger sets the logger. A nil logger discards everything.
func (O *Handle) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	O.logger = l.With(zap.String("seedname", O.seedname))
}

func (O *Handle) Name() string { return O.seedname }

//File returns the path of the file with the given suffix after the seedname, such as ".wout".
func (O *Handle) File(suffix string) string {
	return filepath.Join(O.dir, O.seedname+suffix)
}

//BuildInput writes the .win file for in. For postw90.x, in is marked as a postw90 input.
func (O *Handle) BuildInput(in *win.Input) error {
	name := O.File(".win")
	if O.program == Postw90 && !in.Postw90 {
		c := *in
		c.Postw90 = true
		in = &c
	}
	if err := win.WriteFile(name, in); err != nil {
		O.logger.Error("can't write input", zap.String("file", name), zap.Error(err))
		return gowannier.ErrDecorate(err, "Handle.BuildInput")
	}
	O.logger.Info("input written", zap.String("file", name), zap.Stringer("program", O.program), zap.Stringer("projections", in.Projections.Kind()))
	return nil
}

//Status classifies the finished run from its main output file (.wout or .wpout) and the
//error files present. Errors in the output take precedence over error files, which take
//precedence over the generic "Exiting......" message.
func (O *Handle) Status() (wout.Status, error) {
	lines, err := gowannier.ReadText(O.File(O.program.Stdout()))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return wout.StdoutMissing, nil
		}
		return wout.Status{}, gowannier.ErrDecorate(err, "Handle.Status")
	}
	var s wout.Status
	if O.program == Postw90 {
		s = wout.DiagnosePostw90(lines, O.seedname)
	} else {
		s = wout.Diagnose(lines, O.seedname)
	}
	if !s.OK() && s != wout.ExitingMessage {
		return s, nil
	}
	werr, err := wout.FindErrorFiles(O.dir, O.seedname)
	if err != nil {
		return wout.Status{}, gowannier.ErrDecorate(err, "Handle.Status")
	}
	if len(werr) > 0 {
		O.logger.Error("error files found", zap.Strings("files", werr))
		return wout.WerrPresent, nil
	}
	return s, nil
}

//Output scans the .wout file. Every warning found is logged.
func (O *Handle) Output() (*wout.Output, error) {
	out, err := wout.ScanFile(O.File(".wout"))
	if err != nil {
		return nil, gowannier.ErrDecorate(err, "Handle.Output")
	}
	for _, w := range out.Warnings {
		O.logger.Warn("wannier90 output", zap.String("warning", w))
	}
	O.logger.Debug("output scanned", zap.Int("functions", len(out.Final)), zap.Bool("converged", out.Converged))
	return out, nil
}

//Postw90Output scans the .wpout file. Every warning found is logged.
func (O *Handle) Postw90Output() (*wout.Postw90Output, error) {
	out, err := wout.ScanPostw90File(O.File(".wpout"))
	if err != nil {
		return nil, gowannier.ErrDecorate(err, "Handle.Postw90Output")
	}
	for _, w := range out.Warnings {
		O.logger.Warn("postw90 output", zap.String("warning", w))
	}
	if out.WallclockBoltzWann != nil {
		O.logger.Debug("output scanned", zap.Float64("boltzwann_seconds", *out.WallclockBoltzWann))
	}
	return out, nil
}

//CentresXSF writes the structure S and the final Wannier centres read from the .wout
//file to the XSF file name.
func (O *Handle) CentresXSF(S *gowannier.Structure, name string) error {
	out, err := O.Output()
	if err != nil {
		return gowannier.ErrDecorate(err, "Handle.CentresXSF")
	}
	f, err := os.Create(name)
	if err != nil {
		return gowannier.NewError(gowannier.IO, "can't create file", name, "Handle.CentresXSF").Wrap(err)
	}
	err = wout.WriteCentresXSF(f, S, out)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = gowannier.NewError(gowannier.IO, "can't close file", name, "Handle.CentresXSF").Wrap(cerr)
	}
	if err != nil {
		os.Remove(name)
		return gowannier.ErrDecorate(err, "Handle.CentresXSF")
	}
	O.logger.Info("centres written", zap.String("file", name), zap.Int("functions", len(out.Final)))
	return nil
}

//Bands reads the interpolated band structure. path is only needed
//for output from Wannier90 versions older than 3.0, and can be nil.
func (O *Handle) Bands(path *gowannier.KPath) (*bands.Structure, []string, error) {
	s, warnings, err := bands.ReadFiles(O.dir, O.seedname, path, O.labeltol)
	if err != nil {
		return nil, warnings, gowannier.ErrDecorate(err, "Handle.Bands")
	}
	O.logger.Debug("bands read", zap.Int("kpoints", s.KPoints.NVecs()), zap.Int("bands", s.NBands()), zap.Int("labels", len(s.Labels)))
	return s, warnings, nil
}

//Results are all the results of a run.
type Results struct {
	Status wout.Status
	//nil for postw90.x runs.
	Output *wout.Output
	//nil for wannier90.x runs.
	Postw90 *wout.Postw90Output
	//nil if bands were not calculated.
	Bands *bands.Structure
}

//Results classifies the run and reads its output and, if present, its band structure.
//The band warnings are appended to the output warnings. The output is read even if
//the run failed, as long as the output file exists. For postw90.x, only the .wpout
//file is read.
func (O *Handle) Results(path *gowannier.KPath) (*Results, error) {
	st, err := O.Status()
	if err != nil {
		return nil, gowannier.ErrDecorate(err, "Handle.Results")
	}
	res := &Results{Status: st}
	if st == wout.StdoutMissing {
		O.logger.Error("no output file", zap.String("file", O.File(O.program.Stdout())))
		return res, nil
	}
	if O.program == Postw90 {
		if res.Postw90, err = O.Postw90Output(); err != nil {
			return res, gowannier.ErrDecorate(err, "Handle.Results")
		}
		if !st.OK() {
			O.logger.Error("calculation failed", zap.Int("code", st.Code), zap.String("status", st.Name))
		}
		return res, nil
	}
	if res.Output, err = O.Output(); err != nil {
		return res, gowannier.ErrDecorate(err, "Handle.Results")
	}
	if bands.Available(O.dir, O.seedname) {
		b, warnings, err := O.Bands(path)
		if err != nil {
			return res, gowannier.ErrDecorate(err, "Handle.Results")
		}
		res.Bands = b
		for _, w := range warnings {
			O.logger.Warn("band structure", zap.String("warning", w))
		}
		res.Output.Warnings = append(res.Output.Warnings, warnings...)
	}
	if !st.OK() {
		O.logger.Error("calculation failed", zap.Int("code", st.Code), zap.String("status", st.Name))
	}
	return res, nil
}

//OutputFiles returns the names of the files written by the program for this
//seedname that are present in the directory, sorted.
func (O *Handle) OutputFiles() ([]string, error) {
	suffixes := O.program.suffixes()
	ret := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		if _, err := os.Stat(O.File(s)); err == nil {
			ret = append(ret, O.seedname+s)
		}
	}
	werr, err := wout.FindErrorFiles(O.dir, O.seedname)
	if err != nil {
		return nil, gowannier.ErrDecorate(err, "Handle.OutputFiles")
	}
	for _, w := range werr {
		if w != O.seedname+".werr" {
			ret = append(ret, w)
		}
	}
	sort.Strings(ret)
	return ret, nil
}
