/*
 * diagnose.go, part of gowannier.
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
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/rmera/gowannier"
)

//Status classifies the outcome of a Wannier90 run.
type Status struct {
	Code    int    `json:"exit_code"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (S Status) String() string {
	return fmt.Sprintf("%d %s: %s", S.Code, S.Name, S.Message)
}

//OK returns true if S signals a successful run.
func (S Status) OK() bool { return S.Code == 0 }

//The possible outcomes of a run. The codes are those of the AiiDA Wannier90 plugin.
var (
	Finished              = Status{0, "FINISHED_OK", "Wannier90 finished correctly."}
	StdoutMissing         = Status{210, "ERROR_OUTPUT_STDOUT_MISSING", "The required stdout output file was not found."}
	WerrPresent           = Status{300, "ERROR_WERR_FILE_PRESENT", "A Wannier90 error file (.werr) has been found."}
	ExitingMessage        = Status{400, "ERROR_EXITING_MESSAGE_IN_STDOUT", `The string "Exiting..." has been found in the Wannier90 output (some partial output might have been parsed).`}
	BVectors              = Status{401, "ERROR_BVECTORS", "An error related to bvectors has been found in the Wannier90 output."}
	NotEnoughStates       = Status{402, "ERROR_DISENTANGLEMENT_NOT_ENOUGH_STATES", "Energy window contains fewer states than number of target WFs."}
	PlotWFCube            = Status{403, "ERROR_PLOT_WF_CUBE", "Error plotting Wannier functions in cube format."}
	Incomplete            = Status{404, "ERROR_OUTPUT_STDOUT_INCOMPLETE", "The stdout output file was incomplete probably because the calculation got interrupted."}
	bvectorMessages       = []string{"Unable to satisfy B1", "kmesh_get_bvector: Not enough bvectors found", "kmesh_get: something wrong, found too many nearest neighbours"}
	notEnoughMessage      = "Energy window contains fewer states than number of target WFs, consider reducing dis_proj_min/increasing dis_win_max?"
	plotCubeMessage       = "Error plotting WF cube. Try one of the following:"
	exitingMessage        = "Exiting......"
	allDoneMessage        = "All done: wannier90 exiting"
	postw90DoneMessage    = "All done: postw90 exiting"
	nnkpWrittenMessageFmt = "Exiting... %s.nnkp written."
)

//Diagnose classifies the wannier90.x run that produced the .wout lines, for the given seedname.
//Specific errors take precedence over an incomplete output, which takes
//precedence over the generic "Exiting......" message.
func Diagnose(lines []string, seedname string) Status {
	return diagnose(lines, allDoneMessage, fmt.Sprintf(nnkpWrittenMessageFmt, seedname))
}

//DiagnosePostw90 is like Diagnose, for the .wpout lines of a postw90.x run.
func DiagnosePostw90(lines []string, seedname string) Status {
	return diagnose(lines, postw90DoneMessage, fmt.Sprintf(nnkpWrittenMessageFmt, seedname))
}

//diagnose classifies a run whose output is complete only if its last
//line is one of the terminators.
func diagnose(lines []string, terminators ...string) Status {
	exiting := false
	for _, line := range lines {
		if strings.Contains(line, exitingMessage) {
			exiting = true
		}
		for _, m := range bvectorMessages {
			if strings.Contains(line, m) {
				return BVectors
			}
		}
		if strings.Contains(line, notEnoughMessage) {
			return NotEnoughStates
		}
		if strings.Contains(line, plotCubeMessage) {
			return PlotWFCube
		}
	}
	if len(lines) == 0 {
		return Incomplete
	}
	last := strings.TrimSpace(lines[len(lines)-1])
	complete := false
	for _, t := range terminators {
		if last == t {
			complete = true
			break
		}
	}
	if !complete {
		return Incomplete
	}
	if exiting {
		return ExitingMessage
	}
	return Finished
}

//FindErrorFiles returns the names of the Wannier90 error files for seedname in dir,
//sorted. Besides seedname.werr, parallel runs can write one file per process, such as
//seedname.node_00001.werr.
func FindErrorFiles(dir, seedname string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, gowannier.NewError(gowannier.IO, "can't list directory", dir, "FindErrorFiles").Wrap(err)
	}
	re := regexp.MustCompile("^" + regexp.QuoteMeta(seedname) + `.+?\.werr$`)
	ret := make([]string, 0, 1)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if n := e.Name(); n == seedname+".werr" || re.MatchString(n) {
			ret = append(ret, n)
		}
	}
	sort.Strings(ret)
	return ret, nil
}
