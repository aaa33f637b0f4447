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

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rmera/gowannier"
	"github.com/rmera/gowannier/calcfile"
	"github.com/rmera/gowannier/wout"
)

var woutCmd = &cobra.Command{
	Use:   "wout <seedname.wout|seedname.wpout>",
	Short: "Scan a .wout or .wpout file and classify the run",
	Long: `Scans the output of wannier90.x (.wout) or postw90.x (.wpout) and classifies
the run. With --xsf, the final Wannier centres of a .wout file are written,
together with the structure in the calculation file given with --structure,
to an XSF file.`,
	Args: cobra.ExactArgs(1),
	RunE: runWout,
}

func init() {
	f := woutCmd.Flags()
	f.Bool("json", false, "print the results as JSON")
	f.String("xsf", "", "write the structure and the Wannier centres to this XSF file")
	f.String("structure", "", "calculation file with the structure, for --xsf")
}

//result is what the wout and watch commands report.
type result struct {
	Status  wout.Status         `json:"status"`
	Output  *wout.Output        `json:"output,omitempty"`
	Postw90 *wout.Postw90Output `json:"postw90_output,omitempty"`
}

//trimCompression removes the compression extension, if any, from name.
func trimCompression(name string) string {
	for _, s := range []string{".gz", ".zst"} {
		name = strings.TrimSuffix(name, s)
	}
	return name
}

//isPostw90 returns true if name, which can be compressed, is a .wpout file.
func isPostw90(name string) bool {
	return strings.HasSuffix(trimCompression(name), ".wpout")
}

//seedOf returns the seedname of a .wout or .wpout file name, which can be compressed.
func seedOf(name string) string {
	base := trimCompression(filepath.Base(name))
	for _, s := range []string{".wout", ".wpout"} {
		base = strings.TrimSuffix(base, s)
	}
	return base
}

//scanOutput reads, classifies and scans the .wout or .wpout file name.
func scanOutput(name string) (*result, error) {
	lines, err := gowannier.ReadText(name)
	if err != nil {
		return nil, err
	}
	if isPostw90(name) {
		return &result{Status: wout.DiagnosePostw90(lines, seedOf(name)), Postw90: wout.ScanPostw90(lines)}, nil
	}
	res := &result{Status: wout.Diagnose(lines, seedOf(name))}
	if res.Output, err = wout.Scan(lines); err != nil {
		return res, gowannier.NewError(gowannier.Structural, "can't scan output", name, "scanOutput").Wrap(err)
	}
	return res, nil
}

func ptrString(f *float64, format string) string {
	if f == nil {
		return "-"
	}
	return fmt.Sprintf(format, *f)
}

//printResult writes a human-readable summary of r to w.
func printResult(w io.Writer, r *result) {
	fmt.Fprintf(w, "Status: %s\n", r.Status)
	if p := r.Postw90; p != nil {
		fmt.Fprintf(w, "BoltzWann time (s): %s\n", ptrString(p.WallclockBoltzWann, "%.4f"))
		for _, s := range p.Warnings {
			fmt.Fprintf(w, "Warning: %s\n", s)
		}
	}
	o := r.Output
	if o == nil {
		return
	}
	fmt.Fprintf(w, "Wannier functions: %d, converged: %t, restart: %t\n", o.NumberWFs, o.Converged, o.Restart)
	fmt.Fprintf(w, "Omega I: %s  Omega D: %s  Omega OD: %s  Omega Total: %s\n",
		ptrString(o.OmegaI, "%.9f"), ptrString(o.OmegaD, "%.9f"), ptrString(o.OmegaOD, "%.9f"), ptrString(o.OmegaTotal, "%.9f"))
	for _, f := range o.Final {
		c := make([]string, 3)
		for i, v := range f.Centre {
			c[i] = ptrString(v, "%10.6f")
		}
		fmt.Fprintf(w, "WF %4d  centre (%s)  spread %s  Im/Re %s\n", f.ID, strings.Join(c, ", "), ptrString(f.Spread, "%12.8f"), ptrString(f.ImReRatio, "%.6f"))
	}
	for _, s := range o.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", s)
	}
}

func writeResult(cmd *cobra.Command, r *result) error {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	printResult(cmd.OutOrStdout(), r)
	return nil
}

//writeCentres writes the structure in the calculation file calc and the
//centres in r to the XSF file name.
func writeCentres(r *result, calc, name string) error {
	if calc == "" {
		return gowannier.NewError(gowannier.Specification, "--xsf needs a calculation file with the structure (--structure)", name, "writeCentres")
	}
	F, err := calcfile.Load(calc)
	if err != nil {
		return err
	}
	in, err := F.Input()
	if err != nil {
		return err
	}
	var b strings.Builder
	if err := wout.WriteCentresXSF(&b, in.Structure, r.Output); err != nil {
		return gowannier.ErrDecorate(err, "writeCentres")
	}
	if err := os.WriteFile(name, []byte(b.String()), 0644); err != nil {
		return gowannier.NewError(gowannier.IO, "can't write file", name, "writeCentres").Wrap(err)
	}
	logger.Info("centres written", zap.String("file", name))
	return nil
}

func runWout(cmd *cobra.Command, args []string) error {
	r, err := scanOutput(args[0])
	if err != nil {
		return err
	}
	if xsf, _ := cmd.Flags().GetString("xsf"); xsf != "" {
		calc, _ := cmd.Flags().GetString("structure")
		if err := writeCentres(r, calc, xsf); err != nil {
			return err
		}
	}
	return writeResult(cmd, r)
}
