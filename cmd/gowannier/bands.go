/*
 * bands.go, part of gowannier.
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
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rmera/gowannier"
	"github.com/rmera/gowannier/bands"
	"github.com/rmera/gowannier/calcfile"
)

var bandsCmd = &cobra.Command{
	Use:   "bands [seedname]",
	Short: "Read the interpolated band structure",
	Long: `Reads the band structure written by Wannier90 with bands_plot = .true.
Output from versions older than 3.0 has no labelinfo file, and needs the
calculation file with the k-point path (--path) to guess the labels.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBands,
}

func init() {
	f := bandsCmd.Flags()
	f.String("path", "", "calculation file with the k-point path")
	f.String("plot", "", "save a plot of the bands to this file (png, svg, pdf, eps)")
}

func runBands(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if len(args) > 0 {
		cfg.Seedname = args[0]
	}
	var path *gowannier.KPath
	if pname, _ := cmd.Flags().GetString("path"); pname != "" {
		F, err := calcfile.Load(pname)
		if err != nil {
			return err
		}
		path = F.Path()
	}
	S, warnings, err := handle(cfg).Bands(path)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%d k-points, %d bands\n", S.KPoints.NVecs(), S.NBands())
	lengths := S.KPoints.PathLengths()
	labels := make([]string, len(S.Labels))
	for i, l := range S.Labels {
		labels[i] = fmt.Sprintf("%s (%d, %.6f)", l.Name, l.Index, lengths[l.Index])
	}
	fmt.Fprintf(w, "Labels: %s\n", strings.Join(labels, " "))
	for _, s := range warnings {
		fmt.Fprintf(w, "Warning: %s\n", s)
	}
	if out, _ := cmd.Flags().GetString("plot"); out != "" {
		if err := bands.Plot(S, cfg.Seedname, out); err != nil {
			return err
		}
		logger.Info("band plot written", zap.String("file", out))
	}
	return nil
}
