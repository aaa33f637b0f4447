/*
 * win.go, part of gowannier.
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
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rmera/gowannier/calcfile"
	"github.com/rmera/gowannier/win"
)

var winCmd = &cobra.Command{
	Use:   "win <calculation.toml|yaml>",
	Short: "Write the .win input file for a calculation",
	Long: `Reads a calculation description and writes the corresponding Wannier90 input.
By default the file is <output_dir>/<seedname>.win. With -o - the input is
written to the standard output. With --postw90 the input is checked as one
for postw90.x.`,
	Args: cobra.ExactArgs(1),
	RunE: runWin,
}

func init() {
	winCmd.Flags().StringP("output", "o", "", "output file, - for the standard output")
	winCmd.Flags().Bool("postw90", false, "the input is for postw90.x")
}

func runWin(cmd *cobra.Command, args []string) error {
	F, err := calcfile.Load(args[0])
	if err != nil {
		return err
	}
	in, err := F.Input()
	if err != nil {
		return err
	}
	in.Postw90, _ = cmd.Flags().GetBool("postw90")
	out, _ := cmd.Flags().GetString("output")
	switch out {
	case "":
		return handle(loadConfig()).BuildInput(in)
	case "-":
		return win.Write(cmd.OutOrStdout(), in)
	}
	if err := win.WriteFile(out, in); err != nil {
		return err
	}
	logger.Info("input written", zap.String("file", out))
	return nil
}
