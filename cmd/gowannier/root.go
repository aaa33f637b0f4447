/*
 * root.go, part of gowannier.
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
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rmera/gowannier/bands"
	"github.com/rmera/gowannier/w90"
)

//config holds the settings shared by all commands.
//Values come from .gowannier.yaml, GOWANNIER_* env vars and flags.
type config struct {
	Verbose        bool    `mapstructure:"verbose"`
	Seedname       string  `mapstructure:"seedname"`
	OutputDir      string  `mapstructure:"output_dir"`
	LabelTolerance float64 `mapstructure:"label_tolerance"`
}

var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "gowannier",
	Short: "Prepare Wannier90 inputs and read their results",
	Long: `gowannier writes Wannier90 .win files from calculation descriptions in TOML or YAML,
and reads .wout files and interpolated band structures.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zconf := zap.NewProductionConfig()
		if loadConfig().Verbose {
			zconf.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := zconf.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	f := rootCmd.PersistentFlags()
	f.String("config", "", "config file (default .gowannier.yaml)")
	f.BoolP("verbose", "v", false, "verbose output")
	f.StringP("seedname", "s", "aiida", "Wannier90 seedname")
	f.StringP("output_dir", "d", ".", "directory of the Wannier90 files")
	f.Float64("label_tolerance", bands.DefaultTolerance, "tolerance to match k-points to special points when guessing labels")
	for _, name := range []string{"verbose", "seedname", "output_dir", "label_tolerance"} {
		_ = viper.BindPFlag(name, f.Lookup(name))
	}
	rootCmd.AddCommand(winCmd, woutCmd, bandsCmd, watchCmd)
}

func initConfig() {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".gowannier")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}
	viper.SetEnvPrefix("GOWANNIER")
	viper.AutomaticEnv()
	//No config file is fine.
	_ = viper.ReadInConfig()
}

func loadConfig() config {
	viper.SetDefault("verbose", false)
	viper.SetDefault("seedname", "aiida")
	viper.SetDefault("output_dir", ".")
	viper.SetDefault("label_tolerance", bands.DefaultTolerance)
	var cfg config
	_ = viper.Unmarshal(&cfg)
	return cfg
}

//handle returns a handle for the calculation set in the configuration.
func handle(cfg config) *w90.Handle {
	h := w90.NewHandle()
	h.SetName(cfg.Seedname)
	h.SetDir(cfg.OutputDir)
	h.SetLabelTolerance(cfg.LabelTolerance)
	h.SetLogger(logger)
	return h
}
