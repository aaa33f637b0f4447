/*
 * watch.go, part of gowannier.
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
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch <seedname.wout|seedname.wpout>",
	Short: "Rescan a .wout or .wpout file each time it is written",
	Long: `Follows a running Wannier90 calculation. The output file is scanned
and summarized after each write, until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Bool("json", false, "print the results as JSON")
}

//writes closer than this are reported once.
const debounce = 100 * time.Millisecond

//watchOutput scans the file name each time it is written or created, and passes the
//result to report, until ctx is done. If the file exists, it is scanned once at the start.
//The directory is watched, not the file, so the file can be created or replaced.
func watchOutput(ctx context.Context, name string, report func(*result, error)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := fw.Add(filepath.Dir(name)); err != nil {
		return err
	}
	target := filepath.Clean(name)
	if _, err := os.Stat(name); err == nil {
		report(scanOutput(name))
	}
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				pending = time.After(debounce)
			}
		case <-pending:
			pending = nil
			report(scanOutput(name))
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.String("file", name), zap.Error(err))
		}
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info("watching", zap.String("file", args[0]))
	return watchOutput(ctx, args[0], func(r *result, err error) {
		if err != nil {
			//the file can be caught half-written.
			logger.Warn("can't scan output", zap.Error(err))
			return
		}
		if err := writeResult(cmd, r); err != nil {
			logger.Error("can't write result", zap.Error(err))
		}
	})
}
