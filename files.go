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

package gowannier

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//Wannier90 output files for large systems are often archived compressed.
//The functions here read them transparently.

//zstdCloser gives a *zstd.Decoder the io.ReadCloser signature.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

//newReader returns a reader for r, decompressing it if name ends in .zst or .gz.
func newReader(name string, r io.Reader) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(name), ".zst"):
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zstdCloser{d}, nil
	case strings.HasSuffix(strings.ToLower(name), ".gz"):
		return gzip.NewReader(r)
	default:
		return io.NopCloser(r), nil
	}
}

//ReadText reads the whole file name and returns its lines, without the line terminators.
//Files with a .zst or .gz extension are decompressed on the fly.
func ReadText(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, NewError(IO, "can't open file", name, "ReadText").Wrap(err)
	}
	defer f.Close()
	r, err := newReader(name, bufio.NewReader(f))
	if err != nil {
		return nil, NewError(IO, "can't decompress file", name, "ReadText").Wrap(err)
	}
	defer r.Close()
	lines, err := ReadLines(r)
	if err != nil {
		return nil, NewError(IO, "can't read file", name, "ReadText").Wrap(err)
	}
	return lines, nil
}

//ReadLines reads r until EOF and returns its lines, without the line terminators.
//Carriage returns before a newline are removed.
func ReadLines(r io.Reader) ([]string, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lines := make([]string, 0, 128)
	for s.Scan() {
		lines = append(lines, strings.TrimSuffix(s.Text(), "\r"))
	}
	return lines, s.Err()
}

//WriteText writes text to the file name, compressing it if name ends in .zst or .gz.
func WriteText(name, text string) error {
	f, err := os.Create(name)
	if err != nil {
		return NewError(IO, "can't create file", name, "WriteText").Wrap(err)
	}
	var w io.WriteCloser
	switch {
	case strings.HasSuffix(strings.ToLower(name), ".zst"):
		w, err = zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	case strings.HasSuffix(strings.ToLower(name), ".gz"):
		w, err = gzip.NewWriterLevel(f, gzip.BestCompression)
	default:
		w = nopWriteCloser{f}
	}
	if err != nil {
		f.Close()
		return NewError(IO, "can't compress file", name, "WriteText").Wrap(err)
	}
	if _, err = io.WriteString(w, text); err != nil {
		w.Close()
		f.Close()
		return NewError(IO, "can't write file", name, "WriteText").Wrap(err)
	}
	if err = w.Close(); err != nil {
		f.Close()
		return NewError(IO, "can't write file", name, "WriteText").Wrap(err)
	}
	if err = f.Close(); err != nil {
		return NewError(IO, "can't close file", name, "WriteText").Wrap(err)
	}
	return nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
