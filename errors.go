/*
 * errors.go, part of gowannier.
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
	"errors"
	"fmt"
	"strings"
)

//ErrorKind classifies the errors returned by the library.
type ErrorKind int

const (
	//Specification errors signal contradictory or incomplete input.
	//They are returned before any output is produced.
	Specification ErrorKind = iota + 1
	//Structural errors signal that a file lacks a required anchor, or is
	//otherwise incompatible with the expected format. They are never swallowed.
	Structural
	//IO errors wrap problems opening, reading or writing files.
	IO
)

func (K ErrorKind) String() string {
	switch K {
	case Specification:
		return "specification"
	case Structural:
		return "structural"
	case IO:
		return "I/O"
	}
	return "unknown"
}

//Error is the general structure for gowannier errors. It fullfills Errorer and KindErrorer,
//and it can wrap another error.
type Error struct {
	message  string
	filename string //the file that has problems, or empty string if none.
	kind     ErrorKind
	deco     []string
	critical bool
	err      error
}

//NewError returns a critical error of the given kind. The caller names, if any, are
//used as the initial decoration.
func NewError(kind ErrorKind, message, filename string, caller ...string) *Error {
	deco := make([]string, 0, len(caller)+2)
	deco = append(deco, caller...)
	return &Error{message: message, filename: filename, kind: kind, deco: deco, critical: true}
}

//Wrap sets err as the error underlying E, and returns E.
func (E *Error) Wrap(err error) *Error {
	E.err = err
	return E
}

func (E *Error) Error() string {
	msg := E.message
	if E.err != nil {
		msg = fmt.Sprintf("%s: %s", msg, E.err.Error())
	}
	if E.filename != "" {
		return fmt.Sprintf("gowannier %s error in %s: %s", E.kind, E.filename, msg)
	}
	return fmt.Sprintf("gowannier %s error: %s", E.kind, msg)
}

//Decorate adds deco to the decoration slice of the error, and returns the resulting slice.
//If passed an empty string, it just returns the current value.
func (E *Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//Trace returns the decoration of the error as a single string, innermost caller first.
func (E *Error) Trace() string { return strings.Join(E.deco, " <- ") }

func (E *Error) FileName() string { return E.filename }

func (E *Error) Critical() bool { return E.critical }

func (E *Error) Kind() ErrorKind { return E.kind }

func (E *Error) Unwrap() error { return E.err }

//ErrDecorate decorates err with the caller's name, if err implements Errorer, and returns it.
//Other errors are returned unchanged.
func ErrDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if err2, ok := err.(Errorer); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}

//IsKind returns true if err, or any error it wraps, is a KindErrorer of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var k KindErrorer
	if errors.As(err, &k) {
		return k.Kind() == kind
	}
	return false
}
