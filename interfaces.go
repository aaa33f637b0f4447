/*
 * interfaces.go, part of gowannier.
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

//Errors

// Errorer is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
//The decorate slice should contain a list of functions in the calling stack, plus, for each function any relevant information, or nothing.
//If information is to be added to an element of the slice, it should be in this format: "FunctionName: Extra info"
type Errorer interface {
	Error() string
	Decorate(string) []string
}

// KindErrorer is the interface for errors that can tell the class of problem they signal.
type KindErrorer interface {
	Errorer
	Critical() bool
	Kind() ErrorKind
}

//SiteLister is implemented by anything that can give the positions of
//all the sites of a given kind, in the order they appear.
type SiteLister interface {
	SitesOfKind(kind string) [][3]float64
}
