/*
 * params.go, part of gowannier.
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

package win

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/rmera/gowannier"
)

//Params are the scalar Wannier90 input parameters, such as num_wann or dis_win_max.
//Keys are case-insensitive. Values can be booleans, integers, floats, strings or slices of those.
type Params map[string]interface{}

//Get returns the value for key, ignoring case, and whether it was found.
func (P Params) Get(key string) (interface{}, bool) {
	key = strings.ToLower(key)
	for k, v := range P {
		if strings.ToLower(k) == key {
			return v, true
		}
	}
	return nil, false
}

//Lower returns a copy of P with all the keys in lower case. It returns an error if
//two keys differ only in their case.
func (P Params) Lower() (Params, error) {
	ret := make(Params, len(P))
	orig := make(map[string]string, len(P))
	for k, v := range P {
		l := strings.ToLower(k)
		if o, ok := orig[l]; ok {
			return nil, gowannier.NewError(gowannier.Specification, fmt.Sprintf("parameters %q and %q differ only in case", o, k), "", "Params.Lower")
		}
		orig[l] = k
		ret[l] = v
	}
	return ret, nil
}

//FormatValue returns the Fortran-style representation of v. Booleans are written as .true. or .false.,
//floats in exponential notation with a "d" exponent, and slices as their comma-separated elements.
//Strings are single-quoted if quote is true.
func FormatValue(v interface{}, quote bool) (string, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return "", gowannier.NewError(gowannier.Specification, "nil parameter value", "", "FormatValue")
	}
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		s := make([]string, rv.Len())
		for i := range s {
			e, err := formatScalar(rv.Index(i), quote)
			if err != nil {
				return "", err
			}
			s[i] = e
		}
		return strings.Join(s, ", "), nil
	}
	return formatScalar(rv, quote)
}

func formatScalar(rv reflect.Value, quote bool) (string, error) {
	if rv.Kind() == reflect.Interface && !rv.IsNil() {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			return ".true.", nil
		}
		return ".false.", nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%d", rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("%d", rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return strings.Replace(fmt.Sprintf("%18.10e", rv.Float()), "e", "d", 1), nil
	case reflect.String:
		if quote {
			return "'" + rv.String() + "'", nil
		}
		return rv.String(), nil
	}
	return "", gowannier.NewError(gowannier.Specification, fmt.Sprintf("invalid parameter value of type %s, only booleans, integers, floats and strings are accepted", rv.Type()), "", "FormatValue")
}

//intList returns v as a slice of ints, if v is a slice or array of integers.
func intList(v interface{}) ([]int, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	ret := make([]int, rv.Len())
	for i := range ret {
		e := rv.Index(i)
		if e.Kind() == reflect.Interface && !e.IsNil() {
			e = e.Elem()
		}
		switch e.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			ret[i] = int(e.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			ret[i] = int(e.Uint())
		default:
			return nil, false
		}
	}
	return ret, true
}

//excludeBands checks and formats the value of the exclude_bands parameter.
func excludeBands(v interface{}) (string, error) {
	bands, ok := intList(v)
	if !ok {
		return "", gowannier.NewError(gowannier.Specification, "exclude_bands must be a list of integers", "", "excludeBands")
	}
	seen := make(map[int]bool, len(bands))
	for _, b := range bands {
		if seen[b] {
			return "", gowannier.NewError(gowannier.Specification, "exclude_bands contains duplicate entries", "", "excludeBands")
		}
		if b <= 0 {
			return "", gowannier.NewError(gowannier.Specification, "exclude_bands values must be positive", "", "excludeBands")
		}
		seen[b] = true
	}
	return CompressRanges(bands), nil
}

//lines returns the "key = value" lines for P, sorted by key. P must have lower-case keys.
func (P Params) lines() ([]string, error) {
	keys := make([]string, 0, len(P))
	for k := range P {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ret := make([]string, 0, len(keys))
	for _, k := range keys {
		var val string
		var err error
		if k == "exclude_bands" {
			val, err = excludeBands(P[k])
		} else {
			val, err = FormatValue(P[k], false)
		}
		if err != nil {
			return nil, gowannier.ErrDecorate(err, "Params: "+k)
		}
		ret = append(ret, k+" = "+val)
	}
	return ret, nil
}
