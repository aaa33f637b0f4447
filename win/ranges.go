/*
 * ranges.go, part of gowannier.
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
	"sort"
	"strconv"
	"strings"
)

//GroupRanges sorts a copy of values and splits it into runs of consecutive integers.
//Each run is returned as its first and last values, or only one value if they are equal.
func GroupRanges(values []int) [][]int {
	if len(values) == 0 {
		return nil
	}
	v := make([]int, len(values))
	copy(v, values)
	sort.Ints(v)
	groups := make([][]int, 0, 2)
	start := v[0]
	for i := 1; i < len(v); i++ {
		if v[i]-1 <= v[i-1] {
			continue
		}
		groups = append(groups, bounds(start, v[i-1]))
		start = v[i]
	}
	groups = append(groups, bounds(start, v[len(v)-1]))
	return groups
}

func bounds(a, b int) []int {
	if a == b {
		return []int{a}
	}
	return []int{a, b}
}

//CompressRanges returns values in the compressed range notation used by Wannier90,
//such as "1-3,5-6,8". An empty input gives an empty string.
func CompressRanges(values []int) string {
	groups := GroupRanges(values)
	s := make([]string, len(groups))
	for i, g := range groups {
		n := make([]string, len(g))
		for j, v := range g {
			n[j] = strconv.Itoa(v)
		}
		s[i] = strings.Join(n, "-")
	}
	return strings.Join(s, ",")
}
