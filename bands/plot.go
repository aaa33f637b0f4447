/*
 * plot.go, part of gowannier.
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

package bands

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/rmera/gowannier"
)

//NewPlot returns a plot of the bands in S against the path length, with the labels of S as
//ticks of the x axis. The path length is measured in fractional coordinates.
func NewPlot(S *Structure, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "k"
	p.Y.Label.Text = "E (eV)"
	p.Add(plotter.NewGrid())
	x := S.KPoints.PathLengths()
	for b := 0; b < S.NBands(); b++ {
		for _, pts := range segments(x, S.Band(b)) {
			l, err := plotter.NewLine(pts)
			if err != nil {
				return nil, gowannier.NewError(gowannier.Structural, "can't plot band", "", "NewPlot").Wrap(err)
			}
			l.Color = plotutil.Color(b)
			p.Add(l)
		}
	}
	ticks := make([]plot.Tick, 0, len(S.Labels))
	for _, v := range S.Labels {
		ticks = append(ticks, plot.Tick{Value: x[v.Index], Label: v.Name})
	}
	if len(ticks) > 0 {
		p.X.Tick.Marker = plot.ConstantTicks(ticks)
	}
	if len(x) > 0 {
		p.X.Min = x[0]
		p.X.Max = x[len(x)-1]
	}
	return p, nil
}

//segments splits a band into the runs of points with a known energy.
//Energies that could not be read are NaN, and leave a gap in the line.
func segments(x, e []float64) []plotter.XYs {
	ret := make([]plotter.XYs, 0, 1)
	var cur plotter.XYs
	for i := range x {
		if math.IsNaN(e[i]) {
			if len(cur) > 0 {
				ret = append(ret, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, plotter.XY{X: x[i], Y: e[i]})
	}
	if len(cur) > 0 {
		ret = append(ret, cur)
	}
	return ret
}

//Plot saves a plot of the bands in S to filename. The format is taken from
//the file extension (png, svg, pdf, eps...).
func Plot(S *Structure, title, filename string) error {
	p, err := NewPlot(S, title)
	if err != nil {
		return gowannier.ErrDecorate(err, "Plot")
	}
	if err := p.Save(5*vg.Inch, 4*vg.Inch, filename); err != nil {
		return gowannier.NewError(gowannier.IO, "can't save plot", filename, "Plot").Wrap(err)
	}
	return nil
}
