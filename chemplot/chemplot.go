/*
 * chemplot.go, part of gocavity.
 *
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

//Package chemplot draws quick diagnostic plots of fields, tables and probe sets
//with gonum/plot. Each function writes a PNG file named plotname.png.
package chemplot

import (
	"fmt"
	"image/color"
	"math"

	"github.com/rmera/gocavity/grid"
	"github.com/rmera/gocavity/pass"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

func save(p *plot.Plot, plotname string) error {
	return p.Save(5*vg.Inch, 4*vg.Inch, fmt.Sprintf("%s.png", plotname))
}

//Curve plots ys against xs as a line, for instance a PMF table (see statpot.PMF.XY).
func Curve(xs, ys []float64, title, plotname string) error {
	if len(xs) != len(ys) || len(xs) == 0 {
		return fmt.Errorf("chemplot.Curve: need the same, non-zero number of x and y values, got %d and %d", len(xs), len(ys))
	}
	p := basicPlot(title, "Distance (A)", "Value")
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.LineStyle.Width = vg.Points(1)
	p.Add(l)
	return save(p, plotname)
}

//FieldHistogram plots the histogram of the values of f in the given number of bins,
//with a vertical line on each shown contour level.
func FieldHistogram(f *grid.Field, bins int, title, plotname string) error {
	if f == nil || len(f.Data) == 0 {
		return fmt.Errorf("chemplot.FieldHistogram: empty field")
	}
	if bins <= 0 {
		return fmt.Errorf("chemplot.FieldHistogram: invalid number of bins %d", bins)
	}
	p := basicPlot(title, f.Name, "Grid points")
	h, err := plotter.NewHist(plotter.Values(f.Values()), bins)
	if err != nil {
		return err
	}
	p.Add(h)
	weights := make([]float64, len(h.Bins))
	for i, b := range h.Bins {
		weights[i] = b.Weight
	}
	top := floats.Max(weights)
	shown := 0
	for _, c := range f.Levels {
		if c.Shown {
			shown++
		}
	}
	key := 0
	for _, c := range f.Levels {
		if !c.Shown {
			continue
		}
		l, err := plotter.NewLine(plotter.XYs{{X: c.Value, Y: 0}, {X: c.Value, Y: top}})
		if err != nil {
			return err
		}
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Color = c.Color
		if c.Color.A == 0 {
			r, g, b := colors(key, shown)
			l.LineStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		}
		p.Add(l)
		p.Legend.Add(fmt.Sprintf("%.3g", c.Value), l)
		key++
	}
	return save(p, plotname)
}

//Burial plots the burial count of each probe against its accretion layer, with
//one color per layer.
func Burial(probes []pass.Probe, title, plotname string) error {
	if len(probes) == 0 {
		return fmt.Errorf("chemplot.Burial: no probes")
	}
	p := basicPlot(title, "Layer", "Burial")
	layers := 0
	for _, pr := range probes {
		if pr.Layer+1 > layers {
			layers = pr.Layer + 1
		}
	}
	byLayer := make([]plotter.XYs, layers)
	for _, pr := range probes {
		byLayer[pr.Layer] = append(byLayer[pr.Layer], plotter.XY{X: float64(pr.Layer), Y: float64(pr.Burial)})
	}
	for key, pts := range byLayer {
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		r, g, b := colors(key, layers)
		s.GlyphStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
	}
	return save(p, plotname)
}

//takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	conversion := 255.0 * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i := math.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	var r, g, b float64
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return uint8(r * conversion), uint8(g * conversion), uint8(b * conversion)
}

//colors returns the color for the key-th of steps series, going from red to violet
//and skipping the yellows.
func colors(key, steps int) (r, g, b uint8) {
	if steps < 1 {
		steps = 1
	}
	hp := float64(key)*260.0/float64(steps) + 20.0
	h := hp + 20.0
	if hp < 55 {
		h = hp - 20.0
	}
	return iHVS2RGB(h, 1, 1)
}
