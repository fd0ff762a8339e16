package jitbench

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const barWidth = vg.Length(12)

// SavePlot draws the JIT and native mean runtime of each image side by
// side. The image format follows the extension of path (.png, .svg, .pdf).
// Images missing from one table are drawn as zero on that side.
func SavePlot(path string, r Report) error {
	names := r.Images()
	jit := make(plotter.Values, len(names))
	native := make(plotter.Values, len(names))
	for i, name := range names {
		jit[i] = r.JIT.Images[name]
		native[i] = r.Native.Images[name]
	}

	p := plot.New()
	p.Title.Text = "Mean runtime per image"
	p.Y.Label.Text = "time"
	p.Legend.Top = true

	jitBars, err := plotter.NewBarChart(jit, barWidth)
	if err != nil {
		return fmt.Errorf("jit bars: %w", err)
	}
	jitBars.Color = plotutil.Color(0)
	jitBars.Offset = -barWidth / 2

	nativeBars, err := plotter.NewBarChart(native, barWidth)
	if err != nil {
		return fmt.Errorf("native bars: %w", err)
	}
	nativeBars.Color = plotutil.Color(1)
	nativeBars.Offset = barWidth / 2

	p.Add(jitBars, nativeBars)
	p.Legend.Add("jit", jitBars)
	p.Legend.Add("native", nativeBars)
	p.NominalX(names...)

	width := vg.Length(len(names))*3*barWidth + 2*vg.Inch
	if width < 4*vg.Inch {
		width = 4 * vg.Inch
	}
	if err := p.Save(width, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot %s: %w", path, err)
	}
	return nil
}
