package chart

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrEmpty is returned when exporting a series with no samples.
var ErrEmpty = errors.New("chart has no samples")

// Plot builds a line plot of the series.
func (s *Series) Plot() (*plot.Plot, error) {
	pts := s.Points()
	if len(pts) == 0 {
		return nil, ErrEmpty
	}

	xys := make(plotter.XYs, len(pts))
	for i, p := range pts {
		xys[i].X = p.Time
		xys[i].Y = p.Temperature
	}

	p := plot.New()
	p.Title.Text = "Pump Temperature"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Temperature (°C)"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("building line: %w", err)
	}
	line.Color = color.RGBA{R: 255, A: 255}
	line.Width = vg.Points(3)
	p.Add(line)

	sum := s.Summary()
	p.Y.Min, p.Y.Max = sum.TempRange()
	return p, nil
}

// SavePNG writes the series to path as an image of the given size in inches.
func (s *Series) SavePNG(path string, widthIn, heightIn float64) error {
	p, err := s.Plot()
	if err != nil {
		return err
	}
	if err := p.Save(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch, path); err != nil {
		return fmt.Errorf("saving chart %s: %w", path, err)
	}
	return nil
}
