// Package plot renders consumption functions and simulated series as
// terminal charts.
package plot

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

const (
	defaultWidth   = 70
	defaultHeight  = 15
	defaultSamples = 200
)

// Func samples a callable on [xMin, xMax] and renders it.
func Func(f func(float64) float64, xMin, xMax float64, caption string) (string, error) {
	series, err := sample(f, xMin, xMax, defaultSamples)
	if err != nil {
		return "", err
	}
	return asciigraph.Plot(series,
		asciigraph.Width(defaultWidth),
		asciigraph.Height(defaultHeight),
		asciigraph.Caption(caption),
	), nil
}

// Funcs overlays several callables on the same domain.
func Funcs(fs []func(float64) float64, xMin, xMax float64, caption string) (string, error) {
	data := make([][]float64, len(fs))
	for i, f := range fs {
		series, err := sample(f, xMin, xMax, defaultSamples)
		if err != nil {
			return "", err
		}
		data[i] = series
	}
	return asciigraph.PlotMany(data,
		asciigraph.Width(defaultWidth),
		asciigraph.Height(defaultHeight),
		asciigraph.Caption(caption),
	), nil
}

// Series renders a simulated time series.
func Series(series []float64, caption string) (string, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("empty series")
	}
	return asciigraph.Plot(series,
		asciigraph.Width(defaultWidth),
		asciigraph.Height(defaultHeight),
		asciigraph.Caption(caption),
	), nil
}

func sample(f func(float64) float64, xMin, xMax float64, n int) ([]float64, error) {
	if xMax <= xMin {
		return nil, fmt.Errorf("domain max %g must exceed min %g", xMax, xMin)
	}
	series := make([]float64, n)
	step := (xMax - xMin) / float64(n-1)
	for i := range series {
		series[i] = f(xMin + float64(i)*step)
	}
	return series, nil
}
