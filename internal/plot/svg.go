package plot

import (
	"fmt"
	"strings"
)

// FuncSVG renders a callable on [xMin, xMax] as an SVG polyline.
func FuncSVG(f func(float64) float64, xMin, xMax float64, width, height int, strokeColor string) (string, error) {
	series, err := sample(f, xMin, xMax, defaultSamples)
	if err != nil {
		return "", err
	}
	return seriesSVG(series, width, height, strokeColor), nil
}

// SeriesSVG renders a time series as an SVG polyline.
func SeriesSVG(series []float64, width, height int, strokeColor string) (string, error) {
	if len(series) < 2 {
		return "", fmt.Errorf("need at least 2 points, got %d", len(series))
	}
	return seriesSVG(series, width, height, strokeColor), nil
}

func seriesSVG(series []float64, width, height int, strokeColor string) string {
	minY, maxY := series[0], series[0]
	for _, y := range series {
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}

	const padding = 10.0
	w := float64(width) - 2*padding
	h := float64(height) - 2*padding

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<polyline fill="none" stroke="%s" stroke-width="1.5" points="`,
		width, height, width, height, strokeColor))

	for i, y := range series {
		px := padding + w*float64(i)/float64(len(series)-1)
		py := padding + h*(1.0-(y-minY)/rangeY)
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprintf("%.1f,%.1f", px, py))
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
