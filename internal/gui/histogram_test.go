package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-processing-engine/internal/algorithms"
)

func TestRenderHistogramEmpty(t *testing.T) {
	img := renderHistogram(algorithms.Histogram{}, 10)
	assert.Equal(t, algorithms.Levels, img.Bounds().Dx())
	assert.Equal(t, 10, img.Bounds().Dy())
	for y := 0; y < 10; y++ {
		assert.Equal(t, histogramBackground, img.NRGBAAt(0, y))
	}
}

func TestRenderHistogramScalesToPeak(t *testing.T) {
	var h algorithms.Histogram
	h[0] = 4
	h[255] = 2

	img := renderHistogram(h, 10)

	// peak column is full height
	assert.Equal(t, histogramBar, img.NRGBAAt(0, 0))
	assert.Equal(t, histogramBar, img.NRGBAAt(0, 9))

	// half-height column
	assert.Equal(t, histogramBackground, img.NRGBAAt(255, 4))
	assert.Equal(t, histogramBar, img.NRGBAAt(255, 5))

	assert.Equal(t, histogramBackground, img.NRGBAAt(128, 9))
}

func TestParamsFromValues(t *testing.T) {
	p := paramsFromValues(map[string]float64{
		"constantValue": 99.6,
		"kernelSize":    4,
		"sigmaValue":    2.5,
	})
	assert.Equal(t, 100, p.ConstantValue)
	assert.Equal(t, 5, p.KernelSize)
	assert.Equal(t, 2.5, p.SigmaValue)
	assert.Equal(t, algorithms.DefaultParams().ThresholdValue, p.ThresholdValue)

	assert.Equal(t, algorithms.DefaultParams(), paramsFromValues(paramValues(algorithms.DefaultParams())))
}

func TestShowsHistogram(t *testing.T) {
	assert.True(t, showsHistogram("equalize"))
	assert.False(t, showsHistogram("add"))
}

func TestSliderDefsFollowRegistry(t *testing.T) {
	defs := sliderDefsFrom(algorithms.Parameters())
	require.Len(t, defs, len(algorithms.Parameters()))

	byName := make(map[string]sliderDef)
	for _, d := range defs {
		byName[d.name] = d
	}

	kernel := byName["kernelSize"]
	assert.Equal(t, 1.0, kernel.min)
	assert.Equal(t, 51.0, kernel.max)
	assert.Equal(t, 2.0, kernel.step)
	assert.Equal(t, 3.0, kernel.dflt)

	assert.Equal(t, 0.01, byName["blendFactor"].step)
	assert.Equal(t, 0.1, byName["sigmaValue"].step)
	assert.Equal(t, 255.0, byName["thresholdValue"].max)
	assert.Equal(t, 2600.0, byName["orderValue"].max)
}
