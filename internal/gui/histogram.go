package gui

import (
	"fmt"
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"image-processing-engine/internal/algorithms"
	"image-processing-engine/internal/core"
	"image-processing-engine/internal/metrics"
)

const histogramHeight = 100

var (
	histogramBackground = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	histogramBar        = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
)

// HistogramPanel draws the luma histogram of the last result
type HistogramPanel struct {
	container *fyne.Container
	plot      *canvas.Image
	summary   *widget.Label
}

func NewHistogramPanel() *HistogramPanel {
	hp := &HistogramPanel{
		plot:    canvas.NewImageFromImage(renderHistogram(algorithms.Histogram{}, histogramHeight)),
		summary: widget.NewLabel(""),
	}
	hp.plot.FillMode = canvas.ImageFillStretch
	hp.plot.ScaleMode = canvas.ImageScalePixels
	hp.plot.SetMinSize(fyne.NewSize(algorithms.Levels, histogramHeight))

	hp.container = container.NewBorder(nil, hp.summary, nil, nil, hp.plot)
	return hp
}

// Update recomputes the histogram for buf
func (hp *HistogramPanel) Update(buf *core.PixelBuffer) error {
	h, err := algorithms.ComputeHistogram(buf)
	if err != nil {
		return err
	}
	s, err := metrics.SummarizeHistogram(h)
	if err != nil {
		return err
	}

	hp.plot.Image = renderHistogram(h, histogramHeight)
	hp.plot.Refresh()
	hp.summary.SetText(fmt.Sprintf("mean %.1f  median %.0f  stddev %.1f  range %d-%d",
		s.Mean, s.Median, s.StdDev, s.Min, s.Max))
	return nil
}

// Clear empties the plot
func (hp *HistogramPanel) Clear() {
	hp.plot.Image = renderHistogram(algorithms.Histogram{}, histogramHeight)
	hp.plot.Refresh()
	hp.summary.SetText("")
}

func (hp *HistogramPanel) GetContainer() *fyne.Container {
	return hp.container
}

// renderHistogram draws one column per level, scaled so the fullest bucket spans height
func renderHistogram(h algorithms.Histogram, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, algorithms.Levels, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] =
			histogramBackground.R, histogramBackground.G, histogramBackground.B, histogramBackground.A
	}

	peak := h.Max()
	if peak == 0 {
		return img
	}
	for level, count := range h {
		bar := (count*height + peak/2) / peak
		for y := height - bar; y < height; y++ {
			img.SetNRGBA(level, y, histogramBar)
		}
	}
	return img
}
