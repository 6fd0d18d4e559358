package gui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"image-processing-engine/internal/core"
)

// ImagePanes shows image 1, image 2 and the result side by side
type ImagePanes struct {
	container *fyne.Container

	primary   *canvas.Image
	secondary *canvas.Image
	result    *canvas.Image
}

func NewImagePanes() *ImagePanes {
	ip := &ImagePanes{
		primary:   newPane(),
		secondary: newPane(),
		result:    newPane(),
	}

	ip.container = container.NewGridWithColumns(3,
		widget.NewCard("Image 1", "", ip.primary),
		widget.NewCard("Image 2", "", ip.secondary),
		widget.NewCard("Result", "", ip.result),
	)
	return ip
}

func newPane() *canvas.Image {
	img := canvas.NewImageFromImage(placeholder())
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScalePixels
	img.SetMinSize(fyne.NewSize(300, 300))
	return img
}

func placeholder() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{R: 40, G: 40, B: 40, A: 255})
	return img
}

func setPane(pane *canvas.Image, buf *core.PixelBuffer) {
	if buf == nil {
		pane.Image = placeholder()
	} else {
		pane.Image = buf.ToImage()
	}
	pane.Refresh()
}

func (ip *ImagePanes) SetPrimary(buf *core.PixelBuffer)   { setPane(ip.primary, buf) }
func (ip *ImagePanes) SetSecondary(buf *core.PixelBuffer) { setPane(ip.secondary, buf) }
func (ip *ImagePanes) SetResult(buf *core.PixelBuffer)    { setPane(ip.result, buf) }

func (ip *ImagePanes) GetContainer() *fyne.Container {
	return ip.container
}
