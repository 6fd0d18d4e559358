package core

import (
	"image"

	"golang.org/x/image/draw"
)

// FromImage converts any image.Image into a non-premultiplied RGBA8 buffer.
func FromImage(src image.Image) (*PixelBuffer, error) {
	bounds := src.Bounds()
	nrgba, ok := src.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) || nrgba.Stride != bounds.Dx()*Channels {
		nrgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), src, bounds.Min, draw.Src)
	}

	n := bounds.Dx() * bounds.Dy() * Channels
	if len(nrgba.Pix) < n {
		n = len(nrgba.Pix)
	}
	return NewPixelBufferFromBytes(bounds.Dx(), bounds.Dy(), nrgba.Pix[:n])
}

// ToImage returns a copy of b as an *image.NRGBA
func (b *PixelBuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	copy(img.Pix, b.Pix)
	return img
}
