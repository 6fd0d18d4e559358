// Color and geometric transforms
package algorithms

import (
	"image-processing-engine/internal/core"
)

// Grayscale writes the luma of each pixel to R,G,B and forces alpha to 255
func Grayscale(src *core.PixelBuffer) (*core.PixelBuffer, error) {
	if err := checkUnary("grayscale", src); err != nil {
		return nil, err
	}

	out := core.NewPixelBuffer(src.Width, src.Height)
	stride := src.Width * core.Channels
	parallelRows(src.Height, func(start, end int) {
		for i := start * stride; i < end*stride; i += core.Channels {
			gray := Luma(src.Pix[i], src.Pix[i+1], src.Pix[i+2])
			out.Pix[i] = gray
			out.Pix[i+1] = gray
			out.Pix[i+2] = gray
			out.Pix[i+3] = 255
		}
	})
	return out, nil
}

// Threshold maps luma > t to 255 and everything else to 0.
// A pixel whose luma equals t becomes 0.
func Threshold(src *core.PixelBuffer, t int) (*core.PixelBuffer, error) {
	if err := validateThreshold("threshold", t); err != nil {
		return nil, err
	}
	if err := checkUnary("threshold", src); err != nil {
		return nil, err
	}

	out := core.NewPixelBuffer(src.Width, src.Height)
	stride := src.Width * core.Channels
	parallelRows(src.Height, func(start, end int) {
		for i := start * stride; i < end*stride; i += core.Channels {
			writeBinary(out, i, int(Luma(src.Pix[i], src.Pix[i+1], src.Pix[i+2])) > t)
		}
	})
	return out, nil
}

// FlipHorizontal mirrors each row; all four channels move together
func FlipHorizontal(src *core.PixelBuffer) (*core.PixelBuffer, error) {
	if err := checkUnary("flipHorizontal", src); err != nil {
		return nil, err
	}

	out := core.NewPixelBuffer(src.Width, src.Height)
	parallelRows(src.Height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < src.Width; x++ {
				from := src.Offset(src.Width-1-x, y)
				copy(out.Pix[out.Offset(x, y):out.Offset(x, y)+core.Channels], src.Pix[from:from+core.Channels])
			}
		}
	})
	return out, nil
}

// FlipVertical mirrors each column; all four channels move together
func FlipVertical(src *core.PixelBuffer) (*core.PixelBuffer, error) {
	if err := checkUnary("flipVertical", src); err != nil {
		return nil, err
	}

	out := core.NewPixelBuffer(src.Width, src.Height)
	stride := src.Width * core.Channels
	parallelRows(src.Height, func(start, end int) {
		for y := start; y < end; y++ {
			from := (src.Height - 1 - y) * stride
			copy(out.Pix[y*stride:(y+1)*stride], src.Pix[from:from+stride])
		}
	})
	return out, nil
}
