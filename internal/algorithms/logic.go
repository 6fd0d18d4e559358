// Boolean operations on binarized images
package algorithms

import (
	"image-processing-engine/internal/core"
)

// binaryLevel is the fixed threshold used to binarize logic and morphology operands
const binaryLevel = 127

func isForeground(buf *core.PixelBuffer, i int) bool {
	return Luma(buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2]) > binaryLevel
}

func logical(op string, a, b *core.PixelBuffer, fn func(x, y bool) bool) (*core.PixelBuffer, error) {
	if err := checkBinary(op, a, b); err != nil {
		return nil, err
	}

	out := core.NewPixelBuffer(a.Width, a.Height)
	stride := a.Width * core.Channels
	parallelRows(a.Height, func(start, end int) {
		for i := start * stride; i < end*stride; i += core.Channels {
			writeBinary(out, i, fn(isForeground(a, i), isForeground(b, i)))
		}
	})
	return out, nil
}

func writeBinary(out *core.PixelBuffer, i int, on bool) {
	var v uint8
	if on {
		v = 255
	}
	out.Pix[i] = v
	out.Pix[i+1] = v
	out.Pix[i+2] = v
	out.Pix[i+3] = 255
}

// And is 255 where both binarized operands are 255
func And(a, b *core.PixelBuffer) (*core.PixelBuffer, error) {
	return logical("and", a, b, func(x, y bool) bool { return x && y })
}

// Or is 255 where either binarized operand is 255
func Or(a, b *core.PixelBuffer) (*core.PixelBuffer, error) {
	return logical("or", a, b, func(x, y bool) bool { return x || y })
}

// Xor is 255 where exactly one binarized operand is 255
func Xor(a, b *core.PixelBuffer) (*core.PixelBuffer, error) {
	return logical("xor", a, b, func(x, y bool) bool { return x != y })
}

// Not binarizes a and inverts it
func Not(a *core.PixelBuffer) (*core.PixelBuffer, error) {
	if err := checkUnary("not", a); err != nil {
		return nil, err
	}

	out := core.NewPixelBuffer(a.Width, a.Height)
	stride := a.Width * core.Channels
	parallelRows(a.Height, func(start, end int) {
		for i := start * stride; i < end*stride; i += core.Channels {
			writeBinary(out, i, !isForeground(a, i))
		}
	})
	return out, nil
}
