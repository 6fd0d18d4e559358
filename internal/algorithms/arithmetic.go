// Per-pixel arithmetic between two images or an image and a constant
package algorithms

import (
	"math"

	"image-processing-engine/internal/core"
)

// scaleBase maps the 0-255 constant onto a 0-5.1x factor (50 is identity).
const scaleBase = 50.0

// combine applies fn to the R,G,B channels of a and b; alpha is forced to 255.
func combine(op string, a, b *core.PixelBuffer, fn func(x, y uint8) uint8) (*core.PixelBuffer, error) {
	if err := checkBinary(op, a, b); err != nil {
		return nil, err
	}

	out := core.NewPixelBuffer(a.Width, a.Height)
	stride := a.Width * core.Channels
	parallelRows(a.Height, func(start, end int) {
		for i := start * stride; i < end*stride; i += core.Channels {
			out.Pix[i] = fn(a.Pix[i], b.Pix[i])
			out.Pix[i+1] = fn(a.Pix[i+1], b.Pix[i+1])
			out.Pix[i+2] = fn(a.Pix[i+2], b.Pix[i+2])
			out.Pix[i+3] = 255
		}
	})
	return out, nil
}

// pointwise applies fn to the R,G,B channels of a; alpha is forced to 255.
func pointwise(op string, a *core.PixelBuffer, fn func(x uint8) uint8) (*core.PixelBuffer, error) {
	if err := checkUnary(op, a); err != nil {
		return nil, err
	}

	out := core.NewPixelBuffer(a.Width, a.Height)
	stride := a.Width * core.Channels
	parallelRows(a.Height, func(start, end int) {
		for i := start * stride; i < end*stride; i += core.Channels {
			out.Pix[i] = fn(a.Pix[i])
			out.Pix[i+1] = fn(a.Pix[i+1])
			out.Pix[i+2] = fn(a.Pix[i+2])
			out.Pix[i+3] = 255
		}
	})
	return out, nil
}

// Add returns clamp(a+b) per channel
func Add(a, b *core.PixelBuffer) (*core.PixelBuffer, error) {
	return combine("add", a, b, func(x, y uint8) uint8 {
		return saturate(int(x) + int(y))
	})
}

// Subtract returns clamp(a-b) per channel
func Subtract(a, b *core.PixelBuffer) (*core.PixelBuffer, error) {
	return combine("subtract", a, b, func(x, y uint8) uint8 {
		return saturate(int(x) - int(y))
	})
}

// AddConstant returns clamp(a+k) per channel, k in [0,255]
func AddConstant(a *core.PixelBuffer, k int) (*core.PixelBuffer, error) {
	if err := validateConstant("addConstant", k); err != nil {
		return nil, err
	}
	return pointwise("addConstant", a, func(x uint8) uint8 {
		return saturate(int(x) + k)
	})
}

// SubtractConstant returns clamp(a-k) per channel, k in [0,255]
func SubtractConstant(a *core.PixelBuffer, k int) (*core.PixelBuffer, error) {
	if err := validateConstant("subtractConstant", k); err != nil {
		return nil, err
	}
	return pointwise("subtractConstant", a, func(x uint8) uint8 {
		return saturate(int(x) - k)
	})
}

// Multiply scales every channel by k/50
func Multiply(a *core.PixelBuffer, k int) (*core.PixelBuffer, error) {
	if err := validateConstant("multiply", k); err != nil {
		return nil, err
	}
	factor := float64(k) / scaleBase
	return pointwise("multiply", a, func(x uint8) uint8 {
		return toByte(float64(x) * factor)
	})
}

// Divide divides every channel by k/50. k == 0 is rejected.
func Divide(a *core.PixelBuffer, k int) (*core.PixelBuffer, error) {
	if err := validateConstant("divide", k); err != nil {
		return nil, err
	}
	divisor := float64(k) / scaleBase
	if divisor == 0 {
		return nil, core.Errorf("divide", core.ErrInvalidParameter, "divide factor resolves to zero")
	}
	return pointwise("divide", a, func(x uint8) uint8 {
		return toByte(float64(x) / divisor)
	})
}

// Blend returns a*t + b*(1-t)
func Blend(a, b *core.PixelBuffer, t float64) (*core.PixelBuffer, error) {
	if err := validateBlend("blend", t); err != nil {
		return nil, err
	}
	return combine("blend", a, b, func(x, y uint8) uint8 {
		return toByte(float64(x)*t + float64(y)*(1-t))
	})
}

// Average returns (a+b)/2
func Average(a, b *core.PixelBuffer) (*core.PixelBuffer, error) {
	return combine("average", a, b, func(x, y uint8) uint8 {
		return toByte(float64(int(x)+int(y)) / 2)
	})
}

// Difference returns |a-b|
func Difference(a, b *core.PixelBuffer) (*core.PixelBuffer, error) {
	return combine("difference", a, b, func(x, y uint8) uint8 {
		return toByte(math.Abs(float64(int(x) - int(y))))
	})
}
