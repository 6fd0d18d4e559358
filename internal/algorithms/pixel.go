package algorithms

import (
	"math"

	"image-processing-engine/internal/core"
)

// toByte saturates v to [0,255], rounding half to even like a clamped byte store.
func toByte(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.RoundToEven(v))
}

func saturate(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// Luma returns round(0.299R + 0.587G + 0.114B), rounding half up.
func Luma(r, g, b uint8) uint8 {
	return toByte(roundHalfUp(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)))
}

func checkUnary(op string, a *core.PixelBuffer) error {
	if a == nil {
		return core.Errorf(op, core.ErrMissingOperand, "first image is required")
	}
	if err := core.ValidateBuffer(a); err != nil {
		return &core.OperationError{Op: op, Err: err}
	}
	return nil
}

func checkBinary(op string, a, b *core.PixelBuffer) error {
	if err := checkUnary(op, a); err != nil {
		return err
	}
	if b == nil {
		return core.Errorf(op, core.ErrMissingOperand, "second image is required")
	}
	if err := core.ValidateBuffer(b); err != nil {
		return &core.OperationError{Op: op, Err: err}
	}
	if !a.SameSize(b) {
		return core.Errorf(op, core.ErrDimensionMismatch, "%dx%d vs %dx%d", a.Width, a.Height, b.Width, b.Height)
	}
	return nil
}
