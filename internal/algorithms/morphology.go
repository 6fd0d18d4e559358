// Binary morphology with a disk structuring element
package algorithms

import (
	"math"

	"image-processing-engine/internal/core"
)

// StructuringElement is a size×size boolean mask stored row-major
type StructuringElement struct {
	Size int
	Mask []bool
}

// DiskElement includes every cell whose Euclidean distance to the center is at most the radius
func DiskElement(size int) (StructuringElement, error) {
	if err := validateKernelSize("structuringElement", size); err != nil {
		return StructuringElement{}, err
	}

	radius := (size - 1) / 2
	se := StructuringElement{Size: size, Mask: make([]bool, size*size)}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x-radius), float64(y-radius)
			se.Mask[y*size+x] = math.Sqrt(dx*dx+dy*dy) <= float64(radius)
		}
	}
	return se, nil
}

// Contains reports whether cell (kx, ky) belongs to the element
func (se StructuringElement) Contains(kx, ky int) bool {
	return se.Mask[ky*se.Size+kx]
}

// MorphOp selects a morphological operator
type MorphOp int

const (
	MorphDilate MorphOp = iota
	MorphErode
	MorphOpen
	MorphClose
	MorphContour
)

func (op MorphOp) String() string {
	switch op {
	case MorphDilate:
		return "dilate"
	case MorphErode:
		return "erode"
	case MorphOpen:
		return "open"
	case MorphClose:
		return "close"
	case MorphContour:
		return "contour"
	default:
		return "unknown"
	}
}

// Morphology binarizes a copy of src at 127 and applies op.
// Open and close are compositions of the dilate and erode passes.
func Morphology(src *core.PixelBuffer, op MorphOp, size int) (*core.PixelBuffer, error) {
	if op < MorphDilate || op > MorphContour {
		return nil, core.Errorf(op.String(), core.ErrInvalidOperation, "unsupported morphological operation %d", int(op))
	}
	if err := checkUnary(op.String(), src); err != nil {
		return nil, err
	}
	se, err := DiskElement(size)
	if err != nil {
		return nil, err
	}
	binary, err := Threshold(src, binaryLevel)
	if err != nil {
		return nil, err
	}

	switch op {
	case MorphDilate:
		return morphPass(binary, se, 255), nil
	case MorphErode:
		return morphPass(binary, se, 0), nil
	case MorphOpen:
		eroded, err := Morphology(binary, MorphErode, size)
		if err != nil {
			return nil, err
		}
		return Morphology(eroded, MorphDilate, size)
	case MorphClose:
		dilated, err := Morphology(binary, MorphDilate, size)
		if err != nil {
			return nil, err
		}
		return Morphology(dilated, MorphErode, size)
	case MorphContour:
		eroded, err := Morphology(binary, MorphErode, size)
		if err != nil {
			return nil, err
		}
		out := binary.Clone()
		for i := 0; i < len(out.Pix); i += core.Channels {
			v := uint8(0)
			if binary.Pix[i] == 255 && eroded.Pix[i] == 0 {
				v = 255
			}
			out.Pix[i], out.Pix[i+1], out.Pix[i+2] = v, v, v
		}
		return out, nil
	}
	return nil, core.Errorf(op.String(), core.ErrInvalidOperation, "unsupported morphological operation %d", int(op))
}

// morphPass sets a pixel to hit when any covered neighbor equals hit, else to the
// opposite level. hit 255 is dilation, hit 0 is erosion. Alpha comes from binary.
func morphPass(binary *core.PixelBuffer, se StructuringElement, hit uint8) *core.PixelBuffer {
	out := binary.Clone()
	radius := (se.Size - 1) / 2
	miss := 255 - hit
	parallelRows(binary.Height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < binary.Width; x++ {
				v := miss
			scan:
				for ky := 0; ky < se.Size; ky++ {
					for kx := 0; kx < se.Size; kx++ {
						if !se.Contains(kx, ky) {
							continue
						}
						if binary.Pix[binary.SampleOffset(x+kx-radius, y+ky-radius)] == hit {
							v = hit
							break scan
						}
					}
				}
				o := out.Offset(x, y)
				out.Pix[o], out.Pix[o+1], out.Pix[o+2] = v, v, v
			}
		}
	})
	return out
}

// Dilate sets a pixel to 255 when any covered neighbor is 255
func Dilate(src *core.PixelBuffer, size int) (*core.PixelBuffer, error) {
	return Morphology(src, MorphDilate, size)
}

// Erode sets a pixel to 0 when any covered neighbor is 0
func Erode(src *core.PixelBuffer, size int) (*core.PixelBuffer, error) {
	return Morphology(src, MorphErode, size)
}

// Open is dilate(erode(src))
func Open(src *core.PixelBuffer, size int) (*core.PixelBuffer, error) {
	return Morphology(src, MorphOpen, size)
}

// Close is erode(dilate(src))
func Close(src *core.PixelBuffer, size int) (*core.PixelBuffer, error) {
	return Morphology(src, MorphClose, size)
}

// Contour keeps foreground pixels that erosion removes
func Contour(src *core.PixelBuffer, size int) (*core.PixelBuffer, error) {
	return Morphology(src, MorphContour, size)
}
