// Generic 2D convolution and the predefined kernel library
package algorithms

import (
	"fmt"
	"math"

	"image-processing-engine/internal/core"
)

// Kernel is a square convolution matrix stored row-major
type Kernel struct {
	Size    int
	Weights []float64
	Divisor float64
}

// NewKernel builds a kernel from rows; divisor 0 means 1.
func NewKernel(rows [][]float64, divisor float64) (Kernel, error) {
	size := len(rows)
	k := Kernel{Size: size, Weights: make([]float64, 0, size*size), Divisor: divisor}
	if k.Divisor == 0 {
		k.Divisor = 1
	}
	for i, row := range rows {
		if len(row) != size {
			return Kernel{}, fmt.Errorf("%w: kernel row %d has %d weights, want %d", core.ErrInvalidParameter, i, len(row), size)
		}
		k.Weights = append(k.Weights, row...)
	}
	if err := k.Validate(); err != nil {
		return Kernel{}, err
	}
	return k, nil
}

func mustKernel(rows [][]float64, divisor float64) Kernel {
	k, err := NewKernel(rows, divisor)
	if err != nil {
		panic(err)
	}
	return k
}

// Validate checks that the kernel has an odd size, a full weight matrix and a positive divisor
func (k Kernel) Validate() error {
	if k.Size < 1 || k.Size%2 == 0 {
		return fmt.Errorf("%w: kernel size must be odd and positive, got %d", core.ErrInvalidParameter, k.Size)
	}
	if len(k.Weights) != k.Size*k.Size {
		return fmt.Errorf("%w: kernel has %d weights, want %d", core.ErrInvalidParameter, len(k.Weights), k.Size*k.Size)
	}
	if math.IsNaN(k.Divisor) || math.IsInf(k.Divisor, 0) || k.Divisor <= 0 {
		return fmt.Errorf("%w: kernel divisor must be positive, got %v", core.ErrInvalidParameter, k.Divisor)
	}
	return nil
}

// Radius is the distance from the center cell to the kernel edge
func (k Kernel) Radius() int {
	return (k.Size - 1) / 2
}

// At returns the weight at column kx, row ky
func (k Kernel) At(kx, ky int) float64 {
	return k.Weights[ky*k.Size+kx]
}

// Sum returns the sum of all weights
func (k Kernel) Sum() float64 {
	s := 0.0
	for _, w := range k.Weights {
		s += w
	}
	return s
}

// Add returns the element-wise sum of two kernels with the same size and divisor
func (k Kernel) Add(o Kernel) (Kernel, error) {
	if k.Size != o.Size || k.Divisor != o.Divisor {
		return Kernel{}, fmt.Errorf("%w: kernels differ in size or divisor", core.ErrInvalidParameter)
	}
	sum := Kernel{Size: k.Size, Weights: make([]float64, len(k.Weights)), Divisor: k.Divisor}
	for i := range k.Weights {
		sum.Weights[i] = k.Weights[i] + o.Weights[i]
	}
	return sum, nil
}

// Predefined kernels
var (
	PrewittX = mustKernel([][]float64{
		{-1, 0, 1},
		{-1, 0, 1},
		{-1, 0, 1},
	}, 1)
	PrewittY = mustKernel([][]float64{
		{-1, -1, -1},
		{0, 0, 0},
		{1, 1, 1},
	}, 1)
	SobelX = mustKernel([][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}, 1)
	SobelY = mustKernel([][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}, 1)
	Laplacian = mustKernel([][]float64{
		{0, 1, 0},
		{1, -4, 1},
		{0, 1, 0},
	}, 1)
	Gaussian3x3 = mustKernel([][]float64{
		{1, 2, 1},
		{2, 4, 2},
		{1, 2, 1},
	}, 16)
)

// GaussianKernel synthesizes a size×size kernel with weights exp(-(x²+y²)/(2σ²))
// normalized to sum to 1. The divisor is 1.
func GaussianKernel(size int, sigma float64) (Kernel, error) {
	if err := validateKernelSize("gaussianKernel", size); err != nil {
		return Kernel{}, err
	}
	if err := validateSigma("gaussianKernel", sigma); err != nil {
		return Kernel{}, err
	}

	radius := (size - 1) / 2
	k := Kernel{Size: size, Weights: make([]float64, 0, size*size), Divisor: 1}
	sum := 0.0
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			w := math.Exp(-float64(x*x+y*y) / (2 * sigma * sigma))
			k.Weights = append(k.Weights, w)
			sum += w
		}
	}
	for i := range k.Weights {
		k.Weights[i] /= sum
	}
	return k, nil
}

// Convolve applies kernel to R, G and B with clamp-to-edge sampling.
// Alpha is copied from the source pixel.
func Convolve(src *core.PixelBuffer, kernel Kernel) (*core.PixelBuffer, error) {
	if err := checkUnary("convolve", src); err != nil {
		return nil, err
	}
	if err := kernel.Validate(); err != nil {
		return nil, &core.OperationError{Op: "convolve", Err: err}
	}

	out := core.NewPixelBuffer(src.Width, src.Height)
	radius := kernel.Radius()
	parallelRows(src.Height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < src.Width; x++ {
				var sumR, sumG, sumB float64
				for ky := 0; ky < kernel.Size; ky++ {
					for kx := 0; kx < kernel.Size; kx++ {
						w := kernel.At(kx, ky)
						if w == 0 {
							continue
						}
						i := src.SampleOffset(x+kx-radius, y+ky-radius)
						sumR += float64(src.Pix[i]) * w
						sumG += float64(src.Pix[i+1]) * w
						sumB += float64(src.Pix[i+2]) * w
					}
				}

				o := out.Offset(x, y)
				out.Pix[o] = toByte(sumR / kernel.Divisor)
				out.Pix[o+1] = toByte(sumG / kernel.Divisor)
				out.Pix[o+2] = toByte(sumB / kernel.Divisor)
				out.Pix[o+3] = src.Pix[o+3]
			}
		}
	})
	return out, nil
}

// GaussianBlur convolves with a synthesized Gaussian kernel
func GaussianBlur(src *core.PixelBuffer, size int, sigma float64) (*core.PixelBuffer, error) {
	kernel, err := GaussianKernel(size, sigma)
	if err != nil {
		return nil, err
	}
	return Convolve(src, kernel)
}
