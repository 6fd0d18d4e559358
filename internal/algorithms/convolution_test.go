package algorithms

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-processing-engine/internal/core"
)

func TestGaussianKernelNormalizedAndSymmetric(t *testing.T) {
	k, err := GaussianKernel(3, 1.0)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, k.Sum(), 1e-9)
	for ky := 0; ky < k.Size; ky++ {
		for kx := 0; kx < k.Size; kx++ {
			assert.InDelta(t, k.At(kx, ky), k.At(k.Size-1-kx, k.Size-1-ky), 1e-15)
		}
	}
	assert.Greater(t, k.At(1, 1), k.At(0, 1))
	assert.Greater(t, k.At(0, 1), k.At(0, 0))
	assert.Equal(t, 1.0, k.Divisor)
}

func TestGaussianKernelRejectsBadInput(t *testing.T) {
	_, err := GaussianKernel(4, 1.0)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	_, err = GaussianKernel(3, 0)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	_, err = GaussianKernel(3, math.NaN())
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestNewKernelValidation(t *testing.T) {
	_, err := NewKernel([][]float64{{1, 1}, {1, 1}}, 1)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	_, err = NewKernel([][]float64{{1, 1, 1}, {1, 1}, {1, 1, 1}}, 1)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	_, err = NewKernel([][]float64{{1}}, -2)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	k, err := NewKernel([][]float64{{1}}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, k.Divisor)
}

func identityKernel() Kernel {
	return mustKernel([][]float64{{0, 0, 0}, {0, 1, 0}, {0, 0, 0}}, 1)
}

func TestConvolveIdentityKeepsImage(t *testing.T) {
	src := randomBuffer(31, 8, 6)
	out, err := Convolve(src, identityKernel())
	require.NoError(t, err)
	assert.True(t, src.Equal(out), "identity kernel must copy color and alpha")
}

func TestConvolveLinearity(t *testing.T) {
	src := randomBuffer(32, 9, 9)
	for i := range src.Pix {
		src.Pix[i] /= 2 // keep sums below saturation
	}

	k1 := identityKernel()
	k2 := mustKernel([][]float64{{0, 1, 0}, {0, 0, 0}, {0, 0, 0}}, 1)
	sum, err := k1.Add(k2)
	require.NoError(t, err)

	combined, err := Convolve(src, sum)
	require.NoError(t, err)
	part1, err := Convolve(src, k1)
	require.NoError(t, err)
	part2, err := Convolve(src, k2)
	require.NoError(t, err)
	added, err := Add(part1, part2)
	require.NoError(t, err)

	assertRGB(t, added, combined)
}

func TestConvolveClampsToEdge(t *testing.T) {
	src := core.NewPixelBuffer(3, 1)
	setGray(src, 2, 0, 90)
	right := mustKernel([][]float64{{0, 0, 0}, {0, 0, 1}, {0, 0, 0}}, 1)

	out, err := Convolve(src, right)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 90, 90}, []uint8{grayAt(out, 0, 0), grayAt(out, 1, 0), grayAt(out, 2, 0)})
}

func TestEdgeKernelsOnFlatImage(t *testing.T) {
	src := gray(5, 5, 120)
	for _, k := range []Kernel{PrewittX, PrewittY, SobelX, SobelY, Laplacian} {
		out, err := Convolve(src, k)
		require.NoError(t, err)
		assertRGB(t, gray(5, 5, 0), out)
	}

	blurred, err := Convolve(src, Gaussian3x3)
	require.NoError(t, err)
	assertRGB(t, src, blurred)
}

func TestSobelXDetectsVerticalEdge(t *testing.T) {
	src := gray(4, 3, 0)
	for y := 0; y < 3; y++ {
		setGray(src, 2, y, 100)
		setGray(src, 3, y, 100)
	}

	out, err := Convolve(src, SobelX)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), grayAt(out, 0, 1))
	assert.Equal(t, uint8(255), grayAt(out, 1, 1)) // 4*100 saturates
	assert.Equal(t, uint8(255), grayAt(out, 2, 1))
	assert.Equal(t, uint8(0), grayAt(out, 3, 1))
}

func TestConvolveKeepsAlpha(t *testing.T) {
	src := filled(4, 4, 10, 20, 30, 77)
	out, err := GaussianBlur(src, 5, 2.0)
	require.NoError(t, err)
	assertAlpha(t, out, 77)
	assertRGB(t, src, out)
}
