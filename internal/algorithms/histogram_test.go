package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-processing-engine/internal/core"
)

func ramp() *core.PixelBuffer {
	buf := core.NewPixelBuffer(16, 16)
	for i := 0; i < 256; i++ {
		o := i * core.Channels
		buf.Pix[o], buf.Pix[o+1], buf.Pix[o+2], buf.Pix[o+3] = uint8(i), uint8(i), uint8(i), uint8(255-i)
	}
	return buf
}

func TestComputeHistogram(t *testing.T) {
	src := gray(4, 2, 10)
	setGray(src, 0, 0, 200)

	h, err := ComputeHistogram(src)
	require.NoError(t, err)
	assert.Equal(t, 8, h.Total())
	assert.Equal(t, 7, h[10])
	assert.Equal(t, 1, h[200])
	assert.Equal(t, 7, h.Max())
}

func TestChannelHistograms(t *testing.T) {
	hs, err := ChannelHistograms(filled(3, 3, 1, 2, 3, 0))
	require.NoError(t, err)
	assert.Equal(t, 9, hs[0][1])
	assert.Equal(t, 9, hs[1][2])
	assert.Equal(t, 9, hs[2][3])
}

func TestEqualizeStretchedImageBarelyChanges(t *testing.T) {
	src := ramp()

	out, err := Equalize(src)
	require.NoError(t, err)

	for i := 0; i < len(src.Pix); i += core.Channels {
		for c := 0; c < 3; c++ {
			delta := int(out.Pix[i+c]) - int(src.Pix[i+c])
			assert.LessOrEqual(t, delta*delta, 1, "pixel %d channel %d", i/core.Channels, c)
		}
		assert.Equal(t, src.Pix[i+3], out.Pix[i+3], "alpha must be untouched")
	}
}

func TestEqualizeStretchesNarrowRange(t *testing.T) {
	src := gray(2, 1, 100)
	setGray(src, 1, 0, 110)

	out, err := Equalize(src)
	require.NoError(t, err)
	// cdf: 1/2 and 2/2 of the pixels
	assert.Equal(t, uint8(128), grayAt(out, 0, 0))
	assert.Equal(t, uint8(255), grayAt(out, 1, 0))
}

func TestEqualizeIsPure(t *testing.T) {
	src := randomBuffer(21, 10, 10)
	first, err := Equalize(src)
	require.NoError(t, err)
	second, err := Equalize(src)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}
