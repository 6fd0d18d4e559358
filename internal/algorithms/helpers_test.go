package algorithms

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"image-processing-engine/internal/core"
)

func filled(w, h int, r, g, b, a uint8) *core.PixelBuffer {
	buf := core.NewPixelBuffer(w, h)
	for i := 0; i < len(buf.Pix); i += core.Channels {
		buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = r, g, b, a
	}
	return buf
}

func gray(w, h int, v uint8) *core.PixelBuffer {
	return filled(w, h, v, v, v, 255)
}

func randomBuffer(seed int64, w, h int) *core.PixelBuffer {
	rng := rand.New(rand.NewSource(seed))
	buf := core.NewPixelBuffer(w, h)
	rng.Read(buf.Pix)
	return buf
}

func setGray(buf *core.PixelBuffer, x, y int, v uint8) {
	i := buf.Offset(x, y)
	buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = v, v, v, 255
}

func grayAt(buf *core.PixelBuffer, x, y int) uint8 {
	return buf.Pix[buf.Offset(x, y)]
}

// assertRGB compares only the color channels
func assertRGB(t *testing.T, want, got *core.PixelBuffer) {
	t.Helper()
	require.True(t, want.SameSize(got))
	for i := 0; i < len(want.Pix); i += core.Channels {
		require.Equal(t, want.Pix[i:i+3], got.Pix[i:i+3], "pixel %d", i/core.Channels)
	}
}

func assertAlpha(t *testing.T, buf *core.PixelBuffer, want uint8) {
	t.Helper()
	for i := 3; i < len(buf.Pix); i += core.Channels {
		require.Equal(t, want, buf.Pix[i], "alpha of pixel %d", i/core.Channels)
	}
}
