package metrics

import (
	"math"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-processing-engine/internal/algorithms"
	"image-processing-engine/internal/core"
)

func grayBuffer(w, h int, v uint8) *core.PixelBuffer {
	buf := core.NewPixelBuffer(w, h)
	for i := 0; i < len(buf.Pix); i += core.Channels {
		buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = v, v, v, 255
	}
	return buf
}

func TestIdenticalImages(t *testing.T) {
	e := NewEvaluator()
	a := grayBuffer(4, 4, 90)

	results := e.CalculateAll(a, a.Clone())
	assert.Equal(t, 0.0, results["mse"])
	assert.True(t, math.IsInf(results["psnr"], 1))
	assert.InDelta(t, 1.0, results["ssim"], 1e-9)
	assert.Equal(t, []string{"mse", "psnr", "ssim"}, e.Names())
}

func TestMSEAndPSNR(t *testing.T) {
	e := NewEvaluator()
	a := grayBuffer(2, 2, 100)
	b := grayBuffer(2, 2, 110)

	mse, err := e.Calculate("mse", a, b)
	require.NoError(t, err)
	assert.Equal(t, 100.0, mse)

	psnr, err := e.Calculate("psnr", a, b)
	require.NoError(t, err)
	assert.InDelta(t, 20*math.Log10(25.5), psnr, 1e-9)
}

func TestMetricErrors(t *testing.T) {
	e := NewEvaluator()
	_, err := e.Calculate("mse", grayBuffer(2, 2, 0), grayBuffer(3, 2, 0))
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)

	_, err = e.Calculate("vif", grayBuffer(2, 2, 0), grayBuffer(2, 2, 0))
	assert.Error(t, err)

	assert.Empty(t, e.CalculateAll(grayBuffer(2, 2, 0), nil))
}

func TestSSIMDropsWithStructuralChange(t *testing.T) {
	e := NewEvaluator()
	a := core.NewPixelBuffer(16, 16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			v := uint8((x * 16) % 256)
			o := a.Offset(x, y)
			a.Pix[o], a.Pix[o+1], a.Pix[o+2], a.Pix[o+3] = v, v, v, 255
		}
	}
	flipped, err := algorithms.FlipHorizontal(a)
	require.NoError(t, err)

	same, err := e.Calculate("ssim", a, a.Clone())
	require.NoError(t, err)
	changed, err := e.Calculate("ssim", a, flipped)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, same, 1e-9)
	assert.Less(t, changed, same)
}

func TestSummarizeHistogram(t *testing.T) {
	var h algorithms.Histogram
	h[10] = 2
	h[20] = 1
	h[30] = 1

	s, err := SummarizeHistogram(h)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Pixels)
	assert.Equal(t, 17.5, s.Mean)
	assert.Equal(t, 15.0, s.Median)
	assert.Equal(t, 10, s.Min)
	assert.Equal(t, 30, s.Max)
	assert.Equal(t, 10, s.Mode)
	assert.InDelta(t, math.Sqrt(68.75), s.StdDev, 1e-9)

	_, err = SummarizeHistogram(algorithms.Histogram{})
	assert.Error(t, err)
}

func TestSummarizeHistogramOddTotal(t *testing.T) {
	var h algorithms.Histogram
	h[3] = 1
	h[7] = 1
	h[200] = 1

	s, err := SummarizeHistogram(h)
	require.NoError(t, err)
	assert.Equal(t, 7.0, s.Median)
	assert.Equal(t, 3, s.Mode)
}

func TestSummarizeHistogramLargeCountsStayBounded(t *testing.T) {
	// an 8192x8192 image split over two levels
	var h algorithms.Histogram
	h[10] = 8192 * 8192 / 2
	h[200] = 8192 * 8192 / 2

	var s HistogramSummary
	allocs := testing.AllocsPerRun(5, func() {
		var err error
		s, err = SummarizeHistogram(h)
		require.NoError(t, err)
	})
	assert.LessOrEqual(t, allocs, 8.0)

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err := SummarizeHistogram(h)
	require.NoError(t, err)
	runtime.ReadMemStats(&after)
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20))

	assert.Equal(t, 8192*8192, s.Pixels)
	assert.Equal(t, 105.0, s.Mean)
	assert.Equal(t, 105.0, s.Median)
	assert.Equal(t, 95.0, s.StdDev)
	assert.Equal(t, 10, s.Min)
	assert.Equal(t, 200, s.Max)
}

func TestChannelStats(t *testing.T) {
	buf := core.NewPixelBuffer(2, 1)
	copy(buf.Pix, []uint8{0, 50, 200, 255, 100, 50, 200, 255})

	s, err := ChannelStats(buf)
	require.NoError(t, err)
	assert.Equal(t, 50.0, s[0].Mean)
	assert.Equal(t, 50.0, s[0].StdDev)
	assert.Equal(t, 50.0, s[1].Mean)
	assert.Equal(t, 0.0, s[1].StdDev)
	assert.Equal(t, 200.0, s[2].Mean)
}
