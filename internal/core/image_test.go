package core

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBuffer(t *testing.T) {
	tests := []struct {
		name string
		buf  *PixelBuffer
		ok   bool
	}{
		{"valid", NewPixelBuffer(3, 2), true},
		{"nil", nil, false},
		{"zero width", &PixelBuffer{Width: 0, Height: 2}, false},
		{"short pixels", &PixelBuffer{Width: 2, Height: 2, Pix: make([]uint8, 15)}, false},
		{"long pixels", &PixelBuffer{Width: 2, Height: 2, Pix: make([]uint8, 17)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBuffer(tt.buf)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidParameter)
			}
		})
	}
}

func TestNewPixelBufferFromBytesCopies(t *testing.T) {
	pix := []uint8{1, 2, 3, 4}
	buf, err := NewPixelBufferFromBytes(1, 1, pix)
	require.NoError(t, err)

	pix[0] = 99
	assert.Equal(t, uint8(1), buf.Pix[0])

	_, err = NewPixelBufferFromBytes(2, 1, pix)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestSampleClampsToEdge(t *testing.T) {
	buf := NewPixelBuffer(2, 2)
	copy(buf.Pix[buf.Offset(1, 1):], []uint8{10, 20, 30, 40})
	copy(buf.Pix[buf.Offset(0, 0):], []uint8{1, 2, 3, 4})

	r, g, b, a := buf.Sample(5, 9)
	assert.Equal(t, []uint8{10, 20, 30, 40}, []uint8{r, g, b, a})

	r, _, _, _ = buf.Sample(-3, -1)
	assert.Equal(t, uint8(1), r)

	assert.Equal(t, buf.Offset(1, 0), buf.SampleOffset(7, -2))
}

func TestOperationErrorUnwraps(t *testing.T) {
	err := Errorf("blend", ErrMissingOperand, "second image is required")
	assert.ErrorIs(t, err, ErrMissingOperand)
	assert.Contains(t, err.Error(), "blend")

	var opErr *OperationError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "blend", opErr.Op)
}

func TestImageConversionRoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(2, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 128})

	buf, err := FromImage(src)
	require.NoError(t, err)
	assert.Equal(t, 3, buf.Width)
	assert.Equal(t, []uint8{200, 100, 50, 128}, buf.Pix[buf.Offset(2, 1):buf.Offset(2, 1)+4])

	back := buf.ToImage()
	assert.Equal(t, src.Pix, back.Pix)
}

func TestFromImageHandlesOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.Set(6, 5, color.RGBA{R: 255, A: 255})

	buf, err := FromImage(src)
	require.NoError(t, err)
	assert.Equal(t, 2, buf.Width)
	assert.Equal(t, 1, buf.Height)
	assert.Equal(t, uint8(255), buf.Pix[buf.Offset(1, 0)])
}

func TestImageData(t *testing.T) {
	data := NewImageData()
	assert.False(t, data.HasImage())
	assert.Error(t, data.SetProcessed(NewPixelBuffer(1, 1)))

	orig := NewPixelBuffer(2, 2)
	require.NoError(t, data.SetOriginal(orig, "a.png"))
	orig.Pix[0] = 9
	assert.Equal(t, uint8(0), data.GetOriginal().Pix[0], "stored image must not alias caller memory")
	assert.Equal(t, "a.png", data.GetFilepath())

	processed := NewPixelBuffer(2, 2)
	processed.Pix[0] = 42
	require.NoError(t, data.SetProcessed(processed))
	require.NoError(t, data.PromoteProcessed())
	assert.Equal(t, uint8(42), data.GetOriginal().Pix[0])
	assert.Nil(t, data.GetProcessed())

	require.NoError(t, data.SetSecondary(NewPixelBuffer(2, 2)))
	assert.NotNil(t, data.GetSecondary())
	data.RemoveSecondary()
	assert.Nil(t, data.GetSecondary())

	data.Clear()
	assert.False(t, data.HasImage())
}

func TestSetProcessedIfCurrentRejectsStaleResult(t *testing.T) {
	data := NewImageData()
	require.NoError(t, data.SetOriginal(NewPixelBuffer(2, 2), "a.png"))

	original, secondary, gen := data.Snapshot()
	require.NotNil(t, original)
	assert.Nil(t, secondary)

	// a second load lands while the first result is still being computed
	require.NoError(t, data.SetOriginal(NewPixelBuffer(3, 3), "b.png"))

	err := data.SetProcessedIfCurrent(gen, NewPixelBuffer(2, 2))
	assert.True(t, errors.Is(err, ErrStaleResult))
	assert.Nil(t, data.GetProcessed())

	_, _, gen = data.Snapshot()
	require.NoError(t, data.SetProcessedIfCurrent(gen, NewPixelBuffer(3, 3)))
	assert.Equal(t, 3, data.GetProcessed().Width)
}

func TestSnapshotGenerationTracksInputChanges(t *testing.T) {
	data := NewImageData()
	require.NoError(t, data.SetOriginal(NewPixelBuffer(1, 1), ""))
	_, _, g0 := data.Snapshot()

	require.NoError(t, data.SetSecondary(NewPixelBuffer(1, 1)))
	_, secondary, g1 := data.Snapshot()
	assert.NotNil(t, secondary)
	assert.NotEqual(t, g0, g1)

	data.RemoveSecondary()
	_, _, g2 := data.Snapshot()
	assert.NotEqual(t, g1, g2)

	assert.ErrorIs(t, data.SetProcessedIfCurrent(g1, NewPixelBuffer(1, 1)), ErrStaleResult)
}
