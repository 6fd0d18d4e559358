package layers

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-processing-engine/internal/algorithms"
	"image-processing-engine/internal/core"
)

func gray(w, h int, v uint8) *core.PixelBuffer {
	buf := core.NewPixelBuffer(w, h)
	for i := 0; i < len(buf.Pix); i += core.Channels {
		buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = v, v, v, 255
	}
	return buf
}

func newStack() *Stack {
	logger, _ := test.NewNullLogger()
	return NewStack(logger)
}

func TestAddLayerValidates(t *testing.T) {
	s := newStack()

	id, err := s.AddLayer("", "grayscale", algorithms.DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, "layer_1", id)
	assert.Equal(t, "grayscale", s.Layers()[0].Name)

	_, err = s.AddLayer("bad", "sharpen", algorithms.DefaultParams())
	assert.ErrorIs(t, err, core.ErrInvalidOperation)

	p := algorithms.DefaultParams()
	p.KernelSize = 4
	_, err = s.AddLayer("bad", "mean", p)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	assert.Len(t, s.Layers(), 1)
}

func TestProcessSequence(t *testing.T) {
	s := newStack()
	p := algorithms.DefaultParams()
	p.ConstantValue = 10

	_, err := s.AddLayer("plus", "addConstant", p)
	require.NoError(t, err)
	second, err := s.AddLayer("plus again", "addConstant", p)
	require.NoError(t, err)

	out, err := s.Process(gray(2, 2, 100), nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(120), out.Pix[0])

	require.NoError(t, s.SetEnabled(second, false))
	out, err = s.Process(gray(2, 2, 100), nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(110), out.Pix[0])
}

func TestOpacityBlendsOverPrevious(t *testing.T) {
	s := newStack()
	id, err := s.AddLayer("", "not", algorithms.DefaultParams())
	require.NoError(t, err)
	require.NoError(t, s.SetOpacity(id, 0.5))

	// not(200) is 0, blended half over 200
	out, err := s.Process(gray(1, 1, 200), nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(100), out.Pix[0])

	require.NoError(t, s.SetOpacity(id, 3))
	assert.Equal(t, 1.0, s.Layers()[0].Opacity)
	require.NoError(t, s.SetOpacity(id, -1))
	assert.Equal(t, 0.0, s.Layers()[0].Opacity)
}

func TestTwoOperandLayer(t *testing.T) {
	s := newStack()
	_, err := s.AddLayer("", "add", algorithms.DefaultParams())
	require.NoError(t, err)

	_, err = s.Process(gray(2, 2, 10), nil)
	assert.ErrorIs(t, err, core.ErrMissingOperand)

	out, err := s.Process(gray(2, 2, 10), gray(2, 2, 5))
	require.NoError(t, err)
	assert.Equal(t, uint8(15), out.Pix[0])

	_, err = s.Process(gray(2, 2, 10), gray(3, 2, 5))
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
}

func TestRemoveAndUnknownIDs(t *testing.T) {
	s := newStack()
	id, err := s.AddLayer("", "flipVertical", algorithms.DefaultParams())
	require.NoError(t, err)

	require.NoError(t, s.Remove(id))
	assert.Empty(t, s.Layers())
	assert.Error(t, s.Remove(id))
	assert.Error(t, s.SetEnabled("layer_9", true))

	in := gray(2, 2, 42)
	out, err := s.Process(in, nil)
	require.NoError(t, err)
	assert.True(t, in.Equal(out))
	assert.NotSame(t, in, out)
}
