package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-processing-engine/internal/algorithms"
	"image-processing-engine/internal/config"
	"image-processing-engine/internal/core"
	imgio "image-processing-engine/internal/io"
)

func grayImage(w, h int, v uint8) *core.PixelBuffer {
	buf := core.NewPixelBuffer(w, h)
	for i := 0; i < len(buf.Pix); i += core.Channels {
		buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = v, v, v, 255
	}
	return buf
}

func TestInitLogger(t *testing.T) {
	l, err := initLogger(true, "info")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)

	l, err = initLogger(false, "warn")
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	_, err = initLogger(false, "chatty")
	assert.Error(t, err)
}

func TestApplyRoundTrip(t *testing.T) {
	l, hook := test.NewNullLogger()
	ld := imgio.NewImageLoader(l, imgio.DecoderNative)
	dir := t.TempDir()

	a, b := filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png")
	require.NoError(t, ld.Save(grayImage(4, 3, 100), a))
	require.NoError(t, ld.Save(grayImage(4, 3, 60), b))

	primary, secondary, err := loadOperands(ld, a, b)
	require.NoError(t, err)

	result, err := applyOperation(l, "subtract", primary, secondary, algorithms.DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, uint8(40), result.Pix[0])
	assert.Equal(t, "Operation applied", hook.LastEntry().Message)

	_, err = applyOperation(l, "subtract", primary, nil, algorithms.DefaultParams())
	assert.ErrorIs(t, err, core.ErrMissingOperand)

	var out bytes.Buffer
	printMetrics(&out, primary, primary)
	assert.Contains(t, out.String(), "psnr  inf")
	assert.Contains(t, out.String(), "mse   0.0000")
}

func TestBuildStack(t *testing.T) {
	l, _ := test.NewNullLogger()
	disabled := false
	half := 0.5

	c := config.Default()
	c.Steps = []config.Step{
		{Operation: "addConstant", Params: map[string]interface{}{"constant_value": int64(20)}},
		{Operation: "not", Opacity: &half},
		{Operation: "flipVertical", Enabled: &disabled},
	}

	stack, err := buildStack(l, c)
	require.NoError(t, err)
	require.Len(t, stack.Layers(), 3)
	assert.False(t, stack.Layers()[2].Enabled)
	assert.Equal(t, 0.5, stack.Layers()[1].Opacity)

	// 100 + 20 = 120, not(120) = 255, blended half over 120
	out, err := stack.Process(grayImage(2, 2, 100), nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(188), out.Pix[0])

	_, err = buildStack(l, config.Default())
	assert.Error(t, err)
}

func TestListOperations(t *testing.T) {
	var out bytes.Buffer
	listOperations(&out)

	text := out.String()
	for _, category := range algorithms.CategoryOrder {
		assert.Contains(t, text, category+":")
	}
	for _, name := range algorithms.Names() {
		assert.Contains(t, text, " "+name+" ")
	}
	assert.True(t, strings.Index(text, "Arithmetic:") < strings.Index(text, "Morphology:"))
}

func TestWriteHistogram(t *testing.T) {
	buf := grayImage(2, 2, 30)

	var out bytes.Buffer
	require.NoError(t, writeHistogram(&out, buf, false, false))
	assert.Contains(t, out.String(), "# luma: pixels=4")
	assert.Contains(t, out.String(), " 30 4\n")

	out.Reset()
	require.NoError(t, writeHistogram(&out, buf, true, true))

	var reports []histogramReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &reports))
	require.Len(t, reports, 3)
	assert.Equal(t, "green", reports[1].Channel)
	assert.Equal(t, 4, reports[1].Buckets[30])
	require.NotNil(t, reports[1].Stats)
	assert.Equal(t, 30.0, reports[1].Stats.Mean)
}
