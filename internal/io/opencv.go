package io

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"image-processing-engine/internal/core"
)

// LoadImageOpenCV reads path through OpenCV
func (il *ImageLoader) LoadImageOpenCV(path string) (*core.PixelBuffer, error) {
	il.logger.WithField("filepath", path).Debug("Loading image with OpenCV")

	if !hasExtension(path, opencvExtensions) {
		return nil, fmt.Errorf("unsupported image format: %s", path)
	}

	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("failed to load image: %s", path)
	}

	buf, err := FromMat(mat)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image %s: %w", path, err)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	}).Info("Image loaded successfully")

	return buf, nil
}

// SaveImageOpenCV writes buf through OpenCV
func (il *ImageLoader) SaveImageOpenCV(buf *core.PixelBuffer, path string) error {
	il.logger.WithField("filepath", path).Debug("Saving image with OpenCV")

	if !hasExtension(path, opencvExtensions) {
		return fmt.Errorf("unsupported image format: %s", path)
	}

	mat, err := ToMat(buf)
	if err != nil {
		return fmt.Errorf("cannot save image: %w", err)
	}
	defer mat.Close()

	if ok := gocv.IMWrite(path, mat); !ok {
		return fmt.Errorf("failed to save image: %s", path)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    buf.Width,
		"height":   buf.Height,
	}).Info("Image saved successfully")

	return nil
}

// FromMat converts a 1, 3 or 4 channel 8-bit Mat into an RGBA buffer
func FromMat(mat gocv.Mat) (*core.PixelBuffer, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("%w: empty mat", core.ErrInvalidParameter)
	}

	rgba := gocv.NewMat()
	defer rgba.Close()

	var code gocv.ColorConversionCode
	switch mat.Channels() {
	case 1:
		code = gocv.ColorGrayToRGBA
	case 3:
		code = gocv.ColorBGRToRGBA
	case 4:
		code = gocv.ColorBGRAToRGBA
	default:
		return nil, fmt.Errorf("%w: unsupported channel count %d", core.ErrInvalidParameter, mat.Channels())
	}
	if err := gocv.CvtColor(mat, &rgba, code); err != nil {
		return nil, err
	}

	return core.NewPixelBufferFromBytes(rgba.Cols(), rgba.Rows(), rgba.ToBytes())
}

// ToMat converts buf into a 3 channel BGR Mat; the caller owns the result
func ToMat(buf *core.PixelBuffer) (gocv.Mat, error) {
	if err := core.ValidateBuffer(buf); err != nil {
		return gocv.NewMat(), err
	}

	rgba, err := gocv.NewMatFromBytes(buf.Height, buf.Width, gocv.MatTypeCV8UC4, buf.Pix)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer rgba.Close()

	bgr := gocv.NewMat()
	if err := gocv.CvtColor(rgba, &bgr, gocv.ColorRGBAToBGR); err != nil {
		bgr.Close()
		return gocv.NewMat(), err
	}
	return bgr, nil
}
