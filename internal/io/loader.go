// Image loading and saving functionality
package io

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"image-processing-engine/internal/core"
)

// Decoder selects the backend used to read and write image files
type Decoder string

const (
	DecoderNative Decoder = "native"
	DecoderOpenCV Decoder = "opencv"
)

// ParseDecoder validates a decoder name
func ParseDecoder(name string) (Decoder, error) {
	switch d := Decoder(strings.ToLower(name)); d {
	case "", DecoderNative:
		return DecoderNative, nil
	case DecoderOpenCV:
		return d, nil
	default:
		return "", fmt.Errorf("%w: unknown decoder %q", core.ErrInvalidParameter, name)
	}
}

// ImageLoader handles image file operations
type ImageLoader struct {
	logger  logrus.FieldLogger
	decoder Decoder
}

func NewImageLoader(logger logrus.FieldLogger, decoder Decoder) *ImageLoader {
	if decoder == "" {
		decoder = DecoderNative
	}
	return &ImageLoader{
		logger:  logger,
		decoder: decoder,
	}
}

// Decoder returns the configured backend
func (il *ImageLoader) Decoder() Decoder {
	return il.decoder
}

// Load reads path with the configured backend
func (il *ImageLoader) Load(path string) (*core.PixelBuffer, error) {
	if il.decoder == DecoderOpenCV {
		return il.LoadImageOpenCV(path)
	}
	return il.LoadImage(path)
}

// Save writes buf to path with the configured backend
func (il *ImageLoader) Save(buf *core.PixelBuffer, path string) error {
	if il.decoder == DecoderOpenCV {
		return il.SaveImageOpenCV(buf, path)
	}
	return il.SaveImage(buf, path)
}

// LoadImage decodes path with the Go image codecs, honoring EXIF orientation
func (il *ImageLoader) LoadImage(path string) (*core.PixelBuffer, error) {
	il.logger.WithField("filepath", path).Debug("Loading image")

	if !hasExtension(path, nativeReadExtensions) {
		return nil, fmt.Errorf("unsupported image format: %s", path)
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}

	buf, err := core.FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image %s: %w", path, err)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    buf.Width,
		"height":   buf.Height,
	}).Info("Image loaded successfully")

	return buf, nil
}

// SaveImage encodes buf in the format implied by the file extension
func (il *ImageLoader) SaveImage(buf *core.PixelBuffer, path string) error {
	il.logger.WithField("filepath", path).Debug("Saving image")

	if err := core.ValidateBuffer(buf); err != nil {
		return fmt.Errorf("cannot save image: %w", err)
	}

	if !hasExtension(path, nativeWriteExtensions) {
		return fmt.Errorf("unsupported image format: %s", path)
	}

	var img image.Image = buf.ToImage()
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image %s: %w", path, err)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    buf.Width,
		"height":   buf.Height,
	}).Info("Image saved successfully")

	return nil
}

// Extensions each backend accepts. The Go codecs decode WebP but cannot encode it.
var (
	nativeReadExtensions  = []string{".jpg", ".jpeg", ".png", ".gif", ".tiff", ".tif", ".bmp", ".webp"}
	nativeWriteExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".tiff", ".tif", ".bmp"}
	opencvExtensions      = []string{".jpg", ".jpeg", ".png", ".tiff", ".tif", ".bmp", ".webp"}
)

func hasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range exts {
		if ext == format {
			return true
		}
	}
	return false
}

// GetSupportedFormats lists the formats the configured backend handles
func (il *ImageLoader) GetSupportedFormats() []string {
	if il.decoder == DecoderOpenCV {
		return []string{"JPEG", "PNG", "TIFF", "BMP", "WEBP"}
	}
	return []string{"JPEG", "PNG", "TIFF", "BMP", "GIF", "WEBP (read only)"}
}
