// Core image data structures
package core

import (
	"fmt"
	"sync"
)

// Channels is the fixed RGBA8 layout width in bytes per pixel
const Channels = 4

// PixelBuffer is a row-major RGBA8 image. Pix holds Width*Height*4 bytes in R,G,B,A order.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewPixelBuffer allocates a zeroed buffer
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*Channels),
	}
}

// NewPixelBufferFromBytes wraps pix after checking its length against the dimensions.
// The slice is copied so the caller keeps ownership of pix.
func NewPixelBufferFromBytes(width, height int, pix []uint8) (*PixelBuffer, error) {
	buf := &PixelBuffer{Width: width, Height: height, Pix: pix}
	if err := ValidateBuffer(buf); err != nil {
		return nil, err
	}
	return buf.Clone(), nil
}

// Clone returns a deep copy
func (b *PixelBuffer) Clone() *PixelBuffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &PixelBuffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// Offset returns the index of the R byte of pixel (x, y).
func (b *PixelBuffer) Offset(x, y int) int {
	return (y*b.Width + x) * Channels
}

// SameSize reports whether b and o have identical dimensions
func (b *PixelBuffer) SameSize(o *PixelBuffer) bool {
	return b.Width == o.Width && b.Height == o.Height
}

// Equal reports whether both buffers have the same size and bytes.
func (b *PixelBuffer) Equal(o *PixelBuffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	if !b.SameSize(o) || len(b.Pix) != len(o.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// ValidateBuffer checks the PixelBuffer invariant len(Pix) == Width*Height*4
func ValidateBuffer(b *PixelBuffer) error {
	if b == nil {
		return fmt.Errorf("%w: buffer is nil", ErrInvalidParameter)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: invalid dimensions: %dx%d", ErrInvalidParameter, b.Width, b.Height)
	}

	const maxDimension = 16384
	if b.Width > maxDimension || b.Height > maxDimension {
		return fmt.Errorf("%w: image too large: %dx%d (max: %d)", ErrInvalidParameter, b.Width, b.Height, maxDimension)
	}

	if want := b.Width * b.Height * Channels; len(b.Pix) != want {
		return fmt.Errorf("%w: pixel data is %d bytes, want %d", ErrInvalidParameter, len(b.Pix), want)
	}
	return nil
}

// ImageData manages the working images of an interactive session with thread safety.
// Buffers handed in and out are cloned, so stored images are never aliased.
type ImageData struct {
	mu        sync.RWMutex
	original  *PixelBuffer
	secondary *PixelBuffer
	processed *PixelBuffer
	filepath  string

	// bumped whenever an input changes
	generation uint64
}

// NewImageData creates a new thread-safe image data container
func NewImageData() *ImageData {
	return &ImageData{}
}

// SetOriginal sets the primary image with validation
func (img *ImageData) SetOriginal(buf *PixelBuffer, filepath string) error {
	if err := ValidateBuffer(buf); err != nil {
		return fmt.Errorf("cannot set original image: %w", err)
	}

	img.mu.Lock()
	defer img.mu.Unlock()

	img.original = buf.Clone()
	img.processed = nil
	img.filepath = filepath
	img.generation++
	return nil
}

// SetSecondary sets the second operand used by two-image operations
func (img *ImageData) SetSecondary(buf *PixelBuffer) error {
	if err := ValidateBuffer(buf); err != nil {
		return fmt.Errorf("cannot set secondary image: %w", err)
	}

	img.mu.Lock()
	defer img.mu.Unlock()
	img.secondary = buf.Clone()
	img.generation++
	return nil
}

// SetProcessed sets the processed image
func (img *ImageData) SetProcessed(buf *PixelBuffer) error {
	if err := ValidateBuffer(buf); err != nil {
		return fmt.Errorf("cannot set processed image: %w", err)
	}

	img.mu.Lock()
	defer img.mu.Unlock()

	if img.original == nil {
		return fmt.Errorf("no original image loaded")
	}
	img.processed = buf.Clone()
	return nil
}

// Snapshot returns copies of both inputs and the generation they belong to
func (img *ImageData) Snapshot() (original, secondary *PixelBuffer, generation uint64) {
	img.mu.RLock()
	defer img.mu.RUnlock()
	return cloneOrNil(img.original), cloneOrNil(img.secondary), img.generation
}

// SetProcessedIfCurrent stores buf only if the inputs are still those of generation
func (img *ImageData) SetProcessedIfCurrent(generation uint64, buf *PixelBuffer) error {
	if err := ValidateBuffer(buf); err != nil {
		return fmt.Errorf("cannot set processed image: %w", err)
	}

	img.mu.Lock()
	defer img.mu.Unlock()

	if img.generation != generation {
		return ErrStaleResult
	}
	if img.original == nil {
		return fmt.Errorf("no original image loaded")
	}
	img.processed = buf.Clone()
	return nil
}

// GetOriginal returns a copy of the original image, or nil
func (img *ImageData) GetOriginal() *PixelBuffer {
	img.mu.RLock()
	defer img.mu.RUnlock()
	return cloneOrNil(img.original)
}

// GetSecondary returns a copy of the secondary image, or nil
func (img *ImageData) GetSecondary() *PixelBuffer {
	img.mu.RLock()
	defer img.mu.RUnlock()
	return cloneOrNil(img.secondary)
}

// GetProcessed returns a copy of the processed image, or nil
func (img *ImageData) GetProcessed() *PixelBuffer {
	img.mu.RLock()
	defer img.mu.RUnlock()
	return cloneOrNil(img.processed)
}

// HasImage returns true if an original image is loaded
func (img *ImageData) HasImage() bool {
	img.mu.RLock()
	defer img.mu.RUnlock()
	return img.original != nil
}

// GetFilepath returns the path the original was loaded from
func (img *ImageData) GetFilepath() string {
	img.mu.RLock()
	defer img.mu.RUnlock()
	return img.filepath
}

// PromoteProcessed makes the processed image the new original so operations can be chained
func (img *ImageData) PromoteProcessed() error {
	img.mu.Lock()
	defer img.mu.Unlock()

	if img.processed == nil {
		return fmt.Errorf("no processed image available")
	}
	img.original = img.processed
	img.processed = nil
	img.generation++
	return nil
}

// RemoveSecondary drops the second operand
func (img *ImageData) RemoveSecondary() {
	img.mu.Lock()
	defer img.mu.Unlock()
	img.secondary = nil
	img.generation++
}

// Clear clears all image data
func (img *ImageData) Clear() {
	img.mu.Lock()
	defer img.mu.Unlock()

	img.original = nil
	img.secondary = nil
	img.processed = nil
	img.filepath = ""
	img.generation++
}

func cloneOrNil(b *PixelBuffer) *PixelBuffer {
	if b == nil {
		return nil
	}
	return b.Clone()
}
