package core

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SampleOffset maps (x, y) to the byte offset of the nearest in-range pixel.
// Out-of-range coordinates replicate the border (clamp-to-edge).
func (b *PixelBuffer) SampleOffset(x, y int) int {
	return b.Offset(Clamp(x, 0, b.Width-1), Clamp(y, 0, b.Height-1))
}

// Sample returns the RGBA of the clamp-to-edge pixel at (x, y).
func (b *PixelBuffer) Sample(x, y int) (r, g, bl, a uint8) {
	i := b.SampleOffset(x, y)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}
