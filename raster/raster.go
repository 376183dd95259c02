// Package raster implements the production-artwork cleanup pipeline:
// k-means quantization to a bounded palette, speck removal, exact color
// merge and majority-vote smoothing. Every operation takes one raster and
// returns a new one; inputs are never mutated.
package raster

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// OpaqueAlpha is the sentinel threshold: pixels with alpha below it are
// treated as transparent and ignored by every pipeline stage.
const OpaqueAlpha = 20

// RGB is a palette color. Alpha is carried separately by the raster.
type RGB struct {
	R, G, B uint8
}

// Hex formats the color as "#rrggbb".
func (c RGB) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}

// ParseHex parses "#rrggbb" (or "#rgb") into an RGB.
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("parse %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// Raster is a W×H image stored as interleaved RGBA bytes,
// len(Pix) == W*H*4.
type Raster struct {
	W, H int
	Pix  []uint8
}

// New allocates a fully transparent raster.
func New(w, h int) Raster {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Raster{W: w, H: h, Pix: make([]uint8, w*h*4)}
}

// Clone returns a deep copy that never aliases the receiver.
func (r Raster) Clone() Raster {
	out := Raster{W: r.W, H: r.H, Pix: make([]uint8, len(r.Pix))}
	copy(out.Pix, r.Pix)
	return out
}

// PixOffset returns the byte offset of pixel (x, y).
func (r Raster) PixOffset(x, y int) int {
	return (y*r.W + x) * 4
}

// Opaque reports whether the pixel at byte offset off counts as visible.
func (r Raster) Opaque(off int) bool {
	return r.Pix[off+3] >= OpaqueAlpha
}

// validate rejects a raster whose buffer length disagrees with its
// declared size before any pass touches it.
func (r Raster) validate() error {
	if len(r.Pix) != r.W*r.H*4 {
		return fmt.Errorf("raster buffer is %d bytes, want %d for %dx%d",
			len(r.Pix), r.W*r.H*4, r.W, r.H)
	}
	return nil
}
