// Package separation turns a palette-exact raster into per-color
// screen-printing plates. A plate is a gray mask: 255 where the plate's
// color prints, 0 elsewhere. Compose rebuilds a preview from the plates so
// an operator can verify the set before output.
package separation

import (
	"fmt"
	"image"
	"image/color"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"

	"github.com/setanarut/weavestudio/raster"
)

// Plate is one separation: its print color, the gray coverage mask and
// the opaque pixel count it covers.
type Plate struct {
	Color raster.RGB
	Mask  *image.Gray
	Count int
}

// Plates builds one plate per palette entry from a palette-exact raster.
// Pixels matching no entry and transparent pixels fall on no plate.
// Plates are returned in palette order; consumers must treat the masks as
// read-only.
func Plates(r raster.Raster, paletteHex []string) ([]Plate, error) {
	pal := make([]raster.RGB, len(paletteHex))
	for i, hx := range paletteHex {
		c, err := raster.ParseHex(hx)
		if err != nil {
			return nil, fmt.Errorf("palette entry %d: %w", i, err)
		}
		pal[i] = c
	}

	plates := make([]Plate, len(pal))
	for i := range plates {
		plates[i] = Plate{
			Color: pal[i],
			Mask:  image.NewGray(image.Rect(0, 0, r.W, r.H)),
		}
	}
	for y := range r.H {
		for x := range r.W {
			off := r.PixOffset(x, y)
			if !r.Opaque(off) {
				continue
			}
			c := raster.RGB{R: r.Pix[off], G: r.Pix[off+1], B: r.Pix[off+2]}
			for i := range pal {
				if pal[i] == c {
					plates[i].Mask.SetGray(x, y, color.Gray{Y: 255})
					plates[i].Count++
					break
				}
			}
		}
	}
	return plates, nil
}

// Coverage returns each plate's share of the covered pixels, summing to 1
// when any plate prints.
func Coverage(plates []Plate) []float64 {
	counts := make([]float64, len(plates))
	for i := range plates {
		counts[i] = float64(plates[i].Count)
	}
	total := floats.Sum(counts)
	if total > 0 {
		floats.Scale(1/total, counts)
	}
	return counts
}

// Compose rebuilds a preview image from a plate set, bottom plate first.
// Later plates overprint earlier ones where their masks are set; uncovered
// pixels stay transparent. The round trip Plates -> Compose reproduces the
// opaque pixels of the source raster exactly.
func Compose(plates []Plate, w, h int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range plates {
		p := &plates[i]
		c := color.NRGBA{R: p.Color.R, G: p.Color.G, B: p.Color.B, A: 255}
		b := p.Mask.Bounds()
		for y := b.Min.Y; y < b.Max.Y && y < h; y++ {
			for x := b.Min.X; x < b.Max.X && x < w; x++ {
				if p.Mask.GrayAt(x, y).Y != 0 {
					out.SetNRGBA(x, y, c)
				}
			}
		}
	}
	return out
}

// SortByInkDarkness orders plates lightest ink first, the usual
// screen-printing run order: light inks lay down before dark ones.
func SortByInkDarkness(plates []Plate) {
	luma := func(p Plate) float64 {
		c := colorful.Color{
			R: float64(p.Color.R) / 255.0,
			G: float64(p.Color.G) / 255.0,
			B: float64(p.Color.B) / 255.0,
		}
		l, _, _ := c.Lab()
		return l
	}
	slices.SortStableFunc(plates, func(a, b Plate) int {
		la, lb := luma(a), luma(b)
		if la > lb {
			return -1
		}
		if la < lb {
			return 1
		}
		return 0
	})
}

// Tints renders each plate in its print color over transparency, the
// per-channel proof sheets an operator prints for registration checks.
func Tints(plates []Plate) []*image.NRGBA {
	out := make([]*image.NRGBA, len(plates))
	for i := range plates {
		p := &plates[i]
		b := p.Mask.Bounds()
		img := image.NewNRGBA(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				img.SetNRGBA(x, y, color.NRGBA{R: p.Color.R, G: p.Color.G, B: p.Color.B, A: p.Mask.GrayAt(x, y).Y})
			}
		}
		out[i] = img
	}
	return out
}
