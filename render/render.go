// Package render converts drawdowns and rasters to images for preview and
// export. Encoding beyond PNG and any DOM/canvas concern stays outside the
// core; collaborators receive plain image values.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"

	"github.com/setanarut/weavestudio/raster"
	"github.com/setanarut/weavestudio/weave"
)

// DrawdownOptions control fabric-simulation rendering.
type DrawdownOptions struct {
	// Pixels per fabric cell. Ideal start: 4-8 for on-screen preview,
	// 1 for export masters that get scaled later.
	CellSize  int
	WarpColor color.NRGBA
	WeftColor color.NRGBA
}

func DefaultDrawdownOptions() DrawdownOptions {
	return DrawdownOptions{
		CellSize:  6,
		WarpColor: color.NRGBA{R: 0x20, G: 0x24, B: 0x5c, A: 255},
		WeftColor: color.NRGBA{R: 0xf2, G: 0xef, B: 0xe6, A: 255},
	}
}

// DrawdownImage paints a lift grid: warp-up cells in the warp color,
// weft-up cells in the weft color.
func DrawdownImage(dd weave.Drawdown, opt DrawdownOptions) *image.NRGBA {
	cell := max(opt.CellSize, 1)
	img := image.NewNRGBA(image.Rect(0, 0, dd.W*cell, dd.H*cell))
	for y := range dd.H {
		for x := range dd.W {
			c := opt.WeftColor
			if dd.At(x, y) != 0 {
				c = opt.WarpColor
			}
			for py := y * cell; py < (y+1)*cell; py++ {
				for px := x * cell; px < (x+1)*cell; px++ {
					img.SetNRGBA(px, py, c)
				}
			}
		}
	}
	return img
}

// FromImage copies an image into a raster buffer, preserving alpha.
func FromImage(img image.Image) raster.Raster {
	b := img.Bounds()
	r := raster.New(b.Dx(), b.Dy())
	for y := range r.H {
		for x := range r.W {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			off := r.PixOffset(x, y)
			r.Pix[off] = c.R
			r.Pix[off+1] = c.G
			r.Pix[off+2] = c.B
			r.Pix[off+3] = c.A
		}
	}
	return r
}

// ToImage wraps a raster in an NRGBA image. The pixel buffer is copied so
// the returned image never aliases core-owned memory.
func ToImage(r raster.Raster) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.W, r.H))
	copy(img.Pix, r.Pix)
	return img
}

// Thumbnail scales img to fit within maxDim on its longer side.
// Nearest-neighbor keeps palette-exact pixels exact; anything else would
// introduce colors outside the palette.
func Thumbnail(img image.Image, maxDim int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		out := image.NewNRGBA(image.Rect(0, 0, w, h))
		xdraw.Copy(out, image.Point{}, img, b, xdraw.Src, nil)
		return out
	}
	ow, oh := maxDim, maxDim
	if w > h {
		oh = max(h*maxDim/w, 1)
	} else {
		ow = max(w*maxDim/h, 1)
	}
	out := image.NewNRGBA(image.Rect(0, 0, ow, oh))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), img, b, xdraw.Src, nil)
	return out
}

// Smooth scales with Catmull-Rom for photographic previews where palette
// exactness does not matter.
func Smooth(img image.Image, w, h int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return out
}

func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func SaveImages(images []*image.NRGBA, dir, prefix string) error {
	for i := range images {
		if err := SaveImage(images[i], dir+prefix+strconv.Itoa(i)+".png"); err != nil {
			return err
		}
	}
	return nil
}

// SavePalette writes a strip of tileSize squares, one per palette color.
func SavePalette(pal []colorful.Color, tileSize int, filename string) error {
	if len(pal) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	img := image.NewNRGBA(image.Rect(0, 0, tileSize*len(pal), tileSize))
	for i, c := range pal {
		r, g, b := c.Clamped().RGB255()
		for y := range tileSize {
			for x := i * tileSize; x < (i+1)*tileSize; x++ {
				img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
			}
		}
	}
	return SaveImage(img, filename)
}
