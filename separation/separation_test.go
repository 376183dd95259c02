package separation

import (
	"math"
	"testing"

	"github.com/setanarut/weavestudio/raster"
)

func twoColorRaster() (raster.Raster, []string) {
	ink := raster.RGB{R: 20, G: 20, B: 120}
	paper := raster.RGB{R: 245, G: 240, B: 230}
	r := raster.New(6, 4)
	for y := range 4 {
		for x := range 6 {
			c := paper
			if x < 2 {
				c = ink
			}
			off := r.PixOffset(x, y)
			r.Pix[off] = c.R
			r.Pix[off+1] = c.G
			r.Pix[off+2] = c.B
			r.Pix[off+3] = 255
		}
	}
	return r, []string{ink.Hex(), paper.Hex()}
}

func TestPlatesCoverOpaquePixels(t *testing.T) {
	t.Parallel()

	r, hexes := twoColorRaster()
	plates, err := Plates(r, hexes)
	if err != nil {
		t.Fatal(err)
	}
	if len(plates) != 2 {
		t.Fatalf("plate count = %d, want 2", len(plates))
	}
	if plates[0].Count != 8 || plates[1].Count != 16 {
		t.Errorf("counts = %d, %d; want 8, 16", plates[0].Count, plates[1].Count)
	}
	if plates[0].Mask.GrayAt(0, 0).Y != 255 || plates[0].Mask.GrayAt(3, 0).Y != 0 {
		t.Error("ink mask does not match pixel layout")
	}
}

func TestCoverageSharesSumToOne(t *testing.T) {
	t.Parallel()

	r, hexes := twoColorRaster()
	plates, err := Plates(r, hexes)
	if err != nil {
		t.Fatal(err)
	}
	shares := Coverage(plates)
	sum := 0.0
	for _, s := range shares {
		sum += s
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("shares sum to %f", sum)
	}
	if math.Abs(shares[0]-8.0/24.0) > 1e-9 {
		t.Errorf("ink share = %f, want %f", shares[0], 8.0/24.0)
	}
}

func TestComposeRoundTrip(t *testing.T) {
	t.Parallel()

	r, hexes := twoColorRaster()
	plates, err := Plates(r, hexes)
	if err != nil {
		t.Fatal(err)
	}
	img := Compose(plates, r.W, r.H)
	for y := range r.H {
		for x := range r.W {
			off := r.PixOffset(x, y)
			px := img.NRGBAAt(x, y)
			if px.R != r.Pix[off] || px.G != r.Pix[off+1] || px.B != r.Pix[off+2] {
				t.Fatalf("compose mismatch at (%d,%d)", x, y)
			}
		}
	}
}

func TestComposeLeavesUncoveredTransparent(t *testing.T) {
	t.Parallel()

	r, hexes := twoColorRaster()
	// Punch a transparent hole; it must stay uncovered after composing.
	r.Pix[r.PixOffset(3, 2)+3] = 0
	plates, err := Plates(r, hexes)
	if err != nil {
		t.Fatal(err)
	}
	img := Compose(plates, r.W, r.H)
	if img.NRGBAAt(3, 2).A != 0 {
		t.Error("uncovered pixel should stay transparent")
	}
}

func TestSortByInkDarkness(t *testing.T) {
	t.Parallel()

	r, hexes := twoColorRaster()
	plates, err := Plates(r, hexes)
	if err != nil {
		t.Fatal(err)
	}
	SortByInkDarkness(plates)
	// Paper (light) runs first, ink (dark) last.
	if plates[0].Color.R != 245 || plates[1].Color.R != 20 {
		t.Errorf("run order = %v, %v", plates[0].Color, plates[1].Color)
	}
}

func TestPlatesBadHex(t *testing.T) {
	t.Parallel()

	r, _ := twoColorRaster()
	if _, err := Plates(r, []string{"#12"}); err == nil {
		t.Fatal("invalid hex must be rejected")
	}
}
