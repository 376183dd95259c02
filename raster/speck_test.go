package raster

import "testing"

var (
	white = RGB{R: 255, G: 255, B: 255}
	black = RGB{}
	red   = RGB{R: 255}
)

func testPaletteHexes() []string {
	return []string{white.Hex(), black.Hex(), red.Hex()}
}

func TestRemoveSpecksRepaintsSmallCluster(t *testing.T) {
	t.Parallel()

	r := New(8, 8)
	fill(&r, white)
	setPx(&r, 3, 3, black)
	setPx(&r, 4, 3, black)

	res, err := RemoveSpecks(r, testPaletteHexes(), 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.RemovedPixels != 2 {
		t.Fatalf("removed = %d, want 2", res.RemovedPixels)
	}
	for _, p := range [][2]int{{3, 3}, {4, 3}} {
		off := res.Raster.PixOffset(p[0], p[1])
		got := RGB{R: res.Raster.Pix[off], G: res.Raster.Pix[off+1], B: res.Raster.Pix[off+2]}
		if got != white {
			t.Errorf("speck at %v repainted to %v, want white", p, got)
		}
	}
}

func TestRemoveSpecksKeepsLargeCluster(t *testing.T) {
	t.Parallel()

	r := New(8, 8)
	fill(&r, white)
	for y := 2; y < 6; y++ {
		for x := 2; x < 6; x++ {
			setPx(&r, x, y, black)
		}
	}
	res, err := RemoveSpecks(r, testPaletteHexes(), 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.RemovedPixels != 0 {
		t.Fatalf("removed = %d, want 0", res.RemovedPixels)
	}
}

func TestRemoveSpecksThresholdAboveImage(t *testing.T) {
	t.Parallel()

	// Uniform image, threshold larger than the whole raster: the single
	// cluster has no outside neighbor, so nothing changes.
	r := New(6, 6)
	fill(&r, black)
	res, err := RemoveSpecks(r, testPaletteHexes(), 1000, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.RemovedPixels != 0 {
		t.Fatalf("removed = %d, want 0", res.RemovedPixels)
	}
	for i := range r.Pix {
		if res.Raster.Pix[i] != r.Pix[i] {
			t.Fatal("isolated cluster must stay unchanged")
		}
	}
}

func TestRemoveSpecksNeverExceedsOpaqueCount(t *testing.T) {
	t.Parallel()

	r := New(8, 8)
	for y := range 8 {
		for x := range 8 {
			c := white
			if (x+y)%3 == 0 {
				c = black
			}
			setPx(&r, x, y, c)
		}
	}
	// Knock out a corner.
	r.Pix[r.PixOffset(0, 0)+3] = 0
	opaque := 63

	res, err := RemoveSpecks(r, testPaletteHexes(), 64, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.RemovedPixels > opaque {
		t.Fatalf("removed %d pixels out of %d opaque", res.RemovedPixels, opaque)
	}
}

func TestRemoveSpecksIgnoresUnresolvedPixels(t *testing.T) {
	t.Parallel()

	r := New(5, 5)
	fill(&r, white)
	setPx(&r, 2, 2, RGB{R: 7, G: 7, B: 7}) // off-palette

	res, err := RemoveSpecks(r, testPaletteHexes(), 4, nil)
	if err != nil {
		t.Fatal(err)
	}
	off := res.Raster.PixOffset(2, 2)
	got := RGB{R: res.Raster.Pix[off], G: res.Raster.Pix[off+1], B: res.Raster.Pix[off+2]}
	if got != (RGB{R: 7, G: 7, B: 7}) {
		t.Errorf("unresolved pixel repainted to %v", got)
	}
	if res.RemovedPixels != 0 {
		t.Errorf("removed = %d, want 0", res.RemovedPixels)
	}
}

func TestRemoveSpecksTiedNeighborsPickOneOfThem(t *testing.T) {
	t.Parallel()

	// A lone red pixel between equal white and black runs: the repaint
	// color is unspecified on ties but must be one of the tied
	// neighbors.
	r := New(3, 1)
	setPx(&r, 0, 0, white)
	setPx(&r, 1, 0, red)
	setPx(&r, 2, 0, black)

	res, err := RemoveSpecks(r, testPaletteHexes(), 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	off := res.Raster.PixOffset(1, 0)
	got := RGB{R: res.Raster.Pix[off], G: res.Raster.Pix[off+1], B: res.Raster.Pix[off+2]}
	if got != white && got != black {
		t.Fatalf("tied repaint = %v, want white or black", got)
	}
	if res.RemovedPixels < 1 {
		t.Fatalf("removed = %d, want at least the red pixel", res.RemovedPixels)
	}
}

func TestRemoveSpecksBadPaletteHex(t *testing.T) {
	t.Parallel()

	r := New(2, 2)
	if _, err := RemoveSpecks(r, []string{"notacolor"}, 2, nil); err == nil {
		t.Fatal("invalid palette hex must be rejected")
	}
}
