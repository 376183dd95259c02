package weave

import "testing"

func twillDraft() *Draft {
	d := NewDraft(4, 4, 4, 4)
	d.Twill2x2TieUp()
	return d
}

func TestDeriveIdentityRepeat(t *testing.T) {
	t.Parallel()

	d := twillDraft()
	dd := Derive(d)
	if dd.W != 4 || dd.H != 4 {
		t.Fatalf("drawdown size = %dx%d, want 4x4", dd.W, dd.H)
	}
	for y := range 4 {
		for x := range 4 {
			want := d.TieUp[int(d.Threading[x])*d.TreadleCount+int(d.Treadling[y])]
			if got := dd.At(x, y); got != want {
				t.Errorf("cell (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestDeriveTwillCells(t *testing.T) {
	t.Parallel()

	// Straight 4-end draft under a 2/2 twill: (0,0) lifts because
	// (0+0) mod 4 < 2, (2,0) does not because (2+0) mod 4 = 2.
	dd := Derive(twillDraft())
	if dd.At(0, 0) != 1 {
		t.Errorf("cell (0,0) = %d, want 1", dd.At(0, 0))
	}
	if dd.At(2, 0) != 0 {
		t.Errorf("cell (2,0) = %d, want 0", dd.At(2, 0))
	}
}

func TestDeriveRepeatTiles(t *testing.T) {
	t.Parallel()

	d := twillDraft()
	d.Repeat = Repeat{Warp: 3, Weft: 2}
	dd := Derive(d)
	if dd.W != 12 || dd.H != 8 {
		t.Fatalf("drawdown size = %dx%d, want 12x8", dd.W, dd.H)
	}
	for y := range dd.H {
		for x := range dd.W {
			if dd.At(x, y) != dd.At(x%4, y%4) {
				t.Fatalf("tile at (%d,%d) does not repeat base", x, y)
			}
		}
	}
}

func TestDeriveWarpMirror(t *testing.T) {
	t.Parallel()

	d := NewDraft(4, 4, 4, 4)
	d.Herringbone()
	d.Repeat = Repeat{Warp: 2, Weft: 1}
	d.Symmetry.WarpMirror = true
	dd := Derive(d)
	// The mirrored tile reflects the base tile about the boundary between
	// x=3 and x=4: cell (4+i) matches cell (3-i).
	for y := range dd.H {
		for i := range 4 {
			left := dd.At(4+i, y)
			right := dd.At(4-1-i, y)
			if left != right {
				t.Fatalf("mirror tile not symmetric at i=%d y=%d: %d vs %d", i, y, left, right)
			}
		}
	}
}

func TestDeriveWeftMirror(t *testing.T) {
	t.Parallel()

	d := NewDraft(4, 6, 4, 4)
	d.Twill3x1TieUp()
	d.Repeat = Repeat{Warp: 1, Weft: 2}
	d.Symmetry.WeftMirror = true
	dd := Derive(d)
	// Reflection about the tile boundary: row 6+i matches row 5-i.
	for x := range dd.W {
		for i := range 6 {
			if dd.At(x, 6+i) != dd.At(x, 6-1-i) {
				t.Fatalf("weft mirror broken at x=%d i=%d", x, i)
			}
		}
	}
}

func TestPlainWeaveCheckerboard(t *testing.T) {
	t.Parallel()

	d := NewDraft(6, 6, 2, 2)
	d.PlainWeaveTieUp()
	dd := Derive(d)
	for y := range dd.H {
		for x := range dd.W {
			want := uint8(0)
			if (x+y)%2 == 0 {
				want = 1
			}
			if dd.At(x, y) != want {
				t.Fatalf("checkerboard broken at (%d,%d)", x, y)
			}
		}
	}
}

func TestDerivePureFunction(t *testing.T) {
	t.Parallel()

	d := twillDraft()
	before := d.Clone()
	a := Derive(d)
	b := Derive(d)
	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] {
			t.Fatal("repeated derivation differs")
		}
	}
	for i := range d.TieUp {
		if d.TieUp[i] != before.TieUp[i] {
			t.Fatal("derivation mutated the draft")
		}
	}
	a.Cells[0] ^= 1
	if b.Cells[0] == a.Cells[0] {
		t.Fatal("derivations share a buffer")
	}
}

func TestDeriveClampsBadIndices(t *testing.T) {
	t.Parallel()

	d := twillDraft()
	d.Threading[1] = 200
	d.Treadling[2] = 99
	// Must not panic; the bad entries clamp to the last harness/treadle.
	dd := Derive(d)
	want := d.TieUp[(d.HarnessCount-1)*d.TreadleCount+int(d.Treadling[0])]
	if dd.At(1, 0) != want {
		t.Errorf("clamped cell = %d, want %d", dd.At(1, 0), want)
	}
}
