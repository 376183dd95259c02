package weave

import "github.com/setanarut/weavestudio/grid"

// Drawdown is the derived lift grid: 1 = warp up, 0 = weft up.
type Drawdown = grid.Buffer[uint8]

// Derive computes the drawdown for a draft. Output size is
// (WarpCount*Repeat.Warp) × (WeftCount*Repeat.Weft). Each cell reduces to
// its base-tile coordinate by modulo; when a mirror is enabled and the
// tile index along that axis is odd, the base coordinate is reflected, so
// adjacent tiles meet in mirror symmetry instead of repeating.
//
// Derive is a pure recomputation every call; callers own any memoization.
// Threading/treadling entries outside the harness/treadle range are
// clamped into range rather than panicking: Validate reports them, the
// display path stays total.
func Derive(d *Draft) Drawdown {
	rw := max(d.Repeat.Warp, 1)
	rh := max(d.Repeat.Weft, 1)
	outW := d.WarpCount * rw
	outH := d.WeftCount * rh
	out := grid.New[uint8](outW, outH)

	for y := range outH {
		baseY := y % d.WeftCount
		if d.Symmetry.WeftMirror && (y/d.WeftCount)%2 == 1 {
			baseY = d.WeftCount - 1 - baseY
		}
		treadle := clampIndex(int(d.Treadling[baseY]), d.TreadleCount)
		row := y * outW
		for x := range outW {
			baseX := x % d.WarpCount
			if d.Symmetry.WarpMirror && (x/d.WarpCount)%2 == 1 {
				baseX = d.WarpCount - 1 - baseX
			}
			harness := clampIndex(int(d.Threading[baseX]), d.HarnessCount)
			out.Cells[row+x] = d.TieUp[harness*d.TreadleCount+treadle]
		}
	}
	return out
}

func clampIndex(v, n int) int {
	if v >= n {
		return n - 1
	}
	if v < 0 {
		return 0
	}
	return v
}
