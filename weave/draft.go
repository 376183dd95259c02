// Package weave derives fabric drawdowns from dobby drafts and jacquard
// structure assignments.
package weave

import "github.com/setanarut/weavestudio/grid"

// Repeat tiles the base draft across the drawdown. Values below 1 are
// treated as 1 by NewDraft and Normalize; the derivation itself assumes
// both are >= 1.
type Repeat struct {
	Warp, Weft int
}

// Symmetry mirrors alternating repeat tiles, producing a reflection about
// each tile boundary instead of a plain translation.
type Symmetry struct {
	WarpMirror, WeftMirror bool
}

// Loom is the advisory capacity ceiling for a draft. Violations are
// reported by Validate, never enforced.
type Loom struct {
	MaxHarness, MaxTreadle int
	MaxWarp, MaxWeft       int
}

// DefaultLoom matches a common 8-shaft floor loom.
func DefaultLoom() Loom {
	return Loom{
		MaxHarness: 8,
		MaxTreadle: 10,
		MaxWarp:    1200,
		MaxWeft:    2400,
	}
}

// Draft is a dobby weave specification. Threading maps each warp end to a
// harness, Treadling maps each weft pick to a treadle, and TieUp connects
// the two: TieUp[h*TreadleCount+t] == 1 means harness h lifts when treadle
// t is actuated.
type Draft struct {
	WarpCount, WeftCount       int
	HarnessCount, TreadleCount int
	Threading                  []uint8 // len == WarpCount, values in [0, HarnessCount)
	Treadling                  []uint8 // len == WeftCount, values in [0, TreadleCount)
	TieUp                      []uint8 // len == HarnessCount*TreadleCount, 0 or 1
	Repeat                     Repeat
	Symmetry                   Symmetry
	Loom                       Loom
}

// NewDraft allocates a straight-draw draft: threading and treadling run
// i mod count, tie-up starts empty.
func NewDraft(warp, weft, harnesses, treadles int) *Draft {
	d := &Draft{
		WarpCount:    max(warp, 1),
		WeftCount:    max(weft, 1),
		HarnessCount: max(harnesses, 1),
		TreadleCount: max(treadles, 1),
		Repeat:       Repeat{Warp: 1, Weft: 1},
		Loom:         DefaultLoom(),
	}
	d.Threading = make([]uint8, d.WarpCount)
	d.Treadling = make([]uint8, d.WeftCount)
	d.TieUp = make([]uint8, d.HarnessCount*d.TreadleCount)
	d.StraightDraw()
	return d
}

// Normalize clamps Repeat to >= 1 in both directions. Callers editing a
// draft record directly should normalize before deriving.
func (d *Draft) Normalize() {
	d.Repeat.Warp = max(d.Repeat.Warp, 1)
	d.Repeat.Weft = max(d.Repeat.Weft, 1)
}

// Clone returns a deep copy; derivations never mutate their input, so a
// clone is only needed when the caller wants an editable copy.
func (d *Draft) Clone() *Draft {
	out := *d
	out.Threading = append([]uint8(nil), d.Threading...)
	out.Treadling = append([]uint8(nil), d.Treadling...)
	out.TieUp = append([]uint8(nil), d.TieUp...)
	return &out
}

// Structure is a jacquard building block: the same threading/treadling/
// tie-up triple as a Draft, scoped to its own harness and treadle counts.
// Its threading and treadling lengths stand in for repeat.
type Structure struct {
	ID                         int
	Name                       string
	HarnessCount, TreadleCount int
	Threading                  []uint8
	Treadling                  []uint8
	TieUp                      []uint8
}

// Assignment maps each fabric cell to a structure index.
type Assignment = grid.Buffer[int]

// NewAssignment returns a w×h assignment with every cell pointing at
// structure 0.
func NewAssignment(w, h int) Assignment {
	return grid.New[int](w, h)
}
