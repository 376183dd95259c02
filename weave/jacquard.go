package weave

import "github.com/setanarut/weavestudio/grid"

// DeriveJacquard computes a drawdown for a per-cell structure assignment.
// Each cell looks up its structure by index and applies the same
// harness/treadle/tie-up rule as Derive, with the structure's own
// threading/treadling lengths as the repeat period. A cell whose index
// does not resolve to a usable structure emits warp-up (1); that default
// is kept for compatibility with existing projects even though it is
// arguably an accident of the original behavior.
func DeriveJacquard(assign Assignment, structures []Structure) Drawdown {
	out := grid.New[uint8](assign.W, assign.H)
	for y := range assign.H {
		row := y * assign.W
		for x := range assign.W {
			si := assign.Cells[row+x]
			if si < 0 || si >= len(structures) {
				out.Cells[row+x] = 1
				continue
			}
			s := &structures[si]
			if s.HarnessCount <= 0 || s.TreadleCount <= 0 ||
				len(s.Threading) == 0 || len(s.Treadling) == 0 || len(s.TieUp) == 0 {
				out.Cells[row+x] = 1
				continue
			}
			harness := clampIndex(int(s.Threading[x%len(s.Threading)]), s.HarnessCount)
			treadle := clampIndex(int(s.Treadling[y%len(s.Treadling)]), s.TreadleCount)
			out.Cells[row+x] = s.TieUp[harness*s.TreadleCount+treadle]
		}
	}
	return out
}

// StructureStats counts how many assignment cells reference each structure.
// Every known structure id appears in the result, zero when unused, so
// coverage displays stay stable as structures come and go.
func StructureStats(assign Assignment, structures []Structure) map[int]int {
	stats := make(map[int]int, len(structures))
	for i := range structures {
		stats[structures[i].ID] = 0
	}
	for _, si := range assign.Cells {
		if si < 0 || si >= len(structures) {
			continue
		}
		stats[structures[si].ID]++
	}
	return stats
}
