package weave

import "fmt"

// Validate checks a draft against its loom capacity and structural
// completeness. The result is an ordered list of human-readable
// violations, empty when the draft is clean. Validation is advisory: the
// caller decides whether a non-empty result blocks an operation.
//
// Threading and treadling are scanned front to back and only the first
// offending position of each is reported; one bad entry usually means a
// run of them and a single message keeps the report readable.
func Validate(d *Draft) []string {
	var problems []string

	if d.HarnessCount > d.Loom.MaxHarness {
		problems = append(problems, fmt.Sprintf(
			"draft uses %d harnesses but the loom has %d", d.HarnessCount, d.Loom.MaxHarness))
	}
	if d.TreadleCount > d.Loom.MaxTreadle {
		problems = append(problems, fmt.Sprintf(
			"draft uses %d treadles but the loom has %d", d.TreadleCount, d.Loom.MaxTreadle))
	}
	if d.WarpCount > d.Loom.MaxWarp {
		problems = append(problems, fmt.Sprintf(
			"warp count %d exceeds loom maximum %d", d.WarpCount, d.Loom.MaxWarp))
	}
	if d.WeftCount > d.Loom.MaxWeft {
		problems = append(problems, fmt.Sprintf(
			"weft count %d exceeds loom maximum %d", d.WeftCount, d.Loom.MaxWeft))
	}

	hasLift := false
	for _, v := range d.TieUp {
		if v != 0 {
			hasLift = true
			break
		}
	}
	if !hasLift {
		problems = append(problems, "tie-up is empty: no pattern will be generated")
	}

	for i, h := range d.Threading {
		if int(h) >= d.HarnessCount {
			problems = append(problems, fmt.Sprintf(
				"threading position %d references harness %d of %d", i, h, d.HarnessCount))
			break
		}
	}
	for i, t := range d.Treadling {
		if int(t) >= d.TreadleCount {
			problems = append(problems, fmt.Sprintf(
				"treadling position %d references treadle %d of %d", i, t, d.TreadleCount))
			break
		}
	}
	return problems
}
