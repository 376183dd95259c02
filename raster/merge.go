package raster

import "fmt"

// MergeResult is the recolored raster and how many pixels changed.
type MergeResult struct {
	Raster        Raster
	ChangedPixels int
}

// Merge recolors every opaque pixel exactly matching fromHex to toHex at
// full alpha. Matching is exact RGB equality, no tolerance: the raster is
// expected to be palette-exact. Merging twice is a no-op after the first
// pass, since no fromHex pixels remain.
func Merge(r Raster, fromHex, toHex string) (MergeResult, error) {
	if err := r.validate(); err != nil {
		return MergeResult{}, err
	}
	from, err := ParseHex(fromHex)
	if err != nil {
		return MergeResult{}, fmt.Errorf("from color: %w", err)
	}
	to, err := ParseHex(toHex)
	if err != nil {
		return MergeResult{}, fmt.Errorf("to color: %w", err)
	}

	out := r.Clone()
	changed := 0
	for off := 0; off < len(out.Pix); off += 4 {
		if !out.Opaque(off) {
			continue
		}
		if out.Pix[off] != from.R || out.Pix[off+1] != from.G || out.Pix[off+2] != from.B {
			continue
		}
		out.Pix[off] = to.R
		out.Pix[off+1] = to.G
		out.Pix[off+2] = to.B
		out.Pix[off+3] = 255
		changed++
	}
	return MergeResult{Raster: out, ChangedPixels: changed}, nil
}
