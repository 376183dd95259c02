package raster

// MajorityFilter smooths jagged palette edges by iterated 3×3 majority
// vote. Each pass reads a snapshot of the previous pass's full output and
// writes a fresh raster, so results never depend on scan order. For every
// interior opaque pixel (the 1-pixel border is left untouched) the exact-
// RGB occurrence counts of its 3×3 neighborhood are tallied, itself
// included and transparent neighbors excluded; when the winning color
// covers at least 5 of the up-to-9 cells the pixel takes that color at
// full alpha. passes <= 0 returns an unchanged copy.
func MajorityFilter(r Raster, passes int, progress Progress) (Raster, error) {
	if err := r.validate(); err != nil {
		return Raster{}, err
	}
	cur := r.Clone()
	for pass := range passes {
		next := cur.Clone()
		for y := 1; y < cur.H-1; y++ {
			for x := 1; x < cur.W-1; x++ {
				off := cur.PixOffset(x, y)
				if !cur.Opaque(off) {
					continue
				}
				if c, n := neighborhoodMode(cur, x, y); n >= 5 {
					next.Pix[off] = c.R
					next.Pix[off+1] = c.G
					next.Pix[off+2] = c.B
					next.Pix[off+3] = 255
				}
			}
		}
		cur = next
		progress.emit(100*(pass+1)/passes, "smoothing")
	}
	return cur, nil
}

// neighborhoodMode returns the most frequent exact color in the 3×3 block
// around (x, y) and its count. First color to reach the top count wins.
func neighborhoodMode(r Raster, x, y int) (RGB, int) {
	var colors [9]RGB
	var counts [9]int
	n := 0
	best := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			off := r.PixOffset(x+dx, y+dy)
			if !r.Opaque(off) {
				continue
			}
			c := RGB{R: r.Pix[off], G: r.Pix[off+1], B: r.Pix[off+2]}
			found := false
			for i := range n {
				if colors[i] == c {
					counts[i]++
					found = true
					break
				}
			}
			if !found {
				colors[n] = c
				counts[n] = 1
				n++
			}
		}
	}
	for i := 1; i < n; i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	if n == 0 {
		return RGB{}, 0
	}
	return colors[best], counts[best]
}
