package raster

import "fmt"

// SpeckResult is a cleaned raster plus the number of pixels actually
// repainted.
type SpeckResult struct {
	Raster        Raster
	RemovedPixels int
}

var dx4 = [4]int{-1, 0, 1, 0}
var dy4 = [4]int{0, -1, 0, 1}

// RemoveSpecks dissolves isolated color clusters smaller than
// minClusterSize into their surroundings. The raster is expected to be
// palette-exact (the output of Quantize): each opaque pixel is resolved to
// a palette index by exact RGB match, pixels matching no entry stay
// unresolved and take no part in clustering. Connected clusters are found
// by 4-connected stack flood fill; a sub-threshold cluster is repainted to
// the most frequent palette index among its 4-connected border neighbors.
// On a tied tally the first index encountered wins; the tie-break is
// deliberately unspecified. A cluster with no resolved neighbor is left
// alone. Repaints are visible to the neighbor tallies of clusters visited
// later.
func RemoveSpecks(r Raster, paletteHex []string, minClusterSize int, progress Progress) (SpeckResult, error) {
	if err := r.validate(); err != nil {
		return SpeckResult{}, err
	}
	pal := make([]RGB, len(paletteHex))
	for i, hx := range paletteHex {
		c, err := ParseHex(hx)
		if err != nil {
			return SpeckResult{}, fmt.Errorf("palette entry %d: %w", i, err)
		}
		pal[i] = c
	}

	out := r.Clone()
	idx := indexMap(r, pal)
	total := r.W * r.H
	visited := make([]bool, total)
	stack := make([]int, 0, 256)
	cluster := make([]int, 0, 256)
	removed := 0

	progress.emit(0, "scanning clusters")
	for start := range total {
		if visited[start] || idx[start] < 0 {
			continue
		}
		root := idx[start]

		// Grow the component.
		cluster = cluster[:0]
		stack = append(stack[:0], start)
		visited[start] = true
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			cluster = append(cluster, p)
			px := p % r.W
			py := p / r.W
			for k := range 4 {
				nx := px + dx4[k]
				ny := py + dy4[k]
				if nx < 0 || nx >= r.W || ny < 0 || ny >= r.H {
					continue
				}
				n := ny*r.W + nx
				if !visited[n] && idx[n] == root {
					visited[n] = true
					stack = append(stack, n)
				}
			}
		}
		if len(cluster) >= minClusterSize {
			continue
		}

		// Tally resolved border neighbors outside the cluster.
		tally := make(map[int]int)
		best, bestN := -1, 0
		for _, p := range cluster {
			px := p % r.W
			py := p / r.W
			for k := range 4 {
				nx := px + dx4[k]
				ny := py + dy4[k]
				if nx < 0 || nx >= r.W || ny < 0 || ny >= r.H {
					continue
				}
				ni := idx[ny*r.W+nx]
				if ni < 0 || ni == root {
					continue
				}
				tally[ni]++
				if tally[ni] > bestN {
					bestN = tally[ni]
					best = ni
				}
			}
		}
		if best < 0 {
			continue
		}

		c := pal[best]
		for _, p := range cluster {
			idx[p] = best
			off := p * 4
			out.Pix[off] = c.R
			out.Pix[off+1] = c.G
			out.Pix[off+2] = c.B
			out.Pix[off+3] = 255
		}
		removed += len(cluster)
		if start%4096 == 0 {
			progress.emit(100*start/total, "scanning clusters")
		}
	}

	progress.emit(100, "done")
	return SpeckResult{Raster: out, RemovedPixels: removed}, nil
}

// indexMap resolves every pixel to its exact palette index, -1 for
// transparent or off-palette pixels.
func indexMap(r Raster, pal []RGB) []int {
	idx := make([]int, r.W*r.H)
	for p := range idx {
		off := p * 4
		idx[p] = -1
		if !r.Opaque(off) {
			continue
		}
		c := RGB{R: r.Pix[off], G: r.Pix[off+1], B: r.Pix[off+2]}
		for i, pc := range pal {
			if pc == c {
				idx[p] = i
				break
			}
		}
	}
	return idx
}
