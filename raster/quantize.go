package raster

import (
	"math/rand/v2"
)

// QuantizeOptions tunes the k-means pass.
type QuantizeOptions struct {
	// Target palette size. Clamped to [2, 24]: production separations
	// never want fewer than two plates and screens above 24 are not
	// printable in practice.
	K int
	// Upper bound on Lloyd iterations; convergence usually stops the loop
	// well before this.
	MaxIters int
	// Sample every Nth pixel when building the clustering set. 1 uses
	// every opaque pixel. Ideal start: 3-5 for camera imagery.
	SampleStride int
	// Optional initial centroids, e.g. from palette.Extract. When fewer
	// than K are given the rest are drawn from the samples.
	Seeds []RGB
	// Random source for centroid initialization. Tests inject a seeded
	// source; nil falls back to the process-global generator.
	Rand *rand.Rand
	// Advisory progress notifications, may be nil.
	Progress Progress
}

func DefaultQuantizeOptions() QuantizeOptions {
	return QuantizeOptions{
		K:            8,
		MaxIters:     24,
		SampleStride: 4,
	}
}

// PaletteEntry is one reported palette color with its full-image pixel
// coverage.
type PaletteEntry struct {
	Color RGB
	Count int
}

// QuantizeResult carries the reported palette, in descending coverage
// order with zero-coverage centroids dropped, and the fully quantized
// raster.
type QuantizeResult struct {
	Palette []PaletteEntry
	Raster  Raster
}

// centroids move in float space until convergence; a squared shift of 5
// or less counts as stationary. The tolerance is deliberately coarse:
// sub-pixel centroid drift never changes the rounded palette.
const movedThreshold = 5.0

// Quantize clusters the raster's opaque pixels into at most K colors with
// Lloyd's algorithm and rewrites every pixel to its nearest centroid at
// full alpha. Transparent pixels (alpha < OpaqueAlpha) are skipped during
// clustering and preserved untouched in the output. A fully transparent
// raster yields a single black palette entry covering the whole image.
//
// Centroid initialization is randomized; pin opts.Rand for reproducible
// palettes.
func Quantize(r Raster, opts QuantizeOptions) (QuantizeResult, error) {
	if err := r.validate(); err != nil {
		return QuantizeResult{}, err
	}
	k := min(max(opts.K, 2), 24)
	iters := opts.MaxIters
	if iters <= 0 {
		iters = DefaultQuantizeOptions().MaxIters
	}
	stride := max(opts.SampleStride, 1)
	rng := opts.Rand

	opts.Progress.emit(0, "sampling")
	samples := collectSamples(r, stride)
	if len(samples) == 0 {
		// Nothing opaque to cluster: degenerate single-entry palette.
		return QuantizeResult{
			Palette: []PaletteEntry{{Color: RGB{}, Count: r.W * r.H}},
			Raster:  r.Clone(),
		}, nil
	}

	cents := initialCentroids(samples, k, opts.Seeds, rng)
	k = len(cents)

	opts.Progress.emit(10, "clustering")
	assign := make([]int, len(samples))
	sums := make([]acc3, k)
	for it := range iters {
		for i, s := range samples {
			assign[i] = nearestCentroid(cents, s)
		}
		for i := range sums {
			sums[i] = acc3{}
		}
		for i, s := range samples {
			a := &sums[assign[i]]
			a.r += s[0]
			a.g += s[1]
			a.b += s[2]
			a.n++
		}
		moved := false
		for ci := range cents {
			if sums[ci].n == 0 {
				continue
			}
			n := float64(sums[ci].n)
			next := [3]float64{sums[ci].r / n, sums[ci].g / n, sums[ci].b / n}
			if sqDist(cents[ci], next) > movedThreshold {
				moved = true
			}
			cents[ci] = next
		}
		opts.Progress.emit(10+60*(it+1)/iters, "clustering")
		if !moved {
			break
		}
	}

	opts.Progress.emit(70, "mapping pixels")
	out := New(r.W, r.H)
	counts := make([]int, k)
	for off := 0; off < len(r.Pix); off += 4 {
		if !r.Opaque(off) {
			copy(out.Pix[off:off+4], r.Pix[off:off+4])
			continue
		}
		ci := nearestCentroid(cents, [3]float64{
			float64(r.Pix[off]),
			float64(r.Pix[off+1]),
			float64(r.Pix[off+2]),
		})
		counts[ci]++
		c := roundRGB(cents[ci])
		out.Pix[off] = c.R
		out.Pix[off+1] = c.G
		out.Pix[off+2] = c.B
		out.Pix[off+3] = 255
	}

	entries := make([]PaletteEntry, 0, k)
	for ci := range cents {
		if counts[ci] == 0 {
			continue
		}
		entries = append(entries, PaletteEntry{Color: roundRGB(cents[ci]), Count: counts[ci]})
	}
	// Descending coverage; insertion sort keeps equal-count order stable.
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].Count > entries[j-1].Count; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}

	opts.Progress.emit(100, "done")
	return QuantizeResult{Palette: entries, Raster: out}, nil
}

type acc3 struct {
	r, g, b float64
	n       int
}

func collectSamples(r Raster, stride int) [][3]float64 {
	total := r.W * r.H
	samples := make([][3]float64, 0, total/stride+1)
	for p := 0; p < total; p += stride {
		off := p * 4
		if !r.Opaque(off) {
			continue
		}
		samples = append(samples, [3]float64{
			float64(r.Pix[off]),
			float64(r.Pix[off+1]),
			float64(r.Pix[off+2]),
		})
	}
	return samples
}

// initialCentroids seeds k centroids from explicit seeds first, then from
// randomly ordered distinct sample colors. When the image holds fewer
// distinct colors than k, the first sample fills the remaining slots.
func initialCentroids(samples [][3]float64, k int, seeds []RGB, rng *rand.Rand) [][3]float64 {
	cents := make([][3]float64, 0, k)
	for _, s := range seeds {
		if len(cents) == k {
			break
		}
		cents = append(cents, [3]float64{float64(s.R), float64(s.G), float64(s.B)})
	}
	if len(cents) == k {
		return cents
	}

	seen := make(map[[3]float64]struct{}, len(samples))
	distinct := make([][3]float64, 0, len(samples))
	for _, s := range samples {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		distinct = append(distinct, s)
	}
	shuffle := func(i, j int) { distinct[i], distinct[j] = distinct[j], distinct[i] }
	if rng != nil {
		rng.Shuffle(len(distinct), shuffle)
	} else {
		rand.Shuffle(len(distinct), shuffle)
	}
	for _, s := range distinct {
		if len(cents) == k {
			break
		}
		cents = append(cents, s)
	}
	for len(cents) < k {
		cents = append(cents, samples[0])
	}
	return cents
}

func nearestCentroid(cents [][3]float64, s [3]float64) int {
	best := 0
	bestD := sqDist(cents[0], s)
	for ci := 1; ci < len(cents); ci++ {
		if d := sqDist(cents[ci], s); d < bestD {
			bestD = d
			best = ci
		}
	}
	return best
}

func sqDist(a, b [3]float64) float64 {
	dr := a[0] - b[0]
	dg := a[1] - b[1]
	db := a[2] - b[2]
	return dr*dr + dg*dg + db*db
}

func roundRGB(c [3]float64) RGB {
	return RGB{
		R: uint8(max(0, min(255, c[0]+0.5))),
		G: uint8(max(0, min(255, c[1]+0.5))),
		B: uint8(max(0, min(255, c[2]+0.5))),
	}
}
