// Package palette extracts production palettes from images. Two methods
// are offered: k-means clustering and dominant-color extraction; both feed
// a diversity selection that keeps the requested number of visually
// distinct colors. Extracted palettes can seed raster.Quantize or stand on
// their own for separation planning.
package palette

import (
	"image"
	"log"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"gonum.org/v1/gonum/mat"

	"github.com/setanarut/weavestudio/raster"
)

type Method int

const (
	MethodDominantColor Method = iota
	MethodKMeans
)

func (m Method) String() string {
	switch m {
	case MethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

type candidate struct {
	Col    colorful.Color
	Weight float64
}

// Extract returns up to k palette colors from img with the chosen method.
// KMeans falls back to dominant-color when clustering yields nothing.
func Extract(img image.Image, k int, method Method) []colorful.Color {
	if method == MethodKMeans {
		if p := ExtractKMeans(img, k); len(p) != 0 {
			return p
		}
		log.Println("palette warning: kmeans returned empty palette, falling back to dominantcolor")
	}
	return ExtractDominant(img, k)
}

// ExtractDominant builds the palette from dominantcolor's weighted
// candidates, over-requesting so the diversity selection has room to work.
func ExtractDominant(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	cands := dominantcolor.FindWeight(img, max(24, k*8))
	weighted := make([]candidate, 0, len(cands))
	for _, c := range cands {
		col, _ := colorful.MakeColor(c.RGBA)
		w := c.Weight
		if w <= 0 {
			w = 1e-6
		}
		weighted = append(weighted, candidate{Col: col.Clamped(), Weight: w})
	}
	if len(weighted) == 0 {
		// Avoid an empty palette that would break downstream separations.
		weighted = append(weighted, candidate{
			Col:    colorful.Color{R: 0.5, G: 0.5, B: 0.5},
			Weight: 1,
		})
	}
	return SelectDiverse(weighted, k)
}

// ExtractKMeans clusters a subsample of the image's opaque pixels with
// muesli/kmeans, weights clusters by population and hands them to the
// diversity selection. Subsampling keeps the partition tractable on large
// inputs.
func ExtractKMeans(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	maxSamples := 12000
	step := 1
	if w*h > maxSamples {
		step = int(math.Sqrt(float64(w*h)/float64(maxSamples))) + 1
	}
	dataset := make(clusters.Observations, 0, min(w*h, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r16) / 65535.0,
				float64(g16) / 65535.0,
				float64(b16) / 65535.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	workK := min(max(k*4, k+2), len(dataset))
	km := kmeans.New()
	cc, err := km.Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return nil
	}

	weighted := make([]candidate, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		w := float64(len(c.Observations))
		if w <= 0 {
			w = 1e-6
		}
		weighted = append(weighted, candidate{Col: col, Weight: w})
	}
	return SelectDiverse(weighted, k)
}

// SelectDiverse keeps k candidates by greedy max-min selection over Lab
// distance, biased toward heavily weighted colors. Pairwise distances are
// assembled once into a symmetric matrix so each greedy round is a row
// scan.
func SelectDiverse(cands []candidate, k int) []colorful.Color {
	n := len(cands)
	if k <= 0 || n == 0 {
		return nil
	}
	if k > n {
		k = n
	}

	labs := make([][3]float64, n)
	maxW := 0.0
	for i, c := range cands {
		l, a, b := c.Col.Lab()
		labs[i] = [3]float64{l, a, b}
		if c.Weight > maxW {
			maxW = c.Weight
		}
	}
	if maxW <= 0 {
		maxW = 1
	}

	dist := mat.NewSymDense(n, nil)
	for i := range n {
		for j := i + 1; j < n; j++ {
			d0 := labs[i][0] - labs[j][0]
			d1 := labs[i][1] - labs[j][1]
			d2 := labs[i][2] - labs[j][2]
			dist.SetSym(i, j, d0*d0+d1*d1+d2*d2)
		}
	}

	selected := make([]bool, n)
	order := make([]int, 0, k)

	// Seed with the heaviest candidate to stay close to dominant tones.
	seed := 0
	for i := 1; i < n; i++ {
		if cands[i].Weight > cands[seed].Weight {
			seed = i
		}
	}
	selected[seed] = true
	order = append(order, seed)

	for len(order) < k {
		bestIdx, bestScore := -1, -1.0
		for i := range n {
			if selected[i] {
				continue
			}
			minD2 := math.MaxFloat64
			for _, s := range order {
				if d := dist.At(i, s); d < minD2 {
					minD2 = d
				}
			}
			normW := cands[i].Weight / maxW
			score := math.Sqrt(minD2) * (0.55 + 0.45*math.Sqrt(normW))
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		selected[bestIdx] = true
		order = append(order, bestIdx)
	}

	out := make([]colorful.Color, 0, len(order))
	for _, i := range order {
		out = append(out, cands[i].Col)
	}
	return out
}

// SortByBrightness orders colors darkest first, so the first entry is a
// natural background plate.
func SortByBrightness(p []colorful.Color) {
	slices.SortFunc(p, func(a, b colorful.Color) int {
		ri, gi, bi := a.LinearRgb()
		rj, gj, bj := b.LinearRgb()
		yi := 0.2126*ri + 0.7152*gi + 0.0722*bi
		yj := 0.2126*rj + 0.7152*gj + 0.0722*bj
		if yi < yj {
			return -1
		}
		if yi > yj {
			return 1
		}
		return 0
	})
}

// Seeds converts a colorful palette to quantizer seed centroids.
func Seeds(p []colorful.Color) []raster.RGB {
	out := make([]raster.RGB, len(p))
	for i, c := range p {
		r, g, b := c.Clamped().RGB255()
		out[i] = raster.RGB{R: r, G: g, B: b}
	}
	return out
}

// HexStrings formats a palette for the hex-keyed raster operations.
func HexStrings(p []colorful.Color) []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Clamped().Hex()
	}
	return out
}
