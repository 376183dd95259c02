// Command weavestudio runs the production core from the command line:
// either the artwork cleanup pipeline (quantize, merge, speck removal,
// majority smoothing, separation plates) or a weave drawdown render.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/png"
	"log"
	"os"
	"strings"

	"github.com/setanarut/weavestudio/palette"
	"github.com/setanarut/weavestudio/pipeline"
	"github.com/setanarut/weavestudio/raster"
	"github.com/setanarut/weavestudio/render"
	"github.com/setanarut/weavestudio/separation"
	"github.com/setanarut/weavestudio/weave"
)

func main() {
	in := flag.String("in", "", "input PNG for the cleanup pipeline")
	outDir := flag.String("out", "out/", "output directory")
	colors := flag.Int("colors", 8, "palette size (clamped to 2-24)")
	minCluster := flag.Int("min-cluster", 12, "speck removal: minimum cluster size in pixels")
	smooth := flag.Int("smooth", 2, "majority filter passes")
	drawdown := flag.String("drawdown", "", "render a demo drawdown instead: twill|basket|herringbone|diamond|satin|plain")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create %s: %v", *outDir, err)
	}
	if *drawdown != "" {
		if err := renderDrawdown(*drawdown, *outDir); err != nil {
			log.Fatalf("drawdown: %v", err)
		}
		return
	}
	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := cleanup(*in, *outDir, *colors, *minCluster, *smooth); err != nil {
		log.Fatalf("cleanup: %v", err)
	}
}

func cleanup(path, outDir string, colors, minCluster, smooth int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return err
	}
	src := render.FromImage(img)

	seeds := palette.Extract(img, colors, palette.MethodKMeans)
	palette.SortByBrightness(seeds)

	opts := raster.DefaultQuantizeOptions()
	opts.K = colors
	opts.Seeds = palette.Seeds(seeds)
	opts.Progress = logProgress("quantize")

	var q raster.QuantizeResult
	if pipeline.Offload(src.W, src.H) {
		// Same call, just off the interactive path; the queue also
		// serializes any later edits against this result.
		queue := pipeline.NewQueue(4)
		defer queue.Close()
		_, res, err := queue.Submit(context.Background(), func() (any, error) {
			return raster.Quantize(src, opts)
		})
		if err != nil {
			return err
		}
		r := <-res
		if r.Err != nil {
			return r.Err
		}
		q = r.Value.(raster.QuantizeResult)
	} else {
		q, err = raster.Quantize(src, opts)
		if err != nil {
			return err
		}
	}

	hexes := make([]string, len(q.Palette))
	for i, e := range q.Palette {
		hexes[i] = e.Color.Hex()
		log.Printf("palette %d: %s covers %d px", i, hexes[i], e.Count)
	}

	cleaned, err := raster.RemoveSpecks(q.Raster, hexes, minCluster, logProgress("despeck"))
	if err != nil {
		return err
	}
	log.Printf("despeck: repainted %d px", cleaned.RemovedPixels)

	smoothed, err := raster.MajorityFilter(cleaned.Raster, smooth, logProgress("smooth"))
	if err != nil {
		return err
	}

	plates, err := separation.Plates(smoothed, hexes)
	if err != nil {
		return err
	}
	separation.SortByInkDarkness(plates)
	for i, share := range separation.Coverage(plates) {
		log.Printf("plate %d (%s): %.1f%%", i, plates[i].Color.Hex(), share*100)
	}

	if err := render.SaveImage(render.ToImage(smoothed), outDir+"cleaned.png"); err != nil {
		return err
	}
	if err := render.SavePalette(seeds, 64, outDir+"palette.png"); err != nil {
		return err
	}
	return render.SaveImages(separation.Tints(plates), outDir, "plate_")
}

func renderDrawdown(kind, outDir string) error {
	d := weave.NewDraft(32, 32, 4, 4)
	d.Repeat = weave.Repeat{Warp: 2, Weft: 2}
	switch strings.ToLower(kind) {
	case "twill":
		d.Twill2x2TieUp()
	case "basket":
		d.BasketWeave()
	case "herringbone":
		d.Herringbone()
	case "diamond":
		d.Diamond()
		d.Symmetry = weave.Symmetry{WarpMirror: true, WeftMirror: true}
	case "satin":
		d = weave.NewDraft(32, 32, 5, 5)
		d.SatinTieUp(2)
	case "plain":
		d.PlainWeaveTieUp()
	default:
		return fmt.Errorf("unknown drawdown %q", kind)
	}
	for _, p := range weave.Validate(d) {
		log.Printf("draft warning: %s", p)
	}
	img := render.DrawdownImage(weave.Derive(d), render.DefaultDrawdownOptions())
	return render.SaveImage(img, outDir+kind+".png")
}

func logProgress(stage string) raster.Progress {
	last := -1
	return func(pct int, msg string) {
		if pct/25 != last {
			last = pct / 25
			log.Printf("%s: %d%% %s", stage, pct, msg)
		}
	}
}
