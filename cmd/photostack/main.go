package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/abworrall/photostack/pkg/assets"
	"github.com/abworrall/photostack/pkg/filter"
	"github.com/abworrall/photostack/pkg/geom"
	"github.com/abworrall/photostack/pkg/response"
	"github.com/abworrall/photostack/pkg/stack"
)

var (
	fVerbosity  int
	fConfig     string
	fOutput     string
	fStickers   string
	fText       string
	fEffect     string
	fEnhance    string
	fCrop       string
	fRotate     int
	fFlip       string
	fBrightness float64
	fSaturation float64
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fConfig, "config", "", "YAML file of default filter parameters")
	flag.StringVar(&fOutput, "o", "out.png", "where to write the rendered PNG")

	flag.StringVar(&fStickers, "stickers", "", "sticker image, or dir of them, to overlay")
	flag.StringVar(&fText, "text", "", "text to draw over the photo")
	flag.StringVar(&fEffect, "effect", "", "response effect to apply")
	flag.StringVar(&fEnhance, "enhance", "", fmt.Sprintf("auto-enhance with this operator: %v", filter.Operators))
	flag.StringVar(&fCrop, "crop", "", "normalized crop rect, as minx,miny,maxx,maxy")
	flag.IntVar(&fRotate, "rotate", 0, "quarter turns to the right (negative turns left)")
	flag.StringVar(&fFlip, "flip", "", "flip the canvas: h or v")
	flag.Float64Var(&fBrightness, "brightness", 0, "brightness offset (-1.0->1.0)")
	flag.Float64Var(&fSaturation, "saturation", 1, "saturation multiplier (0.0->2.0)")
}

func effectNames() []string {
	names := []string{}
	for _, p := range response.Presets() {
		names = append(names, p.ResponseName)
	}
	return names
}

// setFlags names the flags given on the command line.
func setFlags() map[string]bool {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// applyFlags overrides the config with the flags that were actually set,
// so a config file's values survive unless the command line says otherwise.
func applyFlags(cfg stack.Config, set map[string]bool) (stack.Config, error) {
	if set["effect"] {
		cfg.Effect = fEffect
	}
	if set["enhance"] {
		cfg.Enhancement.Enabled = true
		cfg.Enhancement.Operator = fEnhance
	}
	if set["text"] {
		cfg.Text.Text = fText
	}
	if set["crop"] {
		r := geom.Rect{}
		if _, err := fmt.Sscanf(fCrop, "%f,%f,%f,%f", &r.MinX, &r.MinY, &r.MaxX, &r.MaxY); err != nil {
			return cfg, fmt.Errorf("bad -crop '%s': %v", fCrop, err)
		}
		cfg.Crop = r
	}
	if set["brightness"] {
		cfg.ColorAdjustment.Brightness = fBrightness
	}
	if set["saturation"] {
		cfg.ColorAdjustment.Saturation = fSaturation
	}
	return cfg, nil
}

func main() {
	flag.Parse()
	log.Printf("photostack starting\n")

	if flag.NArg() != 1 {
		log.Fatalf("usage: photostack [flags] input-image")
	}

	if fVerbosity > 0 {
		stack.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := stack.NewConfig()
	if fConfig != "" {
		var err error
		if cfg, err = stack.LoadConfig(fConfig); err != nil {
			log.Fatal(err)
		}
		log.Printf("Loaded base configuration from %s\n", fConfig)
	}

	cfg, err := applyFlags(cfg, setFlags())
	if err != nil {
		log.Fatal(err)
	}

	if fVerbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", cfg.AsYaml())
	}

	s, err := stack.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("%v (effects: %v)", err, effectNames())
	}

	img, o, err := assets.LoadImage(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	s.OrientationCrop.Orientation = o

	if fStickers != "" {
		stickers, err := assets.LoadStickers(fStickers)
		if err != nil {
			log.Fatal(err)
		}
		for i, st := range stickers {
			f := s.AddSticker(st)
			// Spread them along the diagonal
			t := float64(i+1) / float64(len(stickers)+1)
			f.Center = geom.Pt(t, t)
		}
		log.Printf("Added %d stickers\n", len(stickers))
	}

	for ; fRotate > 0; fRotate-- {
		s.RotateRight()
	}
	for ; fRotate < 0; fRotate++ {
		s.RotateLeft()
	}
	switch fFlip {
	case "":
	case "h":
		s.FlipHorizontal()
	case "v":
		s.FlipVertical()
	default:
		log.Fatalf("bad -flip '%s', wanted h or v", fFlip)
	}

	if fVerbosity > 0 {
		log.Printf("Stack:-\n%s", s)
	}

	out, err := s.Render(img)
	if err != nil {
		log.Fatal(err)
	}

	n, err := assets.WritePNG(out, fOutput)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s (%s, %s)\n", fOutput, out.Bounds(), humanize.Bytes(uint64(n)))
}
