package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/preview"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	scene       string
	mesh        string
	width       int
	height      int
	samples     int
	depth       int
	workers     int
	seed        int64
	format      string
	out         string
	preview     bool
	previewCols int
	trace       string
	help        bool

	// set records which flags were given explicitly
	set map[string]bool
}

func newFlagSet(opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.StringVar(&opts.scene, "scene", "basic", "Built-in scene ID, json:<name>, or path to a .json scene file")
	fs.StringVar(&opts.mesh, "mesh", "", "PLY or glTF mesh to add to the scene")
	fs.IntVar(&opts.width, "width", 0, "Image width (default: scene setting)")
	fs.IntVar(&opts.height, "height", 0, "Image height (default: scene setting)")
	fs.IntVar(&opts.samples, "samples", 0, "Jittered samples per pixel (default: scene setting)")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum reflection/refraction depth (default: scene setting)")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.Int64Var(&opts.seed, "seed", 0, "Jitter seed (default: scene setting)")
	fs.StringVar(&opts.format, "format", "png", "Output format: 'png' or 'ppm'")
	fs.StringVar(&opts.out, "out", "", "Output file (default: output/<scene>/render_<timestamp>.<format>)")
	fs.BoolVar(&opts.preview, "preview", false, "Print a preview of the render to the terminal")
	fs.IntVar(&opts.previewCols, "preview-cols", 80, "Preview width in terminal columns")
	fs.StringVar(&opts.trace, "trace", "", "Pixel 'x,y' whose ray path is printed and drawn over the render")
	fs.BoolVar(&opts.help, "help", false, "Show help information")
	return fs
}

func parseFlags(args []string) (*options, error) {
	opts := &options{set: make(map[string]bool)}
	fs := newFlagSet(opts)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if opts.format != "png" && opts.format != "ppm" {
		return nil, fmt.Errorf("unknown format %q, want png or ppm", opts.format)
	}
	if opts.set["depth"] && opts.depth < 0 {
		return nil, fmt.Errorf("depth must not be negative, got %d", opts.depth)
	}
	if opts.trace != "" {
		if _, _, err := parseTracePoint(opts.trace); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(2)
	}

	if opts.help {
		showHelp()
		return
	}

	if err := run(opts); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs := newFlagSet(&options{})
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.BuiltInScenes() {
		fmt.Printf("  %-16s - %s\n", info.ID, info.Description)
	}
	if jsonScenes, err := scene.ListJSONScenes(); err == nil {
		for _, info := range jsonScenes {
			fmt.Printf("  %-16s - %s\n", info.ID, info.DisplayName)
		}
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.<format> unless -out is given")
}

func run(opts *options) error {
	logger := renderer.NewDefaultLogger()
	fmt.Println("Starting Whitted Raytracer...")

	selectedScene, err := createScene(opts, logger)
	if err != nil {
		return err
	}
	fmt.Printf("Scene %s: %d models, %d primitives, %d lights\n",
		opts.scene, len(selectedScene.Models), selectedScene.GetPrimitiveCount(), len(selectedScene.Lights))

	applyDepth(selectedScene, opts)
	engine := selectedScene.NewEngine(renderOverrides(opts), logger)
	config := engine.Config()
	img := renderer.NewImage(config.Width, config.Height)

	stats, err := engine.Render(context.Background(), img)
	if err != nil {
		return err
	}
	fmt.Printf("Render completed in %v\n", stats.Duration)
	fmt.Printf("%dx%d, %.1f samples per pixel, %d tiles\n", config.Width, config.Height, stats.AverageSamples(), stats.Tiles)
	fmt.Printf("Rays: %d primary, %d secondary, %d shadow\n",
		stats.Trace.PrimaryRays, stats.Trace.SecondaryRays, stats.Trace.ShadowRays)

	filename := opts.out
	if filename == "" {
		outputDir := createOutputDir(opts.scene)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s.%s", timestamp, opts.format))
	}

	if opts.format == "ppm" {
		err = img.SavePPM(filename)
	} else {
		err = img.SavePNG(filename)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", filename)

	if opts.preview {
		if err := preview.Render(os.Stdout, img, opts.previewCols); err != nil {
			return err
		}
	}

	tracePoint := selectedScene.TracePoint
	if opts.trace != "" {
		x, y, _ := parseTracePoint(opts.trace)
		tracePoint = &[2]int{x, y}
	}
	if tracePoint != nil {
		return writeTrace(engine, selectedScene.Camera, img, tracePoint[0], tracePoint[1], filename)
	}
	return nil
}

// createScene loads the named scene and adds the optional mesh to it
func createScene(opts *options, logger core.Logger) (*scene.Scene, error) {
	if opts.scene == "" {
		return nil, fmt.Errorf("no scene given")
	}
	selectedScene, err := scene.Load(opts.scene, logger)
	if err != nil {
		return nil, err
	}
	if opts.mesh != "" {
		model, err := selectedScene.AddMesh(filepath.Base(opts.mesh), opts.mesh, nil, core.IdentityTransformation)
		if err != nil {
			return nil, err
		}
		fmt.Printf("Loaded mesh %s with %d triangles\n", opts.mesh, model.Primitives())
	}
	return selectedScene, nil
}

// renderOverrides turns the size, sampling and worker flags into render
// overrides. Zero fields keep the scene's settings.
func renderOverrides(opts *options) renderer.RenderConfig {
	return renderer.RenderConfig{
		Width:           opts.width,
		Height:          opts.height,
		SamplesPerPixel: opts.samples,
		NumWorkers:      opts.workers,
		Seed:            opts.seed,
	}
}

// applyDepth sets an explicit -depth on the scene itself, since Merge
// treats zero as unset and -depth 0 is a valid request
func applyDepth(s *scene.Scene, opts *options) {
	if opts.set["depth"] {
		s.Config.MaxDepth = opts.depth
	}
}

// createOutputDir returns output/<name> where name is the scene ID or the
// scene file's base name
func createOutputDir(sceneName string) string {
	name := strings.TrimPrefix(sceneName, "json:")
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if name == "" || name == "." {
		name = "scene"
	}
	return filepath.Join("output", name)
}

// parseTracePoint parses "x,y"
func parseTracePoint(s string) (int, int, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid trace point %q, want x,y", s)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(xs))
	y, errY := strconv.Atoi(strings.TrimSpace(ys))
	if errX != nil || errY != nil {
		return 0, 0, fmt.Errorf("invalid trace point %q, want x,y", s)
	}
	return x, y, nil
}

// writeTrace prints the ray tree of one pixel and saves it drawn over the
// render next to the render file
func writeTrace(engine *renderer.Engine, camera *renderer.Camera, img *renderer.Image, x, y int, renderFile string) error {
	path, ok := engine.TracePixel(x, y)
	if !ok {
		return fmt.Errorf("trace point (%d, %d) is outside the image", x, y)
	}

	fmt.Printf("Ray path for pixel (%d, %d), colour %v:\n", x, y, path.Color)
	for _, seg := range path.Segments {
		note := ""
		if seg.Miss {
			note = " (miss)"
		} else if seg.Occluded {
			note = " (blocked)"
		}
		fmt.Printf("  %*s%-9s %v -> %v%s\n", 2*seg.Depth, "", seg.Kind, seg.From, seg.To, note)
	}

	traceFile := strings.TrimSuffix(renderFile, filepath.Ext(renderFile)) + "_trace.png"
	f, err := os.Create(traceFile)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", traceFile, err)
	}
	if err := png.Encode(f, preview.DrawPathOverlay(img, camera, path)); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", traceFile, err)
	}
	fmt.Printf("Ray path saved as %s\n", traceFile)
	return f.Close()
}
