package cmd

import (
	"fmt"
	"runtime"

	"github.com/achilleasa/go-restir/denoise"
	"github.com/achilleasa/go-restir/pipeline"
	"github.com/achilleasa/go-restir/renderer"
	"github.com/achilleasa/go-restir/tracer"
	"github.com/urfave/cli"
)

// Get the flags shared by all render commands.
func RenderFlags() []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Value: 512,
			Usage: "frame width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 512,
			Usage: "frame height",
		},
		cli.IntFlag{
			Name:  "workers",
			Value: runtime.NumCPU(),
			Usage: "number of cpu tracers",
		},
		cli.StringFlag{
			Name:  "scheduler",
			Value: "perfect",
			Usage: "block scheduler (naive or perfect)",
		},
		cli.IntFlag{
			Name:  "light-samples, m",
			Value: 32,
			Usage: "light candidates per pixel",
		},
		cli.IntFlag{
			Name:  "max-ray-depth",
			Value: 1,
			Usage: "number of indirect bounces",
		},
		cli.IntFlag{
			Name:  "spatial-neighbors",
			Value: 20,
			Usage: "neighbors probed per spatial reuse pass",
		},
		cli.Float64Flag{
			Name:  "spatial-radius",
			Value: 5,
			Usage: "spatial reuse radius in pixels",
		},
		cli.IntFlag{
			Name:  "spatial-iterations",
			Value: 1,
			Usage: "number of spatial reuse passes",
		},
		cli.Float64Flag{
			Name:  "history-cap",
			Value: 20,
			Usage: "temporal history cap as a multiple of the light samples",
		},
		cli.BoolFlag{
			Name:  "no-restir",
			Usage: "disable reservoir resampling and shade with plain monte-carlo",
		},
		cli.BoolFlag{
			Name:  "no-temporal",
			Usage: "disable temporal reuse",
		},
		cli.BoolFlag{
			Name:  "no-spatial",
			Usage: "disable spatial reuse",
		},
		cli.BoolFlag{
			Name:  "no-visibility",
			Usage: "disable visibility reuse",
		},
		cli.BoolFlag{
			Name:  "reweight",
			Usage: "reweight reused reservoirs with the receiving pixel's target function",
		},
		cli.BoolFlag{
			Name:  "no-denoise",
			Usage: "disable the a-trous denoiser",
		},
		cli.Float64Flag{
			Name:  "filter-size",
			Value: denoise.DefaultFilterSize,
			Usage: "denoiser footprint in pixels",
		},
		cli.Float64Flag{
			Name:  "color-phi",
			Value: denoise.DefaultColorPhi,
			Usage: "denoiser color edge-stopping parameter",
		},
		cli.Float64Flag{
			Name:  "normal-phi",
			Value: denoise.DefaultNormalPhi,
			Usage: "denoiser normal edge-stopping parameter",
		},
		cli.Float64Flag{
			Name:  "position-phi",
			Value: denoise.DefaultPositionPhi,
			Usage: "denoiser position edge-stopping parameter",
		},
		cli.BoolFlag{
			Name:  "accumulate",
			Usage: "average frames while the camera is static",
		},
		cli.StringFlag{
			Name:  "tonemapper",
			Value: "clamp",
			Usage: "tone mapping operator (clamp or reinhard)",
		},
		cli.Float64Flag{
			Name:  "exposure",
			Value: 1.0,
			Usage: "camera exposure for tone-mapping",
		},
		cli.StringFlag{
			Name:  "debug",
			Value: "",
			Usage: "comma separated list of buffers to dump (depth, normals, ao, reservoir, radiance, denoised)",
		},
		cli.StringFlag{
			Name:  "debug-dir",
			Value: ".",
			Usage: "output folder for debug buffer dumps",
		},
	}
}

// Build renderer options from the command line flags.
func optionsFromContext(ctx *cli.Context) (renderer.Options, error) {
	opts := renderer.DefaultOptions(uint32(ctx.Int("width")), uint32(ctx.Int("height")))
	opts.Workers = uint32(ctx.Int("workers"))
	opts.LightSamples = uint32(ctx.Int("light-samples"))
	opts.MaxRayDepth = uint32(ctx.Int("max-ray-depth"))
	opts.SpatialNeighbors = uint32(ctx.Int("spatial-neighbors"))
	opts.SpatialRadius = float32(ctx.Float64("spatial-radius"))
	opts.SpatialIterations = uint32(ctx.Int("spatial-iterations"))
	opts.TemporalHistoryCap = float32(ctx.Float64("history-cap"))
	opts.EnableReSTIR = !ctx.Bool("no-restir")
	opts.EnableTemporalReuse = !ctx.Bool("no-temporal")
	opts.EnableSpatialReuse = !ctx.Bool("no-spatial")
	opts.EnableVisibilityReuse = !ctx.Bool("no-visibility")
	opts.ReweightNeighbors = ctx.Bool("reweight")
	opts.EnableDenoise = !ctx.Bool("no-denoise")
	opts.FilterSize = float32(ctx.Float64("filter-size"))
	opts.ColorPhi = float32(ctx.Float64("color-phi"))
	opts.NormalPhi = float32(ctx.Float64("normal-phi"))
	opts.PositionPhi = float32(ctx.Float64("position-phi"))
	opts.EnableAccumulation = ctx.Bool("accumulate")
	opts.Exposure = float32(ctx.Float64("exposure"))
	opts.DebugDir = ctx.String("debug-dir")

	var err error
	if opts.Tonemapper, err = pipeline.ParseTonemapper(ctx.String("tonemapper")); err != nil {
		return opts, err
	}
	if opts.Debug, err = pipeline.ParseDebugFlags(ctx.String("debug")); err != nil {
		return opts, err
	}

	return opts, opts.Validate()
}

// Get the block scheduler selected by the command line flags.
func schedulerFromContext(ctx *cli.Context) (tracer.BlockScheduler, error) {
	switch ctx.String("scheduler") {
	case "naive":
		return tracer.NaiveScheduler(), nil
	case "perfect":
		return tracer.PerfectScheduler(), nil
	}
	return nil, fmt.Errorf("unknown block scheduler %q", ctx.String("scheduler"))
}
