package cmd

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/achilleasa/go-restir/renderer"
	"github.com/achilleasa/go-restir/scene"
	"github.com/achilleasa/go-restir/scene/reader"
	"github.com/urfave/cli"
)

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	r, _, err := setupRenderer(ctx)
	if err != nil {
		return err
	}
	defer r.Close()

	// Temporal reuse needs a few frames to converge
	warmup := ctx.Int("warmup")
	var out *renderer.FrameOutput
	for idx := 0; idx <= warmup; idx++ {
		if out, err = r.Render(); err != nil {
			return err
		}
	}

	displayFrameStats(r.Stats())
	return writePNG(ctx.String("out"), out.Image)
}

// Render a sequence of frames while orbiting the camera around its look-at point.
func RenderSequence(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	r, sc, err := setupRenderer(ctx)
	if err != nil {
		return err
	}
	defer r.Close()

	frames := ctx.Int("frames")
	orbit := float32(ctx.Float64("orbit"))
	pattern := ctx.String("out")

	start := time.Now()
	for idx := 0; idx < frames; idx++ {
		if idx > 0 && orbit != 0 && sc.Camera != nil {
			sc.Camera.Orbit(orbit)
		}

		out, err := r.Render()
		if err != nil {
			return err
		}

		stats := r.Stats()
		logger.Infof("frame %d rendered in %s (mean luminance %.4f, stddev %.4f)", out.Index, stats.RenderTime, stats.MeanLuminance, stats.LuminanceStdDev)
		if err = writePNG(fmt.Sprintf(pattern, idx), out.Image); err != nil {
			return err
		}
	}
	logger.Noticef("rendered %d frames in %s", frames, time.Since(start))

	displayFrameStats(r.Stats())
	return nil
}

// Load scene and setup renderer.
func setupRenderer(ctx *cli.Context) (renderer.Renderer, *scene.Scene, error) {
	opts, err := optionsFromContext(ctx)
	if err != nil {
		return nil, nil, err
	}

	scheduler, err := schedulerFromContext(ctx)
	if err != nil {
		return nil, nil, err
	}

	// Load scene
	if ctx.NArg() != 1 {
		return nil, nil, errors.New("missing scene file argument")
	}

	sc, err := reader.ReadScene(ctx.Args().First())
	if err != nil {
		return nil, nil, err
	}

	// Update projection matrix
	if sc.Camera != nil {
		sc.Camera.SetupProjection(float32(opts.FrameW) / float32(opts.FrameH))
	}

	r, err := renderer.NewDefault(sc, scheduler, opts)
	if err != nil {
		return nil, nil, err
	}

	logger.Noticef("rendering %q at %dx%d with %d workers", sc.Name, opts.FrameW, opts.FrameH, opts.Workers)
	return r, sc, nil
}

// Export frame as PNG.
func writePNG(imgFile string, im image.Image) error {
	f, err := os.Create(imgFile)
	if err != nil {
		return fmt.Errorf("could not create %s: %s", imgFile, err)
	}
	defer f.Close()

	start := time.Now()
	if err = png.Encode(f, im); err != nil {
		return fmt.Errorf("error encoding png file: %s", err)
	}
	logger.Infof("wrote frame to %s in %s", imgFile, time.Since(start))
	return nil
}
