package renderer

import (
	"fmt"
	"math"
	"time"

	"github.com/achilleasa/go-restir/log"
	"github.com/achilleasa/go-restir/pipeline"
	"github.com/achilleasa/go-restir/restir"
	"github.com/achilleasa/go-restir/scene"
	"github.com/achilleasa/go-restir/tracer"
	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/stat"
)

// Tracks the camera transform between frames.
type cameraState struct {
	valid    bool
	viewProj mgl32.Mat4
}

// Record the current view-projection matrix and report whether it differs
// from the previous one.
func (c *cameraState) Update(viewProj mgl32.Mat4) bool {
	moved := !c.valid || viewProj != c.viewProj
	c.valid = true
	c.viewProj = viewProj
	return moved
}

// Forget the recorded transform.
func (c *cameraState) Reset() {
	c.valid = false
}

// A headless renderer that splits every pipeline stage across a pool of cpu
// tracers.
type defaultRenderer struct {
	logger log.Logger

	scene   *scene.Scene
	options Options

	// The list of attached tracers and the block scheduler.
	tracers          []tracer.Tracer
	scheduler        tracer.BlockScheduler
	blockAssignments []uint32

	pipeline *pipeline.Pipeline
	frame    *pipeline.Frame
	camera   cameraState

	frameIndex uint32
	stats      FrameStats
}

// Create a new default renderer using the specified block scheduler.
func NewDefault(sc *scene.Scene, scheduler tracer.BlockScheduler, opts Options) (Renderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if err := opts.ValidateFor(sc); err != nil {
		return nil, err
	}

	bvh := sc.BuildBVH()

	r := &defaultRenderer{
		logger:    log.New("renderer"),
		scene:     sc,
		options:   opts,
		scheduler: scheduler,
		pipeline:  pipeline.Default(opts.params()),
		frame:     pipeline.NewFrame(opts.FrameW, opts.FrameH),
	}

	// Geometry is rasterized before any illumination stage
	r.pipeline.Stages = append([]pipeline.Stage{pipeline.Rasterize()}, r.pipeline.Stages...)
	r.frame.Scene = sc
	r.frame.Exec = r

	for idx := uint32(0); idx < opts.Workers; idx++ {
		tr := tracer.NewCPUTracer(fmt.Sprintf("cpu-%d", idx), 1)
		if err := tr.Init(); err != nil {
			r.Close()
			return nil, err
		}
		r.tracers = append(r.tracers, tr)
	}
	if len(r.tracers) == 0 {
		return nil, ErrNoTracers
	}

	r.logger.Debugf("scene %q: %d bvh nodes over %d bounded primitives", sc.Name, len(bvh.Nodes), len(bvh.Items))
	r.logger.Debugf("pipeline stages: %v", r.pipeline.Names())
	return r, nil
}

// Shutdown renderer and any attached tracer.
func (r *defaultRenderer) Close() {
	for _, tr := range r.tracers {
		tr.Close()
	}
	r.tracers = nil
}

// Get render statistics for the last frame.
func (r *defaultRenderer) Stats() FrameStats {
	return r.stats
}

// Render the next frame.
func (r *defaultRenderer) Render() (*FrameOutput, error) {
	if len(r.tracers) == 0 {
		return nil, ErrNoTracers
	}

	start := time.Now()
	r.stats = FrameStats{Index: r.frameIndex}

	f := r.frame
	f.Index = r.frameIndex
	f.Camera = r.scene.Camera
	if f.Camera != nil {
		f.CameraMoved = r.camera.Update(f.Camera.ViewProjMat())
		f.History = restir.ValidHistory
		if f.CameraMoved {
			f.History = restir.NoHistory
			if r.frameIndex > 0 {
				r.logger.Infof("frame %d: camera moved; resetting temporal history", r.frameIndex)
			}
		}
	} else {
		r.camera.Reset()
	}

	r.blockAssignments = r.scheduler.Schedule(r.tracers, r.options.FrameH)
	if err := r.pipeline.Run(f); err != nil {
		return nil, err
	}
	f.SwapHistory()

	r.updateStats(time.Since(start))
	r.frameIndex++

	return &FrameOutput{
		Index:    f.Index,
		Radiance: f.Radiance,
		Denoised: f.Denoised,
		Image:    f.Output,
	}, nil
}

// Split the kernel rows among the tracers according to the current block
// assignment and wait for all blocks to complete.
func (r *defaultRenderer) Dispatch(stage string, frameH uint32, kernel tracer.Kernel) error {
	start := time.Now()

	doneChan := make(chan uint32, len(r.tracers))
	errChan := make(chan error, len(r.tracers))

	var blockY uint32
	pending := 0
	for idx, tr := range r.tracers {
		blockH := r.blockAssignments[idx]
		if blockH == 0 {
			continue
		}

		tr.Enqueue(tracer.BlockRequest{
			FrameW:     r.options.FrameW,
			FrameH:     frameH,
			BlockY:     blockY,
			BlockH:     blockH,
			FrameIndex: r.frameIndex,
			Kernel:     kernel,
			DoneChan:   doneChan,
			ErrChan:    errChan,
		})
		blockY += blockH
		pending++
	}

	var err error
	for ; pending > 0; pending-- {
		select {
		case <-doneChan:
		case blockErr := <-errChan:
			if err == nil {
				err = blockErr
			}
		}
	}

	elapsed := time.Since(start)
	r.stats.Stages = append(r.stats.Stages, StageStat{Name: stage, RenderTime: elapsed})
	r.logger.Debugf("frame %d: stage %s took %s", r.frameIndex, stage, elapsed)

	return err
}

// Collect tracer and image statistics for the frame that was just rendered.
func (r *defaultRenderer) updateStats(renderTime time.Duration) {
	r.stats.RenderTime = renderTime

	for idx, tr := range r.tracers {
		blockH := r.blockAssignments[idx]
		trStat := TracerStat{
			Id:           tr.Id(),
			IsPrimary:    idx == 0,
			BlockH:       blockH,
			FramePercent: 100.0 * float32(blockH) / float32(r.options.FrameH),
		}
		if last := tr.Stats(); last.FrameIndex == r.frameIndex {
			trStat.RenderTime = last.RenderTime
		}
		r.stats.Tracers = append(r.stats.Tracers, trStat)
	}

	lum := r.frame.Radiance.Luminance()
	if len(lum) < 2 {
		return
	}
	mean, variance := stat.MeanVariance(lum, nil)
	r.stats.MeanLuminance = mean
	r.stats.LuminanceStdDev = math.Sqrt(variance)
}
