package pipeline

import (
	"fmt"

	"github.com/achilleasa/go-restir/log"
)

// A Stage is a single step of the frame pipeline.
type Stage interface {
	// Get the stage name.
	Name() string

	// Apply the pipeline parameters.
	Configure(Params)

	// Process the frame. Stages dispatch their per-pixel work through the
	// frame's Executor.
	Run(*Frame) error
}

// Pipeline is an ordered list of stages that turns a geometry buffer into a
// tone mapped frame.
type Pipeline struct {
	logger log.Logger

	Stages []Stage
}

// Create a pipeline from an explicit list of stages configured with params.
func New(params Params, stages ...Stage) *Pipeline {
	for _, stage := range stages {
		stage.Configure(params)
	}
	return &Pipeline{
		logger: log.New("pipeline"),
		Stages: stages,
	}
}

// Build the default pipeline:
// candidates(+temporal), spatial x n, shade, indirect, denoise x N, accumulate, tonemap.
// Stages disabled by params are left out.
func Default(params Params) *Pipeline {
	var stages []Stage

	if params.Debug&DebugDepth == DebugDepth {
		stages = append(stages, debugDepth())
	}
	if params.Debug&DebugNormals == DebugNormals {
		stages = append(stages, debugNormals())
	}
	if params.Debug&DebugAmbientOcclusion == DebugAmbientOcclusion {
		stages = append(stages, debugAmbientOcclusion())
	}

	if params.EnableReSTIR {
		stages = append(stages, &candidateStage{})
		passes := params.SpatialPasses()
		for i := uint32(0); i < passes; i++ {
			stages = append(stages, &spatialStage{iteration: i, total: passes})
		}
		if params.Debug&DebugReservoirWeights == DebugReservoirWeights {
			stages = append(stages, debugReservoirWeights())
		}
	}

	stages = append(stages, &shadeStage{})
	if params.MaxRayDepth > 0 {
		stages = append(stages, &indirectStage{})
	}
	if params.Debug&DebugRadiance == DebugRadiance {
		stages = append(stages, debugRadiance())
	}

	iterations := params.DenoiseIterations()
	for j := uint32(0); j < iterations; j++ {
		stages = append(stages, &denoiseStage{iteration: j, total: iterations})
	}
	if iterations > 0 && params.Debug&DebugDenoised == DebugDenoised {
		stages = append(stages, debugDenoised())
	}

	if params.EnableAccumulation {
		stages = append(stages, &accumulateStage{})
	}
	stages = append(stages, &tonemapStage{})

	return New(params, stages...)
}

// Get the names of the pipeline stages in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.Stages))
	for i, stage := range p.Stages {
		names[i] = stage.Name()
	}
	return names
}

// Run all stages on the frame. A frame without a scene, camera or geometry
// buffer is cleared to black instead.
func (p *Pipeline) Run(f *Frame) error {
	f.Begin()
	if f.Scene == nil || f.Camera == nil || f.GBuffer == nil {
		p.logger.Warningf("frame %d: no scene, camera or geometry buffer; emitting black frame", f.Index)
		f.Clear()
		return nil
	}

	for _, stage := range p.Stages {
		if err := stage.Run(f); err != nil {
			return fmt.Errorf("pipeline: stage %s failed: %w", stage.Name(), err)
		}
	}
	return nil
}
