package renderer

import (
	"fmt"
	"runtime"

	"github.com/achilleasa/go-restir/pipeline"
	"github.com/achilleasa/go-restir/scene"
)

// Light sample limits. Scenes with more emitters than minLightSampleLimit
// may draw one candidate per emitter.
const (
	minLightSampleLimit uint32 = 32
	maxLightSamples     uint32 = 4096
)

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of cpu tracers.
	Workers uint32

	// Number of light candidates per pixel.
	LightSamples uint32

	// Number of indirect bounces.
	MaxRayDepth uint32

	// Spatial reuse settings.
	SpatialNeighbors  uint32
	SpatialRadius     float32
	SpatialIterations uint32

	// History length cap as a multiple of LightSamples.
	TemporalHistoryCap float32

	EnableReSTIR          bool
	EnableTemporalReuse   bool
	EnableSpatialReuse    bool
	EnableVisibilityReuse bool
	ReweightNeighbors     bool

	// Denoiser settings.
	EnableDenoise bool
	FilterSize    float32
	ColorPhi      float32
	NormalPhi     float32
	PositionPhi   float32

	EnableAccumulation bool

	// Tone mapping.
	Tonemapper pipeline.Tonemapper
	Exposure   float32

	// Debug buffer dumps.
	Debug    pipeline.DebugFlag
	DebugDir string
}

// Get the default renderer options for a frameW x frameH frame.
func DefaultOptions(frameW, frameH uint32) Options {
	params := pipeline.DefaultParams()
	return Options{
		FrameW:                frameW,
		FrameH:                frameH,
		Workers:               uint32(runtime.NumCPU()),
		LightSamples:          params.LightSamples,
		MaxRayDepth:           params.MaxRayDepth,
		SpatialNeighbors:      params.SpatialNeighbors,
		SpatialRadius:         params.SpatialRadius,
		SpatialIterations:     params.SpatialIterations,
		TemporalHistoryCap:    params.TemporalHistoryCap,
		EnableReSTIR:          params.EnableReSTIR,
		EnableTemporalReuse:   params.EnableTemporalReuse,
		EnableSpatialReuse:    params.EnableSpatialReuse,
		EnableVisibilityReuse: params.EnableVisibilityReuse,
		ReweightNeighbors:     params.ReweightNeighbors,
		EnableDenoise:         params.EnableDenoise,
		FilterSize:            params.FilterSize,
		ColorPhi:              params.ColorPhi,
		NormalPhi:             params.NormalPhi,
		PositionPhi:           params.PositionPhi,
		EnableAccumulation:    params.EnableAccumulation,
		Tonemapper:            params.Tonemapper,
		Exposure:              params.Exposure,
		DebugDir:              params.DebugDir,
	}
}

// An option value and its accepted range.
type optionRange struct {
	name     string
	value    float64
	min, max float64
}

// Check that all options are within their supported range.
func (o Options) Validate() error {
	ranges := []optionRange{
		{"frame width", float64(o.FrameW), 1, 16384},
		{"frame height", float64(o.FrameH), 1, 16384},
		{"workers", float64(o.Workers), 1, 1024},
		{"light samples", float64(o.LightSamples), 0, float64(maxLightSamples)},
		{"max ray depth", float64(o.MaxRayDepth), 0, 8},
		{"spatial neighbors", float64(o.SpatialNeighbors), 0, 100},
		{"spatial radius", float64(o.SpatialRadius), 0, 100},
		{"spatial iterations", float64(o.SpatialIterations), 0, 8},
		{"temporal history cap", float64(o.TemporalHistoryCap), 0, 1000},
		{"filter size", float64(o.FilterSize), 0, 512},
		{"color phi", float64(o.ColorPhi), 0, 1000},
		{"normal phi", float64(o.NormalPhi), 0, 1000},
		{"position phi", float64(o.PositionPhi), 0, 1000},
	}
	for _, r := range ranges {
		if r.value < r.min || r.value > r.max {
			return fmt.Errorf("%w: %s must be in [%g, %g]; got %g", ErrInvalidOption, r.name, r.min, r.max, r.value)
		}
	}

	if o.Exposure <= 0 {
		return fmt.Errorf("%w: exposure must be positive; got %g", ErrInvalidOption, o.Exposure)
	}
	if o.Tonemapper != pipeline.ClampTonemap && o.Tonemapper != pipeline.ReinhardTonemap {
		return fmt.Errorf("%w: unsupported tonemapper %s", ErrInvalidOption, o.Tonemapper)
	}
	return nil
}

// Check the options against the scene that will be rendered. The light
// sample count may not exceed LightSampleLimit(sc).
func (o Options) ValidateFor(sc *scene.Scene) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if limit := LightSampleLimit(sc); o.LightSamples > limit {
		return fmt.Errorf("%w: light samples must be in [0, %d] for scene %q; got %d", ErrInvalidOption, limit, sc.Name, o.LightSamples)
	}
	return nil
}

// Get the largest light sample count for a scene: 32 or the number of
// emitters (the environment included), whichever is larger.
func LightSampleLimit(sc *scene.Scene) uint32 {
	emitters := uint32(len(sc.Lights))
	if sc.Environment != nil {
		emitters++
	}
	return max(minLightSampleLimit, emitters)
}

// Get the pipeline parameters for these options.
func (o Options) params() pipeline.Params {
	return pipeline.Params{
		LightSamples:          o.LightSamples,
		MaxRayDepth:           o.MaxRayDepth,
		SpatialNeighbors:      o.SpatialNeighbors,
		SpatialRadius:         o.SpatialRadius,
		SpatialIterations:     o.SpatialIterations,
		TemporalHistoryCap:    o.TemporalHistoryCap,
		EnableReSTIR:          o.EnableReSTIR,
		EnableTemporalReuse:   o.EnableTemporalReuse,
		EnableSpatialReuse:    o.EnableSpatialReuse,
		EnableVisibilityReuse: o.EnableVisibilityReuse,
		ReweightNeighbors:     o.ReweightNeighbors,
		FilterSize:            o.FilterSize,
		ColorPhi:              o.ColorPhi,
		NormalPhi:             o.NormalPhi,
		PositionPhi:           o.PositionPhi,
		EnableDenoise:         o.EnableDenoise,
		EnableAccumulation:    o.EnableAccumulation,
		Tonemapper:            o.Tonemapper,
		Exposure:              o.Exposure,
		Debug:                 o.Debug,
		DebugDir:              o.DebugDir,
	}
}
