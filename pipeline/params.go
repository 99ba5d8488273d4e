package pipeline

import (
	"fmt"
	"strings"

	"github.com/achilleasa/go-restir/denoise"
)

// Supported tone mapping operators.
type Tonemapper uint8

const (
	ClampTonemap Tonemapper = iota
	ReinhardTonemap
)

func (t Tonemapper) String() string {
	switch t {
	case ClampTonemap:
		return "clamp"
	case ReinhardTonemap:
		return "reinhard"
	}
	return fmt.Sprintf("Tonemapper(%d)", uint8(t))
}

// Map a tone mapping operator name to a Tonemapper.
func ParseTonemapper(name string) (Tonemapper, error) {
	switch strings.ToLower(name) {
	case "clamp":
		return ClampTonemap, nil
	case "reinhard":
		return ReinhardTonemap, nil
	}
	return ClampTonemap, fmt.Errorf("pipeline: unknown tonemapper %q", name)
}

// Params holds the tunables shared by all stages.
type Params struct {
	// Number of light candidates (M) per pixel.
	LightSamples uint32

	// Number of indirect bounces.
	MaxRayDepth uint32

	// Spatial reuse: number of neighbors (K), disk radius (R) and passes.
	SpatialNeighbors  uint32
	SpatialRadius     float32
	SpatialIterations uint32

	// The temporal history is capped to TemporalHistoryCap * M samples. Spatial
	// passes cap their output to the same count (see SampleCap).
	TemporalHistoryCap float32

	EnableReSTIR          bool
	EnableTemporalReuse   bool
	EnableSpatialReuse    bool
	EnableVisibilityReuse bool
	ReweightNeighbors     bool

	// A-Trous filter footprint in pixels and edge-stopping parameters.
	FilterSize  float32
	ColorPhi    float32
	NormalPhi   float32
	PositionPhi float32

	EnableDenoise      bool
	EnableAccumulation bool

	Tonemapper Tonemapper
	Exposure   float32

	// Intermediate buffers selected by Debug are written as PNG images to DebugDir.
	Debug    DebugFlag
	DebugDir string
}

// Get the default stage parameters.
func DefaultParams() Params {
	return Params{
		LightSamples:          32,
		MaxRayDepth:           1,
		SpatialNeighbors:      20,
		SpatialRadius:         5,
		SpatialIterations:     1,
		TemporalHistoryCap:    20,
		EnableReSTIR:          true,
		EnableTemporalReuse:   true,
		EnableSpatialReuse:    true,
		EnableVisibilityReuse: true,
		FilterSize:            denoise.DefaultFilterSize,
		ColorPhi:              denoise.DefaultColorPhi,
		NormalPhi:             denoise.DefaultNormalPhi,
		PositionPhi:           denoise.DefaultPositionPhi,
		EnableDenoise:         true,
		Tonemapper:            ClampTonemap,
		Exposure:              1,
		DebugDir:              ".",
	}
}

// Get the number of A-Trous iterations run by the pipeline.
func (p Params) DenoiseIterations() uint32 {
	if !p.EnableDenoise {
		return 0
	}
	return denoise.Iterations(p.FilterSize)
}

// Get the largest sample count a spatial pass may leave in a reservoir. It
// never drops below the per-frame candidate count.
func (p Params) SampleCap() uint32 {
	limit := uint32(p.TemporalHistoryCap * float32(p.LightSamples))
	if limit < p.LightSamples {
		limit = p.LightSamples
	}
	return limit
}

// Get the number of spatial reuse passes run by the pipeline.
func (p Params) SpatialPasses() uint32 {
	if !p.EnableReSTIR || !p.EnableSpatialReuse || p.SpatialNeighbors == 0 {
		return 0
	}
	return p.SpatialIterations
}
