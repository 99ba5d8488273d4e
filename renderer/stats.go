package renderer

import "time"

type TracerStat struct {
	// The tracer id.
	Id string

	// True if this is the primary tracer
	IsPrimary bool

	// The block height and the percentage of total frame area it represents.
	BlockH       uint32
	FramePercent float32

	// Render time for assigned block across all stages.
	RenderTime time.Duration
}

type StageStat struct {
	// The stage name.
	Name string

	// Time from dispatch until the last block completed.
	RenderTime time.Duration
}

type FrameStats struct {
	// The frame index.
	Index uint32

	// Individual tracer stats.
	Tracers []TracerStat

	// Per-stage timings in execution order.
	Stages []StageStat

	// Luminance statistics of the radiance buffer.
	MeanLuminance   float64
	LuminanceStdDev float64

	// Total render time for entire frame.
	RenderTime time.Duration
}
