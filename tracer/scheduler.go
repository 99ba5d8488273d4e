package tracer

import "math"

// The BlockScheduler interface is implemented by all block scheduling algorithms.
type BlockScheduler interface {
	// Split frame into blocks of variable height and assign to the pool
	// of tracers using feedback collected from previous frames.
	//
	// This function returns the block height assignment for each tracer
	// in the input list. The assignments always add up to frameH.
	Schedule(tracers []Tracer, frameH uint32) []uint32
}

// The naive scheduler splits the frame using each tracer's speed estimate
// and ignores any timing feedback.
type naiveScheduler struct {
	blockAssignment []uint32
}

// Create a new naive scheduler instance.
func NaiveScheduler() BlockScheduler {
	return &naiveScheduler{}
}

// Split frame into blocks proportional to the tracer speed estimates.
func (sch *naiveScheduler) Schedule(tracers []Tracer, frameH uint32) []uint32 {
	if len(sch.blockAssignment) != len(tracers) {
		sch.blockAssignment = make([]uint32, len(tracers))
	}
	if len(tracers) == 0 {
		return sch.blockAssignment
	}

	assignBySpeed(sch.blockAssignment, tracers, frameH)
	return sch.blockAssignment
}

// The perfect scheduler assumes that the volume of tracing work between two
// subsequent frames is approximately the same.
type perfectScheduler struct {
	blockAssignment []uint32
}

// Create a new perfect scheduler instance
func PerfectScheduler() BlockScheduler {
	return &perfectScheduler{}
}

// Split frame into blocks of variable height and assign to the pool
// of tracers using feedback collected from previous frames.
//
// This function returns the block height assignment for each tracer in the
// input list. When previous frame information is available the scheduler
// uses the following formula for estimating the workload for tracer w and frame i+1:
// w_i, f_i+1 = (blockH,w_i / time,w_i) / Σ(blockH_i-1 / time,i-1)
func (sch *perfectScheduler) Schedule(tracers []Tracer, frameH uint32) []uint32 {
	if len(tracers) == 0 {
		sch.blockAssignment = sch.blockAssignment[:0]
		return sch.blockAssignment
	}

	// If this is the first time we try to schedule or the number of tracers
	// has changed we need to reset the block assignments
	if len(sch.blockAssignment) != len(tracers) {
		sch.blockAssignment = make([]uint32, len(tracers))
		assignBySpeed(sch.blockAssignment, tracers, frameH)
		return sch.blockAssignment
	}

	// Use last frame statistics
	var total float64
	for _, tr := range tracers {
		total += rowsPerTick(tr.Stats())
	}
	if total == 0 {
		assignBySpeed(sch.blockAssignment, tracers, frameH)
		return sch.blockAssignment
	}

	scaler := float64(frameH) / total
	for idx, tr := range tracers {
		sch.blockAssignment[idx] = uint32(math.Max(1.0, math.Floor(rowsPerTick(tr.Stats())*scaler)))
	}
	balance(sch.blockAssignment, frameH)

	return sch.blockAssignment
}

// Get the row throughput recorded in a tracer's stats.
func rowsPerTick(stats *Stats) float64 {
	if stats.BlockH == 0 {
		return 0
	}
	renderTime := stats.RenderTime
	if renderTime <= 0 {
		renderTime = 1
	}
	return float64(stats.BlockH) / float64(renderTime)
}

// Distribute frame rows according to each tracer's speed estimate.
func assignBySpeed(blockAssignment []uint32, tracers []Tracer, frameH uint32) {
	var total float64
	for _, tr := range tracers {
		total += float64(tr.Speed())
	}
	if total == 0 {
		total = float64(len(tracers))
	}
	scaler := float64(frameH) / total

	for idx, tr := range tracers {
		speed := float64(tr.Speed())
		if speed == 0 {
			speed = 1
		}
		blockAssignment[idx] = uint32(math.Max(1.0, math.Floor(speed*scaler)))
	}
	balance(blockAssignment, frameH)
}

// Adjust block assignments so they add up to frameH. Missing rows are appended
// to the first tracer; excess rows are removed starting from the last tracer.
func balance(blockAssignment []uint32, frameH uint32) {
	var scheduledRows uint32
	for _, rows := range blockAssignment {
		scheduledRows += rows
	}

	if scheduledRows < frameH {
		blockAssignment[0] += frameH - scheduledRows
		return
	}

	excess := scheduledRows - frameH
	for idx := len(blockAssignment) - 1; idx >= 0 && excess > 0; idx-- {
		trim := blockAssignment[idx]
		if trim > excess {
			trim = excess
		}
		blockAssignment[idx] -= trim
		excess -= trim
	}
}
