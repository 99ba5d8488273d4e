package tracer

import "time"

// A Kernel processes the frame rows [blockY, blockY+blockH).
type Kernel func(blockY, blockH uint32) error

// A unit of work that is processed by a tracer.
type BlockRequest struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Block start row and height.
	BlockY uint32
	BlockH uint32

	// The frame this block belongs to.
	FrameIndex uint32

	// The work to run on the block.
	Kernel Kernel

	// A channel to signal on block completion with the number of completed rows.
	DoneChan chan<- uint32

	// A channel to signal if an error occurs.
	ErrChan chan<- error
}

// Tracer statistics.
type Stats struct {
	// The frame these stats refer to.
	FrameIndex uint32

	// The rendered block height
	BlockH uint32

	// The accumulated time spent on this frame's blocks.
	RenderTime time.Duration
}

type Tracer interface {
	// Get tracer id.
	Id() string

	// Get the tracer's relative computation speed. The schedulers use it
	// before any timing feedback is available.
	Speed() uint32

	// Start the tracer worker.
	Init() error

	// Shutdown and cleanup tracer.
	Close()

	// Enqueue block request.
	Enqueue(BlockRequest)

	// Retrieve last frame statistics.
	Stats() *Stats
}
