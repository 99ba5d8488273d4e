package renderer

import (
	"image"

	"github.com/achilleasa/go-restir/frame"
)

// The buffers produced for a rendered frame. They are owned by the renderer
// and overwritten by the next call to Render.
type FrameOutput struct {
	Index uint32

	// Radiance before denoising.
	Radiance *frame.HDR

	// Denoised radiance.
	Denoised *frame.HDR

	// Tone mapped image.
	Image *image.RGBA
}

type Renderer interface {
	// Render the next frame.
	Render() (*FrameOutput, error)

	// Shutdown renderer and any attached tracer.
	Close()

	// Get render statistics for the last frame.
	Stats() FrameStats
}
