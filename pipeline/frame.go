package pipeline

import (
	"image"

	"github.com/achilleasa/go-restir/frame"
	"github.com/achilleasa/go-restir/gbuffer"
	"github.com/achilleasa/go-restir/restir"
	"github.com/achilleasa/go-restir/scene"
)

// Frame holds the per-frame inputs and every buffer the stages read and
// write. Buffers persist across frames so the previous frame's reservoirs
// can be reused.
type Frame struct {
	Width  uint32
	Height uint32

	// The index of the frame being rendered. It seeds all per-pixel random streams.
	Index uint32

	Scene   *scene.Scene
	Camera  *scene.Camera
	GBuffer *gbuffer.Buffer

	// Whether PrevReservoirs may be reused and whether the camera moved
	// since the last frame.
	History     restir.HistoryState
	CameraMoved bool

	// Reservoirs of the previous frame and of the frame being rendered.
	PrevReservoirs *restir.Buffer
	Reservoirs     *restir.Buffer

	// Radiance before denoising.
	Radiance *frame.HDR

	// The denoiser output. It aliases Radiance until a denoise stage runs.
	Denoised *frame.HDR

	// Running average of Denoised across frames.
	Accumulated *frame.HDR
	AccumCount  uint32

	// The tone mapped output.
	Output *image.RGBA

	// Dispatches per-pixel kernels.
	Exec Executor

	spatialScratch *restir.Buffer
	denoiseScratch [2]*frame.HDR
}

// Allocate a frame and all its buffers.
func NewFrame(width, height uint32) *Frame {
	return &Frame{
		Width:          width,
		Height:         height,
		GBuffer:        gbuffer.New(width, height),
		PrevReservoirs: restir.NewBuffer(width, height),
		Reservoirs:     restir.NewBuffer(width, height),
		Radiance:       frame.NewHDR(width, height),
		Accumulated:    frame.NewHDR(width, height),
		Output:         image.NewRGBA(image.Rect(0, 0, int(width), int(height))),
		Exec:           SerialExecutor(),
		spatialScratch: restir.NewBuffer(width, height),
		denoiseScratch: [2]*frame.HDR{frame.NewHDR(width, height), frame.NewHDR(width, height)},
	}
}

// Prepare the frame buffers for a new frame.
func (f *Frame) Begin() {
	f.Denoised = f.Radiance
}

// Make this frame's reservoirs the history of the next frame.
func (f *Frame) SwapHistory() {
	f.PrevReservoirs, f.Reservoirs = f.Reservoirs, f.PrevReservoirs
}

// Reset the outputs to black and drop the temporal history.
func (f *Frame) Clear() {
	f.Reservoirs.Clear()
	f.PrevReservoirs.Clear()
	f.Radiance.Clear()
	f.Accumulated.Clear()
	f.AccumCount = 0
	f.Denoised = f.Radiance
	f.History = restir.NoHistory
	for i := range f.Output.Pix {
		f.Output.Pix[i] = 0
	}
}

// Get the buffer that the next denoise pass should write to.
func (f *Frame) denoiseTarget() *frame.HDR {
	if f.Denoised == f.denoiseScratch[0] {
		return f.denoiseScratch[1]
	}
	return f.denoiseScratch[0]
}
