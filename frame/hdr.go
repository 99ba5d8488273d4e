package frame

import "github.com/achilleasa/go-restir/types"

// HDR is a linear float RGBA image with 4 float32 values per pixel. Row 0 is
// the top of the image.
type HDR struct {
	Width  uint32
	Height uint32
	Pix    []float32
}

// Create a cleared HDR image.
func NewHDR(width, height uint32) *HDR {
	return &HDR{
		Width:  width,
		Height: height,
		Pix:    make([]float32, 4*width*height),
	}
}

// Get the pixel index for (x, y).
func (h *HDR) Index(x, y uint32) int {
	return int(y*h.Width + x)
}

// Get the RGB value of pixel index i.
func (h *HDR) At(i int) types.Vec3 {
	off := 4 * i
	return types.Vec3{h.Pix[off], h.Pix[off+1], h.Pix[off+2]}
}

// Set the RGB value of pixel index i. Alpha is set to 1.
func (h *HDR) Set(i int, c types.Vec3) {
	off := 4 * i
	h.Pix[off] = c[0]
	h.Pix[off+1] = c[1]
	h.Pix[off+2] = c[2]
	h.Pix[off+3] = 1
}

// Reset all pixels to transparent black.
func (h *HDR) Clear() {
	for i := range h.Pix {
		h.Pix[i] = 0
	}
}

// Get the per-pixel luminance.
func (h *HDR) Luminance() []float64 {
	out := make([]float64, h.Width*h.Height)
	for i := range out {
		out[i] = float64(h.At(i).Luminance())
	}
	return out
}
