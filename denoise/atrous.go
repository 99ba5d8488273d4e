package denoise

import (
	"math"

	"github.com/achilleasa/go-restir/frame"
	"github.com/achilleasa/go-restir/gbuffer"
	"github.com/achilleasa/go-restir/types"
)

// 1D B3-spline taps; the 5x5 kernel is their outer product.
var kernel = [5]float32{1.0 / 16, 1.0 / 4, 3.0 / 8, 1.0 / 4, 1.0 / 16}

// Default edge-stopping parameters.
const (
	DefaultFilterSize  = 80
	DefaultColorPhi    = 0.1
	DefaultNormalPhi   = 0.2
	DefaultPositionPhi = 0.1
)

// Get the number of A-Trous iterations needed to cover a footprint of the
// given size in pixels: floor(log2(footprint / 5)), or 0 below 10 pixels.
func Iterations(footprint float32) uint32 {
	if footprint < 10 {
		return 0
	}
	return uint32(math.Floor(math.Log2(float64(footprint) / 5)))
}

// Pass is a single A-Trous iteration.
type Pass struct {
	// Iteration index; taps are 2^Iteration pixels apart.
	Iteration uint32

	// Total number of iterations in the chain.
	Total uint32

	ColorPhi    float32
	NormalPhi   float32
	PositionPhi float32
}

// Get the distance in pixels between two taps.
func (p Pass) Spacing() int {
	return 1 << p.Iteration
}

// Filter rows [blockY, blockY+blockH) of src into dst.
func (p Pass) Apply(src, dst *frame.HDR, gb *gbuffer.Buffer, blockY, blockH uint32) {
	for y := blockY; y < blockY+blockH && y < src.Height; y++ {
		for x := uint32(0); x < src.Width; x++ {
			dst.Set(src.Index(x, y), p.FilterPixel(x, y, src, gb))
		}
	}
}

// Get the filtered value of pixel (x, y).
func (p Pass) FilterPixel(x, y uint32, src *frame.HDR, gb *gbuffer.Buffer) types.Vec3 {
	i := src.Index(x, y)
	color, normal, pos, valid := src.At(i), gb.Normal[i], gb.Position[i], gb.Valid[i]
	spacing := p.Spacing()

	var (
		sum       types.Vec3
		weightSum float32
	)
	for ky := 0; ky < 5; ky++ {
		qy := int(y) + (ky-2)*spacing
		if qy < 0 || qy >= int(src.Height) {
			continue
		}
		for kx := 0; kx < 5; kx++ {
			qx := int(x) + (kx-2)*spacing
			if qx < 0 || qx >= int(src.Width) {
				continue
			}

			j := src.Index(uint32(qx), uint32(qy))
			if gb.Valid[j] != valid {
				continue
			}

			tapColor := src.At(j)
			w := kernel[kx] * kernel[ky] *
				edgeStop(tapColor.Sub(color).LenSq(), p.ColorPhi) *
				edgeStop(gb.Normal[j].Sub(normal).LenSq(), p.NormalPhi) *
				edgeStop(gb.Position[j].Sub(pos).LenSq(), p.PositionPhi)

			sum = sum.Add(tapColor.Mul(w))
			weightSum += w
		}
	}

	if weightSum <= 0 {
		return color
	}
	return sum.Mul(1.0 / weightSum)
}

// exp(-distSq / phi); a non-positive phi disables the term.
func edgeStop(distSq, phi float32) float32 {
	if phi <= 0 {
		return 1
	}
	return float32(math.Exp(-float64(distSq / phi)))
}
